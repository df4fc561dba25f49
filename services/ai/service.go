package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/mailfold/mailfold/config"
	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
)

// Determinism-leaning settings: classification wants a repeatable label, not
// creative variation.
const (
	completionTemperature = 0.3
	completionMaxTokens   = 300
)

type aiService struct {
	cfg        *config.AIConfig
	log        logger.Logger
	httpClient *http.Client
}

func NewAIService(cfg *config.AIConfig, log logger.Logger) interfaces.AIService {
	return &aiService{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *aiService) Classify(ctx context.Context, prompt dto.ClassificationPrompt, classes []string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "aiService.Classify")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("classes", strings.Join(classes, ","))

	request := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: BuildClassificationPrompt(prompt, classes)},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		TopP:        1,
	}

	payload, err := json.Marshal(request)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.APIURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "classification request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = fmt.Errorf("classification request failed with status code %d: %s", resp.StatusCode, string(body))
		tracing.TraceErr(span, err)
		return "", err
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to unmarshal response")
	}

	if len(response.Choices) == 0 {
		tracing.TraceErr(span, mailfolderrors.ErrEmptyClassification)
		return "", mailfolderrors.ErrEmptyClassification
	}

	result := strings.TrimSpace(response.Choices[0].Message.Content)
	if result == "" {
		tracing.TraceErr(span, mailfolderrors.ErrEmptyClassification)
		return "", mailfolderrors.ErrEmptyClassification
	}

	span.SetTag("classification", result)
	s.log.Infof("classified the mail as: %s", result)

	return result, nil
}
