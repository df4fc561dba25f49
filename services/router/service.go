package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/mailfold/mailfold/config"
	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
	"github.com/mailfold/mailfold/internal/utils"
)

// MaxTextLength bounds the body text placed into the classification prompt.
// This is a hard contract on oracle cost and latency.
const MaxTextLength = 1000

// DefaultClasses is used when the caller sends no class set.
var DefaultClasses = []string{"important", "ad", "college", "other"}

const apiKeyHeader = "X-API-Key"

type routerService struct {
	cfg        *config.RouterConfig
	apiKey     string
	ai         interfaces.AIService
	log        logger.Logger
	httpClient *http.Client
}

func NewRouterService(cfg *config.RouterConfig, apiKey string, ai interfaces.AIService, log logger.Logger) interfaces.RouterService {
	return &routerService{
		cfg:    cfg,
		apiKey: apiKey,
		ai:     ai,
		log:    log,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Route classifies the mail into one of the requested classes and asks the
// move endpoint to file it under the folder named after the winning class.
// The returned class is used verbatim; an answer outside the class set simply
// creates a new folder.
func (s *routerService) Route(ctx context.Context, request dto.PipeMailRequest) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "routerService.Route")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", request.EmailUID.String())

	text := utils.Truncate(request.Text, MaxTextLength)
	htmlText := utils.Truncate(request.HTMLText, MaxTextLength)

	// With no plain body, a text rendering of the HTML gives the model
	// something better than markup soup.
	if text == "" && htmlText != "" {
		if rendered, err := utils.HTMLToPlainText(request.HTMLText); err == nil {
			text = utils.Truncate(rendered, MaxTextLength)
		}
	}

	classes := request.Classes
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	span.SetTag("classes.count", len(classes))

	prompt := dto.ClassificationPrompt{
		Subject:          request.Subject,
		Text:             text,
		HTMLText:         htmlText,
		ClassDescription: request.ClassDescription,
		MaxTextLength:    MaxTextLength,
	}

	targetFolder, err := s.ai.Classify(ctx, prompt, classes)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.SetTag("folder.target", targetFolder)

	if err := s.dispatchMove(ctx, span, request, targetFolder); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.log.Infof("successfully moved mail %s from inbox to %s", request.EmailUID, targetFolder)
	return nil
}

// dispatchMove crosses the HTTP boundary to the move endpoint, forwarding the
// shared-secret header and the current span context.
func (s *routerService) dispatchMove(ctx context.Context, span opentracing.Span, request dto.PipeMailRequest, targetFolder string) error {
	moveRequest := dto.MoveEmailRequest{
		MailboxAuth: dto.MailboxAuth{
			Host:     request.Host,
			Port:     request.Port,
			Username: request.Username,
			Password: request.Password,
		},
		EmailUID:     request.EmailUID,
		SourceFolder: "INBOX",
		TargetFolder: targetFolder,
	}
	moveRequest.ApplyDefaults()

	payload, err := json.Marshal(moveRequest)
	if err != nil {
		return errors.Wrap(err, "failed to marshal move request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.MoveEndpoint+"/move-email", bytes.NewBuffer(payload))
	if err != nil {
		return errors.Wrap(err, "failed to create move request")
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set(apiKeyHeader, s.apiKey)
	}
	tracing.InjectSpanContextIntoHTTPRequest(req, span)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(mailfolderrors.ErrDownstreamMove, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Warnf("could not read move endpoint response: %v", err)
	} else {
		s.log.Infof("move endpoint responded %d: %s", resp.StatusCode, string(body))
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(mailfolderrors.ErrDownstreamMove, "move endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
