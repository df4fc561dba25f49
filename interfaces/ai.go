package interfaces

import (
	"context"

	"github.com/mailfold/mailfold/dto"
)

type AIService interface {
	// Classify returns one of the given class names for the prompted email.
	// The answer is trimmed but deliberately not re-validated against classes.
	Classify(ctx context.Context, prompt dto.ClassificationPrompt, classes []string) (string, error)
}
