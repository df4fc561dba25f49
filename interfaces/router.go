package interfaces

import (
	"context"

	"github.com/mailfold/mailfold/dto"
)

type RouterService interface {
	// Route classifies the mail and dispatches the resulting folder move.
	Route(ctx context.Context, request dto.PipeMailRequest) error
}
