package errors

import "github.com/pkg/errors"

var (
	// session errors
	ErrAuthenticationFailed = errors.New("imap authentication failed")
	ErrFolderSelection      = errors.New("folder selection failed")
	ErrCopyFailed           = errors.New("message copy failed")

	// classification errors
	ErrEmptyClassification = errors.New("classifier returned no content")

	// routing errors
	ErrMissingFields  = errors.New("missing required fields")
	ErrDownstreamMove = errors.New("downstream move request failed")
)
