package imap

import (
	"context"

	"github.com/emersion/go-imap/client"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/logger"
)

// IMAPService opens one session per request, runs the requested operations
// and always closes the session before returning. Nothing is pooled.
type IMAPService struct {
	log logger.Logger

	// seams for tests; default to openSession and dialTLS
	newSession func(ctx context.Context, auth dto.MailboxAuth) (interfaces.MailSession, error)
	dial       func(auth dto.MailboxAuth) (*client.Client, error)
}

func NewIMAPService(log logger.Logger) *IMAPService {
	s := &IMAPService{log: log}
	s.newSession = func(ctx context.Context, auth dto.MailboxAuth) (interfaces.MailSession, error) {
		return s.openSession(ctx, auth)
	}
	s.dial = s.dialTLS
	return s
}
