package imap

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/tracing"
)

// ListFolders opens a session, lists every folder in the account and closes
// the session again.
func (s *IMAPService) ListFolders(ctx context.Context, auth dto.MailboxAuth) (*interfaces.FolderListing, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.ListFolders")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("server", auth.Host)

	sess, err := s.newSession(ctx, auth)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	defer sess.Close()

	names, raw, err := sess.ListFolders(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.log.Infof("found %d folders", len(names))

	return &interfaces.FolderListing{Folders: names, Raw: raw}, nil
}
