package imap

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/enum"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
	"github.com/mailfold/mailfold/internal/tracing"
	"github.com/mailfold/mailfold/internal/utils"
)

// MoveEmail copies the message identified by UID from the source folder into
// the target folder. It is a duplication, not a move-with-deletion: the
// original message stays where it was.
func (s *IMAPService) MoveEmail(ctx context.Context, request dto.MoveEmailRequest) interfaces.MoveOutcome {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.MoveEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", request.EmailUID.String())
	span.SetTag("folder.source", request.SourceFolder)
	span.SetTag("folder.target", request.TargetFolder)

	uid := request.EmailUID.String()
	sourceFolder := utils.NormalizeFolderName(request.SourceFolder)
	targetFolder := request.TargetFolder

	s.log.Infof("attempting to move email UID %s from %s to %s", uid, sourceFolder, targetFolder)

	sess, err := s.newSession(ctx, request.MailboxAuth)
	if err != nil {
		tracing.TraceErr(span, err)
		status := enum.MoveProtocolError
		if errors.Is(err, mailfolderrors.ErrAuthenticationFailed) {
			status = enum.MoveAuthFailed
		}
		return s.failure(status, err.Error(), uid, sourceFolder, targetFolder)
	}
	defer sess.Close()

	if err := sess.SelectFolder(ctx, sourceFolder); err != nil {
		tracing.TraceErr(span, err)
		return s.failure(enum.MoveFolderError, err.Error(), uid, sourceFolder, targetFolder)
	}

	if !sess.FindByUID(ctx, uid) {
		detail := fmt.Sprintf("Email UID %s not found in %s", uid, sourceFolder)
		s.log.Info(detail)
		return s.failure(enum.MoveNotFound, detail, uid, sourceFolder, targetFolder)
	}

	sess.EnsureFolder(ctx, targetFolder)

	if err := sess.CopyMessage(ctx, uid, targetFolder); err != nil {
		tracing.TraceErr(span, err)
		return s.failure(enum.MoveProtocolError, fmt.Sprintf("Failed to copy email: %v", err), uid, sourceFolder, targetFolder)
	}

	s.log.Infof("successfully copied email UID %s from %s to %s (original kept)", uid, sourceFolder, targetFolder)

	outcome := interfaces.MoveOutcome{
		Status:       enum.MoveSuccess,
		Detail:       fmt.Sprintf("Email COPIED from %s to %s (original kept in inbox)", sourceFolder, targetFolder),
		EmailUID:     uid,
		SourceFolder: sourceFolder,
		TargetFolder: targetFolder,
	}
	tracing.LogObjectAsJson(span, "outcome", outcome)

	return outcome
}

func (s *IMAPService) failure(status enum.MoveStatus, detail, uid, sourceFolder, targetFolder string) interfaces.MoveOutcome {
	return interfaces.MoveOutcome{
		Status:       status,
		Detail:       detail,
		EmailUID:     uid,
		SourceFolder: sourceFolder,
		TargetFolder: targetFolder,
	}
}
