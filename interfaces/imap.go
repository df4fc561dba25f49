package interfaces

import (
	"context"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/internal/enum"
)

type IMAPService interface {
	MoveEmail(ctx context.Context, request dto.MoveEmailRequest) MoveOutcome
	ListFolders(ctx context.Context, auth dto.MailboxAuth) (*FolderListing, error)
}

// MailSession is an authenticated IMAP session. Every session belongs to a
// single request and always ends in Close, on success and failure paths alike.
type MailSession interface {
	SelectFolder(ctx context.Context, name string) error
	FindByUID(ctx context.Context, uid string) bool
	EnsureFolder(ctx context.Context, name string)
	CopyMessage(ctx context.Context, uid string, targetFolder string) error
	ListFolders(ctx context.Context) (names []string, raw []string, err error)
	Close()
}

// MoveOutcome is the structured result of a move operation.
type MoveOutcome struct {
	Status       enum.MoveStatus
	Detail       string
	EmailUID     string
	SourceFolder string
	TargetFolder string
}

type FolderListing struct {
	Folders []string
	Raw     []string
}
