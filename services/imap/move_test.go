package imap

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/enum"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
	"github.com/mailfold/mailfold/internal/logger"
)

type mockSession struct {
	mock.Mock
}

func (m *mockSession) SelectFolder(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockSession) FindByUID(ctx context.Context, uid string) bool {
	args := m.Called(ctx, uid)
	return args.Bool(0)
}

func (m *mockSession) EnsureFolder(ctx context.Context, name string) {
	m.Called(ctx, name)
}

func (m *mockSession) CopyMessage(ctx context.Context, uid string, targetFolder string) error {
	args := m.Called(ctx, uid, targetFolder)
	return args.Error(0)
}

func (m *mockSession) ListFolders(ctx context.Context) ([]string, []string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (m *mockSession) Close() {
	m.Called()
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func serviceWithSession(sess interfaces.MailSession, err error) *IMAPService {
	s := NewIMAPService(getLogger())
	s.newSession = func(ctx context.Context, auth dto.MailboxAuth) (interfaces.MailSession, error) {
		if err != nil {
			return nil, err
		}
		return sess, nil
	}
	return s
}

func moveRequest() dto.MoveEmailRequest {
	r := dto.MoveEmailRequest{
		MailboxAuth: dto.MailboxAuth{
			Host:     "imap.example.com",
			Username: "user@example.com",
			Password: "secret",
		},
		EmailUID:     "12345",
		SourceFolder: "inbox",
		TargetFolder: "work",
	}
	r.ApplyDefaults()
	return r
}

func TestMoveEmailSuccess(t *testing.T) {
	// Arrange
	sess := &mockSession{}
	sess.On("SelectFolder", mock.Anything, "INBOX").Return(nil)
	sess.On("FindByUID", mock.Anything, "12345").Return(true)
	sess.On("EnsureFolder", mock.Anything, "work").Return()
	sess.On("CopyMessage", mock.Anything, "12345", "work").Return(nil)
	sess.On("Close").Return()

	svc := serviceWithSession(sess, nil)

	// Act
	outcome := svc.MoveEmail(context.Background(), moveRequest())

	// Assert
	assert.Equal(t, enum.MoveSuccess, outcome.Status)
	assert.Equal(t, "12345", outcome.EmailUID)
	assert.Equal(t, "INBOX", outcome.SourceFolder)
	assert.Equal(t, "work", outcome.TargetFolder)
	assert.Contains(t, outcome.Detail, "COPIED")
	sess.AssertExpectations(t)
}

func TestMoveEmailIsIdempotent(t *testing.T) {
	sess := &mockSession{}
	sess.On("SelectFolder", mock.Anything, "INBOX").Return(nil)
	sess.On("FindByUID", mock.Anything, "12345").Return(true)
	// second run: the folder already exists, EnsureFolder stays best-effort
	sess.On("EnsureFolder", mock.Anything, "work").Return()
	sess.On("CopyMessage", mock.Anything, "12345", "work").Return(nil)
	sess.On("Close").Return()

	svc := serviceWithSession(sess, nil)

	first := svc.MoveEmail(context.Background(), moveRequest())
	second := svc.MoveEmail(context.Background(), moveRequest())

	assert.Equal(t, enum.MoveSuccess, first.Status)
	assert.Equal(t, enum.MoveSuccess, second.Status)
	sess.AssertNumberOfCalls(t, "CopyMessage", 2)
	sess.AssertNumberOfCalls(t, "Close", 2)
}

func TestMoveEmailNotFound(t *testing.T) {
	sess := &mockSession{}
	sess.On("SelectFolder", mock.Anything, "INBOX").Return(nil)
	sess.On("FindByUID", mock.Anything, "12345").Return(false)
	sess.On("Close").Return()

	svc := serviceWithSession(sess, nil)

	outcome := svc.MoveEmail(context.Background(), moveRequest())

	assert.Equal(t, enum.MoveNotFound, outcome.Status)
	assert.Equal(t, "Email UID 12345 not found in INBOX", outcome.Detail)
	sess.AssertNotCalled(t, "CopyMessage", mock.Anything, mock.Anything, mock.Anything)
	sess.AssertNotCalled(t, "EnsureFolder", mock.Anything, mock.Anything)
	sess.AssertCalled(t, "Close")
}

func TestMoveEmailAuthFailed(t *testing.T) {
	authErr := errors.Wrap(mailfolderrors.ErrAuthenticationFailed, "LOGIN rejected")
	svc := serviceWithSession(nil, authErr)

	outcome := svc.MoveEmail(context.Background(), moveRequest())

	assert.Equal(t, enum.MoveAuthFailed, outcome.Status)
	assert.Contains(t, outcome.Detail, "LOGIN rejected")
}

func TestMoveEmailDialFailureIsProtocolError(t *testing.T) {
	svc := serviceWithSession(nil, errors.New("failed to connect to imap.example.com:993"))

	outcome := svc.MoveEmail(context.Background(), moveRequest())

	assert.Equal(t, enum.MoveProtocolError, outcome.Status)
}

func TestMoveEmailFolderError(t *testing.T) {
	sess := &mockSession{}
	sess.On("SelectFolder", mock.Anything, "INBOX").
		Return(errors.Wrap(mailfolderrors.ErrFolderSelection, "no such folder"))
	sess.On("Close").Return()

	svc := serviceWithSession(sess, nil)

	outcome := svc.MoveEmail(context.Background(), moveRequest())

	assert.Equal(t, enum.MoveFolderError, outcome.Status)
	sess.AssertCalled(t, "Close")
}

func TestMoveEmailCopyFailure(t *testing.T) {
	sess := &mockSession{}
	sess.On("SelectFolder", mock.Anything, "INBOX").Return(nil)
	sess.On("FindByUID", mock.Anything, "12345").Return(true)
	sess.On("EnsureFolder", mock.Anything, "work").Return()
	sess.On("CopyMessage", mock.Anything, "12345", "work").
		Return(errors.Wrap(mailfolderrors.ErrCopyFailed, "NO copy denied"))
	sess.On("Close").Return()

	svc := serviceWithSession(sess, nil)

	outcome := svc.MoveEmail(context.Background(), moveRequest())

	assert.Equal(t, enum.MoveProtocolError, outcome.Status)
	assert.Contains(t, outcome.Detail, "Failed to copy email")
	sess.AssertCalled(t, "Close")
}

func TestListFoldersClosesSession(t *testing.T) {
	sess := &mockSession{}
	sess.On("ListFolders", mock.Anything).
		Return([]string{"INBOX", "work"}, []string{`() "/" "INBOX"`, `() "/" "work"`}, nil)
	sess.On("Close").Return()

	svc := serviceWithSession(sess, nil)

	listing, err := svc.ListFolders(context.Background(), dto.MailboxAuth{Host: "imap.example.com"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"INBOX", "work"}, listing.Folders)
	assert.Len(t, listing.Raw, 2)
	sess.AssertCalled(t, "Close")
}
