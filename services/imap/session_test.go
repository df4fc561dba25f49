package imap

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/backend"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailfold/mailfold/dto"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
)

// loginBackend accepts exactly one password and records every attempt, so
// tests can see which credentials the service actually sent.
type loginBackend struct {
	mu       sync.Mutex
	accepted string
	attempts []string
}

func (b *loginBackend) Login(_ *imap.ConnInfo, username, password string) (backend.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attempts = append(b.attempts, password)
	if b.accepted == "" || password != b.accepted {
		return nil, fmt.Errorf("login attempt %d rejected", len(b.attempts))
	}
	return &loginUser{name: username}, nil
}

func (b *loginBackend) passwordsTried() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.attempts...)
}

type loginUser struct {
	name string
}

func (u *loginUser) Username() string { return u.name }

func (u *loginUser) ListMailboxes(subscribed bool) ([]backend.Mailbox, error) { return nil, nil }

func (u *loginUser) GetMailbox(name string) (backend.Mailbox, error) {
	return nil, backend.ErrNoSuchMailbox
}

func (u *loginUser) CreateMailbox(name string) error { return backend.ErrMailboxAlreadyExists }

func (u *loginUser) DeleteMailbox(name string) error { return backend.ErrNoSuchMailbox }

func (u *loginUser) RenameMailbox(existingName, newName string) error {
	return backend.ErrNoSuchMailbox
}

func (u *loginUser) Logout() error { return nil }

func startLoginServer(t *testing.T, be backend.Backend) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(be)
	srv.AllowInsecureAuth = true
	go srv.Serve(l)
	t.Cleanup(func() { srv.Close() })

	return l.Addr().String()
}

func serviceDialingTo(addr string) *IMAPService {
	svc := NewIMAPService(getLogger())
	svc.dial = func(auth dto.MailboxAuth) (*client.Client, error) {
		return client.Dial(addr)
	}
	return svc
}

func mailboxAuth(password string) dto.MailboxAuth {
	return dto.MailboxAuth{
		Host:     "imap.example.com",
		Port:     993,
		Username: "user@example.com",
		Password: password,
	}
}

func TestOpenSessionFallbackUsesStrippedPassword(t *testing.T) {
	// Arrange
	be := &loginBackend{accepted: "abcdefghijkl"}
	svc := serviceDialingTo(startLoginServer(t, be))

	// Act
	sess, err := svc.openSession(context.Background(), mailboxAuth("abcd-efgh-ijkl"))

	// Assert
	require.NoError(t, err)
	sess.Close()
	assert.Equal(t, []string{"abcd-efgh-ijkl", "abcdefghijkl"}, be.passwordsTried())
}

func TestOpenSessionWithoutDashesDoesNotRetry(t *testing.T) {
	be := &loginBackend{accepted: "rightpassword"}
	svc := serviceDialingTo(startLoginServer(t, be))

	_, err := svc.openSession(context.Background(), mailboxAuth("wrongpassword"))

	require.Error(t, err)
	assert.ErrorIs(t, err, mailfolderrors.ErrAuthenticationFailed)
	assert.Equal(t, []string{"wrongpassword"}, be.passwordsTried())
}

func TestOpenSessionFallbackFailureReportsFirstError(t *testing.T) {
	// A backend that accepts nothing: both the literal and the stripped
	// password are rejected, and the error of the first attempt is the one
	// surfaced to the caller.
	be := &loginBackend{}
	svc := serviceDialingTo(startLoginServer(t, be))

	_, err := svc.openSession(context.Background(), mailboxAuth("abcd-efgh"))

	require.Error(t, err)
	assert.ErrorIs(t, err, mailfolderrors.ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "login attempt 1 rejected")
	assert.Len(t, be.passwordsTried(), 2)
}

func TestFallbackPassword(t *testing.T) {
	stripped, retry := fallbackPassword("abcd-efgh-ijkl")
	assert.True(t, retry)
	assert.Equal(t, "abcdefghijkl", stripped)

	stripped, retry = fallbackPassword("plainpassword")
	assert.False(t, retry)
	assert.Equal(t, "plainpassword", stripped)

	stripped, retry = fallbackPassword("-")
	assert.True(t, retry)
	assert.Equal(t, "", stripped)
}

func TestParseUID(t *testing.T) {
	n, err := parseUID("12345")
	require.NoError(t, err)
	assert.Equal(t, uint32(12345), n)

	n, err = parseUID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), n)

	_, err = parseUID("not-a-uid")
	assert.Error(t, err)

	_, err = parseUID("")
	assert.Error(t, err)
}

func TestRawFolderLine(t *testing.T) {
	line := rawFolderLine(&imap.MailboxInfo{
		Attributes: []string{"\\HasNoChildren"},
		Delimiter:  "/",
		Name:       "work",
	})

	assert.Equal(t, `(\HasNoChildren) "/" "work"`, line)
}
