package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
)

const (
	dialTimeout   = 30 * time.Second
	commandWait   = 30 * time.Second
	logoutTimeout = 5 * time.Second
)

type session struct {
	client *client.Client
	log    logger.Logger
}

// openSession establishes an encrypted connection and authenticates. When the
// literal password is rejected and contains dashes, a single retry with the
// dashes stripped is made on a fresh connection; a failed LOGIN invalidates
// the connection state, so the first one is never reused.
func (s *IMAPService) openSession(ctx context.Context, auth dto.MailboxAuth) (interfaces.MailSession, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.openSession")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("server", auth.Host)
	span.SetTag("port", auth.Port)

	c, err := s.dial(auth)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	c.Timeout = commandWait
	loginErr := c.Login(auth.Username, auth.Password)
	if loginErr == nil {
		c.Timeout = 0
		s.log.Infof("[%s] login successful", auth.Username)
		return &session{client: c, log: s.log}, nil
	}

	// The failed connection must not carry the second attempt.
	s.closeClient(c)

	stripped, hasDashes := fallbackPassword(auth.Password)
	if !hasDashes {
		tracing.TraceErr(span, loginErr)
		return nil, errors.Wrap(mailfolderrors.ErrAuthenticationFailed, loginErr.Error())
	}

	c2, err := s.dial(auth)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	c2.Timeout = commandWait
	if err := c2.Login(auth.Username, stripped); err != nil {
		s.closeClient(c2)
		// Report the original failure, not the retry's.
		tracing.TraceErr(span, loginErr)
		return nil, errors.Wrap(mailfolderrors.ErrAuthenticationFailed, loginErr.Error())
	}

	c2.Timeout = 0
	span.SetTag("auth.fallback", true)
	s.log.Infof("[%s] login successful with dash-stripped password", auth.Username)
	return &session{client: c2, log: s.log}, nil
}

func (s *IMAPService) dialTLS(auth dto.MailboxAuth) (*client.Client, error) {
	serverAddr := fmt.Sprintf("%s:%d", auth.Host, auth.Port)

	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: dialTimeout,
	}

	tlsConfig := &tls.Config{
		ServerName: auth.Host,
	}

	c, err := client.DialWithDialerTLS(dialer, serverAddr, tlsConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", serverAddr)
	}

	return c, nil
}

func (s *IMAPService) closeClient(c *client.Client) {
	if err := c.Logout(); err != nil {
		s.log.Debugf("error during logout: %v", err)
	}
}

// fallbackPassword strips decorative dashes some providers put in
// app-passwords. The second return reports whether a retry makes sense.
func fallbackPassword(password string) (string, bool) {
	stripped := strings.ReplaceAll(password, "-", "")
	return stripped, stripped != password
}

func (s *session) SelectFolder(ctx context.Context, name string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "session.SelectFolder")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("folder.name", name)

	s.client.Timeout = commandWait
	mbox, err := s.client.Select(name, false)
	s.client.Timeout = 0

	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(mailfolderrors.ErrFolderSelection, "selecting %q: %v", name, err)
	}

	s.log.Infof("selected folder %s - messages: %d, unseen: %d", name, mbox.Messages, mbox.Unseen)
	return nil
}

// FindByUID reports whether the message exists in the selected folder. An
// empty search result and a failed search are both an expected, reportable
// not-found condition rather than an error.
func (s *session) FindByUID(ctx context.Context, uid string) bool {
	span, _ := opentracing.StartSpanFromContext(ctx, "session.FindByUID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)

	n, err := parseUID(uid)
	if err != nil {
		s.log.Warnf("non-numeric email uid %q matches nothing: %v", uid, err)
		return false
	}

	uidRange := new(imap.SeqSet)
	uidRange.AddNum(n)
	criteria := imap.NewSearchCriteria()
	criteria.Uid = uidRange

	s.client.Timeout = commandWait
	uids, err := s.client.UidSearch(criteria)
	s.client.Timeout = 0

	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Warnf("uid search for %s failed: %v", uid, err)
		return false
	}

	span.SetTag("found", len(uids) > 0)
	return len(uids) > 0
}

// EnsureFolder attempts to create the folder so a following copy can land.
// Creation is best-effort preparation: most servers refuse when the folder
// already exists, which is fine.
func (s *session) EnsureFolder(ctx context.Context, name string) {
	span, _ := opentracing.StartSpanFromContext(ctx, "session.EnsureFolder")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("folder.name", name)

	s.client.Timeout = commandWait
	err := s.client.Create(name)
	s.client.Timeout = 0

	if err != nil {
		s.log.Debugf("folder %q already exists or cannot be created: %v", name, err)
		return
	}
	s.log.Infof("created folder %s", name)
}

// CopyMessage duplicates the message into targetFolder. The source message is
// always retained in its original folder.
func (s *session) CopyMessage(ctx context.Context, uid string, targetFolder string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "session.CopyMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)
	span.SetTag("folder.target", targetFolder)

	n, err := parseUID(uid)
	if err != nil {
		return errors.Wrapf(mailfolderrors.ErrCopyFailed, "invalid uid %q", uid)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(n)

	s.client.Timeout = commandWait
	err = s.client.UidCopy(seqSet, targetFolder)
	s.client.Timeout = 0

	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(mailfolderrors.ErrCopyFailed, err.Error())
	}

	return nil
}

func (s *session) ListFolders(ctx context.Context) ([]string, []string, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "session.ListFolders")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.client.Timeout = commandWait
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- s.client.List("", "*", mailboxes)
	}()

	var names []string
	var raw []string
	for m := range mailboxes {
		names = append(names, m.Name)
		raw = append(raw, rawFolderLine(m))
	}

	s.client.Timeout = 0
	if err := <-done; err != nil {
		tracing.TraceErr(span, err)
		return nil, nil, errors.Wrap(err, "listing folders")
	}

	sort.Sort(&folderListing{names: names, raw: raw})

	span.SetTag("folders.count", len(names))
	return names, raw, nil
}

// Close logs out with a timeout guard. Cleanup failures never mask the
// primary outcome.
func (s *session) Close() {
	if s.client == nil {
		return
	}

	s.client.Timeout = logoutTimeout
	done := make(chan error, 1)

	go func() {
		done <- s.client.Logout()
	}()

	select {
	case err := <-done:
		if err != nil {
			s.log.Debugf("error during logout: %v", err)
		}
	case <-time.After(logoutTimeout):
		s.log.Debugf("logout timed out")
	}
}

func parseUID(uid string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(uid), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// rawFolderLine renders a LIST entry the way servers print it, for callers
// that want the undecoded shape.
func rawFolderLine(m *imap.MailboxInfo) string {
	return fmt.Sprintf("(%s) %q %q", strings.Join(m.Attributes, " "), m.Delimiter, m.Name)
}

// folderListing sorts names and raw lines together, keeping them aligned.
type folderListing struct {
	names []string
	raw   []string
}

func (f *folderListing) Len() int           { return len(f.names) }
func (f *folderListing) Less(i, j int) bool { return f.names[i] < f.names[j] }
func (f *folderListing) Swap(i, j int) {
	f.names[i], f.names[j] = f.names[j], f.names[i]
	f.raw[i], f.raw[j] = f.raw[j], f.raw[i]
}
