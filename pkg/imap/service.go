// Package imap is the password-login IMAP4rev1 implementation of the mail gateway.
package imap

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"
	"github.com/fhlgrn/ReadyReply/pkg/rfc822"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"
)

const pageSize = 10

type Config struct {
	Addr          string
	Username      string
	Password      string
	Mailbox       string
	DraftsMailbox string
	// Insecure dials without TLS; only for local servers
	Insecure bool
}

// Service implements MailGateway over IMAP. Each call opens its own
// session and logs out when done.
type Service struct {
	cfg     Config
	checker emaildomain.ProcessedChecker
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(cfg Config, checker emaildomain.ProcessedChecker, log zerolog.Logger) *Service {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.DraftsMailbox == "" {
		cfg.DraftsMailbox = "Drafts"
	}
	return &Service{
		cfg:     cfg,
		checker: checker,
		log:     logger.Component(log, "imap"),
		now:     time.Now,
	}
}

func (s *Service) connect(ctx context.Context) (*client.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cfg.Addr == "" || s.cfg.Username == "" {
		return nil, apperr.Unauthorized("IMAP account is not configured")
	}

	var (
		c   *client.Client
		err error
	)
	if s.cfg.Insecure {
		c, err = client.Dial(s.cfg.Addr)
	} else {
		host := s.cfg.Addr
		if i := strings.LastIndex(host, ":"); i > 0 {
			host = host[:i]
		}
		c, err = client.DialTLS(s.cfg.Addr, &tls.Config{ServerName: host})
	}
	if err != nil {
		return nil, apperr.Provider("IMAP dial failed", err)
	}

	if err := c.Login(s.cfg.Username, s.cfg.Password); err != nil {
		_ = c.Logout()
		return nil, apperr.Provider("IMAP login failed", err)
	}
	return c, nil
}

func (s *Service) FetchMatching(ctx context.Context, filter *filterdomain.Filter) ([]*emaildomain.Email, error) {
	c, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	status, err := c.Select(s.cfg.Mailbox, false)
	if err != nil {
		return nil, apperr.Provider("IMAP select failed", err)
	}

	uids, err := c.UidSearch(buildSearchCriteria(filter))
	if err != nil {
		return nil, apperr.Provider("IMAP search failed", err)
	}

	log := s.log.With().Uint("filter_id", filter.ID).Logger()
	log.Debug().Int("candidates", len(uids)).Msg("imap search")

	var pending []uint32
	for _, uid := range newest(uids, pageSize) {
		id := messageKey(status.UidValidity, uid)
		processed, err := s.checker.IsProcessed(id)
		if err != nil {
			return nil, apperr.Internal("Failed to check processing history", err)
		}
		if processed {
			log.Debug().Str("email_id", id).Msg("skipping already processed email")
			continue
		}
		pending = append(pending, uid)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	fetched, err := s.fetch(c, status.UidValidity, pending)
	if err != nil {
		return nil, err
	}

	var emails []*emaildomain.Email
	for _, uid := range pending {
		email, ok := fetched[uid]
		if !ok {
			continue
		}
		if !filter.MatchesBody(email.Body) {
			log.Debug().Str("email_id", email.ID).Msg("body terms not matched")
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func (s *Service) fetch(c *client.Client, uidValidity uint32, uids []uint32) (map[uint32]*emaildomain.Email, error) {
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, len(uids)+1)
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(seqSet, items, messages)
	}()

	out := make(map[uint32]*emaildomain.Email, len(uids))
	for msg := range messages {
		literal := msg.GetBody(section)
		if literal == nil {
			continue
		}
		email, err := parseMessage(literal)
		if err != nil {
			s.log.Warn().Uint32("uid", msg.Uid).Err(err).Msg("dropping unparsable message")
			continue
		}
		email.ID = messageKey(uidValidity, msg.Uid)
		out[msg.Uid] = email
	}
	if err := <-done; err != nil {
		return nil, apperr.Provider("IMAP fetch failed", err)
	}
	return out, nil
}

// CreateDraft appends the reply to the drafts mailbox and returns its Message-Id
func (s *Service) CreateDraft(ctx context.Context, email *emaildomain.Email, replyText string) (string, error) {
	inReplyTo := email.MessageID
	if inReplyTo == "" {
		inReplyTo = email.ID
	}
	msg, err := rfc822.BuildReply(rfc822.Reply{
		To:        email.From,
		Subject:   email.Subject,
		InReplyTo: inReplyTo,
		Body:      replyText,
		Date:      s.now(),
	})
	if err != nil {
		return "", apperr.Internal("Failed to compose reply", err)
	}

	c, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer c.Logout()

	flags := []string{imap.DraftFlag, imap.SeenFlag}
	if err := c.Append(s.cfg.DraftsMailbox, flags, s.now(), bytes.NewReader(msg.Raw)); err != nil {
		return "", apperr.Provider("IMAP append failed", err)
	}

	s.log.Info().Str("email_id", email.ID).Str("draft_id", msg.MessageID).Msg("draft created")
	return msg.MessageID, nil
}

func (s *Service) CheckConnection(ctx context.Context) emaildomain.ConnectionStatus {
	c, err := s.connect(ctx)
	if err != nil {
		return emaildomain.ConnectionStatus{}
	}
	defer c.Logout()
	return emaildomain.ConnectionStatus{Connected: true, Email: s.cfg.Username}
}

func messageKey(uidValidity, uid uint32) string {
	return strconv.FormatUint(uint64(uidValidity), 10) + "-" + strconv.FormatUint(uint64(uid), 10)
}

// parseMessage reads headers and the preferred text body of a raw message
func parseMessage(r io.Reader) (*emaildomain.Email, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	defer mr.Close()

	email := &emaildomain.Email{}
	email.Subject, _ = mr.Header.Subject()
	email.MessageID = strings.TrimSpace(mr.Header.Get("Message-Id"))
	email.ThreadID = email.MessageID
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		email.From = from[0].String()
	} else {
		email.From = mr.Header.Get("From")
	}

	var plain, html string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read part: %w", err)
		}
		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		ct, _, _ := h.ContentType()
		switch {
		case ct == "text/plain" && plain == "":
			b, _ := io.ReadAll(p.Body)
			plain = string(b)
		case ct == "text/html" && html == "":
			b, _ := io.ReadAll(p.Body)
			html = string(b)
		}
	}

	email.Body = plain
	if email.Body == "" {
		email.Body = html
	}
	return email, nil
}
