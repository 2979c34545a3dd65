package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"
	"github.com/fhlgrn/ReadyReply/pkg/rfc822"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	// State echoed back on the consent page; the user copies the code manually
	authState = "copy-code-to-ready-reply-app"

	pageSize = 10

	// Tokens this close to expiry are refreshed before the first call
	refreshWindow = 60 * time.Second
)

var scopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailComposeScope,
	gmail.GmailLabelsScope,
}

// TokenStore loads and persists the mailbox OAuth token
type TokenStore interface {
	// Load returns nil, nil when no mailbox has been connected
	Load() (*oauth2.Token, error)
	Store(token *oauth2.Token) error
}

// Config holds the OAuth client settings. Endpoint and AuthEndpoint
// override the Google defaults.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Endpoint     string
	AuthEndpoint *oauth2.Endpoint
}

// Service is the Gmail implementation of MailGateway and MailAuthenticator
type Service struct {
	oauth    *oauth2.Config
	endpoint string
	tokens   TokenStore
	checker  emaildomain.ProcessedChecker
	log      zerolog.Logger
	now      func() time.Time
}

type notifyTokenSource struct {
	mu       sync.Mutex
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback emaildomain.TokenUpdateFunc
	log      zerolog.Logger
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		if t.RefreshToken == "" {
			t.RefreshToken = s.current.RefreshToken
		}
		s.current = t
		if err := s.callback(t); err != nil {
			s.log.Error().Err(err).Msg("failed to persist refreshed token")
		}
	}
	return t, nil
}

func NewService(cfg Config, tokens TokenStore, checker emaildomain.ProcessedChecker, log zerolog.Logger) *Service {
	endpoint := google.Endpoint
	if cfg.AuthEndpoint != nil {
		endpoint = *cfg.AuthEndpoint
	}
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		endpoint: cfg.Endpoint,
		tokens:   tokens,
		checker:  checker,
		log:      logger.Component(log, "gmail"),
		now:      time.Now,
	}
}

// AuthURL returns the consent page URL requesting offline access
func (s *Service) AuthURL() string {
	return s.oauth.AuthCodeURL(authState, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens and stores them. The
// previous refresh token is kept when Google omits a new one.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	if token.RefreshToken == "" {
		if prev, err := s.tokens.Load(); err == nil && prev != nil {
			token.RefreshToken = prev.RefreshToken
		}
	}

	if err := s.tokens.Store(token); err != nil {
		return nil, fmt.Errorf("store mail token: %w", err)
	}
	s.log.Info().Bool("has_refresh_token", token.RefreshToken != "").Msg("mailbox authorized")
	return token, nil
}

// GetGmailService creates a Gmail client from the stored token
func (s *Service) GetGmailService(ctx context.Context) (*gmail.Service, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, apperr.Internal("Failed to load mail credentials", err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, apperr.Unauthorized("Mailbox is not connected")
	}

	// Only force refresh if we have a refresh token
	if token.RefreshToken != "" && !token.Expiry.IsZero() && token.Expiry.Sub(s.now()) < refreshWindow {
		token.Expiry = s.now().Add(-time.Second)
	}

	wrappedSource := &notifyTokenSource{
		src:      s.oauth.TokenSource(ctx, token),
		current:  token,
		callback: s.tokens.Store,
		log:      s.log,
	}

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, wrappedSource))}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, apperr.Provider("Unable to create Gmail client", err)
	}
	return srv, nil
}

// FetchMatching lists unread messages for filter, skips ones already
// logged, and applies the body terms to the decoded text.
func (s *Service) FetchMatching(ctx context.Context, filter *filterdomain.Filter) ([]*emaildomain.Email, error) {
	srv, err := s.GetGmailService(ctx)
	if err != nil {
		return nil, err
	}

	query := BuildQuery(filter)
	resp, err := srv.Users.Messages.List("me").Q(query).MaxResults(pageSize).Context(ctx).Do()
	if err != nil {
		return nil, apperr.Provider("Failed to list Gmail messages", err)
	}

	log := s.log.With().Uint("filter_id", filter.ID).Logger()
	log.Debug().Str("query", query).Int("candidates", len(resp.Messages)).Msg("gmail query")

	var emails []*emaildomain.Email
	for _, m := range resp.Messages {
		processed, err := s.checker.IsProcessed(m.Id)
		if err != nil {
			return nil, apperr.Internal("Failed to check processing history", err)
		}
		if processed {
			log.Debug().Str("email_id", m.Id).Msg("skipping already processed email")
			continue
		}

		full, err := srv.Users.Messages.Get("me", m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, apperr.Provider("Failed to fetch Gmail message", err)
		}

		email := convertGmailMessageToEmail(full)
		if err := email.Validate(); err != nil {
			log.Warn().Str("email_id", m.Id).Err(err).Msg("dropping malformed message")
			continue
		}
		if !filter.MatchesBody(email.Body) {
			log.Debug().Str("email_id", m.Id).Msg("body terms not matched")
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// CreateDraft stores replyText as a draft in the thread of email
func (s *Service) CreateDraft(ctx context.Context, email *emaildomain.Email, replyText string) (string, error) {
	srv, err := s.GetGmailService(ctx)
	if err != nil {
		return "", err
	}

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

	draft, err := srv.Users.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{
			ThreadId: email.ThreadID,
			Raw:      base64.URLEncoding.EncodeToString(msg.Raw),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", apperr.Provider("Failed to create Gmail draft", err)
	}

	s.log.Info().Str("email_id", email.ID).Str("draft_id", draft.Id).Msg("draft created")
	return draft.Id, nil
}

// CheckConnection reports whether the stored token can read the profile
func (s *Service) CheckConnection(ctx context.Context) emaildomain.ConnectionStatus {
	srv, err := s.GetGmailService(ctx)
	if err != nil {
		return emaildomain.ConnectionStatus{}
	}

	profile, err := srv.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		s.log.Warn().Err(err).Msg("gmail connection check failed")
		return emaildomain.ConnectionStatus{}
	}
	return emaildomain.ConnectionStatus{Connected: true, Email: profile.EmailAddress}
}
