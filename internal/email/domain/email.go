package domain

import (
	"context"
	"errors"
	"strings"

	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"

	"golang.org/x/oauth2"
)

// Email is a candidate message read from the mailbox. It is never stored;
// only its outcome is logged.
type Email struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	Subject   string `json:"subject"`
	From      string `json:"from"`
	Body      string `json:"body"`
	MessageID string `json:"messageId,omitempty"` // RFC 822 Message-ID header
}

var ErrInvalidEmail = errors.New("email: missing provider id")

// Validate checks the fields the pipeline relies on
func (e *Email) Validate() error {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return ErrInvalidEmail
	}
	return nil
}

// ConnectionStatus is the health of one provider
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Email     string `json:"email,omitempty"`
}

// MailGateway is the mailbox the pipeline reads from and writes drafts to
type MailGateway interface {
	// FetchMatching returns unread, not yet processed messages matching filter,
	// in provider order
	FetchMatching(ctx context.Context, filter *filterdomain.Filter) ([]*Email, error)

	// CreateDraft stores replyText as a threaded reply draft and returns its id
	CreateDraft(ctx context.Context, email *Email, replyText string) (string, error)

	CheckConnection(ctx context.Context) ConnectionStatus
}

// MailAuthenticator is implemented by gateways that use OAuth consent
type MailAuthenticator interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// ProcessedChecker tells the gateway which provider ids already have a log
type ProcessedChecker interface {
	IsProcessed(emailID string) (bool, error)
}

// TokenUpdateFunc is a callback function that handles token updates
type TokenUpdateFunc func(token *oauth2.Token) error
