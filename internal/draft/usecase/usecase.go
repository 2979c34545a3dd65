package usecase

import (
	"context"

	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
)

// DraftGenerator produces the AI reply text for one email
type DraftGenerator interface {
	// GenerateDraft returns the raw provider text; errors are not retried
	GenerateDraft(ctx context.Context, email *emaildomain.Email, template string) (string, error)

	// SetModel persists the model used for later drafts
	SetModel(model string) error

	// CheckConnection reports whether the provider accepts the current key.
	// The answer is cached for the configured TTL.
	CheckConnection(ctx context.Context) emaildomain.ConnectionStatus

	// UpdateAPIKey tries the provider with key and stores it on success
	UpdateAPIKey(ctx context.Context, key string) error
}
