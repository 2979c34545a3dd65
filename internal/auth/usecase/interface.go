package usecase

import (
	"context"

	authdto "github.com/fhlgrn/ReadyReply/internal/auth/dto"
)

// AuthUsecase connects the mailbox and the AI provider
type AuthUsecase interface {
	// MailAuthURL returns the consent URL of an OAuth mailbox
	MailAuthURL() (string, error)
	// HandleMailCallback trades the pasted authorization code for tokens
	HandleMailCallback(ctx context.Context, code string) error
	UpdateAIKey(ctx context.Context, apiKey string) error
	Status(ctx context.Context) *authdto.StatusResponse
}
