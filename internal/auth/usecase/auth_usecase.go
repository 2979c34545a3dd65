package usecase

import (
	"context"
	"strings"

	authdto "github.com/fhlgrn/ReadyReply/internal/auth/dto"
	draftusecase "github.com/fhlgrn/ReadyReply/internal/draft/usecase"
	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/rs/zerolog"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	mail  emaildomain.MailGateway
	draft draftusecase.DraftGenerator
	log   zerolog.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(mail emaildomain.MailGateway, draft draftusecase.DraftGenerator, log zerolog.Logger) AuthUsecase {
	return &authUsecase{
		mail:  mail,
		draft: draft,
		log:   logger.Component(log, "auth"),
	}
}

func (u *authUsecase) authenticator() (emaildomain.MailAuthenticator, error) {
	a, ok := u.mail.(emaildomain.MailAuthenticator)
	if !ok {
		return nil, apperr.Validation("The configured mailbox does not use OAuth")
	}
	return a, nil
}

func (u *authUsecase) MailAuthURL() (string, error) {
	a, err := u.authenticator()
	if err != nil {
		return "", err
	}
	return a.AuthURL(), nil
}

func (u *authUsecase) HandleMailCallback(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return apperr.Validation("Authorization code is required")
	}
	a, err := u.authenticator()
	if err != nil {
		return err
	}

	if _, err := a.Exchange(ctx, code); err != nil {
		u.log.Warn().Err(err).Msg("mail authorization failed")
		return apperr.InvalidCredentials("Failed to authenticate with the mail provider").WithError(err)
	}
	return nil
}

func (u *authUsecase) UpdateAIKey(ctx context.Context, apiKey string) error {
	return u.draft.UpdateAPIKey(ctx, apiKey)
}

func (u *authUsecase) Status(ctx context.Context) *authdto.StatusResponse {
	return &authdto.StatusResponse{
		Mail: u.mail.CheckConnection(ctx),
		AI:   authdto.AIStatus{Connected: u.draft.CheckConnection(ctx).Connected},
	}
}
