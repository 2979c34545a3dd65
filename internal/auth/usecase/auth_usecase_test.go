package usecase

import (
	"context"
	"errors"
	"testing"

	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeMail struct {
	status emaildomain.ConnectionStatus
}

func (f *fakeMail) FetchMatching(context.Context, *filterdomain.Filter) ([]*emaildomain.Email, error) {
	return nil, nil
}

func (f *fakeMail) CreateDraft(context.Context, *emaildomain.Email, string) (string, error) {
	return "", nil
}

func (f *fakeMail) CheckConnection(context.Context) emaildomain.ConnectionStatus {
	return f.status
}

type fakeOAuthMail struct {
	fakeMail
	codes []string
	err   error
}

func (f *fakeOAuthMail) AuthURL() string { return "https://accounts.example.com/consent" }

func (f *fakeOAuthMail) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	return &oauth2.Token{AccessToken: "a"}, nil
}

type fakeDraft struct {
	connected bool
	keys      []string
	keyErr    error
}

func (f *fakeDraft) GenerateDraft(context.Context, *emaildomain.Email, string) (string, error) {
	return "", nil
}

func (f *fakeDraft) SetModel(string) error { return nil }

func (f *fakeDraft) CheckConnection(context.Context) emaildomain.ConnectionStatus {
	return emaildomain.ConnectionStatus{Connected: f.connected}
}

func (f *fakeDraft) UpdateAPIKey(_ context.Context, key string) error {
	f.keys = append(f.keys, key)
	return f.keyErr
}

func TestMailAuthURL(t *testing.T) {
	uc := NewAuthUsecase(&fakeOAuthMail{}, &fakeDraft{}, zerolog.Nop())
	url, err := uc.MailAuthURL()
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com/consent", url)

	// IMAP style gateways have no consent flow
	uc = NewAuthUsecase(&fakeMail{}, &fakeDraft{}, zerolog.Nop())
	_, err = uc.MailAuthURL()
	assert.Equal(t, 400, apperr.StatusOf(err))
}

func TestHandleMailCallback(t *testing.T) {
	mail := &fakeOAuthMail{}
	uc := NewAuthUsecase(mail, &fakeDraft{}, zerolog.Nop())

	require.NoError(t, uc.HandleMailCallback(context.Background(), " 4/abc "))
	assert.Equal(t, []string{"4/abc"}, mail.codes)

	err := uc.HandleMailCallback(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	mail.err = errors.New("invalid_grant")
	err = uc.HandleMailCallback(context.Background(), "expired")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidCredentials))
	assert.ErrorContains(t, err, "invalid_grant")
}

func TestUpdateAIKeyDelegates(t *testing.T) {
	draft := &fakeDraft{keyErr: apperr.InvalidCredentials("Invalid API key")}
	uc := NewAuthUsecase(&fakeMail{}, draft, zerolog.Nop())

	err := uc.UpdateAIKey(context.Background(), "k1")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, []string{"k1"}, draft.keys)
}

func TestStatus(t *testing.T) {
	mail := &fakeMail{status: emaildomain.ConnectionStatus{Connected: true, Email: "me@example.com"}}
	uc := NewAuthUsecase(mail, &fakeDraft{connected: true}, zerolog.Nop())

	status := uc.Status(context.Background())
	assert.True(t, status.Mail.Connected)
	assert.Equal(t, "me@example.com", status.Mail.Email)
	assert.True(t, status.AI.Connected)
}
