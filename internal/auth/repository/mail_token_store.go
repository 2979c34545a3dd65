package repository

import (
	"time"

	authdomain "github.com/fhlgrn/ReadyReply/internal/auth/domain"

	"golang.org/x/oauth2"
)

// MailTokenStore exposes the stored mail token as an oauth2 token
type MailTokenStore struct {
	repo TokenRepository
}

func NewMailTokenStore(repo TokenRepository) *MailTokenStore {
	return &MailTokenStore{repo: repo}
}

func (s *MailTokenStore) Load() (*oauth2.Token, error) {
	stored, err := s.repo.Get(authdomain.ProviderMail)
	if err != nil || stored == nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    "Bearer",
	}
	if stored.ExpiresAt != nil {
		token.Expiry = *stored.ExpiresAt
	}
	return token, nil
}

func (s *MailTokenStore) Store(token *oauth2.Token) error {
	record := &authdomain.AuthToken{
		Provider:          authdomain.ProviderMail,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
		LastAuthenticated: time.Now(),
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		record.ExpiresAt = &expiry
	}
	return s.repo.Save(record)
}
