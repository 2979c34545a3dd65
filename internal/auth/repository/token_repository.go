package repository

import (
	"errors"
	"fmt"
	"time"

	authdomain "github.com/fhlgrn/ReadyReply/internal/auth/domain"
	"github.com/fhlgrn/ReadyReply/pkg/crypto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository defines the interface for provider credential storage
type TokenRepository interface {
	// Get returns nil, nil when the provider has no stored token
	Get(provider authdomain.Provider) (*authdomain.AuthToken, error)

	// Save upserts the token of token.Provider
	Save(token *authdomain.AuthToken) error
}

// tokenRepository implements TokenRepository, sealing secrets with cipher
type tokenRepository struct {
	db     *gorm.DB
	cipher *crypto.Cipher
}

// NewTokenRepository creates a new instance of tokenRepository.
// cipher may be nil to store tokens in plain text.
func NewTokenRepository(db *gorm.DB, cipher *crypto.Cipher) TokenRepository {
	return &tokenRepository{
		db:     db,
		cipher: cipher,
	}
}

func (r *tokenRepository) Get(provider authdomain.Provider) (*authdomain.AuthToken, error) {
	var token authdomain.AuthToken
	err := r.db.Where("provider = ?", provider).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s token: %w", provider, err)
	}

	if token.AccessToken, err = r.cipher.Decrypt(token.AccessToken); err != nil {
		return nil, fmt.Errorf("decrypt %s access token: %w", provider, err)
	}
	if token.RefreshToken, err = r.cipher.Decrypt(token.RefreshToken); err != nil {
		return nil, fmt.Errorf("decrypt %s refresh token: %w", provider, err)
	}
	return &token, nil
}

func (r *tokenRepository) Save(token *authdomain.AuthToken) error {
	if token.LastAuthenticated.IsZero() {
		token.LastAuthenticated = time.Now()
	}

	sealed := *token
	sealed.ID = 0
	var err error
	if sealed.AccessToken, err = r.cipher.Encrypt(token.AccessToken); err != nil {
		return fmt.Errorf("encrypt %s access token: %w", token.Provider, err)
	}
	if sealed.RefreshToken, err = r.cipher.Encrypt(token.RefreshToken); err != nil {
		return fmt.Errorf("encrypt %s refresh token: %w", token.Provider, err)
	}

	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expires_at", "last_authenticated"}),
	}).Create(&sealed).Error
	if err != nil {
		return fmt.Errorf("save %s token: %w", token.Provider, err)
	}
	return nil
}
