package domain

import "time"

// Provider identifies whose credentials a token holds
type Provider string

const (
	ProviderMail Provider = "mail"
	ProviderAI   Provider = "ai"
)

// AuthToken holds the credentials of one provider. There is at most one
// row per provider; saving replaces it.
type AuthToken struct {
	ID                uint       `json:"-" gorm:"primaryKey"`
	Provider          Provider   `json:"provider" gorm:"type:varchar(16);uniqueIndex;not null"`
	AccessToken       string     `json:"-" gorm:"type:text;not null"`
	RefreshToken      string     `json:"-" gorm:"type:text"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	LastAuthenticated time.Time  `json:"lastAuthenticated"`
}
