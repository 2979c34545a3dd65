package domain

import "time"

// SettingsID is the primary key of the singleton settings row
const SettingsID uint = 1

const (
	DefaultMailCheckFrequency = 5  // minutes
	DefaultMailRateLimit      = 25 // per minute
	DefaultAIRateLimit        = 15 // per minute
	DefaultMaxResponseWords   = 75
)

// AppSettings is the single row of runtime configuration edited from the dashboard
type AppSettings struct {
	ID                 uint      `json:"-" gorm:"primaryKey"`
	ServiceEnabled     bool      `json:"serviceEnabled"`
	MailCheckFrequency int       `json:"mailCheckFrequency"`
	MailRateLimit      int       `json:"mailRateLimit"`
	AIModel            string    `json:"aiModel"`
	AIRateLimit        int       `json:"aiRateLimit"`
	MaxResponseWords   int       `json:"maxResponseWords"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Defaults returns the settings used on first start
func Defaults(aiModel string) AppSettings {
	return AppSettings{
		ID:                 SettingsID,
		ServiceEnabled:     true,
		MailCheckFrequency: DefaultMailCheckFrequency,
		MailRateLimit:      DefaultMailRateLimit,
		AIModel:            aiModel,
		AIRateLimit:        DefaultAIRateLimit,
		MaxResponseWords:   DefaultMaxResponseWords,
	}
}

// WordLimit returns MaxResponseWords, or the default when unset
func (s *AppSettings) WordLimit() int {
	if s == nil || s.MaxResponseWords <= 0 {
		return DefaultMaxResponseWords
	}
	return s.MaxResponseWords
}
