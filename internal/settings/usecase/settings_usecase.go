package usecase

import (
	"errors"
	"strings"
	"sync"

	"github.com/fhlgrn/ReadyReply/internal/settings/domain"
	"github.com/fhlgrn/ReadyReply/internal/settings/repository"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SettingsUsecase reads and edits the runtime settings
type SettingsUsecase interface {
	GetSettings() (*domain.AppSettings, error)
	UpdateSettings(updates SettingsUpdateRequest) (*domain.AppSettings, error)
	SetModel(model string) error
}

// SettingsUpdateRequest represents a partial settings update.
// Ranges are enforced by the binding tags, both when gin binds a request
// and when the usecase is called directly.
type SettingsUpdateRequest struct {
	ServiceEnabled     *bool   `json:"serviceEnabled,omitempty"`
	MailCheckFrequency *int    `json:"mailCheckFrequency,omitempty" binding:"omitempty,min=1,max=1440"`
	MailRateLimit      *int    `json:"mailRateLimit,omitempty" binding:"omitempty,min=1,max=1000"`
	AIModel            *string `json:"aiModel,omitempty" binding:"omitempty,min=1"`
	AIRateLimit        *int    `json:"aiRateLimit,omitempty" binding:"omitempty,min=1,max=1000"`
	MaxResponseWords   *int    `json:"maxResponseWords,omitempty" binding:"omitempty,min=10,max=1000"`
}

type settingsUsecase struct {
	repo repository.SettingsRepository
	log  zerolog.Logger
	// serializes read-modify-write of the singleton row
	mu sync.Mutex
}

func NewSettingsUsecase(repo repository.SettingsRepository, log zerolog.Logger) SettingsUsecase {
	return &settingsUsecase{
		repo: repo,
		log:  logger.Component(log, "settings"),
	}
}

func (u *settingsUsecase) GetSettings() (*domain.AppSettings, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.get()
}

func (u *settingsUsecase) get() (*domain.AppSettings, error) {
	settings, err := u.repo.Get()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch settings", err)
	}
	return settings, nil
}

func (u *settingsUsecase) UpdateSettings(updates SettingsUpdateRequest) (*domain.AppSettings, error) {
	if err := validate(updates); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	settings, err := u.get()
	if err != nil {
		return nil, err
	}

	if updates.ServiceEnabled != nil {
		settings.ServiceEnabled = *updates.ServiceEnabled
	}
	if updates.MailCheckFrequency != nil {
		settings.MailCheckFrequency = *updates.MailCheckFrequency
	}
	if updates.MailRateLimit != nil {
		settings.MailRateLimit = *updates.MailRateLimit
	}
	if updates.AIModel != nil {
		settings.AIModel = strings.TrimSpace(*updates.AIModel)
	}
	if updates.AIRateLimit != nil {
		settings.AIRateLimit = *updates.AIRateLimit
	}
	if updates.MaxResponseWords != nil {
		settings.MaxResponseWords = *updates.MaxResponseWords
	}

	if err := u.repo.Save(settings); err != nil {
		return nil, apperr.Internal("Failed to update settings", err)
	}

	u.log.Info().
		Bool("service_enabled", settings.ServiceEnabled).
		Int("mail_check_frequency", settings.MailCheckFrequency).
		Str("ai_model", settings.AIModel).
		Msg("settings updated")
	return settings, nil
}

func (u *settingsUsecase) SetModel(model string) error {
	_, err := u.UpdateSettings(SettingsUpdateRequest{AIModel: &model})
	return err
}

var fieldMessages = map[string]string{
	"MailCheckFrequency": "mailCheckFrequency must be between 1 and 1440 minutes",
	"MailRateLimit":      "mailRateLimit must be between 1 and 1000",
	"AIModel":            "aiModel cannot be empty",
	"AIRateLimit":        "aiRateLimit must be between 1 and 1000",
	"MaxResponseWords":   "maxResponseWords must be between 10 and 1000",
}

func validate(r SettingsUpdateRequest) error {
	if err := binding.Validator.ValidateStruct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if msg, ok := fieldMessages[verrs[0].Field()]; ok {
				return apperr.Validation(msg)
			}
		}
		return apperr.Validation("Invalid settings data")
	}
	// min=1 accepts whitespace
	if r.AIModel != nil && strings.TrimSpace(*r.AIModel) == "" {
		return apperr.Validation(fieldMessages["AIModel"])
	}
	return nil
}
