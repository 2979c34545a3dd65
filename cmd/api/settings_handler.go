package api

import (
	"net/http"

	settingsusecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the runtime settings edited from the dashboard
type SettingsHandler struct {
	settings settingsusecase.SettingsUsecase
}

func NewSettingsHandler(settings settingsusecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings returns current settings
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings()
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial update
// PATCH /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req settingsusecase.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "Invalid settings data")
		return
	}

	settings, err := h.settings.UpdateSettings(req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
