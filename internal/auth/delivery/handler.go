package delivery

import (
	"net/http"

	authdto "github.com/fhlgrn/ReadyReply/internal/auth/dto"
	"github.com/fhlgrn/ReadyReply/internal/auth/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles provider authentication and status requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// GetStatus reports mailbox and AI connectivity
// GET /api/status
func (h *AuthHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.authUsecase.Status(c.Request.Context()))
}

// GetMailAuthURL returns the OAuth consent URL
// GET /api/auth/mail/url
func (h *AuthHandler) GetMailAuthURL(c *gin.Context) {
	url, err := h.authUsecase.MailAuthURL()
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authdto.AuthURLResponse{URL: url})
}

// MailCallback exchanges the authorization code
// POST /api/auth/mail/callback
func (h *AuthHandler) MailCallback(c *gin.Context) {
	var req authdto.MailCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "Authorization code is required")
		return
	}

	if err := h.authUsecase.HandleMailCallback(c.Request.Context(), req.Code); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authdto.SuccessResponse{Success: true})
}

// UpdateAIKey validates and stores a new AI key
// POST /api/auth/ai/key
func (h *AuthHandler) UpdateAIKey(c *gin.Context) {
	var req authdto.AIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "API key is required")
		return
	}

	if err := h.authUsecase.UpdateAIKey(c.Request.Context(), req.APIKey); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authdto.SuccessResponse{Success: true})
}
