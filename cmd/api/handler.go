package api

import (
	"net/http"
	"time"

	authdelivery "github.com/fhlgrn/ReadyReply/internal/auth/delivery"
	authusecase "github.com/fhlgrn/ReadyReply/internal/auth/usecase"
	filterdelivery "github.com/fhlgrn/ReadyReply/internal/filter/delivery"
	filterusecase "github.com/fhlgrn/ReadyReply/internal/filter/usecase"
	processingdelivery "github.com/fhlgrn/ReadyReply/internal/processing/delivery"
	processingusecase "github.com/fhlgrn/ReadyReply/internal/processing/usecase"
	settingsusecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Usecases groups everything the HTTP layer calls into
type Usecases struct {
	Auth       authusecase.AuthUsecase
	Filters    filterusecase.FilterUsecase
	Settings   settingsusecase.SettingsUsecase
	Pipeline   processingusecase.Pipeline
	Processing processingusecase.ProcessingUsecase
}

type Handler struct {
	authHandler       *authdelivery.AuthHandler
	filterHandler     *filterdelivery.FilterHandler
	processingHandler *processingdelivery.ProcessingHandler
	settingsHandler   *SettingsHandler
	corsOrigin        string
	log               zerolog.Logger
}

func NewHandler(uc Usecases, corsOrigin string, log zerolog.Logger) *Handler {
	return &Handler{
		authHandler:       authdelivery.NewAuthHandler(uc.Auth),
		filterHandler:     filterdelivery.NewFilterHandler(uc.Filters),
		processingHandler: processingdelivery.NewProcessingHandler(uc.Pipeline, uc.Processing),
		settingsHandler:   NewSettingsHandler(uc.Settings),
		corsOrigin:        corsOrigin,
		log:               logger.Component(log, "http"),
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(h.log))
	r.Use(h.cors())

	SetupRoutes(r, h)
	return r
}

// Server wraps the engine in an http.Server so the caller can drain
// in-flight requests with Shutdown
func (h *Handler) Server(addr string) *http.Server {
	h.log.Info().Str("addr", addr).Msg("server starting")
	return &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// cors echoes the request origin unless CORS_ORIGIN pins one
func (h *Handler) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := h.corsOrigin
		if origin == "" {
			origin = c.Request.Header.Get("Origin")
		}
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
