package delivery

import (
	"net/http"
	"strconv"

	"github.com/fhlgrn/ReadyReply/internal/processing/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// ProcessingHandler serves pipeline runs, logs and stats
type ProcessingHandler struct {
	pipeline   usecase.Pipeline
	processing usecase.ProcessingUsecase
}

func NewProcessingHandler(pipeline usecase.Pipeline, processing usecase.ProcessingUsecase) *ProcessingHandler {
	return &ProcessingHandler{
		pipeline:   pipeline,
		processing: processing,
	}
}

// Process runs the pipeline synchronously
// POST /api/process
func (h *ProcessingHandler) Process(c *gin.Context) {
	result, err := h.pipeline.Run(c.Request.Context(), usecase.TriggerManual)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLogs returns one page of processing logs, newest first
// GET /api/logs?page=1&limit=10
func (h *ProcessingHandler) GetLogs(c *gin.Context) {
	page := queryInt(c, "page", usecase.DefaultPage)
	limit := queryInt(c, "limit", usecase.DefaultLimit)

	logs, pagination, err := h.processing.ListLogs(page, limit)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": pagination,
	})
}

// GetLogByID returns a single log entry
// GET /api/logs/:id
func (h *ProcessingHandler) GetLogByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.BadRequest(c, "Invalid log id")
		return
	}

	entry, err := h.processing.GetLog(uint(id))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetStats returns the aggregate counters
// GET /api/stats
func (h *ProcessingHandler) GetStats(c *gin.Context) {
	stats, err := h.processing.GetStats()
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
