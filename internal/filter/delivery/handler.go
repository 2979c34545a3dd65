package delivery

import (
	"net/http"
	"strconv"

	"github.com/fhlgrn/ReadyReply/internal/filter/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// FilterHandler handles filter-related HTTP requests
type FilterHandler struct {
	filterUsecase usecase.FilterUsecase
}

// NewFilterHandler creates a new FilterHandler
func NewFilterHandler(filterUsecase usecase.FilterUsecase) *FilterHandler {
	return &FilterHandler{
		filterUsecase: filterUsecase,
	}
}

// GetFilters returns every filter
// GET /api/filters
func (h *FilterHandler) GetFilters(c *gin.Context) {
	filters, err := h.filterUsecase.ListFilters()
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

// GetFilterByID returns a specific filter
// GET /api/filters/:id
func (h *FilterHandler) GetFilterByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	filter, err := h.filterUsecase.GetFilter(id)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter)
}

// CreateFilter creates a new filter
// POST /api/filters
func (h *FilterHandler) CreateFilter(c *gin.Context) {
	var req usecase.FilterCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "Invalid filter data")
		return
	}

	filter, err := h.filterUsecase.CreateFilter(req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, filter)
}

// UpdateFilter merges fields into an existing filter
// PATCH /api/filters/:id
func (h *FilterHandler) UpdateFilter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var updates usecase.FilterUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		httpx.BadRequest(c, "Invalid filter data")
		return
	}

	filter, err := h.filterUsecase.UpdateFilter(id, updates)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter)
}

// DeleteFilter deletes a filter
// DELETE /api/filters/:id
func (h *FilterHandler) DeleteFilter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.filterUsecase.DeleteFilter(id)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleFilter flips the enabled flag
// POST /api/filters/:id/toggle
func (h *FilterHandler) ToggleFilter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	filter, err := h.filterUsecase.ToggleFilter(id)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.BadRequest(c, "Invalid filter id")
		return 0, false
	}
	return uint(id), true
}
