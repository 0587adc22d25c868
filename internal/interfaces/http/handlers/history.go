// internal/interfaces/http/handlers/history.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/history"
)

// HistoryHandler handles browsing history endpoints
type HistoryHandler struct {
	historyService *history.Service
	logger         logrus.FieldLogger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *history.Service, logger logrus.FieldLogger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// GetHistory handles GET /history
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q history.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.historyService.List(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "History retrieved successfully", entries)
}

// RecordView handles POST /history/view
func (h *HistoryHandler) RecordView(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req history.ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.historyService.RecordView(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "View recorded", view)
}
