package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/subscriber"
)

// SubscriberHandler handles newsletter sign-ups
type SubscriberHandler struct {
	subscriberService *subscriber.Service
	logger            logrus.FieldLogger
}

func NewSubscriberHandler(subscriberService *subscriber.Service, logger logrus.FieldLogger) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberService: subscriberService,
		logger:            logger,
	}
}

// Subscribe handles POST /subscribe
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req subscriber.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sub, err := h.subscriberService.Subscribe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully subscribed to the newsletter", sub)
}
