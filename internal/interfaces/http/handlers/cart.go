// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. Authenticated callers act on their own
// cart; anonymous callers name a guest cart through guestId.
type CartHandler struct {
	cartService *cart.Service
	logger      logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

type guestField struct {
	GuestID string `json:"guestId" form:"guestId"`
}

type addToCartBody struct {
	cart.AddRequest
	guestField
}

type updateCartBody struct {
	cart.UpdateRequest
	guestField
}

type removeFromCartBody struct {
	cart.RemoveRequest
	guestField
}

type mergeCartBody struct {
	GuestID string `json:"guestId" binding:"required"`
}

func identity(c *gin.Context, guestID string) cart.Identity {
	id := cart.Identity{GuestID: guestID}
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		id.UserID = &userID
	}
	return id
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	var q guestField
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.Get(c.Request.Context(), identity(c, q.GuestID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Cart retrieved successfully", result)
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	var body addToCartBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.Add(c.Request.Context(), identity(c, body.GuestID), &body.AddRequest)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Item added to cart successfully", result)
}

// UpdateCartItem handles PUT /cart
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var body updateCartBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.UpdateQuantity(c.Request.Context(), identity(c, body.GuestID), &body.UpdateRequest)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Cart item updated successfully", result)
}

// RemoveFromCart handles DELETE /cart
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	var body removeFromCartBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.Remove(c.Request.Context(), identity(c, body.GuestID), &body.RemoveRequest)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Item removed from cart successfully", result)
}

// MergeCart handles POST /cart/merge
func (h *CartHandler) MergeCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var body mergeCartBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.Merge(c.Request.Context(), userID, body.GuestID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Cart merged successfully", result)
}
