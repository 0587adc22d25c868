// internal/interfaces/http/handlers/favorite.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/favorite"
	"github.com/your-org/storefront-backend/internal/domain/recommendation"
)

// FavoriteHandler handles favorites and the recommendations built on them
type FavoriteHandler struct {
	favoriteService       *favorite.Service
	recommendationService *recommendation.Service
	logger                logrus.FieldLogger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService *favorite.Service, recommendationService *recommendation.Service, logger logrus.FieldLogger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService:       favoriteService,
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// GetFavorites handles GET /favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Favorites retrieved successfully", entries)
}

// AddFavorite handles POST /favorites
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req favorite.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fav, err := h.favoriteService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Product added to favorites", fav)
}

// RemoveFavorite handles DELETE /favorites/:id
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Product removed from favorites", nil)
}

// GetRecommendations handles GET /favorites/recommendations
func (h *FavoriteHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.recommendationService.Recommend(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Recommendations retrieved successfully", result)
}
