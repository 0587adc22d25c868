// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/upload"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// UploadHandler handles image uploads
type UploadHandler struct {
	uploadService *upload.Service
	logger        logrus.FieldLogger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.Service, logger logrus.FieldLogger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// UploadImage handles POST /upload with a single "image" form file
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, apperror.NewBody(apperror.KindValidation, "no image file provided"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, apperror.Internal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	image, err := h.uploadService.UploadImage(c.Request.Context(), &upload.ImageUploadRequest{
		Filename:   header.Filename,
		Size:       header.Size,
		Body:       file,
		UploadedBy: userID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Image uploaded successfully", image)
}
