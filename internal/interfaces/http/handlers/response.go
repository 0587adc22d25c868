// internal/interfaces/http/handlers/response.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/validation"
)

// respondError writes the error envelope. Causes of internal and upstream
// failures are logged and never sent to the client.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal || kind == apperror.KindUpstream {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Error("request failed")
	}
	_ = c.Error(err)
	c.JSON(kind.HTTPStatus(), apperror.ToBody(err))
}

// respondBindError reports a request body or query that failed to bind
func respondBindError(c *gin.Context, err error) {
	message := "invalid request body"
	if validation.IsValidationError(err) {
		message = validation.Convert(err).Error()
	}
	c.JSON(http.StatusBadRequest, apperror.NewBody(apperror.KindValidation, message))
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// uuidParam parses a path parameter, writing a validation error on failure
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperror.NewBody(apperror.KindValidation, "invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user, writing 401 when absent
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apperror.NewBody(apperror.KindUnauthorized, "authentication required"))
		return uuid.Nil, false
	}
	return id, true
}
