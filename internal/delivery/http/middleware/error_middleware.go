package middleware

import (
	"errors"
	"net/http"

	"jobspring-backend/internal/delivery/http/response"
	"jobspring-backend/pkg/apperror"
	"jobspring-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			log := logger.WithRequestID(response.RequestIDFrom(c))
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					log.Error("internal error", "error", appErr.Err, "path", c.FullPath())
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// SECURITY: Never expose internal error details to clients.
				// Log the actual error server-side for debugging, but send a
				// generic message to the user to prevent information disclosure.
				log.Error("unhandled error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
