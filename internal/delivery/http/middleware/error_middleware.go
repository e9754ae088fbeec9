package middleware

import (
	"errors"
	"net/http"

	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var (
			appErr    *apperror.AppError
			violation *apperror.ReferentialViolation
			remote    *apperror.RemoteStoreError
		)
		switch {
		case errors.As(err, &violation):
			response.Error(c, http.StatusConflict, violation.Message, violation)
		case errors.As(err, &appErr):
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, domain.ErrNoFeedback):
			response.Error(c, http.StatusNotFound, "No feedback yet", nil)
		case errors.As(err, &remote):
			log.Error("remote store failure",
				zap.String("op", remote.Op),
				zap.String("entity", remote.Entity),
				zap.String("id", remote.ID),
				zap.Error(remote.Err),
				zap.String("request_id", c.GetString(string(domain.KeyRequestID))),
			)
			response.Error(c, http.StatusBadGateway, "The data store is unavailable. Please try again.", nil)
		default:
			// Internal details stay in the log.
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
