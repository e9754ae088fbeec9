package v1

import (
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func actorID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

// bindJSON decodes the body into dst and attaches a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.New(400, "Invalid request body", err))
		return false
	}
	return true
}
