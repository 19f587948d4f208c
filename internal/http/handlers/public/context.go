package public

import (
	handlershared "github.com/parcel-next/internal/http/handlers/shared"

	"github.com/parcel-next/internal/models"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func getUserRole(c *gin.Context) (models.UserRole, bool) {
	role, ok := handlershared.GetContextString(c, "user_role")
	if !ok {
		return "", false
	}
	return models.UserRole(role), true
}
