package public

import (
	handlershared "github.com/parcel-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error, fallbackMsg string) {
	handlershared.RespondError(c, err, fallbackMsg)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}
