package shared

import (
	"errors"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.S().With("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回业务错误响应。
// 服务层抛出的 AppError 按其自带状态码与消息返回，其余错误按兜底消息返回并记录日志。
func RespondError(c *gin.Context, err error, fallbackMsg string) {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.Code, appErr.Message)
		return
	}
	RequestLog(c).Errorw("handler_error",
		"message", fallbackMsg,
		"error", err,
	)
	response.Error(c, response.CodeInternal, fallbackMsg)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
