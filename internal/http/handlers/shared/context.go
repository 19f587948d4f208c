package shared

import (
	"github.com/parcel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			response.BadRequest(c, "Invalid "+key)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			response.BadRequest(c, "Invalid "+key)
			return 0, false
		}
		return uint(v), true
	default:
		response.Error(c, response.CodeInternal, "Invalid "+key+" type")
		return 0, false
	}
}

// GetContextString 从上下文读取字符串值。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return s, true
}
