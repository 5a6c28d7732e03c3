package shared

import (
	"strings"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCartSession 读取中间件写入的购物车会话，缺失时返回错误响应。
func GetCartSession(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.CartSessionContextKey)
	if !exists {
		RespondError(c, response.CodeBadRequest, "error.cart_session_invalid", nil)
		return "", false
	}
	session, ok := value.(string)
	if !ok || strings.TrimSpace(session) == "" {
		RespondError(c, response.CodeBadRequest, "error.cart_session_invalid", nil)
		return "", false
	}
	return session, true
}
