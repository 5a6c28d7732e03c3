package shared

import (
	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 与购物车会话的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	kv := make([]interface{}, 0, 4)
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			kv = append(kv, "request_id", id)
		}
	}
	if session, ok := c.Get(constants.CartSessionContextKey); ok {
		if id, ok := session.(string); ok && id != "" {
			kv = append(kv, constants.CartSessionContextKey, id)
		}
	}
	return logger.SW(kv...)
}

// RespondError 返回国际化错误响应
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	respond(c, response.NewAppError(code, key, msg, err), nil)
}

// RespondErrorWithData 返回携带数据的错误响应（自定义消息）
func RespondErrorWithData(c *gin.Context, code int, msg string, data interface{}, err error) {
	respond(c, response.WrapError(code, msg, err), data)
}

// respond 有原始错误时按错误码分级记录日志
func respond(c *gin.Context, appErr *response.AppError, data interface{}) {
	if appErr.Err != nil {
		log := RequestLog(c)
		if appErr.Code >= response.CodeInternal {
			log.Errorw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		} else {
			log.Warnw("handler_rejected", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		}
	}
	response.Fail(c, appErr, data)
}
