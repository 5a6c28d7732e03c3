package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/snaki-next/internal/constants"
	handlershared "github.com/snaki-next/internal/http/handlers/shared"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
// FailOpen 为 true 时计数器不可用直接放行（结账不因 Redis 故障中断）
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
	FailOpen      bool
}

var errRateLimitResult = errors.New("unexpected rate limit result")

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 固定窗口频率限制中间件
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := rule.key(c, keyFunc)
		count, ttl, err := rule.hit(c.Request.Context(), client, key)
		if err != nil {
			if rule.FailOpen {
				handlershared.RequestLog(c).Warnw("rate_limit_unavailable", "key", key, "error", err)
				c.Next()
				return
			}
			handlershared.RespondError(c, response.CodeServiceUnavailable, "error.rate_limit_unavailable", err)
			c.Abort()
			return
		}

		remaining := int64(rule.MaxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		wait := rule.waitSeconds(ttl)
		c.Header("Retry-After", strconv.Itoa(wait))
		msg := i18n.Sprintf(i18n.ResolveLocale(c), rule.messageKey(), wait)
		response.Error(c, response.CodeTooManyRequests, msg)
		c.Abort()
	}
}

func (r RateLimitRule) key(c *gin.Context, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if r.Prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.Prefix, key)
}

// hit 计数加一并返回当前计数与剩余窗口秒数
func (r RateLimitRule) hit(ctx context.Context, client *redis.Client, key string) (int64, int64, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, r.WindowSeconds).Result()
	if err != nil {
		return 0, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, 0, errRateLimitResult
	}
	count, ok := toInt64(values[0])
	if !ok {
		return 0, 0, errRateLimitResult
	}
	ttl, _ := toInt64(values[1])
	return count, ttl, nil
}

func (r RateLimitRule) waitSeconds(ttl int64) int {
	if ttl > 0 {
		return int(ttl)
	}
	if r.WindowSeconds > 0 {
		return r.WindowSeconds
	}
	return 1
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndCartSession 使用购物车会话 + IP 作为限流 key
func KeyByIPAndCartSession(c *gin.Context) string {
	session := strings.TrimSpace(c.GetString(constants.CartSessionContextKey))
	if session == "" {
		return c.ClientIP()
	}
	return fmt.Sprintf("%s|%s", session, c.ClientIP())
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
