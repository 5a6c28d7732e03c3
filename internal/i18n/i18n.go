package i18n

import (
	"fmt"
	"strings"

	"github.com/snaki-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = constants.LocaleFrFR

// T 按语言读取文案，缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(NormalizeLocale(locale), key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 读取带占位符的文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从请求中解析语言
// 优先级：query lang > X-Locale > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	candidates := []string{
		c.Query("lang"),
		c.GetHeader("X-Locale"),
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		candidates = append(candidates, tag)
	}
	for _, candidate := range candidates {
		if locale := matchLocale(candidate); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标识，不支持的语言返回默认语言
func NormalizeLocale(locale string) string {
	if matched := matchLocale(locale); matched != "" {
		return matched
	}
	return DefaultLocale
}

func matchLocale(raw string) string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", "-"))
	if raw == "" || raw == "*" {
		return ""
	}
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(raw, supported) {
			return supported
		}
	}
	primary := strings.ToLower(strings.SplitN(raw, "-", 2)[0])
	for _, supported := range constants.SupportedLocales {
		if strings.HasPrefix(strings.ToLower(supported), primary+"-") {
			return supported
		}
	}
	return ""
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
