package whatsapp

import (
	"net/url"
	"strings"
)

// BaseURL WhatsApp 深链前缀
const BaseURL = "https://wa.me/"

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// NormalizeNumber 去除号码中的 +、空格、横线与括号
func NormalizeNumber(number string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(number) {
		switch r {
		case '+', ' ', '-', '(', ')', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeText 按浏览器 encodeURIComponent 规则编码文本
func EscapeText(text string) string {
	return componentReplacer.Replace(url.QueryEscape(text))
}

// BuildLink 生成 https://wa.me/<number>?text=<encoded>
func BuildLink(number, text string) string {
	link := BaseURL + NormalizeNumber(number)
	if text == "" {
		return link
	}
	return link + "?text=" + EscapeText(text)
}
