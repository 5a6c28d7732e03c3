package public

import (
	handlershared "github.com/snaki-next/internal/http/handlers/shared"
	"github.com/snaki-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getCartSession(c *gin.Context) (string, bool) {
	return handlershared.GetCartSession(c)
}

func requestLocale(c *gin.Context) string {
	return i18n.ResolveLocale(c)
}
