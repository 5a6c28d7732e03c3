package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// ParsePagination 读取 page / page_size 查询参数，非法值回退为默认值
func ParsePagination(c *gin.Context, defaultSize int) (int, int) {
	page := queryInt(c, "page")
	if page < 1 {
		page = 1
	}
	if defaultSize <= 0 || defaultSize > maxPageSize {
		defaultSize = maxPageSize
	}
	pageSize := queryInt(c, "page_size")
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func queryInt(c *gin.Context, key string) int {
	if c == nil {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}
