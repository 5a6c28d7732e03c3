package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildCaseInsensitiveLikeCondition 构建忽略大小写的 LIKE 条件，并返回参数数量。
func buildCaseInsensitiveLikeCondition(db *gorm.DB, columns []string) (string, int) {
	return buildCaseInsensitiveLikeConditionByDialect(dbDialectName(db), columns)
}

func buildCaseInsensitiveLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	postgres := isPostgresDialect(dialect)
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		if postgres {
			parts = append(parts, fmt.Sprintf("%s ILIKE ?", trimmed))
		} else {
			// sqlite 的 LIKE 仅对 ASCII 忽略大小写，统一转小写后比较
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", trimmed))
		}
	}
	return strings.Join(parts, " OR "), len(parts)
}

func isPostgresDialect(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
