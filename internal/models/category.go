package models

import (
	"time"
)

// Category 分类表
type Category struct {
	ID        uint      `gorm:"primarykey" json:"-"`                         // 主键
	Slug      string    `gorm:"uniqueIndex;not null" json:"id"`              // 唯一标识（tacos / bubble-tea）
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`      // 名称
	Icon      string    `gorm:"type:varchar(120)" json:"icon"`               // 图标名称
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`           // 排序权重
	CreatedAt time.Time `gorm:"index" json:"-"`                              // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
