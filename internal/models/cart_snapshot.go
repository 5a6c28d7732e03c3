package models

import "time"

// CartSnapshot 购物车快照（键值存储，整份覆盖写入）
type CartSnapshot struct {
	ID        uint      `gorm:"primarykey" json:"id"`                            // 主键
	Key       string    `gorm:"column:storage_key;type:varchar(191);uniqueIndex;not null" json:"key"` // 存储键
	Value     string    `gorm:"type:text;not null" json:"value"`                 // 序列化后的购物车
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                         // 更新时间
}

// TableName 指定表名
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
