package models

import (
	"database/sql/driver"
	"encoding/json"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint            `gorm:"primarykey;autoIncrement:false" json:"id"`                 // 商品编号（目录固定）
	Name            string          `gorm:"type:varchar(120);not null" json:"name"`                   // 名称
	Description     string          `gorm:"type:varchar(500)" json:"description"`                     // 描述
	Price           int64           `gorm:"not null;default:0" json:"price"`                          // 基础价格（FCFA）
	Category        string          `gorm:"type:varchar(40);not null;index" json:"category"`          // 分类 slug
	Image           string          `gorm:"type:varchar(500)" json:"image"`                           // 图片路径
	Popular         bool            `gorm:"default:false;index" json:"popular"`                       // 是否热门
	Ingredients     StringArray     `gorm:"type:json" json:"ingredients,omitempty"`                   // 配料
	NutritionalInfo NutritionalInfo `gorm:"type:json" json:"nutritionalInfo"`                         // 营养信息
	Options         ProductOptions  `gorm:"type:json" json:"options,omitempty"`                       // 可选项
	IsActive        bool            `gorm:"default:true;index" json:"is_active"`                      // 是否上架
	SortOrder       int             `gorm:"default:0;index" json:"sort_order"`                        // 排序权重
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt       time.Time       `json:"updated_at"`                                               // 更新时间
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// HasOptions 商品是否定义了可选项
func (p Product) HasOptions() bool {
	return len(p.Options) > 0
}

// NutritionalInfo 营养信息
type NutritionalInfo struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Value 实现 driver.Valuer 接口
func (n NutritionalInfo) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan 实现 sql.Scanner 接口
func (n *NutritionalInfo) Scan(value interface{}) error {
	if value == nil {
		*n = NutritionalInfo{}
		return nil
	}
	return scanJSON(value, n)
}

// ProductOptions 商品可选项（分组 key -> 分组）
type ProductOptions map[string]OptionGroup

// OptionGroup 可选项分组
type OptionGroup struct {
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Choices []Choice `json:"choices"`
}

// Choice 可选项取值，Price 为加价（FCFA，0 表示不加价）
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int64  `json:"price"`
}

// Keys 按字典序返回分组 key
func (o ProductOptions) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone 深拷贝可选项，用于购物车快照
func (o ProductOptions) Clone() ProductOptions {
	if o == nil {
		return nil
	}
	cloned := make(ProductOptions, len(o))
	for key, group := range o {
		choices := make([]Choice, len(group.Choices))
		copy(choices, group.Choices)
		cloned[key] = OptionGroup{Type: group.Type, Label: group.Label, Choices: choices}
	}
	return cloned
}

// Value 实现 driver.Valuer 接口
func (o ProductOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan 实现 sql.Scanner 接口
func (o *ProductOptions) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	return scanJSON(value, o)
}
