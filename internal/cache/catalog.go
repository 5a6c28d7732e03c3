package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/snaki-next/internal/models"
)

const catalogCacheTTL = 5 * time.Minute

func productDetailKey(id uint) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

// GetProduct 读取商品详情缓存
func GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	hit, err := GetJSON(ctx, productDetailKey(id), &product)
	if err != nil || !hit {
		return nil, err
	}
	return &product, nil
}

// SetProduct 写入商品详情缓存
func SetProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return nil
	}
	return SetJSON(ctx, productDetailKey(product.ID), product, catalogCacheTTL)
}

// DelProduct 删除商品详情缓存
func DelProduct(ctx context.Context, id uint) error {
	return Del(ctx, productDetailKey(id))
}
