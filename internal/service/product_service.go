package service

import (
	"context"
	"fmt"

	"github.com/snaki-next/internal/cache"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/repository"
)

const relatedProductLimit = 4

// ProductQuery 公开商品查询条件
type ProductQuery struct {
	Category    string
	Search      string
	PopularOnly bool
	Page        int
	PageSize    int
}

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ListPublic 获取上架商品列表
func (s *ProductService) ListPublic(query ProductQuery) ([]models.Product, int64, error) {
	products, total, err := s.repo.List(repository.ProductListFilter{
		Page:        query.Page,
		PageSize:    query.PageSize,
		Category:    query.Category,
		Search:      query.Search,
		PopularOnly: query.PopularOnly,
		OnlyActive:  true,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	return products, total, nil
}

// GetProduct 获取商品（含下架），优先读取缓存
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	cached, err := cache.GetProduct(ctx, id)
	if err != nil {
		logger.Warnw("product_cache_get_failed", "product_id", id, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := cache.SetProduct(ctx, product); err != nil {
		logger.Warnw("product_cache_set_failed", "product_id", id, "error", err)
	}
	return product, nil
}

// GetPublic 获取上架商品详情
func (s *ProductService) GetPublic(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Related 相关推荐：热门商品，排除当前商品，最多 4 个
func (s *ProductService) Related(productID uint) ([]models.Product, error) {
	products, _, err := s.repo.List(repository.ProductListFilter{
		PopularOnly: true,
		ExcludeID:   productID,
		Limit:       relatedProductLimit,
		OnlyActive:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	return products, nil
}

// ListCategories 分类列表
func (s *ProductService) ListCategories() ([]models.Category, error) {
	if s.categoryRepo == nil {
		return []models.Category{}, nil
	}
	return s.categoryRepo.List()
}

// SyncCatalog 将静态目录写入存储并清理对应缓存
func (s *ProductService) SyncCatalog(ctx context.Context, categories []models.Category, products []models.Product) error {
	if s.categoryRepo != nil {
		for i := range categories {
			if err := s.categoryRepo.Upsert(&categories[i]); err != nil {
				return fmt.Errorf("upsert category %s: %w", categories[i].Slug, err)
			}
		}
	}
	for i := range products {
		if err := s.repo.Upsert(&products[i]); err != nil {
			return fmt.Errorf("upsert product %d: %w", products[i].ID, err)
		}
		if err := cache.DelProduct(ctx, products[i].ID); err != nil {
			logger.Warnw("product_cache_del_failed", "product_id", products[i].ID, "error", err)
		}
	}
	logger.Infow("catalog_synced", "categories", len(categories), "products", len(products))
	return nil
}
