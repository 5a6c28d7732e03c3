package repository

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/snaki-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Upsert(product *models.Product) error
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.PopularOnly {
		query = query.Where("popular = ?", true)
	}
	if filter.ExcludeID > 0 {
		query = query.Where("id <> ?", filter.ExcludeID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		condition, argCount := buildCaseInsensitiveLikeCondition(r.db, []string{"name"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品，不存在返回 nil
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Upsert 按 ID 写入商品（目录同步使用）
func (r *GormProductRepository) Upsert(product *models.Product) error {
	if product == nil {
		return nil
	}
	return r.db.Save(product).Error
}

// MemoryProductRepository 内存实现，目录直接来自静态数据
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uint]models.Product
}

// NewMemoryProductRepository 创建内存商品仓库
func NewMemoryProductRepository(products []models.Product) *MemoryProductRepository {
	repo := &MemoryProductRepository{products: make(map[uint]models.Product, len(products))}
	for _, product := range products {
		repo.products[product.ID] = product
	}
	return repo
}

// List 商品列表
func (r *MemoryProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	matched := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		if filter.OnlyActive && !product.IsActive {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		if filter.PopularOnly && !product.Popular {
			continue
		}
		if filter.ExcludeID > 0 && product.ID == filter.ExcludeID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		matched = append(matched, product)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SortOrder != matched[j].SortOrder {
			return matched[i].SortOrder < matched[j].SortOrder
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	matched = paginateSlice(matched, filter.Page, filter.PageSize)
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// GetByID 根据 ID 获取商品，不存在返回 nil
func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// Upsert 按 ID 写入商品
func (r *MemoryProductRepository) Upsert(product *models.Product) error {
	if product == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}
