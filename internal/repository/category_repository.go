package repository

import (
	"sort"
	"sync"

	"github.com/snaki-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	Upsert(category *models.Category) error
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Upsert 按 slug 写入分类
func (r *GormCategoryRepository) Upsert(category *models.Category) error {
	if category == nil {
		return nil
	}
	var existing models.Category
	err := r.db.Where("slug = ?", category.Slug).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID > 0 {
		category.ID = existing.ID
	}
	return r.db.Save(category).Error
}

// MemoryCategoryRepository 内存实现
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
}

// NewMemoryCategoryRepository 创建内存分类仓库
func NewMemoryCategoryRepository(categories []models.Category) *MemoryCategoryRepository {
	cloned := make([]models.Category, len(categories))
	copy(cloned, categories)
	return &MemoryCategoryRepository{categories: cloned}
}

// List 分类列表
func (r *MemoryCategoryRepository) List() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.Category, len(r.categories))
	copy(result, r.categories)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

// Upsert 按 slug 写入分类
func (r *MemoryCategoryRepository) Upsert(category *models.Category) error {
	if category == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].Slug == category.Slug {
			r.categories[i] = *category
			return nil
		}
	}
	r.categories = append(r.categories, *category)
	return nil
}
