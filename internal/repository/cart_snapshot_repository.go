package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/snaki-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshotRepository 购物车快照键值存储
// 每次写入都是整份覆盖，多端并发写入按最后写入为准
type CartSnapshotRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GormCartSnapshotRepository GORM 实现
type GormCartSnapshotRepository struct {
	db *gorm.DB
}

// NewCartSnapshotRepository 创建快照仓库
func NewCartSnapshotRepository(db *gorm.DB) *GormCartSnapshotRepository {
	return &GormCartSnapshotRepository{db: db}
}

// Get 读取快照
func (r *GormCartSnapshotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var snapshot models.CartSnapshot
	if err := r.db.WithContext(ctx).Where("storage_key = ?", key).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return snapshot.Value, true, nil
}

// Put 覆盖写入快照
func (r *GormCartSnapshotRepository) Put(ctx context.Context, key, value string) error {
	snapshot := models.CartSnapshot{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&snapshot).Error
}

// Delete 删除快照
func (r *GormCartSnapshotRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.CartSnapshot{}).Error
}

// MemoryCartSnapshotRepository 内存实现
type MemoryCartSnapshotRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryCartSnapshotRepository 创建内存快照仓库
func NewMemoryCartSnapshotRepository() *MemoryCartSnapshotRepository {
	return &MemoryCartSnapshotRepository{values: make(map[string]string)}
}

// Get 读取快照
func (r *MemoryCartSnapshotRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[key]
	return value, ok, nil
}

// Put 覆盖写入快照
func (r *MemoryCartSnapshotRepository) Put(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// Delete 删除快照
func (r *MemoryCartSnapshotRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}
