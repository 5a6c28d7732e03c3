package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/repository"
)

// LoadResult 购物车加载结果
type LoadResult struct {
	Found     bool  // 存储中存在快照
	Recovered bool  // 快照损坏或含非法行，已回退/清理
	Dropped   int   // 被清理的非法行数
	Err       error // 读取或解析错误
}

// CartStore 单个快照键对应的购物车
// 每次变更后整体重算总额并写回完整数组
type CartStore struct {
	mu       sync.Mutex
	storage  repository.CartSnapshotRepository
	key      string
	notifier CartNotifier
	entries  []models.CartEntry
	total    int64
}

// NewCartStore 创建购物车
func NewCartStore(storage repository.CartSnapshotRepository, key string, notifier CartNotifier) *CartStore {
	if notifier == nil {
		notifier = LogCartNotifier{}
	}
	return &CartStore{
		storage:  storage,
		key:      key,
		notifier: notifier,
		entries:  []models.CartEntry{},
	}
}

// Key 快照键
func (s *CartStore) Key() string {
	return s.key
}

// Load 从存储读取快照
// 快照缺失视为空购物车；解析失败回退为空购物车并记录告警，不向调用方抛出
func (s *CartStore) Load(ctx context.Context) LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []models.CartEntry{}
	s.total = 0
	if s.storage == nil {
		return LoadResult{}
	}

	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		logger.Warnw("cart_snapshot_fetch_failed", "key", s.key, "error", err)
		return LoadResult{Err: fmt.Errorf("%w: %v", ErrCartFetchFailed, err)}
	}
	if !found {
		return LoadResult{}
	}

	entries, err := DecodeCart(raw)
	if err != nil {
		logger.Warnw("cart_snapshot_parse_failed", "key", s.key, "error", err)
		return LoadResult{Found: true, Recovered: true, Err: err}
	}

	kept := make([]models.CartEntry, 0, len(entries))
	clamped := 0
	for _, entry := range entries {
		if entry.ProductID == 0 || entry.Quantity < 1 {
			continue
		}
		if entry.Quantity > constants.CartQuantityMax {
			entry.Quantity = constants.CartQuantityMax
			clamped++
		}
		kept = append(kept, entry)
	}
	result := LoadResult{Found: true, Dropped: len(entries) - len(kept)}
	if result.Dropped > 0 {
		result.Recovered = true
		logger.Warnw("cart_snapshot_lines_dropped", "key", s.key, "dropped", result.Dropped)
	}
	if clamped > 0 {
		result.Recovered = true
		logger.Warnw("cart_snapshot_quantity_clamped", "key", s.key, "lines", clamped, "max", constants.CartQuantityMax)
	}
	s.entries = kept
	s.recompute()
	return result
}

// AddItem 加入商品，相同商品与选项的行合并数量
// quantity 为 0 时按 1 处理；超过 CartQuantityMax（含合并后）返回 ErrInvalidQuantity 且不修改购物车
func (s *CartStore) AddItem(ctx context.Context, product models.Product, selected map[string]string, quantity int) error {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 || quantity > constants.CartQuantityMax {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	merged := false
	for i := range s.entries {
		entry := &s.entries[i]
		if entry.ProductID == product.ID && SameSelection(entry.SelectedOptions, selected) {
			if entry.Quantity > constants.CartQuantityMax-quantity {
				s.mu.Unlock()
				return fmt.Errorf("%w: %d + %d exceeds %d", ErrInvalidQuantity, entry.Quantity, quantity, constants.CartQuantityMax)
			}
			entry.Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.entries = append(s.entries, models.NewCartEntry(product, selected, quantity))
	}
	err := s.commit(ctx)
	s.mu.Unlock()

	s.emit(ctx, CartEvent{Type: constants.CartEventProductAdded, ProductID: product.ID, ProductName: product.Name})
	return err
}

// RemoveItem 移除该商品的所有行，即使没有匹配也会写回
func (s *CartStore) RemoveItem(ctx context.Context, productID uint) error {
	s.mu.Lock()
	name := ""
	kept := make([]models.CartEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.ProductID == productID {
			name = entry.Name
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept
	err := s.commit(ctx)
	s.mu.Unlock()

	s.emit(ctx, CartEvent{Type: constants.CartEventProductRemoved, ProductID: productID, ProductName: name})
	return err
}

// UpdateQuantity 设置第一条匹配商品行的数量
// quantity < 1 时静默忽略且不写回；超过 CartQuantityMax 返回 ErrInvalidQuantity；没有匹配行返回 false
func (s *CartStore) UpdateQuantity(ctx context.Context, productID uint, quantity int) (bool, error) {
	return s.updateQuantity(ctx, quantity, func(entry models.CartEntry) bool {
		return entry.ProductID == productID
	})
}

// UpdateLineQuantity 按商品与选项精确定位行并设置数量
func (s *CartStore) UpdateLineQuantity(ctx context.Context, productID uint, selected map[string]string, quantity int) (bool, error) {
	return s.updateQuantity(ctx, quantity, func(entry models.CartEntry) bool {
		return entry.ProductID == productID && SameSelection(entry.SelectedOptions, selected)
	})
}

func (s *CartStore) updateQuantity(ctx context.Context, quantity int, match func(models.CartEntry) bool) (bool, error) {
	if quantity < 1 {
		logger.Debugw("cart_quantity_rejected", "key", s.key, "quantity", quantity)
		return false, nil
	}
	if quantity > constants.CartQuantityMax {
		return false, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	index := -1
	for i, entry := range s.entries {
		if match(entry) {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.entries[index].Quantity = quantity
	event := CartEvent{
		Type:        constants.CartEventQuantityUpdate,
		ProductID:   s.entries[index].ProductID,
		ProductName: s.entries[index].Name,
	}
	err := s.commit(ctx)
	s.mu.Unlock()

	s.emit(ctx, event)
	return true, err
}

// ClearCart 清空购物车并写回空数组
func (s *CartStore) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.entries = []models.CartEntry{}
	err := s.commit(ctx)
	s.mu.Unlock()

	s.emit(ctx, CartEvent{Type: constants.CartEventCartCleared})
	return err
}

// Entries 返回购物车行副本
func (s *CartStore) Entries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry.Clone())
	}
	return out
}

// Total 购物车总额
func (s *CartStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ItemCount 商品件数
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemCount(s.entries)
}

func (s *CartStore) recompute() {
	s.total = CartTotal(s.entries)
}

// commit 重算总额并写回快照，调用方需持有锁
func (s *CartStore) commit(ctx context.Context) error {
	s.recompute()
	if s.storage == nil {
		return nil
	}
	raw, err := EncodeCart(s.entries)
	if err != nil {
		logger.Errorw("cart_snapshot_encode_failed", "key", s.key, "error", err)
		return fmt.Errorf("%w: %v", ErrCartPersistFailed, err)
	}
	if err := s.storage.Put(ctx, s.key, raw); err != nil {
		logger.Warnw("cart_snapshot_persist_failed", "key", s.key, "error", err)
		return fmt.Errorf("%w: %v", ErrCartPersistFailed, err)
	}
	return nil
}

func (s *CartStore) emit(ctx context.Context, event CartEvent) {
	event.Key = s.key
	s.notifier.Notify(ctx, event.Localize(i18n.DefaultLocale))
}
