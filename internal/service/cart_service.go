package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/repository"
)

const (
	cartLockStripes     = 64
	cartSessionMaxLen   = 128
	cartDefaultCurrency = constants.CurrencyLabelDefault
)

// CartLineView 购物车行（用于响应）
type CartLineView struct {
	ProductID       uint                  `json:"id"`
	Name            string                `json:"name"`
	Image           string                `json:"image,omitempty"`
	Quantity        int                   `json:"quantity"`
	SelectedOptions map[string]string     `json:"selectedOptions,omitempty"`
	Options         models.ProductOptions `json:"options,omitempty"`
	OptionLabels    []string              `json:"option_labels,omitempty"`
	BasePrice       models.Money          `json:"base_price"`
	UnitPrice       models.Money          `json:"unit_price"`
	LineTotal       models.Money          `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Lines     []CartLineView `json:"items"`
	Total     models.Money   `json:"total"`
	ItemCount int            `json:"item_count"`
	Currency  string         `json:"currency"`
	Recovered bool           `json:"recovered,omitempty"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	ProductID       uint
	Quantity        int
	SelectedOptions map[string]string
}

// UpdateCartItemInput 修改数量输入
// SelectedOptions 为 nil 时按商品 ID 匹配第一条行
type UpdateCartItemInput struct {
	ProductID       uint
	Quantity        int
	SelectedOptions map[string]string
}

// productLookup 商品读取
type productLookup interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
}

// CartService 购物车会话服务
// 同一会话的请求串行执行，每次请求加载新的 CartStore
type CartService struct {
	storage    repository.CartSnapshotRepository
	products   productLookup
	storageKey string
	currency   string
	notifier   CartNotifier
	locks      [cartLockStripes]sync.Mutex
}

// NewCartService 创建购物车服务
func NewCartService(storage repository.CartSnapshotRepository, products productLookup, storageKey, currency string) *CartService {
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		storageKey = constants.CartStorageKeyDefault
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = cartDefaultCurrency
	}
	return &CartService{
		storage:    storage,
		products:   products,
		storageKey: storageKey,
		currency:   currency,
		notifier:   LogCartNotifier{},
	}
}

// SnapshotKey 会话对应的快照键
func (s *CartService) SnapshotKey(session string) (string, error) {
	session = strings.TrimSpace(session)
	if !validCartSession(session) {
		return "", ErrCartSessionInvalid
	}
	return s.storageKey + ":" + session, nil
}

// WithCart 在会话锁内加载购物车并执行 fn
// 快照损坏时以空购物车继续；存储不可读时返回 ErrCartFetchFailed
func (s *CartService) WithCart(ctx context.Context, session string, notifier CartNotifier, fn func(store *CartStore) error) (*CartView, error) {
	key, err := s.SnapshotKey(session)
	if err != nil {
		return nil, err
	}

	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	combined := MultiCartNotifier{s.notifier}
	if notifier != nil {
		combined = append(combined, notifier)
	}
	store := NewCartStore(s.storage, key, combined)
	result := store.Load(ctx)
	if result.Err != nil && !result.Recovered {
		return nil, result.Err
	}

	var fnErr error
	if fn != nil {
		fnErr = fn(store)
	}
	view := s.buildView(store.Entries())
	view.Recovered = result.Recovered
	return view, fnErr
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, session string) (*CartView, error) {
	return s.WithCart(ctx, session, nil, nil)
}

// Entries 读取购物车行
func (s *CartService) Entries(ctx context.Context, session string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	_, err := s.WithCart(ctx, session, nil, func(store *CartStore) error {
		entries = store.Entries()
		return nil
	})
	return entries, err
}

// AddItem 加入商品，未指定的选项默认取第一个
func (s *CartService) AddItem(ctx context.Context, session string, input AddCartItemInput, notifier CartNotifier) (*CartView, error) {
	if _, err := s.SnapshotKey(session); err != nil {
		return nil, err
	}
	if input.Quantity < 0 || input.Quantity > constants.CartQuantityMax {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, input.Quantity)
	}
	product, err := s.products.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	selected, err := NormalizeSelection(*product, input.SelectedOptions)
	if err != nil {
		return nil, err
	}
	return s.WithCart(ctx, session, notifier, func(store *CartStore) error {
		return store.AddItem(ctx, *product, selected, input.Quantity)
	})
}

// UpdateQuantity 修改数量
// quantity < 1 为空操作，返回未变更的购物车；超过 CartQuantityMax 返回 ErrInvalidQuantity；没有匹配行返回 ErrCartLineNotFound
func (s *CartService) UpdateQuantity(ctx context.Context, session string, input UpdateCartItemInput, notifier CartNotifier) (*CartView, error) {
	if input.Quantity < 1 {
		logger.Debugw("cart_quantity_ignored", "product_id", input.ProductID, "quantity", input.Quantity)
		return s.Get(ctx, session)
	}
	if input.Quantity > constants.CartQuantityMax {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, input.Quantity)
	}
	return s.WithCart(ctx, session, notifier, func(store *CartStore) error {
		var (
			updated bool
			err     error
		)
		if input.SelectedOptions == nil {
			updated, err = store.UpdateQuantity(ctx, input.ProductID, input.Quantity)
		} else {
			updated, err = store.UpdateLineQuantity(ctx, input.ProductID, input.SelectedOptions, input.Quantity)
		}
		if err != nil {
			return err
		}
		if !updated {
			return ErrCartLineNotFound
		}
		return nil
	})
}

// RemoveItem 移除商品的所有行
func (s *CartService) RemoveItem(ctx context.Context, session string, productID uint, notifier CartNotifier) (*CartView, error) {
	return s.WithCart(ctx, session, notifier, func(store *CartStore) error {
		return store.RemoveItem(ctx, productID)
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, session string, notifier CartNotifier) (*CartView, error) {
	return s.WithCart(ctx, session, notifier, func(store *CartStore) error {
		return store.ClearCart(ctx)
	})
}

func (s *CartService) buildView(entries []models.CartEntry) *CartView {
	lines := make([]CartLineView, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, CartLineView{
			ProductID:       entry.ProductID,
			Name:            entry.Name,
			Image:           entry.Image,
			Quantity:        entry.Quantity,
			SelectedOptions: entry.SelectedOptions,
			Options:         entry.Options,
			OptionLabels:    SelectedChoiceLabels(entry),
			BasePrice:       models.NewMoneyFromInt(entry.Price),
			UnitPrice:       models.NewMoneyFromInt(UnitPrice(entry)),
			LineTotal:       models.NewMoneyFromInt(LineTotal(entry)),
		})
	}
	return &CartView{
		Lines:     lines,
		Total:     models.NewMoneyFromInt(CartTotal(entries)),
		ItemCount: ItemCount(entries),
		Currency:  s.currency,
	}
}

func (s *CartService) lockFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.locks[h.Sum32()%cartLockStripes]
}

func validCartSession(session string) bool {
	if session == "" || len(session) > cartSessionMaxLen {
		return false
	}
	for _, r := range session {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
