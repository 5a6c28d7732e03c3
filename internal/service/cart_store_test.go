package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/repository"
)

const testCartKey = "fastbite-cart:test"

type failingSnapshotRepo struct {
	*repository.MemoryCartSnapshotRepository
	failGet bool
	failPut bool
}

func (r *failingSnapshotRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if r.failGet {
		return "", false, errors.New("storage offline")
	}
	return r.MemoryCartSnapshotRepository.Get(ctx, key)
}

func (r *failingSnapshotRepo) Put(ctx context.Context, key, value string) error {
	if r.failPut {
		return errors.New("quota exceeded")
	}
	return r.MemoryCartSnapshotRepository.Put(ctx, key, value)
}

func newTestCartStore(t *testing.T) (*CartStore, *repository.MemoryCartSnapshotRepository, *CartEventRecorder) {
	t.Helper()
	storage := repository.NewMemoryCartSnapshotRepository()
	recorder := NewCartEventRecorder()
	store := NewCartStore(storage, testCartKey, recorder)
	if result := store.Load(context.Background()); result.Err != nil {
		t.Fatalf("load failed: %v", result.Err)
	}
	return store, storage, recorder
}

func persistedEntries(t *testing.T, storage repository.CartSnapshotRepository) []models.CartEntry {
	t.Helper()
	raw, found, err := storage.Get(context.Background(), testCartKey)
	if err != nil || !found {
		t.Fatalf("snapshot missing: found=%v err=%v", found, err)
	}
	entries, err := DecodeCart(raw)
	if err != nil {
		t.Fatalf("decode snapshot failed: %v", err)
	}
	return entries
}

func TestCartStoreMergesIdenticalOptions(t *testing.T) {
	ctx := context.Background()
	store, storage, _ := newTestCartStore(t)
	milk := map[string]string{"milk": "with_milk"}
	if err := store.AddItem(ctx, chocoPerle(), milk, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "with_milk"}, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	entries := store.Entries()
	if len(entries) != 1 || entries[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", entries)
	}
	if got := persistedEntries(t, storage); len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("persisted snapshot mismatch: %+v", got)
	}
}

func TestCartStoreKeepsDistinctOptionLines(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestCartStore(t)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "with_milk"}, 1)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "without_milk"}, 1)
	if entries := store.Entries(); len(entries) != 2 {
		t.Fatalf("expected two lines, got %+v", entries)
	}
	if store.Total() != 2000+1500 {
		t.Fatalf("unexpected total %d", store.Total())
	}
}

func TestCartStoreAddDefaultsQuantity(t *testing.T) {
	ctx := context.Background()
	store, _, recorder := newTestCartStore(t)
	if err := store.AddItem(ctx, plainProduct(), nil, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if store.ItemCount() != 1 {
		t.Fatalf("quantity 0 should default to 1, got %d", store.ItemCount())
	}
	if err := store.AddItem(ctx, plainProduct(), nil, -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative quantity should fail, got %v", err)
	}
	events := recorder.Events()
	if len(events) != 1 || events[0].Type != constants.CartEventProductAdded {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Title != "Produit ajouté" || events[0].Description != "Tacos Poulet a été ajouté au panier" {
		t.Fatalf("unexpected toast copy: %+v", events[0])
	}
	if events[0].Key != testCartKey {
		t.Fatalf("event key want %s got %s", testCartKey, events[0].Key)
	}
}

func TestCartStoreUpdateQuantityFloor(t *testing.T) {
	ctx := context.Background()
	store, storage, _ := newTestCartStore(t)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "with_milk"}, 3)
	before, _, _ := storage.Get(ctx, testCartKey)

	for _, qty := range []int{0, -5} {
		updated, err := store.UpdateQuantity(ctx, chocoPerle().ID, qty)
		if err != nil || updated {
			t.Fatalf("quantity %d should be ignored, updated=%v err=%v", qty, updated, err)
		}
	}
	if entries := store.Entries(); entries[0].Quantity != 3 {
		t.Fatalf("quantity changed: %+v", entries)
	}
	after, _, _ := storage.Get(ctx, testCartKey)
	if before != after {
		t.Fatalf("rejected update should not persist")
	}
}

func TestCartStoreUpdateQuantityFirstMatch(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestCartStore(t)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "with_milk"}, 1)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "without_milk"}, 1)

	updated, err := store.UpdateQuantity(ctx, chocoPerle().ID, 4)
	if err != nil || !updated {
		t.Fatalf("update failed: updated=%v err=%v", updated, err)
	}
	entries := store.Entries()
	if entries[0].Quantity != 4 || entries[1].Quantity != 1 {
		t.Fatalf("only the first line should change: %+v", entries)
	}

	updated, err = store.UpdateLineQuantity(ctx, chocoPerle().ID, map[string]string{"milk": "without_milk"}, 2)
	if err != nil || !updated {
		t.Fatalf("line update failed: updated=%v err=%v", updated, err)
	}
	entries = store.Entries()
	if entries[0].Quantity != 4 || entries[1].Quantity != 2 {
		t.Fatalf("line update should target exact options: %+v", entries)
	}
	if store.Total() != 4*2000+2*1500 {
		t.Fatalf("total not recomputed: %d", store.Total())
	}

	updated, err = store.UpdateQuantity(ctx, 4242, 2)
	if err != nil || updated {
		t.Fatalf("missing product should not update, updated=%v err=%v", updated, err)
	}
}

func TestCartStoreRemoveItemDropsAllLines(t *testing.T) {
	ctx := context.Background()
	store, storage, recorder := newTestCartStore(t)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "with_milk"}, 1)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "without_milk"}, 1)
	_ = store.AddItem(ctx, plainProduct(), nil, 1)

	if err := store.RemoveItem(ctx, chocoPerle().ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	entries := store.Entries()
	if len(entries) != 1 || entries[0].ProductID != plainProduct().ID {
		t.Fatalf("expected only the plain product left, got %+v", entries)
	}
	if got := persistedEntries(t, storage); len(got) != 1 {
		t.Fatalf("snapshot should contain one line, got %+v", got)
	}

	if err := store.RemoveItem(ctx, 4242); err != nil {
		t.Fatalf("removing unknown product should still persist: %v", err)
	}
	events := recorder.Events()
	last := events[len(events)-1]
	if last.Type != constants.CartEventProductRemoved || last.Title != "Produit retiré" {
		t.Fatalf("unexpected remove event: %+v", last)
	}
}

func TestCartStoreClearCart(t *testing.T) {
	ctx := context.Background()
	store, storage, recorder := newTestCartStore(t)
	_ = store.AddItem(ctx, chocoPerle(), nil, 2)
	if err := store.ClearCart(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if store.ItemCount() != 0 || store.Total() != 0 {
		t.Fatalf("cart should be empty, count=%d total=%d", store.ItemCount(), store.Total())
	}
	raw, _, _ := storage.Get(ctx, testCartKey)
	if raw != "[]" {
		t.Fatalf("persisted snapshot should be [], got %q", raw)
	}
	events := recorder.Events()
	if events[len(events)-1].Type != constants.CartEventCartCleared {
		t.Fatalf("expected cart_cleared event, got %+v", events)
	}
}

func TestCartStoreRecoversFromMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryCartSnapshotRepository()
	_ = storage.Put(ctx, testCartKey, "{definitely not json")
	store := NewCartStore(storage, testCartKey, nil)

	result := store.Load(ctx)
	if !result.Recovered || result.Err == nil {
		t.Fatalf("expected recovered load, got %+v", result)
	}
	if store.ItemCount() != 0 || len(store.Entries()) != 0 {
		t.Fatalf("malformed snapshot should yield empty cart")
	}
	if err := store.AddItem(ctx, plainProduct(), nil, 1); err != nil {
		t.Fatalf("store should stay usable: %v", err)
	}
}

func TestCartStoreLoadDropsInvalidLines(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryCartSnapshotRepository()
	_ = storage.Put(ctx, testCartKey, `[{"id":101,"name":"Choco Perle","price":1500,"quantity":2},{"id":0,"quantity":1},{"id":102,"quantity":0}]`)
	store := NewCartStore(storage, testCartKey, nil)

	result := store.Load(ctx)
	if !result.Found || !result.Recovered || result.Dropped != 2 {
		t.Fatalf("unexpected load result: %+v", result)
	}
	if store.ItemCount() != 2 || store.Total() != 3000 {
		t.Fatalf("unexpected cart after load: count=%d total=%d", store.ItemCount(), store.Total())
	}
}

func TestCartStoreQuantityUpperBound(t *testing.T) {
	ctx := context.Background()
	store, storage, recorder := newTestCartStore(t)
	selected := map[string]string{"milk": "with_milk"}

	if err := store.AddItem(ctx, chocoPerle(), selected, math.MaxInt); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("huge quantity should fail, got %v", err)
	}
	if err := store.AddItem(ctx, chocoPerle(), selected, constants.CartQuantityMax-1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.AddItem(ctx, chocoPerle(), selected, 2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("merge past max should fail, got %v", err)
	}
	if err := store.AddItem(ctx, chocoPerle(), selected, 1); err != nil {
		t.Fatalf("merge up to max failed: %v", err)
	}
	if store.ItemCount() != constants.CartQuantityMax || store.Total() != 2000*constants.CartQuantityMax {
		t.Fatalf("unexpected cart: count=%d total=%d", store.ItemCount(), store.Total())
	}
	if _, err := store.UpdateQuantity(ctx, chocoPerle().ID, constants.CartQuantityMax+1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("update past max should fail, got %v", err)
	}
	entries := persistedEntries(t, storage)
	if len(entries) != 1 || entries[0].Quantity != constants.CartQuantityMax {
		t.Fatalf("persisted line should stay at max: %+v", entries)
	}
	if added := len(recorder.Events()); added != 2 {
		t.Fatalf("only successful adds should emit events, got %d", added)
	}

	reloaded := NewCartStore(storage, testCartKey, nil)
	if result := reloaded.Load(ctx); result.Err != nil || result.Dropped != 0 || len(reloaded.Entries()) != 1 {
		t.Fatalf("line should survive reload: %+v", result)
	}
}

func TestCartStoreLoadClampsOversizedQuantity(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryCartSnapshotRepository()
	_ = storage.Put(ctx, testCartKey, `[{"id":101,"name":"Choco Perle","price":1500,"quantity":9223372036854775807}]`)
	store := NewCartStore(storage, testCartKey, nil)

	result := store.Load(ctx)
	if !result.Recovered || result.Dropped != 0 {
		t.Fatalf("unexpected load result: %+v", result)
	}
	if store.ItemCount() != constants.CartQuantityMax || store.Total() != 1500*constants.CartQuantityMax {
		t.Fatalf("oversized line should be clamped: count=%d total=%d", store.ItemCount(), store.Total())
	}
}

func TestCartStoreLoadStorageError(t *testing.T) {
	storage := &failingSnapshotRepo{MemoryCartSnapshotRepository: repository.NewMemoryCartSnapshotRepository(), failGet: true}
	store := NewCartStore(storage, testCartKey, nil)
	result := store.Load(context.Background())
	if !errors.Is(result.Err, ErrCartFetchFailed) || result.Recovered {
		t.Fatalf("expected fetch failure, got %+v", result)
	}
}

func TestCartStorePersistFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	storage := &failingSnapshotRepo{MemoryCartSnapshotRepository: repository.NewMemoryCartSnapshotRepository(), failPut: true}
	store := NewCartStore(storage, testCartKey, nil)
	store.Load(ctx)

	err := store.AddItem(ctx, plainProduct(), nil, 1)
	if !errors.Is(err, ErrCartPersistFailed) {
		t.Fatalf("expected persist failure, got %v", err)
	}
	if store.ItemCount() != 1 {
		t.Fatalf("in-memory mutation should stand, count=%d", store.ItemCount())
	}
}

func TestCartStoreEntriesAreCopies(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestCartStore(t)
	_ = store.AddItem(ctx, chocoPerle(), map[string]string{"milk": "with_milk"}, 1)
	entries := store.Entries()
	entries[0].Quantity = 99
	entries[0].SelectedOptions["milk"] = "without_milk"
	if got := store.Entries(); got[0].Quantity != 1 || got[0].SelectedOptions["milk"] != "with_milk" {
		t.Fatalf("store state leaked through Entries: %+v", got)
	}
}

func TestCartEventRecorderToasts(t *testing.T) {
	ctx := context.Background()
	store, _, recorder := newTestCartStore(t)
	_ = store.AddItem(ctx, plainProduct(), nil, 1)
	_, _ = store.UpdateQuantity(ctx, plainProduct().ID, 3)
	_ = store.ClearCart(ctx)

	if len(recorder.Events()) != 3 {
		t.Fatalf("expected 3 events, got %+v", recorder.Events())
	}
	toasts := recorder.Toasts(constants.LocaleEnUS)
	if len(toasts) != 2 {
		t.Fatalf("quantity updates should not toast, got %+v", toasts)
	}
	if toasts[0].Title != "Product added" || toasts[1].Title != "Cart cleared" {
		t.Fatalf("unexpected localized toasts: %+v", toasts)
	}
}
