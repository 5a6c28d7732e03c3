package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/snaki-next/internal/catalog"
	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/repository"
)

func newTestCartService(t *testing.T) (*CartService, *repository.MemoryCartSnapshotRepository) {
	t.Helper()
	products := append(catalog.Products(), plainProduct(), models.Product{ID: 950, Name: "Retiré", Price: 1000, IsActive: false})
	productService := NewProductService(repository.NewMemoryProductRepository(products), repository.NewMemoryCategoryRepository(catalog.Categories()))
	storage := repository.NewMemoryCartSnapshotRepository()
	return NewCartService(storage, productService, "fastbite-cart", "fcfa"), storage
}

func TestCartServiceSnapshotKey(t *testing.T) {
	svc, _ := newTestCartService(t)
	key, err := svc.SnapshotKey(" 3f2a9c1e-7b44-4f0e-9a51-2d6c8e0b1f77 ")
	if err != nil || key != "fastbite-cart:3f2a9c1e-7b44-4f0e-9a51-2d6c8e0b1f77" {
		t.Fatalf("unexpected key %q err %v", key, err)
	}
	for _, bad := range []string{"", "a b", "../etc", "x:y"} {
		if _, err := svc.SnapshotKey(bad); !errors.Is(err, ErrCartSessionInvalid) {
			t.Fatalf("session %q should be invalid, got %v", bad, err)
		}
	}
}

func TestCartServiceAddItemDefaultsOptions(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)
	recorder := NewCartEventRecorder()

	view, err := svc.AddItem(ctx, "session-1", AddCartItemInput{ProductID: 101, Quantity: 2}, recorder)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].SelectedOptions["milk"] != "with_milk" {
		t.Fatalf("expected default milk choice, got %+v", view.Lines)
	}
	if view.Total.String() != "4000.00" || view.ItemCount != 2 || view.Currency != "fcfa" {
		t.Fatalf("unexpected view totals: %+v", view)
	}
	if view.Lines[0].UnitPrice.String() != "2000.00" || view.Lines[0].LineTotal.String() != "4000.00" {
		t.Fatalf("unexpected line prices: %+v", view.Lines[0])
	}
	if len(recorder.Events()) != 1 {
		t.Fatalf("expected add event, got %+v", recorder.Events())
	}
	if _, found, _ := storage.Get(ctx, "fastbite-cart:session-1"); !found {
		t.Fatalf("snapshot should be stored under the session key")
	}

	other, err := svc.Get(ctx, "session-2")
	if err != nil || len(other.Lines) != 0 {
		t.Fatalf("sessions must be isolated, got %+v err %v", other, err)
	}
}

func TestCartServiceAddItemErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)
	if _, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 4242}, nil); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 950}, nil); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected not available, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, SelectedOptions: map[string]string{"milk": "soja"}}, nil); !errors.Is(err, ErrOptionSelectionInvalid) {
		t.Fatalf("expected invalid option, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, Quantity: -1}, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "bad session", AddCartItemInput{ProductID: 101}, nil); !errors.Is(err, ErrCartSessionInvalid) {
		t.Fatalf("expected invalid session, got %v", err)
	}
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)
	_, _ = svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, SelectedOptions: map[string]string{"milk": "with_milk"}}, nil)
	_, _ = svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, SelectedOptions: map[string]string{"milk": "without_milk"}}, nil)

	view, err := svc.UpdateQuantity(ctx, "s1", UpdateCartItemInput{ProductID: 101, Quantity: 3, SelectedOptions: map[string]string{"milk": "without_milk"}}, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.Lines[0].Quantity != 1 || view.Lines[1].Quantity != 3 {
		t.Fatalf("line update targeted the wrong line: %+v", view.Lines)
	}
	recorder := NewCartEventRecorder()
	unchanged, err := svc.UpdateQuantity(ctx, "s1", UpdateCartItemInput{ProductID: 101, Quantity: 0}, recorder)
	if err != nil || unchanged.Lines[0].Quantity != 1 || unchanged.Lines[1].Quantity != 3 {
		t.Fatalf("quantity 0 should be a no-op returning the cart, got %+v err %v", unchanged, err)
	}
	if len(recorder.Events()) != 0 {
		t.Fatalf("ignored update should not emit events: %+v", recorder.Events())
	}
	if _, err := svc.UpdateQuantity(ctx, "s1", UpdateCartItemInput{ProductID: 101, Quantity: constants.CartQuantityMax + 1}, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("quantity above max should fail, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "s1", UpdateCartItemInput{ProductID: 4242, Quantity: 2}, nil); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected line not found, got %v", err)
	}

	view, err = svc.RemoveItem(ctx, "s1", 101, nil)
	if err != nil || len(view.Lines) != 0 {
		t.Fatalf("remove should drop both lines, got %+v err %v", view, err)
	}
}

func TestCartServiceClearAndRecover(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)
	_ = storage.Put(ctx, "fastbite-cart:s1", "not-json")
	view, err := svc.Get(ctx, "s1")
	if err != nil || !view.Recovered || len(view.Lines) != 0 {
		t.Fatalf("malformed snapshot should recover to empty cart, got %+v err %v", view, err)
	}

	_, _ = svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 900, Quantity: 2}, nil)
	view, err = svc.Clear(ctx, "s1", nil)
	if err != nil || view.ItemCount != 0 {
		t.Fatalf("clear failed: %+v err %v", view, err)
	}
	raw, _, _ := storage.Get(ctx, "fastbite-cart:s1")
	if raw != "[]" {
		t.Fatalf("cleared snapshot should be [], got %q", raw)
	}
}

func TestCartServiceSerializesSameSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, "busy", AddCartItemInput{ProductID: 900, Quantity: 1}, nil); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	view, err := svc.Get(ctx, "busy")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(view.Lines) != 1 || view.ItemCount != 20 {
		t.Fatalf("concurrent adds lost updates: %+v", view)
	}
}

func TestCartServiceRejectsQuantityAboveMax(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)
	if _, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, Quantity: math.MaxInt}, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("huge quantity should fail, got %v", err)
	}
	if _, found, _ := storage.Get(ctx, "fastbite-cart:s1"); found {
		t.Fatalf("rejected add should not persist a snapshot")
	}

	if _, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, Quantity: constants.CartQuantityMax}, nil); err != nil {
		t.Fatalf("add at max failed: %v", err)
	}
	view, err := svc.AddItem(ctx, "s1", AddCartItemInput{ProductID: 101, Quantity: 1}, nil)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("merge past max should fail, got %v", err)
	}
	if view == nil || view.ItemCount != constants.CartQuantityMax || view.Total.String() != "198000.00" {
		t.Fatalf("cart should keep the line at max, got %+v", view)
	}
}
