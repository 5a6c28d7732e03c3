package repository

import (
	"context"
	"testing"

	"github.com/snaki-next/internal/models"
)

func TestCartSnapshotRepositoryOverwrite(t *testing.T) {
	db := openRepositoryTestDB(t, "cart_snapshot_repo_test", &models.CartSnapshot{})
	repos := map[string]CartSnapshotRepository{
		"gorm":   NewCartSnapshotRepository(db),
		"memory": NewMemoryCartSnapshotRepository(),
	}
	ctx := context.Background()
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := repo.Get(ctx, "fastbite-cart:a"); err != nil || ok {
				t.Fatalf("expected absent snapshot, ok=%v err=%v", ok, err)
			}
			if err := repo.Put(ctx, "fastbite-cart:a", `[{"id":101}]`); err != nil {
				t.Fatalf("put failed: %v", err)
			}
			if err := repo.Put(ctx, "fastbite-cart:a", `[]`); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			value, ok, err := repo.Get(ctx, "fastbite-cart:a")
			if err != nil || !ok {
				t.Fatalf("get failed: ok=%v err=%v", ok, err)
			}
			if value != "[]" {
				t.Fatalf("expected last write to win, got %s", value)
			}
			if err := repo.Delete(ctx, "fastbite-cart:a"); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if _, ok, _ := repo.Get(ctx, "fastbite-cart:a"); ok {
				t.Fatalf("expected snapshot deleted")
			}
		})
	}
}
