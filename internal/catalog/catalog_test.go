package catalog

import (
	"testing"
)

func TestProductsMatchStorefrontCatalog(t *testing.T) {
	products := Products()
	if len(products) != 11 {
		t.Fatalf("products want 11 got %d", len(products))
	}
	seen := make(map[uint]bool, len(products))
	popular := 0
	for _, product := range products {
		if seen[product.ID] {
			t.Fatalf("duplicate product id %d", product.ID)
		}
		seen[product.ID] = true
		if product.Price != 1500 || product.Category != "bubble-tea" {
			t.Fatalf("unexpected product: %+v", product)
		}
		if product.Options["milk"].Choices[0].ID != "with_milk" {
			t.Fatalf("expected with_milk as first choice for %s", product.Name)
		}
		if product.Popular {
			popular++
		}
	}
	if popular != 8 {
		t.Fatalf("popular want 8 got %d", popular)
	}
	first := products[0]
	if first.ID != 101 || first.Name != "Choco Perle" {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if len(first.Ingredients) != 3 || first.Ingredients[1] != "Milo" {
		t.Fatalf("unexpected ingredients: %+v", first.Ingredients)
	}
}

func TestProductsReturnsIndependentCopies(t *testing.T) {
	a := Products()
	a[0].Options["milk"].Choices[0].Price = 0
	b := Products()
	if b[0].Options["milk"].Choices[0].Price != 500 {
		t.Fatalf("catalog data mutated through returned copy")
	}
}

func TestCategories(t *testing.T) {
	categories := Categories()
	if len(categories) != 2 || categories[0].Slug != "tacos" || categories[1].Icon != "cup" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}
