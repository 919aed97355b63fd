package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
)

func newTestService(t *testing.T, seed []Product) Service {
	t.Helper()

	svc, err := NewService(context.Background(), kv.NewMemoryStore(), nil, seed)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSeedOnFirstBoot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != len(DefaultSeed()) {
		t.Fatalf("expected default seed of %d products, got %d", len(DefaultSeed()), len(all))
	}
}

func TestSeedDoesNotOverwriteExisting(t *testing.T) {
	t.Parallel()

	mem := kv.NewMemoryStore()
	ctx := context.Background()

	first, err := NewService(ctx, mem, nil, []Product{{ID: "p1", Name: "Gorra", Price: 1000, Active: true}})
	if err != nil {
		t.Fatalf("first boot: %v", err)
	}
	if _, err := first.Create(ctx, ProductInput{Name: "Nueva", Price: 2000, Active: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := NewService(ctx, mem, nil, []Product{{ID: "other", Name: "X", Price: 1}})
	if err != nil {
		t.Fatalf("second boot: %v", err)
	}
	all, err := second.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("reboot reseeded the catalog: %+v", all)
	}
}

func TestCRUDLifecycle(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, []Product{{ID: "p1", Name: "Gorra Base", Price: 40000, Active: true}})
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:          "Gorra Nueva",
		Price:         55000,
		OriginalPrice: 70000,
		Sizes:         []string{"M", "L"},
		Stock:         10,
		Active:        true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated product id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Gorra Nueva" {
		t.Fatalf("unexpected product %+v", got)
	}

	updated, err := svc.Update(ctx, created.ID, ProductInput{Name: "Gorra Editada", Price: 60000, Stock: 5, Active: false})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Gorra Editada" || updated.Active {
		t.Fatalf("update not applied: %+v", updated)
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	for _, p := range active {
		if p.ID == created.ID {
			t.Fatal("inactive product should not be listed for the storefront")
		}
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, []Product{{ID: "p1", Name: "Gorra", Price: 1, Active: true}})
	ctx := context.Background()

	cases := []ProductInput{
		{Name: "", Price: 100},
		{Name: "Negativa", Price: -1},
		{Name: "Sin stock", Price: 100, Stock: -2},
	}
	for _, input := range cases {
		if _, err := svc.Create(ctx, input); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		}
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, []Product{{ID: "p1", Name: "Gorra", Price: 1, Active: true}})
	err := svc.Delete(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDiscountPercent(t *testing.T) {
	t.Parallel()

	p := Product{Price: 50000, OriginalPrice: 65000}
	if got := p.DiscountPercent(); got != 23 {
		t.Fatalf("expected 23%% discount, got %d", got)
	}

	if got := (Product{Price: 100, OriginalPrice: 0}).DiscountPercent(); got != 0 {
		t.Fatalf("expected no discount without compare-at price, got %d", got)
	}
	if got := (Product{Price: 100, OriginalPrice: 100}).DiscountPercent(); got != 0 {
		t.Fatalf("expected no discount for equal prices, got %d", got)
	}
}
