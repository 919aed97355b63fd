package cart

import "testing"

func black(id string, price int64, qty int) LineItem {
	return LineItem{ProductID: id, Name: "Gorra " + id, UnitPrice: price, Quantity: qty}
}

func TestAddMergesSameIdentity(t *testing.T) {
	t.Parallel()

	c := Cart{}
	c = Add(c, black("7", 50000, 0), 1)
	c = Add(c, black("7", 50000, 0), 1)

	if len(c) != 1 {
		t.Fatalf("expected a single merged line item, got %d", len(c))
	}
	if c[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c[0].Quantity)
	}
}

func TestAddQuantitySums(t *testing.T) {
	t.Parallel()

	c := Cart{}
	for _, qty := range []int{1, 3, 2} {
		c = Add(c, black("7", 50000, 0), qty)
	}

	if len(c) != 1 || c[0].Quantity != 6 {
		t.Fatalf("expected one item with quantity 6, got %+v", c)
	}
}

func TestAddDistinctSizesAreSeparateItems(t *testing.T) {
	t.Parallel()

	c := Cart{}
	c = Add(c, LineItem{ProductID: "7", UnitPrice: 50000, SelectedSize: "M"}, 1)
	c = Add(c, LineItem{ProductID: "7", UnitPrice: 50000, SelectedSize: "L"}, 1)
	c = Add(c, LineItem{ProductID: "7", UnitPrice: 50000, SelectedSize: "M"}, 2)

	if len(c) != 2 {
		t.Fatalf("expected 2 items keyed by size, got %d", len(c))
	}
	if item, ok := Find(c, ItemKey("7", "M")); !ok || item.Quantity != 3 {
		t.Fatalf("expected size M with quantity 3, got %+v", item)
	}
}

func TestAddClampsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("9", 45000, 0), -3)
	if len(c) != 1 || c[0].Quantity != 1 {
		t.Fatalf("expected clamp to quantity 1, got %+v", c)
	}
}

func TestAddDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := Add(Cart{}, black("7", 50000, 0), 1)
	_ = Add(original, black("7", 50000, 0), 5)

	if original[0].Quantity != 1 {
		t.Fatalf("input cart was mutated: %+v", original)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("7", 50000, 0), 1)
	c = Add(c, black("9", 45000, 0), 1)

	c = Remove(c, "7")
	if len(c) != 1 || c[0].ProductID != "9" {
		t.Fatalf("expected only product 9 to remain, got %+v", c)
	}

	same := Remove(c, "missing")
	if len(same) != 1 {
		t.Fatalf("removing unknown key should be a no-op, got %+v", same)
	}
}

func TestIncreaseAndDecrease(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("7", 50000, 0), 1)

	c = Increase(c, "7")
	if c[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 after increase, got %d", c[0].Quantity)
	}

	c = Decrease(c, "7")
	if c[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 after decrease, got %d", c[0].Quantity)
	}

	unknown := Increase(c, "missing")
	if len(unknown) != 1 || unknown[0].Quantity != 1 {
		t.Fatalf("increase of unknown key should be a no-op, got %+v", unknown)
	}
}

func TestDecreaseAtOneRemovesItem(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("7", 50000, 0), 1)
	c = Add(c, black("9", 45000, 0), 2)

	c = Decrease(c, "7")
	if len(c) != 1 {
		t.Fatalf("expected item removal at quantity zero, got %+v", c)
	}
	if _, ok := Find(c, "7"); ok {
		t.Fatal("product 7 should be gone")
	}
}

func TestDecreaseNeverStoresZeroQuantity(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("7", 50000, 0), 3)
	for i := 0; i < 10; i++ {
		c = Decrease(c, "7")
		for _, item := range c {
			if item.Quantity <= 0 {
				t.Fatalf("observed non-positive quantity: %+v", item)
			}
		}
	}
	if len(c) != 0 {
		t.Fatalf("expected empty cart after repeated decreases, got %+v", c)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("7", 50000, 0), 2)
	if cleared := Clear(c); len(cleared) != 0 {
		t.Fatalf("expected empty cart, got %+v", cleared)
	}
}

func TestTotalQuantity(t *testing.T) {
	t.Parallel()

	c := Add(Cart{}, black("7", 50000, 0), 2)
	c = Add(c, black("9", 45000, 0), 3)
	if got := TotalQuantity(c); got != 5 {
		t.Fatalf("expected total quantity 5, got %d", got)
	}
}

func TestItemKey(t *testing.T) {
	t.Parallel()

	if got := ItemKey("7", ""); got != "7" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := ItemKey("7", "M"); got != "7#M" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := ItemKey(" 7 ", " M "); got != "7#M" {
		t.Fatalf("expected trimmed key, got %q", got)
	}
}
