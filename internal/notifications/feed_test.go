package notifications

import "testing"

func TestPushAndDrain(t *testing.T) {
	t.Parallel()

	feed := NewFeed(0)
	feed.Push("cliente@gmcaps.com", "Producto agregado al carrito")
	feed.Push("cliente@gmcaps.com", "¡Compra realizada con éxito!")
	feed.Push("otro@gmcaps.com", "Producto agregado al carrito")

	toasts := feed.Drain("cliente@gmcaps.com")
	if len(toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Message != "Producto agregado al carrito" {
		t.Fatalf("toasts out of order: %+v", toasts)
	}

	if again := feed.Drain("cliente@gmcaps.com"); again != nil {
		t.Fatalf("drain should clear the feed, got %+v", again)
	}
	if other := feed.Drain("otro@gmcaps.com"); len(other) != 1 {
		t.Fatalf("owners must not share feeds, got %+v", other)
	}
}

func TestCapacityDropsOldest(t *testing.T) {
	t.Parallel()

	feed := NewFeed(3)
	for _, msg := range []string{"uno", "dos", "tres", "cuatro"} {
		feed.Push("cliente@gmcaps.com", msg)
	}

	toasts := feed.Drain("cliente@gmcaps.com")
	if len(toasts) != 3 {
		t.Fatalf("expected 3 toasts, got %d", len(toasts))
	}
	if toasts[0].Message != "dos" || toasts[2].Message != "cuatro" {
		t.Fatalf("oldest not evicted: %+v", toasts)
	}
}

func TestPushIgnoresEmptyValues(t *testing.T) {
	t.Parallel()

	feed := NewFeed(0)
	feed.Push("", "mensaje")
	feed.Push("cliente@gmcaps.com", "")

	if toasts := feed.Drain("cliente@gmcaps.com"); toasts != nil {
		t.Fatalf("expected empty feed, got %+v", toasts)
	}
}
