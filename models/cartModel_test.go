package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func bookLine(productID uint, price string, quantity int) CartItem {
	return CartItem{
		ProductID: productID,
		Name:      "book",
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "12.50", 2))
	cart.AddItem(bookLine(1, "12.50", 3))

	if len(cart.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.TotalItems() != 5 {
		t.Fatalf("expected totalItems 5, got %d", cart.TotalItems())
	}
	want := decimal.RequireFromString("62.50")
	if !cart.TotalPrice().Equal(want) {
		t.Fatalf("expected totalPrice %s, got %s", want, cart.TotalPrice())
	}
}

func TestAddItemAppendsNewProduct(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 1))
	cart.AddItem(bookLine(2, "20.00", 2))

	if len(cart.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(cart.Items))
	}
	want := decimal.RequireFromString("50.00")
	if !cart.TotalPrice().Equal(want) {
		t.Fatalf("expected totalPrice %s, got %s", want, cart.TotalPrice())
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 2))

	if !cart.UpdateQuantity(1, 0) {
		t.Fatal("expected update to find the line")
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after zero-quantity update, got %d lines", len(cart.Items))
	}
	if !cart.TotalPrice().Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", cart.TotalPrice())
	}
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 2))

	if !cart.UpdateQuantity(1, -3) {
		t.Fatal("expected update to find the line")
	}
	if len(cart.Items) != 0 {
		t.Fatal("negative quantity should remove the line")
	}
}

func TestUpdateQuantityReplaces(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 2))

	if !cart.UpdateQuantity(1, 7) {
		t.Fatal("expected update to find the line")
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 2))

	if cart.UpdateQuantity(99, 3) {
		t.Fatal("expected update of unknown product to report false")
	}
}

func TestRemoveItem(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 1))
	cart.AddItem(bookLine(2, "5.00", 1))

	if !cart.RemoveItem(1) {
		t.Fatal("expected remove to find the line")
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != 2 {
		t.Fatalf("expected only product 2 to remain, got %v", cart.Items)
	}
	if cart.RemoveItem(1) {
		t.Fatal("removing twice should report false")
	}
}

func TestClearCart(t *testing.T) {
	var cart Cart
	cart.AddItem(bookLine(1, "10.00", 4))
	cart.Clear()

	if len(cart.Items) != 0 {
		t.Fatal("expected empty cart after clear")
	}
	if cart.TotalItems() != 0 {
		t.Fatalf("expected totalItems 0, got %d", cart.TotalItems())
	}
}
