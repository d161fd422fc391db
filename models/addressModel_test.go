package models

import (
	"testing"

	"gorm.io/gorm"
)

func address(id uint, isDefault bool) Address {
	return Address{Model: gorm.Model{ID: id}, IsDefault: isDefault}
}

func TestMarkDefaultSwitchesTheSingleDefault(t *testing.T) {
	// Address 1 starts as the default; switching to 2 must leave
	// exactly one default.
	addresses := []Address{
		address(1, true),
		address(2, false),
		address(3, false),
	}

	MarkDefault(addresses, 2)

	if DefaultCount(addresses) != 1 {
		t.Fatalf("expected exactly one default address, got %d", DefaultCount(addresses))
	}
	if !addresses[1].IsDefault {
		t.Fatal("expected address 2 to be the default")
	}
	if addresses[0].IsDefault {
		t.Fatal("expected address 1 to lose the default flag")
	}
}

func TestMarkDefaultIsIdempotent(t *testing.T) {
	addresses := []Address{
		address(1, true),
		address(2, false),
	}

	MarkDefault(addresses, 1)
	MarkDefault(addresses, 1)

	if DefaultCount(addresses) != 1 {
		t.Fatalf("expected exactly one default address, got %d", DefaultCount(addresses))
	}
	if !addresses[0].IsDefault {
		t.Fatal("expected address 1 to stay default")
	}
}

func TestMarkDefaultClearsDuplicateFlags(t *testing.T) {
	// Bad pre-existing data with two defaults is repaired by the next
	// switch.
	addresses := []Address{
		address(1, true),
		address(2, true),
		address(3, false),
	}

	MarkDefault(addresses, 3)

	if DefaultCount(addresses) != 1 {
		t.Fatalf("expected exactly one default address, got %d", DefaultCount(addresses))
	}
	if !addresses[2].IsDefault {
		t.Fatal("expected address 3 to be the default")
	}
}

func TestDefaultCount(t *testing.T) {
	if got := DefaultCount(nil); got != 0 {
		t.Fatalf("expected 0 defaults for empty slice, got %d", got)
	}
	addresses := []Address{
		address(1, true),
		address(2, true),
	}
	if got := DefaultCount(addresses); got != 2 {
		t.Fatalf("expected 2 defaults, got %d", got)
	}
}
