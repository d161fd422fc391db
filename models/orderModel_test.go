package models

import "testing"

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		if !IsValidOrderStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
}

func TestIsValidOrderStatusRejectsUnknown(t *testing.T) {
	invalid := []OrderStatus{"", "SHIPPED", "pending", "Pending", "DONE"}
	for _, status := range invalid {
		if IsValidOrderStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}
