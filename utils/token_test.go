package utils

import "testing"

func TestGenerateCodeLength(t *testing.T) {
	code, err := GenerateCode(16)
	if err != nil {
		t.Fatalf("GenerateCode returned error: %v", err)
	}
	if len(code) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(code))
	}
}

func TestGenerateCodeUnique(t *testing.T) {
	a, err := GenerateCode(16)
	if err != nil {
		t.Fatalf("GenerateCode returned error: %v", err)
	}
	b, err := GenerateCode(16)
	if err != nil {
		t.Fatalf("GenerateCode returned error: %v", err)
	}
	if a == b {
		t.Fatal("expected two generated codes to differ")
	}
}
