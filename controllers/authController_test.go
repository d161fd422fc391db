package controllers

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	password := "correct-horse-battery"

	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword returned error: %v", err)
	}
	if hash == password {
		t.Fatal("expected hash to differ from the plain password")
	}

	if err := comparePasswords(hash, password); err != nil {
		t.Fatalf("expected hashed password to verify, got %v", err)
	}
}

func TestComparePasswordsRejectsWrongPassword(t *testing.T) {
	hash, err := hashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("hashPassword returned error: %v", err)
	}

	if err := comparePasswords(hash, "wrong-password"); err == nil {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := hashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("hashPassword returned error: %v", err)
	}
	second, err := hashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("hashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected two hashes of the same password to differ")
	}
}
