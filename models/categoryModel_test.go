package models

import (
	"testing"

	"gorm.io/gorm"
)

func category(id uint, parentID *uint) Category {
	return Category{Model: gorm.Model{ID: id}, ParentID: parentID}
}

func ptr(id uint) *uint {
	return &id
}

// Tree used below:
//
//	1
//	├── 2
//	│   └── 4
//	└── 3
//	5 (root, unrelated)
func testTree() []Category {
	return []Category{
		category(1, nil),
		category(2, ptr(1)),
		category(3, ptr(1)),
		category(4, ptr(2)),
		category(5, nil),
	}
}

func TestIsDescendantDirectChild(t *testing.T) {
	if !IsDescendant(testTree(), 1, 2) {
		t.Fatal("expected 2 to be a descendant of 1")
	}
}

func TestIsDescendantTransitive(t *testing.T) {
	if !IsDescendant(testTree(), 1, 4) {
		t.Fatal("expected 4 to be a descendant of 1 via 2")
	}
}

func TestIsDescendantFalseCases(t *testing.T) {
	tree := testTree()
	cases := []struct {
		name               string
		ancestorID, nodeID uint
	}{
		{"self", 2, 2},
		{"unrelated", 5, 4},
		{"reversed", 4, 1},
		{"sibling", 2, 3},
		{"missing node", 1, 99},
		{"missing ancestor", 99, 4},
	}
	for _, tc := range cases {
		if IsDescendant(tree, tc.ancestorID, tc.nodeID) {
			t.Fatalf("%s: expected IsDescendant(%d, %d) to be false", tc.name, tc.ancestorID, tc.nodeID)
		}
	}
}

func TestIsDescendantBrokenParentReference(t *testing.T) {
	tree := []Category{
		category(1, ptr(42)), // parent 42 does not exist
	}
	if IsDescendant(tree, 5, 1) {
		t.Fatal("broken parent chain should report not-a-descendant")
	}
}

func TestIsDescendantTerminatesOnCycle(t *testing.T) {
	// Malformed data: 1 -> 2 -> 3 -> 1
	tree := []Category{
		category(1, ptr(3)),
		category(2, ptr(1)),
		category(3, ptr(2)),
	}
	if IsDescendant(tree, 9, 1) {
		t.Fatal("unreachable ancestor inside a cycle should be false")
	}
	if !IsDescendant(tree, 3, 1) {
		t.Fatal("ancestor on the chain should still be found despite the cycle")
	}
}

func TestValidParentsExcludesSelfAndDescendants(t *testing.T) {
	options, ok := ValidParents(testTree(), 1)
	if !ok {
		t.Fatal("expected category 1 to be found")
	}

	for _, option := range options {
		if option.ID == 1 {
			t.Fatal("valid parents must not include the category itself")
		}
		if option.ID == 2 || option.ID == 3 || option.ID == 4 {
			t.Fatalf("valid parents must not include descendant %d", option.ID)
		}
	}
	if len(options) != 1 || options[0].ID != 5 {
		t.Fatalf("expected only category 5 as a valid parent, got %v", options)
	}
}

func TestValidParentsLeafMayMoveAnywhere(t *testing.T) {
	options, ok := ValidParents(testTree(), 4)
	if !ok {
		t.Fatal("expected category 4 to be found")
	}
	if len(options) != 4 {
		t.Fatalf("expected 4 parent options for a leaf, got %d", len(options))
	}
}

func TestValidParentsUnknownCategory(t *testing.T) {
	if _, ok := ValidParents(testTree(), 99); ok {
		t.Fatal("expected unknown category to report not found")
	}
}
