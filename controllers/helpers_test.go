package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", target, nil)
	return ctx
}

func TestParsePaginationDefaults(t *testing.T) {
	ctx := paginationContext(t, "/api/products")
	page, limit, offset := parsePagination(ctx, 12)
	if page != 1 || limit != 12 || offset != 0 {
		t.Fatalf("expected defaults 1/12/0, got %d/%d/%d", page, limit, offset)
	}
}

func TestParsePaginationOffset(t *testing.T) {
	ctx := paginationContext(t, "/api/products?page=3&limit=5")
	page, limit, offset := parsePagination(ctx, 12)
	if page != 3 || limit != 5 || offset != 10 {
		t.Fatalf("expected 3/5/10, got %d/%d/%d", page, limit, offset)
	}
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	ctx := paginationContext(t, "/api/products?page=-1&limit=abc")
	page, limit, offset := parsePagination(ctx, 12)
	if page != 1 || limit != 12 || offset != 0 {
		t.Fatalf("expected bad values to fall back to 1/12/0, got %d/%d/%d", page, limit, offset)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Science Fiction", "science-fiction"},
		{"  Children's Books  ", "children-s-books"},
		{"Comics & Manga", "comics-manga"},
		{"---", ""},
		{"Déjà", "d-j"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
