package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func userClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": 7,
		"email":   "reader@example.com",
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/me", RequireAuth(testSecret), func(ctx *gin.Context) {
		id, ok := CurrentUserID(ctx)
		if !ok {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "no principal"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": id, "role": CurrentUserRole(ctx)})
	})

	router.GET("/admin", RequireAuth(testSecret), RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func perform(router *gin.Engine, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuthMissingToken(t *testing.T) {
	resp := perform(testRouter(), "/me", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	resp := perform(testRouter(), "/me", "not-a-bearer-token")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", userClaims("user"))
	resp := perform(testRouter(), "/me", "Bearer "+token)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	claims := userClaims("user")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)
	resp := perform(testRouter(), "/me", "Bearer "+token)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, userClaims("user"))
	resp := perform(testRouter(), "/me", "Bearer "+token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	token := signToken(t, testSecret, userClaims("user"))
	resp := perform(testRouter(), "/admin", "Bearer "+token)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	token := signToken(t, testSecret, userClaims("admin"))
	resp := perform(testRouter(), "/admin", "Bearer "+token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
