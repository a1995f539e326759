package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uint]*models.User
}

func (r *stubUserRepo) GetByID(id uint) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) GetByEmail(string) (*models.User, error) { return nil, errors.New("not found") }
func (r *stubUserRepo) Create(*models.User) error               { return nil }
func (r *stubUserRepo) Update(*models.User) error               { return nil }
func (r *stubUserRepo) WithTx(*gorm.DB) repository.UserRepository {
	return r
}

func signTestToken(t *testing.T, secret string, userID uint, role string) string {
	t.Helper()
	claims := AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func businessCode(t *testing.T, body []byte) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := businessCode(t, w.Body.Bytes()); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestJWTAuthMiddlewareResolvesUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const secret = "test-secret"
	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Email: "amelia@example.com", Role: constants.UserRoleCustomer, Status: constants.UserStatusActive},
		8: {ID: 8, Email: "blocked@example.com", Role: constants.UserRoleCustomer, Status: constants.UserStatusDisabled},
	}}

	r := gin.New()
	r.Use(JWTAuthMiddleware(secret, repo))
	r.GET("/me", func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, 7, constants.UserRoleCustomer))
	r.ServeHTTP(w, req)
	var resp struct {
		UserID uint `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != 7 {
		t.Fatalf("user_id want 7 got %d", resp.UserID)
	}

	// Disabled account is rejected even with a valid signature.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/me", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, 8, constants.UserRoleCustomer))
	r.ServeHTTP(w2, req2)
	if code := businessCode(t, w2.Body.Bytes()); code != 401 {
		t.Fatalf("disabled account status_code want 401 got %d", code)
	}

	// Wrong signing key is rejected.
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/me", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret", 7, constants.UserRoleCustomer))
	r.ServeHTTP(w3, req3)
	if code := businessCode(t, w3.Body.Bytes()); code != 401 {
		t.Fatalf("bad signature status_code want 401 got %d", code)
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const secret = "test-secret"
	repo := &stubUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Email: "admin@example.com", Role: constants.UserRoleAdmin, Status: constants.UserStatusActive},
		2: {ID: 2, Email: "shopper@example.com", Role: constants.UserRoleCustomer, Status: constants.UserStatusActive},
	}}

	r := gin.New()
	r.Use(JWTAuthMiddleware(secret, repo), AdminAuthMiddleware())
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, 1, constants.UserRoleAdmin))
	r.ServeHTTP(w, req)
	if code := businessCode(t, w.Body.Bytes()); code != 0 {
		t.Fatalf("admin should pass, status_code got %d", code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, 2, constants.UserRoleCustomer))
	r.ServeHTTP(w2, req2)
	if code := businessCode(t, w2.Body.Bytes()); code != 403 {
		t.Fatalf("customer status_code want 403 got %d", code)
	}
}
