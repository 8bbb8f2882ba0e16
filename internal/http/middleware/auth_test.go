package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/service"
)

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.SetJWTSecret("middleware-test-secret")

	r := gin.New()
	r.GET("/protected", JWT(), func(c *gin.Context) {
		actor, _ := Actor(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/admin", JWT(), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	r := authRouter(t)

	if w := doGet(t, r, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d; want 401", w.Code)
	}
	if w := doGet(t, r, "/protected", "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d; want 401", w.Code)
	}

	token, err := service.GenerateJWT(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if w := doGet(t, r, "/protected", token); w.Code != http.StatusOK {
		t.Errorf("valid token: status %d; want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := authRouter(t)

	userToken, err := service.GenerateJWT(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if w := doGet(t, r, "/admin", userToken); w.Code != http.StatusForbidden {
		t.Errorf("user token on admin route: status %d; want 403", w.Code)
	}

	adminToken, err := service.GenerateJWT(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if w := doGet(t, r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin token on admin route: status %d; want 200", w.Code)
	}
}
