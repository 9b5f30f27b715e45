package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"takeout-api/models"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("test-secret")

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})...)
	return router
}

func serve(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	w := serve(newRouter(AuthRequired(testSecret)), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	w := serve(newRouter(AuthRequired(testSecret)), "Bearer invalid_token_xyz")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 1, Role: models.RoleCustomer}, []byte("other"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(newRouter(AuthRequired(testSecret)), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 1, Role: models.RoleCustomer}, testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(newRouter(AuthRequired(testSecret)), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 7, Email: "a@b.c", Role: models.RoleAdmin}, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(newRouter(AuthRequired(testSecret), RoleRequired(models.RoleAdmin)), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"role":"admin","user_id":7}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestRoleRequired_Forbidden(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 7, Role: models.RoleCustomer}, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(newRouter(AuthRequired(testSecret), RoleRequired(models.RoleAdmin)), "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Required role(s): admin") {
		t.Errorf("expected allowed roles in body, got %s", w.Body.String())
	}
}

func TestRoleRequired_AnyOfSeveral(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 7, Role: models.RoleCustomer}, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(newRouter(AuthRequired(testSecret), RoleRequired(models.RoleAdmin, models.RoleCustomer)), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRoleRequired_WithoutAuth(t *testing.T) {
	w := serve(newRouter(RoleRequired(models.RoleAdmin)), "")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}
