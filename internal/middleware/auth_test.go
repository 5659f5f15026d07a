package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"todo-app-server/internal/token"
)

func newProtectedRouter(issuer *token.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(issuer), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return router
}

func request(router *gin.Engine, header string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Minute)
	router := newProtectedRouter(issuer)

	if w := request(router, "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Minute)
	router := newProtectedRouter(issuer)

	signed, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := request(router, "Bearer "+signed, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Minute)
	router := newProtectedRouter(issuer)

	signed, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := request(router, "", &http.Cookie{Name: AccessTokenCookie, Value: signed})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthMiddleware_UniformRejection(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Minute)
	router := newProtectedRouter(issuer)

	expired, err := token.NewIssuer("test-secret", -time.Minute).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	malformed := request(router, "Bearer garbage", nil)
	expiredResp := request(router, "Bearer "+expired, nil)
	badScheme := request(router, "Basic abc", nil)

	for name, w := range map[string]*httptest.ResponseRecorder{
		"malformed": malformed, "expired": expiredResp, "bad scheme": badScheme,
	} {
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}

	// Callers cannot tell a malformed token from an expired one.
	if malformed.Body.String() != expiredResp.Body.String() {
		t.Fatal("malformed and expired rejections must be identical")
	}
}
