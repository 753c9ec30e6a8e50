package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zieg12345/clientsearchinfo/config"
	"github.com/zieg12345/clientsearchinfo/service"
)

func sessionTestSetup() (*gin.Engine, *service.SessionStore, *config.SessionConfig) {
	gin.SetMode(gin.TestMode)

	store := service.NewSessionStore(&config.StoreConfig{MaxSessions: 100, IdleExpireMinutes: 60})
	cfg := &config.SessionConfig{
		TokenSecret: "test-secret",
		ExpireHours: 1,
		CookieName:  "session_token",
	}

	router := gin.New()
	router.Use(Session(store, cfg))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": GetSessionID(c)})
	})

	return router, store, cfg
}

func sessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSessionMiddlewareMintsSession(t *testing.T) {
	router, store, cfg := sessionTestSetup()

	req := httptest.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	cookie := sessionCookie(w, cfg.CookieName)
	if cookie == nil {
		t.Fatal("Expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("Expected session cookie to be HttpOnly")
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 session in store, got %d", store.Count())
	}
}

func TestSessionMiddlewareReusesSession(t *testing.T) {
	router, store, cfg := sessionTestSetup()

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest("GET", "/whoami", nil))
	cookie := sessionCookie(first, cfg.CookieName)
	if cookie == nil {
		t.Fatal("Expected session cookie on first request")
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)

	if store.Count() != 1 {
		t.Errorf("Expected cookie to resume the session, store has %d", store.Count())
	}
	if sessionCookie(second, cfg.CookieName) != nil {
		t.Error("Expected no new cookie when the session is resumed")
	}
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	router, store, cfg := sessionTestSetup()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "garbage-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected invalid token to still get a session, got %d", w.Code)
	}
	if sessionCookie(w, cfg.CookieName) == nil {
		t.Error("Expected a fresh cookie to replace the invalid token")
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 fresh session, got %d", store.Count())
	}
}

func TestSessionMiddlewareUnknownSessionID(t *testing.T) {
	router, _, cfg := sessionTestSetup()

	// Valid signature, but the store has never seen this session.
	token, _, err := GenerateSessionToken("gone-session", cfg)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected a replacement session, got status %d", w.Code)
	}
	if sessionCookie(w, cfg.CookieName) == nil {
		t.Error("Expected a fresh cookie for the replacement session")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	cfg := &config.SessionConfig{TokenSecret: "secret", ExpireHours: 2}

	token, expiresAt, err := GenerateSessionToken("sess-1", cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}
	if time.Until(expiresAt) < time.Hour {
		t.Errorf("Expected expiry about 2h out, got %v", expiresAt)
	}

	id, ok := parseSessionToken(token, cfg)
	if !ok || id != "sess-1" {
		t.Errorf("Expected token to round-trip session ID, got %q (ok=%v)", id, ok)
	}

	// Wrong secret must not validate.
	if _, ok := parseSessionToken(token, &config.SessionConfig{TokenSecret: "other"}); ok {
		t.Error("Expected validation to fail with wrong secret")
	}
}

func TestGetSessionOutsideMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetSession(c) != nil {
		t.Error("Expected nil session outside middleware")
	}
	if GetSessionID(c) != "" {
		t.Error("Expected empty session ID outside middleware")
	}
}
