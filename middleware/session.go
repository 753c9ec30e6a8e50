package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/zieg12345/clientsearchinfo/config"
	"github.com/zieg12345/clientsearchinfo/pkg/logger"
	"github.com/zieg12345/clientsearchinfo/service"
)

// SessionClaims is the JWT payload of the session cookie. The token
// only names a session; all state lives server-side in the store.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token naming the given session.
func GenerateSessionToken(sessionID string, cfg *config.SessionConfig) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.ExpireHours) * time.Hour)

	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// parseSessionToken validates a cookie value and returns the session ID.
func parseSessionToken(tokenString string, cfg *config.SessionConfig) (string, bool) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.TokenSecret), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", false
	}
	return claims.SessionID, true
}

// Session resolves the caller's session from a signed cookie, minting a
// fresh session (and cookie) when the token is missing, invalid,
// expired, or names a session the store no longer has. Handlers always
// see a usable session.
func Session(store *service.SessionStore, cfg *config.SessionConfig) gin.HandlerFunc {
	maxAge := int(time.Duration(cfg.ExpireHours) * time.Hour / time.Second)

	return func(c *gin.Context) {
		var sess *service.Session

		if cookie, err := c.Cookie(cfg.CookieName); err == nil {
			if id, ok := parseSessionToken(cookie, cfg); ok {
				sess = store.Get(id)
			}
		}

		if sess == nil {
			sess = store.Create()
			token, _, err := GenerateSessionToken(sess.ID, cfg)
			if err != nil {
				// Session still works for this request; only the
				// cookie handshake is lost.
				logger.Error(c.Request.Context(), "failed to sign session token", "error", err)
			} else {
				c.SetCookie(cfg.CookieName, token, maxAge, "/", "", false, true)
			}
		}

		c.Set("session", sess)
		c.Set("session_id", sess.ID)

		ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, sess.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSession returns the session attached by the Session middleware.
func GetSession(c *gin.Context) *service.Session {
	if v, exists := c.Get("session"); exists {
		if sess, ok := v.(*service.Session); ok {
			return sess
		}
	}
	return nil
}

// GetSessionID returns the current session ID, or "" outside the
// session middleware.
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get("session_id"); exists {
		return id.(string)
	}
	return ""
}
