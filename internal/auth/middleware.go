// Package auth verifies bearer tokens and exposes the caller's identity.
// Tokens are issued by the identity service; this package only checks them.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"blogapi/internal/httpx"
)

const identityKey = "identity"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Middleware rejects requests without a valid HS256 bearer token and stores
// the caller's user id in the gin context.
func Middleware(secret []byte, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := Authenticate(c.GetHeader("Authorization"), secret)
		if err != nil {
			logger.DebugContext(c.Request.Context(), "Rejected request",
				slog.String("path", c.Request.URL.Path),
				slog.String("reason", err.Error()),
			)
			httpx.Abort(c, http.StatusUnauthorized, "Unauthorized: "+err.Error())
			return
		}

		c.Set(identityKey, userID)
		c.Next()
	}
}

// Authenticate validates an Authorization header value and returns the user
// id it carries.
func Authenticate(header string, secret []byte) (int64, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return 0, ErrMissingToken
	}

	token, err := jwt.Parse(strings.TrimSpace(raw), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	return subject(claims)
}

// subject reads the user id from "sub", falling back to "user_id". Both
// numeric and string encodings are accepted.
func subject(claims jwt.MapClaims) (int64, error) {
	for _, key := range []string{"sub", "user_id"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		var id int64
		switch v := raw.(type) {
		case float64:
			if v != float64(int64(v)) {
				return 0, ErrInvalidToken
			}
			id = int64(v)
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, ErrInvalidToken
			}
			id = n
		default:
			return 0, ErrInvalidToken
		}
		if id < 1 {
			return 0, ErrInvalidToken
		}
		return id, nil
	}
	return 0, ErrInvalidToken
}

// UserID returns the authenticated caller's id.
func UserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
