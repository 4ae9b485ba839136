package devserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "notehub"

// Claims are the claims carried by a dev server token.
type Claims struct {
	jwt.RegisteredClaims
}

// MintToken returns an HS256 token for subject, valid for ttl. A ttl of zero
// means the token never expires.
func MintToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("mint token: empty secret")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenString against secret.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthMiddleware rejects requests without a valid bearer token. The token's
// subject is stored under "subject" in the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			slog.Warn("auth failed: missing header", "client_ip", c.ClientIP())
			abortJSON(c, http.StatusUnauthorized, "Authorization header required", "")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			slog.Warn("auth failed: malformed header", "client_ip", c.ClientIP())
			abortJSON(c, http.StatusUnauthorized, "Invalid authorization format", "")
			return
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			slog.Warn("auth failed: invalid token", "client_ip", c.ClientIP(), "err", err)
			abortJSON(c, http.StatusUnauthorized, "Invalid token", "")
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}
