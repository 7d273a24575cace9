package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"chaikada_store_front/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware. The cart/checkout core only needs
// the is_authenticated gate plus identity for prefill; token mechanics belong
// to the auth subsystem.
const (
	CtxIsAuthenticated = "is_authenticated"
	CtxUserID          = "user_id"
	CtxUserName        = "name"
	CtxUserEmail       = "email"
	CtxAuthToken       = "auth_token"
)

// OptionalAuth decodes the bearer token when one is present and marks the
// request authenticated. A missing or invalid token is not an error — the
// request proceeds as a guest.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxIsAuthenticated, false)

		claims, token, ok := parseBearer(c)
		if !ok {
			c.Next()
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.Next()
			return
		}

		c.Set(CtxIsAuthenticated, true)
		c.Set(CtxUserID, userID)
		c.Set(CtxUserName, claims["name"])
		c.Set(CtxUserEmail, claims["email"])
		c.Set(CtxAuthToken, token)
		c.Next()
	}
}

// AuthRequired aborts with 401 unless a valid bearer token is present.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, token, ok := parseBearer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxIsAuthenticated, true)
		c.Set(CtxUserID, userID)
		c.Set(CtxUserName, claims["name"])
		c.Set(CtxUserEmail, claims["email"])
		c.Set(CtxAuthToken, token)
		c.Next()
	}
}

func parseBearer(c *gin.Context) (jwt.MapClaims, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "", false
	}

	tokenString := parts[1]
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", false
	}
	return claims, tokenString, true
}
