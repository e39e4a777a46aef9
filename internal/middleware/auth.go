package middleware

import (
	"fmt"
	"net/http"
	"strings"

	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// DevAdminSubject is the JWT subject issued by the password fallback login.
// It bypasses the Discord allowlist, intended for local development only.
const DevAdminSubject = "admin:dev"

type AuthMiddleware struct {
	users  userRepo.UserRepository
	policy *AdminPolicy
	secret string
}

func NewAuthMiddleware(users userRepo.UserRepository, policy *AdminPolicy, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		users:  users,
		policy: policy,
		secret: secret,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set("wallet_address", claims.Subject)
		c.Next()
	}
}

// RequireAdmin gates the admin dashboard: the session's wallet must carry a
// linked Discord identity present in the configured allowlist.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, exists := c.Get("wallet_address")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		address := subject.(string)
		if address == DevAdminSubject {
			c.Next()
			return
		}

		user, err := m.users.FindByAddress(c.Request.Context(), address)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		if !user.Linked() || !m.policy.IsAdmin(*user.DiscordID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
