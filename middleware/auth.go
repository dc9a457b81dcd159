// File: middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "clinibook/database/repository/user"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware authenticates requests via Bearer tokens. The token hash is
// looked up in the Redis auth cache first; on a miss the token is validated
// cryptographically and the account is confirmed against the database before
// re-priming the cache. Sets "userID" and "role" on the gin context.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ctx := context.Background()
		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()

		if authCache != nil {
			cached, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if userID, role, ok := splitIdentity(cached); ok {
					_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
					c.Set("userID", userID)
					c.Set("role", role)
					c.Next()
					return
				}
			} else if err != redis.Nil {
				utils.GetLogger().Warn("auth cache read failed, falling back to token validation", zap.Error(err))
			}
		}

		// Cache miss: validate the token itself, then confirm the account
		// still exists with the claimed role.
		userID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		usr, err := users.GetByID(ctx, userID)
		if err != nil || usr.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, userID+"|"+role, time.Hour).Err()
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole gates a route to the listed roles. Must run after
// JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

func splitIdentity(cached string) (string, string, bool) {
	parts := strings.SplitN(cached, "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
