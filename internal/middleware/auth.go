package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/synergy-dev/synergy/db"
	"github.com/synergy-dev/synergy/internal/auth"
	"github.com/synergy-dev/synergy/internal/metrics"
	"github.com/synergy-dev/synergy/internal/models"
	"github.com/synergy-dev/synergy/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthenticated(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		tokenString := parts[1]

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			abortUnauthenticated(ctx, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			abortUnauthenticated(ctx, "Invalid token claims")
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			abortUnauthenticated(ctx, "Invalid user ID in token claims")
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			abortUnauthenticated(ctx, "User not found")
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}

func abortUnauthenticated(ctx *gin.Context, message string) {
	metrics.AuthFailuresTotal.Inc()
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
