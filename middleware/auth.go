package middleware

import (
	"context"
	"net/http"
	"strings"

	"bookwise/models"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID      = "userID"
	ContextRole        = "role"
	ContextAccessToken = "accessToken"
)

// UserLookup resolves the account behind a token subject.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: msg})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// JWTAuthMiddleware accepts a valid, non-revoked access token whose subject is an
// active account.
func JWTAuthMiddleware(users UserLookup, blacklist utils.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			unauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := utils.ParseToken(tokenString, utils.TokenTypeAccess)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		ctx := c.Request.Context()
		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(ctx, tokenString)
			if err != nil {
				utils.GetLogger().Error("Token blacklist lookup failed", zap.Error(err))
				utils.JSONError(c, http.StatusServiceUnavailable, "Authentication temporarily unavailable", "")
				return
			}
			if revoked {
				unauthorized(c, "Token has been revoked")
				return
			}
		}

		user, err := users.GetByID(ctx, claims.Subject)
		if err != nil || user == nil || user.Status != models.UserActive {
			unauthorized(c, "Insufficient authorization")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, string(user.Role))
		c.Set(ContextAccessToken, tokenString)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or "" outside JWTAuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
