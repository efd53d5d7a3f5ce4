package utils

import (
	"FlowVault/internal/repo"
	"FlowVault/model"
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const verifiedKeyTTL = 5 * time.Minute

// AuthMiddleware authenticates the request and sets user context.
// API keys are checked before session tokens so programmatic clients
// never fall through to JWT parsing.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthenticated(c)
			return
		}

		if IsApiKey(token) {
			userID, keyID, err := VerifyApiKey(c.Request.Context(), token)
			if err != nil {
				unauthenticated(c)
				return
			}
			c.Set("user_id", userID)
			c.Set("auth_key_id", keyID)
			c.Next()
			return
		}

		claims, err := VerifyToken(token)
		if err != nil {
			unauthenticated(c)
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
	c.Abort()
}

// VerifyApiKey resolves a raw API key to its owner. Hot keys hit the
// Redis digest cache, cold keys fall back to a bcrypt scan over the
// active rows.
func VerifyApiKey(ctx context.Context, rawKey string) (string, string, error) {
	digest := KeyDigest(rawKey)
	if cached, ok := GetVerifiedKeyFromCache(ctx, digest); ok {
		touchKeyLastUsed(cached.KeyID)
		return cached.UserID, cached.KeyID, nil
	}

	var keys []model.ApiKey
	if err := repo.Db.Where("revoked_at IS NULL").Find(&keys).Error; err != nil {
		return "", "", err
	}
	for i := range keys {
		if bcrypt.CompareHashAndPassword([]byte(keys[i].HashedKey), []byte(rawKey)) == nil {
			_ = SetVerifiedKeyToCache(ctx, digest, &VerifiedKeyCache{
				UserID: keys[i].UserID,
				KeyID:  keys[i].ID,
			}, verifiedKeyTTL)
			touchKeyLastUsed(keys[i].ID)
			return keys[i].UserID, keys[i].ID, nil
		}
	}
	return "", "", errors.New("unknown api key")
}

// touchKeyLastUsed records key usage without blocking the request.
func touchKeyLastUsed(keyID string) {
	go func() {
		now := time.Now()
		if err := repo.Db.Model(&model.ApiKey{}).
			Where("id = ?", keyID).
			Update("last_used_at", now).Error; err != nil {
			log.Println("update key last_used_at failed:", keyID, err)
		}
	}()
}

// AdminMiddleware gates maintenance endpoints behind the static
// admin credential.
func AdminMiddleware(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok || adminKey == "" || token != adminKey {
			unauthenticated(c)
			return
		}
		c.Next()
	}
}
