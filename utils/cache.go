package utils

import (
	"FlowVault/internal/repo"
	"FlowVault/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes cache entries by pattern.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Exists checks whether a cache key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// InitCacheManager initializes the cache manager.
func InitCacheManager() {
	cacheManagerOnce.Do(func() {
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
}

// GetCacheManager returns the cache manager.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		InitCacheManager()
	}
	return globalCacheManager
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	CacheKeyFileList = "vault:file:list"
	CacheKeyUserInfo = "vault:user:info"
	CacheKeyApiKey   = "vault:apikey"
)

type FileListCache struct {
	Files []model.FileRecord `json:"files"`
	Total int64              `json:"total"`
}

// GetFileListFromCache reads a cached file list page.
func GetFileListFromCache(
	ctx context.Context,
	userID string,
	page int,
	limit int,
) (*FileListCache, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyFileList, userID, page, limit)

	var result FileListCache
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetFileListToCache writes a cached file list page.
func SetFileListToCache(
	ctx context.Context,
	userID string,
	page int,
	limit int,
	data *FileListCache,
	expiration time.Duration,
) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyFileList, userID, page, limit)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateFileListCache clears every cached list page for a user.
// Called after any catalog mutation for that user.
func InvalidateFileListCache(ctx context.Context, userID string) error {
	manager := GetCacheManager()
	keyPattern := BuildCacheKey(CacheKeyFileList, userID) + ":*"
	cache, ok := manager.cache.(*RedisCache)
	if !ok {
		return manager.cache.Delete(ctx, keyPattern)
	}
	return cache.DeleteByPattern(ctx, keyPattern)
}

// GetUserInfoFromCache reads cached user info.
func GetUserInfoFromCache(ctx context.Context, userID string) (*model.User, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserInfo, userID)

	var result model.User
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// SetUserInfoToCache writes cached user info.
func SetUserInfoToCache(ctx context.Context, userID string, data *model.User, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserInfo, userID)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateUserInfoCache clears cached user info.
func InvalidateUserInfoCache(ctx context.Context, userID string) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserInfo, userID)
	return manager.cache.Delete(ctx, key)
}

// VerifiedKeyCache maps a key digest to the identity it resolved to,
// so hot API keys skip the bcrypt scan.
type VerifiedKeyCache struct {
	UserID string `json:"user_id"`
	KeyID  string `json:"key_id"`
}

// GetVerifiedKeyFromCache reads a cached API key verification.
func GetVerifiedKeyFromCache(ctx context.Context, digest string) (*VerifiedKeyCache, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyApiKey, digest)

	var result VerifiedKeyCache
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	if result.UserID == "" {
		return nil, false
	}
	return &result, true
}

// SetVerifiedKeyToCache writes a cached API key verification.
func SetVerifiedKeyToCache(ctx context.Context, digest string, data *VerifiedKeyCache, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyApiKey, digest)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateVerifiedKeyCache drops a cached API key verification.
func InvalidateVerifiedKeyCache(ctx context.Context, digest string) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyApiKey, digest)
	return manager.cache.Delete(ctx, key)
}

// InvalidateAllVerifiedKeys drops every cached key verification.
// Called on revoke since the digest of the revoked key is unknown.
func InvalidateAllVerifiedKeys(ctx context.Context) error {
	manager := GetCacheManager()
	cache, ok := manager.cache.(*RedisCache)
	if !ok {
		return nil
	}
	return cache.DeleteByPattern(ctx, CacheKeyApiKey+":*")
}
