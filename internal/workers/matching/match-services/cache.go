// internal/workers/matching/match-services/cache.go
package matchservices

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "match:result:"

// resultCache stores matching results keyed by catalog version and answer hash. Results are
// deterministic for that pair, so entries never need invalidation beyond the TTL.
type resultCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func newResultCache(client *redis.Client, ttl time.Duration) *resultCache {
	if client == nil {
		return nil
	}
	return &resultCache{redis: client, ttl: ttl}
}

// CacheKey builds match:result:<version>:<sha256 of answers and maxResults>.
func CacheKey(version uint64, answers models.QuestionnaireAnswers, maxResults int) (string, error) {
	// map keys marshal sorted, so equal answers hash equally
	payload, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", maxResults, payload)))
	return fmt.Sprintf("%s%d:%s", cacheKeyPrefix, version, hex.EncodeToString(sum[:])), nil
}

func (c *resultCache) get(ctx context.Context, key string) (*models.MatchingResult, bool, error) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewMatchCacheFailedError(key, err)
	}

	var result models.MatchingResult
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, false, errors.NewMatchCacheFailedError(key, err)
	}
	return &result, true, nil
}

func (c *resultCache) set(ctx context.Context, key string, result *models.MatchingResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.NewMatchCacheFailedError(key, err)
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.NewMatchCacheFailedError(key, err)
	}
	return nil
}
