package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
)

// detailsKeyPrefix namespaces cached video details.
const detailsKeyPrefix = "details:"

// DetailsCache stores video details in Redis with a TTL. Lookups hit the
// player and catalog APIs; caching them keeps repeat requests for the same
// video off both quotas.
type DetailsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDetailsCache creates a new Redis details cache.
func NewDetailsCache(client *redis.Client, ttl time.Duration) *DetailsCache {
	return &DetailsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves cached details, or domain.ErrCacheMiss.
func (d *DetailsCache) Get(ctx context.Context, videoID string) (*domain.VideoDetails, error) {
	data, err := d.client.Get(ctx, detailsKeyPrefix+videoID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var details domain.VideoDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to decode cached details: %w", err)
	}

	return &details, nil
}

// Set stores details under the video identifier.
func (d *DetailsCache) Set(ctx context.Context, videoID string, details *domain.VideoDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}

	if err := d.client.Set(ctx, detailsKeyPrefix+videoID, data, d.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	observability.FromContext(ctx).Debug("video details cached",
		observability.String("video_id", videoID))

	return nil
}
