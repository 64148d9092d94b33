package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kyntel/internal/risk"
	"kyntel/pkg/platform/sentinel"
)

const keyPrefix = "kyntel:assessment:"

// Redis caches assessments in Redis with a TTL so repeated dashboard loads
// for the same company do not re-fetch registry evidence.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed assessment cache.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Find returns a cached assessment or sentinel.ErrNotFound on miss. Redis
// expiry handles the TTL.
func (r *Redis) Find(ctx context.Context, companyID string) (*risk.Assessment, error) {
	raw, err := r.client.Get(ctx, keyPrefix+companyID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	var assessment risk.Assessment
	if err := json.Unmarshal(raw, &assessment); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return &assessment, nil
}

// Save stores the assessment under the company key with the configured TTL.
func (r *Redis) Save(ctx context.Context, assessment *risk.Assessment) error {
	raw, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+assessment.CompanyID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set assessment: %w", err)
	}
	return nil
}
