// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-cms/internal/platform/constants"
)

// CachedAssociationRepository is a read-through Redis cache in front of an
// [AssociationRepository]. Misses and Redis failures fall through to the
// wrapped store; every Save drops the whole lookup namespace.
type CachedAssociationRepository struct {
	AssociationRepository

	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedAssociationRepository wraps next with a Redis cache.
func NewCachedAssociationRepository(next AssociationRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedAssociationRepository {
	return &CachedAssociationRepository{
		AssociationRepository: next,
		client:                client,
		ttl:                   ttl,
		logger:                logger,
	}
}

// cachedAssociation is the JSON shape stored in Redis.
type cachedAssociation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GroupID   string    `json:"group_id"`
	Group     *Group    `json:"group,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CacheKey returns the Redis key of a suffix lookup.
func CacheKey(candidate string) string {
	return constants.RedisPrefixContentType + "suffix:" + candidate
}

// FindByNameSuffix serves hits from Redis and populates the cache on misses.
// Not-found results are not cached.
func (repository *CachedAssociationRepository) FindByNameSuffix(context context.Context, candidate string) (*ContentType, error) {
	key := CacheKey(candidate)

	payload, err := repository.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		var cached cachedAssociation
		if decodeErr := json.Unmarshal(payload, &cached); decodeErr == nil {
			return cached.contentType(), nil
		}
		repository.logger.Warn("content_type_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		repository.logger.Warn("content_type_cache_unavailable", slog.Any("error", err))
	}

	contentType, err := repository.AssociationRepository.FindByNameSuffix(context, candidate)
	if err != nil {
		return nil, err
	}

	if encoded, encodeErr := json.Marshal(newCachedAssociation(contentType)); encodeErr == nil {
		if setErr := repository.client.Set(context, key, encoded, repository.ttl).Err(); setErr != nil {
			repository.logger.Warn("content_type_cache_write_failed", slog.Any("error", setErr))
		}
	}

	return contentType, nil
}

// Save writes through and invalidates every cached suffix lookup, since the
// saved name may now be the match for keys that previously missed.
func (repository *CachedAssociationRepository) Save(context context.Context, contentType *ContentType) error {
	if err := repository.AssociationRepository.Save(context, contentType); err != nil {
		return err
	}

	iter := repository.client.Scan(context, 0, constants.RedisPrefixContentType+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(context) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		repository.logger.Warn("content_type_cache_scan_failed", slog.Any("error", err))
		return nil
	}

	if len(keys) > 0 {
		if err := repository.client.Del(context, keys...).Err(); err != nil {
			repository.logger.Warn("content_type_cache_invalidate_failed", slog.Any("error", err))
		}
	}
	return nil
}

func newCachedAssociation(contentType *ContentType) cachedAssociation {
	return cachedAssociation{
		ID:        contentType.ID,
		Name:      contentType.Name,
		GroupID:   contentType.GroupID,
		Group:     contentType.Group,
		CreatedAt: contentType.CreatedAt,
		UpdatedAt: contentType.UpdatedAt,
	}
}

func (cached cachedAssociation) contentType() *ContentType {
	return &ContentType{
		ID:        cached.ID,
		Name:      cached.Name,
		GroupID:   cached.GroupID,
		Group:     cached.Group,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}
}
