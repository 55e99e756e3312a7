package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/showcasehub/gallery/internal/enrich"
)

// Store persists repository metadata in Redis. Entries carry no TTL:
// a cached value is trusted until the sweeper or an operator removes
// it, which keeps the gallery well under the upstream rate limits.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed metadata store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save stores metadata for a repo id ("owner/name").
func (s *Store) Save(ctx context.Context, id string, meta enrich.Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := s.client.Set(ctx, RepoKey(id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	if err := s.client.SAdd(ctx, AllReposKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to add repo to set: %w", err)
	}
	return nil
}

// Get retrieves metadata for a repo id. ok is false on a cache miss.
func (s *Store) Get(ctx context.Context, id string) (enrich.Metadata, bool, error) {
	data, err := s.client.Get(ctx, RepoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return enrich.Metadata{}, false, nil
		}
		return enrich.Metadata{}, false, fmt.Errorf("failed to get metadata: %w", err)
	}

	var meta enrich.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return enrich.Metadata{}, false, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return meta, true, nil
}

// All retrieves every cached metadata row, keyed by repo id.
func (s *Store) All(ctx context.Context) (map[string]enrich.Metadata, error) {
	ids, err := s.client.SMembers(ctx, AllReposKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo ids: %w", err)
	}

	out := make(map[string]enrich.Metadata, len(ids))
	for _, id := range ids {
		meta, ok, err := s.Get(ctx, id)
		if err != nil || !ok {
			// Skip rows that vanished or failed to decode.
			continue
		}
		out[id] = meta
	}
	return out, nil
}

// Delete removes a cached metadata row.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, RepoKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	if err := s.client.SRem(ctx, AllReposKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove repo from set: %w", err)
	}
	return nil
}

// SaveMany stores multiple metadata rows in one pipeline.
func (s *Store) SaveMany(ctx context.Context, rows map[string]enrich.Metadata) error {
	pipe := s.client.Pipeline()

	for id, meta := range rows {
		data, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata %s: %w", id, err)
		}
		pipe.Set(ctx, RepoKey(id), data, 0)
		pipe.SAdd(ctx, AllReposKey(), id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save metadata rows: %w", err)
	}
	return nil
}
