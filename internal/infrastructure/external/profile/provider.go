package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/interview-coach-team/interview-coach/internal/infrastructure/cache"
)

const contextTTL = 24 * time.Hour

// Store abstracts the cache backing the provider so deployments without
// Redis fall back to the in-process store.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// Provider caches the candidate's resume/profile context between requests.
// The context arrives with a start-interview request; a later start without
// resume data reuses the cached one.
type Provider struct {
	store Store
}

// NewProvider creates a provider over the given store
func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

func profileKey(userKey string) string {
	return "profile:" + userKey
}

// Put stores the resume context for a user
func (p *Provider) Put(ctx context.Context, userKey string, resumeContext map[string]any) error {
	data, err := json.Marshal(resumeContext)
	if err != nil {
		return fmt.Errorf("failed to marshal resume context: %w", err)
	}
	return p.store.Set(ctx, profileKey(userKey), string(data), contextTTL)
}

// Get retrieves the resume context for a user (nil if absent)
func (p *Provider) Get(ctx context.Context, userKey string) (map[string]any, error) {
	data, ok, err := p.store.Get(ctx, profileKey(userKey))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var resumeContext map[string]any
	if err := json.Unmarshal([]byte(data), &resumeContext); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume context: %w", err)
	}
	return resumeContext, nil
}

// Invalidate drops the cached context for a user
func (p *Provider) Invalidate(ctx context.Context, userKey string) error {
	return p.store.Delete(ctx, profileKey(userKey))
}

// RedisStore adapts a redis client to the Store interface
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set stores a key with TTL
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a key (false if missing)
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Delete removes a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// MemoryStoreAdapter adapts the in-process TTL store to the Store interface
type MemoryStoreAdapter struct {
	store *cache.MemoryStore
}

// NewMemoryStoreAdapter wraps an in-memory store
func NewMemoryStoreAdapter(store *cache.MemoryStore) *MemoryStoreAdapter {
	return &MemoryStoreAdapter{store: store}
}

// Set stores a key with TTL
func (s *MemoryStoreAdapter) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.store.Set(key, value, ttl)
	return nil
}

// Get retrieves a key (false if missing)
func (s *MemoryStoreAdapter) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.store.Get(key)
	return value, ok, nil
}

// Delete removes a key
func (s *MemoryStoreAdapter) Delete(_ context.Context, key string) error {
	s.store.Delete(key)
	return nil
}
