// Package redisstore is a session.Store backed by Redis, for
// multi-instance deployments where saved sessions must be visible to
// every process behind a load balancer rather than pinned to one
// instance's local disk.
package redisstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/biofabric/biofabric/pkg/session"
)

// keyPrefix namespaces session keys in a shared Redis instance that
// may also be used for other caches.
const keyPrefix = "biofabric:session:"

// Config configures a Store.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store is a Redis-backed session.Store. Sessions are serialized with
// [session.WriteXML]/[session.ReadXML] and stored as plain strings
// under a namespaced key.
type Store struct {
	client *redis.Client
}

// New connects to addr and returns a ready Store. It pings the server
// once to fail fast on a bad address rather than on first use.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Store{client: client}, nil
}

func key(id string) string { return keyPrefix + id }

// Get implements session.Store.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := s.client.Get(ctx, key(id)).Result()
	if err == redis.Nil {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	sess, err := session.ReadXML(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	sess.ID = id
	return sess, nil
}

// Set implements session.Store.
func (s *Store) Set(ctx context.Context, sess *session.Session) error {
	var buf strings.Builder
	if err := session.WriteXML(&buf, sess); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), buf.String(), 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements session.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// List implements session.Store. It scans the keyspace rather than
// KEYS, so it is safe to call against a large shared Redis instance.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return ids, nil
}

// Close implements session.Store.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ session.Store = (*Store)(nil)
