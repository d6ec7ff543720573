package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPattern  = "fair:session:%d:%d"
	sessionScanPattern = "fair:session:*"

	// Sessions have no explicit expiry in the game rules, but a generous
	// TTL keeps abandoned attempts from piling up in a shared Redis.
	sessionTTL = 24 * time.Hour
)

// RedisStore persists task sessions in Redis for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisStore initializes a Redis-backed Store implementation.
func NewRedisStore(client *redis.Client, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}

	return &RedisStore{
		client: client,
		log:    log,
	}
}

// Get returns the stored session or ErrSessionNotFound when absent.
func (s *RedisStore) Get(ctx context.Context, userID, taskID int64) (*Session, error) {
	data, err := s.client.Get(ctx, redisSessionKey(userID, taskID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}

		s.log.Error("failed to get session from redis", "user_id", userID, "task_id", taskID, "error", err)
		return nil, err
	}

	var stored Session
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		s.log.Error("failed to decode session", "user_id", userID, "task_id", taskID, "error", err)
		return nil, err
	}

	return &stored, nil
}

// Put saves the session, replacing any previous one for the key.
func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		s.log.Error("failed to encode session", "user_id", sess.UserID, "task_id", sess.TaskID, "error", err)
		return err
	}

	key := redisSessionKey(sess.UserID, sess.TaskID)
	if err := s.client.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		s.log.Error("failed to save session in redis", "user_id", sess.UserID, "task_id", sess.TaskID, "error", err)
		return err
	}

	return nil
}

// Delete removes the session; deleting an absent key is a no-op.
func (s *RedisStore) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.client.Del(ctx, redisSessionKey(userID, taskID)).Err(); err != nil {
		s.log.Error("failed to delete session", "user_id", userID, "task_id", taskID, "error", err)
		return err
	}

	return nil
}

// Count scans session keys to report the number of live sessions.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)

	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, sessionScanPattern, 100).Result()
		if err != nil {
			s.log.Error("failed to scan sessions", "error", err)
			return 0, err
		}

		total += len(keys)

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return total, nil
}

func redisSessionKey(userID, taskID int64) string {
	return fmt.Sprintf(sessionKeyPattern, userID, taskID)
}
