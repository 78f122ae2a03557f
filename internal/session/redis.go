package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/config"
)

type RedisStore struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewRedisStore(cfg *config.Config, rdb *redis.Client) *RedisStore {
	return &RedisStore{
		cfg: cfg,
		rdb: rdb,
	}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("session_%s", id)
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	return s.rdb.Set(ctx, s.key(sess.ID), data, time.Duration(s.cfg.Session.Expiration)*time.Second).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	data, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	sess := &Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	return s.rdb.Del(ctx, s.key(id)).Err()
}
