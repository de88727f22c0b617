package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTTL = 24 * time.Hour

// RedisStore - внешнее хранилище сессий для мультипроцессных деплоев.
// Ключ включает тип бота: у каждого варианта свои сессии.
type RedisStore struct {
	client  *redis.Client
	botType string
	ctx     context.Context
}

func NewRedisStore(addr, password, botType string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, botType: botType, ctx: ctx}, nil
}

func (r *RedisStore) key(chatID int64) string {
	return fmt.Sprintf("bingo:%s:session:%d", r.botType, chatID)
}

func (r *RedisStore) Get(chatID int64) (*Session, error) {
	data, err := r.client.Get(r.ctx, r.key(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Put(chatID int64, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, r.key(chatID), data, redisTTL).Err()
}

func (r *RedisStore) Delete(chatID int64) error {
	return r.client.Del(r.ctx, r.key(chatID)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
