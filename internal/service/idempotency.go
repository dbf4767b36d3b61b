package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReservationStore 幂等键预占：同一个 key 只允许绑定一个会话号
type ReservationStore interface {
	Reserve(ctx context.Context, key, sessionID string, ttl time.Duration) (winner string, fresh bool, err error)
}

// RedisReservations 基于 Redis SETNX 的幂等预占，键带 TTL 防止堆积
type RedisReservations struct {
	Client *redis.Client
}

func NewRedisReservations(client *redis.Client) *RedisReservations {
	return &RedisReservations{Client: client}
}

// Reserve 把幂等键绑定到本次会话号；已被占用时返回先占者的会话号
func (r *RedisReservations) Reserve(ctx context.Context, key, sessionID string, ttl time.Duration) (string, bool, error) {
	fullKey := reservationKey(key)
	ok, err := r.Client.SetNX(ctx, fullKey, sessionID, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return sessionID, true, nil
	}
	winner, err := r.Client.Get(ctx, fullKey).Result()
	if errors.Is(err, redis.Nil) {
		// 键恰好在 SETNX 与 GET 之间过期，按新提交处理
		return sessionID, true, nil
	}
	if err != nil {
		return "", false, err
	}
	return winner, false, nil
}

func reservationKey(key string) string {
	return "skill_insight:idempotency:" + key
}
