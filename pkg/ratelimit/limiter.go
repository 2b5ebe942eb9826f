package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"uigallery/pkg/apperr"
)

const (
	loginMaxAttempts = 5
	loginCooldown    = time.Minute
)

// LoginLimiter throttles failed password attempts per identity. It is an
// optimization in front of credential verification, never the gate itself:
// a nil client or an unreachable redis fails open.
type LoginLimiter struct {
	redis *redis.Client
}

func NewLoginLimiter(redisClient *redis.Client) *LoginLimiter {
	return &LoginLimiter{redis: redisClient}
}

func (l *LoginLimiter) key(identity string) string {
	return "login_att:" + identity
}

func (l *LoginLimiter) Check(ctx context.Context, identity string) error {
	if l.redis == nil {
		return nil
	}
	count, err := l.redis.Get(ctx, l.key(identity)).Int64()
	if err != nil {
		return nil // redis.Nil и недоступность — одинаково пропускаем
	}
	if count >= loginMaxAttempts {
		return apperr.New(apperr.CodeTooManyAttempts, "too many login attempts")
	}
	return nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, identity string) {
	if l.redis == nil {
		return
	}
	count, err := l.redis.Incr(ctx, l.key(identity)).Result()
	if err != nil {
		return
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, l.key(identity), loginCooldown).Err(); err != nil {
			return
		}
	}
}

func (l *LoginLimiter) Reset(ctx context.Context, identity string) {
	if l.redis == nil {
		return
	}
	if err := l.redis.Del(ctx, l.key(identity)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return
	}
}
