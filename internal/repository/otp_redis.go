package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/service"
	"github.com/redis/go-redis/v9"
)

// OTPStore хранит одноразовые коды подтверждения в Redis с TTL.
// Код и счетчик неудачных попыток лежат в отдельных ключах, чтобы
// счетчик увеличивался атомарным INCR.
type OTPStore struct {
	redisClient *redis.Client
	ttl         time.Duration
	maxAttempts int
}

func NewOTPStore(client *redis.Client, ttl time.Duration, maxAttempts int) service.OTPStore {
	return &OTPStore{
		redisClient: client,
		ttl:         ttl,
		maxAttempts: maxAttempts,
	}
}

func otpKey(phone string) string {
	return "otp:" + phone
}

func otpAttemptsKey(phone string) string {
	return "otp:attempts:" + phone
}

// Store записывает новый код для номера, сбрасывая счетчик попыток
func (s *OTPStore) Store(ctx context.Context, phone, code string) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, otpKey(phone), code, s.ttl)
	pipe.Set(ctx, otpAttemptsKey(phone), 0, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

// Verify сверяет код с сохраненным. Код одноразовый: при совпадении запись
// удаляется, при несовпадении счетчик попыток растет атомарно. Исчерпание
// попыток удаляет код.
func (s *OTPStore) Verify(ctx context.Context, phone, code string) error {
	key := otpKey(phone)
	attemptsKey := otpAttemptsKey(phone)

	stored, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return service.ErrOTPNotFound
		}
		return fmt.Errorf("failed to load otp: %w", err)
	}

	attempts, err := s.redisClient.Get(ctx, attemptsKey).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to load otp attempts: %w", err)
	}
	if attempts >= s.maxAttempts {
		if err := s.redisClient.Del(ctx, key, attemptsKey).Err(); err != nil {
			return fmt.Errorf("failed to delete otp: %w", err)
		}
		return service.ErrOTPTooManyAttempts
	}

	if stored != code {
		total, err := s.redisClient.Incr(ctx, attemptsKey).Result()
		if err != nil {
			return fmt.Errorf("failed to update otp attempts: %w", err)
		}
		if int(total) >= s.maxAttempts {
			return service.ErrOTPTooManyAttempts
		}
		return service.ErrOTPInvalid
	}

	if err := s.redisClient.Del(ctx, key, attemptsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
