package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	smsQueueKey = "sms_jobs"
)

// Job - структура для задания на отправку SMS
type Job struct {
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	AlertID   string    `json:"alert_id,omitempty"` // ID оповещения, если SMS является его частью
	Timestamp time.Time `json:"timestamp"`
}

// Publisher - интерфейс для постановки SMS в очередь отправки
type Publisher interface {
	Publish(ctx context.Context, job Job) error
}

// RedisPublisher - реализация Publisher, использующая Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует задание на отправку SMS в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal sms job: %w", err)
	}

	// Используем LPUSH для добавления задания в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, smsQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish sms job to Redis: %w", err)
	}
	return nil
}
