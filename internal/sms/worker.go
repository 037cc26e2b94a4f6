package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alatem/alatem/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// Worker - структура для обработки очереди и отправки SMS через Twilio
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.SMSTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди SMS
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting SMS worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping SMS worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка (очереди)
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, smsQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop sms job from Redis")
					time.Sleep(w.cfg.SMSTimeout) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var job Job
				if err := json.Unmarshal([]byte(payload), &job); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal sms job from Redis")
					continue
				}

				w.processJob(ctx, job)
			}
		}
	}()
}

func (w *Worker) processJob(ctx context.Context, job Job) {
	log := w.logger.WithField("phone", job.Phone).WithField("alert_id", job.AlertID)
	log.Debug("Processing sms job...")

	if !w.cfg.UseRealSMS {
		// Режим разработки: SMS не отправляется, только логируется
		log.WithField("message", job.Message).Info("MOCK SMS (USE_REAL_SMS=false)")
		return
	}

	maxRetries := w.cfg.SMSMaxRetries
	baseDelay := w.cfg.SMSBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := w.buildTwilioRequest(ctx, job)
		if err != nil {
			log.WithError(err).Errorf("Failed to create Twilio request. Retries left: %d", maxRetries-1-i)
			continue
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to send SMS. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2 // Экспоненциальная задержка
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Info("SMS delivered successfully.")
			return
		}

		log.Warnf("SMS delivery failed with status code %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver SMS after %d retries.", maxRetries)
}

// buildTwilioRequest собирает запрос к Twilio Messages API
func (w *Worker) buildTwilioRequest(ctx context.Context, job Job) (*http.Request, error) {
	form := url.Values{}
	form.Set("To", job.Phone)
	form.Set("From", w.cfg.TwilioPhone)
	form.Set("Body", job.Message)

	endpoint := fmt.Sprintf(twilioMessagesURL, w.cfg.TwilioSID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(w.cfg.TwilioSID, w.cfg.TwilioToken)
	return req, nil
}
