package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/sms"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт для работы с историей оповещений
type AlertRepository interface {
	Save(ctx context.Context, alert *models.SentAlert) error
	HistoryByArea(ctx context.Context, area, alertType string, limit int) ([]*models.SentAlert, error)
	Recent(ctx context.Context, since time.Time, area string) ([]*models.SentAlert, error)
	Summary(ctx context.Context) (*models.AlertSummary, error)
}

// AlertService определяет контракт для бизнес-логики оповещений
type AlertService interface {
	Broadcast(ctx context.Context, input models.BroadcastInput) (*models.SentAlert, error)
	History(ctx context.Context, area, alertType string, limit int) ([]*models.SentAlert, error)
	Recent(ctx context.Context, hours int, area string) ([]*models.SentAlert, error)
	Summary(ctx context.Context) (*models.AlertSummary, error)
	AreaStats(ctx context.Context) ([]*models.AreaStat, error)
}

type alertService struct {
	alerts    AlertRepository
	users     UserRepository
	publisher sms.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewAlertService(alerts AlertRepository, users UserRepository, publisher sms.Publisher, logger *logrus.Logger, cfg *config.Config) AlertService {
	return &alertService{
		alerts:    alerts,
		users:     users,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Broadcast рассылает оповещение всем подтвержденным пользователям района
// и сохраняет запись в истории
func (s *alertService) Broadcast(ctx context.Context, input models.BroadcastInput) (*models.SentAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "Broadcast",
		"alert_type": input.AlertType,
		"area":       input.Area,
	})
	log.Info("Attempting to broadcast an alert")

	if !models.ValidArea(input.Area) {
		return nil, fmt.Errorf("service: unknown area %q", input.Area)
	}
	if input.AlertType == models.AlertTypeHealth && !models.ValidHealthCondition(input.Condition) {
		return nil, fmt.Errorf("service: unknown health condition %q", input.Condition)
	}
	if input.AlertType == models.AlertTypeSafety && !models.ValidCrimeType(input.CrimeType) {
		return nil, fmt.Errorf("service: unknown crime type %q", input.CrimeType)
	}

	message, err := sms.AlertMessage(input.AlertType, input.Area, input.Condition, input.CrimeType, input.Message, input.Cases)
	if err != nil {
		return nil, fmt.Errorf("service: could not build alert message: %w", err)
	}

	// Рассылка идет только подтвержденным активным пользователям
	users, err := s.users.ListByArea(ctx, input.Area, true)
	if err != nil {
		log.WithError(err).Error("Failed to list users by area")
		return nil, fmt.Errorf("service: could not list users: %w", err)
	}

	alert := &models.SentAlert{
		ID:          uuid.NewString(),
		AlertType:   input.AlertType,
		Area:        input.Area,
		Condition:   input.Condition,
		CrimeType:   input.CrimeType,
		Cases:       input.Cases,
		Message:     message,
		Timestamp:   time.Now().UTC(),
		TriggeredBy: input.TriggeredBy,
	}

	sent := 0
	for _, user := range users {
		job := sms.Job{
			Phone:     user.Phone,
			Message:   message,
			AlertID:   alert.ID,
			Timestamp: alert.Timestamp,
		}
		if err := s.publisher.Publish(ctx, job); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Failed to enqueue alert sms")
			continue
		}
		sent++
	}
	alert.RecipientsCount = sent

	if err := s.alerts.Save(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to save sent alert")
		return nil, fmt.Errorf("service: could not save alert: %w", err)
	}

	log.WithField("recipients_count", sent).Info("Alert broadcast completed")
	return alert, nil
}

// History возвращает историю оповещений для района (новые - первыми)
func (s *alertService) History(ctx context.Context, area, alertType string, limit int) ([]*models.SentAlert, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "History",
		"area":    area,
	})
	log.Info("Fetching alert history")

	if !models.ValidArea(area) {
		return nil, fmt.Errorf("service: unknown area %q", area)
	}

	alerts, err := s.alerts.HistoryByArea(ctx, area, alertType, limit)
	if err != nil {
		log.WithError(err).Error("Failed to fetch alert history from repository")
		return nil, fmt.Errorf("service: could not fetch alert history: %w", err)
	}

	log.WithField("count", len(alerts)).Info("Alert history fetched successfully")
	return alerts, nil
}

// Recent возвращает оповещения за последние hours часов
func (s *alertService) Recent(ctx context.Context, hours int, area string) ([]*models.SentAlert, error) {
	if hours < 1 || hours > 24*30 {
		hours = 24
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "Recent",
		"hours":   hours,
	})
	log.Info("Fetching recent alerts")

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	alerts, err := s.alerts.Recent(ctx, since, area)
	if err != nil {
		log.WithError(err).Error("Failed to fetch recent alerts from repository")
		return nil, fmt.Errorf("service: could not fetch recent alerts: %w", err)
	}
	return alerts, nil
}

// Summary возвращает сводку по оповещениям
func (s *alertService) Summary(ctx context.Context) (*models.AlertSummary, error) {
	summary, err := s.alerts.Summary(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch alert summary from repository")
		return nil, fmt.Errorf("service: could not fetch alert summary: %w", err)
	}
	return summary, nil
}

// AreaStats возвращает количество подтвержденных пользователей по районам
func (s *alertService) AreaStats(ctx context.Context) ([]*models.AreaStat, error) {
	stats, err := s.users.AreaStats(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch area stats from repository")
		return nil, fmt.Errorf("service: could not fetch area stats: %w", err)
	}
	return stats, nil
}
