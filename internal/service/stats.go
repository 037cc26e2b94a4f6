package service

import (
	"context"
	"fmt"

	"github.com/alatem/alatem/internal/models"
	"github.com/sirupsen/logrus"
)

// StatsService определяет контракт для системной статистики
type StatsService interface {
	GetStats(ctx context.Context) (*models.SystemStats, error)
}

type statsService struct {
	users   UserRepository
	alerts  AlertRepository
	reports ReportRepository
	logger  *logrus.Logger
}

func NewStatsService(users UserRepository, alerts AlertRepository, reports ReportRepository, logger *logrus.Logger) StatsService {
	return &statsService{
		users:   users,
		alerts:  alerts,
		reports: reports,
		logger:  logger,
	}
}

// GetStats собирает счетчики по пользователям, отчетам и оповещениям
func (s *statsService) GetStats(ctx context.Context) (*models.SystemStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "stats",
		"method":  "GetStats",
	})

	userCounts, err := s.users.Counts(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count users")
		return nil, fmt.Errorf("service: could not count users: %w", err)
	}

	reportCounts, err := s.reports.Counts(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count reports")
		return nil, fmt.Errorf("service: could not count reports: %w", err)
	}

	summary, err := s.alerts.Summary(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to summarize alerts")
		return nil, fmt.Errorf("service: could not summarize alerts: %w", err)
	}

	return &models.SystemStats{
		Users:       *userCounts,
		Reports:     *reportCounts,
		AlertsSent:  summary.TotalAlerts,
		AlertsToday: summary.TodayAlerts,
	}, nil
}
