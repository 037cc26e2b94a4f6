package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/sirupsen/logrus"
)

// ReportRepository определяет контракт для хранилища отчетов с мест
type ReportRepository interface {
	SaveHealthReport(ctx context.Context, report *models.HealthReport) error
	SaveCrimeReport(ctx context.Context, report *models.CrimeReport) error
	HealthCaseCount(ctx context.Context, area, condition string, since time.Time) (int, error)
	CrimeReportCount(ctx context.Context, area string, since time.Time) (int, error)
	Counts(ctx context.Context) (*models.ReportCounts, error)
}

// ReportService определяет контракт для приема отчетов и автоматических оповещений
type ReportService interface {
	SubmitHealthReport(ctx context.Context, report *models.HealthReport) (*models.SentAlert, error)
	SubmitCrimeReport(ctx context.Context, report *models.CrimeReport) error
}

type reportService struct {
	reports ReportRepository
	alerts  AlertService
	logger  *logrus.Logger
	cfg     *config.Config
}

func NewReportService(reports ReportRepository, alerts AlertService, logger *logrus.Logger, cfg *config.Config) ReportService {
	return &reportService{
		reports: reports,
		alerts:  alerts,
		logger:  logger,
		cfg:     cfg,
	}
}

// SubmitHealthReport сохраняет отчет о заболеваниях. Если суммарное число случаев
// в районе за скользящее окно достигает порога, автоматически рассылается
// оповещение о вспышке; возвращается созданное оповещение или nil.
func (s *reportService) SubmitHealthReport(ctx context.Context, report *models.HealthReport) (*models.SentAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "SubmitHealthReport",
		"area":      report.Area,
		"condition": report.Condition,
	})
	log.Info("Submitting health report")

	if !models.ValidArea(report.Area) {
		return nil, fmt.Errorf("service: unknown area %q", report.Area)
	}
	if !models.ValidHealthCondition(report.Condition) {
		return nil, fmt.Errorf("service: unknown health condition %q", report.Condition)
	}
	if report.Cases < 1 {
		return nil, fmt.Errorf("service: cases must be positive")
	}

	report.ReportedAt = time.Now().UTC()
	if err := s.reports.SaveHealthReport(ctx, report); err != nil {
		log.WithError(err).Error("Failed to save health report")
		return nil, fmt.Errorf("service: could not save health report: %w", err)
	}

	since := report.ReportedAt.AddDate(0, 0, -s.cfg.OutbreakWindowDays)
	total, err := s.reports.HealthCaseCount(ctx, report.Area, report.Condition, since)
	if err != nil {
		log.WithError(err).Error("Failed to count recent health cases")
		return nil, fmt.Errorf("service: could not count health cases: %w", err)
	}

	if total < s.cfg.OutbreakCaseThreshold {
		log.WithField("window_cases", total).Info("Health report saved, below outbreak threshold")
		return nil, nil
	}

	log.WithField("window_cases", total).Warn("Outbreak threshold reached, triggering alert")

	alert, err := s.alerts.Broadcast(ctx, models.BroadcastInput{
		AlertType:   models.AlertTypeHealth,
		Area:        report.Area,
		Condition:   report.Condition,
		Cases:       total,
		TriggeredBy: "auto_detector",
	})
	if err != nil {
		// Отчет уже сохранен, неудачная рассылка не должна его терять
		log.WithError(err).Error("Failed to broadcast outbreak alert")
		return nil, nil
	}
	return alert, nil
}

// SubmitCrimeReport сохраняет отчет об инциденте безопасности
func (s *reportService) SubmitCrimeReport(ctx context.Context, report *models.CrimeReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "report",
		"method":     "SubmitCrimeReport",
		"area":       report.Area,
		"crime_type": report.CrimeType,
	})
	log.Info("Submitting crime report")

	if !models.ValidArea(report.Area) {
		return fmt.Errorf("service: unknown area %q", report.Area)
	}
	if !models.ValidCrimeType(report.CrimeType) {
		return fmt.Errorf("service: unknown crime type %q", report.CrimeType)
	}

	report.ReportedAt = time.Now().UTC()
	if err := s.reports.SaveCrimeReport(ctx, report); err != nil {
		log.WithError(err).Error("Failed to save crime report")
		return fmt.Errorf("service: could not save crime report: %w", err)
	}

	log.Info("Crime report saved")
	return nil
}
