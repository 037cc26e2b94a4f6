package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) service.ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

// SaveHealthReport создает новую запись отчета о заболеваниях в бд
func (r *ReportRepository) SaveHealthReport(ctx context.Context, report *models.HealthReport) error {
	query := `
		INSERT INTO health_reports (area, condition, cases, reported_by, reported_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		report.Area,
		report.Condition,
		report.Cases,
		report.ReportedBy,
		report.ReportedAt,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("failed to save health report: %w", err)
	}
	return nil
}

// SaveCrimeReport создает новую запись отчета об инциденте в бд
func (r *ReportRepository) SaveCrimeReport(ctx context.Context, report *models.CrimeReport) error {
	query := `
		INSERT INTO crime_reports (area, crime_type, reported_by, reported_at)
		VALUES ($1, $2, $3, $4) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		report.Area,
		report.CrimeType,
		report.ReportedBy,
		report.ReportedAt,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("failed to save crime report: %w", err)
	}
	return nil
}

// HealthCaseCount возвращает суммарное число случаев заболевания
// в районе начиная с момента since
func (r *ReportRepository) HealthCaseCount(ctx context.Context, area, condition string, since time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(cases), 0)
		FROM health_reports
		WHERE area = $1 AND condition = $2 AND reported_at >= $3;
	`
	var count int
	err := r.db.QueryRow(ctx, query, area, condition, since).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count health cases: %w", err)
	}
	return count, nil
}

// CrimeReportCount возвращает число отчетов об инцидентах в районе начиная с since
func (r *ReportRepository) CrimeReportCount(ctx context.Context, area string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM crime_reports
		WHERE area = $1 AND reported_at >= $2;
	`
	var count int
	err := r.db.QueryRow(ctx, query, area, since).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count crime reports: %w", err)
	}
	return count, nil
}

// Counts возвращает общее число отчетов каждого вида
func (r *ReportRepository) Counts(ctx context.Context) (*models.ReportCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM health_reports),
			(SELECT COUNT(*) FROM crime_reports);
	`
	counts := &models.ReportCounts{}
	err := r.db.QueryRow(ctx, query).Scan(&counts.HealthReports, &counts.CrimeReports)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	return counts, nil
}
