package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestReportService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestReportService(t *testing.T) (*reportService, *mocks.MockReportRepository, *mocks.MockAlertService) {
	ctrl := gomock.NewController(t)
	reportsMock := mocks.NewMockReportRepository(ctrl)
	alertsMock := mocks.NewMockAlertService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		OutbreakCaseThreshold: 20,
		OutbreakWindowDays:    7,
	}

	service := NewReportService(reportsMock, alertsMock, logger, cfg)
	return service.(*reportService), reportsMock, alertsMock
}

func TestSubmitHealthReport_BelowThreshold(t *testing.T) {
	// Подготовка
	service, reportsMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.HealthReport{
		Area:      "DELMAS",
		Condition: "cholera",
		Cases:     5,
	}

	// Ожидания: порог не достигнут, рассылки нет
	reportsMock.EXPECT().
		SaveHealthReport(ctx, report).
		Return(nil).
		Times(1)
	reportsMock.EXPECT().
		HealthCaseCount(ctx, "DELMAS", "cholera", gomock.Any()).
		Return(12, nil).
		Times(1)

	// Действие
	alert, err := service.SubmitHealthReport(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.False(t, report.ReportedAt.IsZero())
}

func TestSubmitHealthReport_ThresholdTriggersAlert(t *testing.T) {
	// Подготовка
	service, reportsMock, alertsMock := newTestReportService(t)
	ctx := context.Background()
	report := &models.HealthReport{
		Area:      "CITE_SOLEIL",
		Condition: "cholera",
		Cases:     8,
	}
	expectedAlert := &models.SentAlert{
		ID:        "a1",
		AlertType: models.AlertTypeHealth,
		Area:      "CITE_SOLEIL",
	}

	// Ожидания
	reportsMock.EXPECT().
		SaveHealthReport(ctx, report).
		Return(nil).
		Times(1)
	reportsMock.EXPECT().
		HealthCaseCount(ctx, "CITE_SOLEIL", "cholera", gomock.Any()).
		Return(23, nil).
		Times(1)
	alertsMock.EXPECT().
		Broadcast(ctx, models.BroadcastInput{
			AlertType:   models.AlertTypeHealth,
			Area:        "CITE_SOLEIL",
			Condition:   "cholera",
			Cases:       23,
			TriggeredBy: "auto_detector",
		}).
		Return(expectedAlert, nil).
		Times(1)

	// Действие
	alert, err := service.SubmitHealthReport(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedAlert, alert)
}

func TestSubmitHealthReport_BroadcastFailureKeepsReport(t *testing.T) {
	// Подготовка
	service, reportsMock, alertsMock := newTestReportService(t)
	ctx := context.Background()
	report := &models.HealthReport{
		Area:      "CITE_SOLEIL",
		Condition: "cholera",
		Cases:     25,
	}

	// Ожидания: рассылка падает, но отчет уже сохранен
	reportsMock.EXPECT().
		SaveHealthReport(ctx, report).
		Return(nil).
		Times(1)
	reportsMock.EXPECT().
		HealthCaseCount(ctx, "CITE_SOLEIL", "cholera", gomock.Any()).
		Return(25, nil).
		Times(1)
	alertsMock.EXPECT().
		Broadcast(ctx, gomock.Any()).
		Return(nil, fmt.Errorf("queue unavailable")).
		Times(1)

	// Действие
	alert, err := service.SubmitHealthReport(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestSubmitHealthReport_Validation(t *testing.T) {
	// Подготовка
	service, _, _ := newTestReportService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		report *models.HealthReport
	}{
		{"unknown area", &models.HealthReport{Area: "NOWHERE", Condition: "cholera", Cases: 1}},
		{"unknown condition", &models.HealthReport{Area: "DELMAS", Condition: "flu", Cases: 1}},
		{"zero cases", &models.HealthReport{Area: "DELMAS", Condition: "cholera", Cases: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SubmitHealthReport(ctx, tc.report)
			require.Error(t, err)
		})
	}
}

func TestSubmitCrimeReport_Success(t *testing.T) {
	// Подготовка
	service, reportsMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.CrimeReport{
		Area:      "MARTISSANT",
		CrimeType: "kidnapping",
	}

	// Ожидания
	reportsMock.EXPECT().
		SaveCrimeReport(ctx, report).
		Return(nil).
		Times(1)

	// Действие
	err := service.SubmitCrimeReport(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.False(t, report.ReportedAt.IsZero())
}

func TestSubmitCrimeReport_UnknownCrimeType(t *testing.T) {
	// Подготовка
	service, _, _ := newTestReportService(t)
	ctx := context.Background()

	// Действие
	err := service.SubmitCrimeReport(ctx, &models.CrimeReport{
		Area:      "MARTISSANT",
		CrimeType: "jaywalking",
	})

	// Проверки
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown crime type")
}
