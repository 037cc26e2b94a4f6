package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service/mocks"
	"github.com/alatem/alatem/internal/sms"
	sms_mocks "github.com/alatem/alatem/internal/sms/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAlertService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestAlertService(t *testing.T) (*alertService, *mocks.MockAlertRepository, *mocks.MockUserRepository, *sms_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	alertsMock := mocks.NewMockAlertRepository(ctrl)
	usersMock := mocks.NewMockUserRepository(ctrl)
	publisherMock := sms_mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{}

	service := NewAlertService(alertsMock, usersMock, publisherMock, logger, cfg)
	return service.(*alertService), alertsMock, usersMock, publisherMock
}

func TestBroadcast_Success(t *testing.T) {
	// Подготовка
	service, alertsMock, usersMock, publisherMock := newTestAlertService(t)
	ctx := context.Background()
	recipients := []*models.User{
		{ID: "u1", Phone: "+50937001111", Area: "DELMAS", Verified: true, Active: true},
		{ID: "u2", Phone: "+50937002222", Area: "DELMAS", Verified: true, Active: true},
	}

	// Ожидания
	usersMock.EXPECT().
		ListByArea(ctx, "DELMAS", true).
		Return(recipients, nil).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(nil).
		Times(2)
	alertsMock.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.SentAlert) error {
			assert.Equal(t, models.AlertTypeHealth, alert.AlertType)
			assert.Equal(t, 2, alert.RecipientsCount)
			assert.NotEmpty(t, alert.Message)
			return nil
		}).
		Times(1)

	// Действие
	alert, err := service.Broadcast(ctx, models.BroadcastInput{
		AlertType:   models.AlertTypeHealth,
		Area:        "DELMAS",
		Condition:   "cholera",
		Cases:       25,
		TriggeredBy: "staff",
	})

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, 2, alert.RecipientsCount)
	assert.NotEmpty(t, alert.ID)
}

func TestBroadcast_UnknownArea(t *testing.T) {
	// Подготовка
	service, _, _, _ := newTestAlertService(t)
	ctx := context.Background()

	// Действие
	_, err := service.Broadcast(ctx, models.BroadcastInput{
		AlertType: models.AlertTypeHealth,
		Area:      "BROOKLYN",
		Condition: "cholera",
	})

	// Проверки
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown area")
}

func TestBroadcast_UnknownCondition(t *testing.T) {
	// Подготовка
	service, _, _, _ := newTestAlertService(t)
	ctx := context.Background()

	// Действие
	_, err := service.Broadcast(ctx, models.BroadcastInput{
		AlertType: models.AlertTypeHealth,
		Area:      "DELMAS",
		Condition: "headache",
	})

	// Проверки
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown health condition")
}

func TestBroadcast_PublishFailureSkipsRecipient(t *testing.T) {
	// Подготовка
	service, alertsMock, usersMock, publisherMock := newTestAlertService(t)
	ctx := context.Background()
	recipients := []*models.User{
		{ID: "u1", Phone: "+50937001111", Area: "MARTISSANT", Verified: true, Active: true},
		{ID: "u2", Phone: "+50937002222", Area: "MARTISSANT", Verified: true, Active: true},
	}

	// Ожидания: первая публикация падает, вторая проходит
	usersMock.EXPECT().
		ListByArea(ctx, "MARTISSANT", true).
		Return(recipients, nil).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(fmt.Errorf("redis down")).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(nil).
		Times(1)
	alertsMock.EXPECT().
		Save(ctx, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	alert, err := service.Broadcast(ctx, models.BroadcastInput{
		AlertType:   models.AlertTypeSafety,
		Area:        "MARTISSANT",
		CrimeType:   "kidnapping",
		TriggeredBy: "staff",
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, alert.RecipientsCount)
}

func TestBroadcast_CustomMessage(t *testing.T) {
	// Подготовка
	service, alertsMock, usersMock, publisherMock := newTestAlertService(t)
	ctx := context.Background()

	// Ожидания
	usersMock.EXPECT().
		ListByArea(ctx, "TABARRE", true).
		Return([]*models.User{{ID: "u1", Phone: "+50937001111"}}, nil).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, job sms.Job) error {
			assert.Equal(t, "Dlo a pa bon jodi a.", job.Message)
			return nil
		}).
		Times(1)
	alertsMock.EXPECT().
		Save(ctx, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	alert, err := service.Broadcast(ctx, models.BroadcastInput{
		AlertType:   models.AlertTypeCustom,
		Area:        "TABARRE",
		Message:     "Dlo a pa bon jodi a.",
		TriggeredBy: "staff",
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Dlo a pa bon jodi a.", alert.Message)
}

func TestHistory_Success(t *testing.T) {
	// Подготовка
	service, alertsMock, _, _ := newTestAlertService(t)
	ctx := context.Background()
	expected := []*models.SentAlert{
		{ID: "a1", AlertType: models.AlertTypeHealth, Area: "DELMAS"},
		{ID: "a2", AlertType: models.AlertTypeSafety, Area: "DELMAS"},
	}

	// Ожидания
	alertsMock.EXPECT().
		HistoryByArea(ctx, "DELMAS", "", 20).
		Return(expected, nil).
		Times(1)

	// Действие
	alerts, err := service.History(ctx, "DELMAS", "", 20)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, alerts)
}

func TestHistory_LimitClamped(t *testing.T) {
	// Подготовка
	service, alertsMock, _, _ := newTestAlertService(t)
	ctx := context.Background()

	// Ожидания: недопустимый limit заменяется значением по умолчанию
	alertsMock.EXPECT().
		HistoryByArea(ctx, "DELMAS", "", 50).
		Return(nil, nil).
		Times(1)

	// Действие
	_, err := service.History(ctx, "DELMAS", "", 0)

	// Проверки
	require.NoError(t, err)
}

func TestHistory_UnknownArea(t *testing.T) {
	// Подготовка
	service, _, _, _ := newTestAlertService(t)
	ctx := context.Background()

	// Действие
	_, err := service.History(ctx, "ATLANTIS", "", 10)

	// Проверки
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown area")
}

func TestRecent_HoursClamped(t *testing.T) {
	// Подготовка
	service, alertsMock, _, _ := newTestAlertService(t)
	ctx := context.Background()

	// Ожидания: недопустимое значение часов заменяется сутками
	alertsMock.EXPECT().
		Recent(ctx, gomock.Any(), "").
		DoAndReturn(func(_ context.Context, since time.Time, _ string) ([]*models.SentAlert, error) {
			expected := time.Now().UTC().Add(-24 * time.Hour)
			assert.WithinDuration(t, expected, since, time.Minute)
			return nil, nil
		}).
		Times(1)

	// Действие
	_, err := service.Recent(ctx, 0, "")

	// Проверки
	require.NoError(t, err)
}

func TestAreaStats_Success(t *testing.T) {
	// Подготовка
	service, _, usersMock, _ := newTestAlertService(t)
	ctx := context.Background()
	expected := []*models.AreaStat{
		{Area: "DELMAS", UserCount: 12},
		{Area: "TABARRE", UserCount: 3},
	}

	// Ожидания
	usersMock.EXPECT().
		AreaStats(ctx).
		Return(expected, nil).
		Times(1)

	// Действие
	stats, err := service.AreaStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}
