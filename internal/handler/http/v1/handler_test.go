package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service"
	"github.com/alatem/alatem/internal/service/mocks"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	registration *mocks.MockRegistrationService
	alerts       *mocks.MockAlertService
	reports      *mocks.MockReportService
	stats        *mocks.MockStatsService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		registration: mocks.NewMockRegistrationService(ctrl),
		alerts:       mocks.NewMockAlertService(ctrl),
		reports:      mocks.NewMockReportService(ctrl),
		stats:        mocks.NewMockStatsService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(m.registration, m.alerts, m.reports, m.stats, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := RegisterRequest{
		Name:  "Jean Baptiste",
		Phone: "+50937001234",
		Area:  "DELMAS",
	}

	m.registration.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) (string, error) {
			user.ID = "e0f6c5ad-55fc-4d3c-8a2e-3b7a5c1d9e42"
			return "123456", nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/register", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp RegisterResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "123456", resp.DebugOTP)
	assert.NotEmpty(t, resp.UserID)
}

func TestRegisterEndpoint_InvalidJSON(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.registration.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/register", bytes.NewBufferString(`{"name": "test"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestRegisterEndpoint_InvalidPhone(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := RegisterRequest{
		Name:  "Jean",
		Phone: "12345",
		Area:  "DELMAS",
	}

	m.registration.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/register", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid phone number")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRegisterEndpoint_UnknownArea(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := RegisterRequest{
		Name:  "Jean",
		Phone: "+50937001234",
		Area:  "MIAMI",
	}

	m.registration.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/register", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown area")
}

func TestVerifyEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := VerifyRequest{
		Phone: "+50937001234",
		Code:  "123456",
	}

	m.registration.EXPECT().
		Verify(gomock.Any(), "+50937001234", "123456").
		Return(nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/verify", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp VerifyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Verified)
}

func TestVerifyEndpoint_AcceptsOTPFieldName(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.registration.EXPECT().
		Verify(gomock.Any(), "+50937001234", "123456").
		Return(nil).
		Times(1)

	// Тело запроса ровно в том виде, в каком его шлют внешние клиенты
	body := `{"phone": "+50937001234", "otp": "123456"}`
	w := makeRequest(router, "POST", "/verify", bytes.NewBufferString(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verified":true`)
}

func TestVerifyEndpoint_WrongCode(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := VerifyRequest{
		Phone: "+50937001234",
		Code:  "654321",
	}

	m.registration.EXPECT().
		Verify(gomock.Any(), "+50937001234", "654321").
		Return(service.ErrOTPInvalid).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/verify", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid code")
	assert.Contains(t, w.Body.String(), `"verified":false`)
}

func TestVerifyEndpoint_ExpiredCode(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := VerifyRequest{
		Phone: "+50937001234",
		Code:  "123456",
	}

	m.registration.EXPECT().
		Verify(gomock.Any(), "+50937001234", "123456").
		Return(service.ErrOTPNotFound).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/verify", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "code expired")
}

func TestVerifyEndpoint_ShortCodeRejectedByValidation(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := VerifyRequest{
		Phone: "+50937001234",
		Code:  "123",
	}

	m.registration.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/verify", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertHistoryEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expected := []*models.SentAlert{
		{ID: "a1", AlertType: models.AlertTypeHealth, Area: "DELMAS", Message: "ALÈT SANTE", Timestamp: time.Now().UTC()},
	}

	m.alerts.EXPECT().
		History(gomock.Any(), "DELMAS", "", 50).
		Return(expected, nil).
		Times(1)

	w := makeRequest(router, "GET", "/alerts/history?area=DELMAS", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "DELMAS", resp.Area)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, "a1", resp.Alerts[0].ID)
}

func TestAlertHistoryEndpoint_UnknownArea(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().History(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/alerts/history?area=BROOKLYN", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown area")
}

func TestAlertHistoryEndpoint_TypeFilter(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().
		History(gomock.Any(), "DELMAS", models.AlertTypeSafety, 10).
		Return(nil, nil).
		Times(1)

	w := makeRequest(router, "GET", "/alerts/history?area=DELMAS&type=safety_alert&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBroadcastEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := BroadcastRequest{
		AlertType: models.AlertTypeSafety,
		Area:      "MARTISSANT",
		CrimeType: "kidnapping",
	}
	expectedAlert := &models.SentAlert{
		ID:              "a1",
		AlertType:       models.AlertTypeSafety,
		Area:            "MARTISSANT",
		RecipientsCount: 42,
		TriggeredBy:     "staff",
	}

	m.alerts.EXPECT().
		Broadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input models.BroadcastInput) (*models.SentAlert, error) {
			assert.Equal(t, "staff", input.TriggeredBy)
			return expectedAlert, nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/broadcast", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp BroadcastResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 42, resp.Alert.RecipientsCount)
}

func TestBroadcastEndpoint_MissingAPIKey(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(BroadcastRequest{
		AlertType: models.AlertTypeCustom,
		Area:      "DELMAS",
		Message:   "test",
	})
	w := makeRequest(router, "POST", "/broadcast", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestBroadcastEndpoint_InvalidAPIKey(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(BroadcastRequest{
		AlertType: models.AlertTypeCustom,
		Area:      "DELMAS",
		Message:   "test",
	})
	w := makeRequest(router, "POST", "/broadcast", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "wrong-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBroadcastEndpoint_CustomWithoutMessage(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(BroadcastRequest{
		AlertType: models.AlertTypeCustom,
		Area:      "DELMAS",
	})
	w := makeRequest(router, "POST", "/broadcast", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "custom alert requires a message")
}

func TestBroadcastAreasEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().
		AreaStats(gomock.Any()).
		Return([]*models.AreaStat{{Area: "DELMAS", UserCount: 7}}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/broadcast/areas", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*AreaResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, len(models.Areas))

	// Район без жителей присутствует с нулевым счетчиком
	var delmas, tabarre *AreaResponse
	for _, area := range resp {
		switch area.Code {
		case "DELMAS":
			delmas = area
		case "TABARRE":
			tabarre = area
		}
	}
	require.NotNil(t, delmas)
	require.NotNil(t, tabarre)
	assert.Equal(t, 7, delmas.UserCount)
	assert.Equal(t, 0, tabarre.UserCount)
}

func TestHealthReportEndpoint_TriggersAlert(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := HealthReportRequest{
		Area:      "CITE_SOLEIL",
		Condition: "cholera",
		Cases:     25,
	}
	triggeredAlert := &models.SentAlert{
		ID:          "a1",
		AlertType:   models.AlertTypeHealth,
		Area:        "CITE_SOLEIL",
		TriggeredBy: "auto_detector",
	}

	m.reports.EXPECT().
		SubmitHealthReport(gomock.Any(), gomock.Any()).
		Return(triggeredAlert, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/reports/health", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.AlertTriggered)
	require.NotNil(t, resp.Alert)
	assert.Equal(t, "auto_detector", resp.Alert.TriggeredBy)
}

func TestCrimeReportEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := CrimeReportRequest{
		Area:      "MARTISSANT",
		CrimeType: "kidnapping",
	}

	m.reports.EXPECT().
		SubmitCrimeReport(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/reports/crime", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsEndpoint_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.stats.EXPECT().
		GetStats(gomock.Any()).
		Return(&models.SystemStats{
			Users:       models.UserCounts{Total: 100, Verified: 80, Active: 95},
			Reports:     models.ReportCounts{HealthReports: 10, CrimeReports: 4},
			AlertsSent:  12,
			AlertsToday: 3,
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/stats", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 100, resp.TotalUsers)
	assert.Equal(t, 12, resp.AlertsSent)
}

func TestStatsEndpoint_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.stats.EXPECT().
		GetStats(gomock.Any()).
		Return(nil, fmt.Errorf("db down")).
		Times(1)

	w := makeRequest(router, "GET", "/stats", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheckEndpoint(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
