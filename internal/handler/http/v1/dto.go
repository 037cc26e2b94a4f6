package v1

import (
	"time"
)

// RegisterRequest DTO для регистрации жителя
// @Description DTO для регистрации жителя
type RegisterRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=100"`
	Phone     string   `json:"phone" validate:"required"`
	Area      string   `json:"area" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// RegisterResponse DTO для ответа на регистрацию
// @Description DTO для ответа на регистрацию
type RegisterResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id,omitempty"`
	DebugOTP string `json:"debug_otp,omitempty"`
}

// VerifyRequest DTO для подтверждения номера кодом
// @Description DTO для подтверждения номера кодом
type VerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

// VerifyResponse DTO для ответа на подтверждение
// @Description DTO для ответа на подтверждение
type VerifyResponse struct {
	Verified bool `json:"verified"`
}

// AlertResponse DTO для отправленного оповещения
// @Description DTO для отправленного оповещения
type AlertResponse struct {
	ID              string    `json:"id"`
	AlertType       string    `json:"alert_type"`
	Area            string    `json:"area"`
	Condition       string    `json:"condition,omitempty"`
	CrimeType       string    `json:"crime_type,omitempty"`
	Cases           int       `json:"cases,omitempty"`
	Message         string    `json:"message"`
	RecipientsCount int       `json:"recipients_count"`
	Timestamp       time.Time `json:"timestamp"`
	TriggeredBy     string    `json:"triggered_by"`
}

// HistoryResponse DTO для истории оповещений района
// @Description DTO для истории оповещений района
type HistoryResponse struct {
	Success bool             `json:"success"`
	Area    string           `json:"area"`
	Count   int              `json:"count"`
	Alerts  []*AlertResponse `json:"alerts"`
}

// SummaryResponse DTO для сводки по оповещениям
// @Description DTO для сводки по оповещениям
type SummaryResponse struct {
	TotalAlerts int                      `json:"total_alerts"`
	TodayAlerts int                      `json:"today_alerts"`
	WeekAlerts  int                      `json:"week_alerts"`
	AlertTypes  []AlertTypeCountResponse `json:"alert_types"`
}

// AlertTypeCountResponse DTO для счетчика оповещений одного типа
type AlertTypeCountResponse struct {
	AlertType string `json:"alert_type"`
	Count     int    `json:"count"`
}

// BroadcastRequest DTO для ручной рассылки оповещения
// @Description DTO для ручной рассылки оповещения
type BroadcastRequest struct {
	AlertType string `json:"alert_type" validate:"required,oneof=health_outbreak safety_alert custom_alert"`
	Area      string `json:"area" validate:"required"`
	Condition string `json:"condition,omitempty"`
	CrimeType string `json:"crime_type,omitempty"`
	Message   string `json:"message,omitempty"`
	Cases     int    `json:"cases,omitempty" validate:"omitempty,gte=0"`
}

// BroadcastResponse DTO для результата рассылки
// @Description DTO для результата рассылки
type BroadcastResponse struct {
	Success bool           `json:"success"`
	Alert   *AlertResponse `json:"alert"`
}

// AreaResponse DTO для района с числом подтвержденных жителей
// @Description DTO для района с числом подтвержденных жителей
type AreaResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	UserCount int    `json:"user_count"`
}

// HealthReportRequest DTO для отчета о заболеваниях
// @Description DTO для отчета о заболеваниях
type HealthReportRequest struct {
	Area       string `json:"area" validate:"required"`
	Condition  string `json:"condition" validate:"required"`
	Cases      int    `json:"cases" validate:"required,gt=0"`
	ReportedBy string `json:"reported_by,omitempty"`
}

// CrimeReportRequest DTO для отчета об инциденте безопасности
// @Description DTO для отчета об инциденте безопасности
type CrimeReportRequest struct {
	Area       string `json:"area" validate:"required"`
	CrimeType  string `json:"crime_type" validate:"required"`
	ReportedBy string `json:"reported_by,omitempty"`
}

// ReportResponse DTO для результата приема отчета
// @Description DTO для результата приема отчета
type ReportResponse struct {
	Success        bool           `json:"success"`
	AlertTriggered bool           `json:"alert_triggered"`
	Alert          *AlertResponse `json:"alert,omitempty"`
}

// StatsResponse DTO для системной статистики
// @Description DTO для системной статистики
type StatsResponse struct {
	TotalUsers    int `json:"total_users"`
	VerifiedUsers int `json:"verified_users"`
	ActiveUsers   int `json:"active_users"`
	HealthReports int `json:"health_reports"`
	CrimeReports  int `json:"crime_reports"`
	AlertsSent    int `json:"alerts_sent"`
	AlertsToday   int `json:"alerts_today"`
}
