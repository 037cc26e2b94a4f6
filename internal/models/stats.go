package models

// UserCounts - счетчики пользователей
type UserCounts struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Active   int `json:"active"`
}

// ReportCounts - счетчики отчетов с мест
type ReportCounts struct {
	HealthReports int `json:"health_reports"`
	CrimeReports  int `json:"crime_reports"`
}

// SystemStats - общая статистика системы
type SystemStats struct {
	Users       UserCounts   `json:"users"`
	Reports     ReportCounts `json:"reports"`
	AlertsSent  int          `json:"alerts_sent"`
	AlertsToday int          `json:"alerts_today"`
}
