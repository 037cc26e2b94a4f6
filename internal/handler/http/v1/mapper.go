package v1

import "github.com/alatem/alatem/internal/models"

// DTOToUserModel преобразует DTO регистрации в доменную модель
func DTOToUserModel(dto RegisterRequest) *models.User {
	return &models.User{
		Name:      dto.Name,
		Phone:     dto.Phone,
		Area:      dto.Area,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

// DTOToBroadcastInput преобразует DTO рассылки в параметры сервиса
func DTOToBroadcastInput(dto BroadcastRequest) models.BroadcastInput {
	return models.BroadcastInput{
		AlertType: dto.AlertType,
		Area:      dto.Area,
		Condition: dto.Condition,
		CrimeType: dto.CrimeType,
		Message:   dto.Message,
		Cases:     dto.Cases,
	}
}

// ModelToAlertResponse преобразует доменную модель оповещения в DTO для ответа
func ModelToAlertResponse(model *models.SentAlert) *AlertResponse {
	return &AlertResponse{
		ID:              model.ID,
		AlertType:       model.AlertType,
		Area:            model.Area,
		Condition:       model.Condition,
		CrimeType:       model.CrimeType,
		Cases:           model.Cases,
		Message:         model.Message,
		RecipientsCount: model.RecipientsCount,
		Timestamp:       model.Timestamp,
		TriggeredBy:     model.TriggeredBy,
	}
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(alerts []*models.SentAlert) []*AlertResponse {
	responses := make([]*AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = ModelToAlertResponse(alert)
	}
	return responses
}

// ModelToSummaryResponse преобразует сводку в DTO для ответа
func ModelToSummaryResponse(summary *models.AlertSummary) *SummaryResponse {
	counts := make([]AlertTypeCountResponse, len(summary.AlertTypes))
	for i, c := range summary.AlertTypes {
		counts[i] = AlertTypeCountResponse{AlertType: c.AlertType, Count: c.Count}
	}
	return &SummaryResponse{
		TotalAlerts: summary.TotalAlerts,
		TodayAlerts: summary.TodayAlerts,
		WeekAlerts:  summary.WeekAlerts,
		AlertTypes:  counts,
	}
}

// AreaStatsToResponses собирает полный список районов, подставляя нулевые
// счетчики для районов без подтвержденных жителей
func AreaStatsToResponses(stats []*models.AreaStat) []*AreaResponse {
	counts := make(map[string]int, len(stats))
	for _, s := range stats {
		counts[s.Area] = s.UserCount
	}

	responses := make([]*AreaResponse, len(models.Areas))
	for i, area := range models.Areas {
		responses[i] = &AreaResponse{
			Code:      area,
			Name:      models.FormatAreaName(area),
			UserCount: counts[area],
		}
	}
	return responses
}

// ModelToStatsResponse преобразует системную статистику в DTO для ответа
func ModelToStatsResponse(stats *models.SystemStats) *StatsResponse {
	return &StatsResponse{
		TotalUsers:    stats.Users.Total,
		VerifiedUsers: stats.Users.Verified,
		ActiveUsers:   stats.Users.Active,
		HealthReports: stats.Reports.HealthReports,
		CrimeReports:  stats.Reports.CrimeReports,
		AlertsSent:    stats.AlertsSent,
		AlertsToday:   stats.AlertsToday,
	}
}
