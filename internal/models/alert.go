package models

import (
	"time"
)

// Типы оповещений
const (
	AlertTypeHealth = "health_outbreak"
	AlertTypeSafety = "safety_alert"
	AlertTypeCustom = "custom_alert"
)

// HealthConditions - поддерживаемые состояния здоровья для оповещений
var HealthConditions = []string{
	"cholera",
	"malnutrition",
	"fever",
	"diarrhea",
	"respiratory",
}

// CrimeTypes - поддерживаемые типы преступлений для оповещений
var CrimeTypes = []string{
	"kidnapping",
	"armed_robbery",
	"gang_shooting",
	"street_violence",
	"home_invasion",
}

// BroadcastInput - параметры рассылки оповещения по району
type BroadcastInput struct {
	AlertType   string
	Area        string
	Condition   string
	CrimeType   string
	Message     string
	Cases       int
	TriggeredBy string
}

// SentAlert представляет отправленное оповещение, хранится только для истории
type SentAlert struct {
	ID              string    `json:"id" bson:"id"`
	AlertType       string    `json:"alert_type" bson:"alert_type"`
	Area            string    `json:"area" bson:"area"`
	Condition       string    `json:"condition,omitempty" bson:"condition,omitempty"`
	CrimeType       string    `json:"crime_type,omitempty" bson:"crime_type,omitempty"`
	Cases           int       `json:"cases,omitempty" bson:"cases,omitempty"`
	Message         string    `json:"message" bson:"message"`
	RecipientsCount int       `json:"recipients_count" bson:"recipients_count"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
	TriggeredBy     string    `json:"triggered_by" bson:"triggered_by"`
}

// AlertSummary - сводка по отправленным оповещениям для дашборда
type AlertSummary struct {
	TotalAlerts int              `json:"total_alerts"`
	TodayAlerts int              `json:"today_alerts"`
	WeekAlerts  int              `json:"week_alerts"`
	AlertTypes  []AlertTypeCount `json:"alert_types"`
}

// AlertTypeCount - количество оповещений одного типа
type AlertTypeCount struct {
	AlertType string `json:"alert_type" bson:"_id"`
	Count     int    `json:"count" bson:"count"`
}

// ValidHealthCondition проверяет, входит ли состояние в список поддерживаемых
func ValidHealthCondition(condition string) bool {
	for _, c := range HealthConditions {
		if c == condition {
			return true
		}
	}
	return false
}

// ValidCrimeType проверяет, входит ли тип преступления в список поддерживаемых
func ValidCrimeType(crimeType string) bool {
	for _, c := range CrimeTypes {
		if c == crimeType {
			return true
		}
	}
	return false
}
