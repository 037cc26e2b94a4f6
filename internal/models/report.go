package models

import (
	"time"
)

// HealthReport представляет сообщение медработника о случаях заболевания
type HealthReport struct {
	ID         int64     `json:"id"`
	Area       string    `json:"area"`
	Condition  string    `json:"condition"`
	Cases      int       `json:"cases"`
	ReportedBy string    `json:"reported_by"`
	ReportedAt time.Time `json:"reported_at"`
}

// CrimeReport представляет сообщение об инциденте безопасности
type CrimeReport struct {
	ID         int64     `json:"id"`
	Area       string    `json:"area"`
	CrimeType  string    `json:"crime_type"`
	ReportedBy string    `json:"reported_by"`
	ReportedAt time.Time `json:"reported_at"`
}
