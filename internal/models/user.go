package models

import (
	"time"
)

// User представляет зарегистрированного получателя SMS-оповещений
type User struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Area      string    `json:"area" bson:"area"`
	Latitude  *float64  `json:"latitude" bson:"latitude"`
	Longitude *float64  `json:"longitude" bson:"longitude"`
	Verified  bool      `json:"verified" bson:"verified"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// AreaStat - количество подтвержденных пользователей в районе
type AreaStat struct {
	Area      string `json:"area" bson:"_id"`
	UserCount int    `json:"user_count" bson:"user_count"`
}
