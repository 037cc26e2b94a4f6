package client

import (
	"context"
	"os"
	"strconv"
)

// Fix - одна полученная геопозиция
type Fix struct {
	Latitude  float64
	Longitude float64
}

// LocationProvider отдает позицию устройства, если она доступна.
// Отказ или сбой означает отсутствие координат, регистрация не блокируется.
type LocationProvider interface {
	Acquire(ctx context.Context) *Fix
}

// EnvLocationProvider читает координаты из переменных окружения.
// Используется там, где настоящего источника геопозиции нет.
type EnvLocationProvider struct {
	latVar string
	lonVar string
}

func NewEnvLocationProvider() *EnvLocationProvider {
	return &EnvLocationProvider{
		latVar: "ALATEM_LATITUDE",
		lonVar: "ALATEM_LONGITUDE",
	}
}

func (p *EnvLocationProvider) Acquire(_ context.Context) *Fix {
	latRaw, lonRaw := os.Getenv(p.latVar), os.Getenv(p.lonVar)
	if latRaw == "" || lonRaw == "" {
		return nil
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil
	}
	return &Fix{Latitude: lat, Longitude: lon}
}

// StaticLocationProvider всегда возвращает одну и ту же позицию
type StaticLocationProvider struct {
	fix *Fix
}

func NewStaticLocationProvider(fix *Fix) *StaticLocationProvider {
	return &StaticLocationProvider{fix: fix}
}

func (p *StaticLocationProvider) Acquire(_ context.Context) *Fix {
	return p.fix
}
