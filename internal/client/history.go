package client

import (
	"context"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/models"
	"github.com/sirupsen/logrus"
)

// HistoryViewer показывает историю оповещений района. При любом сбое сети
// или сервера отдается демонстрационный набор, помеченный как демо,
// который никогда не сохраняется.
type HistoryViewer struct {
	backend HistoryBackend
	logger  *logrus.Logger
}

// HistoryBackend - часть бэкенда, нужная просмотру истории
type HistoryBackend interface {
	AlertHistory(ctx context.Context, area string, limit int) ([]*AlertRecord, error)
}

func NewHistoryViewer(backend HistoryBackend, logger *logrus.Logger) *HistoryViewer {
	return &HistoryViewer{
		backend: backend,
		logger:  logger,
	}
}

// Fetch возвращает оповещения района с сервера как есть, а при сбое -
// демонстрационный набор для этого района
func (v *HistoryViewer) Fetch(ctx context.Context, area string, limit int) []*AlertRecord {
	alerts, err := v.backend.AlertHistory(ctx, area, limit)
	if err != nil {
		v.logger.WithError(err).WithField("area", area).Warn("Alert history fetch failed, using demo data")
		return DemoAlerts(area)
	}
	return alerts
}

// DemoAlerts возвращает детерминированный набор примеров оповещений для
// района. Набор не пустой для каждого известного района и каждый элемент
// помечен как демо.
func DemoAlerts(area string) []*AlertRecord {
	name := models.FormatAreaName(area)
	now := time.Now().UTC()

	return []*AlertRecord{
		{
			ID:          fmt.Sprintf("demo-%s-1", area),
			AlertType:   models.AlertTypeHealth,
			Area:        area,
			Message:     fmt.Sprintf("ALÈT SANTE: Ka cholera nan %s. Bwè dlo pwòp, lave men nou.", name),
			Timestamp:   now.Add(-6 * time.Hour),
			TriggeredBy: "auto_detector",
			IsDemo:      true,
		},
		{
			ID:          fmt.Sprintf("demo-%s-2", area),
			AlertType:   models.AlertTypeSafety,
			Area:        area,
			Message:     fmt.Sprintf("SEKIRITE: Vyolans nan lari nan %s. Evite kote yo ki gen anpil moun.", name),
			Timestamp:   now.Add(-30 * time.Hour),
			TriggeredBy: "staff",
			IsDemo:      true,
		},
		{
			ID:          fmt.Sprintf("demo-%s-3", area),
			AlertType:   models.AlertTypeCustom,
			Area:        area,
			Message:     fmt.Sprintf("Byenveni nan Alatem! Ou ap resevwa alèt pou %s.", name),
			Timestamp:   now.Add(-72 * time.Hour),
			TriggeredBy: "staff",
			IsDemo:      true,
		},
	}
}
