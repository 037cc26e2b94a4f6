package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sentAlertsCollection = "sent_alerts"

type AlertRepository struct {
	coll *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) service.AlertRepository {
	return &AlertRepository{
		coll: db.Collection(sentAlertsCollection),
	}
}

// Save сохраняет запись об отправленном оповещении
func (r *AlertRepository) Save(ctx context.Context, alert *models.SentAlert) error {
	if _, err := r.coll.InsertOne(ctx, alert); err != nil {
		return fmt.Errorf("failed to save sent alert: %w", err)
	}
	return nil
}

// HistoryByArea возвращает историю оповещений района, новые - первыми.
// alertType - необязательный фильтр по типу оповещения.
func (r *AlertRepository) HistoryByArea(ctx context.Context, area, alertType string, limit int) ([]*models.SentAlert, error) {
	filter := bson.M{"area": area}
	if alertType != "" {
		filter["alert_type"] = alertType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alert history: %w", err)
	}
	defer cursor.Close(ctx)

	alerts := make([]*models.SentAlert, 0)
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alert history: %w", err)
	}
	return alerts, nil
}

// Recent возвращает оповещения новее since, опционально фильтруя по району
func (r *AlertRepository) Recent(ctx context.Context, since time.Time, area string) ([]*models.SentAlert, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": since}}
	if area != "" {
		filter["area"] = area
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent alerts: %w", err)
	}
	defer cursor.Close(ctx)

	alerts := make([]*models.SentAlert, 0)
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode recent alerts: %w", err)
	}
	return alerts, nil
}

// Summary возвращает сводку по оповещениям: всего, за сегодня, за неделю и по типам
func (r *AlertRepository) Summary(ctx context.Context) (*models.AlertSummary, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}
	todayCount, err := r.coll.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": today}})
	if err != nil {
		return nil, fmt.Errorf("failed to count today alerts: %w", err)
	}
	weekCount, err := r.coll.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": weekAgo}})
	if err != nil {
		return nil, fmt.Errorf("failed to count week alerts: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$alert_type", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate alert types: %w", err)
	}
	defer cursor.Close(ctx)

	types := make([]models.AlertTypeCount, 0)
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode alert type counts: %w", err)
	}

	return &models.AlertSummary{
		TotalAlerts: int(total),
		TodayAlerts: int(todayCount),
		WeekAlerts:  int(weekCount),
		AlertTypes:  types,
	}, nil
}
