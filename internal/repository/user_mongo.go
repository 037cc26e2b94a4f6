package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) service.UserRepository {
	return &UserRepository{
		coll: db.Collection(usersCollection),
	}
}

// EnsureUserIndexes создает уникальный индекс по номеру телефона
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users phone index: %w", err)
	}
	return nil
}

// Save сохраняет пользователя целиком, заменяя существующую запись с тем же номером
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"phone": user.Phone}, user, opts)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByPhone возвращает пользователя по номеру телефона, nil - если не найден
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	user := &models.User{}
	err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return user, nil
}

// MarkVerified помечает пользователя подтвержденным, не меняя остальные поля
func (r *UserRepository) MarkVerified(ctx context.Context, phone string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$set": bson.M{"verified": true}})
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user with phone %s not found for verification", phone)
	}
	return nil
}

// ListByArea возвращает активных пользователей района
func (r *UserRepository) ListByArea(ctx context.Context, area string, verifiedOnly bool) ([]*models.User, error) {
	filter := bson.M{"area": area, "active": true}
	if verifiedOnly {
		filter["verified"] = true
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by area: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// AreaStats возвращает количество подтвержденных активных пользователей по районам
func (r *UserRepository) AreaStats(ctx context.Context) ([]*models.AreaStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"verified": true, "active": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$area", "user_count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate area stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := make([]*models.AreaStat, 0)
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode area stats: %w", err)
	}
	return stats, nil
}

// Counts возвращает счетчики пользователей
func (r *UserRepository) Counts(ctx context.Context) (*models.UserCounts, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	verified, err := r.coll.CountDocuments(ctx, bson.M{"verified": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count verified users: %w", err)
	}
	active, err := r.coll.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	return &models.UserCounts{
		Total:    int(total),
		Verified: int(verified),
		Active:   int(active),
	}, nil
}
