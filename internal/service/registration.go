package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/sms"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Ошибки верификации OTP
var (
	ErrOTPNotFound        = errors.New("otp not found or expired")
	ErrOTPInvalid         = errors.New("invalid otp code")
	ErrOTPTooManyAttempts = errors.New("too many failed otp attempts")
	ErrUserNotFound       = errors.New("user not found")
)

// UserRepository определяет контракт для работы с хранилищем пользователей
type UserRepository interface {
	Save(ctx context.Context, user *models.User) error
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	MarkVerified(ctx context.Context, phone string) error
	ListByArea(ctx context.Context, area string, verifiedOnly bool) ([]*models.User, error)
	AreaStats(ctx context.Context) ([]*models.AreaStat, error)
	Counts(ctx context.Context) (*models.UserCounts, error)
}

// OTPStore определяет контракт для хранилища одноразовых кодов
type OTPStore interface {
	Store(ctx context.Context, phone, code string) error
	Verify(ctx context.Context, phone, code string) error
}

// RegistrationService определяет контракт для регистрации и подтверждения номера
type RegistrationService interface {
	Register(ctx context.Context, user *models.User) (string, error)
	Verify(ctx context.Context, phone, code string) error
}

type registrationService struct {
	users     UserRepository
	otp       OTPStore
	publisher sms.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewRegistrationService(users UserRepository, otp OTPStore, publisher sms.Publisher, logger *logrus.Logger, cfg *config.Config) RegistrationService {
	return &registrationService{
		users:     users,
		otp:       otp,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Register создает или обновляет пользователя (неподтвержденного) и отправляет OTP.
// Возвращает debug OTP, если реальная отправка SMS выключена.
func (s *registrationService) Register(ctx context.Context, user *models.User) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "registration",
		"method":  "Register",
		"area":    user.Area,
	})
	log.Info("Attempting to register a user")

	phone, err := models.NormalizePhone(user.Phone)
	if err != nil {
		return "", fmt.Errorf("service: invalid phone: %w", err)
	}
	user.Phone = phone

	if user.Name == "" {
		return "", fmt.Errorf("service: name is required")
	}
	if !models.ValidArea(user.Area) {
		return "", fmt.Errorf("service: unknown area %q", user.Area)
	}

	// Повторная регистрация того же номера сохраняет ID и дату создания
	now := time.Now().UTC()
	existing, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by phone")
		return "", fmt.Errorf("service: could not look up user: %w", err)
	}
	if existing != nil {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	} else {
		user.ID = uuid.NewString()
		user.CreatedAt = now
	}

	user.Verified = false
	user.Active = true
	user.UpdatedAt = now

	if err := s.users.Save(ctx, user); err != nil {
		log.WithError(err).Error("Failed to save user in repository")
		return "", fmt.Errorf("service: could not save user: %w", err)
	}

	code, err := generateOTP(6)
	if err != nil {
		return "", fmt.Errorf("service: could not generate otp: %w", err)
	}

	if err := s.otp.Store(ctx, phone, code); err != nil {
		log.WithError(err).Error("Failed to store otp challenge")
		return "", fmt.Errorf("service: could not store otp: %w", err)
	}

	job := sms.Job{
		Phone:     phone,
		Message:   sms.OTPMessage(code),
		Timestamp: now,
	}
	if err := s.publisher.Publish(ctx, job); err != nil {
		log.WithError(err).Error("Failed to enqueue otp sms")
		return "", fmt.Errorf("service: could not enqueue otp sms: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered, otp sent")

	if !s.cfg.UseRealSMS {
		// Тестовый режим: код возвращается клиенту вместо доставки по SMS
		return code, nil
	}
	return "", nil
}

// Verify проверяет одноразовый код и помечает пользователя подтвержденным
func (s *registrationService) Verify(ctx context.Context, phone, code string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "registration",
		"method":  "Verify",
	})
	log.Info("Attempting to verify a user")

	normalized, err := models.NormalizePhone(phone)
	if err != nil {
		return fmt.Errorf("service: invalid phone: %w", err)
	}

	if len(code) != 6 || !isDigits(code) {
		return ErrOTPInvalid
	}

	if err := s.otp.Verify(ctx, normalized, code); err != nil {
		log.WithError(err).Warn("OTP verification failed")
		return err
	}

	user, err := s.users.FindByPhone(ctx, normalized)
	if err != nil {
		log.WithError(err).Error("Failed to load user by phone")
		return fmt.Errorf("service: could not load user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.users.MarkVerified(ctx, normalized); err != nil {
		log.WithError(err).Error("Failed to mark user verified")
		return fmt.Errorf("service: could not mark user verified: %w", err)
	}

	job := sms.Job{
		Phone:     normalized,
		Message:   sms.WelcomeMessage(user.Name, user.Area),
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, job); err != nil {
		// Приветственное сообщение не критично для верификации
		log.WithError(err).Warn("Failed to enqueue welcome sms")
	}

	log.WithField("user_id", user.ID).Info("User verified successfully")
	return nil
}

// generateOTP генерирует случайный числовой код заданной длины
func generateOTP(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}
	return string(code), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
