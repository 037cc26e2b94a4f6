package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alatem/alatem/internal/models"
	"github.com/sirupsen/logrus"
)

// State - текущий экран потока регистрации
type State string

const (
	StateWelcome  State = "welcome"
	StateRegister State = "register"
	StateVerify   State = "verify"
	StateSuccess  State = "success"
)

var (
	// ErrBusy - запрос уже выполняется, повторная отправка заблокирована
	ErrBusy = errors.New("client: another request is in flight")
	// ErrConnectivity - сервер недоступен, состояние не менялось
	ErrConnectivity = errors.New("client: could not reach the server, check your connection")
)

// Backend - операции бэкенда, которые использует поток регистрации
type Backend interface {
	Register(ctx context.Context, payload RegisterPayload) (*RegisterResult, error)
	Verify(ctx context.Context, phone, code string) (*VerifyResult, error)
}

// Flow - конечный автомат регистрации: welcome → register → verify → success.
// Подтвержденный профиль при старте сразу переводит в success.
type Flow struct {
	profiles *ProfileStore
	backend  Backend
	location LocationProvider
	logger   *logrus.Logger

	state    State
	busy     bool
	debugOTP string
}

func NewFlow(profiles *ProfileStore, backend Backend, location LocationProvider, logger *logrus.Logger) *Flow {
	flow := &Flow{
		profiles: profiles,
		backend:  backend,
		location: location,
		logger:   logger,
		state:    StateWelcome,
	}

	if profile := profiles.Load(); profile != nil && profile.Verified {
		flow.state = StateSuccess
	}
	return flow
}

func (f *Flow) State() State {
	return f.state
}

func (f *Flow) Busy() bool {
	return f.busy
}

// Profile возвращает сохраненный профиль устройства (nil, если его нет)
func (f *Flow) Profile() *models.User {
	return f.profiles.Load()
}

// DebugOTP возвращает отладочный код из последнего ответа на регистрацию
func (f *Flow) DebugOTP() string {
	return f.debugOTP
}

// Begin переводит поток на форму регистрации. Из success сюда же
// попадает обновление профиля.
func (f *Flow) Begin() {
	f.state = StateRegister
}

// Reset возвращает поток на экран приветствия без побочных эффектов
func (f *Flow) Reset() {
	f.state = StateWelcome
}

// SubmitRegistration проверяет форму локально и отправляет ее на бэкенд.
// Успех сохраняет неподтвержденный профиль и переводит поток на ввод кода.
// Ошибка сервера или сети оставляет состояние как есть.
func (f *Flow) SubmitRegistration(ctx context.Context, name, phone, area string) error {
	if f.busy {
		return ErrBusy
	}

	// Локальная валидация до любого сетевого вызова
	if name == "" {
		return fmt.Errorf("client: name is required")
	}
	normalized, err := models.NormalizePhone(phone)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	if !models.ValidArea(area) {
		return fmt.Errorf("client: unknown area %q", area)
	}

	f.busy = true
	defer func() { f.busy = false }()

	payload := RegisterPayload{
		Name:  name,
		Phone: normalized,
		Area:  area,
	}
	// Координаты опциональны: отказ провайдера не блокирует регистрацию
	if f.location != nil {
		if fix := f.location.Acquire(ctx); fix != nil {
			payload.Latitude = &fix.Latitude
			payload.Longitude = &fix.Longitude
		}
	}

	result, err := f.backend.Register(ctx, payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		f.logger.WithError(err).Warn("Registration request failed")
		return ErrConnectivity
	}
	if !result.Success {
		return fmt.Errorf("client: registration failed")
	}

	profile := &models.User{
		ID:        result.UserID,
		Name:      name,
		Phone:     normalized,
		Area:      area,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Verified:  false,
		Active:    true,
		UpdatedAt: time.Now().UTC(),
	}
	if err := f.profiles.Save(profile); err != nil {
		return err
	}

	f.debugOTP = result.DebugOTP
	f.state = StateVerify
	return nil
}

// SubmitCode проверяет код локально (ровно 6 цифр) и отправляет его на бэкенд.
// Успех помечает профиль подтвержденным, не трогая имя, номер и район.
func (f *Flow) SubmitCode(ctx context.Context, code string) error {
	if f.busy {
		return ErrBusy
	}

	if len(code) != 6 || !digitsOnly(code) {
		return fmt.Errorf("client: code must be exactly 6 digits")
	}

	profile := f.profiles.Load()
	if profile == nil {
		return fmt.Errorf("client: no pending registration")
	}

	f.busy = true
	defer func() { f.busy = false }()

	result, err := f.backend.Verify(ctx, profile.Phone, code)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		f.logger.WithError(err).Warn("Verification request failed")
		return ErrConnectivity
	}
	if !result.Verified {
		return fmt.Errorf("client: invalid code")
	}

	profile.Verified = true
	profile.UpdatedAt = time.Now().UTC()
	if err := f.profiles.Save(profile); err != nil {
		return err
	}

	f.state = StateSuccess
	return nil
}

// Resend повторяет вызов регистрации для сохраненного профиля,
// что выдает и отправляет новый код
func (f *Flow) Resend(ctx context.Context) error {
	profile := f.profiles.Load()
	if profile == nil {
		return fmt.Errorf("client: no pending registration")
	}
	return f.SubmitRegistration(ctx, profile.Name, profile.Phone, profile.Area)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
