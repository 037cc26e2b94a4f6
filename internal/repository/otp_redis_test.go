package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alatem/alatem/internal/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOTPStore поднимает miniredis и хранилище кодов поверх него
func newTestOTPStore(t *testing.T, ttl time.Duration, maxAttempts int) (service.OTPStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewOTPStore(client, ttl, maxAttempts), mr
}

func TestOTPStore_VerifySuccessConsumesCode(t *testing.T) {
	// Подготовка
	store, _ := newTestOTPStore(t, 5*time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "+50937001234", "123456"))

	// Действие
	err := store.Verify(ctx, "+50937001234", "123456")

	// Проверки: код одноразовый, повторная проверка его не находит
	require.NoError(t, err)
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "123456"), service.ErrOTPNotFound)
}

func TestOTPStore_VerifyUnknownPhone(t *testing.T) {
	// Подготовка
	store, _ := newTestOTPStore(t, 5*time.Minute, 3)
	ctx := context.Background()

	// Действие и проверки
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "123456"), service.ErrOTPNotFound)
}

func TestOTPStore_WrongCodeExhaustsAttempts(t *testing.T) {
	// Подготовка
	store, _ := newTestOTPStore(t, 5*time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "+50937001234", "123456"))

	// Действие и проверки: две неудачи, третья исчерпывает лимит
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "000000"), service.ErrOTPInvalid)
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "111111"), service.ErrOTPInvalid)
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "222222"), service.ErrOTPTooManyAttempts)

	// Правильный код после исчерпания лимита уже не принимается
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "123456"), service.ErrOTPTooManyAttempts)
}

func TestOTPStore_ConcurrentWrongGuessesAllCounted(t *testing.T) {
	// Подготовка
	store, _ := newTestOTPStore(t, 5*time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "+50937001234", "123456"))

	// Действие: два параллельных неверных кода
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Verify(ctx, "+50937001234", "000000")
		}()
	}
	wg.Wait()

	// Проверки: обе попытки учтены, третья неудача закрывает код
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "111111"), service.ErrOTPTooManyAttempts)
}

func TestOTPStore_ExpiredCode(t *testing.T) {
	// Подготовка
	store, mr := newTestOTPStore(t, time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "+50937001234", "123456"))

	// Действие
	mr.FastForward(2 * time.Minute)

	// Проверки
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "123456"), service.ErrOTPNotFound)
}

func TestOTPStore_StoreResetsAttempts(t *testing.T) {
	// Подготовка
	store, _ := newTestOTPStore(t, 5*time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "+50937001234", "123456"))
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "000000"), service.ErrOTPInvalid)
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "000000"), service.ErrOTPInvalid)

	// Действие: новый код сбрасывает счетчик попыток
	require.NoError(t, store.Store(ctx, "+50937001234", "654321"))

	// Проверки
	assert.ErrorIs(t, store.Verify(ctx, "+50937001234", "000000"), service.ErrOTPInvalid)
	require.NoError(t, store.Verify(ctx, "+50937001234", "654321"))
}
