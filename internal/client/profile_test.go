package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alatem/alatem/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_LoadMissing(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))
	assert.Nil(t, store.Load())
}

func TestProfileStore_SaveAndLoad(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), "nested", "profile.json"))
	lat := 18.54
	profile := &models.User{
		ID:       "u1",
		Name:     "Jean",
		Phone:    "+50937001234",
		Area:     "DELMAS",
		Latitude: &lat,
		Verified: false,
		Active:   true,
	}

	require.NoError(t, store.Save(profile))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, profile.Name, loaded.Name)
	assert.Equal(t, profile.Phone, loaded.Phone)
	assert.Equal(t, profile.Area, loaded.Area)
	require.NotNil(t, loaded.Latitude)
	assert.InDelta(t, lat, *loaded.Latitude, 0.001)
	assert.False(t, loaded.Verified)
}

func TestProfileStore_CorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	store := NewProfileStore(path)
	assert.Nil(t, store.Load())
}

func TestProfileStore_SaveOverwritesWholesale(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))
	lat := 18.54
	require.NoError(t, store.Save(&models.User{Name: "Jean", Latitude: &lat}))
	require.NoError(t, store.Save(&models.User{Name: "Marie"}))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "Marie", loaded.Name)
	assert.Nil(t, loaded.Latitude, "старые поля не переживают перезапись")
}
