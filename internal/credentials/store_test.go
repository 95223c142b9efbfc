package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadBeforeInstall(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir)

	cred := Credential{
		ApplicationToken: "apptoken",
		ClientEndpoint:   "https://portal.example/rest/",
		AccessToken:      "access",
		Domain:           "portal.example",
	}
	require.NoError(t, store.Save(cred))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cred, *loaded)

	// временный файл не должен оставаться после rename
	_, err = os.Stat(filepath.Join(dir, "auth.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

// Установка всегда заменяет запись целиком, частичных обновлений нет.
func TestStore_SaveReplacesWholesale(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(Credential{
		ApplicationToken: "first",
		ClientEndpoint:   "https://a.example/",
		AccessToken:      "acc1",
		RefreshToken:     "ref1",
	}))
	require.NoError(t, store.Save(Credential{
		ApplicationToken: "second",
		ClientEndpoint:   "https://b.example/",
		AccessToken:      "acc2",
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.ApplicationToken)
	assert.Equal(t, "", loaded.RefreshToken, "поля прошлой установки не должны протекать")
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	err := store.Save(Credential{AccessToken: "acc"})
	assert.Error(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotInstalled, "неудачный Save не должен оставлять файл")
}

func TestStore_SaveFailsOnMissingDir(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "no-such-dir"))
	err := store.Save(Credential{ApplicationToken: "x"})
	assert.Error(t, err)
}
