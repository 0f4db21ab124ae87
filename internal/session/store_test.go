package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	want := &Session{
		SubjectID: "sub-123",
		Name:      "Roy Hotel",
		Email:     "roy@hotelbrendle.com",
		Role:      auth.RoleAdmin,
		AvatarURL: "https://example.com/roy.png",
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Delete())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreLoadWithoutSession(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreDiscardsCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "corrupt record should be removed")
}

func TestFileStoreDeleteIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Delete())
	require.NoError(t, store.Delete())
}
