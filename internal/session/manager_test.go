package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
	"github.com/frostyfucker/HotelBrendle/internal/notify"
)

type fakeSeeder struct {
	calls []string
	err   error
}

func (f *fakeSeeder) SeedDefaults(_ context.Context, subjectID string) error {
	f.calls = append(f.calls, subjectID)
	return f.err
}

type fakeRevoker struct {
	calls []string
	err   error
}

func (f *fakeRevoker) Revoke(_ context.Context, email string) error {
	f.calls = append(f.calls, email)
	return f.err
}

func credentialFor(t *testing.T, payload map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(body) + "."
}

func newTestManager(t *testing.T, seeder *fakeSeeder, revoker *fakeRevoker) (*Manager, *notify.Notifier) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	notifier := notify.New(notify.WithScheduler(func(time.Duration, func()) {}))
	resolver := auth.NewRoleResolver([]string{"boss@hotelbrendle.com"}, []string{"staff@hotelbrendle.com"})
	return NewManager(store, seeder, resolver, notifier, revoker), notifier
}

func TestHandleCredentialSignsIn(t *testing.T) {
	seeder := &fakeSeeder{}
	mgr, notifier := newTestManager(t, seeder, &fakeRevoker{})

	var changes []*Session
	mgr.Subscribe(func(s *Session) { changes = append(changes, s) })

	mgr.HandleCredential(context.Background(), credentialFor(t, map[string]any{
		"sub":     "sub-1",
		"name":    "Boss",
		"email":   "boss@hotelbrendle.com",
		"picture": "https://example.com/a.png",
	}))

	current := mgr.Current()
	require.NotNil(t, current)
	assert.Equal(t, "sub-1", current.SubjectID)
	assert.Equal(t, auth.RoleAdmin, current.Role)
	assert.Equal(t, []string{"sub-1"}, seeder.calls)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "Welcome, Boss!", notifier.Current().Text)
	require.Len(t, changes, 1)
	assert.Equal(t, current, changes[0])
}

func TestHandleCredentialRejectsMalformed(t *testing.T) {
	seeder := &fakeSeeder{}
	mgr, notifier := newTestManager(t, seeder, &fakeRevoker{})

	mgr.HandleCredential(context.Background(), "not-a-token")

	assert.Nil(t, mgr.Current())
	assert.Empty(t, seeder.calls)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "Login failed. Could not verify identity.", notifier.Current().Text)
}

func TestHandleCredentialSurvivesSeedFailure(t *testing.T) {
	seeder := &fakeSeeder{err: errors.New("disk full")}
	mgr, notifier := newTestManager(t, seeder, &fakeRevoker{})

	mgr.HandleCredential(context.Background(), credentialFor(t, map[string]any{
		"sub":   "sub-2",
		"name":  "Staffer",
		"email": "staff@hotelbrendle.com",
	}))

	current := mgr.Current()
	require.NotNil(t, current)
	assert.Equal(t, auth.RoleStaff, current.Role)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "Signed in, but your workspace could not be prepared.", notifier.Current().Text)
}

func TestRestoreAfterSave(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(&Session{SubjectID: "sub-3", Name: "Guest", Email: "g@x.com", Role: auth.RoleGuest}))

	notifier := notify.New(notify.WithScheduler(func(time.Duration, func()) {}))
	resolver := auth.NewRoleResolver(nil, nil)
	mgr := NewManager(store, &fakeSeeder{}, resolver, notifier, nil)

	mgr.Restore()
	require.NotNil(t, mgr.Current())
	assert.Equal(t, "sub-3", mgr.Current().SubjectID)
}

func TestLogoutClearsStateDespiteRevokeFailure(t *testing.T) {
	revoker := &fakeRevoker{err: errors.New("network down")}
	mgr, notifier := newTestManager(t, &fakeSeeder{}, revoker)

	mgr.HandleCredential(context.Background(), credentialFor(t, map[string]any{
		"sub":   "sub-4",
		"name":  "Boss",
		"email": "boss@hotelbrendle.com",
	}))
	require.NotNil(t, mgr.Current())

	mgr.Logout(context.Background())

	assert.Nil(t, mgr.Current())
	assert.Equal(t, []string{"boss@hotelbrendle.com"}, revoker.calls)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "You have been logged out.", notifier.Current().Text)

	// The persisted record is gone too.
	_, err := mgr.store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
