// Package session owns the authenticated-user lifecycle: restoring a
// persisted session at startup, handling the identity provider's sign-in
// callback, and tearing everything down on logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
	"github.com/frostyfucker/HotelBrendle/internal/notify"
)

// Seeder writes the default workspace datasets for a user on first login.
type Seeder interface {
	SeedDefaults(ctx context.Context, subjectID string) error
}

// Revoker asks the identity provider to drop the user's grant. Failures are
// tolerated: local teardown proceeds regardless.
type Revoker interface {
	Revoke(ctx context.Context, email string) error
}

// Manager is the single owner of the current session. All reads and state
// transitions go through it; views subscribe for changes instead of sharing
// globals.
type Manager struct {
	store    Store
	seeder   Seeder
	resolver *auth.RoleResolver
	notifier *notify.Notifier
	revoker  Revoker

	mu      sync.Mutex
	current *Session
	subs    []func(*Session)
}

// NewManager wires the session manager. revoker may be nil when sign-in is
// disabled.
func NewManager(store Store, seeder Seeder, resolver *auth.RoleResolver, notifier *notify.Notifier, revoker Revoker) *Manager {
	return &Manager{
		store:    store,
		seeder:   seeder,
		resolver: resolver,
		notifier: notifier,
		revoker:  revoker,
	}
}

// Restore loads a previously persisted session, if any. A corrupt or missing
// record leaves the manager unauthenticated without error.
func (m *Manager) Restore() {
	session, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			log.Printf("failed to restore session: %v", err)
		}
		return
	}
	m.setCurrent(session)
}

// HandleCredential is the sign-in callback receiver: the identity client
// invokes it exactly once per successful interactive sign-in.
//
// A credential that fails to decode leaves the manager in its prior state
// with only a user-visible notice; nothing is persisted or seeded.
func (m *Manager) HandleCredential(ctx context.Context, credential string) {
	claims, err := auth.DecodeCredential(credential)
	if err != nil {
		log.Printf("sign-in credential rejected: %v", err)
		m.notifier.Show("Login failed. Could not verify identity.")
		return
	}

	session := &Session{
		SubjectID: claims.SubjectID,
		Name:      claims.DisplayName,
		Email:     claims.Email,
		Role:      m.resolver.Resolve(claims.Email),
		AvatarURL: claims.PictureURL,
	}

	if err := m.store.Save(session); err != nil {
		log.Printf("failed to persist session: %v", err)
		m.notifier.Show("Login failed. Could not save your session.")
		return
	}

	if err := m.seeder.SeedDefaults(ctx, session.SubjectID); err != nil {
		// The session itself is valid; only the workspace defaults are
		// missing. Surface it and carry on.
		log.Printf("workspace seeding failed for %s: %v", session.SubjectID, err)
		m.notifier.Show("Signed in, but your workspace could not be prepared.")
	} else {
		m.notifier.Show(fmt.Sprintf("Welcome, %s!", session.Name))
	}

	m.setCurrent(session)
}

// Logout revokes the provider grant best-effort, clears the persisted
// session, and returns the manager to the unauthenticated state.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()

	if current != nil && m.revoker != nil {
		if err := m.revoker.Revoke(ctx, current.Email); err != nil {
			log.Printf("provider grant revocation failed: %v", err)
		}
	}

	if err := m.store.Delete(); err != nil {
		log.Printf("failed to clear persisted session: %v", err)
	}

	m.setCurrent(nil)
	m.notifier.Show("You have been logged out.")
}

// Current returns the active session, or nil when unauthenticated.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers a callback invoked with every session change (nil on
// logout).
func (m *Manager) Subscribe(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) setCurrent(session *Session) {
	m.mu.Lock()
	m.current = session
	subs := append(([]func(*Session))(nil), m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
}
