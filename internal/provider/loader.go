// Package provider initialises the external Google clients the dashboard
// depends on: the identity client that authenticates the user, and the Drive
// storage client used for exports. Initialisation is ordered (identity first,
// then storage), runs at most once, and records readiness flags the rest of
// the application consults before using either client.
package provider

import (
	"context"
	"log"
	"sync"

	"github.com/frostyfucker/HotelBrendle/internal/config"
	"github.com/frostyfucker/HotelBrendle/internal/drive"
	"github.com/frostyfucker/HotelBrendle/internal/notify"
)

// IdentityClient authenticates the user interactively. Initialize registers
// the sign-in callback; SignIn runs the interactive flow and invokes that
// callback exactly once per successful sign-in.
type IdentityClient interface {
	Initialize(ctx context.Context, clientID string, callback func(credential string)) error
	SignIn(ctx context.Context) error
	Revoke(ctx context.Context, email string) error
}

// StorageClient mediates delegated access to the user's Drive.
type StorageClient interface {
	Initialize(ctx context.Context) error
	TokenClient() drive.TokenClient
}

// Loader performs the one-time ordered initialisation of both clients.
type Loader struct {
	cfg      *config.Config
	identity IdentityClient
	storage  StorageClient
	notifier *notify.Notifier

	loadOnce sync.Once

	mu             sync.Mutex
	identityLoaded bool
	signInEnabled  bool
	storageReady   bool
}

// NewLoader wires a Loader. Nothing is initialised until Load is called.
func NewLoader(cfg *config.Config, identity IdentityClient, storage StorageClient, notifier *notify.Notifier) *Loader {
	return &Loader{
		cfg:      cfg,
		identity: identity,
		storage:  storage,
		notifier: notifier,
	}
}

// Load initialises the identity client and then the storage client. Repeat
// calls are no-ops regardless of the first call's outcome: a failed load is
// settled, not retried. onCredential receives the identity credential after
// each successful interactive sign-in.
func (l *Loader) Load(ctx context.Context, onCredential func(credential string)) {
	l.loadOnce.Do(func() {
		if reason := l.cfg.SignInDisabledReason(); reason != "" {
			log.Printf("sign-in disabled: %s", reason)
			return
		}

		if err := l.identity.Initialize(ctx, l.cfg.GoogleClientID, onCredential); err != nil {
			log.Printf("identity client initialisation failed: %v", err)
			l.notifier.Show("Error: Could not load Google services. Please refresh.")
			return
		}
		l.mu.Lock()
		l.identityLoaded = true
		l.signInEnabled = true
		l.mu.Unlock()

		if err := l.storage.Initialize(ctx); err != nil {
			log.Printf("storage client initialisation failed: %v", err)
			l.notifier.Show("Error: Could not load Google services. Please refresh.")
			return
		}
		l.mu.Lock()
		l.storageReady = true
		l.mu.Unlock()
	})
}

// IdentityLoaded reports whether the identity client initialised.
func (l *Loader) IdentityLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.identityLoaded
}

// SignInEnabled reports whether interactive sign-in is available.
func (l *Loader) SignInEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.signInEnabled
}

// StorageReady reports whether Drive exports are available.
func (l *Loader) StorageReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.storageReady
}
