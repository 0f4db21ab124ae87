// Package app wires the CLI's long-lived components. Construction is lazy
// and happens at most once per process, so commands that never touch Google
// or the workspace database do not pay for them.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/pterm/pterm"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
	"github.com/frostyfucker/HotelBrendle/internal/authz"
	"github.com/frostyfucker/HotelBrendle/internal/config"
	"github.com/frostyfucker/HotelBrendle/internal/drive"
	"github.com/frostyfucker/HotelBrendle/internal/notify"
	"github.com/frostyfucker/HotelBrendle/internal/provider"
	"github.com/frostyfucker/HotelBrendle/internal/session"
	"github.com/frostyfucker/HotelBrendle/internal/workspace"
)

// App bundles the components commands operate on.
type App struct {
	Cfg       *config.Config
	Notifier  *notify.Notifier
	Workspace *workspace.Store
	Sessions  *session.Manager
	Loader    *provider.Loader
	Identity  *provider.GoogleIdentity
	Uploader  *drive.Uploader
	Enforcer  casbin.IEnforcer
}

// Provider yields the shared App, built on first use.
type Provider struct {
	appOnce sync.Once
	app     *App
	appErr  error
}

// NewProvider constructs an empty provider. Nothing is initialised until App
// is called.
func NewProvider() *Provider {
	return &Provider{}
}

// App returns the shared application state, constructing it on first call.
func (p *Provider) App(ctx context.Context) (*App, error) {
	p.appOnce.Do(func() {
		p.app, p.appErr = build(ctx)
	})
	return p.app, p.appErr
}

// Close releases held resources. Safe to call when App was never built.
func (p *Provider) Close() error {
	if p.app == nil || p.app.Workspace == nil {
		return nil
	}
	return p.app.Workspace.Close()
}

func build(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	notifier := notify.New()
	notifier.Subscribe(func(t *notify.Toast) {
		if t != nil {
			pterm.Info.Println(t.Text)
		}
	})

	ws, err := workspace.Open(ctx, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening workspace store: %w", err)
	}

	sessionStore, err := session.NewFileStore(cfg.DataDir)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("loading access policy: %w", err)
	}

	identity := provider.NewGoogleIdentity(cfg)
	storage := provider.NewDriveStorage(cfg)
	loader := provider.NewLoader(cfg, identity, storage, notifier)

	resolver := auth.NewRoleResolver(cfg.AdminEmails, cfg.StaffEmails)
	sessions := session.NewManager(sessionStore, ws, resolver, notifier, identity)
	sessions.Restore()

	loader.Load(ctx, func(credential string) {
		sessions.HandleCredential(ctx, credential)
	})

	uploader := drive.NewUploader(cfg.DriveUploadURL, storage.TokenClient(), notifier, loader.StorageReady)

	return &App{
		Cfg:       cfg,
		Notifier:  notifier,
		Workspace: ws,
		Sessions:  sessions,
		Loader:    loader,
		Identity:  identity,
		Uploader:  uploader,
		Enforcer:  enforcer,
	}, nil
}

// RequireSession returns the active session or a user-facing error telling
// the caller to log in first.
func (a *App) RequireSession() (*session.Session, error) {
	current := a.Sessions.Current()
	if current == nil {
		return nil, fmt.Errorf("not logged in; please run `brendle auth login`")
	}
	return current, nil
}
