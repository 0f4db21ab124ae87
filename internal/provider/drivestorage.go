package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"golang.org/x/oauth2"

	"github.com/frostyfucker/HotelBrendle/internal/config"
	"github.com/frostyfucker/HotelBrendle/internal/drive"
)

// driveFileScope limits delegated access to files the app itself creates.
const driveFileScope = "https://www.googleapis.com/auth/drive.file"

// DriveStorage prepares delegated Drive access. Initialize doubles as the
// reachability probe: provider discovery must succeed before the storage
// client is considered ready.
type DriveStorage struct {
	cfg        *config.Config
	httpClient *http.Client

	mu          sync.Mutex
	oauthConfig *oauth2.Config
	source      oauth2.TokenSource
}

// NewDriveStorage builds an uninitialised storage client.
func NewDriveStorage(cfg *config.Config) *DriveStorage {
	return &DriveStorage{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Initialize discovers the provider endpoints for the drive.file scope.
func (d *DriveStorage) Initialize(ctx context.Context) error {
	relyingParty, err := rp.NewRelyingPartyOIDC(
		ctx,
		d.cfg.Issuer,
		d.cfg.GoogleClientID,
		"",
		d.cfg.RedirectURI(),
		[]string{driveFileScope},
		rp.WithHTTPClient(d.httpClient),
	)
	if err != nil {
		return fmt.Errorf("discovering drive authorization endpoints: %w", err)
	}

	d.mu.Lock()
	d.oauthConfig = relyingParty.OAuthConfig()
	d.mu.Unlock()
	return nil
}

// TokenClient returns the delegated token client backed by this storage
// client's grant.
func (d *DriveStorage) TokenClient() drive.TokenClient {
	return (*storageTokenClient)(d)
}

type storageTokenClient DriveStorage

// Request obtains a delegated access token. "consent" runs the interactive
// browser grant and retains a refresh source; "none" renews silently from
// that source and fails if no grant exists yet.
func (c *storageTokenClient) Request(ctx context.Context, prompt string) (*oauth2.Token, error) {
	c.mu.Lock()
	oauthConfig := c.oauthConfig
	source := c.source
	c.mu.Unlock()
	if oauthConfig == nil {
		return nil, errors.New("storage client not initialised")
	}

	if prompt == "none" {
		if source == nil {
			return nil, errors.New("no prior drive grant to renew")
		}
		token, err := source.Token()
		if err != nil {
			return nil, fmt.Errorf("renewing drive grant: %w", err)
		}
		return token, nil
	}

	token, err := authorizeInBrowser(ctx, oauthConfig, c.cfg.RedirectAddr,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("drive authorization: %w", err)
	}

	c.mu.Lock()
	c.source = oauthConfig.TokenSource(context.Background(), token)
	c.mu.Unlock()
	return token, nil
}
