package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
	"golang.org/x/oauth2"

	"github.com/frostyfucker/HotelBrendle/internal/config"
)

// GoogleIdentity authenticates the user against Google's OIDC provider with
// the authorization code flow on a loopback redirect. The resulting ID token
// is handed to the registered callback as the sign-in credential.
type GoogleIdentity struct {
	cfg        *config.Config
	httpClient *http.Client

	mu          sync.Mutex
	oauthConfig *oauth2.Config
	callback    func(credential string)
	lastToken   *oauth2.Token
}

// NewGoogleIdentity builds an uninitialised identity client.
func NewGoogleIdentity(cfg *config.Config) *GoogleIdentity {
	return &GoogleIdentity{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Initialize discovers the provider configuration and registers the sign-in
// callback. Discovery failure leaves the client unusable.
func (g *GoogleIdentity) Initialize(ctx context.Context, clientID string, callback func(credential string)) error {
	scopes := []string{oidc.ScopeOpenID, oidc.ScopeProfile, oidc.ScopeEmail}

	relyingParty, err := rp.NewRelyingPartyOIDC(
		ctx,
		g.cfg.Issuer,
		clientID,
		"", // public client, no secret
		g.cfg.RedirectURI(),
		scopes,
		rp.WithHTTPClient(g.httpClient),
	)
	if err != nil {
		return fmt.Errorf("discovering identity provider at %s: %w", g.cfg.Issuer, err)
	}

	g.mu.Lock()
	g.oauthConfig = relyingParty.OAuthConfig()
	g.callback = callback
	g.mu.Unlock()
	return nil
}

// SignIn runs the interactive browser flow and invokes the registered
// callback with the ID token on success.
func (g *GoogleIdentity) SignIn(ctx context.Context) error {
	g.mu.Lock()
	oauthConfig := g.oauthConfig
	callback := g.callback
	g.mu.Unlock()
	if oauthConfig == nil {
		return errors.New("identity client not initialised")
	}

	token, err := authorizeInBrowser(ctx, oauthConfig, g.cfg.RedirectAddr)
	if err != nil {
		return fmt.Errorf("google sign-in: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return errors.New("google sign-in: token response has no id_token")
	}

	g.mu.Lock()
	g.lastToken = token
	g.mu.Unlock()

	callback(idToken)
	return nil
}

// Revoke drops the provider-side grant for the last sign-in. Without a
// retained token there is nothing to revoke.
func (g *GoogleIdentity) Revoke(ctx context.Context, _ string) error {
	g.mu.Lock()
	token := g.lastToken
	g.lastToken = nil
	g.mu.Unlock()
	if token == nil {
		return nil
	}

	form := url.Values{"token": {token.AccessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.RevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoking grant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("revoke endpoint returned %s", resp.Status)
	}
	return nil
}
