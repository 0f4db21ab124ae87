package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zitadel/oidc/v3/pkg/client/rp/cli"
	"golang.org/x/oauth2"
)

type callbackResult struct {
	code string
	err  error
}

// authorizeInBrowser runs the authorization code flow with PKCE against a
// loopback redirect. It opens the user's browser, waits for the provider to
// redirect back to listenAddr, and exchanges the code for a token.
func authorizeInBrowser(ctx context.Context, cfg *oauth2.Config, listenAddr string, extra ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)

	router := chi.NewRouter()
	router.Get("/auth/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("authorization response state mismatch")}
		case q.Get("error") != "":
			http.Error(w, "authorization declined", http.StatusForbidden)
			results <- callbackResult{err: fmt.Errorf("authorization declined: %s", q.Get("error"))}
		default:
			fmt.Fprintln(w, "Signed in. You can close this window and return to Hotel Brendle.")
			results <- callbackResult{code: q.Get("code")}
		}
	})

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("starting callback listener on %s: %w", listenAddr, err)
	}
	server := &http.Server{Handler: router}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			results <- callbackResult{err: fmt.Errorf("callback server failed: %w", err)}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authOpts := append([]oauth2.AuthCodeOption{oauth2.S256ChallengeOption(verifier)}, extra...)
	authURL := cfg.AuthCodeURL(state, authOpts...)

	fmt.Println("Opening your browser to sign in with Google.")
	fmt.Println("If it does not open automatically, visit:")
	fmt.Printf("  %s\n", authURL)
	cli.OpenBrowser(authURL)

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for authorization: %w", ctx.Err())
	}
	if result.err != nil {
		return nil, result.err
	}

	token, err := cfg.Exchange(ctx, result.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}
