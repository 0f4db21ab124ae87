// Package drive uploads workspace exports to the user's Google Drive using
// short-lived delegated access tokens. Tokens are requested per upload and
// discarded as soon as the request finishes, success or not.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/frostyfucker/HotelBrendle/internal/notify"
)

// UploadBoundary separates the metadata and content parts of the
// multipart/related upload body.
const UploadBoundary = "-------314159265358979323846"

var (
	// ErrNotReady means the storage client has not finished initialising.
	ErrNotReady = errors.New("drive: storage client not ready")
	// ErrUploadInProgress rejects a second upload while one is running.
	ErrUploadInProgress = errors.New("drive: upload already in progress")
	// ErrAccessDenied means the user declined the consent prompt.
	ErrAccessDenied = errors.New("drive: access denied")
)

// TokenClient obtains a delegated access token. prompt is "consent" for the
// first grant of a session and "none" for silent renewals after that.
type TokenClient interface {
	Request(ctx context.Context, prompt string) (*oauth2.Token, error)
}

// TokenHolder keeps the access token for exactly one upload. It is never
// persisted and never logged.
type TokenHolder struct {
	mu    sync.Mutex
	token *oauth2.Token
}

// Set stores the token for the upload about to run.
func (h *TokenHolder) Set(tok *oauth2.Token) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = tok
}

// Get returns the held token, or nil.
func (h *TokenHolder) Get() *oauth2.Token {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

// Clear drops the held token. Called unconditionally after every upload.
func (h *TokenHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = nil
}

// Uploader saves files to Drive via the multipart upload endpoint.
type Uploader struct {
	uploadURL  string
	httpClient *http.Client
	tokens     *TokenHolder
	client     TokenClient
	notifier   *notify.Notifier
	ready      func() bool

	mu        sync.Mutex
	inFlight  bool
	consented bool
}

// NewUploader wires an Uploader. ready reports whether the storage client
// finished initialising; uploads fail fast without touching the network
// until it returns true.
func NewUploader(uploadURL string, client TokenClient, notifier *notify.Notifier, ready func() bool) *Uploader {
	return &Uploader{
		uploadURL:  uploadURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     &TokenHolder{},
		client:     client,
		notifier:   notifier,
		ready:      ready,
	}
}

// Save uploads content to the user's Drive as a file named name. The first
// upload of a session prompts the user for consent; later uploads renew the
// grant silently. Every outcome surfaces a toast, and the access token is
// cleared before Save returns.
func (u *Uploader) Save(ctx context.Context, name string, content []byte, mimeType string) error {
	if !u.ready() {
		u.notifier.Show("Google Drive is not ready yet. Please try again in a moment.")
		return ErrNotReady
	}

	u.mu.Lock()
	if u.inFlight {
		u.mu.Unlock()
		return ErrUploadInProgress
	}
	u.inFlight = true
	prompt := "consent"
	if u.consented {
		prompt = "none"
	}
	u.mu.Unlock()

	defer func() {
		u.tokens.Clear()
		u.mu.Lock()
		u.inFlight = false
		u.mu.Unlock()
	}()

	tok, err := u.client.Request(ctx, prompt)
	if err != nil {
		log.Printf("drive token request failed: %v", err)
		u.notifier.Show("Google Drive access denied.")
		return fmt.Errorf("requesting drive token: %w", ErrAccessDenied)
	}
	u.tokens.Set(tok)
	u.mu.Lock()
	u.consented = true
	u.mu.Unlock()

	if err := u.upload(ctx, name, content, mimeType); err != nil {
		return err
	}

	u.notifier.Show(fmt.Sprintf("File %q saved to Google Drive!", name))
	return nil
}

func (u *Uploader) upload(ctx context.Context, name string, content []byte, mimeType string) error {
	body, err := buildMultipartBody(name, content, mimeType)
	if err != nil {
		return fmt.Errorf("building upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL+"?uploadType=multipart", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/related; boundary=%q", UploadBoundary))
	req.Header.Set("Authorization", "Bearer "+u.tokens.Get().AccessToken)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		log.Printf("drive upload transport error: %v", err)
		u.notifier.Show(fmt.Sprintf("An error occurred while saving: %v", err))
		return fmt.Errorf("uploading to drive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := apiErrorMessage(resp.Body, resp.Status)
		u.notifier.Show("Error saving to Drive: " + msg)
		return fmt.Errorf("drive upload rejected: %s", msg)
	}
	return nil
}

// buildMultipartBody assembles the multipart/related payload the Drive v3
// multipart endpoint expects: a JSON metadata part followed by the content.
func buildMultipartBody(name string, content []byte, mimeType string) ([]byte, error) {
	metadata, err := json.Marshal(map[string]string{
		"name":     name,
		"mimeType": mimeType,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	delimiter := "\r\n--" + UploadBoundary + "\r\n"

	buf.WriteString(delimiter)
	buf.WriteString("Content-Type: application/json; charset=UTF-8\r\n\r\n")
	buf.Write(metadata)

	buf.WriteString(delimiter)
	buf.WriteString("Content-Type: " + mimeType + "\r\n\r\n")
	buf.Write(content)

	buf.WriteString("\r\n--" + UploadBoundary + "--")
	return buf.Bytes(), nil
}

// apiErrorMessage extracts the message from a Drive API error payload,
// falling back to the HTTP status line.
func apiErrorMessage(r io.Reader, status string) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return status
}
