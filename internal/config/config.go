package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// clientIDPlaceholder is the value shipped in the sample environment file.
// A client ID that still carries it means the operator never finished setup,
// so sign-in must stay disabled instead of issuing doomed network calls.
const clientIDPlaceholder = "YOUR_GOOGLE_CLIENT_ID"

// Config holds the application configuration
type Config struct {
	// Google OAuth client identifier (public)
	GoogleClientID string

	// Email allow-lists for role resolution (lower-cased on load)
	AdminEmails []string
	StaffEmails []string

	// Directory holding the session record and the workspace database
	DataDir string

	// Identity provider issuer URL used for OIDC discovery
	Issuer string

	// Loopback address for the interactive sign-in redirect listener
	RedirectAddr string

	// Drive multipart upload endpoint (overridable for tests)
	DriveUploadURL string

	// Token revocation endpoint used on logout (best effort)
	RevokeURL string

	// Enable debug logging
	Debug bool
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	dataDir := getEnv("BRENDLE_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".brendle")
	}

	cfg := &Config{
		GoogleClientID: getEnv("BRENDLE_GOOGLE_CLIENT_ID", ""),
		AdminEmails:    splitEmails(getEnv("BRENDLE_ADMIN_EMAILS", "")),
		StaffEmails:    splitEmails(getEnv("BRENDLE_STAFF_EMAILS", "")),
		DataDir:        dataDir,
		Issuer:         getEnv("BRENDLE_ISSUER", "https://accounts.google.com"),
		RedirectAddr:   getEnv("BRENDLE_REDIRECT_ADDR", "127.0.0.1:8217"),
		DriveUploadURL: getEnv("BRENDLE_DRIVE_UPLOAD_URL", "https://www.googleapis.com/upload/drive/v3/files"),
		RevokeURL:      getEnv("BRENDLE_REVOKE_URL", "https://oauth2.googleapis.com/revoke"),
		Debug:          getEnvBool("BRENDLE_DEBUG", false),
	}

	if cfg.Issuer == "" {
		return nil, fmt.Errorf("BRENDLE_ISSUER is required")
	}
	if cfg.RedirectAddr == "" {
		return nil, fmt.Errorf("BRENDLE_REDIRECT_ADDR is required")
	}

	return cfg, nil
}

// SignInDisabledReason reports why interactive sign-in cannot work, or ""
// when the client ID is usable. An unconfigured or placeholder client ID
// fails closed: the caller must surface the diagnostic and skip all
// provider network calls.
func (c *Config) SignInDisabledReason() string {
	if c.GoogleClientID == "" {
		return "BRENDLE_GOOGLE_CLIENT_ID is not set; authentication is disabled"
	}
	if strings.HasPrefix(c.GoogleClientID, clientIDPlaceholder) {
		return "BRENDLE_GOOGLE_CLIENT_ID still holds the placeholder value; authentication is disabled"
	}
	return ""
}

// RedirectURI returns the full loopback redirect URI registered with the
// identity provider for the interactive sign-in flow.
func (c *Config) RedirectURI() string {
	return "http://" + c.RedirectAddr + "/auth/callback"
}

// splitEmails parses a comma-separated allow-list, trimming blanks and
// lower-casing entries so role checks stay case-insensitive.
func splitEmails(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "1" || strings.EqualFold(value, "true")
	}
	return defaultValue
}
