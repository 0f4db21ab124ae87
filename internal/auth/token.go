package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// ErrMalformedCredential is returned when an identity credential cannot be
// decoded into claims. Callers must treat it as "login failed" and create no
// session.
var ErrMalformedCredential = errors.New("malformed identity credential")

// Claims holds the identity fields extracted from a sign-in credential.
// They exist only while a login is being processed and are never persisted.
type Claims struct {
	// SubjectID is the provider's stable user identifier ("sub").
	SubjectID string
	// DisplayName is the user's display name, may be empty.
	DisplayName string
	// Email may be empty when the provider withholds it.
	Email string
	// PictureURL points at the user's avatar, may be empty.
	PictureURL string
}

// rawPayload mirrors the JSON body of the credential's payload segment.
type rawPayload struct {
	Subject string `mapstructure:"sub"`
	Name    string `mapstructure:"name"`
	Email   string `mapstructure:"email"`
	Picture string `mapstructure:"picture"`
}

// DecodeCredential decodes the payload segment of a compact three-part
// identity credential without verifying its signature. Signature verification
// happens upstream in the provider client; this decoder only narrows the
// untyped payload into Claims.
//
// Any malformed segment, invalid encoding, or missing subject yields
// ErrMalformedCredential and no partial Claims.
func DecodeCredential(credential string) (*Claims, error) {
	var payload jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	var raw rawPayload
	if err := mapstructure.Decode(map[string]interface{}(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrMalformedCredential, err)
	}
	if raw.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrMalformedCredential)
	}

	return &Claims{
		SubjectID:   raw.Subject,
		DisplayName: raw.Name,
		Email:       raw.Email,
		PictureURL:  raw.Picture,
	}, nil
}
