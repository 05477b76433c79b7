// Package provider drives the OAuth2 authorization-code exchange against the
// external identity provider and normalizes what comes back. Raw provider
// payloads never leave this package; downstream code sees only Profile.
package provider

import "context"

// Profile is the canonical shape of an external identity. All fields except
// Avatar are required; normalization fails without them.
type Profile struct {
	GoogleID string
	Email    string
	Name     string
	Avatar   string
}

// Provider abstracts the external identity provider behind the two
// primitives the auth flow needs.
type Provider interface {
	// AuthCodeURL builds the consent-screen URL carrying the given state.
	AuthCodeURL(state string) string
	// ResolveProfile exchanges an authorization code for the provider's
	// profile and normalizes it. A profile without a usable id or email is
	// rejected before any local state is touched.
	ResolveProfile(ctx context.Context, code string) (*Profile, error)
}
