// Package auth provides authentication support for HTTP requests.
package auth

import (
	"errors"
	"net/http"
)

// ErrEmptyUsername is returned when basic credentials carry no username.
var ErrEmptyUsername = errors.New("basic auth username cannot be empty")

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// BasicAuth represents HTTP Basic Authentication credentials.
// For the dataset API the password is the account's API key.
type BasicAuth struct {
	Username string
	Password string
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	// NoneType is reported by Anonymous.
	NoneType Type = "none"
	// BasicAuthType represents HTTP Basic Authentication.
	BasicAuthType Type = "basic"
)

// Apply adds Basic Authentication headers to the HTTP request.
func (b BasicAuth) Apply(req *http.Request) error {
	if b.Username == "" {
		return ErrEmptyUsername
	}
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns the authentication type (BasicAuthType).
func (b BasicAuth) Type() Type { return BasicAuthType }

// Anonymous leaves requests untouched. The public dataset endpoints accept it.
type Anonymous struct{}

// Apply does nothing.
func (Anonymous) Apply(*http.Request) error { return nil }

// Type returns NoneType.
func (Anonymous) Type() Type { return NoneType }

// ApplyTo applies a to req, treating a nil Authenticator as Anonymous.
func ApplyTo(req *http.Request, a Authenticator) error {
	if a == nil {
		return nil
	}
	return a.Apply(req)
}
