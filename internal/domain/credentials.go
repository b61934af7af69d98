package domain

import (
	"fmt"
	"strings"
)

type CredentialKind string

const (
	CredentialEmail       CredentialKind = "email"
	CredentialOAuth       CredentialKind = "oauth"
	CredentialAccessToken CredentialKind = "access_token"
)

// Credentials holds exactly one of the three login shapes. They are consumed
// by a single login call and never stored.
type Credentials struct {
	Email       string
	Password    string
	OAuthToken  string
	OAuthSecret string
	AccessToken string
}

func (c Credentials) Kind() CredentialKind {
	switch {
	case c.Email != "" || c.Password != "":
		return CredentialEmail
	case c.OAuthToken != "" || c.OAuthSecret != "":
		return CredentialOAuth
	case c.AccessToken != "":
		return CredentialAccessToken
	default:
		return ""
	}
}

func (c Credentials) Validate() error {
	shapes := 0
	if c.Email != "" || c.Password != "" {
		shapes++
		if strings.TrimSpace(c.Email) == "" || c.Password == "" {
			return fmt.Errorf("%w: email and password are both required", ErrInvalidCredentials)
		}
	}
	if c.OAuthToken != "" || c.OAuthSecret != "" {
		shapes++
		if c.OAuthToken == "" || c.OAuthSecret == "" {
			return fmt.Errorf("%w: oauth token and oauth secret are both required", ErrInvalidCredentials)
		}
	}
	if c.AccessToken != "" {
		shapes++
	}

	switch shapes {
	case 0:
		return fmt.Errorf("%w: no credentials provided", ErrInvalidCredentials)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: credential shapes are mutually exclusive", ErrInvalidCredentials)
	}
}

// Partial returns the credential-derived prefix of the login signature input.
func (c Credentials) Partial() string {
	switch c.Kind() {
	case CredentialEmail:
		return c.Email + c.Password
	case CredentialOAuth:
		return c.OAuthToken + c.OAuthSecret
	case CredentialAccessToken:
		return c.AccessToken
	default:
		return ""
	}
}
