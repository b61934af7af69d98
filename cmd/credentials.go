package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/mfimport/internal/domain"
)

var errPasswordRequired = errors.New("password is required: pass --password or run from a terminal")

// Test seams for the terminal password prompt.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

type credentialOptions struct {
	email       string
	password    string
	oauthToken  string
	oauthSecret string
	accessToken string
}

func bindCredentialFlags(cmd *cobra.Command, opts *credentialOptions) {
	cmd.Flags().StringVar(&opts.email, "email", "", "Account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().StringVar(&opts.oauthToken, "oauth-token", "", "OAuth token")
	cmd.Flags().StringVar(&opts.oauthSecret, "oauth-secret", "", "OAuth token secret")
	cmd.Flags().StringVar(&opts.accessToken, "access-token", "", "Third-party access token")
	cmd.MarkFlagsRequiredTogether("oauth-token", "oauth-secret")
	cmd.MarkFlagsMutuallyExclusive("email", "oauth-token", "access-token")
}

func (o credentialOptions) resolve(cmd *cobra.Command) (domain.Credentials, error) {
	creds := domain.Credentials{
		Email:       strings.TrimSpace(o.email),
		Password:    o.password,
		OAuthToken:  o.oauthToken,
		OAuthSecret: o.oauthSecret,
		AccessToken: o.accessToken,
	}

	if creds.Email != "" && creds.Password == "" {
		password, err := promptPassword(cmd.ErrOrStderr(), creds.Email)
		if err != nil {
			return domain.Credentials{}, err
		}
		creds.Password = password
	}

	if err := creds.Validate(); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}

func promptPassword(w io.Writer, email string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errPasswordRequired
	}

	if _, err := fmt.Fprintf(w, "Password for %s: ", email); err != nil {
		return "", err
	}
	password, err := readPassword(fd)
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return "", errPasswordRequired
	}
	return string(password), nil
}
