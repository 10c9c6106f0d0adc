package external

import (
	"context"
	"regexp"
	"strings"

	"github.com/supabase-community/supabase-go"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// SupabaseAuthenticator resolves access tokens with Supabase Auth
type SupabaseAuthenticator struct {
	client *supabase.Client
	logger ports.Logger
}

func NewSupabaseAuthenticator(client *supabase.Client, logger ports.Logger) *SupabaseAuthenticator {
	return &SupabaseAuthenticator{client: client, logger: logger}
}

func (a *SupabaseAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.NewUnauthorizedError("missing access token")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	user, err := a.client.Auth.WithToken(token).GetUser()
	if err != nil {
		a.logger.Debug("Token rejected", ports.F("error", err))
		return "", errors.NewUnauthorizedError("invalid or expired token")
	}
	return user.ID.String(), nil
}

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// HeaderAuthenticator trusts the bearer value as the user id. It is meant
// for local development behind a trusted proxy.
type HeaderAuthenticator struct{}

func NewHeaderAuthenticator() *HeaderAuthenticator {
	return &HeaderAuthenticator{}
}

func (HeaderAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if !userIDPattern.MatchString(token) {
		return "", errors.NewUnauthorizedError("invalid user id")
	}
	return token, nil
}
