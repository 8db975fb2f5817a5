package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// Authenticator resolves bearer tokens to user IDs and enforces the owner
// allow-list. Only listed users may call the API.
type Authenticator struct {
	jwt     *JWTManager
	allowed map[string]struct{}
	log     *slog.Logger
}

// NewAuthenticator creates an Authenticator for the given allow-list.
func NewAuthenticator(log *slog.Logger, jwt *JWTManager, allowedUsers []string) *Authenticator {
	allowed := make(map[string]struct{}, len(allowedUsers))
	for _, u := range allowedUsers {
		if u = strings.TrimSpace(u); u != "" {
			allowed[u] = struct{}{}
		}
	}
	return &Authenticator{
		jwt:     jwt,
		allowed: allowed,
		log:     log.With("component", "authenticator"),
	}
}

// IsAllowed reports whether userID is on the allow-list.
func (a *Authenticator) IsAllowed(userID string) bool {
	_, ok := a.allowed[userID]
	return ok
}

// ValidateToken returns the token's user ID.
// Invalid tokens yield domain.ErrUnauthorized; valid tokens for users outside
// the allow-list yield domain.ErrForbidden.
func (a *Authenticator) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := a.jwt.ValidateAccessToken(token)
	if err != nil {
		a.log.DebugContext(ctx, "token rejected", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	if !a.IsAllowed(userID) {
		a.log.WarnContext(ctx, "user not in allow-list", slog.String("user_id", userID))
		return "", fmt.Errorf("user %s: %w", userID, domain.ErrForbidden)
	}

	return userID, nil
}

// IssueToken mints an access token for an allow-listed user.
func (a *Authenticator) IssueToken(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if !a.IsAllowed(userID) {
		return "", fmt.Errorf("user %s: %w", userID, domain.ErrForbidden)
	}
	return a.jwt.GenerateAccessToken(userID)
}
