// Package services contains the server-side business logic: account
// management, the authentication gate, the upload pipeline, listing, and
// visibility-gated retrieval.
package services

import (
	"context"
	"errors"

	"github.com/Muliro1/alx-files-manager/internal/common"
	"github.com/Muliro1/alx-files-manager/internal/server/sessions"
)

// Gate resolves a session token to a user identity.
//
// A missing, unknown, and expired token all produce the same
// ErrorUnauthorized, so callers cannot probe which tokens exist.
type Gate struct {
	sessions sessions.Store
}

func NewGate(s sessions.Store) *Gate {
	return &Gate{sessions: s}
}

// Authenticate returns the user ID bound to token, or ErrorUnauthorized.
func (g *Gate) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	userID, err := g.sessions.Get(ctx, common.SessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	return userID, nil
}

// Identity is the lenient form used on read paths where anonymous access is
// allowed: a missing or unknown token yields ok=false and no error. A
// session-store failure is still reported as an error, so an outage is not
// mistaken for an anonymous caller.
func (g *Gate) Identity(ctx context.Context, token string) (string, bool, error) {
	userID, err := g.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return "", false, nil
		}
		return "", false, err
	}
	return userID, true, nil
}
