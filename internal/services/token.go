package services

import (
	"fmt"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenInfo is what the client can learn from a session token without the signing key.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Expired reports whether the token's exp claim is before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// InspectToken reads the registered claims of a JWT without verifying its signature.
func InspectToken(token string) (TokenInfo, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// sessionTokenSource implements [oauth2.TokenSource] over the stored session token.
type sessionTokenSource struct {
	store models.SessionStore
	now   func() time.Time
}

// Token returns the stored bearer token, failing fast when it is known to be expired.
//
// Opaque (non-JWT) tokens are passed through unchanged.
func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no session store configured", shared.ErrNotAuthenticated)
	}

	session, err := s.store.Session()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	token := &oauth2.Token{AccessToken: session.Token, TokenType: "Bearer"}

	info, err := InspectToken(session.Token)
	if err != nil {
		return token, nil
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	if info.Expired(now()) {
		return nil, fmt.Errorf("%w: expired at %s", shared.ErrTokenExpired, info.ExpiresAt.Format(time.RFC3339))
	}

	token.Expiry = info.ExpiresAt
	return token, nil
}
