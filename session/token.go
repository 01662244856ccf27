package session

import (
	"errors"

	"github.com/gorilla/securecookie"
)

const tokenName = "access_token"

// ErrInvalidToken is returned when an access token fails to decode or verify.
var ErrInvalidToken = errors.New("invalid access token")

// TokenCodec turns session IDs into signed access tokens and back, so a
// tampered or foreign token is rejected before the session lookup.
type TokenCodec struct {
	sc *securecookie.SecureCookie
}

// NewTokenCodec creates a codec signing with hashKey.
func NewTokenCodec(hashKey string) *TokenCodec {
	sc := securecookie.New([]byte(hashKey), nil)
	sc.MaxAge(0)
	return &TokenCodec{sc: sc}
}

// Encode returns the access token for a session ID.
func (c *TokenCodec) Encode(sessionID string) (string, error) {
	return c.sc.Encode(tokenName, sessionID)
}

// Decode returns the session ID carried by token.
func (c *TokenCodec) Decode(token string) (string, error) {
	var sessionID string
	if err := c.sc.Decode(tokenName, token, &sessionID); err != nil {
		return "", ErrInvalidToken
	}
	return sessionID, nil
}
