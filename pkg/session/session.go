package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krono-coffee/ordering-client/pkg/models"
)

var (
	// ErrMalformedToken means the credential is not a three-segment token
	// with a decodable JSON payload.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnknownRole means the token decoded but carries a role this
	// client does not recognize.
	ErrUnknownRole = errors.New("unknown role")
)

// Identity is derived from the stored credential on every load. It is
// never persisted on its own.
type Identity struct {
	Subject string
	Role    models.Role
}

// CanCheckout reports whether this identity may use the cart and place
// orders. Only clients can.
func (id Identity) CanCheckout() bool {
	return id.Role == models.RoleClient
}

// CanManageOrders reports whether this identity may list all orders and
// change their status.
func (id Identity) CanManageOrders() bool {
	return id.Role == models.RoleAdmin || id.Role == models.RoleEmployee
}

// CanManageMenu reports whether this identity may create menu items and
// toggle their availability.
func (id Identity) CanManageMenu() bool {
	return id.Role == models.RoleAdmin
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DeriveIdentity decodes the payload segment of the bearer token and
// extracts subject and role. The signature is not verified: the client
// holds no secret, and the server re-checks the token on every request.
func DeriveIdentity(token string) (Identity, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	role := models.Role(claims.Role)
	if !role.Valid() {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	return Identity{Subject: claims.Subject, Role: role}, nil
}

// Session owns the credential lifecycle: anonymous until a login or a
// successful restore, anonymous again after logout or decode failure.
type Session struct {
	tokens  TokenStore
	current *Identity
}

func New(tokens TokenStore) *Session {
	return &Session{tokens: tokens}
}

// Login persists the credential and derives the identity. The token is
// validated and saved before the identity becomes observable, so callers
// never see an authenticated session backed by an unsaved credential.
func (s *Session) Login(token string) (Identity, error) {
	identity, err := DeriveIdentity(token)
	if err != nil {
		// A credential the client cannot decode must never be kept.
		if clearErr := s.tokens.Clear(); clearErr != nil {
			log.Printf("Warning: failed to clear credential slot: %v", clearErr)
		}
		s.current = nil
		return Identity{}, err
	}
	if err := s.tokens.Save(token); err != nil {
		return Identity{}, fmt.Errorf("persist credential: %w", err)
	}
	s.current = &identity
	return identity, nil
}

// Restore re-derives the identity from the stored credential. A missing
// token means anonymous; an undecodable one is purged and also means
// anonymous, never a stale identity.
func (s *Session) Restore() (Identity, bool) {
	s.current = nil
	token, err := s.tokens.Read()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			log.Printf("Warning: failed to read credential slot: %v", err)
		}
		return Identity{}, false
	}
	identity, err := DeriveIdentity(token)
	if err != nil {
		log.Printf("Purging stored credential: %v", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			log.Printf("Warning: failed to clear credential slot: %v", clearErr)
		}
		return Identity{}, false
	}
	s.current = &identity
	return identity, true
}

// Current returns the identity of the authenticated user, if any.
func (s *Session) Current() (Identity, bool) {
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

func (s *Session) Logout() error {
	s.current = nil
	return s.tokens.Clear()
}

func (s *Session) CanCheckout() bool {
	return s.current != nil && s.current.CanCheckout()
}

func (s *Session) CanManageOrders() bool {
	return s.current != nil && s.current.CanManageOrders()
}

func (s *Session) CanManageMenu() bool {
	return s.current != nil && s.current.CanManageMenu()
}
