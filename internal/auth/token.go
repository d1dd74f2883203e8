package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "teesheet-api"
	audience = "teesheet-golfers"

	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type tokenKind string

const (
	kindAccess  tokenKind = "access"
	kindRefresh tokenKind = "refresh"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
)

// Claims identify the golfer a session token was issued to.
type Claims struct {
	UserID int       `json:"id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Kind   tokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// Tokens is the pair handed out on register and login.
type Tokens struct {
	Access  string
	Refresh string
}

// Signer issues and verifies session tokens. Access and refresh tokens are
// signed with separate keys.
type Signer struct {
	accessKey  []byte
	refreshKey []byte
	now        func() time.Time
}

func NewSigner(accessSecret, refreshSecret string) (*Signer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrEmptyJWTSecret
	}
	return &Signer{
		accessKey:  []byte(accessSecret),
		refreshKey: []byte(refreshSecret),
		now:        time.Now,
	}, nil
}

func (s *Signer) sign(kind tokenKind, key []byte, ttl time.Duration, userID int, email, role string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.Itoa(userID),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (s *Signer) AccessToken(userID int, email, role string) (string, error) {
	return s.sign(kindAccess, s.accessKey, AccessTokenTTL, userID, email, role)
}

func (s *Signer) Issue(userID int, email, role string) (Tokens, error) {
	access, err := s.AccessToken(userID, email, role)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.sign(kindRefresh, s.refreshKey, RefreshTokenTTL, userID, email, role)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{Access: access, Refresh: refresh}, nil
}

func (s *Signer) verify(token string, key []byte, want tokenKind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Kind != want {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// VerifyAccess accepts only unexpired access tokens signed with the access key.
func (s *Signer) VerifyAccess(token string) (*Claims, error) {
	return s.verify(token, s.accessKey, kindAccess)
}

// VerifyRefresh accepts only unexpired refresh tokens signed with the refresh key.
func (s *Signer) VerifyRefresh(token string) (*Claims, error) {
	return s.verify(token, s.refreshKey, kindRefresh)
}
