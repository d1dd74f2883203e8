package user

import (
	"context"
	"errors"
	"strings"

	"teesheet/internal/auth"
	"teesheet/internal/logger"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrInvalidRole        = errors.New("invalid role")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	Account(ctx context.Context, userID int) (auth.Account, error)

	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
	UpdateRole(ctx context.Context, userID int, role string) (*User, error)
	SetActive(ctx context.Context, userID int, active bool) (*User, error)
	PromoteToAdmin(ctx context.Context, email string) (*User, error)
}

type service struct {
	repo   Repository
	tokens *auth.Signer
}

// NewService builds the account service. tokens may be nil for tools that
// never issue sessions, such as makeadmin.
func NewService(repo Repository, tokens *auth.Signer) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) issueTokens(user *User) (string, string, error) {
	tokens, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	return tokens.Access, tokens.Refresh, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), email, passwordHash, auth.RoleUser)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("user registered", "user_id", user.ID)
	return user, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !auth.PasswordMatches(user.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}
	if !user.Active {
		return nil, "", "", ErrAccountDisabled
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, err
	}
	if !user.Active {
		return "", nil, ErrAccountDisabled
	}

	// Re-issue from the stored record so role changes take effect.
	newAccessToken, err := s.tokens.AccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, user, nil
}

// Account implements auth.AccountLookup.
func (s *service) Account(ctx context.Context, userID int) (auth.Account, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return auth.Account{}, auth.ErrAccountNotFound
		}
		return auth.Account{}, err
	}
	return auth.Account{Role: user.Role, Active: user.Active}, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) UpdateRole(ctx context.Context, userID int, role string) (*User, error) {
	if role != auth.RoleUser && role != auth.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	logger.Info("user role updated", "user_id", userID, "role", role)
	return user, nil
}

func (s *service) SetActive(ctx context.Context, userID int, active bool) (*User, error) {
	user, err := s.repo.SetActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}

	logger.Info("user active flag updated", "user_id", userID, "active", active)
	return user, nil
}

func (s *service) PromoteToAdmin(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user.Role == auth.RoleAdmin {
		return user, nil
	}
	return s.UpdateRole(ctx, user.ID, auth.RoleAdmin)
}
