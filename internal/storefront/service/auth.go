package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/cryptox"
	"github.com/soletrader/storefront/pkg/idx"
	"github.com/soletrader/storefront/pkg/jwtx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthResult is a successful authentication: a minted session token plus
// the user it belongs to.
type AuthResult struct {
	Token string
	User  domain.User
}

// LoginResult is the outcome of a first-factor login. When the account
// has MFA enabled, MFARequired is set, Email echoes the login key for
// the second-factor resubmission, and no token is issued.
type LoginResult struct {
	MFARequired bool
	Email       string

	Token string
	User  domain.User
}

type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string
}

// Register creates a new account and signs it straight in. The role is
// derived from the email naming heuristic at creation time.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleForEmail(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueSession(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

// Login performs the first factor. Unknown emails and wrong passwords
// both come back as ErrInvalidCredentials so callers cannot probe which
// accounts exist. Accounts with MFA enabled get no token here; they must
// complete the second factor via MFAService.Validate.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		return LoginResult{MFARequired: true, Email: user.Email}, nil
	}

	token, err := s.issueSession(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) issueSession(u domain.User) (string, error) {
	claims := jwtx.NewSessionClaims(u.ID, string(u.Role), s.Issuer, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}
