package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/jwtx"
	"github.com/soletrader/storefront/pkg/totpx"
)

var (
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this user")
	ErrMFANotInitiated   = errors.New("MFA setup not initiated")
	ErrInvalidMFACode    = errors.New("invalid MFA code")
)

const qrCodeSize = 256 // px, square

type MFAService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string

	// TOTPIssuer is the label shown in authenticator apps.
	TOTPIssuer string
}

// Setup generates a fresh TOTP secret for the user and returns it with a
// scannable QR code. MFA stays disabled until Verify confirms possession.
// Calling Setup again before verifying discards the earlier pending
// secret.
func (s *MFAService) Setup(ctx context.Context, userID string) (domain.MFASetupResponse, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.MFASetupResponse{}, err
	}
	if user.MFAEnabled {
		return domain.MFASetupResponse{}, ErrMFAAlreadyEnabled
	}

	key, err := totpx.Generate(s.TOTPIssuer, user.Email)
	if err != nil {
		return domain.MFASetupResponse{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, userID, key.Secret); err != nil {
		return domain.MFASetupResponse{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	qr, err := totpx.QRCodeDataURL(key.URL, qrCodeSize)
	if err != nil {
		return domain.MFASetupResponse{}, fmt.Errorf("failed to render QR code: %w", err)
	}

	return domain.MFASetupResponse{Secret: key.Secret, QRCode: qr}, nil
}

// Verify checks a code against the pending secret and, on success, flips
// MFA on. The secret stored at Setup time becomes active.
func (s *MFAService) Verify(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrMFANotInitiated
	}

	if !totpx.Validate(code, *user.MFASecret) {
		return ErrInvalidMFACode
	}

	if err := s.Store.Users().EnableMFA(ctx, userID); err != nil {
		return fmt.Errorf("failed to enable MFA: %w", err)
	}
	return nil
}

// Validate completes the second factor of a login. The caller holds no
// session token yet, so the account is addressed by email. A valid code
// yields the session token that Login withheld.
func (s *MFAService) Validate(ctx context.Context, email string, code string) (AuthResult, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrMFANotEnabled
		}
		return AuthResult{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.MFAEnabled || user.MFASecret == nil || *user.MFASecret == "" {
		return AuthResult{}, ErrMFANotEnabled
	}

	if !totpx.Validate(code, *user.MFASecret) {
		return AuthResult{}, ErrInvalidMFACode
	}

	claims := jwtx.NewSessionClaims(user.ID, string(user.Role), s.Issuer, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}

// Disable turns MFA off. The caller must present a valid current code so
// a hijacked session alone cannot strip the second factor. Secret and
// flag are cleared in one statement.
func (s *MFAService) Disable(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.MFAEnabled || user.MFASecret == nil || *user.MFASecret == "" {
		return ErrMFANotEnabled
	}

	if !totpx.Validate(code, *user.MFASecret) {
		return ErrInvalidMFACode
	}

	if err := s.Store.Users().DisableMFA(ctx, userID); err != nil {
		return fmt.Errorf("failed to disable MFA: %w", err)
	}
	return nil
}
