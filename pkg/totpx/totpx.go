// Package totpx wraps RFC 6238 time-based one-time passwords for the MFA
// flows: secret provisioning, code verification with a fixed skew window,
// and QR rendering of the enrollment URI.
package totpx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Period is the TOTP time step in seconds.
	Period = 30

	// Skew is the number of time steps accepted either side of "now",
	// so a code stays valid for 60 seconds of clock drift.
	Skew = 2

	// SecretSize is the raw entropy of a generated secret in bytes,
	// before base32 encoding.
	SecretSize = 32
)

// Key is freshly generated shared secret material plus the otpauth://
// provisioning URI that authenticator apps enroll from.
type Key struct {
	Secret string // base32 encoded
	URL    string // otpauth:// provisioning URI
}

// Generate produces a new high-entropy TOTP key labelled with the issuer
// and account so it is distinguishable inside an authenticator app.
func Generate(issuer, account string) (Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		SecretSize:  SecretSize,
		Period:      Period,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Key{}, fmt.Errorf("totpx: failed to generate key: %w", err)
	}

	return Key{Secret: key.Secret(), URL: key.URL()}, nil
}

// Validate reports whether code is valid for secret at the current time,
// within the standard skew window. It returns false for absent or malformed
// secrets and never reports why verification failed.
func Validate(code, secret string) bool {
	return ValidateAt(code, secret, time.Now().UTC())
}

// ValidateAt is Validate with an explicit evaluation time.
func ValidateAt(code, secret string, t time.Time) bool {
	if secret == "" || code == "" {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    Period,
		Skew:      Skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return ok
}

// CodeAt derives the 6-digit zero-padded code for secret at time t.
func CodeAt(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, t, totp.ValidateOpts{
		Period:    Period,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("totpx: failed to derive code: %w", err)
	}
	return code, nil
}

// QRCodeDataURL renders a provisioning URI as a PNG QR code wrapped in a
// data URL, ready to drop into an <img> tag.
func QRCodeDataURL(provisioningURL string, size int) (string, error) {
	key, err := otp.NewKeyFromURL(provisioningURL)
	if err != nil {
		return "", fmt.Errorf("totpx: invalid provisioning URL: %w", err)
	}

	img, err := key.Image(size, size)
	if err != nil {
		return "", fmt.Errorf("totpx: failed to render QR image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("totpx: failed to encode QR image: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
