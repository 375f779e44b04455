package domain

// MFASetupResponse is returned when a user initiates MFA enrollment.
type MFASetupResponse struct {
	Secret string `json:"secret"` // base32 secret for manual entry
	QRCode string `json:"qrCode"` // PNG data URL encoding the provisioning URI
}
