package auth

import (
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "HRMS"

// GenerateMFASecret creates a fresh TOTP secret for the given account and
// returns the shared secret plus the otpauth provisioning URL.
func GenerateMFASecret(accountEmail string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountEmail,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func ValidateMFACode(code, secret string) bool {
	return secret != "" && totp.Validate(code, secret)
}
