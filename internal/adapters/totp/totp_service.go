package totp

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPService - реализация TOTPServicePort поверх pquerna/otp.
type TOTPService struct {
	issuer string
}

func NewTOTPService(issuer string) *TOTPService {
	if issuer == "" {
		issuer = "catalog-service"
	}
	return &TOTPService{issuer: issuer}
}

// GenerateSecret выпускает новый секрет; otpauth-URL идет в QR-код клиенту.
func (s *TOTPService) GenerateSecret(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate totp secret: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// Validate проверяет код с допуском в два 30-секундных окна,
// чтобы пережить расхождение часов клиента и сервера.
func (s *TOTPService) Validate(code, secret string) bool {
	valid, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      2,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}
