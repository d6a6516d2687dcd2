package port

// TOTPServicePort - генерация секретов и проверка одноразовых кодов.
type TOTPServicePort interface {
	// GenerateSecret возвращает секрет в base32 и otpauth:// URL для QR-кода.
	GenerateSecret(accountName string) (secret string, otpauthURL string, err error)
	// Validate проверяет код с допуском по времени.
	Validate(code, secret string) bool
}
