package domain

import "errors"

// Ошибки, возвращаемые из use case-ов. Обработчики REST сопоставляют их
// с HTTP-статусами; всё остальное трактуется как внутренняя ошибка.
var (
	ErrValidation = errors.New("validation failed")

	ErrProjectNotFound = errors.New("project not found")
	ErrMediaNotFound   = errors.New("media not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrTokenInvalid       = errors.New("invalid jwt token")

	ErrInvalidTOTPCode   = errors.New("invalid authentication code")
	ErrTOTPNotConfigured = errors.New("two-factor authentication is not set up")

	ErrForbidden = errors.New("operation is not allowed")
	// Админ не может удалить или разжаловать сам себя.
	ErrSelfModification = errors.New("cannot modify own account")
)
