package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Роли пользователей. Привилегированные операции доступны только админу.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole - проверка роли на границе записи.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User - учётная запись.
type User struct {
	ID               uuid.UUID
	Email            string
	Name             string
	PasswordHash     string
	Role             string
	TwoFactorEnabled bool
	TwoFactorSecret  *string
	IsVisible        bool

	// Разрешения на просмотр слотов дополнительных атрибутов проектов.
	VisibleAttributes AttributeVisibility

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin - привилегированный ли это пользователь.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NewUser создает пользователя. Хэширование пароля происходит здесь.
func NewUser(email, password, name, role string) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = RoleUser
	}

	// По умолчанию все 13 слотов атрибутов видимы.
	attrs := make(AttributeVisibility, AttributeSlotCount)
	for slot := 1; slot <= AttributeSlotCount; slot++ {
		attrs[slot] = true
	}

	now := time.Now().UTC()
	return &User{
		ID:                uuid.New(),
		Email:             email,
		Name:              name,
		PasswordHash:      string(hashedPassword),
		Role:              role,
		IsVisible:         true,
		VisibleAttributes: attrs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// CheckPassword сравнивает пароль с хэшем.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Claims - данные, зашиваемые в JWT токен.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsAdmin - привилегированы ли claims.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// LoginResult - итог первого шага входа. Если у пользователя включена 2FA,
// токен не выдается: нужен второй шаг с одноразовым кодом.
type LoginResult struct {
	Token       string
	Requires2FA bool
	User        *User
}

// UserUpdate - частичное обновление учётной записи администратором.
// Незаполненные поля не трогаются.
type UserUpdate struct {
	Role              *string
	IsVisible         *bool
	VisibleAttributes AttributeVisibility
}

// IsEmpty - нет ли в обновлении ни одного поля.
func (u UserUpdate) IsEmpty() bool {
	return u.Role == nil && u.IsVisible == nil && len(u.VisibleAttributes) == 0
}
