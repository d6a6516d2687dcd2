package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepositoryAdapter struct {
	pool *pgxpool.Pool
}

func NewUserRepositoryAdapter(pool *pgxpool.Pool) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{pool: pool}
}

const userColumns = `u.id, u.email, u.name, u.password_hash, u.role,
	u.two_factor_enabled, u.two_factor_secret, u.is_visible, u.visible_attributes,
	u.created_at, u.updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		attrsJSON []byte
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.TwoFactorEnabled, &u.TwoFactorSecret, &u.IsVisible, &attrsJSON,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.VisibleAttributes, err = unmarshalAttributeVisibility(attrsJSON); err != nil {
		return nil, fmt.Errorf("failed to decode visible attributes: %w", err)
	}
	return &u, nil
}

// Разрешения на слоты атрибутов хранятся в jsonb с ключами "1".."13".
func marshalAttributeVisibility(attrs domain.AttributeVisibility) []byte {
	m := make(map[string]bool, len(attrs))
	for slot, visible := range attrs {
		m[strconv.Itoa(slot)] = visible
	}
	b, _ := json.Marshal(m)
	return b
}

func unmarshalAttributeVisibility(b []byte) (domain.AttributeVisibility, error) {
	attrs := domain.AttributeVisibility{}
	if len(b) == 0 {
		return attrs, nil
	}
	raw := map[string]bool{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	for key, visible := range raw {
		slot, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid attribute slot %q", key)
		}
		attrs[slot] = visible
	}
	return attrs, nil
}

func (a *UserRepositoryAdapter) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (
			id, email, name, password_hash, role, two_factor_enabled,
			is_visible, visible_attributes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := a.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role,
		user.TwoFactorEnabled, user.IsVisible,
		marshalAttributeVisibility(user.VisibleAttributes),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindByEmail возвращает (nil, nil), если пользователь не найден.
func (a *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE u.email = $1", userColumns)

	user, err := scanUser(a.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID возвращает (nil, nil), если пользователь не найден.
func (a *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE u.id = $1", userColumns)

	user, err := scanUser(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user, nil
}

func (a *UserRepositoryAdapter) List(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u ORDER BY u.created_at ASC", userColumns)

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (a *UserRepositoryAdapter) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*domain.User, error) {
	query := fmt.Sprintf(
		"UPDATE users AS u SET role = $1, updated_at = NOW() WHERE u.id = $2 RETURNING %s",
		userColumns,
	)
	return a.returningUser(ctx, query, role, id)
}

func (a *UserRepositoryAdapter) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*domain.User, error) {
	query := fmt.Sprintf(
		"UPDATE users AS u SET is_visible = $1, updated_at = NOW() WHERE u.id = $2 RETURNING %s",
		userColumns,
	)
	return a.returningUser(ctx, query, visible, id)
}

// UpdateVisibleAttributes объединяет переданные слоты с сохраненными.
func (a *UserRepositoryAdapter) UpdateVisibleAttributes(ctx context.Context, id uuid.UUID, attrs domain.AttributeVisibility) (*domain.User, error) {
	query := fmt.Sprintf(
		"UPDATE users AS u SET visible_attributes = visible_attributes || $1::jsonb, updated_at = NOW() WHERE u.id = $2 RETURNING %s",
		userColumns,
	)
	return a.returningUser(ctx, query, marshalAttributeVisibility(attrs), id)
}

func (a *UserRepositoryAdapter) SetTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string) error {
	tag, err := a.pool.Exec(ctx,
		"UPDATE users SET two_factor_secret = $1, updated_at = NOW() WHERE id = $2",
		secret, id,
	)
	if err != nil {
		return fmt.Errorf("failed to store totp secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetTwoFactorEnabled включает/выключает 2FA; при выключении секрет стирается.
func (a *UserRepositoryAdapter) SetTwoFactorEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	query := "UPDATE users SET two_factor_enabled = $1, updated_at = NOW() WHERE id = $2"
	if !enabled {
		query = "UPDATE users SET two_factor_enabled = $1, two_factor_secret = NULL, updated_at = NOW() WHERE id = $2"
	}

	tag, err := a.pool.Exec(ctx, query, enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update totp state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (a *UserRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := a.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (a *UserRepositoryAdapter) returningUser(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	user, err := scanUser(a.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
