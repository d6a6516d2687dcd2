package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// Фейки портов для юнит-тестов use case'ов.

type fakeProjectStorage struct {
	dedupNames    []string
	created       *domain.Project
	createdAll    []domain.Project
	failCreateFor string
	getByIDResult *domain.Project
	getByIDErr    error
	candidates    []domain.Project
}

func (f *fakeProjectStorage) FindWithFilters(ctx context.Context, filters domain.ProjectFilters, pagination domain.Pagination, isAdmin bool) (*domain.PaginatedProjects, error) {
	return &domain.PaginatedProjects{}, nil
}

func (f *fakeProjectStorage) GetByID(ctx context.Context, id int64, isAdmin bool) (*domain.Project, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDResult, nil
}

func (f *fakeProjectStorage) GetByIDs(ctx context.Context, ids []int64) ([]domain.Project, error) {
	return nil, nil
}

func (f *fakeProjectStorage) ListAll(ctx context.Context, isAdmin bool) ([]domain.Project, error) {
	return nil, nil
}

func (f *fakeProjectStorage) ListCandidates(ctx context.Context, excludeID int64, isAdmin bool) ([]domain.Project, error) {
	return f.candidates, nil
}

func (f *fakeProjectStorage) FindNamesForDedup(ctx context.Context, candidate, developerName, location string) ([]string, error) {
	return f.dedupNames, nil
}

func (f *fakeProjectStorage) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if f.failCreateFor != "" && project.ProjectName == f.failCreateFor {
		return nil, errors.New("insert failed")
	}
	created := *project
	created.ID = int64(42 + len(f.createdAll))
	f.createdAll = append(f.createdAll, created)
	f.created = &created
	return &created, nil
}

func (f *fakeProjectStorage) Update(ctx context.Context, id int64, update domain.ProjectUpdate, isAdmin bool) (*domain.Project, error) {
	return nil, nil
}

func (f *fakeProjectStorage) SetVisibility(ctx context.Context, id int64, recordVisible *bool, settings domain.VisibilitySettings) (*domain.Project, error) {
	return nil, nil
}

func (f *fakeProjectStorage) Delete(ctx context.Context, id int64) ([]string, error) {
	return nil, nil
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[uuid.UUID]*domain.User),
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*domain.User, error) {
	user := f.byID[id]
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Role = role
	return user, nil
}

func (f *fakeUserRepo) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*domain.User, error) {
	user := f.byID[id]
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.IsVisible = visible
	return user, nil
}

func (f *fakeUserRepo) UpdateVisibleAttributes(ctx context.Context, id uuid.UUID, attrs domain.AttributeVisibility) (*domain.User, error) {
	user := f.byID[id]
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	for slot, visible := range attrs {
		user.VisibleAttributes[slot] = visible
	}
	return user, nil
}

func (f *fakeUserRepo) SetTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string) error {
	user := f.byID[id]
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.TwoFactorSecret = &secret
	return nil
}

func (f *fakeUserRepo) SetTwoFactorEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	user := f.byID[id]
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.TwoFactorEnabled = enabled
	if !enabled {
		user.TwoFactorSecret = nil
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	user := f.byID[id]
	if user == nil {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, user.Email)
	return nil
}

type fakeWorkbook struct {
	rows      []domain.ProjectRow
	rowErrors []domain.RowError
	parseErr  error
}

func (f *fakeWorkbook) ParseRows(r io.Reader) ([]domain.ProjectRow, []domain.RowError, error) {
	if f.parseErr != nil {
		return nil, nil, f.parseErr
	}
	return f.rows, f.rowErrors, nil
}

func (f *fakeWorkbook) WriteProjects(projects []domain.Project) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

func (f *fakeWorkbook) WriteTemplate() (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

type fakeActivityLog struct {
	entries []domain.ActivityEntry
}

func (f *fakeActivityLog) Record(ctx context.Context, entry domain.ActivityEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTokenService struct{}

func (f *fakeTokenService) GenerateToken(user *domain.User) (string, error) {
	return "token-" + user.ID.String(), nil
}

func (f *fakeTokenService) ValidateToken(tokenString string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}

type fakeTOTPService struct {
	validCode string
}

func (f *fakeTOTPService) GenerateSecret(accountName string) (string, string, error) {
	return "SECRET", "otpauth://totp/test", nil
}

func (f *fakeTOTPService) Validate(code, secret string) bool {
	return code == f.validCode
}
