package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewProjectStorageAdapter(pool *pgxpool.Pool) *ProjectStorageAdapter {
	return &ProjectStorageAdapter{pool: pool}
}

const projectColumns = `p.id, p.project_name, p.developer_name, p.location, p.plot_size,
	p.total_towers, p.total_floors, p.possession, p.budget_min, p.budget_max,
	p.carpet_area_min, p.carpet_area_max, p.configurations, p.rate_psf_min, p.rate_psf_max,
	p.availability_status, p.notes, p.client_requirement_tags, p.google_maps_link,
	p.is_visible, p.visibility_settings, p.attributes, p.created_by, p.created_at, p.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p            domain.Project
		settingsJSON []byte
		attrsJSON    []byte
	)
	err := row.Scan(
		&p.ID, &p.ProjectName, &p.DeveloperName, &p.Location, &p.PlotSize,
		&p.TotalTowers, &p.TotalFloors, &p.Possession, &p.BudgetMin, &p.BudgetMax,
		&p.CarpetAreaMin, &p.CarpetAreaMax, &p.Configurations, &p.RatePsfMin, &p.RatePsfMax,
		&p.AvailabilityStatus, &p.Notes, &p.ClientRequirementTags, &p.GoogleMapsLink,
		&p.IsVisible, &settingsJSON, &attrsJSON, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.VisibilitySettings, err = unmarshalVisibilitySettings(settingsJSON); err != nil {
		return nil, fmt.Errorf("failed to decode visibility settings: %w", err)
	}
	if p.Attributes, err = unmarshalAttributes(attrsJSON); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	return &p, nil
}

func marshalVisibilitySettings(s domain.VisibilitySettings) []byte {
	if s == nil {
		s = domain.VisibilitySettings{}
	}
	b, _ := json.Marshal(s)
	return b
}

func unmarshalVisibilitySettings(b []byte) (domain.VisibilitySettings, error) {
	settings := domain.VisibilitySettings{}
	if len(b) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(b, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Слоты атрибутов хранятся в jsonb с ключами "1".."13".
func marshalAttributes(attrs map[int]string) []byte {
	m := make(map[string]string, len(attrs))
	for slot, value := range attrs {
		m[strconv.Itoa(slot)] = value
	}
	b, _ := json.Marshal(m)
	return b
}

func unmarshalAttributes(b []byte) (map[int]string, error) {
	attrs := map[int]string{}
	if len(b) == 0 {
		return attrs, nil
	}
	raw := map[string]string{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	for key, value := range raw {
		slot, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid attribute slot %q", key)
		}
		attrs[slot] = value
	}
	return attrs, nil
}

// FindWithFilters ищет проекты по набору фильтров с пагинацией.
func (a *ProjectStorageAdapter) FindWithFilters(ctx context.Context, filters domain.ProjectFilters, pagination domain.Pagination, isAdmin bool) (*domain.PaginatedProjects, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ProjectStorageAdapter",
		"method":    "FindWithFilters",
		"page":      pagination.Page,
		"limit":     pagination.Limit,
	})

	whereClause, args := applyProjectFilters(filters, isAdmin)

	// Два запроса (COUNT и данные) в одной транзакции
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM projects p %s", whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count projects with filters", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count projects with filters: %w", err)
	}

	if totalCount == 0 {
		return &domain.PaginatedProjects{
			Projects:     []domain.Project{},
			TotalCount:   0,
			CurrentPage:  pagination.Page,
			ItemsPerPage: pagination.Limit,
		}, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM projects p %s ORDER BY p.created_at DESC, p.id ASC LIMIT $%d OFFSET $%d",
		projectColumns, whereClause, len(args)+1, len(args)+2,
	)
	dataArgs := append(args, pagination.Limit, pagination.Offset())

	rows, err := tx.Query(ctx, dataQuery, dataArgs...)
	if err != nil {
		repoLogger.Error("Failed to find projects with filters", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to find projects with filters: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0, pagination.Limit)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := a.attachMedia(ctx, projects, isAdmin); err != nil {
		return nil, err
	}

	repoLogger.Info("Successfully found projects for page", port.Fields{
		"total_count": totalCount,
		"count":       len(projects),
	})

	return &domain.PaginatedProjects{
		Projects:     projects,
		TotalCount:   int(totalCount),
		CurrentPage:  pagination.Page,
		ItemsPerPage: pagination.Limit,
	}, nil
}

// attachMedia одним запросом подтягивает медиа для выбранных проектов.
func (a *ProjectStorageAdapter) attachMedia(ctx context.Context, projects []domain.Project, isAdmin bool) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(projects))
	index := make(map[int64]int, len(projects))
	for i := range projects {
		ids = append(ids, projects[i].ID)
		index[projects[i].ID] = i
		projects[i].Media = []domain.Media{}
	}

	query := `SELECT m.id, m.project_id, m.media_type, m.file_name, m.file_path, m.file_size,
		m.configuration, m.description, m.is_visible, m.uploaded_by, m.created_at
		FROM project_media m WHERE m.project_id = ANY($1)`
	if !isAdmin {
		query += " AND m.is_visible = true"
	}
	query += " ORDER BY m.created_at ASC, m.id ASC"

	rows, err := a.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load project media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Media
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.MediaType, &m.FileName, &m.FilePath, &m.FileSize,
			&m.Configuration, &m.Description, &m.IsVisible, &m.UploadedBy, &m.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan media: %w", err)
		}
		if i, ok := index[m.ProjectID]; ok {
			projects[i].Media = append(projects[i].Media, m)
		}
	}
	return rows.Err()
}

// GetByID возвращает проект с привязанными медиа.
func (a *ProjectStorageAdapter) GetByID(ctx context.Context, id int64, isAdmin bool) (*domain.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects p WHERE p.id = $1", projectColumns)
	if !isAdmin {
		query += " AND p.is_visible = true"
	}

	project, err := scanProject(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by id: %w", err)
	}

	page := []domain.Project{*project}
	if err := a.attachMedia(ctx, page, isAdmin); err != nil {
		return nil, err
	}
	return &page[0], nil
}

func (a *ProjectStorageAdapter) GetByIDs(ctx context.Context, ids []int64) ([]domain.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects p WHERE p.id = ANY($1) ORDER BY p.created_at DESC, p.id ASC", projectColumns)
	return a.queryProjects(ctx, query, ids)
}

func (a *ProjectStorageAdapter) ListAll(ctx context.Context, isAdmin bool) ([]domain.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects p", projectColumns)
	if !isAdmin {
		query += " WHERE p.is_visible = true"
	}
	query += " ORDER BY p.created_at DESC, p.id ASC"
	return a.queryProjects(ctx, query)
}

func (a *ProjectStorageAdapter) ListCandidates(ctx context.Context, excludeID int64, isAdmin bool) ([]domain.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects p WHERE p.id <> $1", projectColumns)
	if !isAdmin {
		query += " AND p.is_visible = true"
	}
	query += " ORDER BY p.created_at DESC, p.id ASC"
	return a.queryProjects(ctx, query, excludeID)
}

func (a *ProjectStorageAdapter) queryProjects(ctx context.Context, query string, args ...interface{}) ([]domain.Project, error) {
	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// FindNamesForDedup возвращает имена проектов, начинающиеся с candidate,
// у того же застройщика в той же локации. Сравнение без учета регистра;
// незаполненные застройщик и локация считаются пустой строкой.
func (a *ProjectStorageAdapter) FindNamesForDedup(ctx context.Context, candidate, developerName, location string) ([]string, error) {
	query := `SELECT p.project_name FROM projects p
		WHERE p.project_name ILIKE $1 || '%'
		  AND LOWER(COALESCE(p.developer_name, '')) = LOWER($2)
		  AND LOWER(COALESCE(p.location, '')) = LOWER($3)`

	rows, err := a.pool.Query(ctx, query, candidate, developerName, location)
	if err != nil {
		return nil, fmt.Errorf("failed to query names for dedup: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan project name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Create вставляет проект и возвращает его с присвоенным идентификатором.
func (a *ProjectStorageAdapter) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ProjectStorageAdapter",
		"method":    "Create",
	})

	query := `INSERT INTO projects (
			project_name, developer_name, location, plot_size, total_towers, total_floors,
			possession, budget_min, budget_max, carpet_area_min, carpet_area_max,
			configurations, rate_psf_min, rate_psf_max, availability_status, notes,
			client_requirement_tags, google_maps_link, is_visible, visibility_settings,
			attributes, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22)
		RETURNING id, created_at, updated_at`

	err := a.pool.QueryRow(ctx, query,
		project.ProjectName, project.DeveloperName, project.Location, project.PlotSize,
		project.TotalTowers, project.TotalFloors, project.Possession,
		project.BudgetMin, project.BudgetMax, project.CarpetAreaMin, project.CarpetAreaMax,
		project.Configurations, project.RatePsfMin, project.RatePsfMax,
		project.AvailabilityStatus, project.Notes, project.ClientRequirementTags,
		project.GoogleMapsLink, project.IsVisible,
		marshalVisibilitySettings(project.VisibilitySettings),
		marshalAttributes(project.Attributes), project.CreatedBy,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to insert project", err, nil)
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	if project.Media == nil {
		project.Media = []domain.Media{}
	}
	return project, nil
}

// Update собирает динамический SET только из переданных полей.
func (a *ProjectStorageAdapter) Update(ctx context.Context, id int64, update domain.ProjectUpdate, isAdmin bool) (*domain.Project, error) {
	set := make([]string, 0, 24)
	args := make([]interface{}, 0, 24)
	argId := 1

	add := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argId))
		args = append(args, value)
		argId++
	}

	if update.ProjectName != nil {
		add("project_name", strings.TrimSpace(*update.ProjectName))
	}
	if update.DeveloperName != nil {
		add("developer_name", *update.DeveloperName)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.PlotSize != nil {
		add("plot_size", *update.PlotSize)
	}
	if update.TotalTowers != nil {
		add("total_towers", *update.TotalTowers)
	}
	if update.TotalFloors != nil {
		add("total_floors", *update.TotalFloors)
	}
	if update.Possession != nil {
		add("possession", *update.Possession)
	}
	if update.BudgetMin != nil {
		add("budget_min", *update.BudgetMin)
	}
	if update.BudgetMax != nil {
		add("budget_max", *update.BudgetMax)
	}
	if update.CarpetAreaMin != nil {
		add("carpet_area_min", *update.CarpetAreaMin)
	}
	if update.CarpetAreaMax != nil {
		add("carpet_area_max", *update.CarpetAreaMax)
	}
	if update.Configurations != nil {
		add("configurations", update.Configurations)
	}
	if update.RatePsfMin != nil {
		add("rate_psf_min", *update.RatePsfMin)
	}
	if update.RatePsfMax != nil {
		add("rate_psf_max", *update.RatePsfMax)
	}
	if update.AvailabilityStatus != nil {
		add("availability_status", *update.AvailabilityStatus)
	}
	if update.Notes != nil {
		add("notes", *update.Notes)
	}
	if update.ClientRequirementTags != nil {
		add("client_requirement_tags", update.ClientRequirementTags)
	}
	if update.GoogleMapsLink != nil {
		add("google_maps_link", *update.GoogleMapsLink)
	}
	if update.IsVisible != nil {
		add("is_visible", *update.IsVisible)
	}

	// Карты настроек объединяются с уже сохраненными, а не замещают их
	if len(update.VisibilitySettings) > 0 {
		set = append(set, fmt.Sprintf("visibility_settings = visibility_settings || $%d::jsonb", argId))
		args = append(args, marshalVisibilitySettings(update.VisibilitySettings))
		argId++
	}
	if isAdmin && len(update.Attributes) > 0 {
		set = append(set, fmt.Sprintf("attributes = attributes || $%d::jsonb", argId))
		args = append(args, marshalAttributes(update.Attributes))
		argId++
	}

	set = append(set, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE projects AS p SET %s WHERE p.id = $%d RETURNING %s",
		strings.Join(set, ", "), argId, projectColumns,
	)
	args = append(args, id)

	project, err := scanProject(a.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	page := []domain.Project{*project}
	if err := a.attachMedia(ctx, page, true); err != nil {
		return nil, err
	}
	return &page[0], nil
}

// SetVisibility меняет флаг записи и/или карту видимости полей.
func (a *ProjectStorageAdapter) SetVisibility(ctx context.Context, id int64, recordVisible *bool, settings domain.VisibilitySettings) (*domain.Project, error) {
	set := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	argId := 1

	if recordVisible != nil {
		set = append(set, fmt.Sprintf("is_visible = $%d", argId))
		args = append(args, *recordVisible)
		argId++
	}
	if len(settings) > 0 {
		set = append(set, fmt.Sprintf("visibility_settings = visibility_settings || $%d::jsonb", argId))
		args = append(args, marshalVisibilitySettings(settings))
		argId++
	}
	set = append(set, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE projects AS p SET %s WHERE p.id = $%d RETURNING %s",
		strings.Join(set, ", "), argId, projectColumns,
	)
	args = append(args, id)

	project, err := scanProject(a.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project visibility: %w", err)
	}

	page := []domain.Project{*project}
	if err := a.attachMedia(ctx, page, true); err != nil {
		return nil, err
	}
	return &page[0], nil
}

// Delete удаляет проект; медиазаписи уходят каскадом, их файлы
// возвращаются вызывающему для зачистки на диске.
func (a *ProjectStorageAdapter) Delete(ctx context.Context, id int64) ([]string, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, "SELECT m.file_path FROM project_media m WHERE m.project_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to collect media paths: %w", err)
	}
	filePaths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan media path: %w", err)
		}
		filePaths = append(filePaths, path)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read media paths: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrProjectNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return filePaths, nil
}
