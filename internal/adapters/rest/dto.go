package rest

import (
	"fmt"
	"strconv"
	"time"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// --- Проекты ---

type projectResponse struct {
	ID                    int64             `json:"id"`
	ProjectName           string            `json:"project_name"`
	DeveloperName         *string           `json:"developer_name"`
	Location              *string           `json:"location"`
	PlotSize              *string           `json:"plot_size"`
	TotalTowers           *int              `json:"total_towers"`
	TotalFloors           *int              `json:"total_floors"`
	Possession            *string           `json:"possession"`
	BudgetMin             *float64          `json:"budget_min"`
	BudgetMax             *float64          `json:"budget_max"`
	CarpetAreaMin         *int              `json:"carpet_area_min"`
	CarpetAreaMax         *int              `json:"carpet_area_max"`
	Configurations        []string          `json:"configurations"`
	RatePsfMin            *float64          `json:"rate_psf_min"`
	RatePsfMax            *float64          `json:"rate_psf_max"`
	AvailabilityStatus    *string           `json:"availability_status"`
	Notes                 *string           `json:"notes"`
	ClientRequirementTags []string          `json:"client_requirement_tags"`
	GoogleMapsLink        *string           `json:"google_maps_link"`
	IsVisible             bool              `json:"is_visible"`
	VisibilitySettings    map[string]bool   `json:"visibility_settings"`
	Attributes            map[string]string `json:"attributes"`
	CreatedBy             *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
	Media                 []mediaResponse   `json:"media"`
}

func toProjectResponse(p domain.Project) projectResponse {
	settings := make(map[string]bool, len(p.VisibilitySettings))
	for field, visible := range p.VisibilitySettings {
		settings[string(field)] = visible
	}
	attrs := make(map[string]string, len(p.Attributes))
	for slot, value := range p.Attributes {
		attrs[strconv.Itoa(slot)] = value
	}
	media := make([]mediaResponse, 0, len(p.Media))
	for _, m := range p.Media {
		media = append(media, toMediaResponse(m))
	}

	configurations := p.Configurations
	if configurations == nil {
		configurations = []string{}
	}
	tags := p.ClientRequirementTags
	if tags == nil {
		tags = []string{}
	}

	return projectResponse{
		ID:                    p.ID,
		ProjectName:           p.ProjectName,
		DeveloperName:         p.DeveloperName,
		Location:              p.Location,
		PlotSize:              p.PlotSize,
		TotalTowers:           p.TotalTowers,
		TotalFloors:           p.TotalFloors,
		Possession:            p.Possession,
		BudgetMin:             p.BudgetMin,
		BudgetMax:             p.BudgetMax,
		CarpetAreaMin:         p.CarpetAreaMin,
		CarpetAreaMax:         p.CarpetAreaMax,
		Configurations:        configurations,
		RatePsfMin:            p.RatePsfMin,
		RatePsfMax:            p.RatePsfMax,
		AvailabilityStatus:    p.AvailabilityStatus,
		Notes:                 p.Notes,
		ClientRequirementTags: tags,
		GoogleMapsLink:        p.GoogleMapsLink,
		IsVisible:             p.IsVisible,
		VisibilitySettings:    settings,
		Attributes:            attrs,
		CreatedBy:             p.CreatedBy,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
		Media:                 media,
	}
}

type paginatedProjectsResponse struct {
	Projects     []projectResponse `json:"projects"`
	TotalCount   int               `json:"total_count"`
	CurrentPage  int               `json:"current_page"`
	ItemsPerPage int               `json:"items_per_page"`
}

func toPaginatedProjectsResponse(result *domain.PaginatedProjects) paginatedProjectsResponse {
	projects := make([]projectResponse, 0, len(result.Projects))
	for _, p := range result.Projects {
		projects = append(projects, toProjectResponse(p))
	}
	return paginatedProjectsResponse{
		Projects:     projects,
		TotalCount:   result.TotalCount,
		CurrentPage:  result.CurrentPage,
		ItemsPerPage: result.ItemsPerPage,
	}
}

type scoredProjectResponse struct {
	Project projectResponse `json:"project"`
	Score   int             `json:"score"`
}

type projectPayload struct {
	ProjectName           string            `json:"project_name"`
	DeveloperName         *string           `json:"developer_name"`
	Location              *string           `json:"location"`
	PlotSize              *string           `json:"plot_size"`
	TotalTowers           *int              `json:"total_towers"`
	TotalFloors           *int              `json:"total_floors"`
	Possession            *string           `json:"possession"`
	BudgetMin             *float64          `json:"budget_min"`
	BudgetMax             *float64          `json:"budget_max"`
	CarpetAreaMin         *int              `json:"carpet_area_min"`
	CarpetAreaMax         *int              `json:"carpet_area_max"`
	Configurations        []string          `json:"configurations"`
	RatePsfMin            *float64          `json:"rate_psf_min"`
	RatePsfMax            *float64          `json:"rate_psf_max"`
	AvailabilityStatus    *string           `json:"availability_status"`
	Notes                 *string           `json:"notes"`
	ClientRequirementTags []string          `json:"client_requirement_tags"`
	GoogleMapsLink        *string           `json:"google_maps_link"`
	Attributes            map[string]string `json:"attributes"`
}

// toDomainProject собирает новый проект из тела запроса на создание.
func (req projectPayload) toDomainProject(createdBy uuid.UUID, isAdmin bool) (*domain.Project, error) {
	p := domain.NewProject(req.ProjectName, createdBy)
	p.DeveloperName = req.DeveloperName
	p.Location = req.Location
	p.PlotSize = req.PlotSize
	p.TotalTowers = req.TotalTowers
	p.TotalFloors = req.TotalFloors
	p.Possession = req.Possession
	p.BudgetMin = req.BudgetMin
	p.BudgetMax = req.BudgetMax
	p.CarpetAreaMin = req.CarpetAreaMin
	p.CarpetAreaMax = req.CarpetAreaMax
	p.RatePsfMin = req.RatePsfMin
	p.RatePsfMax = req.RatePsfMax
	p.Notes = req.Notes
	p.GoogleMapsLink = req.GoogleMapsLink
	if len(req.Configurations) > 0 {
		p.Configurations = req.Configurations
	}
	if len(req.ClientRequirementTags) > 0 {
		p.ClientRequirementTags = req.ClientRequirementTags
	}
	if req.AvailabilityStatus != nil {
		p.AvailabilityStatus = req.AvailabilityStatus
	}
	if isAdmin && len(req.Attributes) > 0 {
		attrs, err := parseAttributes(req.Attributes)
		if err != nil {
			return nil, err
		}
		p.Attributes = attrs
	}
	return p, nil
}

type projectUpdatePayload struct {
	ProjectName           *string           `json:"project_name"`
	DeveloperName         *string           `json:"developer_name"`
	Location              *string           `json:"location"`
	PlotSize              *string           `json:"plot_size"`
	TotalTowers           *int              `json:"total_towers"`
	TotalFloors           *int              `json:"total_floors"`
	Possession            *string           `json:"possession"`
	BudgetMin             *float64          `json:"budget_min"`
	BudgetMax             *float64          `json:"budget_max"`
	CarpetAreaMin         *int              `json:"carpet_area_min"`
	CarpetAreaMax         *int              `json:"carpet_area_max"`
	Configurations        []string          `json:"configurations"`
	RatePsfMin            *float64          `json:"rate_psf_min"`
	RatePsfMax            *float64          `json:"rate_psf_max"`
	AvailabilityStatus    *string           `json:"availability_status"`
	Notes                 *string           `json:"notes"`
	ClientRequirementTags []string          `json:"client_requirement_tags"`
	GoogleMapsLink        *string           `json:"google_maps_link"`
	IsVisible             *bool             `json:"is_visible"`
	VisibilitySettings    map[string]bool   `json:"visibility_settings"`
	Attributes            map[string]string `json:"attributes"`
}

func (req projectUpdatePayload) toDomainUpdate() (domain.ProjectUpdate, error) {
	update := domain.ProjectUpdate{
		ProjectName:           req.ProjectName,
		DeveloperName:         req.DeveloperName,
		Location:              req.Location,
		PlotSize:              req.PlotSize,
		TotalTowers:           req.TotalTowers,
		TotalFloors:           req.TotalFloors,
		Possession:            req.Possession,
		BudgetMin:             req.BudgetMin,
		BudgetMax:             req.BudgetMax,
		CarpetAreaMin:         req.CarpetAreaMin,
		CarpetAreaMax:         req.CarpetAreaMax,
		Configurations:        req.Configurations,
		RatePsfMin:            req.RatePsfMin,
		RatePsfMax:            req.RatePsfMax,
		AvailabilityStatus:    req.AvailabilityStatus,
		Notes:                 req.Notes,
		ClientRequirementTags: req.ClientRequirementTags,
		GoogleMapsLink:        req.GoogleMapsLink,
		IsVisible:             req.IsVisible,
	}

	if len(req.VisibilitySettings) > 0 {
		settings, err := domain.ValidateVisibilitySettings(req.VisibilitySettings)
		if err != nil {
			return domain.ProjectUpdate{}, err
		}
		update.VisibilitySettings = settings
	}
	if len(req.Attributes) > 0 {
		attrs, err := parseAttributes(req.Attributes)
		if err != nil {
			return domain.ProjectUpdate{}, err
		}
		update.Attributes = attrs
	}
	return update, nil
}

func parseAttributes(raw map[string]string) (map[int]string, error) {
	attrs := make(map[int]string, len(raw))
	for key, value := range raw {
		slot, err := strconv.Atoi(key)
		if err != nil || slot < 1 || slot > domain.AttributeSlotCount {
			return nil, fmt.Errorf("%w: invalid attribute slot %q", domain.ErrValidation, key)
		}
		attrs[slot] = value
	}
	return attrs, nil
}

type visibilityPayload struct {
	IsVisible          *bool           `json:"is_visible"`
	VisibilitySettings map[string]bool `json:"visibility_settings"`
}

type bulkDeletePayload struct {
	IDs []int64 `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// --- Медиа ---

type mediaResponse struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	MediaType     string    `json:"media_type"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	Configuration *string   `json:"configuration"`
	Description   *string   `json:"description"`
	IsVisible     bool      `json:"is_visible"`
	CreatedAt     time.Time `json:"created_at"`
}

func toMediaResponse(m domain.Media) mediaResponse {
	return mediaResponse{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		MediaType:     string(m.MediaType),
		FileName:      m.FileName,
		FileSize:      m.FileSize,
		Configuration: m.Configuration,
		Description:   m.Description,
		IsVisible:     m.IsVisible,
		CreatedAt:     m.CreatedAt,
	}
}

type mediaVisibilityPayload struct {
	IsVisible bool `json:"is_visible"`
}

// --- Аутентификация и пользователи ---

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyTOTPPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type totpCodePayload struct {
	Code string `json:"code"`
}

type loginResponse struct {
	Token       string        `json:"token,omitempty"`
	Requires2FA bool          `json:"requires_2fa"`
	User        *userResponse `json:"user,omitempty"`
}

func toLoginResponse(result *domain.LoginResult) loginResponse {
	resp := loginResponse{
		Token:       result.Token,
		Requires2FA: result.Requires2FA,
	}
	if result.User != nil {
		user := toUserResponse(*result.User)
		resp.User = &user
	}
	return resp
}

type userResponse struct {
	ID                uuid.UUID       `json:"id"`
	Email             string          `json:"email"`
	Name              string          `json:"name"`
	Role              string          `json:"role"`
	TwoFactorEnabled  bool            `json:"two_factor_enabled"`
	IsVisible         bool            `json:"is_visible"`
	VisibleAttributes map[string]bool `json:"visible_attributes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toUserResponse(u domain.User) userResponse {
	attrs := make(map[string]bool, len(u.VisibleAttributes))
	for slot, visible := range u.VisibleAttributes {
		attrs[strconv.Itoa(slot)] = visible
	}
	return userResponse{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		TwoFactorEnabled:  u.TwoFactorEnabled,
		IsVisible:         u.IsVisible,
		VisibleAttributes: attrs,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

type createUserPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type updateUserPayload struct {
	Role              *string         `json:"role"`
	IsVisible         *bool           `json:"is_visible"`
	VisibleAttributes map[string]bool `json:"visible_attributes"`
}

type totpSetupResponse struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}
