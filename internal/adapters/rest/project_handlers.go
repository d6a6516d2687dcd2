package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/contracts"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ProjectHandler struct {
	searchUC     usecases_port.SearchProjectsUseCase
	getUC        usecases_port.GetProjectUseCase
	createUC     usecases_port.CreateProjectUseCase
	updateUC     usecases_port.UpdateProjectUseCase
	deleteUC     usecases_port.DeleteProjectUseCase
	bulkDeleteUC usecases_port.BulkDeleteProjectsUseCase
	importUC     usecases_port.BulkImportProjectsUseCase
	exportUC     usecases_port.ExportProjectsUseCase
	similarUC    usecases_port.FindSimilarProjectsUseCase
	visibilityUC usecases_port.SetProjectVisibilityUseCase
}

func NewProjectHandler(
	searchUC usecases_port.SearchProjectsUseCase,
	getUC usecases_port.GetProjectUseCase,
	createUC usecases_port.CreateProjectUseCase,
	updateUC usecases_port.UpdateProjectUseCase,
	deleteUC usecases_port.DeleteProjectUseCase,
	bulkDeleteUC usecases_port.BulkDeleteProjectsUseCase,
	importUC usecases_port.BulkImportProjectsUseCase,
	exportUC usecases_port.ExportProjectsUseCase,
	similarUC usecases_port.FindSimilarProjectsUseCase,
	visibilityUC usecases_port.SetProjectVisibilityUseCase,
) *ProjectHandler {
	return &ProjectHandler{
		searchUC:     searchUC,
		getUC:        getUC,
		createUC:     createUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
		bulkDeleteUC: bulkDeleteUC,
		importUC:     importUC,
		exportUC:     exportUC,
		similarUC:    similarUC,
		visibilityUC: visibilityUC,
	}
}

func parseProjectFilters(r *http.Request) (domain.ProjectFilters, error) {
	filters := domain.ProjectFilters{
		ProjectName:          r.URL.Query().Get("project_name"),
		DeveloperName:        r.URL.Query().Get("developer_name"),
		DevelopersAnd:        queryList(r, "developers_and"),
		DevelopersOr:         queryList(r, "developers_or"),
		Location:             r.URL.Query().Get("location"),
		LocationsAnd:         queryList(r, "locations_and"),
		LocationsOr:          queryList(r, "locations_or"),
		Configurations:       queryList(r, "configurations"),
		ConfigurationsAnd:    queryList(r, "configurations_and"),
		AvailabilityStatus:   r.URL.Query().Get("availability_status"),
		AvailabilityStatuses: queryList(r, "availability_statuses"),
		ClientTags:           queryList(r, "client_tags"),
	}

	var err error
	if filters.BudgetMin, err = queryFloat(r, "budget_min"); err != nil {
		return filters, fmt.Errorf("budget_min: %w", err)
	}
	if filters.BudgetMax, err = queryFloat(r, "budget_max"); err != nil {
		return filters, fmt.Errorf("budget_max: %w", err)
	}
	if filters.CarpetAreaMin, err = queryInt(r, "carpet_area_min"); err != nil {
		return filters, fmt.Errorf("carpet_area_min: %w", err)
	}
	if filters.CarpetAreaMax, err = queryInt(r, "carpet_area_max"); err != nil {
		return filters, fmt.Errorf("carpet_area_max: %w", err)
	}
	if filters.RatePsfMin, err = queryFloat(r, "rate_psf_min"); err != nil {
		return filters, fmt.Errorf("rate_psf_min: %w", err)
	}
	if filters.RatePsfMax, err = queryFloat(r, "rate_psf_max"); err != nil {
		return filters, fmt.Errorf("rate_psf_max: %w", err)
	}
	return filters, nil
}

func projectIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
}

// FindProjects обрабатывает GET /projects
func (h *ProjectHandler) FindProjects(w http.ResponseWriter, r *http.Request) {
	filters, err := parseProjectFilters(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := GetPageOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'page' parameter")
		return
	}
	limit, err := GetLimitOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	result, err := h.searchUC.Execute(r.Context(), filters, domain.Pagination{Page: page, Limit: limit}, claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPaginatedProjectsResponse(result))
}

// GetProject обрабатывает GET /projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	project, err := h.getUC.Execute(r.Context(), id, claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProjectResponse(*project))
}

// CreateProject обрабатывает POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	project, err := payload.toDomainProject(claims.UserID, claims.IsAdmin())
	if err != nil {
		respondWithError(w, err)
		return
	}

	created, err := h.createUC.Execute(r.Context(), project, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toProjectResponse(*created))
}

// UpdateProject обрабатывает PUT /projects/{projectID}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var payload projectUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update, err := payload.toDomainUpdate()
	if err != nil {
		respondWithError(w, err)
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	updated, err := h.updateUC.Execute(r.Context(), id, update, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProjectResponse(*updated))
}

// DeleteProject обрабатывает DELETE /projects/{projectID}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	if err := h.deleteUC.Execute(r.Context(), id, *claims); err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// BulkDeleteProjects обрабатывает POST /projects/bulk-delete
func (h *ProjectHandler) BulkDeleteProjects(w http.ResponseWriter, r *http.Request) {
	var payload bulkDeletePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	deleted, err := h.bulkDeleteUC.Execute(r.Context(), payload.IDs, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, bulkDeleteResponse{Deleted: deleted})
}

// ImportProjects обрабатывает POST /projects/import (multipart, поле "file")
func (h *ProjectHandler) ImportProjects(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "A workbook file is required")
		return
	}
	defer file.Close()

	claims := contextkeys.ClaimsFromContext(r.Context())
	result, err := h.importUC.Execute(r.Context(), file, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

// ExportProjects обрабатывает GET /projects/export?ids=1,2,3
func (h *ProjectHandler) ExportProjects(w http.ResponseWriter, r *http.Request) {
	ids := make([]int64, 0)
	for _, raw := range queryList(r, "ids") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'ids' parameter")
			return
		}
		ids = append(ids, id)
	}

	workbook, err := h.exportUC.Execute(r.Context(), ids)
	if err != nil {
		respondWithError(w, err)
		return
	}

	serveWorkbook(w, workbook, fmt.Sprintf("projects-%s.xlsx", time.Now().Format("2006-01-02")))
}

// DownloadTemplate обрабатывает GET /projects/import/template
func (h *ProjectHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.exportUC.Template(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	serveWorkbook(w, workbook, "projects-import-template.xlsx")
}

func serveWorkbook(w http.ResponseWriter, workbook io.Reader, fileName string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	io.Copy(w, workbook)
}

// FindSimilarProjects обрабатывает GET /projects/{projectID}/similar
func (h *ProjectHandler) FindSimilarProjects(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	ranked, err := h.similarUC.Execute(r.Context(), id, claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	response := make([]scoredProjectResponse, 0, len(ranked))
	for _, scored := range ranked {
		response = append(response, scoredProjectResponse{
			Project: toProjectResponse(scored.Project),
			Score:   scored.Score,
		})
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// SetProjectVisibility обрабатывает PATCH /projects/{projectID}/visibility
func (h *ProjectHandler) SetProjectVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Тело проверяется по JSON-схеме до разбора: лишние и кривые ключи
	// отклоняются единообразно.
	if err := contracts.Validate(contracts.SchemaProjectVisibility, body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload visibilityPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	updated, err := h.visibilityUC.Execute(r.Context(), id, payload.IsVisible, payload.VisibilitySettings, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProjectResponse(*updated))
}
