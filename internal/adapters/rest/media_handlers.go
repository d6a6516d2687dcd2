package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type MediaHandler struct {
	uploadUC     usecases_port.UploadMediaUseCase
	deleteUC     usecases_port.DeleteMediaUseCase
	downloadUC   usecases_port.DownloadMediaUseCase
	visibilityUC usecases_port.SetMediaVisibilityUseCase
}

func NewMediaHandler(
	uploadUC usecases_port.UploadMediaUseCase,
	deleteUC usecases_port.DeleteMediaUseCase,
	downloadUC usecases_port.DownloadMediaUseCase,
	visibilityUC usecases_port.SetMediaVisibilityUseCase,
) *MediaHandler {
	return &MediaHandler{
		uploadUC:     uploadUC,
		deleteUC:     deleteUC,
		downloadUC:   downloadUC,
		visibilityUC: visibilityUC,
	}
}

func mediaIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "mediaID"), 10, 64)
}

// UploadMedia обрабатывает POST /projects/{projectID}/media (multipart)
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "A file is required")
		return
	}
	defer file.Close()

	upload := domain.MediaUpload{
		ProjectID: projectID,
		MediaType: r.FormValue("media_type"),
		FileName:  header.Filename,
		Content:   file,
	}
	if v := r.FormValue("configuration"); v != "" {
		upload.Configuration = &v
	}
	if v := r.FormValue("description"); v != "" {
		upload.Description = &v
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	created, err := h.uploadUC.Execute(r.Context(), upload, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toMediaResponse(*created))
}

// DownloadMedia обрабатывает GET /media/{mediaID}/download
func (h *MediaHandler) DownloadMedia(w http.ResponseWriter, r *http.Request) {
	id, err := mediaIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid media ID")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	media, content, err := h.downloadUC.Execute(r.Context(), id, claims)
	if err != nil {
		respondWithError(w, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", media.FileName))
	http.ServeContent(w, r, media.FileName, media.CreatedAt, content)
}

// DeleteMedia обрабатывает DELETE /media/{mediaID}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := mediaIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid media ID")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	if err := h.deleteUC.Execute(r.Context(), id, *claims); err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SetMediaVisibility обрабатывает PATCH /media/{mediaID}/visibility
func (h *MediaHandler) SetMediaVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := mediaIDParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid media ID")
		return
	}

	var payload mediaVisibilityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	updated, err := h.visibilityUC.Execute(r.Context(), id, payload.IsVisible, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toMediaResponse(*updated))
}
