package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hogwarts.org/internal/artifact"
)

type artifactRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type searchArtifactsRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *API) handleArtifactsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit, offset, err := paging(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		artifacts, err := a.artifacts.FindAll(r.Context(), limit, offset)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Find All Success", artifactViews(artifacts))

	case http.MethodPost:
		var req artifactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := a.artifacts.Create(r.Context(), req.Name, req.Description, req.ImageURL)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Add Success", created.View())

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleArtifactResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, basePath+"/artifacts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "This API endpoint is not found.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		found, err := a.artifacts.FindByID(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Find One Success", found.View())

	case http.MethodPut:
		var req artifactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := a.artifacts.Update(r.Context(), id, req.Name, req.Description, req.ImageURL)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Update Success", updated.View())

	case http.MethodDelete:
		if err := a.artifacts.Delete(r.Context(), id); err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Delete Success", nil)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) handleArtifactSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	summary, err := a.artifacts.Summarize(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeResult(w, "Summarize Success", summary)
}

func (a *API) handleArtifactSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	limit, offset, err := paging(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req searchArtifactsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	matches, err := a.artifacts.FindByCriteria(r.Context(), artifact.Criteria{
		Name:        req.Name,
		Description: req.Description,
	}, limit, offset)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeResult(w, "Search Success", artifactViews(matches))
}

func artifactViews(artifacts []artifact.Artifact) []artifact.View {
	views := make([]artifact.View, 0, len(artifacts))
	for _, a := range artifacts {
		views = append(views, a.View())
	}
	return views
}

func paging(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	limit, err = positiveInt(q.Get("limit"), 20)
	if err != nil {
		return 0, 0, errors.New("limit must be a positive integer")
	}
	offset, err = positiveInt(q.Get("offset"), 0)
	if err != nil {
		return 0, 0, errors.New("offset must be a non-negative integer")
	}
	return limit, offset, nil
}

func positiveInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0, errors.New("invalid integer")
	}
	return val, nil
}
