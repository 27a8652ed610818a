package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"hogwarts.org/internal/audit"
	"hogwarts.org/internal/wizard"
)

type wizardRequest struct {
	Name string `json:"name"`
}

func (a *API) handleWizardsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wizards, err := a.wizards.FindAll(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}
		views := make([]wizard.View, 0, len(wizards))
		for _, wz := range wizards {
			views = append(views, wz.View())
		}
		writeResult(w, "Find All Success", views)

	case http.MethodPost:
		var req wizardRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		wz, err := a.wizards.Create(r.Context(), req.Name)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Add Success", wz.View())

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleWizardResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, basePath+"/wizards/")

	// PUT /wizards/{wid}/artifacts/{aid} — ownership reassignment.
	if before, after, found := strings.Cut(path, "/artifacts/"); found {
		a.assignArtifact(w, r, before, after)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusNotFound, "This API endpoint is not found.")
		return
	}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "wizard id must be an integer")
		return
	}

	switch r.Method {
	case http.MethodGet:
		wz, err := a.wizards.FindByID(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Find One Success", wz.View())

	case http.MethodPut:
		var req wizardRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		wz, err := a.wizards.Update(r.Context(), id, req.Name)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Update Success", wz.View())

	case http.MethodDelete:
		if err := a.wizards.Delete(r.Context(), id); err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Delete Success", nil)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) assignArtifact(w http.ResponseWriter, r *http.Request, rawWizardID, artifactID string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	wizardID, err := strconv.ParseInt(strings.TrimSuffix(rawWizardID, "/"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "wizard id must be an integer")
		return
	}
	artifactID = strings.TrimSuffix(artifactID, "/")
	if artifactID == "" {
		writeError(w, http.StatusNotFound, "This API endpoint is not found.")
		return
	}

	wz, err := a.wizards.AssignArtifact(r.Context(), wizardID, artifactID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "wizard.artifact_assigned", map[string]any{
		"wizard_id":   wz.ID,
		"artifact_id": artifactID,
	})
	writeResult(w, "Artifact Assignment Success", nil)
}
