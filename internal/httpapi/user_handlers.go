package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"hogwarts.org/internal/audit"
	"hogwarts.org/internal/auth"
	"hogwarts.org/internal/user"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Enabled  bool   `json:"enabled"`
	Roles    string `json:"roles"`
}

type updateUserRequest struct {
	Username string  `json:"username"`
	Enabled  *bool   `json:"enabled,omitempty"`
	Roles    *string `json:"roles,omitempty"`
}

type changePasswordRequest struct {
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, invalidTokenMessage)
		return
	}

	switch r.Method {
	case http.MethodGet:
		users, err := a.users.FindAll(r.Context(), actor)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		views := make([]user.View, 0, len(users))
		for _, u := range users {
			views = append(views, u.View())
		}
		writeResult(w, "Find All Success", views)

	case http.MethodPost:
		var req createUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		u, err := a.users.Create(r.Context(), actor, req.Username, req.Password, req.Roles, req.Enabled)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "user.created", map[string]any{
			"target_id": u.ID,
			"target":    u.Username,
			"roles":     u.Roles,
		})
		writeResult(w, "Add Success", u.View())

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, invalidTokenMessage)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, basePath+"/users/")
	if rest, found := strings.CutSuffix(path, "/password"); found {
		a.changePassword(w, r, actor, rest)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusNotFound, "This API endpoint is not found.")
		return
	}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id must be an integer")
		return
	}

	switch r.Method {
	case http.MethodGet:
		u, err := a.users.FindByID(r.Context(), actor, id)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeResult(w, "Find One Success", u.View())

	case http.MethodPut:
		var req updateUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		u, err := a.users.Update(r.Context(), actor, id, user.Update{
			Username: req.Username,
			Enabled:  req.Enabled,
			Roles:    req.Roles,
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "user.updated", map[string]any{
			"target_id": u.ID,
			"target":    u.Username,
		})
		writeResult(w, "Update Success", u.View())

	case http.MethodDelete:
		if err := a.users.Delete(r.Context(), actor, id); err != nil {
			handleDomainError(w, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "user.deleted", map[string]any{"target_id": id})
		writeResult(w, "Delete Success", nil)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) changePassword(w http.ResponseWriter, r *http.Request, actor auth.Principal, rawID string) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, http.MethodPatch)
		return
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(rawID, "/"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id must be an integer")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.users.ChangePassword(r.Context(), actor, id, req.OldPassword, req.NewPassword, req.ConfirmNewPassword); err != nil {
		handleDomainError(w, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "user.password_changed", map[string]any{"target_id": id})
	writeResult(w, "Change Password Success", nil)
}
