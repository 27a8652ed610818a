package httpapi

import (
	"net/http"
	"time"

	"hogwarts.org/internal/audit"
)

// handleLogin exchanges HTTP Basic credentials for a bearer token. The
// whitelist entry written here is what keeps the token live.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusUnauthorized, "username or password is incorrect")
		return
	}

	res, err := a.auth.Login(r.Context(), username, password)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"user_id":    res.Account.ID,
		"username":   res.Account.Username,
		"expires_at": res.ExpiresAt.UTC().Format(time.RFC3339),
	})

	writeResult(w, "User Info and JSON Web Token", map[string]any{
		"userInfo": map[string]any{
			"id":       res.Account.ID,
			"username": res.Account.Username,
			"enabled":  res.Account.Enabled,
			"roles":    res.Account.Roles,
		},
		"token": res.Token,
	})
}
