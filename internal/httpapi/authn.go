package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"hogwarts.org/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "

	invalidTokenMessage = "The access token provided is expired, revoked, malformed, or invalid for other reasons."
)

var publicPaths = []string{
	basePath + "/users/login",
	"/metrics",
	"/healthz",
	"/readyz",
	"/openapi.yaml",
	"/",
}

// Anonymous artifact reads are allowed; every other /api/v1 route needs a
// live token.
var publicPrefixes = []string{
	basePath + "/artifacts",
}

func (a *API) withAuth(next http.Handler) http.Handler {
	if a == nil || a.auth == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path, r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, http.StatusUnauthorized, invalidTokenMessage)
			return
		}

		principal, err := a.auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, invalidTokenMessage)
			} else {
				writeError(w, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		ctx := auth.ContextWithPrincipal(r.Context(), principal)
		ctx = auth.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path, method string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	// Anonymous reads only; artifact writes and search still need a token.
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) && method == http.MethodGet {
			return true
		}
	}
	return false
}
