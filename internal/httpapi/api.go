package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"hogwarts.org/api/spec"
	"hogwarts.org/internal/artifact"
	"hogwarts.org/internal/auth"
	"hogwarts.org/internal/obs"
	"hogwarts.org/internal/stream"
	"hogwarts.org/internal/user"
	"hogwarts.org/internal/wizard"
)

const basePath = "/api/v1"

// ReadyProbe is a readiness check (DB ping when a database is wired).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Services bundles the domain services the HTTP layer fronts.
type Services struct {
	Auth      *auth.Service
	Users     *user.Service
	Wizards   *wizard.Service
	Artifacts *artifact.Service
	Stream    *stream.Stream
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	auth      *auth.Service
	users     *user.Service
	wizards   *wizard.Service
	artifacts *artifact.Service
	stream    *stream.Stream

	rateBurst  int
	ratePerSec int
}

func New(rp ReadyProbe, version string, svcs Services) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		auth:       svcs.Auth,
		users:      svcs.Users,
		wizards:    svcs.Wizards,
		artifacts:  svcs.Artifacts,
		stream:     svcs.Stream,
		rateBurst:  50,
		ratePerSec: 25,
	}

	// health/ready
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)

	// OpenAPI YAML
	a.mux.HandleFunc("/openapi.yaml", a.OpenAPISpec)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// domain routes
	a.mux.HandleFunc(basePath+"/users/login", a.handleLogin)
	a.mux.HandleFunc(basePath+"/users", a.handleUsersCollection)
	a.mux.HandleFunc(basePath+"/users/", a.handleUserResource)
	a.mux.HandleFunc(basePath+"/wizards", a.handleWizardsCollection)
	a.mux.HandleFunc(basePath+"/wizards/", a.handleWizardResource)
	a.mux.HandleFunc(basePath+"/artifacts", a.handleArtifactsCollection)
	a.mux.HandleFunc(basePath+"/artifacts/summary", a.handleArtifactSummary)
	a.mux.HandleFunc(basePath+"/artifacts/search", a.handleArtifactSearch)
	a.mux.HandleFunc(basePath+"/artifacts/", a.handleArtifactResource)
	a.mux.HandleFunc(basePath+"/events", a.Stream)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "This API endpoint is not found.")
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.withAuth(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "hogwarts-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}
