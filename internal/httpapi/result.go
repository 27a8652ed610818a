package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"hogwarts.org/internal/auth"
	"hogwarts.org/internal/system"
)

// Result is the uniform response envelope. code mirrors the HTTP status so
// clients can switch on the body alone.
type Result struct {
	Flag    bool   `json:"flag"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Result{Flag: true, Code: http.StatusOK, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Result{Flag: false, Code: code, Message: message})
}

func writeErrorData(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, Result{Flag: false, Code: code, Message: message, Data: data})
}

// handleDomainError translates service-layer errors at the single HTTP
// boundary.
func handleDomainError(w http.ResponseWriter, err error) {
	var nf *system.NotFoundError
	if errors.As(err, &nf) {
		writeError(w, http.StatusNotFound, nf.Error())
		return
	}
	if ve, ok := system.AsValidation(err); ok {
		writeErrorData(w, http.StatusBadRequest, "Provided arguments are invalid, see data for details.", ve.FieldErrors)
		return
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, invalidTokenMessage)
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrOldPasswordIncorrect):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrPasswordMismatch), errors.Is(err, auth.ErrPasswordPolicy):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "A server internal error occurs.")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
