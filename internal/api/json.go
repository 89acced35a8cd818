package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"d2dsearch/internal/model"
)

// Problem represents an RFC7807 problem details response body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail, instance string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

// writeError maps an engine error onto a problem response.
func writeError(w http.ResponseWriter, r *http.Request, title string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		writeProblem(w, http.StatusBadRequest, title, err.Error(), r.URL.Path)
	case errors.Is(err, model.ErrDomain):
		writeProblem(w, http.StatusUnprocessableEntity, title, err.Error(), r.URL.Path)
	default:
		writeProblem(w, http.StatusInternalServerError, title, err.Error(), r.URL.Path)
	}
}

// decodeJSON reads a POST body into v, answering the problem itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "", r.URL.Path)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return false
	}
	return true
}

const maxBodyBytes = 8 << 20
