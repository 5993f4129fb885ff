package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/store"
)

// Response is the JSON envelope of every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Step    string      `json:"step,omitempty"`
}

// StatusMapper lets a package register extra error-to-status mappings
type StatusMapper func(err error) (int, bool)

var mappers []StatusMapper

// RegisterStatus adds a mapping consulted before the defaults. Call from
// package init only.
func RegisterStatus(target error, status int) {
	mappers = append(mappers, func(err error) (int, bool) {
		if errors.Is(err, target) {
			return status, true
		}
		return 0, false
	})
}

// StatusOf maps an error to an HTTP status code
func StatusOf(err error) int {
	for _, m := range mappers {
		if status, ok := m(err); ok {
			return status
		}
	}
	switch {
	case apperr.IsValidation(err), errors.Is(err, store.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondJSON writes payload with status
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondOK writes a success envelope
func RespondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// RespondError writes a failure envelope. Internal errors are logged and
// their details hidden from the client.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Request failed")
		msg = "internal server error"
	}
	RespondJSON(w, status, Response{
		Success: false,
		Error:   msg,
		Step:    apperr.FailedStep(err),
	})
}

// Decode reads a JSON body into dst
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("invalid request body: %v", err)
	}
	return nil
}

// PathID parses the {id} route variable
func PathID(r *http.Request) (uint, error) {
	return PathUint(r, "id")
}

// PathUint parses a named numeric route variable
func PathUint(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Invalid("invalid %s", name)
	}
	return uint(id), nil
}

// QueryInt parses an optional integer query parameter
func QueryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

// QueryUint parses an optional unsigned query parameter; absent gives nil
func QueryUint(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperr.Invalid("invalid %s", name)
	}
	v := uint(n)
	return &v, nil
}
