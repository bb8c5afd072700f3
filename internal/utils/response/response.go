// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client. Error
// responses always share one envelope so API consumers know what to expect.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aanand-mishra/school-api/internal/storage"
	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "field Name is required" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts validator.ValidationErrors into a single
// human-readable Response, one sentence per failing field:
//
//	{ "status": "error", "error": "field Name is required, field Age is invalid" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// StatusCode picks the HTTP status for an error coming out of storage.
//
//	storage.ErrNotFound       → 404
//	storage.ErrDuplicateEmail → 409
//	anything else             → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// StorageError writes err with the status chosen by StatusCode. Known
// storage errors are reported by their sentinel message only, so driver
// details stay in the logs.
func StorageError(w http.ResponseWriter, err error) {
	status := StatusCode(err)

	switch status {
	case http.StatusNotFound:
		err = storage.ErrNotFound
	case http.StatusConflict:
		err = storage.ErrDuplicateEmail
	}

	WriteJSON(w, status, GeneralError(err))
}

// DecodeAndValidate reads a JSON body into v and runs the validate tags.
// On failure it writes the 400 response itself and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		WriteJSON(w, http.StatusBadRequest,
			GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, GeneralError(err))
		return false
	}

	if err := validator.New().Struct(v); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			WriteJSON(w, http.StatusBadRequest, ValidationError(validateErrs))
		} else {
			WriteJSON(w, http.StatusBadRequest, GeneralError(err))
		}
		return false
	}

	return true
}
