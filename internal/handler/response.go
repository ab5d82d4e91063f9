package handler

// RESPONSE HELPERS:
// These functions standardise how handlers send JSON and map domain errors
// to HTTP responses.
//
// TWO ERROR SHAPES, BOTH LOAD-BEARING:
// This API predates this implementation and clients already parse its error
// bodies, so the wire contract is preserved exactly:
//
//	validation / credential / conflict failures (400):
//	    {"errors": [{"msg": "...", "param": "..."}]}
//	auth failures (401) and not-found (400):
//	    {"msg": "..."}
//	anything unexpected (500):
//	    {"msg": "Server Error"}
//
// Note that not-found responses are 400, not 404. That is inherited
// behavior clients depend on; changing it is an API break, not a cleanup.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/devconnector/internal/apperror"
)

// fieldError is one entry in the "errors" array. param is the request field
// that failed, when known.
type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// errorList is the body shape for validation-style failures.
type errorList struct {
	Errors []fieldError `json:"errors"`
}

// messageBody is the body shape for auth and not-found failures.
type messageBody struct {
	Msg string `json:"msg"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body — once Encode starts
// writing, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and wire shape.
//
// The service layer returns apperror values; nothing below the handler knows
// about status codes. errors.Is/As walk the wrap chain, so a service error
// like fmt.Errorf("saving profile: %w", apperror.NotFound(...)) still maps
// correctly.
func writeError(w http.ResponseWriter, err error) {
	// Aggregated field validation — report every failed field at once.
	var verr *apperror.ValidationErrors
	if errors.As(err, &verr) {
		fields := make([]fieldError, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, fieldError{Msg: fe.Message, Param: fe.Field})
		}
		writeJSON(w, http.StatusBadRequest, errorList{Errors: fields})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
				{Msg: appErr.Message, Param: appErr.Field},
			}})
			return
		case errors.Is(err, apperror.ErrInvalidCredentials),
			errors.Is(err, apperror.ErrConflict):
			writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
				{Msg: appErr.Message},
			}})
			return
		case errors.Is(err, apperror.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, messageBody{Msg: appErr.Message})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusBadRequest, messageBody{Msg: appErr.Message})
			return
		}
	}

	// Unknown error — generic 500, no internal detail leaked to the client.
	writeJSON(w, http.StatusInternalServerError, messageBody{Msg: "Server Error"})
}
