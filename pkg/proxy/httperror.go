package proxy

import (
	"encoding/json"
	"net/http"
)

// HTTPError is a relay failure with a status code and a stable key the
// frontend can translate.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // stable error key (e.g. "backend_unreachable")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// Relay failures. All of them are proxy-minted, so the response never
// carries backend bodies or cookies.
var (
	ErrMissingOrigin      = HTTPError{Code: http.StatusBadGateway, Key: "backend_origin_not_configured"}
	ErrPathOutsidePrefix  = HTTPError{Code: http.StatusNotFound, Key: "unknown_path"}
	ErrBackendUnreachable = HTTPError{Code: http.StatusBadGateway, Key: "backend_unreachable"}
	ErrInvalidBackendBody = HTTPError{Code: http.StatusBadGateway, Key: "invalid_backend_response"}
	ErrInvalidRequestBody = HTTPError{Code: http.StatusBadRequest, Key: "invalid_request_body"}
	ErrRequestBodyTooBig  = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_body_too_large"}
)

// writeError emits the structured error payload for a failed relay.
func writeError(w http.ResponseWriter, httpErr HTTPError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": httpErr.Key})
}
