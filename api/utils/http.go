// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vechain/dagbft/log"
)

var logger = log.WithContext("pkg", "api")

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return http.StatusText(e.status)
	}
	return e.cause.Error()
}

func (e *httpError) Unwrap() error { return e.cause }

// HTTPError creates an error answered with status.
func HTTPError(cause error, status int) error {
	return &httpError{cause: cause, status: status}
}

// BadRequest creates an error answered with 400.
func BadRequest(cause error) error {
	return HTTPError(cause, http.StatusBadRequest)
}

// NotFound creates an error answered with 404.
func NotFound(cause error) error {
	return HTTPError(cause, http.StatusNotFound)
}

// Forbidden creates an error answered with 403.
func Forbidden(cause error) error {
	return HTTPError(cause, http.StatusForbidden)
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HandlerFunc is like http.HandlerFunc but returns an error. Errors created
// by HTTPError are answered with their status, any other with 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		resp := ErrorResponse{Status: http.StatusInternalServerError, Error: err.Error()}
		if he := (*httpError)(nil); errors.As(err, &he) {
			resp.Status = he.status
			if he.cause == nil {
				resp.Error = ""
			}
		} else {
			logger.Debug("internal error", "uri", r.URL.String(), "err", err)
		}

		w.Header().Set("Content-Type", JSONContentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(resp.Status)
		json.NewEncoder(w).Encode(&resp)
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON decodes a JSON object, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON responds obj in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
