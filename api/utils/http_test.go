// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest, `{"status":400,"error":"bad"}`},
		{"not found", NotFound(errors.New("gone")), http.StatusNotFound, `{"status":404,"error":"gone"}`},
		{"forbidden", Forbidden(errors.New("no")), http.StatusForbidden, `{"status":403,"error":"no"}`},
		{"no cause", HTTPError(nil, http.StatusTeapot), http.StatusTeapot, `{"status":418}`},
		{"wrapped", errors.WithMessage(BadRequest(errors.New("x")), "round"), http.StatusBadRequest, `{"status":400,"error":"round: x"}`},
		{"internal", errors.New("boom"), http.StatusInternalServerError, `{"status":500,"error":"boom"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.body == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.NoError(t, WriteJSON(rec, M{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "{\"a\":1}\n", rec.Body.String())

	var v struct {
		A int `json:"a"`
	}
	assert.NoError(t, ParseJSON(strings.NewReader(`{"a":2}`), &v))
	assert.Equal(t, 2, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"b":2}`), &v))
}

func TestHTTPErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := BadRequest(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusText(http.StatusTeapot), HTTPError(nil, http.StatusTeapot).Error())
}

func TestParseParams(t *testing.T) {
	r, err := ParseRound("42")
	assert.NoError(t, err)
	assert.EqualValues(t, 42, r)
	_, err = ParseRound("-1")
	assert.Error(t, err)
	_, err = ParseRound("4294967296")
	assert.Error(t, err)

	a, err := ParseAuthority("3")
	assert.NoError(t, err)
	assert.EqualValues(t, 3, a)
	_, err = ParseAuthority("x")
	assert.Error(t, err)

	for in, want := range map[string]bool{"": false, "false": false, "true": true} {
		got, err := ParseBool(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = ParseBool("yes")
	assert.Error(t, err)
}
