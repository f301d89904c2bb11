// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/vechain/dagbft/log"
)

// request bodies carry hex encoded blocks, only a prefix is logged.
const maxLoggedBody = 512

// RequestLoggerMiddleware logs served requests with a body excerpt, the
// response status and the latency. Every request is logged while enabled is
// set, otherwise only those slower than slowThreshold (zero disables).
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled.Load() && slowThreshold == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var body []byte
			if r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, "unable to read body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			m := httpsnoop.CaptureMetrics(next, w, r)
			if enabled.Load() || (slowThreshold > 0 && m.Duration > slowThreshold) {
				logger.Info("API request",
					"method", r.Method,
					"uri", r.URL.String(),
					"status", m.Code,
					"elapsed", m.Duration,
					"written", m.Written,
					"body", excerpt(body),
				)
			}
		})
	}
}

func excerpt(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
