// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/vechain/dagbft/metrics"
)

var (
	metricHTTPReqCounter  = metrics.LazyLoadCounterVec("api_request_count", []string{"name", "code", "method"})
	metricHTTPReqDuration = metrics.LazyLoadHistogramVec("api_duration_ms", []string{"name", "code", "method"}, metrics.BucketHTTPReqs)
	metricHTTPInFlight    = metrics.LazyLoadGauge("api_requests_in_flight")
)

// metricsMiddleware records each request labelled by its route name.
// Unnamed routes and the metrics route itself are skipped.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var name string
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		if name == "" || name == "metrics" {
			next.ServeHTTP(w, r)
			return
		}

		metricHTTPInFlight().Add(1)
		m := httpsnoop.CaptureMetrics(next, w, r)
		metricHTTPInFlight().Add(-1)

		labels := map[string]string{"name": name, "code": strconv.Itoa(m.Code), "method": r.Method}
		metricHTTPReqCounter().AddWithLabel(1, labels)
		metricHTTPReqDuration().ObserveWithLabels(m.Duration.Milliseconds(), labels)
	})
}
