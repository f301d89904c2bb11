// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/vechain/dagbft/api/utils"
	"github.com/vechain/dagbft/health"
	"github.com/vechain/dagbft/log"
)

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

type logLevel struct {
	Level string `json:"level"`
}

func newLogLevel(lvl *slog.LevelVar) *logLevel {
	return &logLevel{Level: log.LevelString(lvl.Level())}
}

type apiLogs struct {
	Enabled bool `json:"enabled"`
}

type admin struct {
	logLevel *slog.LevelVar
	apiLogs  *atomic.Bool
	health   *health.Health
}

func (a *admin) handleGetLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, newLogLevel(a.logLevel))
}

func (a *admin) handlePostLogLevel(w http.ResponseWriter, req *http.Request) error {
	var body logLevel
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	lvl, ok := levels[body.Level]
	if !ok {
		return utils.BadRequest(errors.Errorf("invalid verbosity level %q", body.Level))
	}
	prev := a.logLevel.Level()
	a.logLevel.Set(lvl)
	log.Info("log level changed", "from", log.LevelString(prev), "to", body.Level)
	return utils.WriteJSON(w, newLogLevel(a.logLevel))
}

func (a *admin) handleGetAPILogs(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &apiLogs{Enabled: a.apiLogs.Load()})
}

func (a *admin) handlePostAPILogs(w http.ResponseWriter, req *http.Request) error {
	var body apiLogs
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	a.apiLogs.Store(body.Enabled)
	log.Info("api logs updated", "enabled", body.Enabled)
	return utils.WriteJSON(w, &apiLogs{Enabled: a.apiLogs.Load()})
}

func (a *admin) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	if a.health == nil {
		return utils.HTTPError(errors.New("health reporting disabled"), http.StatusNotFound)
	}
	status := a.health.Status()
	w.Header().Set("Content-Type", utils.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}
