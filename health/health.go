// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/vechain/dagbft/block"
)

// RoundSource reports the highest round stored.
type RoundSource interface {
	LastRound() block.Round
}

type RoundProgress struct {
	LastRound         block.Round `json:"lastRound"`
	LastRoundObserved *time.Time  `json:"lastRoundObserved"`
}

type Status struct {
	Healthy       bool           `json:"healthy"`
	RoundProgress *RoundProgress `json:"roundProgress"`
}

// Health reports whether rounds keep advancing.
type Health struct {
	source RoundSource
	window time.Duration
	now    func() time.Time

	lock         sync.Mutex
	lastRound    block.Round
	lastProgress time.Time
}

// New creates a Health which turns unhealthy once no new round was seen for window.
func New(source RoundSource, window time.Duration) *Health {
	h := &Health{
		source: source,
		window: window,
		now:    time.Now,
	}
	h.lastRound = source.LastRound()
	h.lastProgress = h.now()
	return h
}

func (h *Health) Status() *Status {
	h.lock.Lock()
	defer h.lock.Unlock()

	now := h.now()
	if r := h.source.LastRound(); r > h.lastRound {
		h.lastRound = r
		h.lastProgress = now
	}
	observed := h.lastProgress

	return &Status{
		Healthy: now.Sub(h.lastProgress) <= h.window,
		RoundProgress: &RoundProgress{
			LastRound:         h.lastRound,
			LastRoundObserved: &observed,
		},
	}
}
