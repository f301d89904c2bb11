// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"

	"github.com/vechain/dagbft/log"
)

const minCacheMB = 16

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < minCacheMB {
		sizeMB = minCacheMB
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		log.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if limitMB >= minCacheMB && sizeMB > limitMB {
			sizeMB = limitMB
			log.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

// checkClockOffset warns when the local clock is off by more than half of the
// accepted block timestamp drift.
func checkClockOffset(maxDrift time.Duration) {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxDrift/2 {
		log.Warn("clock offset detected", "offset", resp.ClockOffset, "maxDrift", maxDrift)
	}
}
