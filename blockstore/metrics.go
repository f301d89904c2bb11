// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blockstore

import "github.com/vechain/dagbft/metrics"

var (
	metricBlockStoreCount = metrics.LazyLoadCounterVec("blockstore_count", []string{"type", "result"})
	metricLastRound       = metrics.LazyLoadGauge("blockstore_last_round")
)
