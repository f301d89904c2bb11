// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package verifier

import "github.com/vechain/dagbft/metrics"

var (
	metricBlocksCount = metrics.LazyLoadCounterVec("verifier_blocks_count", []string{"result"})
	metricDuration    = metrics.LazyLoadHistogram("verifier_duration_ms", metrics.BucketVerify)
)
