// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigMerge(t *testing.T) {
	merged := Config{MaxTransactionsPerBlock: 7}.Merge()

	def := DefaultConfig()
	assert.Equal(t, uint32(7), merged.MaxTransactionsPerBlock)
	assert.Equal(t, def.MaxTransactionBytes, merged.MaxTransactionBytes)
	assert.Equal(t, def.MaxTimestampDriftMs, merged.MaxTimestampDriftMs)
	assert.Equal(t, def.MaxMisbehaviorReports, merged.MaxMisbehaviorReports)

	assert.NoError(t, merged.Validate())
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{MaxTransactionsPerBlock: 1}.Validate())
}
