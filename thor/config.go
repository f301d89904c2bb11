// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import "errors"

// Config is the configurable limits enforced on received blocks. Production networks use
// DefaultConfig; custom networks and tests may tune the values, which are then passed
// explicitly to whoever needs them.
type Config struct {
	MaxTransactionsPerBlock uint32 `json:"maxTransactionsPerBlock" yaml:"max_transactions_per_block"`
	MaxTransactionBytes     uint64 `json:"maxTransactionBytes" yaml:"max_transaction_bytes"`  // sum of all transaction sizes in one block
	MaxTimestampDriftMs     uint64 `json:"maxTimestampDriftMs" yaml:"max_timestamp_drift_ms"` // how far in the future a block timestamp may be
	MaxMisbehaviorReports   uint32 `json:"maxMisbehaviorReports" yaml:"max_misbehavior_reports"`
}

// DefaultConfig returns the default block limits.
func DefaultConfig() Config {
	return Config{
		MaxTransactionsPerBlock: 10_000,
		MaxTransactionBytes:     4 << 20, // 4MiB
		MaxTimestampDriftMs:     500,
		MaxMisbehaviorReports:   64,
	}
}

// Merge returns c with every zero field replaced by the corresponding default.
func (c Config) Merge() Config {
	def := DefaultConfig()
	if c.MaxTransactionsPerBlock == 0 {
		c.MaxTransactionsPerBlock = def.MaxTransactionsPerBlock
	}
	if c.MaxTransactionBytes == 0 {
		c.MaxTransactionBytes = def.MaxTransactionBytes
	}
	if c.MaxTimestampDriftMs == 0 {
		c.MaxTimestampDriftMs = def.MaxTimestampDriftMs
	}
	if c.MaxMisbehaviorReports == 0 {
		c.MaxMisbehaviorReports = def.MaxMisbehaviorReports
	}
	return c
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	if c.MaxTransactionsPerBlock == 0 {
		return errors.New("max transactions per block must be positive")
	}
	if c.MaxTransactionBytes == 0 {
		return errors.New("max transaction bytes must be positive")
	}
	return nil
}
