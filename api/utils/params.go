// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
)

// ParseRound parses a decimal round.
func ParseRound(s string) (block.Round, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.New("invalid round")
	}
	return block.Round(n), nil
}

// ParseAuthority parses a decimal authority index.
func ParseAuthority(s string) (committee.AuthorityIndex, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.New("invalid authority")
	}
	return committee.AuthorityIndex(n), nil
}

// ParseBool parses an optional boolean query value. Empty means false.
func ParseBool(s string) (bool, error) {
	switch s {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	}
	return false, errors.New("should be boolean")
}
