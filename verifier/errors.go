// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package verifier

import (
	"errors"
	"fmt"
)

// StructureError is returned when a correctly signed block breaks a structural rule.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return "invalid block structure: " + e.Reason
}

func structureErrorf(format string, args ...any) error {
	return &StructureError{Reason: fmt.Sprintf(format, args...)}
}

// IsStructureError reports whether err is a StructureError.
func IsStructureError(err error) bool {
	var e *StructureError
	return errors.As(err, &e)
}
