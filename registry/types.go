// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/paralogue/tellus/tellus"
)

// Entry contains all data of a parachain registration.
type Entry struct {
	Owner        tellus.Address
	ModuleIndex  []byte
	MinimumStake *big.Int
	FeeConfig    *FeeConfig `rlp:"nil"`
}

// FeeConfig overrides the default dispatch budget for a parachain.
type FeeConfig struct {
	Fee           *big.Int
	MaxWeight     uint64
	OverallWeight uint64
}

// IsEmpty returns whether the entry can be treated as empty.
func (e *Entry) IsEmpty() bool {
	return e.Owner.IsZero() &&
		len(e.ModuleIndex) == 0 &&
		(e.MinimumStake == nil || e.MinimumStake.Sign() == 0) &&
		e.FeeConfig == nil
}

func (e *Entry) normalize() {
	if e.MinimumStake == nil {
		e.MinimumStake = &big.Int{}
	}
}
