// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"math/big"
)

// Account is the ledger record of one reporter on one parachain. It is
// created lazily on first deposit and never deleted; after a full withdrawal
// its balances return to zero and the record is reused for the next cycle.
type Account struct {
	RemoteAccount []byte

	// StakedBalance tracks the tokens custodied for this reporter. It still
	// includes funds reserved by a pending withdrawal; LockedBalance is the
	// binding reservation, not a deduction.
	StakedBalance   *big.Int
	LockedBalance   *big.Int
	LockedConfirmed *big.Int

	// StartDate is reset on every deposit and withdrawal request and anchors
	// the cooldown window.
	StartDate uint64

	// Governance snapshot taken when the balance leaves zero.
	StartVoteCount uint64
	StartVoteTally *big.Int
}

// IsEmpty returns whether the account can be treated as empty.
func (a *Account) IsEmpty() bool {
	return len(a.RemoteAccount) == 0 &&
		(a.StakedBalance == nil || a.StakedBalance.Sign() == 0) &&
		(a.LockedBalance == nil || a.LockedBalance.Sign() == 0) &&
		(a.LockedConfirmed == nil || a.LockedConfirmed.Sign() == 0) &&
		a.StartDate == 0 &&
		a.StartVoteCount == 0 &&
		(a.StartVoteTally == nil || a.StartVoteTally.Sign() == 0)
}

func (a *Account) normalize() {
	if a.StakedBalance == nil {
		a.StakedBalance = &big.Int{}
	}
	if a.LockedBalance == nil {
		a.LockedBalance = &big.Int{}
	}
	if a.LockedConfirmed == nil {
		a.LockedConfirmed = &big.Int{}
	}
	if a.StartVoteTally == nil {
		a.StartVoteTally = &big.Int{}
	}
}
