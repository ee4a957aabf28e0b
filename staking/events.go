// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/paralogue/tellus/tellus"
)

// EventKind names a ledger state transition.
type EventKind string

const (
	EventNewStaker           EventKind = "NewStaker"
	EventStakeDeposited      EventKind = "StakeDeposited"
	EventWithdrawalRequested EventKind = "WithdrawalRequested"
	EventWithdrawalConfirmed EventKind = "WithdrawalConfirmed"
	EventStakeWithdrawn      EventKind = "StakeWithdrawn"
	EventReporterSlashed     EventKind = "ReporterSlashed"
)

// Event is a local record of a completed ledger operation. Events fire only
// after the operation's state changes are in place.
type Event struct {
	Kind      EventKind
	Parachain tellus.ParachainID
	Staker    tellus.Address
	Recipient tellus.Address // set for slashes only
	Amount    *big.Int
}

func (s *Staking) emit(ev *Event) {
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}
