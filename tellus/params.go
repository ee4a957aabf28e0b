// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tellus

// Constants of the staking protocol.
const (
	// CooldownPeriod is the delay, in seconds, between a withdrawal request
	// and eligibility to withdraw.
	CooldownPeriod = uint64(7 * 24 * 60 * 60) // 7 days
)
