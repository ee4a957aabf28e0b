// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/paralogue/tellus/tellus"
)

var slotGovernance = tellus.BytesToBytes32([]byte("governance"))
