// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xcm encodes and dispatches the notifications sent to consumer
// parachains whenever the reporter ledger changes. The byte layout is fixed
// by the receiving runtime and must be reproduced exactly.
package xcm

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/paralogue/tellus/tellus"
)

// Call identifies the remote pallet call a notification maps to.
type Call uint8

const (
	StakeDeposited      Call = 1
	WithdrawalRequested Call = 2
	StakeWithdrawn      Call = 3
	ReporterSlashed     Call = 4
)

func (c Call) String() string {
	switch c {
	case StakeDeposited:
		return "stakeDeposited"
	case WithdrawalRequested:
		return "withdrawalRequested"
	case StakeWithdrawn:
		return "stakeWithdrawn"
	case ReporterSlashed:
		return "reporterSlashed"
	default:
		return "unknown"
	}
}

// EncodeNotify produces the wire form of a ledger notification:
//
//	moduleIndex ‖ call(1 byte) ‖ staker(20 bytes) ‖ remoteAccount ‖ amount(32 bytes)
//
// The amount is written by reversing its 32-byte little-endian representation,
// yielding the big-endian integer the destination runtime decodes.
func EncodeNotify(moduleIndex []byte, call Call, staker tellus.Address, remoteAccount []byte, amount *big.Int) ([]byte, error) {
	u, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, errors.New("xcm: amount overflows 256 bits")
	}
	var le [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(le[i*8:], u[i])
	}
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}

	payload := make([]byte, 0, len(moduleIndex)+1+20+len(remoteAccount)+32)
	payload = append(payload, moduleIndex...)
	payload = append(payload, byte(call))
	payload = append(payload, staker.Bytes()...)
	payload = append(payload, remoteAccount...)
	payload = append(payload, le[:]...)
	return payload, nil
}

// DecodeNotify parses a notification produced by EncodeNotify. The module
// index and remote account lengths are not self-describing on the wire, so
// the caller must know them.
func DecodeNotify(payload []byte, moduleIndexLen int, remoteAccountLen int) (Call, tellus.Address, []byte, *big.Int, error) {
	want := moduleIndexLen + 1 + 20 + remoteAccountLen + 32
	if len(payload) != want {
		return 0, tellus.Address{}, nil, nil, errors.Errorf("xcm: payload length %d, want %d", len(payload), want)
	}
	offset := moduleIndexLen
	call := Call(payload[offset])
	offset++
	staker := tellus.BytesToAddress(payload[offset : offset+20])
	offset += 20
	remoteAccount := payload[offset : offset+remoteAccountLen]
	offset += remoteAccountLen
	amount := new(big.Int).SetBytes(payload[offset:])
	return call, staker, remoteAccount, amount, nil
}
