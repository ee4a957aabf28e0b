// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/paralogue/tellus/state"
)

type (
	account struct {
		Balance *big.Int
	}

	allowance struct {
		Remaining *big.Int
	}
)

var (
	_ state.StorageEncoder = (*account)(nil)
	_ state.StorageDecoder = (*account)(nil)

	_ state.StorageEncoder = (*allowance)(nil)
	_ state.StorageDecoder = (*allowance)(nil)
)

func (a *account) Encode() ([]byte, error) {
	if a.Balance.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func (a *account) Decode(data []byte) error {
	if len(data) == 0 {
		*a = account{&big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, a)
}

func (al *allowance) Encode() ([]byte, error) {
	if al.Remaining.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(al)
}

func (al *allowance) Decode(data []byte) error {
	if len(data) == 0 {
		*al = allowance{&big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, al)
}
