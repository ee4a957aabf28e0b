// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package account stores the per-(parachain, reporter) ledger records.
package account

import (
	"github.com/pkg/errors"

	"github.com/paralogue/tellus/solidity"
	"github.com/paralogue/tellus/tellus"
)

var slotAccounts = tellus.BytesToBytes32([]byte("accounts"))

// Service manages reporter account storage.
type Service struct {
	accounts *solidity.Mapping[tellus.Bytes32, *Account]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		accounts: solidity.NewMapping[tellus.Bytes32, *Account](sctx, slotAccounts),
	}
}

func storageKey(id tellus.ParachainID, staker tellus.Address) tellus.Bytes32 {
	return tellus.Blake2b(id.Bytes(), staker.Bytes())
}

// Get returns the account of a reporter on a parachain. An unknown pair
// yields a zero-valued account.
func (s *Service) Get(id tellus.ParachainID, staker tellus.Address) (*Account, error) {
	acc, err := s.accounts.Get(storageKey(id, staker))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staker account")
	}
	acc.normalize()
	return acc, nil
}

// Set stores the account of a reporter on a parachain.
func (s *Service) Set(id tellus.ParachainID, staker tellus.Address, acc *Account) error {
	acc.normalize()
	if err := s.accounts.Set(storageKey(id, staker), acc); err != nil {
		return errors.Wrap(err, "failed to set staker account")
	}
	return nil
}
