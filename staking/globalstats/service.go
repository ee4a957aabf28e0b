// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package globalstats maintains ledger-wide totals. The stake and staker
// counters are advisory; toWithdraw is the aggregate of all outstanding
// withdrawal reservations and is kept exact.
package globalstats

import (
	"math/big"

	"github.com/paralogue/tellus/solidity"
	"github.com/paralogue/tellus/tellus"
)

var (
	slotTotalStake   = tellus.BytesToBytes32([]byte("total-stake"))
	slotTotalStakers = tellus.BytesToBytes32([]byte("total-stakers"))
	slotToWithdraw   = tellus.BytesToBytes32([]byte("to-withdraw"))
)

// Stats is a snapshot of the ledger-wide totals.
type Stats struct {
	TotalStake   *big.Int
	TotalStakers *big.Int
	ToWithdraw   *big.Int
}

// Service manages the ledger-wide totals.
type Service struct {
	totalStake   *solidity.Uint256
	totalStakers *solidity.Uint256
	toWithdraw   *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalStake:   solidity.NewUint256(sctx, slotTotalStake),
		totalStakers: solidity.NewUint256(sctx, slotTotalStakers),
		toWithdraw:   solidity.NewUint256(sctx, slotToWithdraw),
	}
}

// Get returns the current totals.
func (s *Service) Get() (*Stats, error) {
	totalStake, err := s.totalStake.Get()
	if err != nil {
		return nil, err
	}
	totalStakers, err := s.totalStakers.Get()
	if err != nil {
		return nil, err
	}
	toWithdraw, err := s.toWithdraw.Get()
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalStake:   totalStake,
		TotalStakers: totalStakers,
		ToWithdraw:   toWithdraw,
	}, nil
}

// AddStake increases the advisory total stake.
func (s *Service) AddStake(amount *big.Int) error {
	return s.totalStake.Add(amount)
}

// RemoveStake decreases the advisory total stake.
func (s *Service) RemoveStake(amount *big.Int) error {
	return s.totalStake.Sub(amount)
}

// AddStaker bumps the advisory staker count when a balance leaves zero.
func (s *Service) AddStaker() error {
	return s.totalStakers.Add(big.NewInt(1))
}

// RemoveStaker drops the advisory staker count when a balance returns to zero.
func (s *Service) RemoveStaker() error {
	return s.totalStakers.Sub(big.NewInt(1))
}

// AddToWithdraw grows the aggregate withdrawal reservation.
func (s *Service) AddToWithdraw(amount *big.Int) error {
	return s.toWithdraw.Add(amount)
}

// RemoveToWithdraw shrinks the aggregate withdrawal reservation.
func (s *Service) RemoveToWithdraw(amount *big.Int) error {
	return s.toWithdraw.Sub(amount)
}
