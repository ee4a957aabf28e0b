// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the per-parachain reporter ledger: deposits,
// the two-phase withdrawal protocol and slashing. Every operation is atomic;
// a failed precondition or transfer reverts all writes made by the call.
package staking

import (
	"math/big"

	"github.com/paralogue/tellus/log"
	"github.com/paralogue/tellus/metrics"
	"github.com/paralogue/tellus/registry"
	"github.com/paralogue/tellus/solidity"
	"github.com/paralogue/tellus/staking/account"
	"github.com/paralogue/tellus/staking/globalstats"
	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
	"github.com/paralogue/tellus/xcm"
)

var (
	logger = log.WithContext("pkg", "staking")

	metricDeposits = metrics.LazyLoad(func() metrics.CountMeter {
		return metrics.Counter("ledger_deposits_total")
	})
	metricWithdrawals = metrics.LazyLoad(func() metrics.CountMeter {
		return metrics.Counter("ledger_withdrawals_total")
	})
	metricSlashes = metrics.LazyLoad(func() metrics.CountMeter {
		return metrics.Counter("ledger_slashes_total")
	})
)

// Funds moves the fungible token backing reporter stakes. A false return
// means the movement was rejected; the ledger treats that as fatal for the
// enclosing operation.
type Funds interface {
	Transfer(from tellus.Address, to tellus.Address, amount *big.Int) (bool, error)
	TransferFrom(spender tellus.Address, from tellus.Address, to tellus.Address, amount *big.Int) (bool, error)
}

// VoteSource provides the governance metrics snapshotted at first deposit.
// Queries are best effort: a failure yields zero values, never an abort.
type VoteSource interface {
	VoteCount() (uint64, error)
	VoteTally(addr tellus.Address) (*big.Int, error)
}

// Staking implements the reporter ledger.
type Staking struct {
	addr  tellus.Address
	state *state.State

	registry   *registry.Registry
	dispatcher *xcm.Dispatcher
	funds      Funds
	votes      VoteSource

	accounts   *account.Service
	stats      *globalstats.Service
	governance *solidity.Address

	onEvent func(*Event)
}

// New create a new instance.
func New(
	addr tellus.Address,
	state *state.State,
	reg *registry.Registry,
	dispatcher *xcm.Dispatcher,
	funds Funds,
	votes VoteSource,
) *Staking {
	sctx := solidity.NewContext(addr, state)
	return &Staking{
		addr:       addr,
		state:      state,
		registry:   reg,
		dispatcher: dispatcher,
		funds:      funds,
		votes:      votes,
		accounts:   account.New(sctx),
		stats:      globalstats.New(sctx),
		governance: solidity.NewAddress(sctx, slotGovernance),
	}
}

// SetEventListener registers a callback invoked after each completed
// operation. Pass nil to remove it.
func (s *Staking) SetEventListener(cb func(*Event)) {
	s.onEvent = cb
}

// Init sets the governance authority. It may be called exactly once.
func (s *Staking) Init(governance tellus.Address) error {
	current, err := s.governance.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() || governance.IsZero() {
		return ErrInvalidState
	}
	s.governance.Set(&governance)
	logger.Info("governance configured", "governance", governance)
	return nil
}

// Governance returns the configured governance authority, or the zero
// address before Init.
func (s *Staking) Governance() (tellus.Address, error) {
	return s.governance.Get()
}

// GetStakerInfo returns the ledger record of a reporter on a parachain.
func (s *Staking) GetStakerInfo(id tellus.ParachainID, staker tellus.Address) (*account.Account, error) {
	return s.accounts.Get(id, staker)
}

// Stats returns the ledger-wide totals.
func (s *Staking) Stats() (*globalstats.Stats, error) {
	return s.stats.Get()
}

// Deposit stakes amount for a reporter on a parachain. Funds reserved by a
// pending withdrawal are reused first; only the shortfall is pulled from the
// staker's token balance. The remote account is overwritten unconditionally.
func (s *Staking) Deposit(now uint64, id tellus.ParachainID, staker tellus.Address, remoteAccount []byte, amount *big.Int) error {
	checkpoint := s.state.NewCheckpoint()
	entry, newStaker, err := s.deposit(now, id, staker, remoteAccount, amount)
	if err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}

	logger.Info("stake deposited", "parachain", id, "staker", staker, "amount", amount)
	metricDeposits().Add(1)
	if newStaker {
		s.emit(&Event{Kind: EventNewStaker, Parachain: id, Staker: staker, Amount: amount})
	}
	s.emit(&Event{Kind: EventStakeDeposited, Parachain: id, Staker: staker, Amount: amount})
	s.dispatcher.Notify(id, entry.ModuleIndex, xcm.StakeDeposited, staker, remoteAccount, amount, weightsOf(entry))
	return nil
}

func (s *Staking) deposit(now uint64, id tellus.ParachainID, staker tellus.Address, remoteAccount []byte, amount *big.Int) (*registry.Entry, bool, error) {
	governance, err := s.governance.Get()
	if err != nil {
		return nil, false, err
	}
	if governance.IsZero() {
		return nil, false, ErrInvalidState
	}
	entry, err := s.registeredEntry(id)
	if err != nil {
		return nil, false, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, false, ErrInvalidState
	}

	acc, err := s.accounts.Get(id, staker)
	if err != nil {
		return nil, false, err
	}
	newStaker := acc.StakedBalance.Sign() == 0
	if newStaker && amount.Cmp(entry.MinimumStake) < 0 {
		return nil, false, ErrInsufficientBalance
	}

	acc.RemoteAccount = remoteAccount

	switch {
	case acc.LockedBalance.Sign() > 0 && acc.LockedBalance.Cmp(amount) >= 0:
		// the reservation fully covers the deposit, nothing moves externally
		acc.LockedBalance = new(big.Int).Sub(acc.LockedBalance, amount)
		if err := s.stats.RemoveToWithdraw(amount); err != nil {
			return nil, false, err
		}
	case acc.LockedBalance.Sign() > 0:
		shortfall := new(big.Int).Sub(amount, acc.LockedBalance)
		if err := s.pull(staker, shortfall); err != nil {
			return nil, false, err
		}
		if err := s.stats.RemoveToWithdraw(acc.LockedBalance); err != nil {
			return nil, false, err
		}
		acc.LockedBalance = &big.Int{}
		acc.StakedBalance = new(big.Int).Add(acc.StakedBalance, shortfall)
		if err := s.stats.AddStake(shortfall); err != nil {
			return nil, false, err
		}
	default:
		if acc.StakedBalance.Sign() == 0 {
			s.snapshotVotes(acc, staker)
		}
		if err := s.pull(staker, amount); err != nil {
			return nil, false, err
		}
		acc.StakedBalance = new(big.Int).Add(acc.StakedBalance, amount)
		if err := s.stats.AddStake(amount); err != nil {
			return nil, false, err
		}
	}

	if newStaker && acc.StakedBalance.Sign() > 0 {
		if err := s.stats.AddStaker(); err != nil {
			return nil, false, err
		}
	} else {
		newStaker = false
	}

	acc.StartDate = now
	if err := s.accounts.Set(id, staker, acc); err != nil {
		return nil, false, err
	}
	return entry, newStaker, nil
}

// RequestWithdrawal reserves amount of the reporter's stake for withdrawal
// and restarts the cooldown window. The staked balance itself is not
// reduced; the reservation is the binding claim.
func (s *Staking) RequestWithdrawal(now uint64, id tellus.ParachainID, staker tellus.Address, amount *big.Int) error {
	checkpoint := s.state.NewCheckpoint()
	entry, remoteAccount, err := s.requestWithdrawal(now, id, staker, amount)
	if err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}

	logger.Info("withdrawal requested", "parachain", id, "staker", staker, "amount", amount)
	s.emit(&Event{Kind: EventWithdrawalRequested, Parachain: id, Staker: staker, Amount: amount})
	s.dispatcher.Notify(id, entry.ModuleIndex, xcm.WithdrawalRequested, staker, remoteAccount, amount, weightsOf(entry))
	return nil
}

func (s *Staking) requestWithdrawal(now uint64, id tellus.ParachainID, staker tellus.Address, amount *big.Int) (*registry.Entry, []byte, error) {
	entry, err := s.registeredEntry(id)
	if err != nil {
		return nil, nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, nil, ErrInvalidState
	}

	acc, err := s.accounts.Get(id, staker)
	if err != nil {
		return nil, nil, err
	}
	if acc.StakedBalance.Cmp(amount) < 0 {
		return nil, nil, ErrInsufficientBalance
	}

	acc.StartDate = now
	acc.LockedBalance = new(big.Int).Add(acc.LockedBalance, amount)
	if err := s.stats.AddToWithdraw(amount); err != nil {
		return nil, nil, err
	}
	if err := s.accounts.Set(id, staker, acc); err != nil {
		return nil, nil, err
	}
	return entry, acc.RemoteAccount, nil
}

// ConfirmWithdrawal records the consumer chain's acknowledgment of a
// withdrawal request. Only the parachain's registered owner may call it; the
// confirmed amount overwrites any earlier confirmation.
func (s *Staking) ConfirmWithdrawal(id tellus.ParachainID, caller tellus.Address, staker tellus.Address, amount *big.Int) error {
	checkpoint := s.state.NewCheckpoint()
	if err := s.confirmWithdrawal(id, caller, staker, amount); err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}

	logger.Info("withdrawal confirmed", "parachain", id, "staker", staker, "amount", amount)
	s.emit(&Event{Kind: EventWithdrawalConfirmed, Parachain: id, Staker: staker, Amount: amount})
	return nil
}

func (s *Staking) confirmWithdrawal(id tellus.ParachainID, caller tellus.Address, staker tellus.Address, amount *big.Int) error {
	entry, err := s.registeredEntry(id)
	if err != nil {
		return err
	}
	if caller != entry.Owner {
		return ErrUnauthorized
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidState
	}

	acc, err := s.accounts.Get(id, staker)
	if err != nil {
		return err
	}
	acc.LockedConfirmed = amount
	return s.accounts.Set(id, staker, acc)
}

// Withdraw releases a confirmed reservation to the reporter once the
// cooldown has elapsed. The confirmation must match the reservation exactly.
func (s *Staking) Withdraw(now uint64, id tellus.ParachainID, staker tellus.Address) error {
	checkpoint := s.state.NewCheckpoint()
	entry, remoteAccount, withdrawn, err := s.withdraw(now, id, staker)
	if err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}

	logger.Info("stake withdrawn", "parachain", id, "staker", staker, "amount", withdrawn)
	metricWithdrawals().Add(1)
	s.emit(&Event{Kind: EventStakeWithdrawn, Parachain: id, Staker: staker, Amount: withdrawn})
	s.dispatcher.Notify(id, entry.ModuleIndex, xcm.StakeWithdrawn, staker, remoteAccount, withdrawn, weightsOf(entry))
	return nil
}

func (s *Staking) withdraw(now uint64, id tellus.ParachainID, staker tellus.Address) (*registry.Entry, []byte, *big.Int, error) {
	entry, err := s.registeredEntry(id)
	if err != nil {
		return nil, nil, nil, err
	}

	acc, err := s.accounts.Get(id, staker)
	if err != nil {
		return nil, nil, nil, err
	}
	if now < acc.StartDate || now-acc.StartDate < tellus.CooldownPeriod {
		return nil, nil, nil, ErrLockPeriodActive
	}
	if acc.LockedBalance.Sign() == 0 {
		return nil, nil, nil, ErrNothingLocked
	}
	if acc.LockedBalance.Cmp(acc.LockedConfirmed) != 0 {
		return nil, nil, nil, ErrConfirmationMismatch
	}

	withdrawn := acc.LockedBalance
	if err := s.push(staker, withdrawn); err != nil {
		return nil, nil, nil, err
	}

	if err := s.releaseStake(acc, withdrawn); err != nil {
		return nil, nil, nil, err
	}
	acc.LockedBalance = &big.Int{}
	acc.LockedConfirmed = &big.Int{}
	if err := s.stats.RemoveToWithdraw(withdrawn); err != nil {
		return nil, nil, nil, err
	}
	if err := s.accounts.Set(id, staker, acc); err != nil {
		return nil, nil, nil, err
	}
	return entry, acc.RemoteAccount, withdrawn, nil
}

// Slash forcibly transfers a reporter's entire staked balance to the
// recipient. Only governance may call it. An outstanding withdrawal
// reservation is voided so the slashed stake cannot be claimed afterwards.
// Returns the slashed amount.
func (s *Staking) Slash(id tellus.ParachainID, caller tellus.Address, reporter tellus.Address, recipient tellus.Address) (*big.Int, error) {
	checkpoint := s.state.NewCheckpoint()
	entry, remoteAccount, slashed, err := s.slash(id, caller, reporter, recipient)
	if err != nil {
		s.state.RevertTo(checkpoint)
		return nil, err
	}

	logger.Warn("reporter slashed", "parachain", id, "reporter", reporter, "recipient", recipient, "amount", slashed)
	metricSlashes().Add(1)
	s.emit(&Event{Kind: EventReporterSlashed, Parachain: id, Staker: reporter, Recipient: recipient, Amount: slashed})
	s.dispatcher.Notify(id, entry.ModuleIndex, xcm.ReporterSlashed, reporter, remoteAccount, slashed, weightsOf(entry))
	return slashed, nil
}

func (s *Staking) slash(id tellus.ParachainID, caller tellus.Address, reporter tellus.Address, recipient tellus.Address) (*registry.Entry, []byte, *big.Int, error) {
	governance, err := s.governance.Get()
	if err != nil {
		return nil, nil, nil, err
	}
	if governance.IsZero() || caller != governance {
		return nil, nil, nil, ErrUnauthorized
	}
	entry, err := s.registeredEntry(id)
	if err != nil {
		return nil, nil, nil, err
	}

	acc, err := s.accounts.Get(id, reporter)
	if err != nil {
		return nil, nil, nil, err
	}

	slashed := acc.StakedBalance
	if slashed.Sign() > 0 {
		if err := s.push(recipient, slashed); err != nil {
			return nil, nil, nil, err
		}
		if err := s.stats.RemoveStake(slashed); err != nil {
			return nil, nil, nil, err
		}
		if err := s.stats.RemoveStaker(); err != nil {
			return nil, nil, nil, err
		}
	}

	// void the reservation so the slashed stake cannot also be withdrawn
	if acc.LockedBalance.Sign() > 0 {
		if err := s.stats.RemoveToWithdraw(acc.LockedBalance); err != nil {
			return nil, nil, nil, err
		}
	}
	acc.StakedBalance = &big.Int{}
	acc.LockedBalance = &big.Int{}
	acc.LockedConfirmed = &big.Int{}
	if err := s.accounts.Set(id, reporter, acc); err != nil {
		return nil, nil, nil, err
	}
	return entry, acc.RemoteAccount, slashed, nil
}

func (s *Staking) registeredEntry(id tellus.ParachainID) (*registry.Entry, error) {
	entry, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() || entry.Owner.IsZero() {
		return nil, ErrNotRegistered
	}
	return entry, nil
}

// pull moves amount from the staker into the ledger's custody.
func (s *Staking) pull(staker tellus.Address, amount *big.Int) error {
	ok, err := s.funds.TransferFrom(s.addr, staker, s.addr, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTransferFailed
	}
	return nil
}

// push moves amount out of the ledger's custody.
func (s *Staking) push(to tellus.Address, amount *big.Int) error {
	ok, err := s.funds.Transfer(s.addr, to, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTransferFailed
	}
	return nil
}

// releaseStake reduces the staked balance and the advisory totals when
// custodied funds leave via withdrawal.
func (s *Staking) releaseStake(acc *account.Account, amount *big.Int) error {
	released := amount
	if acc.StakedBalance.Cmp(amount) < 0 {
		released = acc.StakedBalance
	}
	wasStaked := acc.StakedBalance.Sign() > 0
	acc.StakedBalance = new(big.Int).Sub(acc.StakedBalance, released)
	if err := s.stats.RemoveStake(released); err != nil {
		return err
	}
	if wasStaked && acc.StakedBalance.Sign() == 0 {
		return s.stats.RemoveStaker()
	}
	return nil
}

// snapshotVotes records the governance metrics for a balance leaving zero.
// Failures fall back to zero values instead of aborting the deposit.
func (s *Staking) snapshotVotes(acc *account.Account, staker tellus.Address) {
	acc.StartVoteCount = 0
	acc.StartVoteTally = &big.Int{}
	if s.votes == nil {
		return
	}
	count, err := s.votes.VoteCount()
	if err != nil {
		logger.Debug("vote count query failed", "staker", staker, "err", err)
		return
	}
	tally, err := s.votes.VoteTally(staker)
	if err != nil {
		logger.Debug("vote tally query failed", "staker", staker, "err", err)
		return
	}
	acc.StartVoteCount = count
	acc.StartVoteTally = tally
}

func weightsOf(entry *registry.Entry) *xcm.Weights {
	if entry.FeeConfig == nil {
		return nil
	}
	return &xcm.Weights{
		MaxWeight:     entry.FeeConfig.MaxWeight,
		Fee:           entry.FeeConfig.Fee,
		OverallWeight: entry.FeeConfig.OverallWeight,
	}
}
