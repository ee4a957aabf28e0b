// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paralogue/tellus/tellus"
)

type TestFunc func(t *testing.T)

// TestSequence chains ledger operations so multi-step scenarios read as a
// script.
type TestSequence struct {
	staking *Staking

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(staking *Staking) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), staking: staking}
}

func (ts *TestSequence) AddFunc(f TestFunc) *TestSequence {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.funcs = append(ts.funcs, f)
	return ts
}

func (ts *TestSequence) Deposit(now uint64, staker tellus.Address, amount int64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.staking.Deposit(now, paraID, staker, remoteAcc, big.NewInt(amount))
		if err != nil {
			t.Fatalf("failed to deposit %d for %s: %v", amount, staker, err)
		}
		t.Logf("deposited %d for %s", amount, staker)
	})
}

func (ts *TestSequence) RequestWithdrawal(now uint64, staker tellus.Address, amount int64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.staking.RequestWithdrawal(now, paraID, staker, big.NewInt(amount))
		if err != nil {
			t.Fatalf("failed to request withdrawal of %d for %s: %v", amount, staker, err)
		}
		t.Logf("requested withdrawal of %d for %s", amount, staker)
	})
}

func (ts *TestSequence) Confirm(staker tellus.Address, amount int64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.staking.ConfirmWithdrawal(paraID, ownerAddr, staker, big.NewInt(amount))
		if err != nil {
			t.Fatalf("failed to confirm %d for %s: %v", amount, staker, err)
		}
		t.Logf("confirmed %d for %s", amount, staker)
	})
}

func (ts *TestSequence) Withdraw(now uint64, staker tellus.Address) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.staking.Withdraw(now, paraID, staker)
		if err != nil {
			t.Fatalf("failed to withdraw for %s: %v", staker, err)
		}
		t.Logf("withdrawn for %s", staker)
	})
}

func (ts *TestSequence) WithdrawErr(now uint64, staker tellus.Address, expected error) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.staking.Withdraw(now, paraID, staker)
		assert.ErrorIs(t, err, expected)
	})
}

func (ts *TestSequence) Run(t *testing.T) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, f := range ts.funcs {
		f(t)
	}
}

func TestTwoStakerSequence(t *testing.T) {
	f := newFixture(t)
	other := tellus.BytesToAddress([]byte("other-staker"))
	require.NoError(t, f.token.Mint(other, big.NewInt(1000)))
	require.NoError(t, f.token.Approve(other, stakingAddr, big.NewInt(1000)))

	NewSequence(f.staking).
		Deposit(dayStart, stakerAddr, 100).
		Deposit(dayStart, other, 200).
		RequestWithdrawal(dayStart+10, stakerAddr, 100).
		Confirm(stakerAddr, 100).
		WithdrawErr(dayStart+10, stakerAddr, ErrLockPeriodActive).
		Withdraw(dayStart+10+tellus.CooldownPeriod, stakerAddr).
		Run(t)

	// first staker fully exited, the other untouched
	AssertStaker(f.staking, paraID, stakerAddr).Staked(0).Locked(0).Confirmed(0).Assert(t)
	AssertStaker(f.staking, paraID, other).Staked(200).Locked(0).Assert(t)
	assertTotalStakers(t, f.staking, 1)
	assertToWithdraw(t, f.staking, 0)

	stats, err := f.staking.Stats()
	require.NoError(t, err)
	assert.Equal(t, "200", stats.TotalStake.String())

	// a fresh cycle re-snapshots governance metrics
	f.votes.count = 77
	require.NoError(t, f.staking.Deposit(dayStart+20+tellus.CooldownPeriod, paraID, stakerAddr, remoteAcc, big.NewInt(50)))
	acc, err := f.staking.GetStakerInfo(paraID, stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), acc.StartVoteCount)
	assertTotalStakers(t, f.staking, 2)
}
