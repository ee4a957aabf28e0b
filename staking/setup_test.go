// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paralogue/tellus/registry"
	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
	"github.com/paralogue/tellus/token"
	"github.com/paralogue/tellus/xcm"
)

var (
	stakingAddr    = tellus.BytesToAddress([]byte("staking"))
	registryAddr   = tellus.BytesToAddress([]byte("registry"))
	tokenAddr      = tellus.BytesToAddress([]byte("token"))
	governanceAddr = tellus.BytesToAddress([]byte("governance"))
	ownerAddr      = tellus.BytesToAddress([]byte("owner"))
	stakerAddr     = tellus.BytesToAddress([]byte("staker"))
	recipientAddr  = tellus.BytesToAddress([]byte("recipient"))

	remoteAcc = []byte{0xaa, 0xbb}

	paraID   = tellus.ParachainID(2000)
	dayStart = uint64(1_700_000_000)
)

type sentNotification struct {
	dest    xcm.Location
	payload []byte
}

type mockTransactor struct {
	sent []sentNotification
}

func (m *mockTransactor) TransactThroughSigned(dest xcm.Location, _ uint64, call []byte, _ *big.Int, _ uint64) error {
	m.sent = append(m.sent, sentNotification{dest: dest, payload: call})
	return nil
}

type mockVotes struct {
	count uint64
	tally *big.Int
	fail  bool
}

func (m *mockVotes) VoteCount() (uint64, error) {
	if m.fail {
		return 0, errors.New("governance unavailable")
	}
	return m.count, nil
}

func (m *mockVotes) VoteTally(_ tellus.Address) (*big.Int, error) {
	if m.fail {
		return nil, errors.New("governance unavailable")
	}
	return m.tally, nil
}

type fixture struct {
	state      *state.State
	token      *token.Token
	registry   *registry.Registry
	transactor *mockTransactor
	votes      *mockVotes
	staking    *Staking
	events     []*Event
}

// newFixture wires a ledger with chain 2000 registered, governance set and
// the staker funded and approved.
func newFixture(t *testing.T) *fixture {
	f := newBareFixture()

	require.NoError(t, f.staking.Init(governanceAddr))
	require.NoError(t, f.registry.Register(paraID, ownerAddr, []byte{0x03}, big.NewInt(10)))
	require.NoError(t, f.token.Mint(stakerAddr, big.NewInt(10_000)))
	require.NoError(t, f.token.Approve(stakerAddr, stakingAddr, big.NewInt(10_000)))
	return f
}

// newBareFixture wires a ledger with no governance, registrations or funds.
func newBareFixture() *fixture {
	st := state.New()
	f := &fixture{
		state:      st,
		token:      token.New(tokenAddr, st),
		registry:   registry.New(registryAddr, st),
		transactor: &mockTransactor{},
		votes:      &mockVotes{count: 5, tally: big.NewInt(42)},
	}
	f.staking = New(stakingAddr, st, f.registry, xcm.NewDispatcher(f.transactor), f.token, f.votes)
	f.staking.SetEventListener(func(ev *Event) {
		f.events = append(f.events, ev)
	})
	return f
}

func (f *fixture) balanceOf(t *testing.T, addr tellus.Address) *big.Int {
	bal, err := f.token.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

// lastNotification decodes the most recently dispatched payload.
func (f *fixture) lastNotification(t *testing.T, remoteAccountLen int) (xcm.Call, tellus.Address, []byte, *big.Int) {
	require.NotEmpty(t, f.transactor.sent)
	last := f.transactor.sent[len(f.transactor.sent)-1]
	call, staker, remote, amount, err := xcm.DecodeNotify(last.payload, 1, remoteAccountLen)
	require.NoError(t, err)
	return call, staker, remote, amount
}

type StakerAssertions struct {
	staking *Staking
	id      tellus.ParachainID
	addr    tellus.Address

	staked    *big.Int
	locked    *big.Int
	confirmed *big.Int
	startDate *uint64
}

func AssertStaker(staking *Staking, id tellus.ParachainID, addr tellus.Address) *StakerAssertions {
	return &StakerAssertions{staking: staking, id: id, addr: addr}
}

func (sa *StakerAssertions) Staked(expected int64) *StakerAssertions {
	sa.staked = big.NewInt(expected)
	return sa
}

func (sa *StakerAssertions) Locked(expected int64) *StakerAssertions {
	sa.locked = big.NewInt(expected)
	return sa
}

func (sa *StakerAssertions) Confirmed(expected int64) *StakerAssertions {
	sa.confirmed = big.NewInt(expected)
	return sa
}

func (sa *StakerAssertions) StartDate(expected uint64) *StakerAssertions {
	sa.startDate = &expected
	return sa
}

func (sa *StakerAssertions) Assert(t *testing.T) {
	acc, err := sa.staking.GetStakerInfo(sa.id, sa.addr)
	require.NoError(t, err, "failed to get staker %s", sa.addr)

	if sa.staked != nil {
		assert.Equal(t, sa.staked.String(), acc.StakedBalance.String(), "staker %s staked balance mismatch", sa.addr)
	}
	if sa.locked != nil {
		assert.Equal(t, sa.locked.String(), acc.LockedBalance.String(), "staker %s locked balance mismatch", sa.addr)
	}
	if sa.confirmed != nil {
		assert.Equal(t, sa.confirmed.String(), acc.LockedConfirmed.String(), "staker %s confirmed balance mismatch", sa.addr)
	}
	if sa.startDate != nil {
		assert.Equal(t, *sa.startDate, acc.StartDate, "staker %s start date mismatch", sa.addr)
	}
}

func assertToWithdraw(t *testing.T, staking *Staking, expected int64) {
	stats, err := staking.Stats()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(expected).String(), stats.ToWithdraw.String(), "toWithdraw mismatch")
}

func assertTotalStakers(t *testing.T, staking *Staking, expected int64) {
	stats, err := staking.Stats()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(expected).String(), stats.TotalStakers.String(), "totalStakers mismatch")
}
