// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xcm

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paralogue/tellus/tellus"
)

type sentTx struct {
	dest          Location
	maxWeight     uint64
	call          []byte
	fee           *big.Int
	overallWeight uint64
}

type mockTransactor struct {
	sent []sentTx
	err  error
}

func (m *mockTransactor) TransactThroughSigned(dest Location, maxWeight uint64, call []byte, fee *big.Int, overallWeight uint64) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentTx{dest, maxWeight, call, fee, overallWeight})
	return nil
}

func TestNotifyUsesDefaultWeights(t *testing.T) {
	transactor := &mockTransactor{}
	d := NewDispatcher(transactor)

	staker := tellus.BytesToAddress([]byte("staker"))
	d.Notify(2000, []byte{0x03}, StakeDeposited, staker, []byte{0x01}, big.NewInt(100), nil)

	require.Len(t, transactor.sent, 1)
	tx := transactor.sent[0]
	assert.Equal(t, Location{Parents: 1, Parachain: 2000}, tx.dest)

	defaults := DefaultWeights()
	assert.Equal(t, defaults.MaxWeight, tx.maxWeight)
	assert.Equal(t, defaults.Fee, tx.fee)
	assert.Equal(t, defaults.OverallWeight, tx.overallWeight)

	expected, err := EncodeNotify([]byte{0x03}, StakeDeposited, staker, []byte{0x01}, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, expected, tx.call)
}

func TestNotifyWeightOverride(t *testing.T) {
	transactor := &mockTransactor{}
	d := NewDispatcher(transactor)

	override := &Weights{MaxWeight: 7, Fee: big.NewInt(42), OverallWeight: 9}
	d.Notify(3000, []byte{0x03}, ReporterSlashed, tellus.Address{}, nil, big.NewInt(1), override)

	require.Len(t, transactor.sent, 1)
	tx := transactor.sent[0]
	assert.Equal(t, uint64(7), tx.maxWeight)
	assert.Equal(t, big.NewInt(42), tx.fee)
	assert.Equal(t, uint64(9), tx.overallWeight)
}

func TestNotifyIsFireAndForget(t *testing.T) {
	d := NewDispatcher(&mockTransactor{err: errors.New("transport down")})

	// must not panic or surface the transport error
	d.Notify(2000, []byte{0x03}, StakeWithdrawn, tellus.Address{}, nil, big.NewInt(1), nil)
}
