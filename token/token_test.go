// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
)

var (
	tokenAddr = tellus.BytesToAddress([]byte("tok"))
	alice     = tellus.BytesToAddress([]byte("alice"))
	bob       = tellus.BytesToAddress([]byte("bob"))
)

func TestMintAndTransfer(t *testing.T) {
	tok := New(tokenAddr, state.New())

	bal, err := tok.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0).String(), bal.String())

	require.NoError(t, tok.Mint(alice, big.NewInt(1000)))

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)

	ok, err := tok.Transfer(alice, bob, big.NewInt(400))
	require.NoError(t, err)
	assert.True(t, ok)

	bal, _ = tok.BalanceOf(alice)
	assert.Equal(t, big.NewInt(600), bal)
	bal, _ = tok.BalanceOf(bob)
	assert.Equal(t, big.NewInt(400), bal)

	// insufficient balance leaves both sides untouched
	ok, err = tok.Transfer(bob, alice, big.NewInt(401))
	require.NoError(t, err)
	assert.False(t, ok)
	bal, _ = tok.BalanceOf(bob)
	assert.Equal(t, big.NewInt(400), bal)
}

func TestTransferFrom(t *testing.T) {
	tok := New(tokenAddr, state.New())
	spender := tellus.BytesToAddress([]byte("spender"))

	require.NoError(t, tok.Mint(alice, big.NewInt(500)))
	require.NoError(t, tok.Approve(alice, spender, big.NewInt(300)))

	al, err := tok.Allowance(alice, spender)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(300), al)

	ok, err := tok.TransferFrom(spender, alice, bob, big.NewInt(200))
	require.NoError(t, err)
	assert.True(t, ok)

	al, _ = tok.Allowance(alice, spender)
	assert.Equal(t, big.NewInt(100), al)

	// over-allowance is rejected even when the balance could cover it
	ok, err = tok.TransferFrom(spender, alice, bob, big.NewInt(101))
	require.NoError(t, err)
	assert.False(t, ok)

	bal, _ := tok.BalanceOf(bob)
	assert.Equal(t, big.NewInt(200), bal)
}

func TestZeroAmountIsNoop(t *testing.T) {
	tok := New(tokenAddr, state.New())

	ok, err := tok.Transfer(alice, bob, big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, tok.Mint(alice, big.NewInt(0)))
	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0).String(), supply.String())
}
