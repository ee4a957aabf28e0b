// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible token that backs reporter stakes.
// Balances and allowances live in the token contract's own storage, so every
// movement of funds is journaled together with the ledger state that caused it.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
)

var tokenSupplyKey = tellus.Keccak256([]byte("token-supply"))

func accountKey(addr tellus.Address) tellus.Bytes32 {
	return tellus.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

func allowanceKey(owner tellus.Address, spender tellus.Address) tellus.Bytes32 {
	return tellus.Keccak256(owner.Bytes(), spender.Bytes())
}

// Token provides access to token balances, allowances and supply.
type Token struct {
	addr  tellus.Address
	state *state.State
}

// New create a new instance.
func New(addr tellus.Address, state *state.State) *Token {
	return &Token{addr, state}
}

func (t *Token) getStorage(key tellus.Bytes32, val state.StorageDecoder) error {
	return t.state.GetStructuredStorage(t.addr, key, val)
}

func (t *Token) setStorage(key tellus.Bytes32, val state.StorageEncoder) error {
	return t.state.SetStructuredStorage(t.addr, key, val)
}

func (t *Token) getAccount(addr tellus.Address) (*account, error) {
	var acc account
	if err := t.getStorage(accountKey(addr), &acc); err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	return &acc, nil
}

// BalanceOf returns the token balance of an account.
func (t *Token) BalanceOf(addr tellus.Address) (*big.Int, error) {
	acc, err := t.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

// TotalSupply returns the total minted supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	var supply account
	if err := t.getStorage(tokenSupplyKey, &supply); err != nil {
		return nil, errors.Wrap(err, "failed to get token supply")
	}
	return supply.Balance, nil
}

// Mint creates amount new tokens on addr's balance and grows the supply.
func (t *Token) Mint(addr tellus.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	acc, err := t.getAccount(addr)
	if err != nil {
		return err
	}
	acc.Balance = new(big.Int).Add(acc.Balance, amount)
	if err := t.setStorage(accountKey(addr), acc); err != nil {
		return errors.Wrap(err, "failed to set token account")
	}

	var supply account
	if err := t.getStorage(tokenSupplyKey, &supply); err != nil {
		return errors.Wrap(err, "failed to get token supply")
	}
	supply.Balance = new(big.Int).Add(supply.Balance, amount)
	if err := t.setStorage(tokenSupplyKey, &supply); err != nil {
		return errors.Wrap(err, "failed to set token supply")
	}
	return nil
}

// Transfer moves amount from one account to the other. It returns false,
// without touching either balance, when from's balance cannot cover it.
func (t *Token) Transfer(from tellus.Address, to tellus.Address, amount *big.Int) (bool, error) {
	if amount.Sign() == 0 {
		return true, nil
	}
	sender, err := t.getAccount(from)
	if err != nil {
		return false, err
	}
	if sender.Balance.Cmp(amount) < 0 {
		return false, nil
	}
	sender.Balance = new(big.Int).Sub(sender.Balance, amount)
	if err := t.setStorage(accountKey(from), sender); err != nil {
		return false, errors.Wrap(err, "failed to set token account")
	}

	receiver, err := t.getAccount(to)
	if err != nil {
		return false, err
	}
	receiver.Balance = new(big.Int).Add(receiver.Balance, amount)
	if err := t.setStorage(accountKey(to), receiver); err != nil {
		return false, errors.Wrap(err, "failed to set token account")
	}
	return true, nil
}

// Approve grants spender the right to move up to amount from owner's balance.
// An existing allowance is overwritten, not accumulated.
func (t *Token) Approve(owner tellus.Address, spender tellus.Address, amount *big.Int) error {
	if err := t.setStorage(allowanceKey(owner, spender), &allowance{Remaining: amount}); err != nil {
		return errors.Wrap(err, "failed to set token allowance")
	}
	return nil
}

// Allowance returns the remaining amount spender may move from owner's balance.
func (t *Token) Allowance(owner tellus.Address, spender tellus.Address) (*big.Int, error) {
	var al allowance
	if err := t.getStorage(allowanceKey(owner, spender), &al); err != nil {
		return nil, errors.Wrap(err, "failed to get token allowance")
	}
	return al.Remaining, nil
}

// TransferFrom moves amount from owner to the recipient on behalf of spender,
// consuming the spender's allowance. It returns false when either the
// allowance or the owner's balance cannot cover the amount.
func (t *Token) TransferFrom(spender tellus.Address, from tellus.Address, to tellus.Address, amount *big.Int) (bool, error) {
	if amount.Sign() == 0 {
		return true, nil
	}
	var al allowance
	alKey := allowanceKey(from, spender)
	if err := t.getStorage(alKey, &al); err != nil {
		return false, errors.Wrap(err, "failed to get token allowance")
	}
	if al.Remaining.Cmp(amount) < 0 {
		return false, nil
	}

	ok, err := t.Transfer(from, to, amount)
	if err != nil || !ok {
		return ok, err
	}

	al.Remaining = new(big.Int).Sub(al.Remaining, amount)
	if err := t.setStorage(alKey, &al); err != nil {
		return false, errors.Wrap(err, "failed to set token allowance")
	}
	return true, nil
}
