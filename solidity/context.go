// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides typed storage cells for ledger contracts,
// mimicking how a Solidity contract lays out its state: fixed slots for
// scalar values and hashed slot positions for mappings.
package solidity

import (
	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
)

// Context binds storage cells to a contract address within a state.
type Context struct {
	address tellus.Address
	state   *state.State
}

// NewContext creates a storage context for the given contract address.
func NewContext(address tellus.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// Address returns the contract address the context is bound to.
func (c *Context) Address() tellus.Address {
	return c.address
}

// State returns the underlying state.
func (c *Context) State() *state.State {
	return c.state
}
