// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry keeps the set of parachains allowed to carry a reporter
// ledger. Each entry binds a parachain ID to the owning account, the remote
// pallet index confirmations are addressed to, the minimum first stake and an
// optional dispatch budget override.
package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/paralogue/tellus/solidity"
	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
)

var (
	slotEntries = tellus.BytesToBytes32([]byte("entries"))

	// ErrOwnerMismatch is returned when a parachain is re-registered or
	// reconfigured by an account other than its current owner.
	ErrOwnerMismatch = errors.New("registry: owner mismatch")

	// ErrNotRegistered is returned when the parachain has no entry.
	ErrNotRegistered = errors.New("registry: parachain not registered")

	// ErrInvalidEntry is returned when a registration is malformed.
	ErrInvalidEntry = errors.New("registry: invalid entry")
)

// Registry provides access to parachain registrations.
type Registry struct {
	entries *solidity.Mapping[tellus.ParachainID, *Entry]
}

// New create a new instance.
func New(addr tellus.Address, state *state.State) *Registry {
	context := solidity.NewContext(addr, state)
	return &Registry{
		entries: solidity.NewMapping[tellus.ParachainID, *Entry](context, slotEntries),
	}
}

// Get returns the entry for the given parachain. An unregistered parachain
// yields an empty entry, not an error.
func (r *Registry) Get(id tellus.ParachainID) (*Entry, error) {
	entry, err := r.entries.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get registry entry")
	}
	entry.normalize()
	return entry, nil
}

// Register creates or updates the entry for a parachain. A registered
// parachain may only be updated by its current owner.
func (r *Registry) Register(id tellus.ParachainID, owner tellus.Address, moduleIndex []byte, minimumStake *big.Int) error {
	if owner.IsZero() || len(moduleIndex) == 0 {
		return ErrInvalidEntry
	}
	if minimumStake == nil || minimumStake.Sign() < 0 {
		return ErrInvalidEntry
	}

	entry, err := r.Get(id)
	if err != nil {
		return err
	}
	if !entry.IsEmpty() && entry.Owner != owner {
		return ErrOwnerMismatch
	}

	entry.Owner = owner
	entry.ModuleIndex = moduleIndex
	entry.MinimumStake = minimumStake
	if err := r.entries.Set(id, entry); err != nil {
		return errors.Wrap(err, "failed to set registry entry")
	}
	return nil
}

// SetFeeConfig sets or clears the dispatch budget override of a parachain.
// Only the owner may reconfigure it.
func (r *Registry) SetFeeConfig(id tellus.ParachainID, caller tellus.Address, config *FeeConfig) error {
	entry, err := r.Get(id)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return ErrNotRegistered
	}
	if entry.Owner != caller {
		return ErrOwnerMismatch
	}
	if config != nil && (config.Fee == nil || config.Fee.Sign() < 0) {
		return ErrInvalidEntry
	}

	entry.FeeConfig = config
	if err := r.entries.Set(id, entry); err != nil {
		return errors.Wrap(err, "failed to set registry entry")
	}
	return nil
}

// IsRegistered reports whether the parachain has an entry.
func (r *Registry) IsRegistered(id tellus.ParachainID) (bool, error) {
	entry, err := r.Get(id)
	if err != nil {
		return false, err
	}
	return !entry.IsEmpty(), nil
}

// OwnerOf returns the owning account of a parachain.
func (r *Registry) OwnerOf(id tellus.ParachainID) (tellus.Address, error) {
	entry, err := r.Get(id)
	if err != nil {
		return tellus.Address{}, err
	}
	return entry.Owner, nil
}

// ModuleIndexOf returns the remote pallet index confirmations are sent to.
func (r *Registry) ModuleIndexOf(id tellus.ParachainID) ([]byte, error) {
	entry, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return entry.ModuleIndex, nil
}

// MinimumStakeOf returns the minimum first deposit of a parachain.
func (r *Registry) MinimumStakeOf(id tellus.ParachainID) (*big.Int, error) {
	entry, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return entry.MinimumStake, nil
}

// FeeConfigOf returns the dispatch budget override, or nil when the parachain
// relies on the defaults.
func (r *Registry) FeeConfigOf(id tellus.ParachainID) (*FeeConfig, error) {
	entry, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return entry.FeeConfig, nil
}
