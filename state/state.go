// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/paralogue/tellus/stackedmap"
	"github.com/paralogue/tellus/tellus"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the ledger's world state: per-contract raw storage with
// checkpoint/revert semantics. All writes are journaled; an operation that
// fails can revert to the checkpoint taken on entry, leaving no partial
// mutation behind.
type State struct {
	base map[storageKey]rlp.RawValue // committed source of truth
	sm   *stackedmap.StackedMap      // keeps revisions of uncommitted writes
}

type storageKey struct {
	addr tellus.Address
	key  tellus.Bytes32
}

// New creates an empty state.
func New() *State {
	state := &State{
		base: make(map[storageKey]rlp.RawValue),
	}
	state.sm = stackedmap.New(func(key any) (any, bool) {
		raw, ok := state.base[key.(storageKey)]
		return raw, ok
	})
	// the bottom revision holds writes that outlive every checkpoint
	state.sm.Push()
	return state
}

// GetRawStorage returns the storage value in rlp raw for the given address and key.
func (s *State) GetRawStorage(addr tellus.Address, key tellus.Bytes32) (rlp.RawValue, error) {
	data, ok := s.sm.Get(storageKey{addr, key})
	if !ok {
		return nil, nil
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage sets the storage value in rlp raw.
func (s *State) SetRawStorage(addr tellus.Address, key tellus.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns the storage value for the given address and key.
func (s *State) GetStorage(addr tellus.Address, key tellus.Bytes32) (tellus.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return tellus.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return tellus.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return tellus.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return tellus.Blake2b(raw), nil
	}
	return tellus.BytesToBytes32(content), nil
}

// SetStorage sets the storage value for the given address and key.
func (s *State) SetStorage(addr tellus.Address, key, value tellus.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage sets the storage value encoded by the given enc method.
// An error returned by enc aborts the write.
func (s *State) EncodeStorage(addr tellus.Address, key tellus.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage gets and decodes the storage value.
func (s *State) DecodeStorage(addr tellus.Address, key tellus.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit flattens all journaled writes into the committed source and drops
// every checkpoint. Reverting past a commit is not possible.
func (s *State) Commit() {
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		raw := v.(rlp.RawValue)
		if len(raw) == 0 {
			delete(s.base, key)
		} else {
			s.base[key] = raw
		}
		return true
	})
	s.sm.PopTo(0)
	s.sm.Push()
}
