// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/paralogue/tellus/tellus"
)

// StorageEncoder describes the encoder of a structured storage value.
// Returning nil bytes clears the storage slot.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder describes the decoder of a structured storage value.
// It is passed nil bytes when the slot is empty.
type StorageDecoder interface {
	Decode([]byte) error
}

// GetStructuredStorage gets and decodes a structured storage value.
func (s *State) GetStructuredStorage(addr tellus.Address, key tellus.Bytes32, val StorageDecoder) error {
	return s.DecodeStorage(addr, key, val.Decode)
}

// SetStructuredStorage encodes and sets a structured storage value.
func (s *State) SetStructuredStorage(addr tellus.Address, key tellus.Bytes32, val StorageEncoder) error {
	return s.EncodeStorage(addr, key, val.Encode)
}
