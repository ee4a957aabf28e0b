// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tellus

import (
	"encoding/binary"
	"strconv"
)

// ParachainID identifies an oracle-consumer chain registered with the system.
type ParachainID uint32

// String implements the stringer interface.
func (id ParachainID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Bytes returns the big-endian byte form of the identifier,
// used for storage slot derivation.
func (id ParachainID) Bytes() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(id))
	return b
}
