// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/paralogue/tellus/tellus"
)

// Bytes32 is a wrapper for storage and retrieval of [32]byte.
type Bytes32 struct {
	context *Context
	pos     tellus.Bytes32
}

func NewBytes32(context *Context, pos tellus.Bytes32) *Bytes32 {
	return &Bytes32{context: context, pos: pos}
}

func (b *Bytes32) Get() (tellus.Bytes32, error) {
	return b.context.state.GetStorage(b.context.address, b.pos)
}

func (b *Bytes32) Set(bytes *tellus.Bytes32) {
	if bytes == nil {
		bytes = &tellus.Bytes32{}
	}
	b.context.state.SetStorage(b.context.address, b.pos, *bytes)
}
