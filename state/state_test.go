// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paralogue/tellus/state"
	"github.com/paralogue/tellus/tellus"
)

var (
	addr = tellus.BytesToAddress([]byte("contract"))
	slot = tellus.BytesToBytes32([]byte("slot"))
)

func TestStorageRoundTrip(t *testing.T) {
	st := state.New()

	value := tellus.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, slot, value)

	got, err := st.GetStorage(addr, slot)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	// unset slot reads as zero
	got, err = st.GetStorage(addr, tellus.BytesToBytes32([]byte("other")))
	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCheckpointRevert(t *testing.T) {
	st := state.New()

	v1 := tellus.BytesToBytes32([]byte{1})
	v2 := tellus.BytesToBytes32([]byte{2})

	st.SetStorage(addr, slot, v1)

	rev := st.NewCheckpoint()
	st.SetStorage(addr, slot, v2)

	got, _ := st.GetStorage(addr, slot)
	assert.Equal(t, v2, got)

	st.RevertTo(rev)
	got, _ = st.GetStorage(addr, slot)
	assert.Equal(t, v1, got)
}

func TestCommit(t *testing.T) {
	st := state.New()

	v1 := tellus.BytesToBytes32([]byte{7})
	v2 := tellus.BytesToBytes32([]byte{8})

	st.SetStorage(addr, slot, v1)
	st.Commit()

	// committed values survive reverts taken after the commit
	rev := st.NewCheckpoint()
	st.SetStorage(addr, slot, v2)
	st.RevertTo(rev)

	got, _ := st.GetStorage(addr, slot)
	assert.Equal(t, v1, got)
}
