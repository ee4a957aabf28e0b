// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paralogue/tellus/stackedmap"
)

func TestStackedMap(t *testing.T) {
	src := map[string]string{"base": "value"}
	sm := stackedmap.New(func(key any) (any, bool) {
		v, ok := src[key.(string)]
		return v, ok
	})

	sm.Push()
	v, ok := sm.Get("base")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	sm.Put("k1", "v1")
	v, ok = sm.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	rev := sm.Push()
	sm.Put("k1", "v1.1")
	sm.Put("k2", "v2")
	v, _ = sm.Get("k1")
	assert.Equal(t, "v1.1", v)

	sm.PopTo(rev)
	v, _ = sm.Get("k1")
	assert.Equal(t, "v1", v)
	_, ok = sm.Get("k2")
	assert.False(t, ok)
}

func TestStackedMapShadowing(t *testing.T) {
	sm := stackedmap.New(func(any) (any, bool) { return nil, false })

	sm.Push()
	sm.Put("k", 1)
	sm.Push()
	sm.Put("k", 2)
	sm.Push()
	sm.Put("k", 3)

	v, _ := sm.Get("k")
	assert.Equal(t, 3, v)

	sm.Pop()
	v, _ = sm.Get("k")
	assert.Equal(t, 2, v)

	sm.PopTo(1)
	v, _ = sm.Get("k")
	assert.Equal(t, 1, v)

	assert.Equal(t, 1, sm.Depth())
}

func TestJournal(t *testing.T) {
	sm := stackedmap.New(func(any) (any, bool) { return nil, false })

	sm.Push()
	sm.Put("a", 1)
	sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)

	var seen []any
	sm.Journal(func(k, v any) bool {
		seen = append(seen, k, v)
		return true
	})
	assert.Equal(t, []any{"a", 1, "b", 2, "a", 3}, seen)
}
