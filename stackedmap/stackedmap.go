// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap implements a key/value map with save-restore semantics.
// Values put at a higher revision shadow those of lower revisions, and a
// whole revision can be popped to discard every write made since it was
// pushed. It is the journaling primitive behind state checkpoints.
package stackedmap

// MapGetter defines the getter of the underlying data source.
type MapGetter func(key any) (value any, exist bool)

// StackedMap maintains a stack of write layers over a read-only source.
type StackedMap struct {
	src       MapGetter
	layers    []*layer
	revisions map[any][]int // key -> stack of layer indexes holding the key
}

type layer struct {
	kvs     map[any]any
	journal []JournalEntry
}

// JournalEntry records a single Put operation.
type JournalEntry struct {
	Key   any
	Value any
}

// New creates an instance of StackedMap. src acts as the source of data.
func New(src MapGetter) *StackedMap {
	return &StackedMap{
		src:       src,
		revisions: make(map[any][]int),
	}
}

// Depth returns the number of pushed layers.
func (sm *StackedMap) Depth() int {
	return len(sm.layers)
}

// Push appends a new write layer and returns the stack depth before the push.
func (sm *StackedMap) Push() int {
	sm.layers = append(sm.layers, &layer{kvs: make(map[any]any)})
	return len(sm.layers) - 1
}

// Pop removes the topmost layer, reverting all Put operations since the
// matching Push.
func (sm *StackedMap) Pop() {
	top := sm.layers[len(sm.layers)-1]
	for key := range top.kvs {
		revs := sm.revisions[key]
		revs = revs[:len(revs)-1]
		if len(revs) == 0 {
			delete(sm.revisions, key)
		} else {
			sm.revisions[key] = revs
		}
	}
	sm.layers = sm.layers[:len(sm.layers)-1]
}

// PopTo pops layers until the stack depth reaches depth.
func (sm *StackedMap) PopTo(depth int) {
	for len(sm.layers) > depth {
		sm.Pop()
	}
}

// Get returns the value for the given key, searching from the topmost layer
// down and falling back to the source. The second return value indicates
// whether the key was found.
func (sm *StackedMap) Get(key any) (any, bool) {
	if revs, ok := sm.revisions[key]; ok {
		l := sm.layers[revs[len(revs)-1]]
		if v, ok := l.kvs[key]; ok {
			return v, true
		}
	}
	return sm.src(key)
}

// Put writes a key/value pair into the topmost layer.
// It panics if no layer has been pushed.
func (sm *StackedMap) Put(key, value any) {
	top := sm.layers[len(sm.layers)-1]
	if _, ok := top.kvs[key]; !ok {
		// record the layer index for fast lookup
		sm.revisions[key] = append(sm.revisions[key], len(sm.layers)-1)
	}
	top.kvs[key] = value
	top.journal = append(top.journal, JournalEntry{Key: key, Value: value})
}

// Journal iterates all Put operations in order, across all layers.
// The callback returns false to abort iteration.
func (sm *StackedMap) Journal(cb func(key, value any) bool) {
	for _, l := range sm.layers {
		for _, e := range l.journal {
			if !cb(e.Key, e.Value) {
				return
			}
		}
	}
}
