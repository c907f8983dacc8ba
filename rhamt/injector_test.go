// Copyright 2026 The rhamt Authors
// This file is part of the rhamt library.
//
// The rhamt library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The rhamt library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the rhamt library. If not, see <http://www.gnu.org/licenses/>.

package rhamt

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func identityHashU8(k uint32) uint8 { return uint8(k) }

// Swapping the replica-0 child pointers of two sibling slots within one
// split node still reads back correctly, since only one of the FTWidth
// replicas per slot was disturbed and F=1 tolerates exactly that.
func TestInjectorSwapChildrenLocal(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)

	tr.Insert(0, 100) // subhash(0,0) == 0
	tr.Insert(1, 101) // subhash(1,0) == 1

	inj := NewInjector[uint32, uint32, uint8](tr, 0)
	require.NoError(t, inj.SwapChildrenLocal(0, 0, 0, 1))

	v, ok := tr.Read(0)
	require.True(t, ok, "history: %s", spew.Sdump(inj.History()))
	require.Equal(t, uint32(100), v)

	v, ok = tr.Read(1)
	require.True(t, ok, "history: %s", spew.Sdump(inj.History()))
	require.Equal(t, uint32(101), v)
}

// Swapping replica-0 child pointers at the same slot across two unrelated
// split nodes (reached via different hash prefixes) is likewise within the
// F=1 tolerance and must reconcile to the correct values.
func TestInjectorSwapChildrenOther(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint32]{
		FaultTolerance: 1,
		Hasher:         identityHash,
		Equal:          eqUint32,
	})
	require.NoError(t, err)

	// subhash(101,0)=5, subhash(101,1)=3; subhash(106,0)=10, subhash(106,1)=3.
	tr.Insert(101, 1010)
	tr.Insert(106, 1060)

	inj := NewInjector[uint32, uint32, uint32](tr, 0)
	require.NoError(t, inj.SwapChildrenOther(5, 1, 10, 1, 3))

	v, ok := tr.Read(101)
	require.True(t, ok, "history: %s", spew.Sdump(inj.History()))
	require.Equal(t, uint32(1010), v)

	v, ok = tr.Read(106)
	require.True(t, ok, "history: %s", spew.Sdump(inj.History()))
	require.Equal(t, uint32(1060), v)
}

// A single-replica null injection (count == F) sits within the F=1
// tolerance: the two surviving replicas still form a majority and the
// safe path must restore the correct pointer.
func TestInjectorSetChildNullWithinTolerance(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)

	keys := []uint32{0, 32, 64, 1, 2, 3}
	for _, k := range keys {
		tr.Insert(k, k*10)
	}

	inj := NewInjector[uint32, uint32, uint8](tr, 0)
	require.NoError(t, inj.SetChild(0, 0, 0, ChildNull[uint32, uint32, uint8](), 1))

	for _, k := range keys {
		v, ok := tr.Read(k)
		require.True(t, ok, "key=%d history=%s", k, spew.Sdump(inj.History()))
		require.Equal(t, k*10, v)
	}
}

// Corrupting count == FTWidth-1 == F+1 replicas of one slot (for F=1)
// injects more corrupted replicas than the F=1 tolerance covers for that
// slot. This is outside the guarantee the voter's strict-majority rule
// provides (F+1 identical corrupted copies themselves form a majority); the
// contract the implementation upholds here instead is the weaker one: the
// trie never returns a silently wrong value for the affected keys (it
// either still recovers them, or honestly reports them missing), while
// every key routed through an untouched part of the trie is unaffected.
func TestInjectorSetChildNullBeyondTolerance(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)

	affected := []uint32{0, 32, 64}  // subhash(_,0) == 0
	untouched := []uint32{1, 2, 161} // subhash(_,0) != 0
	for _, k := range append(append([]uint32{}, affected...), untouched...) {
		tr.Insert(k, k*10)
	}

	inj := NewInjector[uint32, uint32, uint8](tr, 0)
	require.NoError(t, inj.SetChild(0, 0, 0, ChildNull[uint32, uint32, uint8](), 2))

	for _, k := range affected {
		v, ok := tr.Read(k)
		if ok {
			require.Equal(t, k*10, v, "a present read must never be wrong: key=%d history=%s", k, spew.Sdump(inj.History()))
		}
	}

	for _, k := range untouched {
		v, ok := tr.Read(k)
		require.True(t, ok, "key=%d history=%s", k, spew.Sdump(inj.History()))
		require.Equal(t, k*10, v)
	}
}

// A replica-0 pointer replaced by a freshly allocated but never-registered
// node stands in for a pointer sampled from unmapped memory. fastTraverse
// must catch this via the node-validity registry rather than silently
// descending into (or past) it.
func TestInjectorSetChildRandomForeignNode(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)

	keys := []uint32{0, 32, 64}
	for _, k := range keys {
		tr.Insert(k, k+1)
	}

	inj := NewInjector[uint32, uint32, uint8](tr, 0)
	require.NoError(t, inj.SetChild(0, 0, 0, ChildRandom[uint32, uint32, uint8](), 1))

	for _, k := range keys {
		v, ok := tr.Read(k)
		require.True(t, ok, "key=%d history=%s", k, spew.Sdump(inj.History()))
		require.Equal(t, k+1, v)
	}
}

func TestInjectorSetHash(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)

	tr.Insert(7, 700)

	inj := NewInjector[uint32, uint32, uint8](tr, 0)
	require.NoError(t, inj.SetHash(7, 0xFF, 1))

	v, ok := tr.Read(7)
	require.True(t, ok, "history: %s", spew.Sdump(inj.History()))
	require.Equal(t, uint32(700), v)
}

func TestInjectorOutOfRange(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)
	inj := NewInjector[uint32, uint32, uint8](tr, 0)

	require.ErrorIs(t, inj.SwapChildrenLocal(0, -1, 0, 1), ErrOutOfRange)
	require.ErrorIs(t, inj.SwapChildrenLocal(0, 0, 40, 1), ErrOutOfRange)
	require.ErrorIs(t, inj.SetChild(0, 0, 0, ChildNull[uint32, uint32, uint8](), 99), ErrOutOfRange)
}

func TestInjectorHistoryRecordsEachFault(t *testing.T) {
	tr, err := New(Config[uint32, uint32, uint8]{
		FaultTolerance: 1,
		Hasher:         identityHashU8,
		Equal:          eqUint32,
	})
	require.NoError(t, err)
	tr.Insert(0, 1)
	tr.Insert(1, 2)

	inj := NewInjector[uint32, uint32, uint8](tr, 0)
	require.NoError(t, inj.SwapChildrenLocal(0, 0, 0, 1))
	require.NoError(t, inj.SetHash(0, 0xAA, 1))

	require.Len(t, inj.History(), 2)
}
