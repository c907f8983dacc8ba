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

// Package rhamt implements a reliable hash array mapped trie: an in-memory
// map whose internal nodes carry 2F+1-way redundant copies of every
// pointer and hash, so that up to F corrupted copies at any single
// location can be detected and repaired by majority vote rather than
// crashing or returning a wrong answer.
//
// A RHAMT is not safe for concurrent use; callers needing concurrent
// access must serialize it themselves, the same contract go-ethereum's
// own trie types carry.
package rhamt

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// Config parameterizes a RHAMT at construction. FaultTolerance (F) is a
// runtime field rather than a compile-time constant: Go generics have no
// const-generic parameters to mirror the C++ original's
// `template <typename K, typename V, typename H, int F>`, so F, FTWidth
// (derived from F) and maxDepth (derived from H's bit width) are computed
// once in New and carried on the RHAMT value instead.
type Config[K comparable, V any, H HashType] struct {
	// FaultTolerance is F: the number of corrupted redundant copies, at
	// any single slot, this trie can detect and repair. Must be in
	// [0, 7]; FTWidth = 2F+1 redundant copies are stored per slot.
	FaultTolerance int

	// Hasher computes the full-width hash of a key. Required.
	Hasher func(K) H

	// Equal reports whether two keys are the same, for collision-list
	// membership tests within a leaf. Required.
	Equal func(a, b K) bool
}

// RHAMT is a reliable hash array mapped trie over keys K, values V, and
// hash width H.
type RHAMT[K comparable, V any, H HashType] struct {
	cfg Config[K, V, H]

	f        int
	ftWidth  int
	maxDepth int

	root *splitNode[K, V, H]
	reg  *registry
	next uint64

	hashVoter  *voter[H]
	childVoter *voter[node[K, V, H]]
}

// New constructs an empty RHAMT from cfg.
func New[K comparable, V any, H HashType](cfg Config[K, V, H]) (*RHAMT[K, V, H], error) {
	if cfg.FaultTolerance < 0 || cfg.FaultTolerance > 7 {
		return nil, ErrInvalidFaultTolerance
	}
	if cfg.Hasher == nil || cfg.Equal == nil {
		return nil, fmt.Errorf("rhamt: Config.Hasher and Config.Equal are required")
	}

	bitWidth, err := hashBitWidth[H]()
	if err != nil {
		return nil, err
	}
	md := maxDepth(bitWidth)
	if md < 0 {
		return nil, ErrUnsupportedHashWidth
	}

	t := &RHAMT[K, V, H]{
		cfg:      cfg,
		f:        cfg.FaultTolerance,
		ftWidth:  2*cfg.FaultTolerance + 1,
		maxDepth: md,
		reg:      newRegistry(),
	}
	t.hashVoter = newVoter[H](t.ftWidth)
	t.childVoter = newVoter[node[K, V, H]](t.ftWidth)
	t.root = t.newSplitNode()
	return t, nil
}

func (t *RHAMT[K, V, H]) allocID() nodeID {
	t.next++
	return nodeID(t.next)
}

// Size returns the number of keys currently stored.
func (t *RHAMT[K, V, H]) Size() int { return t.root.count }

// Empty reports whether the trie holds no keys.
func (t *RHAMT[K, V, H]) Empty() bool { return t.root.count == 0 }

// Insert stores value under key, overwriting any existing value for that
// key, and returns a pointer to the stored value. The pointer is only
// valid until the next mutating call on t.
func (t *RHAMT[K, V, H]) Insert(key K, value V) *V {
	hash := t.cfg.Hasher(key)
	req := &request[K, V]{op: opInsert, key: key, value: value}
	t.run(hash, req)
	return req.result
}

// Read looks up key, returning its value and true if present.
func (t *RHAMT[K, V, H]) Read(key K) (V, bool) {
	hash := t.cfg.Hasher(key)
	req := &request[K, V]{op: opRead, key: key}
	t.run(hash, req)
	if req.result == nil {
		var zero V
		return zero, false
	}
	return *req.result, true
}

// Remove deletes key, reporting whether it was present.
func (t *RHAMT[K, V, H]) Remove(key K) bool {
	hash := t.cfg.Hasher(key)
	req := &request[K, V]{op: opRemove, key: key}
	t.run(hash, req)
	return req.found
}

// run drives a single logical operation: it first tries the fast path, and
// on ErrNoConsensus — the only error fastTraverse ever returns — falls back
// once to the safe path with a fresh request. A safe-path error is terminal
// for this operation: either ErrNoConsensus (voting on a child slot or on
// a leaf's hashes found no majority) or ErrUnrepairableCorruption (a leaf hash still
// disagrees after voting), both surfaced as a not-found result rather than
// panicking, with the underlying error logged and counted.
func (t *RHAMT[K, V, H]) run(hash H, req *request[K, V]) {
	_, _, err := t.root.fastTraverse(t, req, hash, 0)
	if err == nil {
		sizeGauge.Update(int64(t.root.count))
		return
	}

	log.Warn("rhamt: fast path hit inconsistency, retrying on safe path", "err", err)
	safePathRestartsMeter.Inc(1)

	retry := &request[K, V]{op: req.op, key: req.key, value: req.value}
	_, _, err = t.root.safeTraverse(t, retry, hash, 0)
	if err != nil {
		log.Error("rhamt: operation failed after safe-path vote", "err", err)
		unrepairableMeter.Inc(1)
		sizeGauge.Update(int64(t.root.count))
		return
	}

	req.result = retry.result
	req.found = retry.found
	sizeGauge.Update(int64(t.root.count))
}
