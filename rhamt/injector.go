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
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// FaultRecord describes one mutation an Injector made to a trie's internal
// structure, kept for after-the-fact diagnosis of a fault-injection test
// run.
type FaultRecord struct {
	Op     string
	Detail string
}

// Injector is a white-box harness that mutates a RHAMT's internal
// structure directly, in place of the bit-level memory corruption the
// original's fault model assumes. It exists to let tests exercise the
// voter/registry recovery paths deterministically rather than relying on
// a hardware fault injector, and has no purpose outside a test binary;
// nothing in this package's public Insert/Read/Remove path calls it.
//
// Unlike the node-validity registry, the fault history kept here is
// allowed to forget its oldest entries once more than historySize records
// have been made — it is a
// diagnostic log, not a correctness check — so it is backed by
// github.com/hashicorp/golang-lru/v2's bounded cache rather than an
// unbounded slice or the exact-membership set registry.go uses.
type Injector[K comparable, V any, H HashType] struct {
	t       *RHAMT[K, V, H]
	history *lru.Cache[uint64, FaultRecord]
	seq     uint64
}

// NewInjector wraps t for fault injection. historySize bounds the number of
// FaultRecords retained; 0 selects a default of 256.
func NewInjector[K comparable, V any, H HashType](t *RHAMT[K, V, H], historySize int) *Injector[K, V, H] {
	if historySize <= 0 {
		historySize = 256
	}
	h, _ := lru.New[uint64, FaultRecord](historySize)
	return &Injector[K, V, H]{t: t, history: h}
}

// History returns every retained FaultRecord, oldest first.
func (inj *Injector[K, V, H]) History() []FaultRecord {
	keys := inj.history.Keys()
	out := make([]FaultRecord, 0, len(keys))
	for _, k := range keys {
		if v, ok := inj.history.Peek(k); ok {
			out = append(out, v)
		}
	}
	return out
}

func (inj *Injector[K, V, H]) record(op, detail string) {
	inj.seq++
	inj.history.Add(inj.seq, FaultRecord{Op: op, Detail: detail})
	faultsInjectedMeter.Inc(1)
	log.Warn("rhamt: fault injected", "op", op, "detail", detail)
}

// descendSplit returns the splitNode reached by following hash's path for
// exactly depth levels from the root. It returns ErrOutOfRange if depth is
// out of bounds or if the path does not consist entirely of split nodes
// down to that depth (e.g. it has already reached an unmaterialized slot
// or a leaf).
func (t *RHAMT[K, V, H]) descendSplit(hash H, depth int) (*splitNode[K, V, H], error) {
	if depth < 0 || depth >= t.maxDepth {
		return nil, ErrOutOfRange
	}
	cur := t.root
	for lvl := 0; lvl < depth; lvl++ {
		idx := subhash(hash, lvl)
		child := cur.children[idx][0]
		sn, ok := child.(*splitNode[K, V, H])
		if !ok {
			return nil, ErrOutOfRange
		}
		cur = sn
	}
	return cur, nil
}

// ChildValue is the argument to SetChild: either an explicit replacement
// node (which may itself be nil, to inject a null pointer), or, when
// Explicit is false, a request to synthesize an unregistered foreign node
// standing in for an arbitrary corrupted pointer value.
type ChildValue[K comparable, V any, H HashType] struct {
	Explicit bool
	Node     node[K, V, H]
}

// ChildNull is a ChildValue that explicitly sets a child reference to nil.
func ChildNull[K comparable, V any, H HashType]() ChildValue[K, V, H] {
	return ChildValue[K, V, H]{Explicit: true, Node: nil}
}

// ChildRandom is a ChildValue requesting an unregistered foreign node,
// standing in for the original's PRNG-sampled pointer corruption.
func ChildRandom[K comparable, V any, H HashType]() ChildValue[K, V, H] {
	return ChildValue[K, V, H]{Explicit: false}
}

// randomForeignNode allocates a node of the kind that belongs at depth but
// never registers it in t.reg, so that fastTraverse's registry probe
// treats any reference to it as dead — the memory-safe stand-in for a
// pointer sampled from unmapped or unrelated memory.
func (inj *Injector[K, V, H]) randomForeignNode(depth int) node[K, V, H] {
	id := inj.t.allocID()
	if depth == inj.t.maxDepth-1 {
		hashes := make([]H, inj.t.ftWidth)
		return &leafNode[K, V, H]{nodeIDVal: id, hashes: hashes}
	}
	s := &splitNode[K, V, H]{nodeIDVal: id}
	for i := range s.children {
		s.children[i] = make([]node[K, V, H], inj.t.ftWidth)
	}
	return s
}

// SwapChildrenLocal swaps the replica-0 child references of slots first and
// second within the splitNode reached by depth levels of hash, simulating
// two sibling pointers within one node trading places.
func (inj *Injector[K, V, H]) SwapChildrenLocal(hash H, depth int, first, second uint8) error {
	if int(first) >= NChild || int(second) >= NChild {
		return ErrOutOfRange
	}
	sn, err := inj.t.descendSplit(hash, depth)
	if err != nil {
		return err
	}
	sn.children[first][0], sn.children[second][0] = sn.children[second][0], sn.children[first][0]
	inj.record("swap_children_local", fmt.Sprintf("depth=%d first=%d second=%d", depth, first, second))
	return nil
}

// SwapChildrenOther swaps the replica-0 child reference at slot of the
// splitNode reached by depth1 levels of hash1 with that of the splitNode
// reached by depth2 levels of hash2, simulating a pointer swap across two
// unrelated nodes.
func (inj *Injector[K, V, H]) SwapChildrenOther(hash1 H, depth1 int, hash2 H, depth2 int, slot uint8) error {
	if int(slot) >= NChild {
		return ErrOutOfRange
	}
	a, err := inj.t.descendSplit(hash1, depth1)
	if err != nil {
		return err
	}
	b, err := inj.t.descendSplit(hash2, depth2)
	if err != nil {
		return err
	}
	a.children[slot][0], b.children[slot][0] = b.children[slot][0], a.children[slot][0]
	inj.record("swap_children_other", fmt.Sprintf("depth1=%d depth2=%d slot=%d", depth1, depth2, slot))
	return nil
}

// SetChild overwrites the first count redundant replicas of slot within the
// splitNode reached by depth levels of hash with val (or, if val is
// ChildRandom(), a freshly allocated and deliberately unregistered foreign
// node).
func (inj *Injector[K, V, H]) SetChild(hash H, depth int, slot uint8, val ChildValue[K, V, H], count int) error {
	if int(slot) >= NChild {
		return ErrOutOfRange
	}
	sn, err := inj.t.descendSplit(hash, depth)
	if err != nil {
		return err
	}
	if count < 0 || count > len(sn.children[slot]) {
		return ErrOutOfRange
	}

	replacement := val.Node
	if !val.Explicit {
		replacement = inj.randomForeignNode(depth)
	}
	for i := 0; i < count; i++ {
		sn.children[slot][i] = replacement
	}
	inj.record("set_child", fmt.Sprintf("depth=%d slot=%d count=%d explicit=%v", depth, slot, count, val.Explicit))
	return nil
}

// SetHash overwrites the first count redundant hash copies stored in the
// leaf reached by following hash down to the trie's maximum depth, with
// the wrongHash value.
func (inj *Injector[K, V, H]) SetHash(hash H, wrongHash H, count int) error {
	ln, err := inj.t.descendToLeaf(hash)
	if err != nil {
		return err
	}
	if count < 0 || count > len(ln.hashes) {
		return ErrOutOfRange
	}
	for i := 0; i < count; i++ {
		ln.hashes[i] = wrongHash
	}
	inj.record("set_hash", fmt.Sprintf("count=%d", count))
	return nil
}

// descendToLeaf returns the leafNode reached by following hash's path all
// the way to t.maxDepth.
func (t *RHAMT[K, V, H]) descendToLeaf(hash H) (*leafNode[K, V, H], error) {
	cur := t.root
	for lvl := 0; lvl < t.maxDepth; lvl++ {
		idx := subhash(hash, lvl)
		child := cur.children[idx][0]
		if lvl == t.maxDepth-1 {
			ln, ok := child.(*leafNode[K, V, H])
			if !ok {
				return nil, ErrOutOfRange
			}
			return ln, nil
		}
		sn, ok := child.(*splitNode[K, V, H])
		if !ok {
			return nil, ErrOutOfRange
		}
		cur = sn
	}
	return nil, ErrOutOfRange
}
