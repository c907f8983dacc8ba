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

// splitNode is a 32-way branch, one slot per possible subhash value at this
// depth. Each slot holds FTWidth redundant copies of the child reference;
// fastTraverse follows replica 0 of the targeted slot (looking at the other
// replicas only when replica 0 is nil and F > 0), safeTraverse votes across
// the whole slot before reading it.
type splitNode[K comparable, V any, H HashType] struct {
	nodeIDVal nodeID
	children  [NChild][]node[K, V, H]
	count     int
}

func (t *RHAMT[K, V, H]) newSplitNode() *splitNode[K, V, H] {
	id := t.allocID()
	s := &splitNode[K, V, H]{nodeIDVal: id}
	for i := range s.children {
		s.children[i] = make([]node[K, V, H], t.ftWidth)
	}
	t.reg.register(id)
	return s
}

func (s *splitNode[K, V, H]) id() nodeID { return s.nodeIDVal }

// materialize allocates the child this split node should have at the given
// subhash slot: a leaf if this split node sits at the last split depth,
// another split node otherwise. It only allocates the child; the caller
// fills every redundant replica of the slot with it.
func (t *RHAMT[K, V, H]) materialize(hash H, depth int) node[K, V, H] {
	if depth == t.maxDepth-1 {
		return t.newLeafNode(hash)
	}
	return t.newSplitNode()
}

func (s *splitNode[K, V, H]) fastTraverse(t *RHAMT[K, V, H], req *request[K, V], hash H, depth int) (int, int, error) {
	idx := subhash(hash, depth)
	slot := s.children[idx]

	child := slot[0]
	if child != nil && !t.reg.isLive(child.id()) {
		return 0, s.count, ErrNoConsensus
	}

	if child == nil {
		// A nil replica-0 is ambiguous on its own: it is the shape of a
		// slot that was never materialized, but it is also the shape of
		// one whose live pointer was corrupted away to null. Trusting it
		// blindly would let a single corrupted replica silently present
		// an existing key as absent, breaking the at-most-F guarantee
		// this path exists to uphold. So when F > 0, a nil replica-0 is
		// only accepted at face value if every other replica agrees;
		// otherwise the disagreement itself is the corruption signal.
		if t.f > 0 {
			for _, c := range slot[1:] {
				if c != nil {
					return 0, s.count, ErrNoConsensus
				}
			}
		}
		if req.op != opInsert {
			return 0, s.count, nil
		}
		child = t.materialize(hash, depth)
		for i := range slot {
			slot[i] = child
		}
	}

	delta, childCount, err := child.fastTraverse(t, req, hash, depth+1)
	if err != nil {
		return 0, s.count, err
	}
	s.count += delta
	if req.op == opRemove && childCount == 0 {
		t.reg.unregister(child.id())
		for i := range slot {
			slot[i] = nil
		}
	}
	return delta, s.count, nil
}

func (s *splitNode[K, V, H]) safeTraverse(t *RHAMT[K, V, H], req *request[K, V], hash H, depth int) (int, int, error) {
	idx := subhash(hash, depth)
	slot := s.children[idx]

	if err := t.childVoter.vote(slot); err != nil {
		return 0, s.count, err
	}

	child := slot[0]
	if child == nil {
		if req.op != opInsert {
			return 0, s.count, nil
		}
		child = t.materialize(hash, depth)
		for i := range slot {
			slot[i] = child
		}
	}

	delta, childCount, err := child.safeTraverse(t, req, hash, depth+1)
	if err != nil {
		return 0, s.count, err
	}
	s.count += delta
	if req.op == opRemove && childCount == 0 {
		t.reg.unregister(child.id())
		for i := range slot {
			slot[i] = nil
		}
	}
	return delta, s.count, nil
}
