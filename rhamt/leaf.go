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

// entry is one key/value pair held in a leaf's collision list.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// leafNode is a collision list for every key whose hash agrees on all
// Bits*depth bits consumed to reach it, plus FTWidth redundant copies of
// that full hash. A single copy would be enough to decide collision
// membership; FTWidth copies let the voter reconcile a corrupted copy
// before it is compared against the hash of the path that led here.
type leafNode[K comparable, V any, H HashType] struct {
	nodeIDVal nodeID
	hashes    []H
	entries   []entry[K, V]
}

func (t *RHAMT[K, V, H]) newLeafNode(hash H) *leafNode[K, V, H] {
	id := t.allocID()
	hashes := make([]H, t.ftWidth)
	for i := range hashes {
		hashes[i] = hash
	}
	t.reg.register(id)
	return &leafNode[K, V, H]{nodeIDVal: id, hashes: hashes}
}

func (n *leafNode[K, V, H]) id() nodeID { return n.nodeIDVal }

// apply performs the requested operation against the collision list,
// returning the resulting count delta (+1 on a fresh insert, -1 on a
// successful remove, 0 otherwise).
func (n *leafNode[K, V, H]) apply(t *RHAMT[K, V, H], req *request[K, V]) (int, error) {
	switch req.op {
	case opInsert:
		for i := range n.entries {
			if t.cfg.Equal(n.entries[i].key, req.key) {
				n.entries[i].value = req.value
				req.result = &n.entries[i].value
				req.found = true
				return 0, nil
			}
		}
		n.entries = append(n.entries, entry[K, V]{key: req.key, value: req.value})
		req.result = &n.entries[len(n.entries)-1].value
		req.found = false
		return 1, nil

	case opRead:
		for i := range n.entries {
			if t.cfg.Equal(n.entries[i].key, req.key) {
				req.result = &n.entries[i].value
				req.found = true
				return 0, nil
			}
		}
		req.found = false
		return 0, nil

	case opRemove:
		for i := range n.entries {
			if t.cfg.Equal(n.entries[i].key, req.key) {
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				req.found = true
				return -1, nil
			}
		}
		req.found = false
		return 0, nil

	default:
		return 0, ErrInvalidOperation
	}
}

func (n *leafNode[K, V, H]) fastTraverse(t *RHAMT[K, V, H], req *request[K, V], hash H, depth int) (int, int, error) {
	if t.f > 0 {
		if err := t.hashVoter.vote(n.hashes); err != nil {
			return 0, len(n.entries), ErrNoConsensus
		}
	}
	if n.hashes[0] != hash {
		return 0, len(n.entries), ErrNoConsensus
	}
	delta, err := n.apply(t, req)
	if err != nil {
		return 0, len(n.entries), err
	}
	return delta, len(n.entries), nil
}

func (n *leafNode[K, V, H]) safeTraverse(t *RHAMT[K, V, H], req *request[K, V], hash H, depth int) (int, int, error) {
	if t.f > 0 {
		if err := t.hashVoter.vote(n.hashes); err != nil {
			return 0, len(n.entries), err
		}
	}
	if n.hashes[0] != hash {
		return 0, len(n.entries), ErrUnrepairableCorruption
	}
	delta, err := n.apply(t, req)
	if err != nil {
		return 0, len(n.entries), err
	}
	return delta, len(n.entries), nil
}
