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

import mapset "github.com/deckarep/golang-set/v2"

// nodeID is a monotonically-assigned identity for every SplitNode and
// LeafNode ever allocated by a RHAMT. It exists purely so the registry can
// answer "is this replica pointer live" without dereferencing it.
type nodeID uint64

// registry tracks which node IDs currently belong to the trie. Go never
// hands out a dangling or wild pointer the way a corrupted machine word can
// in a language with raw pointers, so there is no segfault to catch and no
// signal handler to install; fastTraverse instead probes this exact
// membership set before trusting an unvoted replica-zero child reference,
// turning "does this pointer resolve" into "does this ID still belong".
//
// A bounded cache (github.com/hashicorp/golang-lru/v2, used elsewhere in
// this package for the Injector's fault history) is the wrong structure
// here: eviction would make isLive return false for a node that is still
// genuinely live, manufacturing false corruption signals on nothing more
// than an unlucky recency ordering. Exact, unbounded membership is a
// correctness requirement, not a performance cache, so registry is backed
// by github.com/deckarep/golang-set/v2's plain set instead.
type registry struct {
	live mapset.Set[nodeID]
}

func newRegistry() *registry {
	return &registry{live: mapset.NewThreadUnsafeSet[nodeID]()}
}

func (r *registry) register(id nodeID) {
	r.live.Add(id)
}

func (r *registry) unregister(id nodeID) {
	r.live.Remove(id)
}

func (r *registry) isLive(id nodeID) bool {
	return r.live.Contains(id)
}
