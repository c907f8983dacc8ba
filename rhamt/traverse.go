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

// opcode names the three operations the trie supports, carried alongside a
// request instead of branching on a magic sentinel value returned through a
// shared pointer channel. The C++ original unifies Insert/Read/Remove
// through a single `T *` return channel and reinterprets an integer as a
// pointer for Remove; this package carries a typed request/response pair
// instead.
type opcode int

const (
	opInsert opcode = iota
	opRead
	opRemove
)

// request carries the parameters and outputs of a single trie operation as
// it descends through fastTraverse/safeTraverse. It is discarded after one
// top-level call completes; a retry onto the safe path uses a fresh request
// so a partially-applied fast-path mutation can never be double-applied
// (apply is only ever called after every corruption check along the path
// has passed, never before).
type request[K comparable, V any] struct {
	op    opcode
	key   K
	value V

	result *V
	found  bool
}

// node is the closed sum {*splitNode, *leafNode}, dispatched via ordinary
// Go interface method calls rather than a hand-rolled tagged union, following
// the dominant pattern in the reference trie implementations (go-ethereum's
// own `node` interface switching over fullNode/shortNode/hashNode/valueNode,
// and the hamt64 nodeI/tableI/leafI split): Go's interface dispatch already
// compiles to a direct call once devirtualized, with no separate
// vtable-pointer cost to shave the way there is in C++.
type node[K comparable, V any, H HashType] interface {
	id() nodeID

	// fastTraverse trusts the first replica of every redundant slot it
	// reads and verifies only at the leaf (and, for split nodes, via the
	// node-validity registry — see registry.go). Returns the subtree count
	// delta caused by this operation, the subtree's own count after the
	// operation, and an error. The only error this ever returns is
	// ErrNoConsensus, used as the restart-to-safe-path signal; it is
	// never called again to continue a single logical operation once it
	// returns one.
	fastTraverse(t *RHAMT[K, V, H], req *request[K, V], hash H, depth int) (delta, count int, err error)

	// safeTraverse votes on every redundant slot before reading it. A
	// NoConsensus here has nowhere further to escalate to and propagates
	// to the caller; a leaf hash mismatch after voting becomes
	// ErrUnrepairableCorruption.
	safeTraverse(t *RHAMT[K, V, H], req *request[K, V], hash H, depth int) (delta, count int, err error)
}
