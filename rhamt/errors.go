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

import "errors"

// ErrNoConsensus is returned by the voter when no value among a replicated
// sequence holds a strict majority. On the fast path this is caught
// internally and converted into a safe-path restart from root; on the safe
// path it propagates to the caller.
var ErrNoConsensus = errors.New("rhamt: no consensus among redundant copies")

// ErrUnrepairableCorruption is returned when the safe path, after voting,
// still finds the reconciled leaf hash disagreeing with the hash of the
// path that led to it. The container is left in its best-effort repaired
// state at every frame above the failure.
var ErrUnrepairableCorruption = errors.New("rhamt: leaf hash unrepairable after voting")

// ErrOutOfRange is returned by the Injector when a slot, child index, or
// depth argument falls outside the bounds of the trie's shape. No mutation
// is performed when this error is returned.
var ErrOutOfRange = errors.New("rhamt: injector argument out of range")

// ErrInvalidOperation is returned when an opcode outside {Insert, Read,
// Remove} reaches apply; it indicates a programmer error in this package,
// never a corruption.
var ErrInvalidOperation = errors.New("rhamt: invalid operation code")

// ErrInvalidFaultTolerance is returned by New when the configured fault
// tolerance factor F falls outside [0, 7]. The C++ original enforces this
// bound with a compile-time static_assert; Go's generics have no
// const-generic equivalent, so the check is made once, at construction.
var ErrInvalidFaultTolerance = errors.New("rhamt: fault tolerance factor must be in [0, 7]")

// ErrUnsupportedHashWidth is returned by New when H's runtime type does not
// match one of the supported hash widths (8/16/32/64/128 bits). This is the
// runtime stand-in for the C++ original's compile-time maxdepth == -1
// rejection.
var ErrUnsupportedHashWidth = errors.New("rhamt: unsupported hash width")
