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

import "github.com/holiman/uint256"

// NChild is the number of children per SplitNode (2^Bits).
const NChild = 32

// Bits is the number of hash bits consumed per trie level.
const Bits = 5

const bitsMask = (1 << Bits) - 1

// HashType constrains the hash width a RHAMT may be parameterized over. The
// C++ original allows HashType to be any of {8,16,32,64,128}-bit unsigned
// integers, rejecting everything else at compile time via maxdepth == -1.
// Go's type sets cannot express "one of these concrete kinds or this struct
// type" with shared arithmetic operators, so subhash and hashBitWidth
// dispatch on a runtime type switch: the four integer cases use the same
// shift-and-mask expression, and Hash128 goes through uint256. The switch
// matches the predeclared integer types only, so a named type whose
// underlying type is one of them is rejected by New.
type HashType interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | Hash128
}

// Hash128 is a 128-bit unsigned hash value, represented as two 64-bit words
// so that it remains a comparable struct (usable as a map key and as a type
// argument satisfying Go's comparable constraint, unlike uint256.Int whose
// internal representation is an implementation detail not meant to be
// compared directly). Arithmetic needed for subhash extraction is delegated
// to github.com/holiman/uint256, the 256-bit integer type this module
// already depends on, rather than hand-rolled double-word shifts.
type Hash128 struct {
	Hi, Lo uint64
}

func (h Hash128) toUint256() *uint256.Int {
	return uint256.NewInt(0).SetBytes(
		append(
			append(make([]byte, 0, 16), be64(h.Hi)...),
			be64(h.Lo)...,
		),
	)
}

func be64(v uint64) []byte {
	return []byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}
}

func fromUint256(u *uint256.Int) Hash128 {
	var b [32]byte
	u.WriteToSlice(b[:])
	return Hash128{
		Hi: beToUint64(b[16:24]),
		Lo: beToUint64(b[24:32]),
	}
}

func beToUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// Rsh returns h >> bits.
func (h Hash128) Rsh(bits uint) Hash128 {
	u := h.toUint256()
	u.Rsh(u, bits)
	return fromUint256(u)
}

// And returns h & mask.
func (h Hash128) And(mask Hash128) Hash128 {
	u := h.toUint256()
	m := mask.toUint256()
	u.And(u, m)
	return fromUint256(u)
}

// subhash extracts the Bits-wide slice of h starting at bit Bits*depth,
// selecting the child slot index at a given trie depth: (h >> Bits*depth) &
// mask. The mask is the untyped constant bitsMask, never re-derived per
// call, so a transposed shift/mask pair can't silently creep back in.
func subhash[H HashType](h H, depth int) uint8 {
	switch v := any(h).(type) {
	case uint8:
		return uint8((v >> uint(Bits*depth)) & bitsMask)
	case uint16:
		return uint8((v >> uint(Bits*depth)) & bitsMask)
	case uint32:
		return uint8((v >> uint(Bits*depth)) & bitsMask)
	case uint64:
		return uint8((v >> uint(Bits*depth)) & bitsMask)
	case Hash128:
		shifted := v.Rsh(uint(Bits * depth))
		return uint8(shifted.Lo & bitsMask)
	default:
		panic("rhamt: unreachable hash kind in subhash")
	}
}

// hashBitWidth returns the bit width of H, or an error if H's runtime kind
// is not one of the five supported widths. This stands in for the C++
// original's compile-time `sizeof(HashType)*8`.
func hashBitWidth[H HashType]() (int, error) {
	var zero H
	switch any(zero).(type) {
	case uint8:
		return 8, nil
	case uint16:
		return 16, nil
	case uint32:
		return 32, nil
	case uint64:
		return 64, nil
	case Hash128:
		return 128, nil
	default:
		return 0, ErrUnsupportedHashWidth
	}
}

// maxDepth returns ceil(bitWidth / Bits), the maximum depth of the trie for
// a given hash width, or -1 (mirroring the C++ sentinel) if bitWidth is
// unsupported.
func maxDepth(bitWidth int) int {
	switch bitWidth {
	case 8:
		return 2
	case 16:
		return 4
	case 32:
		return 7
	case 64:
		return 13
	case 128:
		return 26
	default:
		return -1
	}
}
