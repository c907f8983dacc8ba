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

	"github.com/stretchr/testify/require"
)

func TestMaxDepth(t *testing.T) {
	cases := []struct {
		bits int
		want int
	}{
		{8, 2},
		{16, 4},
		{32, 7},
		{64, 13},
		{128, 26},
		{24, -1},
	}
	for _, c := range cases {
		require.Equal(t, c.want, maxDepth(c.bits), "bits=%d", c.bits)
	}
}

func TestHashBitWidth(t *testing.T) {
	w, err := hashBitWidth[uint8]()
	require.NoError(t, err)
	require.Equal(t, 8, w)

	w, err = hashBitWidth[uint32]()
	require.NoError(t, err)
	require.Equal(t, 32, w)

	w, err = hashBitWidth[Hash128]()
	require.NoError(t, err)
	require.Equal(t, 128, w)
}

func TestSubhashUint32(t *testing.T) {
	// 0b00001_00010_00011 = slot0 is the low 5 bits (3), slot1 the next
	// 5 bits (2), slot2 the next 5 bits (1).
	var h uint32 = (1 << 10) | (2 << 5) | 3
	require.EqualValues(t, 3, subhash(h, 0))
	require.EqualValues(t, 2, subhash(h, 1))
	require.EqualValues(t, 1, subhash(h, 2))
	require.EqualValues(t, 0, subhash(h, 3))
}

func TestSubhashHash128(t *testing.T) {
	h := Hash128{Hi: 0, Lo: (2 << 5) | 3}
	require.EqualValues(t, 3, subhash(h, 0))
	require.EqualValues(t, 2, subhash(h, 1))

	// A slot that straddles the Lo/Hi boundary: depth 12 covers bits
	// 60..64, the top four bits of Lo plus the bottom bit of Hi. With Hi
	// all zero, only Lo's top four bits (all set) should show up.
	h2 := Hash128{Hi: 0, Lo: ^uint64(0)}
	require.EqualValues(t, 0b01111, subhash(h2, 12))
}

func TestHash128RshAnd(t *testing.T) {
	h := Hash128{Hi: 1, Lo: 0}
	shifted := h.Rsh(64)
	require.Equal(t, Hash128{Hi: 0, Lo: 1}, shifted)

	masked := Hash128{Hi: 0xFF, Lo: 0xFF}.And(Hash128{Hi: 0, Lo: 0x0F})
	require.Equal(t, Hash128{Hi: 0, Lo: 0x0F}, masked)
}
