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

func TestVoterUnanimous(t *testing.T) {
	v := newVoter[int](3)
	seq := []int{7, 7, 7}
	require.NoError(t, v.vote(seq))
	require.Equal(t, []int{7, 7, 7}, seq)
}

func TestVoterCorrectsMinority(t *testing.T) {
	v := newVoter[int](3)
	seq := []int{7, 7, 9}
	require.NoError(t, v.vote(seq))
	require.Equal(t, []int{7, 7, 7}, seq)
}

func TestVoterNoConsensus(t *testing.T) {
	v := newVoter[int](3)
	seq := []int{1, 2, 3}
	require.ErrorIs(t, v.vote(seq), ErrNoConsensus)
}

func TestVoterZeroFaultToleranceIsNoOp(t *testing.T) {
	v := newVoter[int](1)
	seq := []int{42}
	require.NoError(t, v.vote(seq))
	require.Equal(t, []int{42}, seq)
}

func TestVoterWiderRedundancy(t *testing.T) {
	// FTWidth=5, F=2: three matching copies beat two matching copies.
	v := newVoter[string](5)
	seq := []string{"a", "a", "a", "b", "b"}
	require.NoError(t, v.vote(seq))
	for _, s := range seq {
		require.Equal(t, "a", s)
	}
}

func TestVoterWiderRedundancyTiedIsNoConsensus(t *testing.T) {
	// FTWidth=5, F=2: two vs two vs one, no count exceeds F=2.
	v := newVoter[string](5)
	seq := []string{"a", "a", "b", "b", "c"}
	require.ErrorIs(t, v.vote(seq), ErrNoConsensus)
}
