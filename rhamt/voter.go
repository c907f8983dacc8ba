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

// voter reconciles a redundantly-stored sequence of FTWidth values of type
// C down to a single strict-majority consensus value, writing that value
// back over every entry of the sequence: accumulate distinct value/count
// pairs in a linear scan, early-exit on unanimity, and accept any count that
// strictly exceeds F (FTWidth = 2F+1 guarantees at most one such value can
// exist).
//
// voter carries no state beyond ftWidth and the F derived from it; it is
// cheap to construct and is
// not meant to be shared across goroutines (RHAMT itself is single-threaded,
// see the package doc).
type voter[C comparable] struct {
	ftWidth int
	f       int
}

func newVoter[C comparable](ftWidth int) *voter[C] {
	return &voter[C]{ftWidth: ftWidth, f: (ftWidth - 1) / 2}
}

// vote reconciles seq in place. With F == 0 (ftWidth == 1) this is a no-op
// that always succeeds, returning right after the F == 0 check below;
// there is no tally allocation on that path.
func (v *voter[C]) vote(seq []C) error {
	if v.f == 0 {
		return nil
	}

	var vals []C
	var counts []int

	for _, c := range seq {
		matched := false
		for i, val := range vals {
			if val == c {
				counts[i]++
				matched = true
				break
			}
		}
		if !matched {
			vals = append(vals, c)
			counts = append(counts, 1)
		}
	}

	if len(vals) == 1 {
		return nil
	}

	for i, count := range counts {
		if count == len(seq) {
			return nil
		}
		if count > v.f {
			for j := range seq {
				seq[j] = vals[i]
			}
			voterCorrectionsMeter.Inc(1)
			return nil
		}
	}

	return ErrNoConsensus
}
