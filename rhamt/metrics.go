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

import "github.com/ethereum/go-ethereum/metrics"

// These counters mirror the convention used throughout go-ethereum's own
// subsystems (trie, core/state, p2p): a handful of package-level, lazily
// registered meters rather than a metrics struct threaded through every
// call. They report on the health of the redundancy mechanism itself, not
// on throughput.
var (
	// voterCorrectionsMeter counts every vote that found a non-unanimous
	// but majority-agreeing sequence and wrote the corrected value back.
	voterCorrectionsMeter = metrics.NewRegisteredCounter("rhamt/voter/corrections", nil)

	// safePathRestartsMeter counts fast-path operations that hit an
	// inconsistency (a dead node-registry entry or a leaf hash mismatch)
	// and had to restart from root on the safe path.
	safePathRestartsMeter = metrics.NewRegisteredCounter("rhamt/traverse/saferestarts", nil)

	// unrepairableMeter counts safe-path operations that still could not
	// reach consensus or still disagreed with the path hash after voting.
	unrepairableMeter = metrics.NewRegisteredCounter("rhamt/traverse/unrepairable", nil)

	// faultsInjectedMeter counts calls made through an Injector.
	faultsInjectedMeter = metrics.NewRegisteredCounter("rhamt/injector/faults", nil)

	// sizeGauge tracks the current key count of the most recently operated-on
	// trie. Since RHAMT is not concurrency-safe there is at most one
	// meaningful value at a time per process, matching how go-ethereum
	// reports e.g. trie cache sizes.
	sizeGauge = metrics.NewRegisteredGauge("rhamt/size", nil)
)
