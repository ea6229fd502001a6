// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plonk

import (
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
)

// Witness is the concrete per-row wire assignment a Composer.Solve call
// produces, laid out one slice per wire column (spec.md §3 "Witness").
// Turbo circuits populate all four columns; every other variant leaves
// the fourth column nil.
type Witness struct {
	L, R, O, F []fr.Element
}

// NumRows is the witness's row count, taken from the L column (every
// column has equal length by construction of a well-formed witness).
func (w *Witness) NumRows() int { return len(w.L) }

// column returns the witness's i-th wire column (0=L,1=R,2=O,3=F),
// nil if the variant does not use a fourth column.
func (w *Witness) column(i int) []fr.Element {
	switch i {
	case 0:
		return w.L
	case 1:
		return w.R
	case 2:
		return w.O
	case 3:
		return w.F
	default:
		return nil
	}
}
