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

// Package composer describes, but does not implement, the external
// collaborator that reduces a circuit (built by a DSL/frontend this
// library does not provide) to the gate-lists and witness vectors the
// prover pipeline consumes (spec.md §1's "standard-library circuit
// builder" Non-goal). backend/plonk.Setup/Prove depend only on this
// interface, never on a concrete composer implementation.
package composer

import "github.com/BaoNinh2808/plonk-bn254/field/fr"

// GateWires are the per-gate wire-variable indices for one row: L, R, O
// and, for the Turbo variant, the fourth wire F.
type GateWires struct {
	L, R, O, F int
}

// SelectorRow is one gate's selector values in the arithmetisation
// identity q_m*w_l*w_r + q_l*w_l + q_r*w_r + q_o*w_o + q_c = 0 (spec.md §4.7
// Round 3 step 2), plus the Turbo/MiMC-specific selectors a composer may
// set to zero when unused.
type SelectorRow struct {
	Qm, Ql, Qr, Qo, Qc fr.Element
	Q4, Q4Next         fr.Element // turbo fourth-wire term
	QArith             fr.Element // turbo arithmetic-gate gate-type flag
	QRange             fr.Element // turbo base-4 range-accumulator flag
	QLogic             fr.Element // turbo XOR/AND logic-gate flag
	QEcc               fr.Element // turbo fixed-base scalar-mul flag
	QMimc              fr.Element // MiMC round flag (SPEC_FULL.md §5)
}

// CircuitDescription is what an external composer hands the prover/setup
// pipeline: a gate list, the wire-equivalence classes the permutation
// argument must close over (grouped per wire column), and the count of
// public inputs (always placed at the lowest gate indices).
type CircuitDescription struct {
	NbPublicInputs int
	Wires          []GateWires
	Selectors      []SelectorRow
	// Permutation is the cycle decomposition over the wire-epicycle space:
	// Permutation[col][row], flattened as targetCol*NumRows+targetRow,
	// gives the next wire in that variable's equivalence class, closing
	// back to the first occurrence (spec.md §3 "Wire epicycle").
	Permutation [][]int
}

// Composer is the boundary this library depends on: anything capable of
// producing a CircuitDescription and a concrete witness assignment from
// it. A DSL/frontend (out of scope here) implements this by walking a
// user's circuit function and recording gates as it goes.
type Composer interface {
	Compile() (CircuitDescription, error)
	Solve(publicInputs, secretInputs []fr.Element) ([]fr.Element, error)
}
