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
	"github.com/BaoNinh2808/plonk-bn254/field/fr/polynomial"
)

// buildLinearisation assembles r(X) (spec.md §4.7 Round 4): a linear
// combination of the committed selector and permutation polynomials, each
// scaled by a coefficient computed entirely from the round-4 openings, so
// that r(zeta) can be checked via a single batched opening alongside the
// wire and sigma polynomials rather than needing its own fresh commitment.
func buildLinearisation(
	pk *ProvingKey,
	wireEvalsAtZeta [numWireColumnsMax]fr.Element,
	sigmaEvalsAtZ [numWireColumnsMax]fr.Element,
	zShiftEval, w4ShiftEval, l1AtZeta, zeta, beta, gamma fr.Element,
	alphaPow []fr.Element,
	nonlinearEvals map[string]fr.Element,
	zPoly *polynomial.Polynomial,
) (*polynomial.Polynomial, error) {
	numCols := pk.Variant.NumWireColumns()

	zCoeff, lastSigmaTerm, _ := permutationLinearisationTerms(
		wireEvalsAtZeta, sigmaEvalsAtZ, zShiftEval, l1AtZeta, pk.CosetShift, zeta,
		numCols, beta, gamma, alphaPow[1:3],
	)

	acc := make([]fr.Element, pk.Domain.Cardinality)
	r := polynomial.New(acc)

	addScaled := func(sel *polynomial.Polynomial, coeff fr.Element) {
		scaled := sel.Clone()
		scaled.ScaleInPlace(&coeff)
		r, _ = polynomial.Add(r, scaled)
	}

	addScaled(zPoly, zCoeff)
	last := numCols - 1
	if p, ok := permutationPoly(pk, last); ok {
		addScaled(p, lastSigmaTerm.Coeff)
	}

	ev := &WireEvals{
		L: wireEvalsAtZeta[0], R: wireEvalsAtZeta[1], O: wireEvalsAtZeta[2], W4: wireEvalsAtZeta[3],
		W4Shifted:     w4ShiftEval,
		SelectorEvals: nonlinearEvals,
	}

	for i, w := range pk.Manifest.Widgets {
		terms := w.LinearisationTerms(ev, pk.Manifest.alphaPowersFor(i, alphaPow))
		for _, t := range terms {
			sel, ok := pk.Selectors[t.Selector]
			if !ok {
				continue
			}
			addScaled(sel, t.Coeff)
		}
	}

	return r, nil
}

func permutationPoly(pk *ProvingKey, col int) (*polynomial.Polynomial, bool) {
	if col < 0 || col >= numWireColumnsMax || pk.Permutation[col] == nil {
		return nil, false
	}
	return pk.Permutation[col], true
}
