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
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/polynomial"
	"github.com/BaoNinh2808/plonk-bn254/internal/parallel"
)

// shiftedCoset returns evals shifted by one small-domain step: since
// domainBig.Generator raised to quotientRatio equals domain.Generator (both
// are powers of the same 2-adic root, spec.md §4.6), evaluating a
// polynomial at X*omega on the big coset is just an index rotation by
// quotientRatio.
func shiftedCoset(evals []fr.Element, ratio int) []fr.Element {
	n := len(evals)
	out := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		out[i] = evals[(i+ratio)%n]
	}
	return out
}

// bigCosetPoints returns X_i = domainBig.FrMultiplicativeGen * Generator^i
// for every point of the big coset, the "X" appearing in the permutation
// argument's id_c(X) = CosetShift[c] * X terms.
func bigCosetPoints(domainBig *fft.Domain) []fr.Element {
	n := int(domainBig.Cardinality)
	out := make([]fr.Element, n)
	parallel.Run(n, func(start, end int) {
		var cur fr.Element
		cur.Exp(domainBig.Generator, big.NewInt(int64(start)))
		cur.Mul(&cur, &domainBig.FrMultiplicativeGen)
		for i := start; i < end; i++ {
			out[i] = cur
			cur.Mul(&cur, &domainBig.Generator)
		}
	})
	return out
}

// cosetEvalsOf evaluates coeff (Coefficients form) on domainBig's coset,
// leaving coeff itself untouched.
func cosetEvalsOf(p *polynomial.Polynomial, domainBig *fft.Domain) []fr.Element {
	c := p.Clone()
	_ = c.ToCoset(domainBig)
	return c.Coefficients
}

func zeroCoset(n int) []fr.Element { return make([]fr.Element, n) }

// computeQuotient folds the permutation argument and every widget's
// identity into t(X)'s numerator on the big coset, divides by the
// pseudo-vanishing polynomial of the small domain, and interpolates back
// to coefficient form (spec.md §4.7 Round 3).
func computeQuotient(
	pk *ProvingKey,
	wirePolys [numWireColumnsMax]*polynomial.Polynomial,
	zPoly *polynomial.Polynomial,
	piPoly *polynomial.Polynomial,
	beta, gamma fr.Element,
	alphaPow []fr.Element,
) (*polynomial.Polynomial, error) {
	N := int(pk.DomainBig.Cardinality)
	numCols := pk.Variant.NumWireColumns()
	ratio := int(pk.DomainBig.Cardinality / pk.Domain.Cardinality)

	var wireCoset [numWireColumnsMax][]fr.Element
	for c := 0; c < numCols; c++ {
		wireCoset[c] = cosetEvalsOf(wirePolys[c], pk.DomainBig)
	}
	for c := numCols; c < numWireColumnsMax; c++ {
		wireCoset[c] = zeroCoset(N)
	}
	w4Shifted := zeroCoset(N)
	if numCols == numWireColumnsMax {
		w4Shifted = shiftedCoset(wireCoset[3], ratio)
	}

	zCoset := cosetEvalsOf(zPoly, pk.DomainBig)
	zShiftedCoset := shiftedCoset(zCoset, ratio)
	l1Coset := cosetEvalsOf(pk.LagrangeOne, pk.DomainBig)
	xs := bigCosetPoints(pk.DomainBig)

	sum := permutationQuotientTerm(
		wireCoset, pk.PermutationCoset, zCoset, zShiftedCoset, l1Coset, pk.CosetShift,
		xs, numCols, beta, gamma, alphaPow[1:3],
	)

	ctx := &CosetEvals{
		L: wireCoset[0], R: wireCoset[1], O: wireCoset[2], W4: wireCoset[3],
		W4Shifted: w4Shifted, Selectors: pk.SelectorsCoset,
	}
	for i, w := range pk.Manifest.Widgets {
		term := w.QuotientTerm(ctx, pk.Manifest.alphaPowersFor(i, alphaPow))
		for j := range sum {
			sum[j].Add(&sum[j], &term[j])
		}
	}

	// PI(X) (spec.md's public-input polynomial, publicinput.go) folds into
	// the same alpha power as the arithmetic widget (Widgets[0] for every
	// variant, widgetsFor): it is the same additive identity Qc already
	// occupies, just not committed, since the verifier recomputes PI(zeta)
	// itself from the public input vector rather than opening a commitment.
	piAlpha := pk.Manifest.alphaPowersFor(0, alphaPow)[0]
	piCoset := cosetEvalsOf(piPoly, pk.DomainBig)
	for j := range sum {
		var term fr.Element
		term.Mul(&piCoset[j], &piAlpha)
		sum[j].Add(&sum[j], &term)
	}

	t := polynomial.New(sum)
	t.Form = polynomial.EvaluationsOnCoset
	if err := t.DividePseudoVanishing(pk.Domain, pk.DomainBig); err != nil {
		return nil, err
	}
	if err := t.ToCanonicalFromCoset(pk.DomainBig); err != nil {
		return nil, err
	}
	return t, nil
}
