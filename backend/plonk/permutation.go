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

// computeZ builds the grand-product permutation polynomial (spec.md §4.7
// Round 2): Z(omega^0) = 1, and
//
//	Z(omega^{i+1}) = Z(omega^i) * prod_c (w_c(omega^i) + beta*k_c*omega^i + gamma)
//	                            / prod_c (w_c(omega^i) + beta*sigma_c(omega^i) + gamma)
//
// returned in coefficient form.
func computeZ(pk *ProvingKey, wires [numWireColumnsMax][]fr.Element, beta, gamma fr.Element) (*polynomial.Polynomial, error) {
	n := int(pk.Domain.Cardinality)
	numCols := pk.Variant.NumWireColumns()

	numEvals := make([]fr.Element, n)
	denEvals := make([]fr.Element, n)

	sigmaEvals := make([][]fr.Element, numCols)
	for c := 0; c < numCols; c++ {
		clone := pk.Permutation[c].Clone()
		if err := clone.ToLagrange(pk.Domain); err != nil {
			return nil, err
		}
		sigmaEvals[c] = clone.Coefficients
	}

	var omegaPow fr.Element
	omegaPow.SetOne()
	for i := 0; i < n; i++ {
		var num, den, one fr.Element
		num.SetOne()
		den.SetOne()
		one.SetOne()
		for c := 0; c < numCols; c++ {
			var t, kx, bs fr.Element
			kx.Mul(&beta, &pk.CosetShift[c])
			kx.Mul(&kx, &omegaPow)
			t.Add(&wires[c][i], &kx)
			t.Add(&t, &gamma)
			num.Mul(&num, &t)

			bs.Mul(&beta, &sigmaEvals[c][i])
			t.Add(&wires[c][i], &bs)
			t.Add(&t, &gamma)
			den.Mul(&den, &t)
		}
		numEvals[i] = num
		denEvals[i] = den
		omegaPow.Mul(&omegaPow, &pk.Domain.Generator)
	}

	denInv := fr.BatchInvert(denEvals)

	zEvals := make([]fr.Element, n)
	zEvals[0].SetOne()
	for i := 0; i+1 < n; i++ {
		var t fr.Element
		t.Mul(&numEvals[i], &denInv[i])
		zEvals[i+1].Mul(&zEvals[i], &t)
	}

	z := polynomial.New(zEvals)
	z.Form = polynomial.EvaluationsOnH
	if err := z.ToCanonical(pk.Domain); err != nil {
		return nil, err
	}
	return z, nil
}

// permutationQuotientTerm returns the permutation argument's contribution
// to the quotient's numerator evaluations on the big coset, already scaled
// by alphaPowers[0] (the grand-product identity) and alphaPowers[1] (the
// Z(1)=1 boundary check via L_1), per spec.md §4.7 Round 3.
func permutationQuotientTerm(
	wires [numWireColumnsMax][]fr.Element,
	sigmaCoset [numWireColumnsMax][]fr.Element,
	zCoset, zShiftedCoset, l1Coset []fr.Element,
	cosetShift [numWireColumnsMax]fr.Element,
	xs []fr.Element,
	numCols int,
	beta, gamma fr.Element,
	alphaPowers []fr.Element,
) []fr.Element {
	n := len(xs)
	out := make([]fr.Element, n)
	one := fr.NewElement(1)

	for i := 0; i < n; i++ {
		var num, den fr.Element
		num.SetOne()
		den.SetOne()
		for c := 0; c < numCols; c++ {
			var t, kx fr.Element
			kx.Mul(&beta, &cosetShift[c])
			kx.Mul(&kx, &xs[i])
			t.Add(&wires[c][i], &kx)
			t.Add(&t, &gamma)
			num.Mul(&num, &t)

			var bs fr.Element
			bs.Mul(&beta, &sigmaCoset[c][i])
			t.Add(&wires[c][i], &bs)
			t.Add(&t, &gamma)
			den.Mul(&den, &t)
		}
		num.Mul(&num, &zCoset[i])
		den.Mul(&den, &zShiftedCoset[i])
		var identity fr.Element
		identity.Sub(&num, &den)
		identity.Mul(&identity, &alphaPowers[0])

		var boundary, zMinus1 fr.Element
		zMinus1.Sub(&zCoset[i], &one)
		boundary.Mul(&zMinus1, &l1Coset[i])
		boundary.Mul(&boundary, &alphaPowers[1])

		out[i].Add(&identity, &boundary)
	}
	return out
}

// permutationLinearisationTerms returns r(X)'s contribution from the
// permutation argument, folding both Z(X)'s coefficient (scaled identity
// evaluated with sigma_{last} kept symbolic, per the standard PLONK
// linearisation trick) and the boundary check (spec.md §4.7 Round 4).
// permutationLinearisationTerms also returns permConst: the part of the
// permutation identity at zeta that is a pure scalar rather than a
// multiple of some committed polynomial's zeta-evaluation — the L_1
// boundary check's "-1" term, and the grand-product identity's
// (w_last(zeta)+gamma) factor that multiplies sigma_last(X)'s *constant*
// term rather than its beta*X coefficient (which lastSigmaTerm already
// captures). The verifier adds permConst directly to the public side of
// the quotient identity instead of folding it into any commitment.
func permutationLinearisationTerms(
	ev [numWireColumnsMax]fr.Element,
	sigmaEvalsAtZ [numWireColumnsMax]fr.Element,
	zShiftEval, l1AtZeta fr.Element,
	cosetShift [numWireColumnsMax]fr.Element,
	zeta fr.Element,
	numCols int,
	beta, gamma fr.Element,
	alphaPowers []fr.Element,
) (zCoeff fr.Element, lastSigmaTerm LinTerm, permConst fr.Element) {
	var num, one fr.Element
	one.SetOne()
	num.SetOne()
	for c := 0; c < numCols; c++ {
		var t, kx fr.Element
		kx.Mul(&beta, &cosetShift[c])
		kx.Mul(&kx, &zeta)
		t.Add(&ev[c], &kx)
		t.Add(&t, &gamma)
		num.Mul(&num, &t)
	}
	num.Mul(&num, &alphaPowers[0])

	var boundary fr.Element
	boundary.Mul(&l1AtZeta, &alphaPowers[1])
	zCoeff.Add(&num, &boundary)

	var den fr.Element
	den.SetOne()
	last := numCols - 1
	for c := 0; c < last; c++ {
		var t, bs fr.Element
		bs.Mul(&beta, &sigmaEvalsAtZ[c])
		t.Add(&ev[c], &bs)
		t.Add(&t, &gamma)
		den.Mul(&den, &t)
	}
	// Coefficient of sigma_last(X) in r(X): -alpha1 * Z(zeta*omega) * beta *
	// prod_{c<last} (w_c(zeta)+beta*sigma_c(zeta)+gamma). The additive
	// (w_last(zeta)+gamma) factor that would otherwise multiply this same
	// product is a public scalar, not tied to any committed polynomial; it
	// is returned as part of permConst below instead.
	var coeff fr.Element
	coeff.Mul(&den, &alphaPowers[0])
	coeff.Mul(&coeff, &zShiftEval)
	coeff.Mul(&coeff, &beta)
	var negCoeff fr.Element
	negCoeff.Neg(&coeff)
	lastSigmaTerm = LinTerm{Selector: sigmaSelectorName(last), Coeff: negCoeff}

	var lastFactor, grandProductConst fr.Element
	lastFactor.Add(&ev[last], &gamma)
	grandProductConst.Mul(&den, &alphaPowers[0])
	grandProductConst.Mul(&grandProductConst, &zShiftEval)
	grandProductConst.Mul(&grandProductConst, &lastFactor)
	grandProductConst.Neg(&grandProductConst)

	var boundaryConst fr.Element
	boundaryConst.Mul(&l1AtZeta, &alphaPowers[1])
	boundaryConst.Neg(&boundaryConst)

	permConst.Add(&grandProductConst, &boundaryConst)
	return
}


func sigmaSelectorName(col int) string {
	switch col {
	case 0:
		return "__sigma0"
	case 1:
		return "__sigma1"
	case 2:
		return "__sigma2"
	default:
		return "__sigma3"
	}
}
