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
	"crypto/sha256"

	bn254 "github.com/BaoNinh2808/plonk-bn254/curve"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/kzg"
	"github.com/BaoNinh2808/plonk-bn254/internal/fiatshamir"
	"github.com/BaoNinh2808/plonk-bn254/internal/logging"
)

// Verify re-derives every Fiat-Shamir challenge from the proof's
// commitments exactly as Prove did, checks the quotient identity at zeta
// against the recomposed t(zeta), and verifies the two KZG batch-opening
// proofs (spec.md §4.8).
//
// publicInputs binds the proof to the statement being proven: the verifier
// recomputes PI(zeta) itself from publicInputs via the domain's Lagrange
// basis (publicinput.go) and folds it into the same quotient identity
// computeQuotient folded PI(X)'s coset evaluations into, so a proof only
// verifies against the exact publicInputs vector it was produced for.
func Verify(vk *VerifyingKey, proof *Proof, publicInputs []fr.Element) error {
	numCols := vk.Variant.NumWireColumns()
	if len(proof.SigmaEvals) != numCols-1 {
		return ErrWrongColumnCount
	}
	if len(publicInputs) != vk.NbPublicInputs {
		return ErrWrongPublicInputCount
	}

	ts := fiatshamir.NewTranscript(sha256.New(), manifestOrder...)
	for c := 0; c < numCols; c++ {
		if err := bindPoint(ts, "beta", proof.WireCommitments[c]); err != nil {
			return err
		}
	}
	betaBytes, err := ts.ComputeChallenge("beta")
	if err != nil {
		return err
	}
	var beta fr.Element
	beta.SetBytes(betaBytes)

	if err := ts.Bind("gamma", betaBytes); err != nil {
		return err
	}
	gammaBytes, err := ts.ComputeChallenge("gamma")
	if err != nil {
		return err
	}
	var gamma fr.Element
	gamma.SetBytes(gammaBytes)

	if err := bindPoint(ts, "alpha", proof.ZCommitment); err != nil {
		return err
	}
	alphaBytes, err := ts.ComputeChallenge("alpha")
	if err != nil {
		return err
	}
	var alpha fr.Element
	alpha.SetBytes(alphaBytes)

	alphaPow := make([]fr.Element, vk.Manifest.totalAlphaPowers+1)
	alphaPow[0].SetOne()
	for i := 1; i < len(alphaPow); i++ {
		alphaPow[i].Mul(&alphaPow[i-1], &alpha)
	}

	for _, d := range proof.QuotientChunks {
		if err := bindPoint(ts, "zeta", d); err != nil {
			return err
		}
	}
	zetaBytes, err := ts.ComputeChallenge("zeta")
	if err != nil {
		return err
	}
	var zeta fr.Element
	zeta.SetBytes(zetaBytes)

	if err := ts.Bind("nu", encodeEvals(proof)); err != nil {
		return err
	}
	nuBytes, err := ts.ComputeChallenge("nu")
	if err != nil {
		return err
	}
	var nu fr.Element
	nu.SetBytes(nuBytes)
	if !nu.Equal(&proof.Nu) {
		return ErrVerifyFailed
	}

	l1AtZeta, _, zhAtZeta := vk.Domain.LagrangeEvaluations(&zeta)

	rCommitment, permConst := reconstructLinearisationCommitment(vk, proof, zeta, beta, gamma, l1AtZeta, alphaPow)

	// Fold PI(zeta) into the same public scalar computeQuotient added
	// piAlpha*piCoset[j] into on the prover side (arithmeticWidget is always
	// Widgets[0], so alphaPowersFor(0, alphaPow)[0] is its alpha power).
	piEval := publicInputEval(vk.Domain, publicInputs, &zeta)
	piAlpha := vk.Manifest.alphaPowersFor(0, alphaPow)[0]
	var piTerm fr.Element
	piTerm.Mul(&piEval, &piAlpha)
	permConst.Add(&permConst, &piTerm)

	zetaDigests := make([]kzg.Digest, 0, 1+numCols+(numCols-1)+len(proof.QuotientChunks))
	zetaDigests = append(zetaDigests, rCommitment)
	for c := 0; c < numCols; c++ {
		zetaDigests = append(zetaDigests, proof.WireCommitments[c])
	}
	for c := 0; c < numCols-1; c++ {
		zetaDigests = append(zetaDigests, vk.PermutationCommitments[c])
	}
	zetaDigests = append(zetaDigests, proof.QuotientChunks...)

	if len(proof.ZetaOpening.ClaimedValues) != len(zetaDigests) {
		return ErrVerifyFailed
	}
	zetaOpening := proof.ZetaOpening
	zetaOpening.Point = zeta
	if err := kzg.BatchVerify(zetaDigests, &zetaOpening, sha256.New(), vk.SRS); err != nil {
		return ErrVerifyFailed
	}

	rEval := proof.ZetaOpening.ClaimedValues[0]
	chunkStart := 1 + numCols + (numCols - 1)
	chunkEvals := proof.ZetaOpening.ClaimedValues[chunkStart:]

	var zn fr.Element
	one := fr.NewElement(1)
	zn.Add(&zhAtZeta, &one)

	var tZeta, znPow fr.Element
	znPow.SetOne()
	for _, ce := range chunkEvals {
		var term fr.Element
		term.Mul(&ce, &znPow)
		tZeta.Add(&tZeta, &term)
		znPow.Mul(&znPow, &zn)
	}

	// computeQuotient divides by the pseudo-vanishing polynomial
	// Z_H*(X) = Z_H(X) / (X - omega^{n-1}), so t(zeta) is scaled by Z_H*(zeta).
	var zetaMinusLast, zhStar fr.Element
	zetaMinusLast.Sub(&zeta, &vk.Domain.GeneratorInv)
	zhStar.Div(&zhAtZeta, &zetaMinusLast)

	var lhs, rhs fr.Element
	lhs.Add(&rEval, &permConst)
	rhs.Mul(&tZeta, &zhStar)
	if !lhs.Equal(&rhs) {
		return ErrVerifyFailed
	}

	shiftDigests := []kzg.Digest{proof.ZCommitment}
	if numCols == numWireColumnsMax {
		shiftDigests = append(shiftDigests, proof.WireCommitments[3])
	}
	if len(proof.ShiftOpening.ClaimedValues) != len(shiftDigests) {
		return ErrVerifyFailed
	}
	shiftOpening := proof.ShiftOpening
	shiftOpening.Point.Mul(&zeta, &vk.Domain.Generator)
	if err := kzg.BatchVerify(shiftDigests, &shiftOpening, sha256.New(), vk.SRS); err != nil {
		return ErrVerifyFailed
	}

	logging.Logger().Debug().Str("variant", vk.Variant.String()).Msg("plonk: proof verified")
	return nil
}

// reconstructLinearisationCommitment rebuilds r(X)'s commitment from the
// verifying key's selector/permutation commitments, scaled by the same
// coefficients buildLinearisation used to fold the corresponding
// polynomials (spec.md §4.8's "commitment-side linearisation"). It also
// returns the quotient identity's leftover public scalar (permConst, see
// permutationLinearisationTerms) since both are derived from the same
// openings.
func reconstructLinearisationCommitment(
	vk *VerifyingKey,
	proof *Proof,
	zeta, beta, gamma, l1AtZeta fr.Element,
	alphaPow []fr.Element,
) (kzg.Digest, fr.Element) {
	numCols := vk.Variant.NumWireColumns()
	var ev [numWireColumnsMax]fr.Element
	copy(ev[:], proof.WireEvals[:])
	var sigmaEvalsAtZ [numWireColumnsMax]fr.Element
	copy(sigmaEvalsAtZ[:], proof.SigmaEvals)

	zCoeff, lastSigmaTerm, permConst := permutationLinearisationTerms(
		ev, sigmaEvalsAtZ, proof.ZShiftEval, l1AtZeta, vk.CosetShift, zeta,
		numCols, beta, gamma, alphaPow[1:3],
	)

	var acc kzg.Digest
	acc.SetInfinity()
	addScaled := func(d kzg.Digest, coeff fr.Element) {
		acc = addG1(acc, scalarMulG1(d, coeff))
	}

	addScaled(proof.ZCommitment, zCoeff)
	last := numCols - 1
	addScaled(vk.PermutationCommitments[last], lastSigmaTerm.Coeff)

	wireEv := &WireEvals{
		L: ev[0], R: ev[1], O: ev[2], W4: ev[3],
		W4Shifted:     proof.W4ShiftEval,
		SelectorEvals: proof.NonlinearEval,
	}
	for i, w := range vk.Manifest.Widgets {
		terms := w.LinearisationTerms(wireEv, vk.Manifest.alphaPowersFor(i, alphaPow))
		for _, t := range terms {
			d, ok := vk.SelectorCommitments[t.Selector]
			if !ok {
				continue
			}
			addScaled(d, t.Coeff)
		}
	}

	return acc, permConst
}

func scalarMulG1(d kzg.Digest, s fr.Element) kzg.Digest {
	var j bn254.G1Jac
	j.ScalarMultiplicationFr(&d, &s)
	var out kzg.Digest
	out.FromJacobian(&j)
	return out
}

func addG1(a, b kzg.Digest) kzg.Digest {
	var ja, jb bn254.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out kzg.Digest
	out.FromJacobian(&ja)
	return out
}
