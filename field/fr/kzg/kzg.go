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

// Package kzg implements the KZG10 polynomial commitment scheme of
// spec.md §4.5/§4.8 over BN254: SRS, Commit, Open and batched opening at
// a single point.
package kzg

import (
	"errors"
	"hash"
	"math/big"

	bn254 "github.com/BaoNinh2808/plonk-bn254/curve"
	"github.com/BaoNinh2808/plonk-bn254/curve/msm"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/polynomial"
	"github.com/BaoNinh2808/plonk-bn254/internal/fiatshamir"
)

var (
	ErrInvalidNbDigests      = errors.New("kzg: number of digests does not match number of polynomials")
	ErrInvalidPolynomialSize = errors.New("kzg: invalid polynomial size (zero, or larger than the SRS)")
	ErrVerifyOpeningProof    = errors.New("kzg: opening proof failed to verify")
	ErrInvalidDomain         = errors.New("kzg: domain cardinality smaller than polynomial degree")
	ErrMinSRSSize            = errors.New("kzg: minimum SRS size is 2")
)

// Digest is a commitment to a polynomial: a single G1 point.
type Digest = bn254.G1Affine

// SRS is the structured reference string from the trusted setup (spec.md
// §4.5): [G1, αG1, α²G1, ...] and [G2, αG2].
type SRS struct {
	G1 []bn254.G1Affine
	G2 [2]bn254.G2Affine
}

// NewSRS derives an SRS of the given size from a known exponent alpha.
// Production code must use an SRS produced by an MPC ceremony
// (external/srs.Load); this constructor exists for tests and for local
// development setups where a trusted single party can hold alpha.
func NewSRS(size uint64, alpha *big.Int) (*SRS, error) {
	if size < 2 {
		return nil, ErrMinSRSSize
	}
	var srs SRS
	srs.G1 = make([]bn254.G1Affine, size)
	srs.G1[0] = bn254.G1Gen
	srs.G2[0] = bn254.G2Gen

	var g2Jac bn254.G2Jac
	g2Jac.ScalarMultiplication(&bn254.G2Gen, alpha)
	srs.G2[1].FromJacobian(&g2Jac)

	var a fr.Element
	a.SetBigInt(alpha)
	powers := make([]fr.Element, size-1)
	powers[0] = a
	for i := 1; i < len(powers); i++ {
		powers[i].Mul(&powers[i-1], &a)
	}

	jacs := make([]bn254.G1Jac, len(powers))
	for i := range powers {
		jacs[i].ScalarMultiplicationFr(&bn254.G1Gen, &powers[i])
	}
	copy(srs.G1[1:], bn254.BatchJacobianToAffineG1(jacs))

	return &srs, nil
}

// OpeningProof is a KZG opening of one polynomial at one point.
type OpeningProof struct {
	H            bn254.G1Affine
	Point        fr.Element
	ClaimedValue fr.Element
}

// BatchOpeningProof is an opening of several polynomials at a single
// shared point (spec.md §4.8 batch opening).
type BatchOpeningProof struct {
	H             bn254.G1Affine
	Point         fr.Element
	ClaimedValues []fr.Element
}

// Commit computes Sum_i p[i] * SRS.G1[i] via MSM.
func Commit(p *polynomial.Polynomial, srs *SRS) (Digest, error) {
	if len(p.Coefficients) == 0 || len(p.Coefficients) > len(srs.G1) {
		return Digest{}, ErrInvalidPolynomialSize
	}
	acc, err := msm.MSM(srs.G1[:len(p.Coefficients)], p.Coefficients)
	if err != nil {
		return Digest{}, err
	}
	var d Digest
	d.FromJacobian(&acc)
	return d, nil
}

// Open computes an opening proof of p at point.
func Open(p *polynomial.Polynomial, point *fr.Element, domain *fft.Domain, srs *SRS) (OpeningProof, error) {
	if len(p.Coefficients) == 0 || len(p.Coefficients) > len(srs.G1) {
		return OpeningProof{}, ErrInvalidPolynomialSize
	}
	if len(p.Coefficients) > int(domain.Cardinality) {
		return OpeningProof{}, ErrInvalidDomain
	}

	claimed, err := p.Eval(point)
	if err != nil {
		return OpeningProof{}, err
	}

	q, err := p.OpeningQuotient(point, &claimed)
	if err != nil {
		return OpeningProof{}, err
	}

	hCommit, err := Commit(q, srs)
	if err != nil {
		return OpeningProof{}, err
	}

	return OpeningProof{H: hCommit, Point: *point, ClaimedValue: claimed}, nil
}

// Verify checks e(commitment - [claimedValue]G1, G2) == e(H, [α-point]G2)
// via a single paired PairingCheck call (spec.md §4.8).
func Verify(commitment *Digest, proof *OpeningProof, srs *SRS) error {
	var claimedG1 bn254.G1Jac
	claimedG1.ScalarMultiplicationFr(&bn254.G1Gen, &proof.ClaimedValue)

	var commJac, diff bn254.G1Jac
	commJac.FromAffine(commitment)
	diff.Set(&commJac)
	var negClaimed bn254.G1Jac
	negClaimed.Neg(&claimedG1)
	diff.AddAssign(&negClaimed)

	var diffAffine, negH bn254.G1Affine
	diffAffine.FromJacobian(&diff)
	negH.Neg(&proof.H)

	var pointG2 bn254.G2Jac
	pointG2.ScalarMultiplication(&srs.G2[0], proof.Point.BigInt(new(big.Int)))
	var alphaJac bn254.G2Jac
	alphaJac.FromAffine(&srs.G2[1])
	var alphaMinusPoint bn254.G2Jac
	alphaMinusPoint.Neg(&pointG2)
	alphaMinusPoint.AddAssign(&alphaJac)

	var alphaMinusPointAff bn254.G2Affine
	alphaMinusPointAff.FromJacobian(&alphaMinusPoint)

	ok := bn254.PairingCheck(
		[]bn254.G1Affine{diffAffine, negH},
		[]bn254.G2Affine{srs.G2[0], alphaMinusPointAff},
	)
	if !ok {
		return ErrVerifyOpeningProof
	}
	return nil
}

// BatchOpenSinglePoint folds several polynomials into one opening proof
// at a shared point using a Fiat-Shamir-derived power series (spec.md
// §4.8): H commits to Sum_i gamma^i * (p_i(X)-p_i(z))/(X-z).
func BatchOpenSinglePoint(polys []*polynomial.Polynomial, digests []Digest, point *fr.Element, hf hash.Hash, domain *fft.Domain, srs *SRS) (BatchOpeningProof, error) {
	if len(digests) != len(polys) {
		return BatchOpeningProof{}, ErrInvalidNbDigests
	}
	largest := -1
	for _, p := range polys {
		if len(p.Coefficients) == 0 || len(p.Coefficients) > len(srs.G1) {
			return BatchOpeningProof{}, ErrInvalidPolynomialSize
		}
		if len(p.Coefficients) > int(domain.Cardinality) {
			return BatchOpeningProof{}, ErrInvalidDomain
		}
		if len(p.Coefficients) > largest {
			largest = len(p.Coefficients)
		}
	}

	var res BatchOpeningProof
	res.Point = *point
	res.ClaimedValues = make([]fr.Element, len(polys))
	for i, p := range polys {
		v, err := p.Eval(point)
		if err != nil {
			return BatchOpeningProof{}, err
		}
		res.ClaimedValues[i] = v
	}

	gamma, err := deriveGamma(res.Point, digests, hf)
	if err != nil {
		return BatchOpeningProof{}, err
	}

	var sumGammaiEval fr.Element
	sumGammaiEval = res.ClaimedValues[len(res.ClaimedValues)-1]
	for i := len(res.ClaimedValues) - 2; i >= 0; i-- {
		sumGammaiEval.Mul(&sumGammaiEval, &gamma)
		sumGammaiEval.Add(&sumGammaiEval, &res.ClaimedValues[i])
	}

	sumGammaiPoly := make([]fr.Element, largest)
	copy(sumGammaiPoly, polys[0].Coefficients)
	gammaN := gamma
	for i := 1; i < len(polys); i++ {
		for j, c := range polys[i].Coefficients {
			var t fr.Element
			t.Mul(&c, &gammaN)
			sumGammaiPoly[j].Add(&sumGammaiPoly[j], &t)
		}
		gammaN.Mul(&gammaN, &gamma)
	}

	folded := polynomial.New(sumGammaiPoly)
	q, err := folded.OpeningQuotient(&res.Point, &sumGammaiEval)
	if err != nil {
		return BatchOpeningProof{}, err
	}
	if len(q.Coefficients) == 0 {
		// a constant folded polynomial has the zero quotient, committed as
		// the point at infinity
		res.H.SetInfinity()
		return res, nil
	}
	res.H, err = Commit(q, srs)
	if err != nil {
		return BatchOpeningProof{}, err
	}
	return res, nil
}

// BatchVerify checks a BatchOpeningProof against the digests it was
// produced from: it re-derives the same folding challenge gamma, folds
// the digests and claimed values the same way BatchOpenSinglePoint folded
// the polynomials and evaluations, then delegates to Verify (spec.md §4.8).
func BatchVerify(digests []Digest, proof *BatchOpeningProof, hf hash.Hash, srs *SRS) error {
	if len(digests) != len(proof.ClaimedValues) {
		return ErrInvalidNbDigests
	}
	gamma, err := deriveGamma(proof.Point, digests, hf)
	if err != nil {
		return err
	}

	var sumEval fr.Element
	sumEval = proof.ClaimedValues[len(proof.ClaimedValues)-1]
	for i := len(proof.ClaimedValues) - 2; i >= 0; i-- {
		sumEval.Mul(&sumEval, &gamma)
		sumEval.Add(&sumEval, &proof.ClaimedValues[i])
	}

	var accAffine Digest
	accAffine.Set(&digests[len(digests)-1])
	for i := len(digests) - 2; i >= 0; i-- {
		var scaled bn254.G1Jac
		scaled.ScalarMultiplicationFr(&accAffine, &gamma)
		var di bn254.G1Jac
		di.FromAffine(&digests[i])
		scaled.AddAssign(&di)
		accAffine.FromJacobian(&scaled)
	}
	folded := accAffine

	return Verify(&folded, &OpeningProof{H: proof.H, Point: proof.Point, ClaimedValue: sumEval}, srs)
}

// deriveGamma binds the Fiat-Shamir folding challenge to the evaluation
// point and every digest being folded (spec.md §4.8).
func deriveGamma(point fr.Element, digests []Digest, hf hash.Hash) (fr.Element, error) {
	ts := fiatshamir.NewTranscript(hf, "gamma")
	b := point.Bytes()
	if err := ts.Bind("gamma", b[:]); err != nil {
		return fr.Element{}, err
	}
	for i := range digests {
		xb := digests[i].X.Bytes()
		if err := ts.Bind("gamma", xb[:]); err != nil {
			return fr.Element{}, err
		}
		yb := digests[i].Y.Bytes()
		if err := ts.Bind("gamma", yb[:]); err != nil {
			return fr.Element{}, err
		}
	}
	challengeBytes, err := ts.ComputeChallenge("gamma")
	if err != nil {
		return fr.Element{}, err
	}
	var gamma fr.Element
	gamma.SetBytes(challengeBytes)
	return gamma, nil
}
