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

package bn254

import (
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/field/fptower"
)

// bnU is the BN curve's defining parameter (spec.md §4.3): the optimal
// ate Miller loop runs over 6u+2 and the final exponentiation's hard part
// raises to powers of u three times.
var bnU = big.NewInt(4965661367192848881)

// sixUPlus2NAF is 6u+2 in non-adjacent form, most significant digit
// first reversed (index 0 is the least significant trit), matching the
// Miller-loop traversal of the optimal ate pairing (spec.md §4.3).
var sixUPlus2NAF = []int8{0, 0, 0, 1, 0, 1, 0, -1, 0, 0, 1, -1, 0, 0, 1, 0,
	0, 1, 1, 0, -1, 0, 0, 1, 0, -1, 0, 0, 0, 0, 1, 1,
	1, 0, 0, -1, 0, 0, 1, 0, 0, 0, 0, 0, -1, 0, 0, 1,
	1, 0, 0, -1, 0, 0, 0, 1, 1, 0, -1, 0, 0, 1, 0, 1, 1}

// twistPoint is the Jacobian G2 representation used internally by the
// Miller loop, carrying Z² alongside Z to avoid recomputing it on every
// line-function evaluation (the role cloudflare/bn256's "t" field plays).
type twistPoint struct {
	x, y, z, t fptower.E2
}

func (p *twistPoint) fromAffine(a *G2Affine) *twistPoint {
	p.x = a.X
	p.y = a.Y
	p.z.SetOne()
	p.t.SetOne()
	return p
}

func (p *twistPoint) set(q *twistPoint) *twistPoint {
	p.x, p.y, p.z, p.t = q.x, q.y, q.z, q.t
	return p
}

func (p *twistPoint) neg(q *twistPoint) *twistPoint {
	p.x = q.x
	p.y.Neg(&q.y)
	p.z = q.z
	p.t = q.t
	return p
}

// lineFunctionDouble implements the a=0 doubling line function from
// "Faster Computation of the Tate Pairing" (Costello et al.), grounded on
// cloudflare/bn256's lineFunctionDouble.
func lineFunctionDouble(r *twistPoint, q *G1Affine) (a, b, c fptower.E2, rOut twistPoint) {
	var A, B, C, D, E, G fptower.E2
	A.Square(&r.x)
	B.Square(&r.y)
	C.Square(&B)

	D.Add(&r.x, &B)
	D.Square(&D)
	D.Sub(&D, &A)
	D.Sub(&D, &C)
	D.Double(&D)

	E.Double(&A)
	E.Add(&E, &A)
	G.Square(&E)

	rOut.x.Sub(&G, &D)
	rOut.x.Sub(&rOut.x, &D)

	rOut.z.Add(&r.y, &r.z)
	rOut.z.Square(&rOut.z)
	rOut.z.Sub(&rOut.z, &B)
	rOut.z.Sub(&rOut.z, &r.t)

	rOut.y.Sub(&D, &rOut.x)
	rOut.y.Mul(&rOut.y, &E)
	var t8C fptower.E2
	t8C.Double(&C)
	t8C.Double(&t8C)
	t8C.Double(&t8C)
	rOut.y.Sub(&rOut.y, &t8C)

	rOut.t.Square(&rOut.z)

	var t fptower.E2
	t.Mul(&E, &r.t)
	t.Double(&t)
	b.Neg(&t)
	b.MulByElement(&b, &q.X)

	a.Add(&r.x, &E)
	a.Square(&a)
	a.Sub(&a, &A)
	a.Sub(&a, &G)
	var t4B fptower.E2
	t4B.Double(&B)
	t4B.Double(&t4B)
	a.Sub(&a, &t4B)

	c.Mul(&rOut.z, &r.t)
	c.Double(&c)
	c.MulByElement(&c, &q.Y)

	return
}

// lineFunctionAdd implements the mixed-addition line function, grounded
// on cloudflare/bn256's lineFunctionAdd.
func lineFunctionAdd(r *twistPoint, p *twistPoint, q *G1Affine, r2 *fptower.E2) (a, b, c fptower.E2, rOut twistPoint) {
	var B, D, H, I, E, J, L1, V fptower.E2

	B.Mul(&p.x, &r.t)

	D.Add(&p.y, &r.z)
	D.Square(&D)
	D.Sub(&D, r2)
	D.Sub(&D, &r.t)
	D.Mul(&D, &r.t)

	H.Sub(&B, &r.x)
	I.Square(&H)

	E.Double(&I)
	E.Double(&E)

	J.Mul(&H, &E)

	L1.Sub(&D, &r.y)
	L1.Sub(&L1, &r.y)

	V.Mul(&r.x, &E)

	rOut.x.Square(&L1)
	rOut.x.Sub(&rOut.x, &J)
	rOut.x.Sub(&rOut.x, &V)
	rOut.x.Sub(&rOut.x, &V)

	rOut.z.Add(&r.z, &H)
	rOut.z.Square(&rOut.z)
	rOut.z.Sub(&rOut.z, &r.t)
	rOut.z.Sub(&rOut.z, &I)

	var t, t2 fptower.E2
	t.Sub(&V, &rOut.x)
	t.Mul(&t, &L1)
	t2.Mul(&r.y, &J)
	t2.Double(&t2)
	rOut.y.Sub(&t, &t2)

	rOut.t.Square(&rOut.z)

	t.Add(&p.y, &rOut.z)
	t.Square(&t)
	t.Sub(&t, r2)
	t.Sub(&t, &rOut.t)

	t2.Mul(&L1, &p.x)
	t2.Double(&t2)
	a.Sub(&t2, &t)

	c.MulByElement(&rOut.z, &q.Y)
	c.Double(&c)

	b.Neg(&L1)
	b.MulByElement(&b, &q.X)
	b.Double(&b)

	return
}

// mulLine multiplies ret (an Fq12 accumulator) by the sparse line
// (a,b,c), grounded on cloudflare/bn256's mulLine: the line is the Fq6
// element with only its first two digits populated, embedded as the Fq12
// element a*w + (b,c-digits folded into its constant term).
func mulLine(ret *fptower.E12, a, b, c fptower.E2) {
	var a2 fptower.E6
	a2.B1 = a
	a2.B0 = b
	a2.Mul(&a2, &ret.C1)

	var t3 fptower.E6
	t3.MulByE2(&ret.C0, &c)

	var t fptower.E2
	t.Add(&b, &c)
	var t2 fptower.E6
	t2.B1 = a
	t2.B0 = t

	ret.C1.Add(&ret.C1, &ret.C0)
	ret.C0 = t3
	ret.C1.Mul(&ret.C1, &t2)
	ret.C1.Sub(&ret.C1, &a2)
	ret.C1.Sub(&ret.C1, &ret.C0)

	a2.MulByNonResidue(&a2)
	ret.C0.Add(&ret.C0, &a2)
}

// miller computes the Miller-loop accumulator for the pairing e(q, p)
// where q ∈ G2, p ∈ G1 (spec.md §4.3 MillerLoop).
func miller(q *G2Affine, p *G1Affine) fptower.E12 {
	var ret fptower.E12
	ret.SetOne()

	var aAffine G2Affine
	aAffine.Set(q)

	var bAffine G1Affine
	bAffine.Set(p)

	var r, minusA twistPoint
	r.fromAffine(&aAffine)
	minusA.neg(&r)

	var r2 fptower.E2
	r2.Square(&aAffine.Y)

	for i := len(sixUPlus2NAF) - 1; i > 0; i-- {
		a, b, c, newR := lineFunctionDouble(&r, &bAffine)
		if i != len(sixUPlus2NAF)-1 {
			ret.Square(&ret)
		}
		mulLine(&ret, a, b, c)
		r = newR

		switch sixUPlus2NAF[i-1] {
		case 1:
			var aPt twistPoint
			aPt.fromAffine(&aAffine)
			a, b, c, newR = lineFunctionAdd(&r, &aPt, &bAffine, &r2)
		case -1:
			a, b, c, newR = lineFunctionAdd(&r, &minusA, &bAffine, &r2)
		default:
			continue
		}
		mulLine(&ret, a, b, c)
		r = newR
	}

	var q1 twistPoint
	q1.x.Conjugate(&aAffine.X)
	q1.x.Mul(&q1.x, &fptower.XiToPMinus1Over3)
	q1.y.Conjugate(&aAffine.Y)
	q1.y.Mul(&q1.y, &fptower.XiToPMinus1Over2)
	q1.z.SetOne()
	q1.t.SetOne()

	var minusQ2 twistPoint
	minusQ2.x.MulByElement(&aAffine.X, &fptower.XiToPSquaredMinus1Over3)
	minusQ2.y = aAffine.Y
	minusQ2.z.SetOne()
	minusQ2.t.SetOne()

	r2.Square(&q1.y)
	a, b, c, newR := lineFunctionAdd(&r, &q1, &bAffine, &r2)
	mulLine(&ret, a, b, c)
	r = newR

	r2.Square(&minusQ2.y)
	a, b, c, _ = lineFunctionAdd(&r, &minusQ2, &bAffine, &r2)
	mulLine(&ret, a, b, c)

	return ret
}

// finalExponentiationEasy computes the easy part: x^((p^6-1)(p^2+1)).
func finalExponentiationEasy(in *fptower.E12) fptower.E12 {
	var t1, inv, t2 fptower.E12
	t1.Conjugate(in) // x^(p^6), since [Fq12:Fq6]=2
	inv.Inverse(in)
	t1.Mul(&t1, &inv)

	t2.FrobeniusP2(&t1)
	t1.Mul(&t1, &t2)
	return t1
}

// finalExponentiationHard computes the hard part using the BN curve's
// lattice-based decomposition of (p^4-p^2+1)/r into powers of u
// (Algorithm 1 of http://cryptojedi.org/papers/dclxvi-20100714.pdf, as
// grounded on cloudflare/bn256's finalExponentiation).
func finalExponentiationHard(t1 *fptower.E12) fptower.E12 {
	var fp, fp2, fp3 fptower.E12
	fp.Frobenius(t1)
	fp2.FrobeniusP2(t1)
	fp3.Frobenius(&fp2)

	var fu, fu2, fu3 fptower.E12
	fu.Exp(*t1, bnU)
	fu2.Exp(fu, bnU)
	fu3.Exp(fu2, bnU)

	var y3, fu2p, fu3p, y2 fptower.E12
	y3.Frobenius(&fu)
	fu2p.Frobenius(&fu2)
	fu3p.Frobenius(&fu3)
	y2.FrobeniusP2(&fu2)

	var y0 fptower.E12
	y0.Mul(&fp, &fp2)
	y0.Mul(&y0, &fp3)

	var y1, y5, y4, y6 fptower.E12
	y1.Conjugate(t1)
	y5.Conjugate(&fu2)
	y3.Conjugate(&y3)
	y4.Mul(&fu, &fu2p)
	y4.Conjugate(&y4)
	y6.Mul(&fu3, &fu3p)
	y6.Conjugate(&y6)

	var t0 fptower.E12
	t0.Square(&y6)
	t0.Mul(&t0, &y4)
	t0.Mul(&t0, &y5)

	var t1r fptower.E12
	t1r.Mul(&y3, &y5)
	t1r.Mul(&t1r, &t0)
	t0.Mul(&t0, &y2)
	t1r.Square(&t1r)
	t1r.Mul(&t1r, &t0)
	t1r.Square(&t1r)
	t0.Mul(&t1r, &y1)
	t1r.Mul(&t1r, &y0)
	t0.Square(&t0)
	t0.Mul(&t0, &t1r)

	return t0
}

// FinalExponentiation raises a Miller-loop output to the
// (p^12-1)/r-th power, projecting it into the target group GT.
func FinalExponentiation(in *fptower.E12) fptower.E12 {
	easy := finalExponentiationEasy(in)
	return finalExponentiationHard(&easy)
}

// MillerLoop computes the Miller-loop accumulator for e(p, q), exported
// for callers (e.g. PairBatch) that need to combine several Miller loops
// before a single shared final exponentiation.
func MillerLoop(p G1Affine, q G2Affine) fptower.E12 {
	return miller(&q, &p)
}

// Pair computes the optimal ate pairing e(p, q) ∈ GT.
func Pair(p G1Affine, q G2Affine) fptower.E12 {
	if p.IsInfinity() || q.IsInfinity() {
		var one fptower.E12
		one.SetOne()
		return one
	}
	m := miller(&q, &p)
	return FinalExponentiation(&m)
}

// PairBatch computes Prod_i e(ps[i], qs[i]) with a single shared final
// exponentiation (spec.md §4.3's batch pairing check), far cheaper than
// calling Pair per pair and multiplying results.
func PairBatch(ps []G1Affine, qs []G2Affine) fptower.E12 {
	var acc fptower.E12
	acc.SetOne()
	for i := range ps {
		if ps[i].IsInfinity() || qs[i].IsInfinity() {
			continue
		}
		m := miller(&qs[i], &ps[i])
		acc.Mul(&acc, &m)
	}
	return FinalExponentiation(&acc)
}

// PairingCheck reports whether Prod_i e(ps[i], qs[i]) == 1, the form used
// by KZG batch-opening verification (spec.md §4.8).
func PairingCheck(ps []G1Affine, qs []G2Affine) bool {
	r := PairBatch(ps, qs)
	return r.IsOne()
}
