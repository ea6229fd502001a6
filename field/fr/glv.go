package fr

import "math/big"

// Lambda is a primitive cube root of unity in Fr: the BN254 endomorphism
// scalar used to halve Pippenger's scalar width on G1 (spec.md §4.1,
// §4.5). It is the non-trivial root of x²+x+1 ≡ 0 (mod q), computed via
// math/big's ModSqrt rather than hardcoded, so it does not depend on
// transcribing a 254-bit constant by hand (see DESIGN.md "Field/tower
// representation" for the general rationale against unverifiable hand-
// transcribed constants in this build).
var Lambda = computeLambda()

func computeLambda() *big.Int {
	// x = (-1 + sqrt(-3)) / 2 (mod q) solves x^2+x+1=0.
	negThree := new(big.Int).Sub(Modulus, big.NewInt(3))
	root := new(big.Int).ModSqrt(negThree, Modulus)
	if root == nil {
		panic("fr: -3 is not a QR mod q; BN254 scalar field assumption violated")
	}
	x := new(big.Int).Sub(root, big.NewInt(1))
	x.Mul(x, twoInvBig)
	x.Mod(x, Modulus)
	return x
}

// glvBasis holds the short lattice basis {(a1,b1), (a2,b2)} spanning
// L = {(x,y) in Z^2 : x + y*Lambda ≡ 0 (mod q)}, computed once via the
// extended Euclidean algorithm on (q, Lambda) (the standard GLV
// construction; see e.g. Gallant-Lambert-Vanstone).
type glvBasisT struct {
	a1, b1 *big.Int
	a2, b2 *big.Int
}

var glvBasis = computeGLVBasis()

func computeGLVBasis() glvBasisT {
	sqrtQ := new(big.Int).Sqrt(Modulus)

	rPrev, r := new(big.Int).Set(Modulus), new(big.Int).Set(Lambda)
	tPrev, t := big.NewInt(0), big.NewInt(1)

	type pair struct{ r, t *big.Int }
	var seq []pair
	seq = append(seq, pair{new(big.Int).Set(rPrev), new(big.Int).Set(tPrev)})
	seq = append(seq, pair{new(big.Int).Set(r), new(big.Int).Set(t)})

	for r.Sign() != 0 && r.CmpAbs(sqrtQ) >= 0 {
		q := new(big.Int)
		rem := new(big.Int)
		q.DivMod(rPrev, r, rem)
		tNext := new(big.Int).Mul(q, t)
		tNext.Sub(tPrev, tNext)

		rPrev, r = r, rem
		tPrev, t = t, tNext

		seq = append(seq, pair{new(big.Int).Set(r), new(big.Int).Set(t)})
	}

	l := len(seq) - 1 // seq[l] = (r_l, t_l) is the first with |r_l| < sqrt(q); seq[l-1] >= sqrt(q)

	a1 := new(big.Int).Set(seq[l].r)
	b1 := new(big.Int).Neg(seq[l].t)

	// second candidate: compare the previous-but-one remainder pair against
	// one further step, keep the shorter (smaller a^2+b^2).
	cand1a, cand1b := seq[l-1].r, new(big.Int).Neg(seq[l-1].t)

	var cand2a, cand2b *big.Int
	if l+1 < len(seq) {
		cand2a, cand2b = seq[l+1].r, new(big.Int).Neg(seq[l+1].t)
	} else {
		q, rem := new(big.Int).DivMod(seq[l-1].r, seq[l].r, new(big.Int))
		tNext := new(big.Int).Mul(q, seq[l].t)
		tNext.Sub(seq[l-1].t, tNext)
		cand2a, cand2b = rem, new(big.Int).Neg(tNext)
	}

	norm := func(a, b *big.Int) *big.Int {
		n := new(big.Int).Mul(a, a)
		bb := new(big.Int).Mul(b, b)
		return n.Add(n, bb)
	}

	var a2, b2 *big.Int
	if norm(cand1a, cand1b).Cmp(norm(cand2a, cand2b)) <= 0 {
		a2, b2 = cand1a, cand1b
	} else {
		a2, b2 = cand2a, cand2b
	}

	return glvBasisT{a1: a1, b1: b1, a2: a2, b2: b2}
}

func roundDiv(num, den *big.Int) *big.Int {
	// round-to-nearest integer division, num/den may be negative.
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	r2 := new(big.Int).Lsh(new(big.Int).Abs(r), 1)
	if r2.CmpAbs(den) >= 0 {
		if (num.Sign() < 0) != (den.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

// SplitScalar implements spec.md §4.1's split_into_endomorphism_scalars: it
// returns (k1, k2), both representable in roughly half the bit-length of
// Modulus, such that k ≡ k1 - k2*Lambda (mod Modulus).
func SplitScalar(k *Element) (k1, k2 Element) {
	r1, r2 := splitScalarSigned(k)
	k1.setBig(r1)
	k2.setBig(r2)
	return
}

// SplitScalarSigned exposes the same decomposition as SplitScalar without
// the final reduction mod Modulus: callers that need to bound the bit
// width of k1/k2 directly (curve/msm's GLV-split Pippenger bucketing)
// cannot use the Element form, since reducing a small negative remainder
// mod Modulus turns it back into a nearly full-width value. It returns
// (k1, k2) as signed big.Int such that k ≡ k1 - k2*Lambda (mod Modulus)
// and both have bit-length roughly half of Modulus's.
func SplitScalarSigned(k *Element) (k1, k2 *big.Int) {
	return splitScalarSigned(k)
}

func splitScalarSigned(k *Element) (r1, r2 *big.Int) {
	kb := k.bigint()

	c1 := roundDiv(new(big.Int).Mul(glvBasis.b2, kb), Modulus)
	c2 := roundDiv(new(big.Int).Neg(new(big.Int).Mul(glvBasis.b1, kb)), Modulus)

	t1 := new(big.Int).Mul(c1, glvBasis.a1)
	t2 := new(big.Int).Mul(c2, glvBasis.a2)
	r1 = new(big.Int).Sub(kb, t1)
	r1.Sub(r1, t2)

	u1 := new(big.Int).Mul(c1, glvBasis.b1)
	u2 := new(big.Int).Mul(c2, glvBasis.b2)
	r2 = new(big.Int).Add(u1, u2)

	// Every basis vector (a, b) satisfies a + b*Lambda ≡ 0 (mod q), so
	// r1 - r2*Lambda ≡ k (mod q): (r1, r2) is already the (k1, k2) pair of
	// the k = k1 - k2*Lambda convention.
	return r1, r2
}
