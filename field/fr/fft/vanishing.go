package fft

import (
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/internal/parallel"
)

// DividePseudoVanishing divides evals — the evaluation of a polynomial
// P(X) on targetDomain's coset — by Z_H*(X) = (X^n - 1)/(X - ω^{n-1}),
// where n = smallDomain.Cardinality (spec.md §4.6
// divide_by_pseudo_vanishing_polynomial). The caller guarantees P is
// actually divisible by Z_H* on targetDomain's points; if it is not, the
// result is meaningless, per spec.md's documented contract.
func DividePseudoVanishing(evals []fr.Element, smallDomain, targetDomain *Domain) {
	n := smallDomain.Cardinality
	N := targetDomain.Cardinality

	var omegaNMinus1 fr.Element
	omegaNMinus1.Exp(smallDomain.Generator, big.NewInt(int64(n-1)))

	denominators := make([]fr.Element, N)
	parallel.Run(int(N), func(start, end int) {
		var cosetPoint, xn, num fr.Element
		for i := start; i < end; i++ {
			// cosetPoint = g * (targetDomain root)^i
			cosetPoint.Exp(targetDomain.Generator, big.NewInt(int64(i)))
			cosetPoint.Mul(&cosetPoint, &targetDomain.FrMultiplicativeGen)

			xn.Exp(cosetPoint, big.NewInt(int64(n)))
			num.SetOne()
			num.Sub(&xn, &num) // X^n - 1

			var denomShift fr.Element
			denomShift.Sub(&cosetPoint, &omegaNMinus1) // X - ω^{n-1}

			denominators[i].Div(&num, &denomShift)
		}
	})

	inv := fr.BatchInvert(denominators)
	parallel.Run(int(N), func(start, end int) {
		for i := start; i < end; i++ {
			evals[i].Mul(&evals[i], &inv[i])
		}
	})
}

// ComputeKateOpeningCoefficients returns the coefficients of
// q(X) = (f(X) - f(z)) / (X - z) given f in coefficient form, by Horner-
// style synthetic division in O(n) (spec.md §4.6).
func ComputeKateOpeningCoefficients(f []fr.Element, z *fr.Element) []fr.Element {
	n := len(f)
	q := make([]fr.Element, n)
	if n == 0 {
		return q
	}
	q[n-1] = f[n-1]
	for i := n - 2; i >= 0; i-- {
		var t fr.Element
		t.Mul(&q[i+1], z)
		q[i].Add(&f[i], &t)
	}
	// q has length n but only the first n-1 coefficients belong to the
	// quotient; q[0] there is the leading synthetic-division remainder,
	// which must equal f(z) for divisibility to hold. Shift down.
	return q[1:]
}

// Evaluate performs Horner evaluation of the coefficient-form polynomial p
// at x, parallelised by splitting p into per-worker partial Horner
// evaluations combined with the appropriate power of x (spec.md §4.6
// "evaluate").
func Evaluate(p []fr.Element, x *fr.Element) fr.Element {
	n := len(p)
	if n == 0 {
		return fr.NewElement(0)
	}
	if n < parallel.MinParallelSize {
		return hornerEval(p, x)
	}

	workers := parallel.NumWorkers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	partials := make([]fr.Element, workers)
	xPow := make([]fr.Element, workers)
	parallel.Run(workers, func(start, end int) {
		for w := start; w < end; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			if lo >= n {
				xPow[w].SetOne()
				continue
			}
			partials[w] = hornerEval(p[lo:hi], x)
			xPow[w].Exp(*x, big.NewInt(int64(hi-lo)))
		}
	})

	var acc fr.Element
	acc.SetZero()
	for w := workers - 1; w >= 0; w-- {
		acc.Mul(&acc, &xPow[w])
		acc.Add(&acc, &partials[w])
	}
	return acc
}

func hornerEval(p []fr.Element, x *fr.Element) fr.Element {
	var acc fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(&acc, x)
		acc.Add(&acc, &p[i])
	}
	return acc
}

// LagrangeEvaluations returns (L_1(z), L_{n-1}(z), Z_H(z)) for the domain
// of size n, computed in O(1) from z^n - 1 and the domain constants
// (spec.md §4.6 "lagrange_evaluations").
func (d *Domain) LagrangeEvaluations(z *fr.Element) (l1, lnMinus1, zh fr.Element) {
	n := int64(d.Cardinality)

	var zn fr.Element
	zn.Exp(*z, big.NewInt(n))
	zh.SetOne()
	zh.Sub(&zn, &zh) // z^n - 1

	var zMinus1 fr.Element
	one := fr.NewElement(1)
	zMinus1.Sub(z, &one)

	if zMinus1.IsZero() {
		// z is the identity point of H: L_1(1) = 1, everything else 0,
		// handled as a degenerate limit by the caller in practice; callers
		// of this helper in the prover/verifier never evaluate at z=1.
		l1.SetOne()
	} else {
		l1.Div(&zh, &zMinus1)
		l1.Mul(&l1, &d.CardinalityInv)
		// normalize by n (CardinalityInv folds the 1/n factor of L_1(X) =
		// (1/n) * (X^n-1)/(X-1))
	}

	// L_{n-1}(z) = ω^{n-1} * (z^n-1) / (n * (z - ω^{n-1}))
	var omegaNMinus1 fr.Element
	omegaNMinus1.Set(&d.GeneratorInv)
	var denom2 fr.Element
	denom2.Sub(z, &omegaNMinus1)
	var num2 fr.Element
	num2.Mul(&zh, &omegaNMinus1)
	num2.Mul(&num2, &d.CardinalityInv)
	lnMinus1.Div(&num2, &denom2)

	return
}

// LagrangeBasisAt generalizes LagrangeEvaluations' L_1/L_{n-1} special
// cases to an arbitrary row index i, evaluating L_i(z) (the domain's i-th
// Lagrange basis polynomial, one at ω^i and zero at every other domain
// point) by the same closed form those two use, so a public-input
// polynomial interpolated over the first k rows can be evaluated at a
// challenge point in O(k) rather than via a full inverse FFT.
func (d *Domain) LagrangeBasisAt(i int, z *fr.Element) fr.Element {
	var omegaI fr.Element
	omegaI.Exp(d.Generator, big.NewInt(int64(i)))

	var zMinusOmegaI fr.Element
	zMinusOmegaI.Sub(z, &omegaI)
	if zMinusOmegaI.IsZero() {
		var one fr.Element
		one.SetOne()
		return one
	}

	n := int64(d.Cardinality)
	var zn, zh fr.Element
	zn.Exp(*z, big.NewInt(n))
	zh.SetOne()
	zh.Sub(&zn, &zh)

	var num fr.Element
	num.Mul(&zh, &omegaI)
	num.Mul(&num, &d.CardinalityInv)

	var out fr.Element
	out.Div(&num, &zMinusOmegaI)
	return out
}
