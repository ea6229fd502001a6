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

// Package fptower implements spec.md §4.2's BN254 tower extensions:
// Fq2 = Fq[u]/(u²+1), Fq6 = Fq2[v]/(v³-ξ) with ξ=u+9, and
// Fq12 = Fq6[w]/(w²-v).
package fptower

import (
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/field/fq"
)

// E2 is an element of Fq2, A0 + A1*u, with u² = -1.
type E2 struct {
	A0, A1 fq.Element
}

func (z *E2) SetZero() *E2 {
	z.A0.SetZero()
	z.A1.SetZero()
	return z
}

func (z *E2) SetOne() *E2 {
	z.A0.SetOne()
	z.A1.SetZero()
	return z
}

func (z *E2) IsZero() bool { return z.A0.IsZero() && z.A1.IsZero() }
func (z *E2) IsOne() bool  { return z.A0.IsOne() && z.A1.IsZero() }

func (z *E2) Set(x *E2) *E2 {
	z.A0.Set(&x.A0)
	z.A1.Set(&x.A1)
	return z
}

func (z *E2) Add(x, y *E2) *E2 {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	return z
}

func (z *E2) Sub(x, y *E2) *E2 {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	return z
}

func (z *E2) Neg(x *E2) *E2 {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Conjugate sets z to the conjugate of x: A0 - A1*u.
func (z *E2) Conjugate(x *E2) *E2 {
	z.A0.Set(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Mul implements the schoolbook product of Devegili et al. §3, adapted
// to u²=-1 (so the cross term subtracts instead of adding a non-residue
// multiple).
func (z *E2) Mul(x, y *E2) *E2 {
	var a0a0, a1a1, cross, t fq.Element
	a0a0.Mul(&x.A0, &y.A0)
	a1a1.Mul(&x.A1, &y.A1)

	t.Add(&x.A0, &x.A1)
	cross.Add(&y.A0, &y.A1)
	cross.Mul(&cross, &t)
	cross.Sub(&cross, &a0a0)
	cross.Sub(&cross, &a1a1)

	var re fq.Element
	re.Sub(&a0a0, &a1a1)

	z.A0.Set(&re)
	z.A1.Set(&cross)
	return z
}

// Square implements the complex-squaring identity: (a+bu)² =
// (a+b)(a-b) + 2ab·u.
func (z *E2) Square(x *E2) *E2 {
	var sum, diff, ab fq.Element
	sum.Add(&x.A0, &x.A1)
	diff.Sub(&x.A0, &x.A1)
	ab.Mul(&x.A0, &x.A1)

	var re, im fq.Element
	re.Mul(&sum, &diff)
	im.Double(&ab)

	z.A0.Set(&re)
	z.A1.Set(&im)
	return z
}

// MulByNonResidue sets z = x * (u+9), the ξ of the Fq6 tower over Fq2
// (spec.md §4.2).
func (z *E2) MulByNonResidue(x *E2) *E2 {
	var nine fq.Element
	nine.SetUint64(9)
	var t0, t1 fq.Element
	// (a0+a1u)(9+u) = (9a0 - a1) + (a0 + 9a1)u
	t0.Mul(&x.A0, &nine)
	t0.Sub(&t0, &x.A1)
	t1.Mul(&x.A1, &nine)
	t1.Add(&t1, &x.A0)
	z.A0.Set(&t0)
	z.A1.Set(&t1)
	return z
}

func (z *E2) MulByElement(x *E2, y *fq.Element) *E2 {
	z.A0.Mul(&x.A0, y)
	z.A1.Mul(&x.A1, y)
	return z
}

// Inverse uses the norm-based method (Scott §3.2): 1/(a+bu) =
// (a-bu)/(a²+b²).
func (z *E2) Inverse(x *E2) *E2 {
	var a2, b2, norm, normInv fq.Element
	a2.Square(&x.A0)
	b2.Square(&x.A1)
	norm.Add(&a2, &b2)
	normInv.Inverse(&norm)

	var negB fq.Element
	negB.Neg(&x.A1)

	z.A0.Mul(&x.A0, &normInv)
	z.A1.Mul(&negB, &normInv)
	return z
}

func (z *E2) Double(x *E2) *E2 {
	z.A0.Double(&x.A0)
	z.A1.Double(&x.A1)
	return z
}

func (z *E2) Equal(x *E2) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1)
}

// Exp raises z = x^k using left-to-right square-and-multiply over k's
// bits (spec.md §4.2), the same traversal gfP2.Exp uses.
func (z *E2) Exp(x E2, k *big.Int) *E2 {
	var res E2
	res.SetOne()
	base := x
	for i := k.BitLen() - 1; i >= 0; i-- {
		res.Square(&res)
		if k.Bit(i) != 0 {
			res.Mul(&res, &base)
		}
	}
	z.Set(&res)
	return z
}

func (z *E2) String() string {
	return "(" + z.A0.String() + "+" + z.A1.String() + "*u)"
}
