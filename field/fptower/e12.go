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

package fptower

import "math/big"

// E12 is an element of Fq12 = Fq6[w]/(w²-v): C0 + C1*w.
type E12 struct {
	C0, C1 E6
}

func (z *E12) SetZero() *E12 {
	z.C0.SetZero()
	z.C1.SetZero()
	return z
}

func (z *E12) SetOne() *E12 {
	z.C0.SetOne()
	z.C1.SetZero()
	return z
}

func (z *E12) IsZero() bool { return z.C0.IsZero() && z.C1.IsZero() }
func (z *E12) IsOne() bool  { return z.C0.IsOne() && z.C1.IsZero() }

func (z *E12) Set(x *E12) *E12 {
	z.C0.Set(&x.C0)
	z.C1.Set(&x.C1)
	return z
}

// Conjugate implements the order-2 Frobenius twist used in the easy part
// of final exponentiation: (c0+c1w) -> (c0-c1w). This equals raising to
// the p^6 power since [Fq12:Fq6]=2.
func (z *E12) Conjugate(x *E12) *E12 {
	z.C0.Set(&x.C0)
	z.C1.Neg(&x.C1)
	return z
}

func (z *E12) Neg(x *E12) *E12 {
	z.C0.Neg(&x.C0)
	z.C1.Neg(&x.C1)
	return z
}

func (z *E12) Add(x, y *E12) *E12 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	return z
}

func (z *E12) Sub(x, y *E12) *E12 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	return z
}

// Mul follows the gfP12 schoolbook product: (x0+x1w)(y0+y1w) =
// (x0y1+y0x1)w + (x0y0 + MulByNonResidue(x1y1)), since w²=v acts on
// Fq6 the way MulTau (multiply-by-τ) does.
func (z *E12) Mul(x, y *E12) *E12 {
	var tx, t, ty E6
	tx.Mul(&x.C0, &y.C1)
	t.Mul(&y.C0, &x.C1)
	tx.Add(&tx, &t)

	ty.Mul(&x.C1, &y.C1)
	t.Mul(&x.C0, &y.C0)
	ty.MulByNonResidue(&ty)

	z.C1.Set(&tx)
	z.C0.Add(&t, &ty)
	return z
}

func (z *E12) MulByE6(x *E12, y *E6) *E12 {
	z.C0.Mul(&x.C0, y)
	z.C1.Mul(&x.C1, y)
	return z
}

func (z *E12) Square(x *E12) *E12 {
	var v0, t, ty E6
	v0.Mul(&x.C0, &x.C1)

	t.MulByNonResidue(&x.C1)
	t.Add(&x.C0, &t)
	ty.Add(&x.C0, &x.C1)
	ty.Mul(&ty, &t)
	ty.Sub(&ty, &v0)
	t.MulByNonResidue(&v0)
	ty.Sub(&ty, &t)

	z.C1.Add(&v0, &v0)
	z.C0.Set(&ty)
	return z
}

// Inverse uses the conjugate/norm method of Scott §3.2.
func (z *E12) Inverse(x *E12) *E12 {
	var t1, t2 E6
	t1.Square(&x.C1)
	t2.Square(&x.C0)
	t1.MulByNonResidue(&t1)
	t2.Sub(&t2, &t1) // norm = C0^2 - MulByNonResidue(C1^2)
	t2.Inverse(&t2)

	z.C1.Neg(&x.C1)
	z.C0.Set(&x.C0)
	z.MulByE6(z, &t2)
	return z
}

func (z *E12) Equal(x *E12) bool {
	return z.C0.Equal(&x.C0) && z.C1.Equal(&x.C1)
}

// Exp computes z = x^k by left-to-right square-and-multiply (spec.md
// §4.3's final-exponentiation hard part calls this with the curve's fixed
// BN parameter; there is no fixed-window optimization here since k is not
// reused often enough to amortize a table build).
func (z *E12) Exp(x E12, k *big.Int) *E12 {
	var res E12
	res.SetOne()
	base := x
	bits := k.BitLen()
	neg := k.Sign() < 0
	absK := k
	if neg {
		absK = new(big.Int).Neg(k)
	}
	for i := bits - 1; i >= 0; i-- {
		res.Square(&res)
		if absK.Bit(i) != 0 {
			res.Mul(&res, &base)
		}
	}
	if neg {
		res.Inverse(&res) // x^-k = (x^k)^-1
	}
	z.Set(&res)
	return z
}
