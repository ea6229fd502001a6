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

// E6 is an element of Fq6 = Fq2[v]/(v³-ξ), B0 + B1*v + B2*v².
type E6 struct {
	B0, B1, B2 E2
}

func (z *E6) SetZero() *E6 {
	z.B0.SetZero()
	z.B1.SetZero()
	z.B2.SetZero()
	return z
}

func (z *E6) SetOne() *E6 {
	z.B0.SetOne()
	z.B1.SetZero()
	z.B2.SetZero()
	return z
}

func (z *E6) IsZero() bool { return z.B0.IsZero() && z.B1.IsZero() && z.B2.IsZero() }
func (z *E6) IsOne() bool  { return z.B0.IsOne() && z.B1.IsZero() && z.B2.IsZero() }

func (z *E6) Set(x *E6) *E6 {
	z.B0.Set(&x.B0)
	z.B1.Set(&x.B1)
	z.B2.Set(&x.B2)
	return z
}

func (z *E6) Add(x, y *E6) *E6 {
	z.B0.Add(&x.B0, &y.B0)
	z.B1.Add(&x.B1, &y.B1)
	z.B2.Add(&x.B2, &y.B2)
	return z
}

func (z *E6) Sub(x, y *E6) *E6 {
	z.B0.Sub(&x.B0, &y.B0)
	z.B1.Sub(&x.B1, &y.B1)
	z.B2.Sub(&x.B2, &y.B2)
	return z
}

func (z *E6) Neg(x *E6) *E6 {
	z.B0.Neg(&x.B0)
	z.B1.Neg(&x.B1)
	z.B2.Neg(&x.B2)
	return z
}

// MulByNonResidue sets z = x * v (τ in the cloudflare/bn256 naming):
// v(b0 + b1 v + b2 v²) = b2 ξ + b0 v + b1 v² (spec.md §4.2).
func (z *E6) MulByNonResidue(x *E6) *E6 {
	var b2Xi E2
	b2Xi.MulByNonResidue(&x.B2)
	b2 := x.B1
	b1 := x.B0
	z.B2 = b2
	z.B1 = b1
	z.B0 = b2Xi
	return z
}

// Mul is the Karatsuba product of Devegili et al. §4, grounded on the
// gfP6 implementation's x/y/z-named limbs (here B2/B1/B0 respectively).
func (z *E6) Mul(x, y *E6) *E6 {
	var v0, v1, v2 E2
	v0.Mul(&x.B0, &y.B0)
	v1.Mul(&x.B1, &y.B1)
	v2.Mul(&x.B2, &y.B2)

	var t0, t1, c0 E2
	t0.Add(&x.B1, &x.B2)
	t1.Add(&y.B1, &y.B2)
	c0.Mul(&t0, &t1)
	c0.Sub(&c0, &v1)
	c0.Sub(&c0, &v2)
	c0.MulByNonResidue(&c0)
	c0.Add(&c0, &v0)

	var c1 E2
	t0.Add(&x.B0, &x.B1)
	t1.Add(&y.B0, &y.B1)
	c1.Mul(&t0, &t1)
	c1.Sub(&c1, &v0)
	c1.Sub(&c1, &v1)
	var xiV2 E2
	xiV2.MulByNonResidue(&v2)
	c1.Add(&c1, &xiV2)

	var c2 E2
	t0.Add(&x.B0, &x.B2)
	t1.Add(&y.B0, &y.B2)
	c2.Mul(&t0, &t1)
	c2.Sub(&c2, &v0)
	c2.Add(&c2, &v1)
	c2.Sub(&c2, &v2)

	z.B0.Set(&c0)
	z.B1.Set(&c1)
	z.B2.Set(&c2)
	return z
}

func (z *E6) MulByE2(x *E6, y *E2) *E6 {
	z.B0.Mul(&x.B0, y)
	z.B1.Mul(&x.B1, y)
	z.B2.Mul(&x.B2, y)
	return z
}

func (z *E6) Square(x *E6) *E6 {
	var v0, v1, v2 E2
	v0.Square(&x.B0)
	v1.Square(&x.B1)
	v2.Square(&x.B2)

	var c0, t E2
	t.Add(&x.B1, &x.B2)
	c0.Square(&t)
	c0.Sub(&c0, &v1)
	c0.Sub(&c0, &v2)
	c0.MulByNonResidue(&c0)
	c0.Add(&c0, &v0)

	var c1, xiV2 E2
	t.Add(&x.B0, &x.B1)
	c1.Square(&t)
	c1.Sub(&c1, &v0)
	c1.Sub(&c1, &v1)
	xiV2.MulByNonResidue(&v2)
	c1.Add(&c1, &xiV2)

	var c2 E2
	t.Add(&x.B0, &x.B2)
	c2.Square(&t)
	c2.Sub(&c2, &v0)
	c2.Add(&c2, &v1)
	c2.Sub(&c2, &v2)

	z.B0.Set(&c0)
	z.B1.Set(&c1)
	z.B2.Set(&c2)
	return z
}

// Inverse is Scott §3.2's norm method, grounded on the gfP6
// implementation's A/B/C/F naming.
func (z *E6) Inverse(x *E6) *E6 {
	var t1, A, B, C, F E2
	t1.Mul(&x.B2, &x.B1)
	t1.MulByNonResidue(&t1)

	A.Square(&x.B0)
	A.Sub(&A, &t1)

	B.Square(&x.B2)
	B.MulByNonResidue(&B)
	t1.Mul(&x.B1, &x.B0)
	B.Sub(&B, &t1)

	C.Square(&x.B1)
	t1.Mul(&x.B2, &x.B0)
	C.Sub(&C, &t1)

	F.Mul(&C, &x.B1)
	F.MulByNonResidue(&F)
	t1.Mul(&A, &x.B0)
	F.Add(&F, &t1)
	t1.Mul(&B, &x.B2)
	t1.MulByNonResidue(&t1)
	F.Add(&F, &t1)

	F.Inverse(&F)

	z.B2.Mul(&C, &F)
	z.B1.Mul(&B, &F)
	z.B0.Mul(&A, &F)
	return z
}

func (z *E6) Equal(x *E6) bool {
	return z.B0.Equal(&x.B0) && z.B1.Equal(&x.B1) && z.B2.Equal(&x.B2)
}
