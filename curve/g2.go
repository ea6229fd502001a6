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

// G2Affine is a point of the G2 subgroup (the sextic twist), affine
// coordinates over Fq2.
type G2Affine struct {
	X, Y fptower.E2
}

// G2Jac is the Jacobian form of a G2 point.
type G2Jac struct {
	X, Y, Z fptower.E2
}

// twistB is the twist's curve coefficient: 3/(9+u), so that (x,y) on the
// twist maps to a genuine BN254 G2 point (spec.md §4.1).
var twistB = computeTwistB()

func computeTwistB() fptower.E2 {
	var nine fptower.E2
	nine.A0.SetUint64(9)
	nine.A1.SetUint64(1)
	var three fptower.E2
	three.A0.SetUint64(3)
	var b fptower.E2
	b.Inverse(&nine)
	b.Mul(&b, &three)
	return b
}

func (p *G2Affine) IsInfinity() bool { return p.X.IsZero() && p.Y.IsZero() }

func (p *G2Affine) SetInfinity() *G2Affine {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

func (p *G2Affine) Set(q *G2Affine) *G2Affine {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	return p
}

func (p *G2Affine) Neg(q *G2Affine) *G2Affine {
	p.X.Set(&q.X)
	p.Y.Neg(&q.Y)
	return p
}

// IsOnCurve checks y² = x³ + twistB.
func (p *G2Affine) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	var lhs, rhs, x3 fptower.E2
	lhs.Square(&p.Y)
	x3.Square(&p.X)
	x3.Mul(&x3, &p.X)
	rhs.Add(&x3, &twistB)
	return lhs.Equal(&rhs)
}

func (p *G2Jac) FromAffine(q *G2Affine) *G2Jac {
	if q.IsInfinity() {
		p.X.SetZero()
		p.Y.SetOne()
		p.Z.SetZero()
		return p
	}
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.Z.SetOne()
	return p
}

func (p *G2Jac) IsInfinity() bool { return p.Z.IsZero() }

func (p *G2Affine) FromJacobian(q *G2Jac) *G2Affine {
	if q.IsInfinity() {
		p.SetInfinity()
		return p
	}
	var zInv, zInv2, zInv3 fptower.E2
	zInv.Inverse(&q.Z)
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	p.X.Mul(&q.X, &zInv2)
	p.Y.Mul(&q.Y, &zInv3)
	return p
}

func (p *G2Jac) Set(q *G2Jac) *G2Jac {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.Z.Set(&q.Z)
	return p
}

// Double sets p = 2*q (a=0 Jacobian doubling over Fq2, same identity as
// G1's but with E2 arithmetic).
func (p *G2Jac) Double(q *G2Jac) *G2Jac {
	if q.IsInfinity() || q.Y.IsZero() {
		p.X.SetZero()
		p.Y.SetOne()
		p.Z.SetZero()
		return p
	}
	var a, b, c, d, e, f fptower.E2
	a.Square(&q.X)
	b.Square(&q.Y)
	c.Square(&b)

	var xb fptower.E2
	xb.Add(&q.X, &b)
	d.Square(&xb)
	d.Sub(&d, &a)
	d.Sub(&d, &c)
	d.Double(&d)

	e.Double(&a)
	e.Add(&e, &a)
	f.Square(&e)

	// z is derived from q.Y/q.Z before p.X/p.Y are written, since p and q
	// may be the same point (ScalarMultiplication's acc.Double(&acc)).
	var z fptower.E2
	z.Mul(&q.Y, &q.Z)
	z.Double(&z)

	p.X.Sub(&f, &d)
	p.X.Sub(&p.X, &d)

	var c8 fptower.E2
	c8.Double(&c)
	c8.Double(&c8)
	c8.Double(&c8)

	p.Y.Sub(&d, &p.X)
	p.Y.Mul(&p.Y, &e)
	p.Y.Sub(&p.Y, &c8)

	p.Z = z
	return p
}

func (p *G2Jac) AddAssign(q *G2Jac) *G2Jac {
	if q.IsInfinity() {
		return p
	}
	if p.IsInfinity() {
		p.Set(q)
		return p
	}

	var z1z1, z2z2 fptower.E2
	z1z1.Square(&p.Z)
	z2z2.Square(&q.Z)

	var u1, u2 fptower.E2
	u1.Mul(&p.X, &z2z2)
	u2.Mul(&q.X, &z1z1)

	var s1, s2 fptower.E2
	s1.Mul(&p.Y, &q.Z)
	s1.Mul(&s1, &z2z2)
	s2.Mul(&q.Y, &p.Z)
	s2.Mul(&s2, &z1z1)

	if u1.Equal(&u2) {
		if !s1.Equal(&s2) {
			p.X.SetZero()
			p.Y.SetOne()
			p.Z.SetZero()
			return p
		}
		return p.Double(p)
	}

	var h, i, j, r, v fptower.E2
	h.Sub(&u2, &u1)
	var h2 fptower.E2
	h2.Double(&h)
	i.Square(&h2)
	j.Mul(&h, &i)
	r.Sub(&s2, &s1)
	r.Double(&r)
	v.Mul(&u1, &i)

	p.X.Square(&r)
	p.X.Sub(&p.X, &j)
	p.X.Sub(&p.X, &v)
	p.X.Sub(&p.X, &v)

	var s1j fptower.E2
	s1j.Mul(&s1, &j)
	s1j.Double(&s1j)
	p.Y.Sub(&v, &p.X)
	p.Y.Mul(&p.Y, &r)
	p.Y.Sub(&p.Y, &s1j)

	var zsum fptower.E2
	zsum.Add(&p.Z, &q.Z)
	zsum.Square(&zsum)
	zsum.Sub(&zsum, &z1z1)
	zsum.Sub(&zsum, &z2z2)
	p.Z = zsum
	p.Z.Mul(&p.Z, &h)

	return p
}

func (p *G2Jac) AddMixed(q *G2Affine) *G2Jac {
	if q.IsInfinity() {
		return p
	}
	var qj G2Jac
	qj.FromAffine(q)
	return p.AddAssign(&qj)
}

func (p *G2Jac) Neg(q *G2Jac) *G2Jac {
	p.X.Set(&q.X)
	p.Y.Neg(&q.Y)
	p.Z.Set(&q.Z)
	return p
}

func (p *G2Jac) ScalarMultiplication(q *G2Affine, k *big.Int) *G2Jac {
	var acc G2Jac
	acc.X.SetZero()
	acc.Y.SetOne()
	acc.Z.SetZero()

	var base G2Jac
	base.FromAffine(q)

	for i := k.BitLen() - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k.Bit(i) != 0 {
			acc.AddAssign(&base)
		}
	}
	p.Set(&acc)
	return p
}
