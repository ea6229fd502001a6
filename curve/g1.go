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

// Package bn254 implements spec.md §4.1/§4.4's curve groups: G1 (y²=x³+3
// over Fq), G2 (the sextic twist over Fq2), and the optimal ate pairing
// between them.
package bn254

import (
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/field/fq"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
)

// G1Affine is a point of the G1 subgroup in affine coordinates.
type G1Affine struct {
	X, Y fq.Element
}

// G1Jac is a point of G1 in Jacobian coordinates (X,Y,Z) representing
// affine (X/Z², Y/Z³).
type G1Jac struct {
	X, Y, Z fq.Element
}

var bCurveCoeff = fq.NewElement(3)

// G1Gen is the standard generator (1,2) of G1.
var G1Gen = G1Affine{X: fq.NewElement(1), Y: fq.NewElement(2)}

func (p *G1Affine) IsInfinity() bool { return p.X.IsZero() && p.Y.IsZero() }

func (p *G1Affine) SetInfinity() *G1Affine {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

func (p *G1Affine) Set(q *G1Affine) *G1Affine {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	return p
}

// IsOnCurve checks y² = x³+3.
func (p *G1Affine) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	var lhs, rhs, x3 fq.Element
	lhs.Square(&p.Y)
	x3.Square(&p.X)
	x3.Mul(&x3, &p.X)
	rhs.Add(&x3, &bCurveCoeff)
	return lhs.Equal(&rhs)
}

func (p *G1Jac) FromAffine(q *G1Affine) *G1Jac {
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

func (p *G1Jac) IsInfinity() bool { return p.Z.IsZero() }

func (p *G1Affine) FromJacobian(q *G1Jac) *G1Affine {
	if q.IsInfinity() {
		p.SetInfinity()
		return p
	}
	var zInv, zInv2, zInv3 fq.Element
	zInv.Inverse(&q.Z)
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	p.X.Mul(&q.X, &zInv2)
	p.Y.Mul(&q.Y, &zInv3)
	return p
}

// Double sets p = 2*q in Jacobian coordinates (standard a=0 doubling
// formula).
func (p *G1Jac) Double(q *G1Jac) *G1Jac {
	if q.IsInfinity() || q.Y.IsZero() {
		p.X.SetZero()
		p.Y.SetOne()
		p.Z.SetZero()
		return p
	}
	var a, b, c, d, e, f fq.Element
	a.Square(&q.X)
	b.Square(&q.Y)
	c.Square(&b)

	var xb fq.Element
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
	var z fq.Element
	z.Mul(&q.Y, &q.Z)
	z.Double(&z)

	p.X.Sub(&f, &d)
	p.X.Sub(&p.X, &d)

	var c8 fq.Element
	c8.Double(&c)
	c8.Double(&c8)
	c8.Double(&c8)

	p.Y.Sub(&d, &p.X)
	p.Y.Mul(&p.Y, &e)
	p.Y.Sub(&p.Y, &c8)

	p.Z = z
	return p
}

// AddAssign sets p = p + q (full Jacobian addition, handling either
// operand being infinity).
func (p *G1Jac) AddAssign(q *G1Jac) *G1Jac {
	if q.IsInfinity() {
		return p
	}
	if p.IsInfinity() {
		p.Set(q)
		return p
	}

	var z1z1, z2z2 fq.Element
	z1z1.Square(&p.Z)
	z2z2.Square(&q.Z)

	var u1, u2 fq.Element
	u1.Mul(&p.X, &z2z2)
	u2.Mul(&q.X, &z1z1)

	var s1, s2 fq.Element
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

	var h, i, j, r, v fq.Element
	h.Sub(&u2, &u1)
	var h2 fq.Element
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

	var s1j fq.Element
	s1j.Mul(&s1, &j)
	s1j.Double(&s1j)
	p.Y.Sub(&v, &p.X)
	p.Y.Mul(&p.Y, &r)
	p.Y.Sub(&p.Y, &s1j)

	var zsum fq.Element
	zsum.Add(&p.Z, &q.Z)
	zsum.Square(&zsum)
	zsum.Sub(&zsum, &z1z1)
	zsum.Sub(&zsum, &z2z2)
	p.Z = zsum
	p.Z.Mul(&p.Z, &h)

	return p
}

// AddMixed sets p = p + q where q is affine, by lifting q to Jacobian
// coordinates with Z = 1 and calling AddAssign; it costs the same as a full
// Jacobian addition.
func (p *G1Jac) AddMixed(q *G1Affine) *G1Jac {
	if q.IsInfinity() {
		return p
	}
	var qj G1Jac
	qj.FromAffine(q)
	return p.AddAssign(&qj)
}

func (p *G1Jac) Neg(q *G1Jac) *G1Jac {
	p.X.Set(&q.X)
	p.Y.Neg(&q.Y)
	p.Z.Set(&q.Z)
	return p
}

func (p *G1Affine) Neg(q *G1Affine) *G1Affine {
	p.X.Set(&q.X)
	p.Y.Neg(&q.Y)
	return p
}

// ScalarMultiplication sets p = [k]q using double-and-add over k's bits.
func (p *G1Jac) ScalarMultiplication(q *G1Affine, k *big.Int) *G1Jac {
	var acc G1Jac
	acc.X.SetZero()
	acc.Y.SetOne()
	acc.Z.SetZero()

	var base G1Jac
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

func (p *G1Jac) Set(q *G1Jac) *G1Jac {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.Z.Set(&q.Z)
	return p
}

// ScalarMultiplicationFr is the fr.Element-keyed convenience wrapper used
// throughout backend/plonk, where scalars are always field elements
// rather than raw big.Ints.
func (p *G1Jac) ScalarMultiplicationFr(q *G1Affine, k *fr.Element) *G1Jac {
	return p.ScalarMultiplication(q, k.BigInt(new(big.Int)))
}

// BatchJacobianToAffineG1 normalizes many Jacobian points at once using a
// single batch inversion of their Z coordinates (spec.md §5's
// batch_normalize), instead of one inversion per point.
func BatchJacobianToAffineG1(points []G1Jac) []G1Affine {
	out := make([]G1Affine, len(points))
	zs := make([]fq.Element, len(points))
	for i := range points {
		if points[i].IsInfinity() {
			zs[i].SetOne()
		} else {
			zs[i] = points[i].Z
		}
	}
	invs := fq.BatchInvert(zs)
	for i := range points {
		if points[i].IsInfinity() {
			out[i].SetInfinity()
			continue
		}
		var zInv2, zInv3 fq.Element
		zInv2.Square(&invs[i])
		zInv3.Mul(&zInv2, &invs[i])
		out[i].X.Mul(&points[i].X, &zInv2)
		out[i].Y.Mul(&points[i].Y, &zInv3)
	}
	return out
}
