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

// Package fr implements arithmetic over Fr, the BN254 scalar field:
//
//	q = 21888242871839275222246405745257275088548364400416034343698204186575808495617
//
// See field/fq for the shared representation rationale (DESIGN.md "Field/
// tower representation").
package fr

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/internal/limbs"
)

// Modulus is q, the BN254 scalar field modulus (the curve's group order).
var Modulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

var (
	one          = big.NewInt(1)
	two          = big.NewInt(2)
	twoInvBig    = new(big.Int).ModInverse(two, Modulus)
	sqrtExponent = new(big.Int).Rsh(new(big.Int).Add(Modulus, one), 2)
)

// ErrNonResidue is returned by Sqrt when the input has no square root.
var ErrNonResidue = errors.New("fr: not a quadratic residue")

// Element is a canonical element of Fr: 0 <= value < Modulus.
type Element struct {
	limbs limbs.Repr
}

// NewElement builds an Element from a uint64.
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

func (e *Element) SetUint64(v uint64) *Element {
	e.limbs = limbs.Repr{v, 0, 0, 0}
	return e
}

func (e *Element) SetZero() *Element {
	e.limbs = limbs.Repr{}
	return e
}

func (e *Element) SetOne() *Element {
	return e.SetUint64(1)
}

func (e *Element) IsZero() bool {
	return e.limbs == limbs.Repr{}
}

func (e *Element) IsOne() bool {
	return e.limbs == (limbs.Repr{1, 0, 0, 0})
}

func (e *Element) Set(a *Element) *Element {
	e.limbs = a.limbs
	return e
}

func (e *Element) bigint() *big.Int {
	return limbs.ToBig(&e.limbs)
}

func (e *Element) setBig(v *big.Int) *Element {
	var r big.Int
	r.Mod(v, Modulus)
	limbs.FromBig(&r, &e.limbs)
	return e
}

func (e *Element) SetBigInt(v *big.Int) *Element {
	return e.setBig(v)
}

// SetString parses a base-10 string into e, reducing mod Modulus. It
// panics on malformed input since it is only ever called with constants
// fixed at compile time or in test code.
func (e *Element) SetString(s string) *Element {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("fr: invalid decimal string: " + s)
	}
	return e.setBig(v)
}

func (e *Element) BigInt(z *big.Int) *big.Int {
	z.Set(e.bigint())
	return z
}

func (e *Element) Add(a, b *Element) *Element {
	var t big.Int
	t.Add(a.bigint(), b.bigint())
	return e.setBig(&t)
}

func (e *Element) Sub(a, b *Element) *Element {
	var t big.Int
	t.Sub(a.bigint(), b.bigint())
	return e.setBig(&t)
}

func (e *Element) Neg(a *Element) *Element {
	var t big.Int
	t.Neg(a.bigint())
	return e.setBig(&t)
}

func (e *Element) Mul(a, b *Element) *Element {
	var t big.Int
	t.Mul(a.bigint(), b.bigint())
	return e.setBig(&t)
}

func (e *Element) Square(a *Element) *Element {
	return e.Mul(a, a)
}

func (e *Element) Double(a *Element) *Element {
	return e.Add(a, a)
}

// Div sets e = a / b.
func (e *Element) Div(a, b *Element) *Element {
	var inv Element
	inv.Inverse(b)
	return e.Mul(a, &inv)
}

func (e *Element) Exp(a Element, k *big.Int) *Element {
	var t big.Int
	kk := k
	if kk.Sign() < 0 {
		kk = new(big.Int).Mod(k, new(big.Int).Sub(Modulus, one))
	}
	t.Exp(a.bigint(), kk, Modulus)
	return e.setBig(&t)
}

// Inverse sets e = a^-1; see fq.Element.Inverse for the zero-input contract.
func (e *Element) Inverse(a *Element) *Element {
	if a.IsZero() {
		e.SetZero()
		return e
	}
	var t big.Int
	t.ModInverse(a.bigint(), Modulus)
	return e.setBig(&t)
}

// TwoInv is 2^-1 in Fr, computed directly rather than left as the source's
// zeroed TODO constant (spec.md §9 open question 1).
func TwoInv() Element {
	var e Element
	e.setBig(twoInvBig)
	return e
}

func (e *Element) Legendre() int {
	if e.IsZero() {
		return 0
	}
	var t big.Int
	exp := new(big.Int).Rsh(new(big.Int).Sub(Modulus, one), 1)
	t.Exp(e.bigint(), exp, Modulus)
	if t.Cmp(one) == 0 {
		return 1
	}
	return -1
}

func (e *Element) Sqrt(a *Element) *Element {
	if a.IsZero() {
		e.SetZero()
		return e
	}
	if a.Legendre() != 1 {
		return nil
	}
	var cand Element
	cand.Exp(*a, sqrtExponent)
	var check Element
	check.Square(&cand)
	if !check.Equal(a) {
		return nil
	}
	e.Set(&cand)
	return e
}

func (e *Element) Equal(a *Element) bool {
	return e.limbs == a.limbs
}

func (e *Element) Cmp(a *Element) int {
	return e.bigint().Cmp(a.bigint())
}

func (e *Element) SetRandom() (*Element, error) {
	v, err := rand.Int(rand.Reader, Modulus)
	if err != nil {
		return nil, err
	}
	return e.setBig(v), nil
}

func (e *Element) SetBytes(b []byte) *Element {
	v := new(big.Int).SetBytes(b)
	return e.setBig(v)
}

func (e *Element) Bytes() [32]byte {
	return limbs.Bytes(&e.limbs)
}

func (e *Element) Marshal() []byte {
	b := e.Bytes()
	return b[:]
}

func (e *Element) GetBit(i int) uint64 {
	return limbs.Bit(&e.limbs, i)
}

// BatchInvert inverts every element of xs using a single inversion plus 3n
// multiplications, treating zero inputs as 1 rather than aborting (spec.md
// §4.1).
func BatchInvert(xs []Element) []Element {
	res := make([]Element, len(xs))
	if len(xs) == 0 {
		return res
	}
	zeroes := make([]bool, len(xs))
	accumulator := NewElement(1)

	running := make([]Element, len(xs))
	for i, x := range xs {
		if x.IsZero() {
			zeroes[i] = true
			running[i] = accumulator
			continue
		}
		running[i] = accumulator
		accumulator.Mul(&accumulator, &x)
	}

	var inv Element
	inv.Inverse(&accumulator)

	for i := len(xs) - 1; i >= 0; i-- {
		if zeroes[i] {
			res[i].SetZero()
			continue
		}
		res[i].Mul(&inv, &running[i])
		inv.Mul(&inv, &xs[i])
	}
	return res
}

func (e *Element) String() string {
	return e.bigint().String()
}
