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

// Package fq implements arithmetic over Fq, the BN254 base field:
//
//	p = 21888242871839275222246405745257275088696311157297823662689037894645226208583
//
// Element stores values in the 4x64-bit limb representation described in
// spec.md §3; see DESIGN.md "Field/tower representation" for why the
// arithmetic underneath is computed through math/big rather than a
// hand-rolled Montgomery multiplier.
//
// Fq has no primitive root of unity exposed (spec.md §9 open question 2):
// only fr.fft.Domain ever needs one.
package fq

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/internal/limbs"
)

// Modulus is p, the BN254 base field modulus.
var Modulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)

// sqrtExponent is (p+1)/4, used because p ≡ 3 (mod 4), so square roots can
// be extracted by a single exponentiation (spec.md §4.1 "sqrt").
var sqrtExponent = new(big.Int).Rsh(new(big.Int).Add(Modulus, big.NewInt(1)), 2)

// ErrNonResidue is returned by Sqrt when the input has no square root.
var ErrNonResidue = errors.New("fq: not a quadratic residue")

// Element is a canonical element of Fq: 0 <= value < Modulus.
type Element struct {
	limbs limbs.Repr
}

// NewElement builds an Element from a uint64.
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// SetUint64 sets e to v and returns e.
func (e *Element) SetUint64(v uint64) *Element {
	e.limbs = limbs.Repr{v, 0, 0, 0}
	return e
}

// SetZero sets e to 0.
func (e *Element) SetZero() *Element {
	e.limbs = limbs.Repr{}
	return e
}

// SetOne sets e to 1.
func (e *Element) SetOne() *Element {
	return e.SetUint64(1)
}

// IsZero reports whether e == 0.
func (e *Element) IsZero() bool {
	return e.limbs == limbs.Repr{}
}

// IsOne reports whether e == 1.
func (e *Element) IsOne() bool {
	return e.limbs == (limbs.Repr{1, 0, 0, 0})
}

// Set sets e = a.
func (e *Element) Set(a *Element) *Element {
	e.limbs = a.limbs
	return e
}

// bigint returns the canonical big.Int value of e.
func (e *Element) bigint() *big.Int {
	return limbs.ToBig(&e.limbs)
}

// setBig reduces v mod Modulus and stores it in e.
func (e *Element) setBig(v *big.Int) *Element {
	var r big.Int
	r.Mod(v, Modulus)
	limbs.FromBig(&r, &e.limbs)
	return e
}

// SetBigInt sets e to v mod Modulus.
func (e *Element) SetBigInt(v *big.Int) *Element {
	return e.setBig(v)
}

// SetString parses a base-10 string into e, reducing mod Modulus. It
// panics on malformed input since it is only ever called with constants
// fixed at compile time (curve generators, tower non-residues).
func (e *Element) SetString(s string) *Element {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("fq: invalid decimal string: " + s)
	}
	return e.setBig(v)
}

// BigInt writes the canonical value of e into z and returns it.
func (e *Element) BigInt(z *big.Int) *big.Int {
	z.Set(e.bigint())
	return z
}

// Add sets e = a + b.
func (e *Element) Add(a, b *Element) *Element {
	var t big.Int
	t.Add(a.bigint(), b.bigint())
	return e.setBig(&t)
}

// Sub sets e = a - b.
func (e *Element) Sub(a, b *Element) *Element {
	var t big.Int
	t.Sub(a.bigint(), b.bigint())
	return e.setBig(&t)
}

// Neg sets e = -a.
func (e *Element) Neg(a *Element) *Element {
	var t big.Int
	t.Neg(a.bigint())
	return e.setBig(&t)
}

// Mul sets e = a * b.
func (e *Element) Mul(a, b *Element) *Element {
	var t big.Int
	t.Mul(a.bigint(), b.bigint())
	return e.setBig(&t)
}

// Square sets e = a * a.
func (e *Element) Square(a *Element) *Element {
	return e.Mul(a, a)
}

// Double sets e = a + a.
func (e *Element) Double(a *Element) *Element {
	return e.Add(a, a)
}

// Exp sets e = a^k.
func (e *Element) Exp(a Element, k *big.Int) *Element {
	var t big.Int
	t.Exp(a.bigint(), k, Modulus)
	return e.setBig(&t)
}

// Inverse sets e = a^-1. Per spec.md §4.1, the only failure is a==0, in
// which case e is set to zero and the zero value is the sentinel the
// caller must check via IsZero on the input before relying on the result.
func (e *Element) Inverse(a *Element) *Element {
	if a.IsZero() {
		e.SetZero()
		return e
	}
	var t big.Int
	t.ModInverse(a.bigint(), Modulus)
	return e.setBig(&t)
}

// Legendre returns the Legendre symbol of e: 1 if e is a nonzero QR, -1 if
// a non-residue, 0 if e == 0.
func (e *Element) Legendre() int {
	if e.IsZero() {
		return 0
	}
	var t big.Int
	exp := new(big.Int).Rsh(new(big.Int).Sub(Modulus, big.NewInt(1)), 1)
	t.Exp(e.bigint(), exp, Modulus)
	if t.Cmp(big.NewInt(1)) == 0 {
		return 1
	}
	return -1
}

// Sqrt sets e = sqrt(a) and returns e, or returns nil (leaving e
// untouched) if a is not a quadratic residue. p ≡ 3 (mod 4) for BN254's Fq,
// so this is a single exponentiation by (p+1)/4.
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

// Equal reports whether e == a.
func (e *Element) Equal(a *Element) bool {
	return e.limbs == a.limbs
}

// Cmp compares the canonical values of e and a.
func (e *Element) Cmp(a *Element) int {
	return e.bigint().Cmp(a.bigint())
}

// SetRandom sets e to a uniformly random element of Fq.
func (e *Element) SetRandom() (*Element, error) {
	v, err := rand.Int(rand.Reader, Modulus)
	if err != nil {
		return nil, err
	}
	return e.setBig(v), nil
}

// SetBytes interprets b as a big-endian integer, reduces it mod Modulus,
// and stores it in e (matches the non-Montgomery big-endian wire format of
// spec.md §6).
func (e *Element) SetBytes(b []byte) *Element {
	v := new(big.Int).SetBytes(b)
	return e.setBig(v)
}

// Bytes renders the canonical value of e as 32 big-endian bytes.
func (e *Element) Bytes() [32]byte {
	return limbs.Bytes(&e.limbs)
}

// Marshal is an alias of Bytes for transcript/wire-format call sites.
func (e *Element) Marshal() []byte {
	b := e.Bytes()
	return b[:]
}

// GetBit returns bit i (0 = least significant) of the canonical value of e.
func (e *Element) GetBit(i int) uint64 {
	return limbs.Bit(&e.limbs, i)
}

// BatchInvert inverts every element of xs in place, using a single
// inversion and 3n multiplications (spec.md §4.1). Zero elements are left
// as zero rather than aborting the batch, so callers that may feed zeros
// must check for them explicitly downstream (spec.md's stated contract).
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

// String renders the decimal value of e.
func (e *Element) String() string {
	return e.bigint().String()
}
