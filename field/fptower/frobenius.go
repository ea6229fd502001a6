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

import (
	"math/big"

	"github.com/BaoNinh2808/plonk-bn254/field/fq"
)

// The Frobenius endomorphism on Fq2 (raising to the p-th power) equals
// conjugation because Fq's characteristic satisfies p ≡ 3 (mod 4), so
// u^p = u^3 = -u (see E2.Conjugate). The tower's higher Frobenius powers
// (on Fq6 and Fq12) reduce to multiplying each Fq2 "digit" by a fixed
// power of the cubic/sextic non-residue ξ=9+u; those powers are derived
// once here via big.Int exponentiation rather than hardcoded, following
// the same rationale as field/fr/glv.go's Lambda derivation.
var (
	xiToPMinus1Over3         E2
	xiToPMinus1Over2         E2
	xiTo2PMinus2Over3        E2
	xiToPSquaredMinus1Over3  fq.Element
	xiTo2PSquaredMinus2Over3 fq.Element
	xiToPSquaredMinus1Over6  fq.Element
	xiToPMinus1Over6         E2
)

func init() {
	var xi E2
	xi.A0.SetUint64(9)
	xi.A1.SetUint64(1)

	p := fq.Modulus
	one := big.NewInt(1)
	two := big.NewInt(2)
	three := big.NewInt(3)
	six := big.NewInt(6)

	pMinus1 := new(big.Int).Sub(p, one)
	pSquared := new(big.Int).Mul(p, p)
	pSquaredMinus1 := new(big.Int).Sub(pSquared, one)

	xiToPMinus1Over3.Exp(xi, new(big.Int).Div(pMinus1, three))
	xiToPMinus1Over2.Exp(xi, new(big.Int).Div(pMinus1, two))
	xiToPMinus1Over6.Exp(xi, new(big.Int).Div(pMinus1, six))

	twoPMinus2 := new(big.Int).Mul(big.NewInt(2), pMinus1)
	xiTo2PMinus2Over3.Exp(xi, new(big.Int).Div(twoPMinus2, three))

	var xiPSquaredMinus1Over3, xiTwoPSquaredMinus2Over3, xiPSquaredMinus1Over6 E2
	xiPSquaredMinus1Over3.Exp(xi, new(big.Int).Div(pSquaredMinus1, three))
	xiPSquaredMinus1Over6.Exp(xi, new(big.Int).Div(pSquaredMinus1, six))
	twoPSquaredMinus2 := new(big.Int).Mul(big.NewInt(2), pSquaredMinus1)
	xiTwoPSquaredMinus2Over3.Exp(xi, new(big.Int).Div(twoPSquaredMinus2, three))

	// These three powers land in the Fq subfield by construction (their
	// exponent is a multiple of (p+1), the norm map's kernel index), so
	// the imaginary component is zero; keep only the real part.
	xiToPSquaredMinus1Over3 = xiPSquaredMinus1Over3.A0
	xiTo2PSquaredMinus2Over3 = xiTwoPSquaredMinus2Over3.A0
	xiToPSquaredMinus1Over6 = xiPSquaredMinus1Over6.A0

	XiToPMinus1Over3 = xiToPMinus1Over3
	XiToPMinus1Over2 = xiToPMinus1Over2
	XiToPSquaredMinus1Over3 = xiToPSquaredMinus1Over3
}

// Exported aliases of the above, for the curve package's Miller loop,
// which needs to twist q by the Frobenius directly on its coordinates
// rather than through E6/E12's tower Frobenius methods.
var (
	XiToPMinus1Over3        E2
	XiToPMinus1Over2        E2
	XiToPSquaredMinus1Over3 fq.Element
)

// Frobenius raises z to the p-th power (one application of the Frobenius
// endomorphism on Fq6).
func (z *E6) Frobenius(x *E6) *E6 {
	var b2, b1, b0 E2
	b2.Conjugate(&x.B2)
	b1.Conjugate(&x.B1)
	b0.Conjugate(&x.B0)
	b2.Mul(&b2, &xiTo2PMinus2Over3)
	b1.Mul(&b1, &xiToPMinus1Over3)
	z.B2 = b2
	z.B1 = b1
	z.B0 = b0
	return z
}

// FrobeniusP2 computes x^(p²).
func (z *E6) FrobeniusP2(x *E6) *E6 {
	var b2, b1 E2
	b2.MulByElement(&x.B2, &xiTo2PSquaredMinus2Over3)
	b1.MulByElement(&x.B1, &xiToPSquaredMinus1Over3)
	z.B2 = b2
	z.B1 = b1
	z.B0 = x.B0
	return z
}

// FrobeniusP4 computes x^(p⁴).
func (z *E6) FrobeniusP4(x *E6) *E6 {
	var b2, b1 E2
	b2.MulByElement(&x.B2, &xiToPSquaredMinus1Over3)
	b1.MulByElement(&x.B1, &xiTo2PSquaredMinus2Over3)
	z.B2 = b2
	z.B1 = b1
	z.B0 = x.B0
	return z
}

// Frobenius raises z to the p-th power on Fq12.
func (z *E12) Frobenius(x *E12) *E12 {
	var c1, c0 E6
	c1.Frobenius(&x.C1)
	c0.Frobenius(&x.C0)
	c1.MulByE2(&c1, &xiToPMinus1Over6)
	z.C1 = c1
	z.C0 = c0
	return z
}

func (z *E12) FrobeniusP2(x *E12) *E12 {
	var c1, c0 E6
	c1.FrobeniusP2(&x.C1)
	c1.MulByE2WithFqScalar(&c1, &xiToPSquaredMinus1Over6)
	c0.FrobeniusP2(&x.C0)
	z.C1 = c1
	z.C0 = c0
	return z
}

func (z *E12) FrobeniusP4(x *E12) *E12 {
	var c1, c0 E6
	c1.FrobeniusP4(&x.C1)
	c1.MulByE2WithFqScalar(&c1, &xiToPSquaredMinus1Over3)
	c0.FrobeniusP4(&x.C0)
	z.C1 = c1
	z.C0 = c0
	return z
}

// MulByE2WithFqScalar multiplies every Fq2 digit of x by an Fq scalar,
// used by the Frobenius towers above where the scaling constant happens
// to live in the Fq subfield.
func (z *E6) MulByE2WithFqScalar(x *E6, s *fq.Element) *E6 {
	z.B0.MulByElement(&x.B0, s)
	z.B1.MulByElement(&x.B1, s)
	z.B2.MulByElement(&x.B2, s)
	return z
}
