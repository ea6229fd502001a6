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

	"github.com/BaoNinh2808/plonk-bn254/field/fq"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
)

// Beta is a primitive cube root of unity in Fq: the non-trivial root of
// x²+x+1 ≡ 0 (mod p), computed via math/big's ModSqrt the same way
// field/fr/glv.go derives the scalar-side Lambda, rather than transcribing
// a 254-bit constant by hand (see DESIGN.md "Field/tower representation").
// Because G1 has j-invariant 0 (y²=x³+3, a=0), (x,y) ↦ (Beta·x, y) is a
// curve endomorphism fixing the identity and scaling every point in the
// prime-order subgroup by Lambda (field/fr/glv.go), which is exactly the
// GLV split MSM needs on the point side to match fr.SplitScalar on the
// scalar side.
var Beta = computeBeta()

func computeBeta() fq.Element {
	negThree := new(big.Int).Sub(fq.Modulus, big.NewInt(3))
	root := new(big.Int).ModSqrt(negThree, fq.Modulus)
	if root == nil {
		panic("bn254: -3 is not a QR mod p; BN254 base field assumption violated")
	}
	var two big.Int
	two.SetInt64(2)
	var twoInv big.Int
	twoInv.ModInverse(&two, fq.Modulus)

	x := new(big.Int).Sub(root, big.NewInt(1))
	x.Mul(x, &twoInv)
	x.Mod(x, fq.Modulus)

	var beta fq.Element
	beta.SetBigInt(x)

	// Fq has two non-trivial cube roots of unity (x and -1-x); only one of
	// them scales points by fr.Lambda rather than by Lambda². Keep the one
	// that matches on the generator, whose x-coordinate is 1.
	var lg G1Jac
	lg.ScalarMultiplication(&G1Gen, fr.Lambda)
	var lgAff G1Affine
	lgAff.FromJacobian(&lg)
	if !lgAff.X.Equal(&beta) {
		x.Sub(fq.Modulus, x)
		x.Sub(x, big.NewInt(1))
		beta.SetBigInt(x)
	}
	return beta
}

// Endomorphism maps q to (Beta·x, y), the GLV endomorphism phi(P) = Lambda·P
// for any P in G1's prime-order subgroup.
func (p *G1Affine) Endomorphism(q *G1Affine) *G1Affine {
	if q.IsInfinity() {
		return p.SetInfinity()
	}
	p.X.Mul(&q.X, &Beta)
	p.Y.Set(&q.Y)
	return p
}
