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

package plonk

import (
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/polynomial"
)

// publicInputPolynomial interpolates spec.md's PI(X): -publicInputs[i] at
// row i for i < len(publicInputs), zero at every other row. Folded into
// the arithmetic gate identity (Qm*l*r+Ql*l+Qr*r+Qo*o+Qc+PI), it enforces
// w_L[i] == publicInputs[i] at any row where the composer sets Ql=1 and
// every other selector to zero — the standard PLONK convention that a
// circuit's public rows carry the public value directly in w_L.
func publicInputPolynomial(n int, domain *fft.Domain, publicInputs []fr.Element) *polynomial.Polynomial {
	evals := make([]fr.Element, n)
	for i, v := range publicInputs {
		if i >= n {
			break
		}
		evals[i].Neg(&v)
	}
	p := polynomial.New(evals)
	p.Form = polynomial.EvaluationsOnH
	_ = p.ToCanonical(domain)
	return p
}

// publicInputEval evaluates PI(zeta) directly from the public input values
// via the domain's closed-form Lagrange basis (field/fr/fft's
// LagrangeBasisAt) instead of through the interpolated polynomial: the
// verifier holds no commitment to PI(X) to open, so it recomputes this
// scalar itself from public data and folds it into the quotient identity
// exactly like the permutation argument's other public constants.
func publicInputEval(domain *fft.Domain, publicInputs []fr.Element, zeta *fr.Element) fr.Element {
	var acc, term fr.Element
	for i, v := range publicInputs {
		li := domain.LagrangeBasisAt(i, zeta)
		term.Mul(&v, &li)
		acc.Sub(&acc, &term)
	}
	return acc
}
