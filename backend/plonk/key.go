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
	"math/big"
	"math/bits"

	"github.com/BaoNinh2808/plonk-bn254/external/composer"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/kzg"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/polynomial"
	"github.com/BaoNinh2808/plonk-bn254/internal/logging"
)

// quotientRatio is how many multiples of n the quotient-evaluation coset
// domain spans. It must exceed the quotient identity's highest degree
// divided by n; the MiMC widget's degree-5 round identity is the binding
// constraint among the four variants, so every variant uses the same
// ratio rather than tuning it per-widget (a simplification recorded in
// DESIGN.md).
const quotientRatio = 8

const numWireColumnsMax = 4

// ProvingKey holds everything Prove needs that does not depend on a
// specific witness: the circuit's domains, its selector and permutation
// polynomials (both in coefficient form and pre-evaluated on the big
// coset, since every widget's quotient term needs the coset form every
// round), the SRS, and the widget manifest (spec.md §3 "ProvingKey").
type ProvingKey struct {
	Variant        Variant
	Manifest       *Manifest
	NbPublicInputs int

	Domain    *fft.Domain // size n
	DomainBig *fft.Domain // size quotientRatio*n

	SRS *kzg.SRS

	Selectors       map[string]*polynomial.Polynomial // coefficient form, size n
	SelectorsCoset  map[string][]fr.Element            // evaluations on DomainBig's coset

	Permutation      [numWireColumnsMax]*polynomial.Polynomial // coefficient form
	PermutationCoset [numWireColumnsMax][]fr.Element

	CosetShift [numWireColumnsMax]fr.Element

	// LagrangeOne is L_1 in coefficient form, used by computeQuotient for
	// the permutation boundary term of the quotient t(X).
	LagrangeOne *polynomial.Polynomial
}

// VerifyingKey holds the public commitments and domain constants the
// verifier needs (spec.md §3 "VerifyingKey").
type VerifyingKey struct {
	Variant        Variant
	Manifest       *Manifest
	NbPublicInputs int

	Domain *fft.Domain

	SRS *kzg.SRS

	SelectorCommitments      map[string]kzg.Digest
	PermutationCommitments   [numWireColumnsMax]kzg.Digest
	CosetShift               [numWireColumnsMax]fr.Element
}

func nextPowerOfTwo(n int) uint64 {
	if n <= 1 {
		return 1
	}
	return uint64(1) << bits.Len(uint(n-1))
}

// selectorPolynomial builds a size-n coefficient-form Polynomial from a
// per-row selector value getter, via an inverse FFT of its evaluations on
// the small domain.
func selectorPolynomial(n int, domain *fft.Domain, rows []composer.SelectorRow, get func(composer.SelectorRow) fr.Element) *polynomial.Polynomial {
	evals := make([]fr.Element, n)
	for i, row := range rows {
		evals[i] = get(row)
	}
	p := polynomial.New(evals)
	p.Form = polynomial.EvaluationsOnH
	_ = p.ToCanonical(domain)
	return p
}

var selectorGetters = map[string]func(composer.SelectorRow) fr.Element{
	"Ql":          func(r composer.SelectorRow) fr.Element { return r.Ql },
	"Qr":          func(r composer.SelectorRow) fr.Element { return r.Qr },
	"Qm":          func(r composer.SelectorRow) fr.Element { return r.Qm },
	"Qo":          func(r composer.SelectorRow) fr.Element { return r.Qo },
	"Qc":          func(r composer.SelectorRow) fr.Element { return r.Qc },
	"Q4":          func(r composer.SelectorRow) fr.Element { return r.Q4 },
	"Q4Next":      func(r composer.SelectorRow) fr.Element { return r.Q4Next },
	"QRange":      func(r composer.SelectorRow) fr.Element { return r.QRange },
	"QLogic": func(r composer.SelectorRow) fr.Element { return r.QLogic },
	// QLogicIsXor/QLogicIsAnd split QLogic by the composer's Qc flag
	// (Qc=0 selects XOR, Qc=1 selects AND, matching original_source's
	// is_xor_gate convention on turbo_logic_widget.cpp).
	"QLogicIsXor": func(r composer.SelectorRow) fr.Element {
		one := fr.NewElement(1)
		var notC, out fr.Element
		notC.Sub(&one, &r.Qc)
		out.Mul(&r.QLogic, &notC)
		return out
	},
	"QLogicIsAnd": func(r composer.SelectorRow) fr.Element {
		var out fr.Element
		out.Mul(&r.QLogic, &r.Qc)
		return out
	},
	"QEcc":        func(r composer.SelectorRow) fr.Element { return r.QEcc },
	"QMimc":       func(r composer.SelectorRow) fr.Element { return r.QMimc },
}

// Setup compiles a circuit description into a matching ProvingKey and
// VerifyingKey (spec.md §4.7 "setup"). srs must cover at least
// quotientRatio*n G1 points, where n is the circuit's padded row count.
func Setup(cd composer.CircuitDescription, v Variant, srs *kzg.SRS) (*ProvingKey, *VerifyingKey, error) {
	n := int(nextPowerOfTwo(len(cd.Wires)))
	domain, err := fft.NewDomain(uint64(n))
	if err != nil {
		return nil, nil, err
	}
	domainBig, err := fft.NewDomain(uint64(n) * quotientRatio)
	if err != nil {
		return nil, nil, err
	}
	if len(srs.G1) < n*quotientRatio {
		return nil, nil, ErrSRSTooSmall
	}

	rows := make([]composer.SelectorRow, n)
	copy(rows, cd.Selectors)

	manifest := newManifest(v)

	pk := &ProvingKey{
		Variant:        v,
		Manifest:       manifest,
		NbPublicInputs: cd.NbPublicInputs,
		Domain:         domain,
		DomainBig:      domainBig,
		SRS:            srs,
		Selectors:      map[string]*polynomial.Polynomial{},
		SelectorsCoset: map[string][]fr.Element{},
	}

	for _, name := range manifest.SelectorNames {
		get, ok := selectorGetters[name]
		if !ok {
			continue
		}
		poly := selectorPolynomial(n, domain, rows, get)
		pk.Selectors[name] = poly
		coset := poly.Clone()
		_ = coset.ToCoset(domainBig)
		pk.SelectorsCoset[name] = coset.Coefficients
	}

	pk.CosetShift[0] = fr.NewElement(1)
	pk.CosetShift[1] = domain.FrMultiplicativeGen
	var shift2, shift3 fr.Element
	shift2.Square(&domain.FrMultiplicativeGen)
	shift3.Mul(&shift2, &domain.FrMultiplicativeGen)
	pk.CosetShift[2] = shift2
	pk.CosetShift[3] = shift3

	buildPermutation(pk, cd, n)

	l1Evals := make([]fr.Element, n)
	l1Evals[0] = fr.NewElement(1)
	l1 := polynomial.New(l1Evals)
	l1.Form = polynomial.EvaluationsOnH
	_ = l1.ToCanonical(domain)
	pk.LagrangeOne = l1

	vk := &VerifyingKey{
		Variant:                v,
		Manifest:               manifest,
		NbPublicInputs:         cd.NbPublicInputs,
		Domain:                 domain,
		SRS:                    srs,
		SelectorCommitments:    map[string]kzg.Digest{},
		CosetShift:             pk.CosetShift,
	}
	for name, poly := range pk.Selectors {
		d, err := kzg.Commit(poly, srs)
		if err != nil {
			return nil, nil, err
		}
		vk.SelectorCommitments[name] = d
	}
	for c := 0; c < v.NumWireColumns(); c++ {
		d, err := kzg.Commit(pk.Permutation[c], srs)
		if err != nil {
			return nil, nil, err
		}
		vk.PermutationCommitments[c] = d
	}

	logging.Logger().Debug().Int("n", n).Str("variant", v.String()).Msg("plonk: setup complete")

	return pk, vk, nil
}

// buildPermutation turns cd.Permutation's cycle decomposition into each
// wire column's permutation polynomial sigma_c(X), sigma_c(omega^row) =
// CosetShift[col'] * omega^row' where (col', row') = cd.Permutation[c][row]
// (spec.md §3 "Wire epicycle"; spec.md §4.7 Round 2's grand-product
// argument consumes these).
func buildPermutation(pk *ProvingKey, cd composer.CircuitDescription, n int) {
	domain := pk.Domain
	numCols := pk.Variant.NumWireColumns()

	for c := 0; c < numCols; c++ {
		evals := make([]fr.Element, n)
		for row := 0; row < n; row++ {
			targetCol, targetRow := c, row
			if c < len(cd.Permutation) && row < len(cd.Permutation[c]) {
				// cd.Permutation[col][row] flattens the target (column, row)
				// as col*n+row, the simplest encoding a Composer can emit for
				// composer.CircuitDescription.Permutation.
				flat := cd.Permutation[c][row]
				if flat >= 0 {
					targetCol = flat / n
					targetRow = flat % n
				}
			}
			var w fr.Element
			w.Exp(domain.Generator, big.NewInt(int64(targetRow)))
			if targetCol >= numWireColumnsMax {
				targetCol = numWireColumnsMax - 1
			}
			w.Mul(&w, &pk.CosetShift[targetCol])
			evals[row] = w
		}
		p := polynomial.New(evals)
		p.Form = polynomial.EvaluationsOnH
		_ = p.ToCanonical(domain)
		pk.Permutation[c] = p
		coset := p.Clone()
		_ = coset.ToCoset(pk.DomainBig)
		pk.PermutationCoset[c] = coset.Coefficients
	}
}
