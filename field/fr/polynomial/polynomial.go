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

// Package polynomial implements spec.md §3's Polynomial type: a slice of
// Fr coefficients carrying a representation tag (coefficient form,
// evaluations on H, or evaluations on a coset of H) so that callers can
// catch a form mismatch before it corrupts a commitment or an opening.
package polynomial

import (
	"errors"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
)

// Form names the basis a Polynomial's coefficients are expressed in.
type Form int

const (
	Coefficients Form = iota
	EvaluationsOnH
	EvaluationsOnCoset
)

// ErrFormMismatch is returned when an operation requires a different Form
// than the one the Polynomial is currently tagged with (spec.md §7).
var ErrFormMismatch = errors.New("polynomial: operation requires a different representation")

// Polynomial is a dense list of Fr coefficients (or evaluations,
// depending on Form) together with the domain it was last transformed
// against, so repeated FFT/IFFT calls do not need the caller to keep
// threading a *fft.Domain around.
type Polynomial struct {
	Coefficients []fr.Element
	Form         Form
}

// New wraps coeffs (taken by reference, not copied) as a coefficient-form
// Polynomial.
func New(coeffs []fr.Element) *Polynomial {
	return &Polynomial{Coefficients: coeffs, Form: Coefficients}
}

// Degree returns the index of the highest nonzero coefficient, or -1 for
// the zero polynomial. Only meaningful in Coefficients form.
func (p *Polynomial) Degree() int {
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		if !p.Coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// Len is the number of stored coefficients/evaluations.
func (p *Polynomial) Len() int { return len(p.Coefficients) }

// Clone returns a deep copy.
func (p *Polynomial) Clone() *Polynomial {
	c := make([]fr.Element, len(p.Coefficients))
	copy(c, p.Coefficients)
	return &Polynomial{Coefficients: c, Form: p.Form}
}

// Eval evaluates the polynomial at x via Horner's method, parallelised
// for large degrees (spec.md §4.6 "evaluate"). Requires Coefficients form.
func (p *Polynomial) Eval(x *fr.Element) (fr.Element, error) {
	if p.Form != Coefficients {
		return fr.Element{}, ErrFormMismatch
	}
	return fft.Evaluate(p.Coefficients, x), nil
}

// ToLagrange transforms p from Coefficients form to EvaluationsOnH form in
// place via a forward FFT over d.
func (p *Polynomial) ToLagrange(d *fft.Domain) error {
	if p.Form != Coefficients {
		return ErrFormMismatch
	}
	p.resize(int(d.Cardinality))
	d.FFT(p.Coefficients)
	p.Form = EvaluationsOnH
	return nil
}

// ToCanonical transforms p from EvaluationsOnH form back to Coefficients
// form in place via an inverse FFT over d.
func (p *Polynomial) ToCanonical(d *fft.Domain) error {
	if p.Form != EvaluationsOnH {
		return ErrFormMismatch
	}
	d.FFTInverse(p.Coefficients)
	p.Form = Coefficients
	return nil
}

// ToCoset transforms p from Coefficients form to EvaluationsOnCoset form
// in place via a coset FFT over d.
func (p *Polynomial) ToCoset(d *fft.Domain) error {
	if p.Form != Coefficients {
		return ErrFormMismatch
	}
	p.resize(int(d.Cardinality))
	d.CosetFFT(p.Coefficients)
	p.Form = EvaluationsOnCoset
	return nil
}

// ToCanonicalFromCoset transforms p from EvaluationsOnCoset form back to
// Coefficients form in place via an inverse coset FFT over d.
func (p *Polynomial) ToCanonicalFromCoset(d *fft.Domain) error {
	if p.Form != EvaluationsOnCoset {
		return ErrFormMismatch
	}
	d.CosetFFTInverse(p.Coefficients)
	p.Form = Coefficients
	return nil
}

func (p *Polynomial) resize(n int) {
	if len(p.Coefficients) >= n {
		return
	}
	grown := make([]fr.Element, n)
	copy(grown, p.Coefficients)
	p.Coefficients = grown
}

// DividePseudoVanishing divides p (evaluations on targetDomain's coset)
// in place by the pseudo-vanishing polynomial of smallDomain. Requires
// EvaluationsOnCoset form.
func (p *Polynomial) DividePseudoVanishing(smallDomain, targetDomain *fft.Domain) error {
	if p.Form != EvaluationsOnCoset {
		return ErrFormMismatch
	}
	fft.DividePseudoVanishing(p.Coefficients, smallDomain, targetDomain)
	return nil
}

// OpeningQuotient returns (p(X) - p(z)) / (X - z), in Coefficients form,
// as a new Polynomial. Requires Coefficients form and that pz == p(z).
func (p *Polynomial) OpeningQuotient(z *fr.Element, pz *fr.Element) (*Polynomial, error) {
	if p.Form != Coefficients {
		return nil, ErrFormMismatch
	}
	shifted := make([]fr.Element, len(p.Coefficients))
	copy(shifted, p.Coefficients)
	shifted[0].Sub(&shifted[0], pz)
	q := fft.ComputeKateOpeningCoefficients(shifted, z)
	return &Polynomial{Coefficients: q, Form: Coefficients}, nil
}

// Add adds two same-length, same-Form polynomials coefficient/evaluation-
// wise and returns a new Polynomial.
func Add(a, b *Polynomial) (*Polynomial, error) {
	if a.Form != b.Form {
		return nil, ErrFormMismatch
	}
	n := len(a.Coefficients)
	if len(b.Coefficients) > n {
		n = len(b.Coefficients)
	}
	out := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var av, bv fr.Element
		if i < len(a.Coefficients) {
			av = a.Coefficients[i]
		}
		if i < len(b.Coefficients) {
			bv = b.Coefficients[i]
		}
		out[i].Add(&av, &bv)
	}
	return &Polynomial{Coefficients: out, Form: a.Form}, nil
}

// ScaleInPlace multiplies every coefficient/evaluation by c.
func (p *Polynomial) ScaleInPlace(c *fr.Element) {
	for i := range p.Coefficients {
		p.Coefficients[i].Mul(&p.Coefficients[i], c)
	}
}
