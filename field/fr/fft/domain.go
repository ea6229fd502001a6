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

// Package fft implements the radix-2 NTT/FFT layer of spec.md §4.6 over
// Fr: EvaluationDomain, forward/inverse FFT, coset FFT, vanishing-
// polynomial division and Kate-opening coefficient extraction.
package fft

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/internal/parallel"
)

// ErrNotPowerOfTwo is returned when a domain is requested for a size that
// is not a power of two (spec.md §3 "FFT-domain size must be a power of
// two", §7 "Input precondition violation").
var ErrNotPowerOfTwo = errors.New("fft: domain size must be a power of two")

// rootOfUnity and twoAdicity are the 2-adic primitive root of unity of Fr
// and its order (a power of two), computed once at package init rather
// than hardcoded (see field/fr/glv.go for the same rationale applied to
// the GLV lambda constant).
var (
	rootOfUnity *big.Int
	twoAdicity  uint
)

func init() {
	rMinus1 := new(big.Int).Sub(fr.Modulus, big.NewInt(1))
	t := new(big.Int).Set(rMinus1)
	adicity := uint(0)
	for t.Bit(0) == 0 {
		t.Rsh(t, 1)
		adicity++
	}
	for a := int64(2); ; a++ {
		cand := new(big.Int).Exp(big.NewInt(a), t, fr.Modulus)
		half := new(big.Int).Exp(cand, new(big.Int).Lsh(big.NewInt(1), adicity-1), fr.Modulus)
		if half.Cmp(big.NewInt(1)) != 0 {
			rootOfUnity = cand
			twoAdicity = adicity
			return
		}
	}
}

// multiplicativeGenerator is a generator of Fr*'s coset used to shift the
// evaluation domain for coset FFTs (spec.md §4.6 "coset_fft"/"coset_ifft").
var multiplicativeGenerator = fr.NewElement(5)

// Domain carries everything spec.md §3's EvaluationDomain(n) requires:
// n, log2(n), the primitive n-th root of unity and its inverse, n and its
// inverse in Fr, a coset generator, and a round-roots table built once and
// reused across every FFT of that size.
type Domain struct {
	Cardinality    uint64
	Log2Cardinality uint64

	Generator    fr.Element // n-th root of unity
	GeneratorInv fr.Element

	CardinalityInv fr.Element

	FrMultiplicativeGen    fr.Element // coset generator g
	FrMultiplicativeGenInv fr.Element

	// roots[i] = Generator^i for i in [0, n/2); rootsInv[i] = GeneratorInv^i.
	roots    []fr.Element
	rootsInv []fr.Element
}

// NewDomain builds the EvaluationDomain of size n (rounded up to the next
// power of two is NOT performed here; callers that need n constraints to
// round up do so before calling NewDomain, matching the teacher's
// `initFFTDomain` helper). It returns ErrNotPowerOfTwo if n is not already
// a power of two, per spec.md §3's invariant.
func NewDomain(n uint64) (*Domain, error) {
	if n == 0 || n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	logN := uint64(bits.TrailingZeros64(n))
	if uint(logN) > twoAdicity {
		return nil, errors.New("fft: domain size exceeds Fr's 2-adicity")
	}

	d := &Domain{Cardinality: n, Log2Cardinality: logN}

	// Generator = rootOfUnity^(2^(twoAdicity-logN))
	shift := new(big.Int).Lsh(big.NewInt(1), twoAdicity-uint(logN))
	gen := new(big.Int).Exp(rootOfUnity, shift, fr.Modulus)
	d.Generator.SetBigInt(gen)
	d.GeneratorInv.Inverse(&d.Generator)

	var nElem fr.Element
	nElem.SetUint64(n)
	d.CardinalityInv.Inverse(&nElem)

	d.FrMultiplicativeGen = multiplicativeGenerator
	d.FrMultiplicativeGenInv.Inverse(&multiplicativeGenerator)

	half := n / 2
	if half == 0 {
		half = 1
	}
	d.roots = make([]fr.Element, half)
	d.rootsInv = make([]fr.Element, half)
	d.roots[0].SetOne()
	d.rootsInv[0].SetOne()
	for i := uint64(1); i < half; i++ {
		d.roots[i].Mul(&d.roots[i-1], &d.Generator)
		d.rootsInv[i].Mul(&d.rootsInv[i-1], &d.GeneratorInv)
	}

	return d, nil
}

// bitReverse permutes p into bit-reversal order in place.
func bitReverse(p []fr.Element) {
	n := uint64(len(p))
	if n == 0 {
		return
	}
	logN := uint64(bits.TrailingZeros64(n))
	for i := uint64(0); i < n; i++ {
		j := bits.Reverse64(i) >> (64 - logN)
		if i < j {
			p[i], p[j] = p[j], p[i]
		}
	}
}

// fftCore runs the iterative Cooley-Tukey butterfly network over p using
// the supplied per-size root table ("roots" for forward, "rootsInv" for
// inverse). p must have length d.Cardinality. Each pass is sharded by
// butterfly block across worker threads when it has at least
// parallel.MinParallelSize blocks (spec.md §5(e)).
func (d *Domain) fftCore(p []fr.Element, roots []fr.Element) {
	n := uint64(len(p))
	bitReverse(p)
	for size := uint64(2); size <= n; size <<= 1 {
		half := size / 2
		step := n / size
		parallel.Run(int(n/size), func(blockStart, blockEnd int) {
			for block := blockStart; block < blockEnd; block++ {
				base := uint64(block) * size
				for j := uint64(0); j < half; j++ {
					w := roots[j*step]
					var u, v fr.Element
					u = p[base+j]
					v.Mul(&p[base+j+half], &w)
					p[base+j].Add(&u, &v)
					p[base+j+half].Sub(&u, &v)
				}
			}
		})
	}
}

// FFT evaluates p (coefficient form) at the domain's n-th roots of unity,
// in place, in natural (not bit-reversed) output order.
func (d *Domain) FFT(p []fr.Element) {
	d.fftCore(p, d.roots)
}

// FFTInverse interpolates p (evaluation form on the domain) back to
// coefficient form, in place.
func (d *Domain) FFTInverse(p []fr.Element) {
	d.fftCore(p, d.rootsInv)
	parallel.Run(len(p), func(start, end int) {
		for i := start; i < end; i++ {
			p[i].Mul(&p[i], &d.CardinalityInv)
		}
	})
}

// scaleByCosetPowers multiplies p[i] by g^i (or g^-i for the inverse
// direction), the shift step of coset_fft/coset_ifft (spec.md §4.6).
func (d *Domain) scaleByCosetPowers(p []fr.Element, inverse bool) {
	gen := d.FrMultiplicativeGen
	if inverse {
		gen = d.FrMultiplicativeGenInv
	}
	cur := fr.NewElement(1)
	for i := range p {
		p[i].Mul(&p[i], &cur)
		cur.Mul(&cur, &gen)
	}
}

// CosetFFT evaluates p on the coset g*<generator> of the domain.
func (d *Domain) CosetFFT(p []fr.Element) {
	d.scaleByCosetPowers(p, false)
	d.FFT(p)
}

// CosetFFTInverse interpolates p (evaluations on the coset) back to
// coefficient form.
func (d *Domain) CosetFFTInverse(p []fr.Element) {
	d.FFTInverse(p)
	d.scaleByCosetPowers(p, true)
}
