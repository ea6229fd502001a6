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

// Package msm implements spec.md §4.4/§5's multi-scalar multiplication: a
// GLV-split windowed Pippenger bucket method with signed-digit recoding
// and sharded bucket accumulation.
package msm

import (
	"math/big"
	"math/bits"

	"golang.org/x/exp/slices"

	bn254 "github.com/BaoNinh2808/plonk-bn254/curve"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/internal/parallel"
)

// smallInputThreshold is the point count below which Pippenger's fixed
// overhead (bucket allocation, signed-digit recoding) isn't worth it;
// below it MSM falls back to plain double-and-add accumulation (spec.md
// §4.4).
const smallInputThreshold = 32

// MsmContext owns the scratch buffers a repeated sequence of MSM calls of
// the same size can reuse, instead of the source's process-wide
// singleton scratch pool (spec.md §5's "owned non-shared buffer set").
type MsmContext struct {
	c int // bits per window, chosen from n

	// splitPoints is reused across calls of the same size: pippenger
	// always needs 2*n entries (P_i and its GLV endomorphism image), so a
	// context built for a given n avoids re-allocating that buffer on
	// every call a caller makes with matching input sizes.
	splitPoints []bn254.G1Affine
}

// NewContext picks a window size c for n points, following the standard
// Pippenger heuristic c ≈ log2(n) (the table in gnark-crypto's msm.go,
// which this repo's teacher vendors as a dependency of gnark).
func NewContext(n int) *MsmContext {
	c := bits.Len(uint(n))
	if c < 2 {
		c = 2
	}
	if c > 22 {
		c = 22
	}
	return &MsmContext{c: c, splitPoints: make([]bn254.G1Affine, 2*n)}
}

// Backend abstracts the point-accumulation engine behind MSM so an
// alternative implementation can be substituted for the CPU Pippenger
// path without changing call sites (spec.md §5's Backend interface seam).
type Backend interface {
	MSM(points []bn254.G1Affine, scalars []fr.Element) (bn254.G1Jac, error)
}

// CPUBackend is the default Backend, implementing windowed Pippenger with
// GLV splitting and fork/join bucket accumulation.
type CPUBackend struct{}

func (CPUBackend) MSM(points []bn254.G1Affine, scalars []fr.Element) (bn254.G1Jac, error) {
	return MSM(points, scalars)
}

// MSM computes Sum_i scalars[i]*points[i] (spec.md §4.4). Panics if the
// slice lengths differ, mirroring the teacher's precondition-is-a-bug
// stance for this hot-path primitive.
func MSM(points []bn254.G1Affine, scalars []fr.Element) (bn254.G1Jac, error) {
	if len(points) != len(scalars) {
		panic("msm: points/scalars length mismatch")
	}
	n := len(points)
	var result bn254.G1Jac
	if n == 0 {
		result.X.SetZero()
		result.Y.SetOne()
		result.Z.SetZero()
		return result, nil
	}
	if n < smallInputThreshold {
		return msmNaive(points, scalars), nil
	}

	ctx := NewContext(n)
	return ctx.pippenger(points, scalars), nil
}

func msmNaive(points []bn254.G1Affine, scalars []fr.Element) bn254.G1Jac {
	var acc bn254.G1Jac
	acc.X.SetZero()
	acc.Y.SetOne()
	acc.Z.SetZero()
	for i := range points {
		var term bn254.G1Jac
		term.ScalarMultiplicationFr(&points[i], &scalars[i])
		acc.AddAssign(&term)
	}
	return acc
}

// pippenger runs spec.md §4.5's "Preparation" step before bucketing: every
// point P_i is expanded into {P_i, φ(P_i)} (φ the curve's GLV
// endomorphism, curve/glv.go) and every scalar k_i into the matching
// (k1_i, k2_i) with k_i ≡ k1_i - k2_i·Lambda (field/fr/glv.go's
// SplitScalarSigned), so the bucket method below runs over 2n half-width
// digits instead of n full-width ones.
func (ctx *MsmContext) pippenger(points []bn254.G1Affine, scalars []fr.Element) bn254.G1Jac {
	n := len(points)
	splitPoints := ctx.splitPoints
	if len(splitPoints) != 2*n {
		splitPoints = make([]bn254.G1Affine, 2*n)
	}
	mags := make([]*big.Int, 2*n)
	negs := make([]bool, 2*n)
	maxBits := 1

	parallel.Run(n, func(start, end int) {
		for i := start; i < end; i++ {
			k1, k2 := fr.SplitScalarSigned(&scalars[i])

			splitPoints[2*i] = points[i]
			var phi bn254.G1Affine
			phi.Endomorphism(&points[i])
			splitPoints[2*i+1] = phi

			negs[2*i] = k1.Sign() < 0
			mags[2*i] = new(big.Int).Abs(k1)
			negs[2*i+1] = k2.Sign() > 0 // k2 enters with a minus sign
			mags[2*i+1] = new(big.Int).Abs(k2)
		}
	})
	for _, m := range mags {
		if b := m.BitLen(); b > maxBits {
			maxBits = b
		}
	}
	// Two extra bits of headroom above the tightest magnitude so a carry
	// propagating out of recodeSigned's top window always lands inside an
	// existing window rather than being silently dropped.
	maxBits += 2

	return bucketMethod(splitPoints, mags, negs, ctx.c, maxBits)
}

// bucketEntry is one nonzero signed digit contributed by a split point to
// a single window's bucket accumulation.
type bucketEntry struct {
	bucket int
	point  *bn254.G1Affine
	neg    bool
}

// bucketMethod is the classical windowed Pippenger bucket accumulation
// over maxBits-bit magnitudes, c bits per window, sharded by window
// (spec.md §4.4/§5: disjoint windows, full barrier between the bucket
// phase and the window-combination phase).
func bucketMethod(points []bn254.G1Affine, mags []*big.Int, negs []bool, c, maxBits int) bn254.G1Jac {
	numWindows := (maxBits + c - 1) / c
	numBuckets := 1 << uint(c-1)

	// Signed-digit (balanced window) recoding: each magnitude is rewritten,
	// window by window with carry propagation, into a digit in
	// [-2^(c-1), 2^(c-1)) per window, halving the bucket count a naive
	// unsigned windowing would need. The digit's sign is then combined
	// with the scalar's own overall sign (negs[i]) so bucketMethod's
	// caller never has to special-case a negative split scalar itself.
	digits := make([][]int, len(mags))
	parallel.Run(len(mags), func(start, end int) {
		for i := start; i < end; i++ {
			d := recodeSigned(mags[i], c, numWindows)
			if negs[i] {
				for w := range d {
					d[w] = -d[w]
				}
			}
			digits[i] = d
		}
	})

	windowSums := make([]bn254.G1Jac, numWindows)

	parallel.Run(numWindows, func(wStart, wEnd int) {
		for w := wStart; w < wEnd; w++ {
			buckets := make([]bn254.G1Jac, numBuckets)
			for b := range buckets {
				buckets[b].X.SetZero()
				buckets[b].Y.SetOne()
				buckets[b].Z.SetZero()
			}

			// Gather this window's nonzero contributions and sort them by
			// destination bucket before accumulating: scattered random-access
			// writes into buckets[] is the dominant cache miss in naive
			// Pippenger, and grouping same-bucket entries together (the
			// "bucket-sort schedule" spec.md §4.5 calls for) turns that into
			// a sequential scan.
			entries := make([]bucketEntry, 0, len(points))
			for i := range points {
				d := digits[i][w]
				if d == 0 {
					continue
				}
				neg := d < 0
				mag := d
				if neg {
					mag = -mag
				}
				entries = append(entries, bucketEntry{bucket: mag - 1, point: &points[i], neg: neg})
			}
			slices.SortFunc(entries, func(a, b bucketEntry) int { return a.bucket - b.bucket })

			for _, e := range entries {
				if e.neg {
					var np bn254.G1Affine
					np.Neg(e.point)
					buckets[e.bucket].AddMixed(&np)
				} else {
					buckets[e.bucket].AddMixed(e.point)
				}
			}

			// Running-sum reduction: sum_b (b+1)*buckets[b] via one pass.
			var runningSum, total bn254.G1Jac
			runningSum.X.SetZero()
			runningSum.Y.SetOne()
			runningSum.Z.SetZero()
			total.Set(&runningSum)
			for b := numBuckets - 1; b >= 0; b-- {
				runningSum.AddAssign(&buckets[b])
				total.AddAssign(&runningSum)
			}
			windowSums[w] = total
		}
	})

	var acc bn254.G1Jac
	acc.X.SetZero()
	acc.Y.SetOne()
	acc.Z.SetZero()
	for w := numWindows - 1; w >= 0; w-- {
		for i := 0; i < c; i++ {
			acc.Double(&acc)
		}
		acc.AddAssign(&windowSums[w])
	}
	return acc
}

// recodeSigned rewrites a nonnegative magnitude into numWindows signed
// digits in [-2^(c-1), 2^(c-1)), propagating a carry out of each window
// whenever the raw c-bit chunk plus the incoming carry reaches 2^(c-1)
// (the standard balanced-
// window recoding used by Pippenger implementations to halve the bucket
// count relative to unsigned windowing).
func recodeSigned(mag *big.Int, c, numWindows int) []int {
	digits := make([]int, numWindows)

	half := 1 << uint(c-1)
	full := 1 << uint(c)
	carry := 0
	for w := 0; w < numWindows; w++ {
		bitOffset := w * c
		raw := 0
		for i := 0; i < c; i++ {
			bitIdx := bitOffset + i
			if mag.Bit(bitIdx) != 0 {
				raw |= 1 << uint(i)
			}
		}
		chunk := raw + carry
		if chunk >= half {
			chunk -= full
			carry = 1
		} else {
			carry = 0
		}
		digits[w] = chunk
	}
	return digits
}
