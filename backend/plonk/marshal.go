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
	"encoding/binary"
	"errors"

	bn254 "github.com/BaoNinh2808/plonk-bn254/curve"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/kzg"
)

// ErrShortProof is returned by Unmarshal when the byte slice ends before
// every field the manifest declares has been read.
var ErrShortProof = errors.New("plonk: proof bytes shorter than the declared manifest")

// infinityFlag is set on the top bit of a serialised point's first Y byte
// to flag the point at infinity, rather than relying on an all-zero X/Y
// encoding colliding with a legitimate coordinate (spec.md §6).
const infinityFlag = 0x80

// Marshal encodes a proof exactly as spec.md §6 describes: circuit_size (4
// bytes), public_inputs (32 bytes each), the wire/Z/quotient-chunk
// commitments (64 bytes each), the field-element openings in manifest
// order, Nu and any nonlinear selector evaluations (32 bytes each), then
// the two opening proofs' H commitments (64 bytes each). Field elements are big-endian, non-Montgomery; group
// elements are (x, y) with infinity flagged on y's first on-wire byte.
func Marshal(proof *Proof, variant Variant, circuitSize uint32, publicInputs []fr.Element) []byte {
	numCols := variant.NumWireColumns()

	var out []byte
	out = appendU32(out, circuitSize)
	for i := range publicInputs {
		out = appendFr(out, &publicInputs[i])
	}
	for c := 0; c < numCols; c++ {
		out = appendPoint(out, &proof.WireCommitments[c])
	}
	out = appendPoint(out, &proof.ZCommitment)
	for i := range proof.QuotientChunks {
		out = appendPoint(out, &proof.QuotientChunks[i])
	}

	for _, v := range proof.ZetaOpening.ClaimedValues {
		out = appendFr(out, &v)
	}
	for _, v := range proof.ShiftOpening.ClaimedValues {
		out = appendFr(out, &v)
	}
	out = appendFr(out, &proof.Nu)

	// Nonlinear selector evaluations (MiMC's Qc, currently the only widget
	// that declares one) aren't part of either batched opening above, so
	// they need their own slots, in the variant's fixed manifest order.
	for _, name := range nonlinearNames(variant) {
		v := proof.NonlinearEval[name]
		out = appendFr(out, &v)
	}

	out = appendPoint(out, &proof.ZetaOpening.H)
	out = appendPoint(out, &proof.ShiftOpening.H)

	return out
}

// nonlinearNames returns the selector names a variant's widgets require
// opened directly at zeta (spec.md §4.8's "nonlinear" selectors, e.g.
// MiMC's round-function Qc), in the fixed dispatch order newManifest
// assigns them.
func nonlinearNames(variant Variant) []string {
	return newManifest(variant).Nonlinear
}

// Unmarshal decodes bytes produced by Marshal. numZetaOpenings and
// numShiftOpenings must match the counts the caller's VerifyingKey implies
// (1 + numCols + (numCols-1) + len(quotientChunks) for the zeta opening; 1
// or 2 for the shift opening), since the wire format carries no explicit
// length prefix for either (spec.md §6's "field-element openings ... in
// manifest order").
func Unmarshal(data []byte, variant Variant, nbPublicInputs, numQuotientChunks, numZetaOpenings, numShiftOpenings int) (uint32, []fr.Element, *Proof, error) {
	numCols := variant.NumWireColumns()
	r := &byteReader{buf: data}

	circuitSize, err := r.readU32()
	if err != nil {
		return 0, nil, nil, err
	}

	publicInputs := make([]fr.Element, nbPublicInputs)
	for i := range publicInputs {
		v, err := r.readFr()
		if err != nil {
			return 0, nil, nil, err
		}
		publicInputs[i] = v
	}

	proof := &Proof{}
	for c := 0; c < numCols; c++ {
		p, err := r.readPoint()
		if err != nil {
			return 0, nil, nil, err
		}
		proof.WireCommitments[c] = p
	}
	zCommit, err := r.readPoint()
	if err != nil {
		return 0, nil, nil, err
	}
	proof.ZCommitment = zCommit

	proof.QuotientChunks = make([]kzg.Digest, numQuotientChunks)
	for i := range proof.QuotientChunks {
		p, err := r.readPoint()
		if err != nil {
			return 0, nil, nil, err
		}
		proof.QuotientChunks[i] = p
	}

	proof.ZetaOpening.ClaimedValues = make([]fr.Element, numZetaOpenings)
	for i := range proof.ZetaOpening.ClaimedValues {
		v, err := r.readFr()
		if err != nil {
			return 0, nil, nil, err
		}
		proof.ZetaOpening.ClaimedValues[i] = v
	}
	proof.ShiftOpening.ClaimedValues = make([]fr.Element, numShiftOpenings)
	for i := range proof.ShiftOpening.ClaimedValues {
		v, err := r.readFr()
		if err != nil {
			return 0, nil, nil, err
		}
		proof.ShiftOpening.ClaimedValues[i] = v
	}

	// Verify reads proof.WireEvals/SigmaEvals/ZShiftEval/W4ShiftEval
	// directly rather than re-slicing the two batched openings itself, so
	// Unmarshal has to restore them here. They aren't independent wire
	// fields: Prove commits r(X), the wire polynomials, and the
	// permutation polynomials into the same zeta-opening batch in exactly
	// this order (see openPolys in prove.go), and z(X)/w_4(X) into the
	// zeta*omega-opening batch, so every value needed is already present
	// in the two ClaimedValues slices just decoded.
	zv := proof.ZetaOpening.ClaimedValues
	if len(zv) < 1+numCols+(numCols-1) {
		return 0, nil, nil, ErrShortProof
	}
	copy(proof.WireEvals[:numCols], zv[1:1+numCols])
	proof.SigmaEvals = append([]fr.Element(nil), zv[1+numCols:1+numCols+(numCols-1)]...)

	sv := proof.ShiftOpening.ClaimedValues
	if len(sv) < 1 {
		return 0, nil, nil, ErrShortProof
	}
	proof.ZShiftEval = sv[0]
	if numCols == numWireColumnsMax && len(sv) > 1 {
		proof.W4ShiftEval = sv[1]
	}

	nu, err := r.readFr()
	if err != nil {
		return 0, nil, nil, err
	}
	proof.Nu = nu

	proof.NonlinearEval = map[string]fr.Element{}
	for _, name := range nonlinearNames(variant) {
		v, err := r.readFr()
		if err != nil {
			return 0, nil, nil, err
		}
		proof.NonlinearEval[name] = v
	}

	zetaH, err := r.readPoint()
	if err != nil {
		return 0, nil, nil, err
	}
	proof.ZetaOpening.H = zetaH

	shiftH, err := r.readPoint()
	if err != nil {
		return 0, nil, nil, err
	}
	proof.ShiftOpening.H = shiftH

	// The per-opening Point field is not carried on the wire (spec.md §6
	// lists only the claimed values and H for π_z/π_{zω}): the verifier
	// re-derives zeta/zeta·omega itself from the transcript, exactly as
	// Verify does before ever looking at proof.ZetaOpening/ShiftOpening.

	return circuitSize, publicInputs, proof, nil
}

func appendU32(out []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(out, b[:]...)
}

func appendFr(out []byte, e *fr.Element) []byte {
	b := e.Bytes()
	return append(out, b[:]...)
}

func appendPoint(out []byte, p *bn254.G1Affine) []byte {
	var xb, yb [32]byte
	if p.IsInfinity() {
		yb[0] = infinityFlag
	} else {
		xb = p.X.Bytes()
		yb = p.Y.Bytes()
	}
	out = append(out, xb[:]...)
	out = append(out, yb[:]...)
	return out
}

type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) readU32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, ErrShortProof
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *byteReader) readFr() (fr.Element, error) {
	if r.pos+32 > len(r.buf) {
		return fr.Element{}, ErrShortProof
	}
	var e fr.Element
	e.SetBytes(r.buf[r.pos : r.pos+32])
	r.pos += 32
	return e, nil
}

func (r *byteReader) readPoint() (bn254.G1Affine, error) {
	if r.pos+64 > len(r.buf) {
		return bn254.G1Affine{}, ErrShortProof
	}
	xb := r.buf[r.pos : r.pos+32]
	yb := make([]byte, 32)
	copy(yb, r.buf[r.pos+32:r.pos+64])
	r.pos += 64

	var p bn254.G1Affine
	if yb[0]&infinityFlag != 0 {
		p.SetInfinity()
		return p, nil
	}
	p.X.SetBytes(xb)
	p.Y.SetBytes(yb)
	return p, nil
}
