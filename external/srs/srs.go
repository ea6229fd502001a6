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

// Package srs reads a structured reference string file produced by an
// external trusted-setup ceremony (spec.md §6's "SRS loader" collaborator
// and wire format). Generating or managing the ceremony itself is out of
// scope (spec.md §1 Non-goals); this package only parses the file.
package srs

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/blake2b"

	bn254 "github.com/BaoNinh2808/plonk-bn254/curve"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/kzg"
	"github.com/BaoNinh2808/plonk-bn254/internal/logging"
)

var (
	ErrShortFile      = errors.New("srs: file shorter than its declared point counts")
	ErrChecksumFailed = errors.New("srs: blake2b checksum trailer does not match file contents")
)

// checksumSize is the width of the trailing Blake2b digest (spec.md §6).
const checksumSize = 64

// Manifest is the SRS file's fixed seven-uint32 big-endian header.
type Manifest struct {
	TranscriptNumber int
	TotalTranscripts int
	TotalG1Points    int
	TotalG2Points    int
	NumG1Points      int
	NumG2Points      int
	StartFrom        int
}

func readManifest(r io.Reader) (Manifest, error) {
	var raw [7]uint32
	for i := range raw {
		if err := binary.Read(r, binary.BigEndian, &raw[i]); err != nil {
			return Manifest{}, err
		}
	}
	return Manifest{
		TranscriptNumber: int(raw[0]),
		TotalTranscripts: int(raw[1]),
		TotalG1Points:    int(raw[2]),
		TotalG2Points:    int(raw[3]),
		NumG1Points:      int(raw[4]),
		NumG2Points:      int(raw[5]),
		StartFrom:        int(raw[6]),
	}, nil
}

func readFqCoord(r io.Reader) (*big.Int, error) {
	var limbs [4]uint64
	for i := range limbs {
		if err := binary.Read(r, binary.BigEndian, &limbs[i]); err != nil {
			return nil, err
		}
	}
	v := new(big.Int)
	for _, l := range limbs {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(l))
	}
	return v, nil
}

// Load parses an SRS file: the manifest header, NumG1Points G1 points,
// NumG2Points G2 points, each coordinate as 4 big-endian uint64 limbs in
// non-Montgomery form (spec.md §6). The trailing Blake2b checksum is
// skipped here — Verify, not Load, is the collaborator responsible for it,
// matching the teacher's split between its trusted-setup readers and its
// checksum helpers.
func Load(r io.Reader) (Manifest, *kzg.SRS, error) {
	br := bufio.NewReader(r)
	manifest, err := readManifest(br)
	if err != nil {
		return Manifest{}, nil, err
	}

	logging.Logger().Debug().
		Int("numG1", manifest.NumG1Points).
		Int("numG2", manifest.NumG2Points).
		Msg("srs: loading")

	g1 := make([]bn254.G1Affine, manifest.NumG1Points)
	for i := range g1 {
		x, err := readFqCoord(br)
		if err != nil {
			return Manifest{}, nil, ErrShortFile
		}
		y, err := readFqCoord(br)
		if err != nil {
			return Manifest{}, nil, ErrShortFile
		}
		g1[i].X.SetBigInt(x)
		g1[i].Y.SetBigInt(y)
	}

	g2 := make([]bn254.G2Affine, manifest.NumG2Points)
	for i := range g2 {
		xc0, err := readFqCoord(br)
		if err != nil {
			return Manifest{}, nil, ErrShortFile
		}
		xc1, err := readFqCoord(br)
		if err != nil {
			return Manifest{}, nil, ErrShortFile
		}
		yc0, err := readFqCoord(br)
		if err != nil {
			return Manifest{}, nil, ErrShortFile
		}
		yc1, err := readFqCoord(br)
		if err != nil {
			return Manifest{}, nil, ErrShortFile
		}
		g2[i].X.A0.SetBigInt(xc0)
		g2[i].X.A1.SetBigInt(xc1)
		g2[i].Y.A0.SetBigInt(yc0)
		g2[i].Y.A1.SetBigInt(yc1)
	}

	out := &kzg.SRS{G1: g1}
	if len(g2) > 0 {
		out.G2[0] = g2[0]
	}
	if len(g2) > 1 {
		out.G2[1] = g2[1]
	}

	return manifest, out, nil
}

// Verify checks raw's trailing 64-byte Blake2b digest against a hash of
// everything preceding it (spec.md §6: "64-byte Blake2b checksum trailer
// (validated by an external tool; core loader skips)"). raw is the whole
// file held in memory.
func Verify(raw []byte) error {
	if len(raw) < checksumSize {
		return ErrShortFile
	}
	body := raw[:len(raw)-checksumSize]
	trailer := raw[len(raw)-checksumSize:]

	h, err := blake2b.New512(nil)
	if err != nil {
		return err
	}
	if _, err := h.Write(body); err != nil {
		return err
	}
	sum := h.Sum(nil)

	for i := range sum {
		if sum[i] != trailer[i] {
			return ErrChecksumFailed
		}
	}
	return nil
}
