package srs

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func appendManifest(buf *bytes.Buffer, m [7]uint32) {
	for _, v := range m {
		binary.Write(buf, binary.BigEndian, v)
	}
}

func appendFqCoord(buf *bytes.Buffer, v *big.Int) {
	var limbs [4]uint64
	rem := new(big.Int).Set(v)
	mask := new(big.Int).SetUint64(^uint64(0))
	for i := 3; i >= 0; i-- {
		limb := new(big.Int).And(rem, mask)
		limbs[i] = limb.Uint64()
		rem.Rsh(rem, 64)
	}
	for _, l := range limbs {
		binary.Write(buf, binary.BigEndian, l)
	}
}

func buildSRSFile(numG1, numG2 int) []byte {
	var buf bytes.Buffer
	appendManifest(&buf, [7]uint32{0, 1, uint32(numG1), uint32(numG2), uint32(numG1), uint32(numG2), 0})
	for i := 0; i < numG1; i++ {
		appendFqCoord(&buf, big.NewInt(int64(2*i+1)))
		appendFqCoord(&buf, big.NewInt(int64(2*i+2)))
	}
	for i := 0; i < numG2; i++ {
		appendFqCoord(&buf, big.NewInt(int64(4*i+1)))
		appendFqCoord(&buf, big.NewInt(int64(4*i+2)))
		appendFqCoord(&buf, big.NewInt(int64(4*i+3)))
		appendFqCoord(&buf, big.NewInt(int64(4*i+4)))
	}
	return buf.Bytes()
}

func TestLoadParsesManifestAndPoints(t *testing.T) {
	data := buildSRSFile(3, 2)
	manifest, out, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if manifest.NumG1Points != 3 || manifest.NumG2Points != 2 {
		t.Fatalf("manifest = %+v, want NumG1Points=3 NumG2Points=2", manifest)
	}
	if len(out.G1) != 3 {
		t.Fatalf("len(out.G1) = %d, want 3", len(out.G1))
	}
	want := big.NewInt(1)
	if out.G1[0].X.BigInt(new(big.Int)).Cmp(want) != 0 {
		t.Fatalf("G1[0].X = %v, want 1", out.G1[0].X.BigInt(new(big.Int)))
	}
}

func TestLoadShortFileErrors(t *testing.T) {
	data := buildSRSFile(2, 0)
	truncated := data[:len(data)-10]
	if _, _, err := Load(bytes.NewReader(truncated)); err != ErrShortFile {
		t.Fatalf("Load(truncated) = %v, want ErrShortFile", err)
	}
}

func TestVerifyAcceptsMatchingChecksum(t *testing.T) {
	body := buildSRSFile(1, 1)
	h, err := blake2b.New512(nil)
	if err != nil {
		t.Fatalf("blake2b.New512: %v", err)
	}
	h.Write(body)
	full := append(append([]byte{}, body...), h.Sum(nil)...)

	if err := Verify(full); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	body := buildSRSFile(1, 1)
	h, err := blake2b.New512(nil)
	if err != nil {
		t.Fatalf("blake2b.New512: %v", err)
	}
	h.Write(body)
	full := append(append([]byte{}, body...), h.Sum(nil)...)
	full[0] ^= 0xFF

	if err := Verify(full); err != ErrChecksumFailed {
		t.Fatalf("Verify(tampered) = %v, want ErrChecksumFailed", err)
	}
}

func TestVerifyRejectsShortFile(t *testing.T) {
	if err := Verify([]byte{1, 2, 3}); err != ErrShortFile {
		t.Fatalf("Verify(short) = %v, want ErrShortFile", err)
	}
}
