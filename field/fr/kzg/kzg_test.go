package kzg

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/polynomial"
)

func randPoly(n int, seed uint64) *polynomial.Polynomial {
	coeffs := make([]fr.Element, n)
	for i := range coeffs {
		coeffs[i].SetUint64(seed + uint64(i)*7 + 1)
	}
	return polynomial.New(coeffs)
}

func TestCommitOpenVerify(t *testing.T) {
	srs, err := NewSRS(16, big.NewInt(424242))
	if err != nil {
		t.Fatalf("NewSRS: %v", err)
	}
	domain, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	p := randPoly(8, 1)
	d, err := Commit(p, srs)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var point fr.Element
	point.SetUint64(99)
	proof, err := Open(p, &point, domain, srs)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := Verify(&d, &proof, srs); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongValue(t *testing.T) {
	srs, err := NewSRS(16, big.NewInt(424242))
	if err != nil {
		t.Fatalf("NewSRS: %v", err)
	}
	domain, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	p := randPoly(8, 1)
	d, err := Commit(p, srs)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var point fr.Element
	point.SetUint64(99)
	proof, err := Open(p, &point, domain, srs)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var one fr.Element
	one.SetOne()
	proof.ClaimedValue.Add(&proof.ClaimedValue, &one)

	if err := Verify(&d, &proof, srs); err == nil {
		t.Fatal("Verify accepted a tampered claimed value")
	}
}

func TestBatchOpenVerifySinglePoint(t *testing.T) {
	srs, err := NewSRS(16, big.NewInt(987654))
	if err != nil {
		t.Fatalf("NewSRS: %v", err)
	}
	domain, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	polys := []*polynomial.Polynomial{randPoly(8, 1), randPoly(8, 2), randPoly(8, 3)}
	digests := make([]Digest, len(polys))
	for i, p := range polys {
		d, err := Commit(p, srs)
		if err != nil {
			t.Fatalf("Commit[%d]: %v", i, err)
		}
		digests[i] = d
	}

	var point fr.Element
	point.SetUint64(17)
	proof, err := BatchOpenSinglePoint(polys, digests, &point, sha256.New(), domain, srs)
	if err != nil {
		t.Fatalf("BatchOpenSinglePoint: %v", err)
	}

	if err := BatchVerify(digests, &proof, sha256.New(), srs); err != nil {
		t.Fatalf("BatchVerify: %v", err)
	}
}

func TestBatchVerifyRejectsTamperedClaim(t *testing.T) {
	srs, err := NewSRS(16, big.NewInt(987654))
	if err != nil {
		t.Fatalf("NewSRS: %v", err)
	}
	domain, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	polys := []*polynomial.Polynomial{randPoly(8, 1), randPoly(8, 2)}
	digests := make([]Digest, len(polys))
	for i, p := range polys {
		d, err := Commit(p, srs)
		if err != nil {
			t.Fatalf("Commit[%d]: %v", i, err)
		}
		digests[i] = d
	}

	var point fr.Element
	point.SetUint64(17)
	proof, err := BatchOpenSinglePoint(polys, digests, &point, sha256.New(), domain, srs)
	if err != nil {
		t.Fatalf("BatchOpenSinglePoint: %v", err)
	}

	var one fr.Element
	one.SetOne()
	proof.ClaimedValues[0].Add(&proof.ClaimedValues[0], &one)

	if err := BatchVerify(digests, &proof, sha256.New(), srs); err == nil {
		t.Fatal("BatchVerify accepted a tampered claimed value")
	}
}

func TestBatchVerifySingleDigest(t *testing.T) {
	srs, err := NewSRS(16, big.NewInt(13))
	if err != nil {
		t.Fatalf("NewSRS: %v", err)
	}
	domain, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	p := randPoly(8, 5)
	d, err := Commit(p, srs)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var point fr.Element
	point.SetUint64(3)
	proof, err := BatchOpenSinglePoint([]*polynomial.Polynomial{p}, []Digest{d}, &point, sha256.New(), domain, srs)
	if err != nil {
		t.Fatalf("BatchOpenSinglePoint: %v", err)
	}

	if err := BatchVerify([]Digest{d}, &proof, sha256.New(), srs); err != nil {
		t.Fatalf("BatchVerify (single digest): %v", err)
	}
}
