package fft

import (
	"math/big"
	"testing"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
)

func samplePoly(n int) []fr.Element {
	p := make([]fr.Element, n)
	for i := range p {
		p[i].SetUint64(uint64(i*3 + 1))
	}
	return p
}

func TestNewDomainRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewDomain(6); err != ErrNotPowerOfTwo {
		t.Fatalf("NewDomain(6) = %v, want ErrNotPowerOfTwo", err)
	}
}

func TestFFTInverseRoundTrip(t *testing.T) {
	d, err := NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	want := samplePoly(8)
	got := make([]fr.Element, 8)
	copy(got, want)

	d.FFT(got)
	d.FFTInverse(got)

	for i := range want {
		if !got[i].Equal(&want[i]) {
			t.Fatalf("FFTInverse(FFT(p))[%d] != p[%d]", i, i)
		}
	}
}

func TestFFTMatchesDirectEvaluation(t *testing.T) {
	d, err := NewDomain(4)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	p := samplePoly(4)
	got := make([]fr.Element, 4)
	copy(got, p)
	d.FFT(got)

	var omega fr.Element
	omega.SetOne()
	for i := 0; i < 4; i++ {
		want := Evaluate(p, &omega)
		if !got[i].Equal(&want) {
			t.Fatalf("FFT(p)[%d] != p(omega^%d)", i, i)
		}
		omega.Mul(&omega, &d.Generator)
	}
}

func TestCosetFFTInverseRoundTrip(t *testing.T) {
	d, err := NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	want := samplePoly(8)
	got := make([]fr.Element, 8)
	copy(got, want)

	d.CosetFFT(got)
	d.CosetFFTInverse(got)

	for i := range want {
		if !got[i].Equal(&want[i]) {
			t.Fatalf("CosetFFTInverse(CosetFFT(p))[%d] != p[%d]", i, i)
		}
	}
}

func TestComputeKateOpeningCoefficients(t *testing.T) {
	// f(X) = X^2 + 2X + 3, z = 5 => f(z) = 38.
	f := []fr.Element{fr.NewElement(3), fr.NewElement(2), fr.NewElement(1)}
	z := fr.NewElement(5)
	fz := Evaluate(f, &z)

	shifted := make([]fr.Element, len(f))
	copy(shifted, f)
	shifted[0].Sub(&shifted[0], &fz)

	q := ComputeKateOpeningCoefficients(shifted, &z)

	// (f(X)-f(z))/(X-z) should reconstruct f(X)-f(z) when multiplied back
	// out: q(X)*(X-z) + f(z) == f(X).
	var negZ fr.Element
	negZ.Neg(&z)
	reconstructed := make([]fr.Element, len(q)+1)
	for i, c := range q {
		var t fr.Element
		t.Mul(&c, &negZ)
		reconstructed[i].Add(&reconstructed[i], &t)
		reconstructed[i+1].Add(&reconstructed[i+1], &c)
	}
	reconstructed[0].Add(&reconstructed[0], &fz)

	for i := range f {
		if !reconstructed[i].Equal(&f[i]) {
			t.Fatalf("reconstructed coefficient %d mismatch", i)
		}
	}
}

func TestEvaluateMatchesBigIntPower(t *testing.T) {
	p := []fr.Element{fr.NewElement(1), fr.NewElement(0), fr.NewElement(1)} // 1 + X^2
	x := fr.NewElement(7)
	got := Evaluate(p, &x)

	var want fr.Element
	want.SetBigInt(big.NewInt(50)) // 1 + 49
	if !got.Equal(&want) {
		t.Fatal("Evaluate(1+X^2, 7) != 50")
	}
}

func TestLagrangeEvaluationsAtGeneratorIsZero(t *testing.T) {
	d, err := NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	_, _, zh := d.LagrangeEvaluations(&d.Generator)
	if !zh.IsZero() {
		t.Fatal("Z_H(omega) != 0")
	}
}

func TestLagrangeEvaluationsAtOne(t *testing.T) {
	d, err := NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	one := fr.NewElement(1)
	l1, _, zh := d.LagrangeEvaluations(&one)
	if !zh.IsZero() {
		t.Fatal("Z_H(1) != 0")
	}
	want := fr.NewElement(1)
	if !l1.Equal(&want) {
		t.Fatal("L_1(1) != 1")
	}
}

func TestDividePseudoVanishing(t *testing.T) {
	small, err := NewDomain(4)
	if err != nil {
		t.Fatalf("NewDomain(4): %v", err)
	}
	big8, err := NewDomain(16)
	if err != nil {
		t.Fatalf("NewDomain(16): %v", err)
	}

	// build t(X) = Z_H(X) * q(X) for an arbitrary small q, then check that
	// dividing t's big-coset evaluations by the pseudo-vanishing polynomial
	// and transforming back recovers q.
	q := []fr.Element{fr.NewElement(2), fr.NewElement(3)}
	qCoset := make([]fr.Element, 16)
	copy(qCoset, q)
	big8.CosetFFT(qCoset)

	var omegaNMinus1 fr.Element
	omegaNMinus1.Exp(small.Generator, big.NewInt(int64(small.Cardinality-1)))

	tCoset := make([]fr.Element, 16)
	var cur fr.Element
	cur.SetOne()
	for i := 0; i < 16; i++ {
		var cosetPoint fr.Element
		cosetPoint.Mul(&cur, &big8.FrMultiplicativeGen)

		var xn, one, zhVal fr.Element
		xn.Exp(cosetPoint, big.NewInt(int64(small.Cardinality)))
		one.SetOne()
		zhVal.Sub(&xn, &one)

		var shift fr.Element
		shift.Sub(&cosetPoint, &omegaNMinus1)
		zhVal.Div(&zhVal, &shift)

		tCoset[i].Mul(&qCoset[i], &zhVal)
		cur.Mul(&cur, &big8.Generator)
	}

	DividePseudoVanishing(tCoset, small, big8)
	big8.CosetFFTInverse(tCoset)

	for i := range q {
		if !tCoset[i].Equal(&q[i]) {
			t.Fatalf("recovered coefficient %d != original", i)
		}
	}
	for i := len(q); i < len(tCoset); i++ {
		if !tCoset[i].IsZero() {
			t.Fatalf("recovered coefficient %d should be zero, got nonzero", i)
		}
	}
}
