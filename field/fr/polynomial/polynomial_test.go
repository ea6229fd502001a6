package polynomial

import (
	"testing"

	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/fft"
)

func coeffs(vals ...uint64) []fr.Element {
	out := make([]fr.Element, len(vals))
	for i, v := range vals {
		out[i].SetUint64(v)
	}
	return out
}

func TestDegree(t *testing.T) {
	p := New(coeffs(1, 2, 0, 0))
	if got := p.Degree(); got != 1 {
		t.Fatalf("Degree() = %d, want 1", got)
	}
	zero := New(coeffs(0, 0, 0))
	if got := zero.Degree(); got != -1 {
		t.Fatalf("Degree() of zero poly = %d, want -1", got)
	}
}

func TestEvalRequiresCoefficientForm(t *testing.T) {
	p := New(coeffs(1, 2))
	p.Form = EvaluationsOnH
	if _, err := p.Eval(&fr.Element{}); err != ErrFormMismatch {
		t.Fatalf("Eval on non-Coefficients form = %v, want ErrFormMismatch", err)
	}
}

func TestToLagrangeToCanonicalRoundTrip(t *testing.T) {
	d, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	original := coeffs(1, 2, 3, 4, 5, 6, 7, 8)
	p := New(append([]fr.Element(nil), original...))

	if err := p.ToLagrange(d); err != nil {
		t.Fatalf("ToLagrange: %v", err)
	}
	if p.Form != EvaluationsOnH {
		t.Fatal("Form not updated to EvaluationsOnH")
	}
	if err := p.ToCanonical(d); err != nil {
		t.Fatalf("ToCanonical: %v", err)
	}
	if p.Form != Coefficients {
		t.Fatal("Form not restored to Coefficients")
	}
	for i := range original {
		if !p.Coefficients[i].Equal(&original[i]) {
			t.Fatalf("round trip mismatch at %d", i)
		}
	}
}

func TestToCosetToCanonicalFromCosetRoundTrip(t *testing.T) {
	d, err := fft.NewDomain(8)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	original := coeffs(1, 2, 3, 4, 5, 6, 7, 8)
	p := New(append([]fr.Element(nil), original...))

	if err := p.ToCoset(d); err != nil {
		t.Fatalf("ToCoset: %v", err)
	}
	if err := p.ToCanonicalFromCoset(d); err != nil {
		t.Fatalf("ToCanonicalFromCoset: %v", err)
	}
	for i := range original {
		if !p.Coefficients[i].Equal(&original[i]) {
			t.Fatalf("coset round trip mismatch at %d", i)
		}
	}
}

func TestOpeningQuotient(t *testing.T) {
	// p(X) = X^2 + 2X + 3
	p := New(coeffs(3, 2, 1))
	z := fr.NewElement(5)
	pz, err := p.Eval(&z)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	q, err := p.OpeningQuotient(&z, &pz)
	if err != nil {
		t.Fatalf("OpeningQuotient: %v", err)
	}

	// Check q(X)*(X-z) + p(z) == p(X) by evaluating both sides at an
	// arbitrary point distinct from z.
	x := fr.NewElement(11)
	qx, err := q.Eval(&x)
	if err != nil {
		t.Fatalf("Eval q: %v", err)
	}
	var xMinusZ, lhs fr.Element
	xMinusZ.Sub(&x, &z)
	lhs.Mul(&qx, &xMinusZ)
	lhs.Add(&lhs, &pz)

	px, err := p.Eval(&x)
	if err != nil {
		t.Fatalf("Eval p: %v", err)
	}
	if !lhs.Equal(&px) {
		t.Fatal("q(X)*(X-z)+p(z) != p(X)")
	}
}

func TestAddMismatchedForms(t *testing.T) {
	a := New(coeffs(1, 2))
	b := New(coeffs(1, 2))
	b.Form = EvaluationsOnH
	if _, err := Add(a, b); err != ErrFormMismatch {
		t.Fatalf("Add with mismatched forms = %v, want ErrFormMismatch", err)
	}
}

func TestAddDifferentLengths(t *testing.T) {
	a := New(coeffs(1, 2, 3))
	b := New(coeffs(10, 20))
	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := coeffs(11, 22, 3)
	for i := range want {
		if !sum.Coefficients[i].Equal(&want[i]) {
			t.Fatalf("sum[%d] mismatch", i)
		}
	}
}

func TestScaleInPlace(t *testing.T) {
	p := New(coeffs(1, 2, 3))
	c := fr.NewElement(4)
	p.ScaleInPlace(&c)
	want := coeffs(4, 8, 12)
	for i := range want {
		if !p.Coefficients[i].Equal(&want[i]) {
			t.Fatalf("scaled[%d] mismatch", i)
		}
	}
}

func TestClone(t *testing.T) {
	p := New(coeffs(1, 2, 3))
	c := p.Clone()
	c.Coefficients[0].SetUint64(99)
	if p.Coefficients[0].Equal(&c.Coefficients[0]) {
		t.Fatal("Clone shares backing storage with the original")
	}
}
