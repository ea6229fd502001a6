package msm

import (
	"fmt"
	"testing"

	bn254 "github.com/BaoNinh2808/plonk-bn254/curve"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
)

func naiveSum(points []bn254.G1Affine, scalars []fr.Element) bn254.G1Affine {
	var acc bn254.G1Jac
	acc.X.SetZero()
	acc.Y.SetOne()
	acc.Z.SetZero()
	for i := range points {
		var term bn254.G1Jac
		term.ScalarMultiplicationFr(&points[i], &scalars[i])
		acc.AddAssign(&term)
	}
	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out
}

func samplePoints(n int) ([]bn254.G1Affine, []fr.Element) {
	points := make([]bn254.G1Affine, n)
	scalars := make([]fr.Element, n)
	var cur bn254.G1Jac
	cur.FromAffine(&bn254.G1Gen)
	for i := 0; i < n; i++ {
		var aff bn254.G1Affine
		aff.FromJacobian(&cur)
		points[i] = aff
		scalars[i].SetUint64(uint64(2*i + 1))
		cur.AddAssign(&cur)
	}
	return points, scalars
}

// TestMSMMatchesNaiveSum sweeps every size spec.md §8 names, from a single
// term up through a size large enough to exercise multiple Pippenger
// windows and the GLV point/scalar split several times over.
func TestMSMMatchesNaiveSum(t *testing.T) {
	for _, n := range []int{1, 2, 8, 32, 1024, 1 << 16} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			points, scalars := samplePoints(n)
			got, err := MSM(points, scalars)
			if err != nil {
				t.Fatalf("MSM: %v", err)
			}
			var gotAff bn254.G1Affine
			gotAff.FromJacobian(&got)

			want := naiveSum(points, scalars)
			if !gotAff.X.Equal(&want.X) || !gotAff.Y.Equal(&want.Y) {
				t.Fatalf("MSM(n=%d) does not match the naive weighted sum", n)
			}
		})
	}
}

// TestMSMReusesContextAcrossRepeatedCalls exercises MsmContext's
// splitPoints buffer reuse path by calling MSM twice at the same size.
func TestMSMReusesContextAcrossRepeatedCalls(t *testing.T) {
	const n = 128
	points, scalars := samplePoints(n)

	got1, err := MSM(points, scalars)
	if err != nil {
		t.Fatalf("MSM (first call): %v", err)
	}
	got2, err := MSM(points, scalars)
	if err != nil {
		t.Fatalf("MSM (second call): %v", err)
	}
	var a1, a2 bn254.G1Affine
	a1.FromJacobian(&got1)
	a2.FromJacobian(&got2)
	if !a1.X.Equal(&a2.X) || !a1.Y.Equal(&a2.Y) {
		t.Fatal("repeated MSM calls at the same size produced different results")
	}
}

func TestMSMEmpty(t *testing.T) {
	got, err := MSM(nil, nil)
	if err != nil {
		t.Fatalf("MSM: %v", err)
	}
	if !got.IsInfinity() {
		t.Fatal("MSM of zero terms is not the point at infinity")
	}
}

func TestMSMPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MSM did not panic on mismatched slice lengths")
		}
	}()
	points := make([]bn254.G1Affine, 2)
	scalars := make([]fr.Element, 3)
	_, _ = MSM(points, scalars)
}
