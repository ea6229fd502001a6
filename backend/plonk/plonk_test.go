package plonk

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/BaoNinh2808/plonk-bn254/external/composer"
	"github.com/BaoNinh2808/plonk-bn254/field/fq"
	"github.com/BaoNinh2808/plonk-bn254/field/fr"
	"github.com/BaoNinh2808/plonk-bn254/field/fr/kzg"
)

// proofCmpOpts lets cmp.Diff compare a Proof field-by-field: fr.Element and
// fq.Element both carry Equal methods with pointer receivers, which cmp's
// automatic Equal-method detection does not pick up, so they need explicit
// comparers; EquateEmpty lets a nil slice/map compare equal to an empty one
// (Unmarshal allocates fresh containers rather than leaving them nil).
var proofCmpOpts = cmp.Options{
	cmp.Comparer(func(a, b fr.Element) bool { return a.Equal(&b) }),
	cmp.Comparer(func(a, b fq.Element) bool { return a.Equal(&b) }),
	cmpopts.EquateEmpty(),
}

// squareChainCircuit builds a two-gate Standard-variant circuit computing
// x^2 then x^4, wiring the first gate's output into the second gate's two
// inputs via a 3-cycle permutation (O0 -> L1 -> R1 -> O0), so the round
// trip exercises both the arithmetic widget and the permutation argument.
func squareChainCircuit(x fr.Element) (composer.CircuitDescription, Witness) {
	n := 2
	var x2, x4 fr.Element
	x2.Mul(&x, &x)
	x4.Mul(&x2, &x2)

	one := fr.NewElement(1)
	var negOne fr.Element
	negOne.Neg(&one)

	cd := composer.CircuitDescription{
		NbPublicInputs: 0,
		Wires:          make([]composer.GateWires, n),
		Selectors: []composer.SelectorRow{
			{Qm: one, Qo: negOne},
			{Qm: one, Qo: negOne},
		},
		Permutation: make([][]int, 4),
	}
	for c := range cd.Permutation {
		cd.Permutation[c] = make([]int, n)
		for row := range cd.Permutation[c] {
			cd.Permutation[c][row] = c*n + row // identity by default
		}
	}
	// O0 (col 2, row 0) -> L1 (col 0, row 1) -> R1 (col 1, row 1) -> O0
	cd.Permutation[2][0] = 0*n + 1
	cd.Permutation[0][1] = 1*n + 1
	cd.Permutation[1][1] = 2*n + 0

	w := Witness{
		L: []fr.Element{x, x2},
		R: []fr.Element{x, x2},
		O: []fr.Element{x2, x4},
	}
	return cd, w
}

func testSRS(t *testing.T, size uint64) *kzg.SRS {
	t.Helper()
	srs, err := kzg.NewSRS(size, big.NewInt(12345))
	if err != nil {
		t.Fatalf("NewSRS: %v", err)
	}
	return srs
}

func TestProveVerifyStandard(t *testing.T) {
	x := fr.NewElement(3)
	cd, w := squareChainCircuit(x)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(vk, proof, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsTamperedEvaluation(t *testing.T) {
	x := fr.NewElement(3)
	cd, w := squareChainCircuit(x)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	var one fr.Element
	one.SetOne()
	proof.WireEvals[0].Add(&proof.WireEvals[0], &one)

	if err := Verify(vk, proof, nil); err == nil {
		t.Fatal("Verify accepted a proof with a tampered wire evaluation")
	}
}

func TestVerifyRejectsWrongWitness(t *testing.T) {
	x := fr.NewElement(3)
	cd, w := squareChainCircuit(x)
	// Break the permutation-linked copy: R1 should equal O0, corrupt it.
	// The gate equation l*r=o on row 1 will no longer hold either, so the
	// quotient identity check must catch this.
	var bogus fr.Element
	bogus.SetUint64(7)
	w.R[1] = bogus

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(vk, proof, nil); err == nil {
		t.Fatal("Verify accepted a proof built from a witness violating the circuit's constraints")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	x := fr.NewElement(3)
	cd, w := squareChainCircuit(x)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	data := Marshal(proof, Standard, 2, nil)

	numCols := Standard.NumWireColumns()
	numZetaOpenings := 1 + numCols + (numCols - 1) + len(proof.QuotientChunks)
	numShiftOpenings := 1

	circuitSize, publicInputs, decoded, err := Unmarshal(data, Standard, 0, len(proof.QuotientChunks), numZetaOpenings, numShiftOpenings)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if circuitSize != 2 {
		t.Fatalf("circuit size = %d, want 2", circuitSize)
	}
	if len(publicInputs) != 0 {
		t.Fatalf("public inputs = %d, want 0", len(publicInputs))
	}

	if err := Verify(vk, decoded, nil); err != nil {
		t.Fatalf("Verify(decoded proof): %v", err)
	}

	if diff := cmp.Diff(proof, decoded, proofCmpOpts); diff != "" {
		t.Fatalf("decoded proof differs from the original (-want +got):\n%s", diff)
	}
}

func TestProveVerifyExtended(t *testing.T) {
	// QRange defaults to zero on every row, so the extended-range widget's
	// quotient/linearisation contributions vanish identically; this only
	// exercises that Extended's wider widget set is wired correctly, not a
	// real range-checked witness.
	x := fr.NewElement(3)
	cd, w := squareChainCircuit(x)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Extended, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(vk, proof, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// singleGateCircuit builds the one-row Standard circuit 1*1-1=0 with
// witness [1,1,1].
func singleGateCircuit() (composer.CircuitDescription, Witness) {
	one := fr.NewElement(1)
	var negOne fr.Element
	negOne.Neg(&one)

	cd := composer.CircuitDescription{
		NbPublicInputs: 0,
		Wires:          make([]composer.GateWires, 1),
		Selectors:      []composer.SelectorRow{{Qm: one, Qo: negOne}},
	}
	w := Witness{L: []fr.Element{one}, R: []fr.Element{one}, O: []fr.Element{one}}
	return cd, w
}

// TestS1SingleGateAcceptsAndRejectsTamperedProof: circuit with a single
// gate 1*1-1=0, witness [1,1,1]; the prover's proof verifies, and flipping
// any byte of the marshaled proof causes rejection (either Unmarshal itself
// fails, or the decoded proof fails Verify).
func TestS1SingleGateAcceptsAndRejectsTamperedProof(t *testing.T) {
	cd, w := singleGateCircuit()

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(vk, proof, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	numCols := Standard.NumWireColumns()
	numZetaOpenings := 1 + numCols + (numCols - 1) + len(proof.QuotientChunks)
	numShiftOpenings := 1
	data := Marshal(proof, Standard, 1, nil)

	for i := range data {
		tampered := make([]byte, len(data))
		copy(tampered, data)
		tampered[i] ^= 0xff

		_, _, decoded, err := Unmarshal(tampered, Standard, 0, len(proof.QuotientChunks), numZetaOpenings, numShiftOpenings)
		if err != nil {
			continue
		}
		if Verify(vk, decoded, nil) == nil {
			t.Fatalf("Verify accepted a proof with byte %d flipped", i)
		}
	}
}

// addGateCircuit builds n rows of the independent Standard-variant identity
// l+r-o=0 (Ql=Qr=1, Qo=-1, Qm=Qc=0), one gate per row with no cross-row
// copy constraints, and a deterministic (not cryptographically random, but
// varying per row) witness.
func addGateCircuit(n int) (composer.CircuitDescription, Witness) {
	one := fr.NewElement(1)
	var negOne fr.Element
	negOne.Neg(&one)

	cd := composer.CircuitDescription{
		NbPublicInputs: 0,
		Wires:          make([]composer.GateWires, n),
		Selectors:      make([]composer.SelectorRow, n),
	}
	l := make([]fr.Element, n)
	r := make([]fr.Element, n)
	o := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		cd.Selectors[i] = composer.SelectorRow{Ql: one, Qr: one, Qo: negOne}
		l[i] = fr.NewElement(uint64(2*i + 1))
		r[i] = fr.NewElement(uint64(3*i + 5))
		o[i].Add(&l[i], &r[i])
	}
	return cd, Witness{L: l, R: r, O: o}
}

// TestS2LargeCircuitAccepts: a circuit of 2^10 independent a+b=c gates with
// varying witnesses verifies.
func TestS2LargeCircuitAccepts(t *testing.T) {
	const n = 1 << 10
	cd, w := addGateCircuit(n)

	srs := testSRS(t, n*quotientRatio)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(vk, proof, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestS3InconsistentWitnessRejected: an a+b=c circuit with one gate's
// output deliberately off by one is rejected.
func TestS3InconsistentWitnessRejected(t *testing.T) {
	const n = 8
	cd, w := addGateCircuit(n)
	one := fr.NewElement(1)
	w.O[n-1].Add(&w.O[n-1], &one)

	srs := testSRS(t, n*quotientRatio)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(vk, proof, nil); err == nil {
		t.Fatal("Verify accepted a proof built from a witness with one gate's output off by one")
	}
}

// rangeDigits splits an 8-bit nibble into rangeWidget's four base-4 digits
// (d1 the most significant, d4 the least), matching the decomposition
// rangeAccumulator checks: nibble = 64*d1 + 16*d2 + 4*d3 + d4.
func rangeDigits(nibble uint32) (d1, d2, d3, d4 uint64) {
	d1 = uint64(nibble / 64)
	rem := nibble % 64
	d2 = uint64(rem / 16)
	rem %= 16
	d3 = uint64(rem / 4)
	d4 = uint64(rem % 4)
	return
}

// turboRangeCircuit builds a Turbo-variant circuit range-checking a 32-bit
// value v via rangeWidget's base-4 accumulator (SPEC_FULL.md §6, recovered
// from original_source's turbo_range_widget.cpp): four rows, each
// decomposing one byte of v into four base-4 digits atop the running
// accumulator carried through the fourth wire via QuotientTerm's
// W4Shifted (row-to-row adjacency, not a permutation copy constraint); a
// fifth row holds the final accumulated value with QRange disabled so the
// domain's cyclic wraparound never needs to satisfy the digit check.
func turboRangeCircuit(v uint32) (composer.CircuitDescription, Witness) {
	const rows = 5
	one := fr.NewElement(1)

	cd := composer.CircuitDescription{
		NbPublicInputs: 0,
		Wires:          make([]composer.GateWires, rows),
		Selectors:      make([]composer.SelectorRow, rows),
	}
	l := make([]fr.Element, rows)
	r := make([]fr.Element, rows)
	o := make([]fr.Element, rows)
	w4 := make([]fr.Element, rows)

	var acc fr.Element
	four := fr.NewElement(4)
	w4[0] = acc
	for i := 0; i < 4; i++ {
		shift := uint(8 * (3 - i))
		nibble := (v >> shift) & 0xff
		d1, d2, d3, d4 := rangeDigits(nibble)

		var oi, ri, li, next fr.Element
		oi.Mul(&four, &acc)
		oi.Add(&oi, elemU64(d1))
		ri.Mul(&four, &oi)
		ri.Add(&ri, elemU64(d2))
		li.Mul(&four, &ri)
		li.Add(&li, elemU64(d3))
		next.Mul(&four, &li)
		next.Add(&next, elemU64(d4))

		l[i], r[i], o[i] = li, ri, oi
		cd.Selectors[i] = composer.SelectorRow{QRange: one}
		acc = next
		w4[i+1] = acc
	}
	// Row 4 only carries the final accumulator value; its own range check
	// is disabled.
	cd.Selectors[4] = composer.SelectorRow{}

	return cd, Witness{L: l, R: r, O: o, F: w4}
}

func elemU64(v uint64) *fr.Element {
	e := fr.NewElement(v)
	return &e
}

// TestS4TurboRangeCheck: a Turbo-variant range check over a 32-bit value
// accepts when every digit is valid, and rejects once a digit is corrupted
// outside {0,1,2,3}.
func TestS4TurboRangeCheck(t *testing.T) {
	cd, w := turboRangeCircuit(0x12345678)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Turbo, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(vk, proof, nil); err != nil {
		t.Fatalf("Verify (in-range value): %v", err)
	}

	// Corrupt row 0's claimed output so its digit decomposition no longer
	// holds; QRange still equals 1 there, so the quotient identity must
	// catch it.
	bad := w
	bad.O = append([]fr.Element{}, w.O...)
	one := fr.NewElement(1)
	bad.O[0].Add(&bad.O[0], &one)

	badProof, err := Prove(pk, &bad)
	if err != nil {
		t.Fatalf("Prove (corrupted digit): %v", err)
	}
	if err := Verify(vk, badProof, nil); err == nil {
		t.Fatal("Verify accepted a range-check proof with a corrupted digit")
	}
}

// TestS5VerifyIsDeterministic: repeated Verify calls on the same proof
// agree with each other and do not mutate the proof.
func TestS5VerifyIsDeterministic(t *testing.T) {
	x := fr.NewElement(3)
	cd, w := squareChainCircuit(x)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	proof, err := Prove(pk, &w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	before := *proof
	before.QuotientChunks = append([]kzg.Digest{}, proof.QuotientChunks...)
	before.SigmaEvals = append([]fr.Element{}, proof.SigmaEvals...)
	before.NonlinearEval = map[string]fr.Element{}
	for k, v := range proof.NonlinearEval {
		before.NonlinearEval[k] = v
	}
	before.ZetaOpening.ClaimedValues = append([]fr.Element{}, proof.ZetaOpening.ClaimedValues...)
	before.ShiftOpening.ClaimedValues = append([]fr.Element{}, proof.ShiftOpening.ClaimedValues...)
	for i := 0; i < 3; i++ {
		if err := Verify(vk, proof, nil); err != nil {
			t.Fatalf("Verify call %d: %v", i, err)
		}
	}
	if diff := cmp.Diff(before, *proof, proofCmpOpts); diff != "" {
		t.Fatalf("Verify mutated the proof (-before +after):\n%s", diff)
	}
}

// TestS6TwoProversOnSameCircuitBothVerify: two independent Prove calls on
// the same ProvingKey and an equal-valued witness both produce proofs that
// verify. This implementation does not yet add zero-knowledge blinding to
// the wire/Z polynomials (an open gap, recorded in DESIGN.md), so the two
// proofs below come out byte-identical rather than merely agreeing on
// validity; the assertion below checks the behavior this code actually
// has, not the blinded behavior a full implementation would add.
func TestS6TwoProversOnSameCircuitBothVerify(t *testing.T) {
	x := fr.NewElement(3)
	cd, w1 := squareChainCircuit(x)
	_, w2 := squareChainCircuit(x)

	srs := testSRS(t, 64)
	pk, vk, err := Setup(cd, Standard, srs)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	proof1, err := Prove(pk, &w1)
	if err != nil {
		t.Fatalf("Prove (first): %v", err)
	}
	proof2, err := Prove(pk, &w2)
	if err != nil {
		t.Fatalf("Prove (second): %v", err)
	}

	if err := Verify(vk, proof1, nil); err != nil {
		t.Fatalf("Verify (first prover): %v", err)
	}
	if err := Verify(vk, proof2, nil); err != nil {
		t.Fatalf("Verify (second prover): %v", err)
	}
}

func TestSetupRejectsUndersizedSRS(t *testing.T) {
	x := fr.NewElement(3)
	cd, _ := squareChainCircuit(x)

	srs := testSRS(t, 4)
	if _, _, err := Setup(cd, Standard, srs); err != ErrSRSTooSmall {
		t.Fatalf("Setup with undersized SRS: got %v, want ErrSRSTooSmall", err)
	}
}
