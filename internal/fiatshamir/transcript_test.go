package fiatshamir

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestComputeChallengeDeterministic(t *testing.T) {
	t1 := NewTranscript(sha256.New(), "a", "b")
	t2 := NewTranscript(sha256.New(), "a", "b")

	if err := t1.Bind("a", []byte("hello")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := t2.Bind("a", []byte("hello")); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	v1, err := t1.ComputeChallenge("a")
	if err != nil {
		t.Fatalf("ComputeChallenge: %v", err)
	}
	v2, err := t2.ComputeChallenge("a")
	if err != nil {
		t.Fatalf("ComputeChallenge: %v", err)
	}
	if !bytes.Equal(v1, v2) {
		t.Fatal("identical bindings produced different challenges")
	}
}

func TestDifferentBindingsDifferentChallenge(t *testing.T) {
	t1 := NewTranscript(sha256.New(), "a")
	t2 := NewTranscript(sha256.New(), "a")

	if err := t1.Bind("a", []byte("hello")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := t2.Bind("a", []byte("world")); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	v1, _ := t1.ComputeChallenge("a")
	v2, _ := t2.ComputeChallenge("a")
	if bytes.Equal(v1, v2) {
		t.Fatal("different bindings produced the same challenge")
	}
}

func TestChallengeChaining(t *testing.T) {
	ts := NewTranscript(sha256.New(), "a", "b")
	if err := ts.Bind("a", []byte("x")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	va, err := ts.ComputeChallenge("a")
	if err != nil {
		t.Fatalf("ComputeChallenge(a): %v", err)
	}

	if err := ts.Bind("b", []byte("y")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	vb, err := ts.ComputeChallenge("b")
	if err != nil {
		t.Fatalf("ComputeChallenge(b): %v", err)
	}

	// b's value must depend on a's value: changing a's binding while
	// keeping b's binding fixed must change b's resulting challenge.
	ts2 := NewTranscript(sha256.New(), "a", "b")
	if err := ts2.Bind("a", []byte("different")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if _, err := ts2.ComputeChallenge("a"); err != nil {
		t.Fatalf("ComputeChallenge(a): %v", err)
	}
	if err := ts2.Bind("b", []byte("y")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	vb2, err := ts2.ComputeChallenge("b")
	if err != nil {
		t.Fatalf("ComputeChallenge(b): %v", err)
	}

	if bytes.Equal(vb, vb2) {
		t.Fatal("b's challenge did not chain from a's value")
	}
	_ = va
}

func TestBindUnknownChallenge(t *testing.T) {
	ts := NewTranscript(sha256.New(), "a")
	if err := ts.Bind("nope", []byte("x")); err != ErrChallengeNotFound {
		t.Fatalf("Bind(unknown) = %v, want ErrChallengeNotFound", err)
	}
}

func TestComputeChallengeOutOfOrder(t *testing.T) {
	ts := NewTranscript(sha256.New(), "a", "b")
	if err := ts.Bind("b", []byte("x")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if _, err := ts.ComputeChallenge("b"); err != ErrPreviousNotComputed {
		t.Fatalf("ComputeChallenge(b) before a = %v, want ErrPreviousNotComputed", err)
	}
}

func TestBindAfterComputeFails(t *testing.T) {
	ts := NewTranscript(sha256.New(), "a")
	if err := ts.Bind("a", []byte("x")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if _, err := ts.ComputeChallenge("a"); err != nil {
		t.Fatalf("ComputeChallenge: %v", err)
	}
	if err := ts.Bind("a", []byte("y")); err != ErrChallengeAlreadyComputed {
		t.Fatalf("Bind after compute = %v, want ErrChallengeAlreadyComputed", err)
	}
}

func TestComputeChallengeIsIdempotent(t *testing.T) {
	ts := NewTranscript(sha256.New(), "a")
	if err := ts.Bind("a", []byte("x")); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	v1, err := ts.ComputeChallenge("a")
	if err != nil {
		t.Fatalf("ComputeChallenge: %v", err)
	}
	v2, err := ts.ComputeChallenge("a")
	if err != nil {
		t.Fatalf("ComputeChallenge (second call): %v", err)
	}
	if !bytes.Equal(v1, v2) {
		t.Fatal("repeated ComputeChallenge calls returned different values")
	}
}
