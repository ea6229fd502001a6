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

// Package fiatshamir implements a keyed-sponge Fiat-Shamir transcript: a
// programmable manifest of named challenges, each bound to the prover
// messages that precede it, so PLONK's round challenges (gamma, alpha,
// zeta, ...) are derived non-interactively and cannot be forged by
// reordering or dropping a binding (spec.md §4.7).
package fiatshamir

import (
	"errors"
	"hash"
)

var (
	// ErrChallengeNotFound is returned by ComputeChallenge/Bind when the
	// named challenge was not declared in the transcript's manifest.
	ErrChallengeNotFound = errors.New("fiatshamir: challenge not found in manifest")
	// ErrChallengeAlreadyComputed is returned by Bind once a challenge has
	// already had its value derived, since binding more data afterwards
	// would not be reflected in the already-issued challenge.
	ErrChallengeAlreadyComputed = errors.New("fiatshamir: challenge already computed, cannot bind more data")
	// ErrPreviousNotComputed enforces the manifest's declared order: a
	// challenge may not be computed until every challenge before it in the
	// manifest has itself been computed.
	ErrPreviousNotComputed = errors.New("fiatshamir: previous challenge was not computed")
)

type challenge struct {
	position   int
	bindings   [][]byte
	value      []byte
	isComputed bool
}

// Transcript binds prover messages to named challenges in a fixed order
// (the manifest) and derives each challenge's value as a hash of every
// binding that preceded it, plus the value of the previous challenge (so
// challenges chain rather than being independently forgeable).
type Transcript struct {
	hf         hash.Hash
	challenges map[string]*challenge
	previous   *challenge
	order      []string
}

// NewTranscript builds a transcript whose manifest is exactly the given
// challenge names, in the order supplied; each must later be bound (zero
// or more times) and computed (exactly once, in manifest order).
func NewTranscript(hf hash.Hash, challenges ...string) *Transcript {
	t := &Transcript{
		hf:         hf,
		challenges: make(map[string]*challenge, len(challenges)),
		order:      append([]string(nil), challenges...),
	}
	for i, c := range challenges {
		t.challenges[c] = &challenge{position: i}
	}
	return t
}

// Bind appends bound to challenge's list of bindings. It is an error to
// bind to a challenge not in the manifest, or to one whose value has
// already been computed.
func (t *Transcript) Bind(challengeName string, bound []byte) error {
	c, ok := t.challenges[challengeName]
	if !ok {
		return ErrChallengeNotFound
	}
	if c.isComputed {
		return ErrChallengeAlreadyComputed
	}
	c.bindings = append(c.bindings, append([]byte(nil), bound...))
	return nil
}

// ComputeChallenge derives challengeName's value: hash(bindings[0] || ... ||
// bindings[k] || previousChallengeValue), where previousChallengeValue is
// empty for the first challenge in the manifest. The manifest's declared
// order must be respected: every earlier challenge must already be
// computed.
func (t *Transcript) ComputeChallenge(challengeName string) ([]byte, error) {
	c, ok := t.challenges[challengeName]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	if c.isComputed {
		return c.value, nil
	}
	if c.position > 0 {
		prevName := t.order[c.position-1]
		prev := t.challenges[prevName]
		if !prev.isComputed {
			return nil, ErrPreviousNotComputed
		}
		t.previous = prev
	}

	t.hf.Reset()
	for _, b := range c.bindings {
		t.hf.Write(b)
	}
	if t.previous != nil {
		t.hf.Write(t.previous.value)
	}
	c.value = t.hf.Sum(nil)
	c.isComputed = true
	return c.value, nil
}
