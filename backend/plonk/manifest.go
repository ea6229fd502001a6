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

import "github.com/BaoNinh2808/plonk-bn254/field/fr"

// Manifest derives, once per Variant, everything the prover and verifier
// must agree on without hand-duplicating it in two places (spec.md §9
// design note 4 "the ν/α schedule must be a pure function of the widget
// set, not maintained by hand in two places"): which selectors exist,
// which wire shifts are needed, which selectors require a direct opening
// at z, and one past the highest alpha exponent the permutation-plus-widget
// block uses.
type Manifest struct {
	Variant       Variant
	Widgets       []Widget
	SelectorNames []string
	Nonlinear     []string
	Deps          Dependency

	// widgetAlphaStart[i] is the alpha exponent (1-indexed, continuing
	// after the permutation argument's own 2 powers) the i-th widget's
	// alpha powers begin at.
	widgetAlphaStart []int
	totalAlphaPowers int
}

// permutationAlphaPowers is the number of alpha powers the grand-product
// permutation argument itself consumes (spec.md §4.7 Round 3: the
// permutation identity and its L_1 boundary check, alpha^1 and alpha^2)
// before any widget's contribution begins.
const permutationAlphaPowers = 2

func newManifest(v Variant) *Manifest {
	widgets := v.widgetsFor()
	m := &Manifest{Variant: v, Widgets: widgets}

	seenSelector := map[string]bool{}
	seenNonlinear := map[string]bool{}
	start := permutationAlphaPowers + 1
	for _, w := range widgets {
		for _, s := range w.SelectorNames() {
			if !seenSelector[s] {
				seenSelector[s] = true
				m.SelectorNames = append(m.SelectorNames, s)
			}
		}
		for _, s := range w.NonlinearSelectors() {
			if !seenNonlinear[s] {
				seenNonlinear[s] = true
				m.Nonlinear = append(m.Nonlinear, s)
			}
		}
		m.Deps |= w.Dependencies()
		m.widgetAlphaStart = append(m.widgetAlphaStart, start)
		start += w.NumAlphaPowers()
	}
	m.totalAlphaPowers = start
	return m
}

// alphaPowersFor returns the slice of alpha (the Fiat-Shamir widget-batching
// challenge) powers belonging to the i-th widget, drawn from a precomputed
// table of consecutive alpha powers alphaPow[1..totalAlphaPowers].
func (m *Manifest) alphaPowersFor(i int, alphaPow []fr.Element) []fr.Element {
	w := m.Widgets[i]
	start := m.widgetAlphaStart[i]
	n := w.NumAlphaPowers()
	return alphaPow[start : start+n]
}
