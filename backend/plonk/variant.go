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

// Variant selects the widget set and therefore the wire-column count and
// the transcript manifest's ν-schedule (SPEC_FULL.md §5, recovered from
// original_source's standard/extended/mimc/turbo composers, which the
// distilled spec.md only mentions in passing).
type Variant int

const (
	// Standard is the bare q_m,q_l,q_r,q_o,q_c arithmetisation gate.
	Standard Variant = iota
	// Extended layers a bounded-integer range-accumulator gate onto
	// Standard without the turbo fourth wire.
	Extended
	// MiMC adds one extra selector enforcing a MiMC round identity on top
	// of the standard arithmetic gate.
	MiMC
	// Turbo adds the fourth wire plus the range/logic/fixed-base widgets.
	Turbo
)

func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Extended:
		return "extended"
	case MiMC:
		return "mimc"
	case Turbo:
		return "turbo"
	default:
		return "unknown"
	}
}

// NumWireColumns is 3 (L, R, O) for Standard/Extended/MiMC, 4 (L, R, O, the
// fourth wire) for Turbo (spec.md §3 "Wire epicycle").
func (v Variant) NumWireColumns() int {
	if v == Turbo {
		return 4
	}
	return 3
}

// widgetsFor returns the widget set a variant folds into the quotient and
// linearisation, in the fixed dispatch order SPEC_FULL.md §6 "4.7/4.8"
// establishes as canonical (permutation block first, then this order,
// starting at α³).
func (v Variant) widgetsFor() []Widget {
	switch v {
	case Standard:
		return []Widget{arithmeticWidget{}}
	case Extended:
		return []Widget{arithmeticWidget{}, extendedRangeWidget{}}
	case MiMC:
		return []Widget{arithmeticWidget{}, mimcWidget{}}
	case Turbo:
		return []Widget{
			arithmeticWidget{},
			fourthWireWidget{},
			rangeWidget{},
			logicWidget{},
			fixedBaseWidget{},
		}
	default:
		return nil
	}
}
