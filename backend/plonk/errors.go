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

import "errors"

// Sentinel errors realizing spec.md §7's error taxonomy.
var (
	ErrInvalidDomainSize     = errors.New("plonk: circuit size is not a supported power of two")
	ErrNotInSubgroup         = errors.New("plonk: point is not on the expected curve subgroup")
	ErrSRSTooSmall           = errors.New("plonk: SRS does not cover the circuit's required degree")
	ErrManifestMismatch      = errors.New("plonk: widget set does not match the transcript manifest")
	ErrInconsistentGates     = errors.New("plonk: witness does not satisfy the circuit's gate constraints")
	ErrVerifyFailed          = errors.New("plonk: proof failed verification")
	ErrWrongColumnCount      = errors.New("plonk: wire column count does not match the variant")
	ErrWrongPublicInputCount = errors.New("plonk: public input count does not match the verifying key")
)
