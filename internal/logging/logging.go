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

// Package logging holds the library's single global logger, mirroring
// gnark's own logger sub-package: a swappable zerolog.Logger, disabled by
// default, that Setup, Prove, Verify and the SRS loader write milestone
// lines to at Debug level. Round challenges are not logged.
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.Disabled)
)

// Logger returns the current global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Set replaces the global logger, letting a host application redirect or
// enable library logging.
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}
