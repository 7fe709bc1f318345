// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package vmtest provides helpers to fan interpreter tests out over forks and
// interpreter configurations.
package vmtest

import (
	"fmt"
	"os"

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/bnb-chain/bsc-evm/params/forks"
)

// =============================================================================
// Fork fan-out helpers
// =============================================================================
//
// Usage:
//   - By default, tests run on the forks that changed the instruction set
//   - Set TEST_ALL_FORKS=true to run on every known fork
//
// Example:
//   func TestSomething(t *testing.T) {
//       for _, fork := range vmtest.ForksFrom(forks.Byzantium) {
//           for _, cfg := range vmtest.Configs() {
//               t.Run(vmtest.Name(fork, cfg), func(t *testing.T) {
//                   // test code using fork and cfg
//               })
//           }
//       }
//   }

// milestones are the forks whose instruction sets differ from their
// predecessor.
var milestones = []forks.Fork{
	forks.Frontier,
	forks.SpuriousDragon,
	forks.Byzantium,
	forks.Constantinople,
	forks.Shanghai,
	forks.Cancun,
}

// AllForks reports whether every fork should be tested.
func AllForks() bool {
	return os.Getenv("TEST_ALL_FORKS") == "true"
}

// Forks returns the forks to test.
func Forks() []forks.Fork {
	if AllForks() {
		return forks.All()
	}
	return append([]forks.Fork(nil), milestones...)
}

// ForksFrom returns the forks to test that are at or after min.
func ForksFrom(min forks.Fork) []forks.Fork {
	var out []forks.Fork
	for _, f := range Forks() {
		if f >= min {
			out = append(out, f)
		}
	}
	if len(out) == 0 || out[0] != min {
		out = append([]forks.Fork{min}, out...)
	}
	return out
}

// ForksBefore returns the forks to test that predate max.
func ForksBefore(max forks.Fork) []forks.Fork {
	var out []forks.Fork
	for _, f := range Forks() {
		if f < max {
			out = append(out, f)
		}
	}
	return out
}

// Configs returns interpreter configs to test: the plain one, and one with
// every activateable EIP switched on explicitly.
func Configs() []vm.Config {
	var eips []int
	for _, s := range vm.ActivateableEips() {
		var n int
		fmt.Sscanf(s, "%d", &n)
		eips = append(eips, n)
	}
	return []vm.Config{
		{},
		{ExtraEips: eips},
	}
}

// Name returns a human-readable name for a fork and config, used for
// sub-test naming.
func Name(fork forks.Fork, cfg vm.Config) string {
	if len(cfg.ExtraEips) > 0 {
		return fmt.Sprintf("%v+eips%v", fork, cfg.ExtraEips)
	}
	return fork.String()
}
