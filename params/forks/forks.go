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

// Package forks enumerates the protocol versions the interpreter can be
// configured for.
package forks

import (
	"fmt"
	"strings"
)

// Fork is a numerical identifier of specific network upgrades (forks).
// Forks are ordered, a later fork includes every rule of the earlier ones.
type Fork int

const (
	Frontier Fork = iota
	Homestead
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin
	London
	Paris
	Shanghai
	Cancun
	Prague
)

// Latest is the newest fork known to this package.
const Latest = Prague

var forkToString = map[Fork]string{
	Frontier:         "Frontier",
	Homestead:        "Homestead",
	TangerineWhistle: "Tangerine Whistle",
	SpuriousDragon:   "Spurious Dragon",
	Byzantium:        "Byzantium",
	Constantinople:   "Constantinople",
	Petersburg:       "Petersburg",
	Istanbul:         "Istanbul",
	Berlin:           "Berlin",
	London:           "London",
	Paris:            "Paris",
	Shanghai:         "Shanghai",
	Cancun:           "Cancun",
	Prague:           "Prague",
}

// String implements fmt.Stringer.
func (f Fork) String() string {
	s, ok := forkToString[f]
	if !ok {
		return "Unknown fork"
	}
	return s
}

// IsValid reports whether f names a known fork.
func (f Fork) IsValid() bool {
	return f >= Frontier && f <= Latest
}

// All returns every known fork in activation order.
func All() []Fork {
	all := make([]Fork, 0, int(Latest)+1)
	for f := Frontier; f <= Latest; f++ {
		all = append(all, f)
	}
	return all
}

// Parse resolves a fork by name. Matching ignores case, spaces and the
// "merge" alias for Paris.
func Parse(name string) (Fork, error) {
	norm := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if norm == "merge" {
		return Paris, nil
	}
	for f, s := range forkToString {
		if strings.ToLower(strings.ReplaceAll(s, " ", "")) == norm {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown fork %q", name)
}
