// Copyright 2016 The go-ethereum Authors
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

package params

import (
	"github.com/bnb-chain/bsc-evm/params/forks"
)

// Rules is a one time interface meaning that it shouldn't be used in between transition
// phases. Unlike a chain config it is derived from a single fork, the interpreter
// never has to consult block numbers or timestamps.
type Rules struct {
	Fork                                                    forks.Fork
	IsHomestead, IsEIP150, IsEIP158                         bool
	IsByzantium, IsConstantinople, IsPetersburg, IsIstanbul bool
	IsBerlin, IsLondon                                      bool
	IsMerge, IsShanghai, IsCancun, IsPrague                 bool
}

// RulesForFork returns the rule set active at the given fork.
func RulesForFork(fork forks.Fork) Rules {
	return Rules{
		Fork:             fork,
		IsHomestead:      fork >= forks.Homestead,
		IsEIP150:         fork >= forks.TangerineWhistle,
		IsEIP158:         fork >= forks.SpuriousDragon,
		IsByzantium:      fork >= forks.Byzantium,
		IsConstantinople: fork >= forks.Constantinople,
		IsPetersburg:     fork >= forks.Petersburg,
		IsIstanbul:       fork >= forks.Istanbul,
		IsBerlin:         fork >= forks.Berlin,
		IsLondon:         fork >= forks.London,
		IsMerge:          fork >= forks.Paris,
		IsShanghai:       fork >= forks.Shanghai,
		IsCancun:         fork >= forks.Cancun,
		IsPrague:         fork >= forks.Prague,
	}
}

// LatestRules returns the rules of the newest known fork.
func LatestRules() Rules {
	return RulesForFork(forks.Latest)
}
