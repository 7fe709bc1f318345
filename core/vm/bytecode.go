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

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/willf/bitset"
	"golang.org/x/sync/singleflight"
)

// codePadding is appended to every analysed code: 32 bytes so a PUSH32 in the
// last position can be read without a bounds check, plus one implicit STOP.
const codePadding = 33

// Bytecode is analysed, immutable contract code. The padded slice is what the
// interpreter fetches from, the original slice is what CODESIZE and CODECOPY
// observe.
type Bytecode struct {
	padded    []byte
	original  []byte
	jumpdests *bitset.BitSet // offsets of JUMPDEST opcodes outside PUSH data
	hash      common.Hash
}

// NewBytecode analyses code. The input slice is copied.
func NewBytecode(code []byte) *Bytecode {
	return newBytecodeWithHash(code, crypto.Keccak256Hash(code))
}

func newBytecodeWithHash(code []byte, hash common.Hash) *Bytecode {
	padded := make([]byte, len(code)+codePadding)
	copy(padded, code)
	return &Bytecode{
		padded:    padded,
		original:  padded[:len(code):len(code)],
		jumpdests: analyseJumpdests(code),
		hash:      hash,
	}
}

// Len returns the length of the original code.
func (b *Bytecode) Len() int {
	return len(b.original)
}

// Hash returns the keccak256 hash of the original code.
func (b *Bytecode) Hash() common.Hash {
	return b.hash
}

// Original returns the unpadded code. Callers must not modify it.
func (b *Bytecode) Original() []byte {
	return b.original
}

// OpAt returns the opcode at pc, STOP for anything past the end of the code.
func (b *Bytecode) OpAt(pc uint64) OpCode {
	if pc < uint64(len(b.padded)) {
		return OpCode(b.padded[pc])
	}
	return STOP
}

// immediates returns the n bytes following pc. The padding guarantees the
// slice is in range for any PUSH that starts inside the original code.
func (b *Bytecode) immediates(pc uint64, n uint64) []byte {
	return b.padded[pc+1 : pc+1+n]
}

// IsValidJump reports whether dest is a JUMPDEST opcode that is not part of
// a PUSH immediate.
func (b *Bytecode) IsValidJump(dest uint64) bool {
	return dest < uint64(len(b.original)) && b.jumpdests.Test(uint(dest))
}

// analyseJumpdests walks code once, stepping over PUSH immediates, and marks
// every JUMPDEST it lands on.
func analyseJumpdests(code []byte) *bitset.BitSet {
	dests := bitset.New(uint(len(code)))
	for pc := 0; pc < len(code); pc++ {
		if op := OpCode(code[pc]); op == JUMPDEST {
			dests.Set(uint(pc))
		} else {
			pc += Immediates(op)
		}
	}
	return dests
}

// AnalysisCache memoises code analysis by code hash so that the jump
// destination bitmap of a given code is only ever computed once.
type AnalysisCache struct {
	cache *lru.Cache
	group singleflight.Group // for cache misses
}

// NewAnalysisCache creates a cache holding up to size analysed codes.
func NewAnalysisCache(size int) *AnalysisCache {
	cache, err := lru.New(size)
	if err != nil {
		panic(err) // only fails on non-positive size
	}
	return &AnalysisCache{cache: cache}
}

// Get returns the analysed form of code, analysing it on a miss. Concurrent
// misses on the same code share one analysis.
func (c *AnalysisCache) Get(code []byte) *Bytecode {
	hash := crypto.Keccak256Hash(code)
	if cached, ok := c.cache.Get(hash); ok {
		analysisCacheHitMeter.Mark(1)
		return cached.(*Bytecode)
	}
	b, _, _ := c.group.Do(string(hash[:]), func() (interface{}, error) {
		if cached, ok := c.cache.Get(hash); ok {
			return cached, nil
		}
		analysisCacheMissMeter.Mark(1)
		b := newBytecodeWithHash(code, hash)
		c.cache.Add(hash, b)
		return b, nil
	})
	return b.(*Bytecode)
}

// Len returns the number of cached entries.
func (c *AnalysisCache) Len() int {
	return c.cache.Len()
}
