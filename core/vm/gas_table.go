// Copyright 2017 The go-ethereum Authors
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
	"github.com/bnb-chain/bsc-evm/params"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

// MemoryCost returns the total cost of a memory of the given number of words:
// 3*words + words²/512.
func MemoryCost(words uint64) uint64 {
	return words*params.MemoryGas + words*words/params.QuadCoeffDiv
}

// memoryGasCost calculates the quadratic gas for memory expansion. It does so
// only for the memory region that is expanded, not the total memory.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	// The maximum that will fit in a uint64 is max_word_count - 1. Anything above
	// that will result in an overflow. Additionally, a newMemSize which results in
	// a newMemSizeWords larger than 0xFFFFFFFF will cause the square operation to
	// overflow. The constant 0x1FFFFFFFE0 is the highest number that can be used
	// without overflowing the gas calculation.
	if newMemSize > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		newTotalFee := MemoryCost(newMemSizeWords)
		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee

		return fee, nil
	}
	return 0, nil
}

// copyWordGas prices a copy of length bytes at params.CopyGas per word.
func copyWordGas(length *uint256.Int) (uint64, error) {
	words, overflow := length.Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if words, overflow = math.SafeMul(toWordSize(words), params.CopyGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return words, nil
}

// memoryCopierGas creates the gas functions for the following opcodes, and takes
// the stack position of the operand which determines the size of the data to copy
// as argument:
// CALLDATACOPY (stack position 2)
// CODECOPY (stack position 2)
// MCOPY (stack position 2)
func memoryCopierGas(stackpos int) gasFunc {
	return func(in *EVMInterpreter, scope *ScopeContext, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCost(scope.Memory, memorySize)
		if err != nil {
			return 0, err
		}
		words, err := copyWordGas(scope.Stack.Back(stackpos))
		if err != nil {
			return 0, err
		}
		var overflow bool
		if gas, overflow = math.SafeAdd(gas, words); overflow {
			return 0, ErrGasUintOverflow
		}
		return gas, nil
	}
}

var (
	gasCallDataCopy = memoryCopierGas(2)
	gasCodeCopy     = memoryCopierGas(2)
	gasMcopy        = memoryCopierGas(2)
)

// gasReturnDataCopy prices the copy words first, then rejects a source range
// outside the return data before memory expansion is priced. The rejection
// still reports the word cost so the driver can charge it.
func gasReturnDataCopy(in *EVMInterpreter, scope *ScopeContext, memorySize uint64) (uint64, error) {
	var (
		dataOffset = scope.Stack.Back(1)
		length     = scope.Stack.Back(2)
	)
	words, err := copyWordGas(length)
	if err != nil {
		return 0, err
	}
	end, overflow := new(uint256.Int).AddOverflow(dataOffset, length)
	if overflow || !end.IsUint64() || end.Uint64() > uint64(len(in.returnData)) {
		return words, ErrReturnDataOutOfBounds
	}
	gas, err := memoryGasCost(scope.Memory, memorySize)
	if err != nil {
		return 0, err
	}
	if gas, overflow = math.SafeAdd(gas, words); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasKeccak256(in *EVMInterpreter, scope *ScopeContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(scope.Memory, memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := scope.Stack.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if wordGas, overflow = math.SafeMul(toWordSize(wordGas), params.Keccak256WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = math.SafeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// pureMemoryGascost is used by several operations, which aside from their
// static cost have a dynamic cost which is solely based on the memory
// expansion
func pureMemoryGascost(in *EVMInterpreter, scope *ScopeContext, memorySize uint64) (uint64, error) {
	return memoryGasCost(scope.Memory, memorySize)
}

var (
	gasReturn  = pureMemoryGascost
	gasRevert  = pureMemoryGascost
	gasMLoad   = pureMemoryGascost
	gasMStore8 = pureMemoryGascost
	gasMStore  = pureMemoryGascost
)

func makeGasExp(byteGas uint64) gasFunc {
	return func(in *EVMInterpreter, scope *ScopeContext, memorySize uint64) (uint64, error) {
		expByteLen := uint64((scope.Stack.Back(1).BitLen() + 7) / 8)

		var (
			gas      = expByteLen * byteGas // no overflow check required. Max is 256 * ExpByte gas
			overflow bool
		)
		if gas, overflow = math.SafeAdd(gas, params.ExpGas); overflow {
			return 0, ErrGasUintOverflow
		}
		return gas, nil
	}
}

var (
	gasExpFrontier = makeGasExp(params.ExpByteFrontier)
	gasExpEIP158   = makeGasExp(params.ExpByteEIP158)
)
