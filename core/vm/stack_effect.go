// Copyright 2025 The go-ethereum Authors
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

import "github.com/bnb-chain/bsc-evm/params"

// OpStackCounts returns the number of values popped from and pushed to the stack
// by the given opcode. Opcodes unknown to the newest instruction set report 0, 0.
func OpStackCounts(op OpCode) (pops int, pushes int) {
	entry := pragueInstructionSet[op]
	if entry.undefined || entry.inactive {
		return 0, 0
	}
	// minStack stores the required pops. maxStack = StackLimit + pops - pushes.
	pops = entry.minStack
	pushes = pops + int(params.StackLimit) - entry.maxStack
	if pushes < 0 {
		pushes = 0
	}
	return
}

// NextStackSize computes the stack height after executing the given opcode,
// given the current stack height before execution.
func NextStackSize(op OpCode, before int) int {
	pops, pushes := OpStackCounts(op)
	return before - pops + pushes
}

// OpGasInfo describes the static pricing of an opcode under some rules.
type OpGasInfo struct {
	ConstantGas uint64
	Dynamic     bool // a dynamic cost is charged on top of ConstantGas
	Memory      bool // the opcode may expand memory
	Defined     bool // the opcode is assigned in this instruction set
	Active      bool // the opcode is activated under these rules
}

// OpGas returns the pricing of op in the instruction set selected by rules.
func OpGas(op OpCode, rules params.Rules) OpGasInfo {
	entry := instructionSetForRules(rules)[op]
	return OpGasInfo{
		ConstantGas: entry.constantGas,
		Dynamic:     entry.dynamicGas != nil,
		Memory:      entry.memorySize != nil,
		Defined:     !entry.undefined,
		Active:      !entry.undefined && !entry.inactive,
	}
}
