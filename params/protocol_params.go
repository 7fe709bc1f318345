// Copyright 2015 The go-ethereum Authors
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

const (
	StackLimit uint64 = 1024 // Maximum size of VM stack allowed.

	JumpdestGas      uint64 = 1  // Once per JUMPDEST operation.
	Keccak256Gas     uint64 = 30 // Once per KECCAK256 operation.
	Keccak256WordGas uint64 = 6  // Once per word of the KECCAK256 operation's data.
	CopyGas          uint64 = 3  // Multiplied by the number of 32-byte words that are copied (round up) for any *COPY operation and added.

	MemoryGas    uint64 = 3   // Times the address of the (highest referenced byte in memory + 1). NOTE: referencing happens on read, write and in instructions such as RETURN and CALL.
	QuadCoeffDiv uint64 = 512 // Divisor for the quadratic particle of the memory cost equation.

	ExpGas          uint64 = 10 // Once per EXP instruction
	ExpByteFrontier uint64 = 10 // was set to 10 in Frontier
	ExpByteEIP158   uint64 = 50 // was raised to 50 during Eip158 (Spurious Dragon)

	// MaxCodeSize is the largest code the analysis cache will accept.
	MaxCodeSize = 24576
	// MaxInitCodeSize is the largest init code (EIP-3860). Used as the upper
	// bound for code handed straight to the interpreter.
	MaxInitCodeSize = 2 * MaxCodeSize
)
