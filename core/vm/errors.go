// Copyright 2014 The go-ethereum Authors
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
	"errors"
	"fmt"

	"github.com/bnb-chain/bsc-evm/params/forks"
)

// List evm execution errors
var (
	ErrOutOfGas              = errors.New("out of gas")
	ErrExecutionReverted     = errors.New("execution reverted")
	ErrInvalidJump           = errors.New("invalid jump destination")
	ErrReturnDataOutOfBounds = errors.New("return data out of bounds")
	ErrGasUintOverflow       = errors.New("gas uint64 overflow")
	ErrOutOfOffset           = errors.New("offset out of addressable range")
	ErrInvalidFEOpcode       = errors.New("invalid opcode: INVALID")

	// errStopToken is an internal token indicating interpreter loop termination,
	// never returned to outside callers.
	errStopToken = errors.New("stop token")
	// errReturnToken is the RETURN counterpart of errStopToken.
	errReturnToken = errors.New("return token")
)

// ErrStackUnderflow wraps an evm error when the items on the stack less
// than the minimal requirement.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow wraps an evm error when the items on the stack exceeds
// the maximum allowance.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// ErrInvalidOpCode wraps an evm error when an invalid opcode is encountered.
type ErrInvalidOpCode struct {
	opcode OpCode
}

func (e *ErrInvalidOpCode) Error() string { return fmt.Sprintf("invalid opcode: %s", e.opcode) }

// ErrNotActivated is returned when an opcode runs under a fork that predates it.
type ErrNotActivated struct {
	opcode OpCode
	fork   forks.Fork
}

func (e *ErrNotActivated) Error() string {
	return fmt.Sprintf("opcode %s not activated in %v", e.opcode, e.fork)
}

// InstructionResult is the outcome of the last executed instruction.
type InstructionResult uint8

const (
	Continue InstructionResult = iota
	Stop
	Return
	Revert
	OutOfGas
	StackOverflow
	StackUnderflow
	InvalidJump
	OutOfOffset
	InvalidOpcode
	OpcodeNotFound
	NotActivated
)

var resultToString = [...]string{
	Continue:       "Continue",
	Stop:           "Stop",
	Return:         "Return",
	Revert:         "Revert",
	OutOfGas:       "OutOfGas",
	StackOverflow:  "StackOverflow",
	StackUnderflow: "StackUnderflow",
	InvalidJump:    "InvalidJump",
	OutOfOffset:    "OutOfOffset",
	InvalidOpcode:  "InvalidOpcode",
	OpcodeNotFound: "OpcodeNotFound",
	NotActivated:   "NotActivated",
}

func (r InstructionResult) String() string {
	if int(r) < len(resultToString) {
		return resultToString[r]
	}
	return fmt.Sprintf("InstructionResult(%d)", uint8(r))
}

// ParseInstructionResult maps a name produced by String back to the result.
func ParseInstructionResult(s string) (InstructionResult, bool) {
	for i, name := range resultToString {
		if name == s {
			return InstructionResult(i), true
		}
	}
	return 0, false
}

// IsHalt reports whether the frame has stopped executing.
func (r InstructionResult) IsHalt() bool { return r != Continue }

// IsSuccess reports a successful halt (Stop or Return).
func (r InstructionResult) IsSuccess() bool { return r == Stop || r == Return }

// IsRevert reports whether state effects must be discarded while keeping
// the remaining gas.
func (r InstructionResult) IsRevert() bool { return r == Revert }

// IsError reports an exceptional halt.
func (r InstructionResult) IsError() bool { return r > Revert }

// resultFromErr maps an interpreter error onto its outcome.
func resultFromErr(err error) InstructionResult {
	var (
		underflow *ErrStackUnderflow
		overflow  *ErrStackOverflow
		invalid   *ErrInvalidOpCode
		inactive  *ErrNotActivated
	)
	switch {
	case err == nil:
		return Continue
	case errors.Is(err, errStopToken):
		return Stop
	case errors.Is(err, errReturnToken):
		return Return
	case errors.Is(err, ErrExecutionReverted):
		return Revert
	case errors.Is(err, ErrOutOfGas), errors.Is(err, ErrGasUintOverflow):
		return OutOfGas
	case errors.Is(err, ErrInvalidJump):
		return InvalidJump
	case errors.Is(err, ErrOutOfOffset), errors.Is(err, ErrReturnDataOutOfBounds):
		return OutOfOffset
	case errors.Is(err, ErrInvalidFEOpcode):
		return InvalidOpcode
	case errors.As(err, &underflow):
		return StackUnderflow
	case errors.As(err, &overflow):
		return StackOverflow
	case errors.As(err, &invalid):
		return OpcodeNotFound
	case errors.As(err, &inactive):
		return NotActivated
	}
	panic(fmt.Sprintf("unclassified interpreter error: %v", err))
}
