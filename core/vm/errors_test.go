package vm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bnb-chain/bsc-evm/params/forks"
	"github.com/stretchr/testify/require"
)

func TestResultFromErr(t *testing.T) {
	tests := []struct {
		err  error
		want InstructionResult
	}{
		{nil, Continue},
		{errStopToken, Stop},
		{errReturnToken, Return},
		{ErrExecutionReverted, Revert},
		{ErrOutOfGas, OutOfGas},
		{fmt.Errorf("%w: %v", ErrOutOfGas, ErrGasUintOverflow), OutOfGas},
		{ErrGasUintOverflow, OutOfGas},
		{ErrInvalidJump, InvalidJump},
		{ErrOutOfOffset, OutOfOffset},
		{ErrReturnDataOutOfBounds, OutOfOffset},
		{ErrInvalidFEOpcode, InvalidOpcode},
		{&ErrStackUnderflow{stackLen: 0, required: 2}, StackUnderflow},
		{&ErrStackOverflow{stackLen: 1024, limit: 1023}, StackOverflow},
		{&ErrInvalidOpCode{opcode: 0x0c}, OpcodeNotFound},
		{&ErrNotActivated{opcode: PUSH0, fork: forks.London}, NotActivated},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, resultFromErr(tt.err), "%v", tt.err)
	}
	require.Panics(t, func() { resultFromErr(errors.New("mystery")) })
}

func TestInstructionResultClasses(t *testing.T) {
	for r := Continue; r <= NotActivated; r++ {
		parsed, ok := ParseInstructionResult(r.String())
		require.True(t, ok, r.String())
		require.Equal(t, r, parsed)

		require.Equal(t, r != Continue, r.IsHalt(), r.String())
		classes := 0
		for _, c := range []bool{r.IsSuccess(), r.IsRevert(), r.IsError()} {
			if c {
				classes++
			}
		}
		if r == Continue {
			require.Zero(t, classes)
		} else {
			require.Equal(t, 1, classes, r.String())
		}
	}
	_, ok := ParseInstructionResult("Bogus")
	require.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "invalid opcode: opcode 0xc not defined", (&ErrInvalidOpCode{opcode: 0x0c}).Error())
	require.Equal(t, "opcode PUSH0 not activated in London", (&ErrNotActivated{opcode: PUSH0, fork: forks.London}).Error())
	require.Equal(t, "invalid opcode: INVALID", ErrInvalidFEOpcode.Error())
}
