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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bnb-chain/bsc-evm/params"
	"github.com/bnb-chain/bsc-evm/params/forks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type TwoOperandTestcase struct {
	X        string
	Y        string
	Expected string
}

var commonParams []*twoOperandParams
var twoOpMethods map[string]executionFunc

type twoOperandParams struct {
	x string
	y string
}

func init() {
	// Params is a list of common edgecases that should be used for some common tests
	params := []string{
		"0000000000000000000000000000000000000000000000000000000000000000", // 0
		"0000000000000000000000000000000000000000000000000000000000000001", // +1
		"0000000000000000000000000000000000000000000000000000000000000005", // +5
		"7ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe", // + max -1
		"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", // + max
		"8000000000000000000000000000000000000000000000000000000000000000", // - max
		"8000000000000000000000000000000000000000000000000000000000000001", // - max+1
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffb", // - 5
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", // - 1
	}
	// Params are combined so each param is used on each 'side'
	commonParams = make([]*twoOperandParams, len(params)*len(params))
	for i, x := range params {
		for j, y := range params {
			commonParams[i*len(params)+j] = &twoOperandParams{x, y}
		}
	}
	twoOpMethods = map[string]executionFunc{
		"add":     opAdd,
		"sub":     opSub,
		"mul":     opMul,
		"div":     opDiv,
		"sdiv":    opSdiv,
		"mod":     opMod,
		"smod":    opSmod,
		"exp":     opExp,
		"signext": opSignExtend,
		"lt":      opLt,
		"gt":      opGt,
		"slt":     opSlt,
		"sgt":     opSgt,
		"eq":      opEq,
		"and":     opAnd,
		"or":      opOr,
		"xor":     opXor,
		"byte":    opByte,
		"shl":     opSHL,
		"shr":     opSHR,
		"sar":     opSAR,
	}
}

func newTestScope() (*EVMInterpreter, *ScopeContext) {
	in := newTestInterpreter(nil, nil, 0, forks.Latest, Config{})
	return in, in.scope
}

func testTwoOperandOp(t *testing.T, tests []TwoOperandTestcase, opFn executionFunc, name string) {
	var (
		in, scope = newTestScope()
		pc        = uint64(0)
	)
	defer in.Close()
	for i, test := range tests {
		x := new(uint256.Int).SetBytes(common.Hex2Bytes(test.X))
		y := new(uint256.Int).SetBytes(common.Hex2Bytes(test.Y))
		expected := new(uint256.Int).SetBytes(common.Hex2Bytes(test.Expected))
		scope.Stack.push(x)
		scope.Stack.push(y)
		opFn(&pc, in, scope)
		if len(scope.Stack.data) != 1 {
			t.Errorf("Expected one item on stack after %v, got %d: ", name, len(scope.Stack.data))
		}
		actual := scope.Stack.pop()

		if actual.Cmp(expected) != 0 {
			t.Errorf("Testcase %v %d, %v(%x, %x): expected  %x, got %x", name, i, name, x, y, expected, actual)
		}
	}
}

func TestByteOp(t *testing.T) {
	tests := []TwoOperandTestcase{
		{"ABCDEF0908070605040302010000000000000000000000000000000000000000", "00", "AB"},
		{"ABCDEF0908070605040302010000000000000000000000000000000000000000", "01", "CD"},
		{"00CDEF090807060504030201ffffffffffffffffffffffffffffffffffffffff", "00", "00"},
		{"00CDEF090807060504030201ffffffffffffffffffffffffffffffffffffffff", "01", "CD"},
		{"0000000000000000000000000000000000000000000000000000000000102030", "1F", "30"},
		{"0000000000000000000000000000000000000000000000000000000000102030", "1E", "20"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "20", "00"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "FFFFFFFFFFFFFFFF", "00"},
	}
	testTwoOperandOp(t, tests, opByte, "byte")
}

func TestSHL(t *testing.T) {
	// Testcases from https://github.com/ethereum/EIPs/blob/master/EIPS/eip-145.md#shl-shift-left
	tests := []TwoOperandTestcase{
		{"0000000000000000000000000000000000000000000000000000000000000001", "01", "0000000000000000000000000000000000000000000000000000000000000002"},
		{"0000000000000000000000000000000000000000000000000000000000000001", "ff", "8000000000000000000000000000000000000000000000000000000000000000"},
		{"0000000000000000000000000000000000000000000000000000000000000001", "0100", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"0000000000000000000000000000000000000000000000000000000000000001", "0101", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "00", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "01", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "ff", "8000000000000000000000000000000000000000000000000000000000000000"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "0100", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"0000000000000000000000000000000000000000000000000000000000000000", "01", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "01", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
	}
	testTwoOperandOp(t, tests, opSHL, "shl")
}

func TestSHR(t *testing.T) {
	// Testcases from https://github.com/ethereum/EIPs/blob/master/EIPS/eip-145.md#shr-logical-shift-right
	tests := []TwoOperandTestcase{
		{"0000000000000000000000000000000000000000000000000000000000000001", "00", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"0000000000000000000000000000000000000000000000000000000000000001", "01", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "01", "4000000000000000000000000000000000000000000000000000000000000000"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "ff", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "0100", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "0101", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "00", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "01", "7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "ff", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "0100", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"0000000000000000000000000000000000000000000000000000000000000000", "01", "0000000000000000000000000000000000000000000000000000000000000000"},
	}
	testTwoOperandOp(t, tests, opSHR, "shr")
}

func TestSAR(t *testing.T) {
	// Testcases from https://github.com/ethereum/EIPs/blob/master/EIPS/eip-145.md#sar-arithmetic-shift-right
	tests := []TwoOperandTestcase{
		{"0000000000000000000000000000000000000000000000000000000000000001", "00", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"0000000000000000000000000000000000000000000000000000000000000001", "01", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "01", "c000000000000000000000000000000000000000000000000000000000000000"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "ff", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "0100", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"8000000000000000000000000000000000000000000000000000000000000000", "0101", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "00", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "01", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "ff", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "0100", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"0000000000000000000000000000000000000000000000000000000000000000", "01", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"4000000000000000000000000000000000000000000000000000000000000000", "fe", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "f8", "000000000000000000000000000000000000000000000000000000000000007f"},
		{"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "fe", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "ff", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "0100", "0000000000000000000000000000000000000000000000000000000000000000"},
	}

	testTwoOperandOp(t, tests, opSAR, "sar")
}

func TestAddMod(t *testing.T) {
	var (
		in, scope = newTestScope()
		pc        = uint64(0)
	)
	defer in.Close()
	tests := []struct {
		x        string
		y        string
		z        string
		expected string
	}{
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe",
			"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe",
		},
	}
	// x + y = 0x1fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd
	// in 256 bit repr, fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd

	for i, test := range tests {
		x := new(uint256.Int).SetBytes(common.Hex2Bytes(test.x))
		y := new(uint256.Int).SetBytes(common.Hex2Bytes(test.y))
		z := new(uint256.Int).SetBytes(common.Hex2Bytes(test.z))
		expected := new(uint256.Int).SetBytes(common.Hex2Bytes(test.expected))
		scope.Stack.push(z)
		scope.Stack.push(y)
		scope.Stack.push(x)
		opAddmod(&pc, in, scope)
		actual := scope.Stack.pop()
		if actual.Cmp(expected) != 0 {
			t.Errorf("Testcase %d, expected  %x, got %x", i, expected, actual)
		}
	}
}

// TestTwoOperandSymmetry checks the commutative operations against each other
// on the common edge cases.
func TestTwoOperandSymmetry(t *testing.T) {
	in, scope := newTestScope()
	defer in.Close()
	var pc uint64
	for _, name := range []string{"add", "mul", "and", "or", "xor", "eq"} {
		op := twoOpMethods[name]
		for _, param := range commonParams {
			x := new(uint256.Int).SetBytes(common.Hex2Bytes(param.x))
			y := new(uint256.Int).SetBytes(common.Hex2Bytes(param.y))

			scope.Stack.push(x)
			scope.Stack.push(y)
			op(&pc, in, scope)
			a := scope.Stack.pop()

			scope.Stack.push(y)
			scope.Stack.push(x)
			op(&pc, in, scope)
			b := scope.Stack.pop()
			if !a.Eq(&b) {
				t.Errorf("%s(%s, %s) not symmetric: %x != %x", name, param.x, param.y, a, b)
			}
		}
	}
}

func TestOpMstore(t *testing.T) {
	var (
		in, scope = newTestScope()
		pc        = uint64(0)
	)
	defer in.Close()
	mem := scope.Memory
	mem.Resize(64)
	v := "abcdef00000000000000abba000000000deaf000000c0de00100000000133700"
	scope.Stack.push(new(uint256.Int).SetBytes(common.Hex2Bytes(v)))
	scope.Stack.push(new(uint256.Int))
	opMstore(&pc, in, scope)
	if got := common.Bytes2Hex(mem.GetCopy(0, 32)); got != v {
		t.Fatalf("Mstore fail, got %v, expected %v", got, v)
	}
	scope.Stack.push(new(uint256.Int).SetUint64(0x1))
	scope.Stack.push(new(uint256.Int))
	opMstore(&pc, in, scope)
	if common.Bytes2Hex(mem.GetCopy(0, 32)) != "0000000000000000000000000000000000000000000000000000000000000001" {
		t.Fatalf("Mstore failed to overwrite previous value")
	}
}

func TestOpMstore8AndMload(t *testing.T) {
	// PUSH2 0x1234 PUSH1 0x1f MSTORE8 PUSH1 0 MLOAD PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
	res := execute(t, "611234 601f 53 6000 51 6000 52 6020 6000 f3", nil, 100_000, forks.Latest)
	require.Equal(t, Return, res.Result)
	want := make([]byte, 32)
	want[31] = 0x34
	require.Equal(t, want, res.Output)
}

func TestKeccak256(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		// PUSH1 0 PUSH32 0xff..ff KECCAK256 PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
		code := "6000 7f" + strings.Repeat("ff", 32) + " 20 6000 52 6020 6000 f3"
		res := execute(t, code, nil, 100_000, forks.Latest)
		require.Equal(t, Return, res.Result, "err: %v", res.Err)
		require.Equal(t, crypto.Keccak256(nil), res.Output)
		// no expansion is charged for the hash itself, only for the MSTORE
		require.Equal(t, uint64(3+3+30+3+3+3+3+3), res.UsedGas())
	})
	t.Run("empty-no-memory", func(t *testing.T) {
		in := stepUntilHalt(t, "6000 7f"+strings.Repeat("ff", 32)+" 20 59", 100_000, forks.Latest)
		require.Equal(t, Stop, in.InstructionResult())
		require.Equal(t, 0, in.scope.Memory.Len())
		// MSIZE on top, then the hash
		require.True(t, in.scope.Stack.Back(0).IsZero())
		require.Equal(t, crypto.Keccak256(nil), common.Hash(in.scope.Stack.Back(1).Bytes32()).Bytes())
	})
	t.Run("one-word", func(t *testing.T) {
		// PUSH1 0x20 PUSH1 0 KECCAK256 PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
		res := execute(t, "6020 6000 20 6000 52 6020 6000 f3", nil, 100_000, forks.Latest)
		require.Equal(t, Return, res.Result)
		require.Equal(t, crypto.Keccak256(make([]byte, 32)), res.Output)
		require.Equal(t, uint64(3+3+(30+6+3)+3+3+3+3), res.UsedGas())
	})
	t.Run("word-rounding", func(t *testing.T) {
		// 33 bytes are two words: PUSH1 0x21 PUSH1 0 KECCAK256
		res := execute(t, "6021 6000 20", nil, 100_000, forks.Latest)
		require.Equal(t, Stop, res.Result)
		require.Equal(t, uint64(3+3+30+2*6+MemoryCost(2)), res.UsedGas())
	})
}

func TestCallDataLoad(t *testing.T) {
	input := make([]byte, 42)
	for i := range input {
		input[i] = byte(i + 1)
	}
	// PUSH1 <index> CALLDATALOAD PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
	load := func(index string) []byte {
		res := execute(t, "60"+index+" 35 6000 52 6020 6000 f3", input, 100_000, forks.Latest)
		require.Equal(t, Return, res.Result)
		return res.Output
	}
	require.Equal(t, input[:32], load("00"))
	require.Equal(t, append(common.CopyBytes(input[32:42]), make([]byte, 22)...), load("20"))
	require.Equal(t, make([]byte, 32), load("2a"))
	require.Equal(t, make([]byte, 32), load("ff"))

	// an index that does not fit in 64 bits reads zero
	res := execute(t, "7f"+strings.Repeat("ff", 32)+" 35 6000 52 6020 6000 f3", input, 100_000, forks.Latest)
	require.Equal(t, make([]byte, 32), res.Output)
}

func TestCallDataCopy(t *testing.T) {
	input := []byte{1, 2, 3, 4}
	// PUSH1 8 (len) PUSH1 2 (src) PUSH1 0 (dst) CALLDATACOPY PUSH1 8 PUSH1 0 RETURN
	res := execute(t, "6008 6002 6000 37 6008 6000 f3", input, 100_000, forks.Latest)
	require.Equal(t, Return, res.Result)
	require.Equal(t, []byte{3, 4, 0, 0, 0, 0, 0, 0}, res.Output)
	require.Equal(t, uint64(3+3+3+(3+3+3)+3+3), res.UsedGas())

	// zero length with a huge destination is a no-op
	res = execute(t, "6000 6000 7f"+strings.Repeat("ff", 32)+" 37 59", input, 100_000, forks.Latest)
	require.Equal(t, Stop, res.Result, "err: %v", res.Err)
	require.Equal(t, uint64(3+3+3+3+2), res.UsedGas())
}

func TestCodeCopyAndSize(t *testing.T) {
	// PUSH1 0x20 PUSH1 0 PUSH1 0 CODECOPY PUSH1 0x20 PUSH1 0 RETURN
	code := "6020 6000 6000 39 6020 6000 f3"
	res := execute(t, code, nil, 100_000, forks.Latest)
	require.Equal(t, Return, res.Result)
	original := hexToBytes(code)
	require.Equal(t, append(original, make([]byte, 32-len(original))...), res.Output)

	// a source offset past the end copies zeroes
	res = execute(t, "6004 7f"+strings.Repeat("ff", 32)+" 6000 39 6004 6000 f3", nil, 100_000, forks.Latest)
	require.Equal(t, Return, res.Result)
	require.Equal(t, make([]byte, 4), res.Output)

	// CODESIZE reports the unpadded length
	in := stepUntilHalt(t, "38 00", 100, forks.Latest)
	require.Equal(t, uint64(2), in.scope.Stack.peek().Uint64())
}

func TestContextOpcodes(t *testing.T) {
	code := hexToBytes("30 33 34 36 00") // ADDRESS CALLER CALLVALUE CALLDATASIZE STOP
	contract := NewContract(testCaller, testAddress, uint256.NewInt(7), NewBytecode(code), []byte{1, 2, 3})
	in := NewEVMInterpreter(contract, 100, newRules(forks.Latest), Config{})
	defer in.Close()
	res := in.Run()
	require.Equal(t, Stop, res.Result)
	require.Equal(t, uint64(4*GasQuickStep), res.UsedGas())

	st := in.scope.Stack
	require.Equal(t, uint64(3), st.Back(0).Uint64())
	require.Equal(t, uint64(7), st.Back(1).Uint64())
	require.Equal(t, testCaller, common.Address(st.Back(2).Bytes20()))
	require.Equal(t, testAddress, common.Address(st.Back(3).Bytes20()))
}

func TestReturnDataCopy(t *testing.T) {
	data := []byte{0xa, 0xb, 0xc, 0xd}
	run := func(code string) *ExecutionResult {
		in := newTestInterpreter(hexToBytes(code), nil, 100_000, forks.Byzantium, Config{})
		defer in.Close()
		in.SetReturnData(data)
		return in.Run()
	}
	// RETURNDATASIZE PUSH1 0 PUSH1 0 RETURNDATACOPY PUSH1 4 PUSH1 0 RETURN
	res := run("3d 6000 6000 3e 6004 6000 f3")
	require.Equal(t, Return, res.Result)
	require.Equal(t, data, res.Output)

	for _, code := range []string{
		"6005 6000 6000 3e", // one byte too many
		"6001 6004 6000 3e", // starts at the end
		"6000 6005 6000 3e", // empty range past the end
		"6001 7f" + strings.Repeat("ff", 32) + " 6000 3e", // offset + length overflows
	} {
		res := run(code)
		require.Equal(t, OutOfOffset, res.Result, "code %s", code)
		require.ErrorIs(t, res.Err, ErrReturnDataOutOfBounds)
	}

	// The source range is checked before memory is priced: a far destination
	// does not turn the failure into out of gas.
	res = run("6001 6004 640100000000 3e")
	require.Equal(t, OutOfOffset, res.Result)
	require.ErrorIs(t, res.Err, ErrReturnDataOutOfBounds)

	// Nothing is paid for memory growth: three pushes, the constant cost and
	// one copy word.
	in := newTestInterpreter(hexToBytes("6001 6004 6000 3e"), nil, 100_000, forks.Byzantium, Config{})
	defer in.Close()
	in.SetReturnData(data)
	res = in.Run()
	require.Equal(t, OutOfOffset, res.Result)
	require.Equal(t, uint64(3*GasFastestStep+GasFastestStep+params.CopyGas), res.UsedGas())
	require.Zero(t, in.scope.Memory.Len())

	// The copy word is still charged before the range is rejected.
	short := newTestInterpreter(hexToBytes("6001 6004 6000 3e"), nil, 3*GasFastestStep+GasFastestStep+params.CopyGas-1, forks.Byzantium, Config{})
	defer short.Close()
	short.SetReturnData(data)
	require.Equal(t, OutOfGas, short.Run().Result)
}

func TestPush(t *testing.T) {
	code := common.FromHex("0011223344556677889900aabbccddeeff0102030405060708090a0b0c0d0e0ff1e1d1c1b1a19181716151413121")

	push32 := makePush(32)

	in, scope := newTestScope()
	defer in.Close()
	scope.Contract = NewContract(common.Address{}, common.Address{}, nil, NewBytecode(code), nil)
	for i := range code {
		pc := uint64(i)
		push32(&pc, in, scope)
		res := scope.Stack.pop()
		{
			// We're pushing 32 'big-endian' bytes, so the rightmost
			// byte must be the one at pc+32
			want := new(uint256.Int)
			if i+32 < len(code) {
				want.SetBytes(code[i+1 : i+33])
			} else {
				tail := make([]byte, 32)
				copy(tail, code[i+1:])
				want.SetBytes(tail)
			}
			if !res.Eq(want) {
				t.Errorf("pc %d: have %#x want %#x", i, res.Bytes32(), want.Bytes32())
			}
		}
		if pc != uint64(i)+32 {
			t.Errorf("pc %d: advanced to %d", i, pc)
		}
	}
}

func TestPushTruncatedAtEnd(t *testing.T) {
	// PUSH4 0x1122 with the last two immediate bytes missing
	in := stepUntilHalt(t, "631122", 100, forks.Latest)
	require.Equal(t, Stop, in.InstructionResult())
	require.Equal(t, uint64(0x11220000), in.scope.Stack.peek().Uint64())
}

func TestDupSwap(t *testing.T) {
	var code string
	for i := 1; i <= 16; i++ {
		code += fmt.Sprintf("60%02x", i)
	}
	// stack top-first: 16 15 ... 1
	in := stepUntilHalt(t, code+"8f", 100_000, forks.Latest) // DUP16
	require.Equal(t, uint64(1), in.scope.Stack.peek().Uint64())
	require.Equal(t, 17, in.scope.Stack.len())

	in = stepUntilHalt(t, code+"9f", 100_000, forks.Latest) // SWAP16 needs 17 items
	require.Equal(t, StackUnderflow, in.InstructionResult())

	in = stepUntilHalt(t, code+"9e", 100_000, forks.Latest) // SWAP15
	require.Equal(t, Stop, in.InstructionResult())
	require.Equal(t, uint64(1), in.scope.Stack.Back(0).Uint64())
	require.Equal(t, uint64(16), in.scope.Stack.Back(15).Uint64())
}

func TestMcopyOpcode(t *testing.T) {
	// PUSH32 v PUSH1 0x20 MSTORE; PUSH1 0x20 (len) PUSH1 0x20 (src) PUSH1 0 (dst) MCOPY; PUSH1 0x40 PUSH1 0 RETURN
	v := strings.Repeat("ab", 32)
	code := "7f" + v + " 6020 52 6020 6020 6000 5e 6040 6000 f3"
	res := execute(t, code, nil, 100_000, forks.Cancun)
	require.Equal(t, Return, res.Result)
	require.Equal(t, hexToBytes(v+v), res.Output)

	res = execute(t, code, nil, 100_000, forks.Shanghai)
	require.Equal(t, NotActivated, res.Result)
	var inactive *ErrNotActivated
	require.True(t, errors.As(res.Err, &inactive))
}

func TestGasOpcode(t *testing.T) {
	in := stepUntilHalt(t, "5a 00", 100, forks.Latest)
	require.Equal(t, uint64(100-GasQuickStep), in.scope.Stack.peek().Uint64())
}

func TestPcOpcode(t *testing.T) {
	// PUSH1 0 PC JUMPDEST PC
	in := stepUntilHalt(t, "6000 58 5b 58", 100, forks.Latest)
	require.Equal(t, uint64(4), in.scope.Stack.Back(0).Uint64())
	require.Equal(t, uint64(2), in.scope.Stack.Back(1).Uint64())
}

func TestMsize(t *testing.T) {
	// PUSH1 0 MLOAD POP MSIZE
	in := stepUntilHalt(t, "6001 51 50 59", 100, forks.Latest)
	require.Equal(t, uint64(64), in.scope.Stack.peek().Uint64())
}

func BenchmarkOpKeccak256(bench *testing.B) {
	in, scope := newTestScope()
	defer in.Close()
	mem := scope.Memory
	mem.Resize(32)
	pc := uint64(0)
	start := new(uint256.Int)

	bench.ResetTimer()
	for i := 0; i < bench.N; i++ {
		scope.Stack.push(uint256.NewInt(32))
		scope.Stack.push(start)
		opKeccak256(&pc, in, scope)
		scope.Stack.pop()
	}
}

func BenchmarkOpMstore(bench *testing.B) {
	in, scope := newTestScope()
	defer in.Close()
	mem := scope.Memory
	mem.Resize(64)
	pc := uint64(0)
	memStart := new(uint256.Int)
	value := new(uint256.Int).SetUint64(0x1337)

	bench.ResetTimer()
	for i := 0; i < bench.N; i++ {
		scope.Stack.push(value)
		scope.Stack.push(memStart)
		opMstore(&pc, in, scope)
	}
}
