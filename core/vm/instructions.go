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

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// emptyKeccak256 is the hash of the empty byte string.
var emptyKeccak256 = crypto.Keccak256Hash(nil)

// Arithmetic, comparison and bitwise opcodes share a handful of stack shapes.
// Operands are popped left to right, the result overwrites the slot that held
// the last operand.

// binaryOp applies fn(z, x, y) with x on top of the stack and y (and z) below.
func binaryOp(fn func(z, x, y *uint256.Int) *uint256.Int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		x, y := scope.Stack.pop(), scope.Stack.peek()
		fn(y, &x, y)
		return nil, nil
	}
}

// ternaryOp applies fn(z, x, y, m) to the top three words.
func ternaryOp(fn func(z, x, y, m *uint256.Int) *uint256.Int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		x, y := scope.Stack.pop2()
		m := scope.Stack.peek()
		fn(m, &x, &y, m)
		return nil, nil
	}
}

// predicateOp replaces the operands with 1 when cond holds and 0 otherwise.
func predicateOp(cond func(x, y *uint256.Int) bool) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		x, y := scope.Stack.pop(), scope.Stack.peek()
		setBool(y, cond(&x, y))
		return nil, nil
	}
}

// shiftOp pops the shift amount and shifts the word below it. Amounts of 256
// and more leave saturate(value).
func shiftOp(shift func(z *uint256.Int, n uint) *uint256.Int, saturate func(z *uint256.Int) *uint256.Int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		amount, value := scope.Stack.pop(), scope.Stack.peek()
		if n, overflow := amount.Uint64WithOverflow(); !overflow && n < 256 {
			shift(value, uint(n))
		} else {
			saturate(value)
		}
		return nil, nil
	}
}

func setBool(z *uint256.Int, b bool) {
	if b {
		z.SetOne()
	} else {
		z.Clear()
	}
}

var (
	opAdd  = binaryOp((*uint256.Int).Add)
	opSub  = binaryOp((*uint256.Int).Sub)
	opMul  = binaryOp((*uint256.Int).Mul)
	opDiv  = binaryOp((*uint256.Int).Div)
	opSdiv = binaryOp((*uint256.Int).SDiv)
	opMod  = binaryOp((*uint256.Int).Mod)
	opSmod = binaryOp((*uint256.Int).SMod)
	opExp  = binaryOp((*uint256.Int).Exp)
	opAnd  = binaryOp((*uint256.Int).And)
	opOr   = binaryOp((*uint256.Int).Or)
	opXor  = binaryOp((*uint256.Int).Xor)

	// SIGNEXTEND takes the byte index on top, BYTE takes the index on top
	// and the word below.
	opSignExtend = binaryOp(func(z, byteNum, x *uint256.Int) *uint256.Int { return z.ExtendSign(x, byteNum) })
	opByte       = binaryOp(func(z, index, _ *uint256.Int) *uint256.Int { return z.Byte(index) })

	opAddmod = ternaryOp((*uint256.Int).AddMod)
	opMulmod = ternaryOp((*uint256.Int).MulMod)

	opLt  = predicateOp((*uint256.Int).Lt)
	opGt  = predicateOp((*uint256.Int).Gt)
	opSlt = predicateOp((*uint256.Int).Slt)
	opSgt = predicateOp((*uint256.Int).Sgt)
	opEq  = predicateOp((*uint256.Int).Eq)

	opSHL = shiftOp(func(z *uint256.Int, n uint) *uint256.Int { return z.Lsh(z, n) }, (*uint256.Int).Clear)
	opSHR = shiftOp(func(z *uint256.Int, n uint) *uint256.Int { return z.Rsh(z, n) }, (*uint256.Int).Clear)
	opSAR = shiftOp(func(z *uint256.Int, n uint) *uint256.Int { return z.SRsh(z, n) }, fillSign)
)

// fillSign sets every bit of z to its sign bit.
func fillSign(z *uint256.Int) *uint256.Int {
	if z.Sign() >= 0 {
		return z.Clear()
	}
	return z.SetAllOne()
}

func opNot(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	x.Not(x)
	return nil, nil
}

func opIszero(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	setBool(x, x.IsZero())
	return nil, nil
}

func opKeccak256(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	if size.IsZero() {
		size.SetBytes(emptyKeccak256[:])
		return nil, nil
	}
	data := scope.Memory.GetPtr(offset.Uint64(), size.Uint64())

	if interpreter.hasher == nil {
		interpreter.hasher = crypto.NewKeccakState()
	} else {
		interpreter.hasher.Reset()
	}
	interpreter.hasher.Write(data)
	interpreter.hasher.Read(interpreter.hasherBuf[:])

	size.SetBytes(interpreter.hasherBuf[:])
	return nil, nil
}

func pushAddress(scope *ScopeContext, addr common.Address) {
	scope.Stack.push(new(uint256.Int).SetBytes20(addr.Bytes()))
}

func pushUint64(scope *ScopeContext, v uint64) {
	scope.Stack.push(new(uint256.Int).SetUint64(v))
}

// copyToMemory pops destOffset, srcOffset and length and copies that window
// of src into memory, zero filling past the end of src. Memory already covers
// the destination.
func copyToMemory(scope *ScopeContext, src []byte) {
	dst, from := scope.Stack.pop2()
	length := scope.Stack.pop()
	n := length.Uint64()
	scope.Memory.Set(dst.Uint64(), n, getData(src, saturatedUint64(&from), n))
}

func opAddress(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushAddress(scope, scope.Contract.Address())
	return nil, nil
}

func opCaller(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushAddress(scope, scope.Contract.Caller())
	return nil, nil
}

func opCallValue(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(scope.Contract.Value())
	return nil, nil
}

// opCallDataLoad reads a right-padded word of input. A saturated offset lies
// past any input and reads as zero.
func opCallDataLoad(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	index := scope.Stack.peek()
	index.SetBytes(getData(scope.Contract.Input, saturatedUint64(index), 32))
	return nil, nil
}

func opCallDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushUint64(scope, uint64(len(scope.Contract.Input)))
	return nil, nil
}

func opCallDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	copyToMemory(scope, scope.Contract.Input)
	return nil, nil
}

func opReturnDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushUint64(scope, uint64(len(interpreter.returnData)))
	return nil, nil
}

// opReturnDataCopy relies on gasReturnDataCopy having rejected any window that
// is not inside the return data.
func opReturnDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	copyToMemory(scope, interpreter.returnData)
	return nil, nil
}

func opCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushUint64(scope, uint64(scope.Contract.Code.Len()))
	return nil, nil
}

// opCodeCopy reads the original code only, the analysis padding stays hidden.
func opCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	copyToMemory(scope, scope.Contract.Code.Original())
	return nil, nil
}

func opPop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop()
	return nil, nil
}

func opMload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	v := scope.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(offset, 32))
	return nil, nil
}

func opMstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	mStart, val := scope.Stack.pop2()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	off, val := scope.Stack.pop2()
	scope.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

// jumpTo points pc just before dest, the driver advances it onto the
// JUMPDEST after the handler returns.
func jumpTo(pc *uint64, code *Bytecode, dest *uint256.Int) error {
	target, overflow := dest.Uint64WithOverflow()
	if overflow || !code.IsValidJump(target) {
		return ErrInvalidJump
	}
	*pc = target - 1
	return nil
}

func opJump(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest := scope.Stack.pop()
	return nil, jumpTo(pc, scope.Contract.Code, &dest)
}

func opJumpi(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest, cond := scope.Stack.pop2()
	if cond.IsZero() {
		return nil, nil
	}
	return nil, jumpTo(pc, scope.Contract.Code, &dest)
}

func opJumpdest(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

func opPc(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushUint64(scope, *pc)
	return nil, nil
}

func opMsize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushUint64(scope, uint64(scope.Memory.Len()))
	return nil, nil
}

func opGas(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	pushUint64(scope, interpreter.gas.Remaining())
	return nil, nil
}

// haltWithOutput ends the frame with an owned copy of the memory range on
// the stack. A zero size never looks at the offset.
func haltWithOutput(scope *ScopeContext, halt error) ([]byte, error) {
	offset, size := scope.Stack.pop2()
	if size.IsZero() {
		return nil, halt
	}
	return scope.Memory.GetCopy(offset.Uint64(), size.Uint64()), halt
}

func opReturn(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return haltWithOutput(scope, errReturnToken)
}

func opRevert(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return haltWithOutput(scope, ErrExecutionReverted)
}

func opStop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, errStopToken
}

// opInvalid implements the designated INVALID (0xfe) instruction.
func opInvalid(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, ErrInvalidFEOpcode
}

func opUndefined(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, &ErrInvalidOpCode{opcode: scope.Contract.GetOp(*pc)}
}

func opNotActivated(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, &ErrNotActivated{opcode: scope.Contract.GetOp(*pc), fork: interpreter.rules.Fork}
}

// make push instruction function
func makePush(size uint64) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		// The code is padded, the immediate is always in range and
		// bytes past the end of the original code read as zero.
		scope.Stack.push(new(uint256.Int).SetBytes(scope.Contract.Code.immediates(*pc, size)))
		*pc += size
		return nil, nil
	}
}

// make dup instruction function
func makeDup(size int64) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.dup(int(size))
		return nil, nil
	}
}

// make swap instruction function
func makeSwap(size int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.swap(size)
		return nil, nil
	}
}
