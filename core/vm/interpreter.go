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

	"github.com/bnb-chain/bsc-evm/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Config are the configuration options for the Interpreter
type Config struct {
	Tracer    *tracing.Hooks
	ExtraEips []int // Additional EIPS that are to be enabled
}

// ScopeContext contains the things that are per-call, such as stack and memory,
// but not transients like pc and gas
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

// MemoryData returns the underlying memory slice. Callers must not modify the contents
// of the returned data.
func (ctx *ScopeContext) MemoryData() []byte {
	if ctx.Memory == nil {
		return nil
	}
	return ctx.Memory.Data()
}

// StackData returns the stack data. Callers must not modify the contents
// of the returned data.
func (ctx *ScopeContext) StackData() []uint256.Int {
	if ctx.Stack == nil {
		return nil
	}
	return ctx.Stack.Data()
}

// Caller returns the current caller.
func (ctx *ScopeContext) Caller() common.Address {
	return ctx.Contract.Caller()
}

// Address returns the address where this scope of execution is taking place.
func (ctx *ScopeContext) Address() common.Address {
	return ctx.Contract.Address()
}

// CallValue returns the value supplied with this call.
func (ctx *ScopeContext) CallValue() *uint256.Int {
	return ctx.Contract.Value()
}

// CallInput returns the input/calldata with this call. Callers must not modify
// the contents of the returned data.
func (ctx *ScopeContext) CallInput() []byte {
	return ctx.Contract.Input
}

// ContractCode returns the code of the contract being executed.
func (ctx *ScopeContext) ContractCode() []byte {
	return ctx.Contract.Code.Original()
}

// Action tells the host what the interpreter needs next.
type Action uint8

const (
	// ActionContinue means the frame has not halted yet.
	ActionContinue Action = iota
	// ActionReturn means the frame halted and Result is final.
	ActionReturn
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionReturn:
		return "return"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ExecutionResult is the outcome of a halted frame.
type ExecutionResult struct {
	Output []byte            // Returned or reverted data, owned by the result
	Gas    Gas               // Final gas accounting
	Result InstructionResult // Outcome of the last instruction
	Err    error             // Any error encountered during execution, nil on Stop and Return
}

// UsedGas returns the gas consumed by the frame.
func (result *ExecutionResult) UsedGas() uint64 {
	return result.Gas.Spent()
}

// Failed returns the indicator whether the execution is successful or not
func (result *ExecutionResult) Failed() bool { return result.Err != nil }

// Return is a helper function to help caller distinguish between revert reason
// and function return. Return returns the data after execution if no error occurs.
func (result *ExecutionResult) Return() []byte {
	if result.Err != nil {
		return nil
	}
	return common.CopyBytes(result.Output)
}

// Revert returns the concrete revert reason if the execution is aborted by `REVERT`
// opcode. Note the reason can be nil if no data supplied with revert opcode.
func (result *ExecutionResult) Revert() []byte {
	if result.Result != Revert {
		return nil
	}
	return common.CopyBytes(result.Output)
}

// EVMInterpreter represents an EVM interpreter executing exactly one frame.
// It is not safe for concurrent use.
type EVMInterpreter struct {
	table *JumpTable
	rules params.Rules
	cfg   Config

	contract *Contract
	scope    *ScopeContext
	gas      Gas

	// For optimisation reason we're using uint64 as the program counter.
	// It's theoretically possible to go above 2^64. The YP defines the PC
	// to be uint256. Practically much less so feasible.
	pc    uint64
	steps uint64

	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes

	returnData []byte // Last CALL's return data for subsequent reuse

	entered bool
	result  InstructionResult
	output  []byte
	err     error
}

// NewEVMInterpreter returns an interpreter for one frame of contract, holding
// gasLimit gas and following the given rules.
func NewEVMInterpreter(contract *Contract, gasLimit uint64, rules params.Rules, cfg Config) *EVMInterpreter {
	table := instructionSetForRules(rules)

	var extraEips []int
	if len(cfg.ExtraEips) > 0 {
		// Deep-copy jumptable to prevent modification of opcodes in other tables
		table = copyJumpTable(table)
	}
	for _, eip := range cfg.ExtraEips {
		if err := EnableEIP(eip, table); err != nil {
			// Disable it, so caller can check if it's activated or not
			log.Error("EIP activation failed", "eip", eip, "error", err)
		} else {
			extraEips = append(extraEips, eip)
		}
	}
	cfg.ExtraEips = extraEips

	return &EVMInterpreter{
		table:    table,
		rules:    rules,
		cfg:      cfg,
		contract: contract,
		scope: &ScopeContext{
			Memory:   NewMemory(),
			Stack:    newstack(),
			Contract: contract,
		},
		gas: NewGas(gasLimit),
	}
}

// Config returns the effective configuration. ExtraEips only lists the EIPs
// that were activated successfully.
func (in *EVMInterpreter) Config() Config { return in.cfg }

// Rules returns the rules the interpreter was built for.
func (in *EVMInterpreter) Rules() params.Rules { return in.rules }

// PC returns the offset of the next instruction.
func (in *EVMInterpreter) PC() uint64 { return in.pc }

// Gas returns a snapshot of the gas meter.
func (in *EVMInterpreter) Gas() Gas { return in.gas }

// Steps returns the number of instructions fetched so far.
func (in *EVMInterpreter) Steps() uint64 { return in.steps }

// Scope exposes the frame's stack, memory and contract.
func (in *EVMInterpreter) Scope() *ScopeContext { return in.scope }

// InstructionResult returns the outcome of the last executed instruction.
func (in *EVMInterpreter) InstructionResult() InstructionResult { return in.result }

// SetReturnData installs the buffer seen by RETURNDATASIZE and RETURNDATACOPY.
func (in *EVMInterpreter) SetReturnData(data []byte) {
	in.returnData = data
}

// Action reports whether the host should keep stepping.
func (in *EVMInterpreter) Action() Action {
	if in.result.IsHalt() {
		return ActionReturn
	}
	return ActionContinue
}

// Step executes exactly one instruction and returns its outcome. Once a
// halting outcome is reached it is returned unchanged by every further call.
func (in *EVMInterpreter) Step() InstructionResult {
	if in.result.IsHalt() {
		return in.result
	}
	var (
		pc        = in.pc
		op        = in.contract.GetOp(pc)
		operation = in.table[op]
		gasCopy   = in.gas.Remaining() // for Tracer to log gas remaining before execution
		hooks     = in.cfg.Tracer
		res       []byte
	)
	if hooks != nil && !in.entered && hooks.OnEnter != nil {
		hooks.OnEnter(0, byte(CALL), in.contract.Caller(), in.contract.Address(), in.contract.Input, gasCopy, in.contract.Value().ToBig())
	}
	in.entered = true
	in.steps++
	opcodeCount.Inc(1)

	cost, err := in.charge(operation)
	if hooks != nil && hooks.OnOpcode != nil {
		in.cfg.Tracer.OnOpcode(pc, byte(op), gasCopy, cost, in.scope, in.returnData, 1, err)
	}
	if err == nil {
		// execute the operation
		res, err = operation.execute(&in.pc, in, in.scope)
	}
	if err == nil {
		in.pc++
		return Continue
	}
	in.halt(pc, op, gasCopy, cost, res, err)
	return in.result
}

// charge pays the constant cost, validates the stack and pays the dynamic
// cost, expanding memory when the operation needs it. An operation that cannot
// afford its constant cost fails with out of gas whatever the stack holds.
func (in *EVMInterpreter) charge(operation *operation) (uint64, error) {
	cost := operation.constantGas
	if !in.gas.RecordCost(cost) {
		return cost, ErrOutOfGas
	}
	if sLen := in.scope.Stack.len(); sLen < operation.minStack {
		return cost, &ErrStackUnderflow{stackLen: sLen, required: operation.minStack}
	} else if sLen > operation.maxStack {
		return cost, &ErrStackOverflow{stackLen: sLen, limit: operation.maxStack}
	}
	if operation.dynamicGas == nil {
		return cost, nil
	}
	// All ops with a dynamic memory usage also has a dynamic gas cost.
	var memorySize uint64
	if operation.memorySize != nil {
		memSize, overflow := operation.memorySize(in.scope.Stack)
		if overflow {
			return cost, ErrOutOfOffset
		}
		// memory is expanded in words of 32 bytes. Gas
		// is also calculated in words.
		if memorySize, overflow = math.SafeMul(toWordSize(memSize), 32); overflow {
			return cost, ErrOutOfOffset
		}
	}
	// Consume the gas and return an error if not enough gas is available.
	// cost is explicitly set so that the capture state defer method can get the proper cost
	dynamicCost, err := operation.dynamicGas(in, in.scope, memorySize)
	cost += dynamicCost // for tracing
	if errors.Is(err, ErrReturnDataOutOfBounds) {
		if !in.gas.RecordCost(dynamicCost) {
			return cost, ErrOutOfGas
		}
		return cost, err
	}
	if err != nil {
		return cost, fmt.Errorf("%w: %v", ErrOutOfGas, err)
	}
	if !in.gas.RecordCost(dynamicCost) {
		return cost, ErrOutOfGas
	}
	if memorySize > 0 {
		in.scope.Memory.Resize(memorySize)
	}
	return cost, nil
}

func (in *EVMInterpreter) halt(pc uint64, op OpCode, gas, cost uint64, res []byte, err error) {
	in.result = resultFromErr(err)
	switch in.result {
	case Stop:
		in.err = nil
	case Return:
		in.output, in.err = res, nil
	case Revert:
		in.output, in.err = res, err
	default:
		in.err = err
		log.Debug("Execution stopped due to error", "pc", pc, "op", op.String(), "result", in.result, "err", err)
	}
	markHalt(in.result)

	if hooks := in.cfg.Tracer; hooks != nil {
		if in.err != nil && hooks.OnFault != nil {
			hooks.OnFault(pc, byte(op), gas, cost, in.scope, 1, in.err)
		}
		if hooks.OnExit != nil {
			hooks.OnExit(0, in.output, in.gas.Spent(), in.err, in.result.IsRevert())
		}
	}
}

// Run steps until the frame halts and returns its result.
func (in *EVMInterpreter) Run() *ExecutionResult {
	for in.Step() == Continue {
	}
	return in.Result()
}

// Result returns the frame result, or nil while the frame is still running.
func (in *EVMInterpreter) Result() *ExecutionResult {
	if !in.result.IsHalt() {
		return nil
	}
	return &ExecutionResult{
		Output: in.output,
		Gas:    in.gas,
		Result: in.result,
		Err:    in.err,
	}
}

// SpendAllGas burns the remaining gas. Hosts apply it after exceptional halts.
func (in *EVMInterpreter) SpendAllGas() {
	in.gas.SpendAll()
}

// Close returns the stack and memory to their pools. The interpreter must not
// be stepped afterwards; results already obtained stay valid.
func (in *EVMInterpreter) Close() {
	if in.scope.Stack != nil {
		returnStack(in.scope.Stack)
		in.scope.Stack = nil
	}
	if in.scope.Memory != nil {
		in.scope.Memory.Free()
		in.scope.Memory = nil
	}
}
