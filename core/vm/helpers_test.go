package vm

import (
	"strings"
	"testing"

	"github.com/bnb-chain/bsc-evm/params"
	"github.com/bnb-chain/bsc-evm/params/forks"
	"github.com/ethereum/go-ethereum/common"
)

// hexToBytes decodes hex that may contain spaces for readability.
func hexToBytes(s string) []byte {
	return common.FromHex(strings.ReplaceAll(s, " ", ""))
}

var (
	testCaller  = common.HexToAddress("0xc0ffee")
	testAddress = common.HexToAddress("0xc0de")
)

func newTestInterpreter(code, input []byte, gas uint64, fork forks.Fork, cfg Config) *EVMInterpreter {
	contract := NewContract(testCaller, testAddress, nil, NewBytecode(code), input)
	return NewEVMInterpreter(contract, gas, params.RulesForFork(fork), cfg)
}

// execute runs code to completion on a fresh interpreter.
func execute(t testing.TB, code string, input []byte, gas uint64, fork forks.Fork) *ExecutionResult {
	t.Helper()
	in := newTestInterpreter(hexToBytes(code), input, gas, fork, Config{})
	defer in.Close()
	return in.Run()
}

// stepUntilHalt runs code and returns the interpreter without releasing it, so
// the final stack and memory can be inspected.
func stepUntilHalt(t testing.TB, code string, gas uint64, fork forks.Fork) *EVMInterpreter {
	t.Helper()
	in := newTestInterpreter(hexToBytes(code), nil, gas, fork, Config{})
	t.Cleanup(in.Close)
	for in.Step() == Continue {
	}
	return in
}

func newRules(fork forks.Fork) params.Rules {
	return params.RulesForFork(fork)
}
