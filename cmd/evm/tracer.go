// Copyright 2017 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"io"

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/tracing"
)

// structLog is emitted for every executed instruction.
type structLog struct {
	Pc      uint64         `json:"pc"`
	Op      vm.OpCode      `json:"op"`
	Gas     hexutil.Uint64 `json:"gas"`
	GasCost hexutil.Uint64 `json:"gasCost"`
	MemSize int            `json:"memSize"`
	Stack   []string       `json:"stack"`
	Depth   int            `json:"depth"`
	OpName  string         `json:"opName"`
	Err     string         `json:"error,omitempty"`
}

// exitLog is emitted once when the frame halts.
type exitLog struct {
	Output  hexutil.Bytes  `json:"output"`
	GasUsed hexutil.Uint64 `json:"gasUsed"`
	Err     string         `json:"error,omitempty"`
}

type jsonLogger struct {
	encoder *json.Encoder
}

// newJSONLogger returns hooks writing one JSON object per line to w.
func newJSONLogger(w io.Writer) *tracing.Hooks {
	l := &jsonLogger{encoder: json.NewEncoder(w)}
	return &tracing.Hooks{
		OnOpcode: l.OnOpcode,
		OnExit:   l.OnExit,
	}
}

func (l *jsonLogger) OnOpcode(pc uint64, op byte, gas, cost uint64, scope tracing.OpContext, rData []byte, depth int, err error) {
	stack := scope.StackData()
	log := structLog{
		Pc:      pc,
		Op:      vm.OpCode(op),
		Gas:     hexutil.Uint64(gas),
		GasCost: hexutil.Uint64(cost),
		MemSize: len(scope.MemoryData()),
		Stack:   make([]string, len(stack)),
		Depth:   depth,
		OpName:  vm.OpCode(op).String(),
	}
	for i := range stack {
		log.Stack[i] = stack[i].Hex()
	}
	if err != nil {
		log.Err = err.Error()
	}
	l.encoder.Encode(log)
}

func (l *jsonLogger) OnExit(depth int, output []byte, gasUsed uint64, err error, reverted bool) {
	log := exitLog{Output: output, GasUsed: hexutil.Uint64(gasUsed)}
	if err != nil {
		log.Err = err.Error()
	}
	l.encoder.Encode(log)
}
