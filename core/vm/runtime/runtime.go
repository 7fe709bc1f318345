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

package runtime

import (
	"context"
	"math"

	"github.com/bnb-chain/bsc-evm/common/gopool"
	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/bnb-chain/bsc-evm/params"
	"github.com/bnb-chain/bsc-evm/params/forks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	// checkInterval is the number of steps between two context checks.
	checkInterval = 1024

	defaultCacheSize = 1024
)

// sharedCache is used by every execution that does not bring its own cache.
var sharedCache = vm.NewAnalysisCache(defaultCacheSize)

// Config is a basic type specifying certain configuration flags for running
// the EVM.
type Config struct {
	Fork       string // fork name, see forks.Parse; empty means the latest fork
	GasLimit   uint64
	Origin     common.Address // caller of the frame
	Address    common.Address // address of the executing code
	Value      *uint256.Int
	ReturnData []byte // buffer seen by RETURNDATASIZE and RETURNDATACOPY

	EVMConfig vm.Config
	Cache     *vm.AnalysisCache
}

// sets defaults on the config
func setDefaults(cfg *Config) {
	if cfg.Fork == "" {
		cfg.Fork = forks.Latest.String()
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = math.MaxUint64
	}
	if cfg.Address == (common.Address{}) {
		cfg.Address = common.BytesToAddress([]byte("contract"))
	}
	if cfg.Value == nil {
		cfg.Value = new(uint256.Int)
	}
	if cfg.Cache == nil {
		cfg.Cache = sharedCache
	}
}

// NewInterpreter returns an interpreter for one frame of code, ready to be
// stepped. The caller owns it and must Close it. Its contract comes from the
// contract pool and may be handed back with vm.ReturnContract after Close.
func NewInterpreter(code, input []byte, cfg *Config) (*vm.EVMInterpreter, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	fork, err := forks.Parse(cfg.Fork)
	if err != nil {
		return nil, errors.Wrap(err, "invalid fork")
	}
	var (
		bytecode = cfg.Cache.Get(code)
		contract = vm.GetContract(cfg.Origin, cfg.Address, cfg.Value, bytecode, input)
		in       = vm.NewEVMInterpreter(contract, cfg.GasLimit, params.RulesForFork(fork), cfg.EVMConfig)
	)
	if cfg.ReturnData != nil {
		in.SetReturnData(cfg.ReturnData)
	}
	return in, nil
}

// Execute runs code with the given input as a single frame and returns its
// result once the frame halts.
//
// Exceptional halts consume all remaining gas; Stop, Return and Revert keep
// it. Execute stops early, without a result, when ctx is done.
func Execute(ctx context.Context, code, input []byte, cfg *Config) (*vm.ExecutionResult, error) {
	in, err := NewInterpreter(code, input, cfg)
	if err != nil {
		return nil, err
	}
	defer vm.ReturnContract(in.Scope().Contract)
	defer in.Close()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "execution not started")
	}
	for in.Step() == vm.Continue {
		if in.Steps()%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "execution interrupted at pc %d", in.PC())
			}
		}
	}
	if in.InstructionResult().IsError() {
		in.SpendAllGas()
	}
	res := in.Result()
	log.Debug("Executed code", "fork", in.Rules().Fork, "hash", in.Scope().Contract.Code.Hash(), "steps", in.Steps(), "gas", res.UsedGas(), "result", res.Result)
	return res, nil
}

// Call is one execution of a batch.
type Call struct {
	Code  []byte
	Input []byte

	// Config overrides the batch config for this call when set.
	Config *Config
}

// BatchResult is the outcome of one Call. Exactly one of Result and Err is set.
type BatchResult struct {
	Result *vm.ExecutionResult
	Err    error
}

// ExecuteBatch runs independent calls concurrently, one interpreter per call,
// and returns their outcomes in call order. Tracer hooks in cfg are shared by
// all calls and must be safe for concurrent use.
func ExecuteBatch(ctx context.Context, calls []Call, cfg *Config) []BatchResult {
	results := make([]BatchResult, len(calls))
	err := gopool.ForEach(len(calls), func(i int) {
		var c Config
		switch {
		case calls[i].Config != nil:
			c = *calls[i].Config
		case cfg != nil:
			c = *cfg
		}
		results[i].Result, results[i].Err = Execute(ctx, calls[i].Code, calls[i].Input, &c)
	})
	if err != nil {
		log.Warn("Batch ran with reduced parallelism", "calls", len(calls), "err", err)
	}
	return results
}
