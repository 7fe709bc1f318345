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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/bnb-chain/bsc-evm/core/vm/runtime"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var debugCommand = &cli.Command{
	Action:    debugCmd,
	Name:      "debug",
	Usage:     "Step through evm binary interactively",
	ArgsUsage: "<code>",
	Flags: []cli.Flag{
		CodeFlag,
		CodeFileFlag,
		InputFlag,
		GasFlag,
		ForkFlag,
		EipsFlag,
	},
	Description: `
The debug command loads the code into a single frame and executes it one
instruction at a time. Type 'help' at the prompt for the available commands.`,
}

const debugHelp = `step [n]   execute n instructions (default 1)
continue   execute until the frame halts
stack      print the stack, top first
memory     print the memory in 32 byte words
status     print the program counter, next opcode and gas
quit       leave the debugger
`

// debugger drives an interpreter from textual commands.
type debugger struct {
	in  *vm.EVMInterpreter
	out io.Writer
}

// exec runs one command line and reports whether the session is over.
func (d *debugger) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "s", "step":
		n := 1
		if len(fields) > 1 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v < 1 {
				fmt.Fprintf(d.out, "invalid step count %q\n", fields[1])
				return false
			}
			n = v
		}
		for i := 0; i < n && d.step(); i++ {
		}
		d.status()
	case "c", "continue":
		for d.step() {
		}
		d.status()
	case "stack":
		data := d.in.Scope().StackData()
		for i := len(data) - 1; i >= 0; i-- {
			fmt.Fprintf(d.out, "%4d: %s\n", len(data)-1-i, data[i].Hex())
		}
	case "m", "mem", "memory":
		mem := d.in.Scope().MemoryData()
		for off := 0; off < len(mem); off += 32 {
			fmt.Fprintf(d.out, "%05x: %x\n", off, mem[off:off+32])
		}
	case "status":
		d.status()
	case "q", "quit", "exit":
		return true
	case "h", "help":
		fmt.Fprint(d.out, debugHelp)
	default:
		fmt.Fprintf(d.out, "unknown command %q, try 'help'\n", fields[0])
	}
	return false
}

// step executes one instruction and reports whether the frame can continue.
func (d *debugger) step() bool {
	if d.in.Action() == vm.ActionReturn {
		return false
	}
	return d.in.Step() == vm.Continue
}

func (d *debugger) status() {
	gas := d.in.Gas()
	if res := d.in.Result(); res != nil {
		fmt.Fprintf(d.out, "halted: %s gas used %d output %s\n", colorResult(res.Result), res.UsedGas(), hexutil.Encode(res.Output))
		if res.Err != nil {
			fmt.Fprintf(d.out, "error: %v\n", res.Err)
		}
		return
	}
	pc := d.in.PC()
	fmt.Fprintf(d.out, "pc %05x: %v  gas %d  stack %d  steps %d\n", pc, d.in.Scope().Contract.GetOp(pc), gas.Remaining(), len(d.in.Scope().StackData()), d.in.Steps())
}

func debugCmd(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	code, err := readCode(ctx)
	if err != nil {
		return err
	}
	input, err := decodeHex(ctx.String(InputFlag.Name))
	if err != nil {
		return errors.Wrap(err, "invalid input")
	}
	in, err := runtime.NewInterpreter(code, input, cfg.Exec.runtimeConfig())
	if err != nil {
		return err
	}
	defer in.Close()

	d := &debugger{in: in, out: ctx.App.Writer}
	d.status()

	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)
	for {
		line, err := prompt.Prompt("evm> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		prompt.AppendHistory(line)
		if d.exec(line) {
			return nil
		}
	}
}
