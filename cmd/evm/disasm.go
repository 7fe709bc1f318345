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

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var PlainFlag = &cli.BoolFlag{
	Name:  "plain",
	Usage: "Print one instruction per line instead of a table",
}

var disasmCommand = &cli.Command{
	Action:    disasmCmd,
	Name:      "disasm",
	Usage:     "Disassembles evm binary",
	ArgsUsage: "<code>",
	Flags: []cli.Flag{
		CodeFlag,
		CodeFileFlag,
		PlainFlag,
	},
}

// instruction is one decoded opcode with its immediate bytes.
type instruction struct {
	PC  uint64
	Op  vm.OpCode
	Arg []byte

	// Truncated is set on a push whose immediate runs past the end of the code.
	Truncated bool
}

// disassemble splits code into instructions. Immediates are skipped the same
// way jump destination analysis skips them.
func disassemble(code []byte) []instruction {
	var out []instruction
	for pc := uint64(0); pc < uint64(len(code)); {
		var (
			op  = vm.OpCode(code[pc])
			n   = uint64(vm.Immediates(op))
			ins = instruction{PC: pc, Op: op}
		)
		if n > 0 {
			end := pc + 1 + n
			if end > uint64(len(code)) {
				end = uint64(len(code))
				ins.Truncated = true
			}
			ins.Arg = code[pc+1 : end]
		}
		out = append(out, ins)
		pc += 1 + n
	}
	return out
}

func (ins instruction) argString() string {
	if vm.Immediates(ins.Op) == 0 {
		return ""
	}
	return fmt.Sprintf("%#x", ins.Arg)
}

func printPlain(w io.Writer, code []byte) {
	for _, ins := range disassemble(code) {
		switch {
		case ins.Truncated:
			fmt.Fprintf(w, "%05x: %v %s (incomplete push instruction)\n", ins.PC, ins.Op, ins.argString())
		case vm.Immediates(ins.Op) > 0:
			fmt.Fprintf(w, "%05x: %v %s\n", ins.PC, ins.Op, ins.argString())
		default:
			fmt.Fprintf(w, "%05x: %v\n", ins.PC, ins.Op)
		}
	}
}

func printTable(w io.Writer, code []byte) {
	var rows [][]string
	for _, ins := range disassemble(code) {
		pops, pushes := vm.OpStackCounts(ins.Op)
		rows = append(rows, []string{
			fmt.Sprintf("%05x", ins.PC),
			ins.Op.String(),
			ins.argString(),
			strconv.Itoa(pops),
			strconv.Itoa(pushes),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PC", "Opcode", "Immediate", "Pops", "Pushes"})
	table.SetFooter([]string{"", "", "", "Instructions", strconv.Itoa(len(rows))})
	table.AppendBulk(rows)
	table.Render()
}

func disasmCmd(ctx *cli.Context) error {
	code, err := readCode(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(PlainFlag.Name) {
		printPlain(ctx.App.Writer, code)
	} else {
		printTable(ctx.App.Writer, code)
	}
	return nil
}
