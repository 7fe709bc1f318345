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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/bnb-chain/bsc-evm/core/vm/runtime"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var runFlags = []cli.Flag{
	CodeFlag,
	CodeFileFlag,
	InputFlag,
	GasFlag,
	ForkFlag,
	EipsFlag,
	JSONFlag,
	TraceFlag,
}

var runCommand = &cli.Command{
	Action:      runCmd,
	Name:        "run",
	Usage:       "Run arbitrary evm binary",
	ArgsUsage:   "<code>",
	Description: `The run command runs arbitrary EVM code.`,
	Flags:       runFlags,
}

// execResult is the JSON form of an execution result.
type execResult struct {
	Output  hexutil.Bytes  `json:"output"`
	GasUsed hexutil.Uint64 `json:"gasUsed"`
	Result  string         `json:"result"`
	Error   string         `json:"error,omitempty"`
	Time    string         `json:"time"`
}

// decodeHex decodes hex text, tolerating a 0x prefix and whitespace.
func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// readCode returns the code given by --code, the first argument or --codefile,
// in that order.
func readCode(ctx *cli.Context) ([]byte, error) {
	var (
		text string
		src  string
	)
	switch {
	case ctx.String(CodeFlag.Name) != "":
		text, src = ctx.String(CodeFlag.Name), "--code"
	case ctx.Args().Present():
		text, src = ctx.Args().First(), "argument"
	case ctx.String(CodeFileFlag.Name) != "":
		var (
			file = ctx.String(CodeFileFlag.Name)
			data []byte
			err  error
		)
		if file == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not read code")
		}
		text, src = string(data), file
	default:
		return nil, errors.New("no code given, use --code, --codefile or an argument")
	}
	code, err := decodeHex(text)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid code in %s", src)
	}
	return code, nil
}

func runCmd(ctx *cli.Context) error {
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
	rcfg := cfg.Exec.runtimeConfig()
	if ctx.Bool(TraceFlag.Name) {
		rcfg.EVMConfig.Tracer = newJSONLogger(ctx.App.ErrWriter)
	}
	start := time.Now()
	res, err := runtime.Execute(ctx.Context, code, input, rcfg)
	if err != nil {
		return err
	}
	return printResult(ctx.App.Writer, res, time.Since(start), ctx.Bool(JSONFlag.Name))
}

func printResult(w io.Writer, res *vm.ExecutionResult, elapsed time.Duration, asJSON bool) error {
	if asJSON {
		out := execResult{
			Output:  res.Output,
			GasUsed: hexutil.Uint64(res.UsedGas()),
			Result:  res.Result.String(),
			Time:    elapsed.String(),
		}
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
		return json.NewEncoder(w).Encode(out)
	}
	fmt.Fprintf(w, "result:   %s\n", colorResult(res.Result))
	fmt.Fprintf(w, "gas used: %d\n", res.UsedGas())
	fmt.Fprintf(w, "output:   %s\n", hexutil.Encode(res.Output))
	if res.Err != nil {
		fmt.Fprintf(w, "error:    %v\n", res.Err)
	}
	fmt.Fprintf(w, "time:     %v\n", elapsed)
	return nil
}

func colorResult(r vm.InstructionResult) string {
	switch {
	case r.IsSuccess():
		return color.GreenString(r.String())
	case r.IsRevert():
		return color.YellowString(r.String())
	default:
		return color.RedString(r.String())
	}
}
