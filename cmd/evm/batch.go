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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/bnb-chain/bsc-evm/core/vm/runtime"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/naoina/toml"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var batchCommand = &cli.Command{
	Action:    batchCmd,
	Name:      "batch",
	Usage:     "Execute the vectors of a TOML or YAML file concurrently",
	ArgsUsage: "<file.toml|file.yaml>",
	Flags: []cli.Flag{
		GasFlag,
		ForkFlag,
		EipsFlag,
	},
	Description: `
The batch command executes every vector of the given TOML ([[Vector]]) or
YAML (vectors:) file in its own interpreter and compares the outcome with the
expectations of the vector. It fails when at least one vector does not match.`,
}

// Vector is one entry of a batch file. Gas and Fork fall back to the
// configured defaults when unset.
type Vector struct {
	Name  string        `yaml:"name"`
	Code  hexutil.Bytes `yaml:"code"`
	Input hexutil.Bytes `yaml:"input"`
	Gas   uint64        `yaml:"gas"`
	Fork  string        `yaml:"fork"`

	Expect       string         `yaml:"expect"` // InstructionResult name, checked when set
	ExpectGas    *uint64        `yaml:"expectGas"`
	ExpectOutput *hexutil.Bytes `yaml:"expectOutput"`
}

type batchFile struct {
	Vector []Vector `yaml:"vectors"`
}

// batchFormat returns the decoder to use for a batch file: YAML for .yaml
// and .yml files, TOML otherwise.
func batchFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "toml"
}

func loadBatch(r io.Reader, format string) ([]Vector, error) {
	var file batchFile
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		if err := tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(&file); err != nil {
			return nil, err
		}
	}
	for i, v := range file.Vector {
		if v.Expect == "" {
			continue
		}
		if _, ok := vm.ParseInstructionResult(v.Expect); !ok {
			return nil, errors.Errorf("vector %d (%s): unknown result %q", i, v.Name, v.Expect)
		}
	}
	return file.Vector, nil
}

// check returns the reasons why the result does not match the vector.
func (v *Vector) check(res runtime.BatchResult) []string {
	if res.Err != nil {
		return []string{res.Err.Error()}
	}
	var issues []string
	if v.Expect != "" && res.Result.Result.String() != v.Expect {
		issues = append(issues, fmt.Sprintf("result %v, want %s", res.Result.Result, v.Expect))
	}
	if v.ExpectGas != nil && res.Result.UsedGas() != *v.ExpectGas {
		issues = append(issues, fmt.Sprintf("gas used %d, want %d", res.Result.UsedGas(), *v.ExpectGas))
	}
	if v.ExpectOutput != nil && !bytes.Equal(res.Result.Output, *v.ExpectOutput) {
		issues = append(issues, fmt.Sprintf("output %#x, want %#x", res.Result.Output, []byte(*v.ExpectOutput)))
	}
	return issues
}

func batchCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one batch file")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	path := ctx.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	vectors, err := loadBatch(f, batchFormat(path))
	f.Close()
	if err != nil {
		if _, ok := err.(*toml.LineError); ok {
			err = errors.New(path + ", " + err.Error())
		}
		return err
	}
	failed := runBatch(ctx.Context, ctx.App.Writer, vectors, &cfg.Exec)
	if failed > 0 {
		return errors.Errorf("%d of %d vectors failed", failed, len(vectors))
	}
	return nil
}

// runBatch executes the vectors, prints a summary table and returns the
// number of vectors that did not match their expectations.
func runBatch(ctx context.Context, w io.Writer, vectors []Vector, exec *ExecConfig) int {
	calls := make([]runtime.Call, len(vectors))
	for i, v := range vectors {
		c := exec.runtimeConfig()
		if v.Gas != 0 {
			c.GasLimit = v.Gas
		}
		if v.Fork != "" {
			c.Fork = v.Fork
		}
		calls[i] = runtime.Call{Code: v.Code, Input: v.Input, Config: c}
	}
	results := runtime.ExecuteBatch(ctx, calls, nil)

	var (
		rows   [][]string
		failed int
	)
	for i := range vectors {
		var (
			v       = &vectors[i]
			status  = color.GreenString("ok")
			outcome = "-"
			used    = "-"
		)
		if res := results[i].Result; res != nil {
			outcome, used = res.Result.String(), strconv.FormatUint(res.UsedGas(), 10)
		}
		if issues := v.check(results[i]); len(issues) > 0 {
			failed++
			status = color.RedString("FAIL")
			for _, issue := range issues {
				log.Error("Vector mismatch", "vector", v.Name, "issue", issue)
			}
		}
		rows = append(rows, []string{v.Name, calls[i].Config.Fork, outcome, used, status})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Vector", "Fork", "Result", "Gas used", "Status"})
	table.SetFooter([]string{"", "", "", "Failed", strconv.Itoa(failed)})
	table.AppendBulk(rows)
	table.Render()
	return failed
}
