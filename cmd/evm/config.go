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
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/bnb-chain/bsc-evm/core/vm/runtime"
	"github.com/bnb-chain/bsc-evm/params/forks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       runFlags,
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// ExecConfig holds the execution defaults of the run and batch commands.
type ExecConfig struct {
	Fork      string
	GasLimit  uint64
	ExtraEips []int
	Origin    common.Address
	Address   common.Address
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Verbosity int
	File      string
	MaxSize   int // megabytes
}

type evmConfig struct {
	Exec ExecConfig
	Log  LogConfig
}

func defaultConfig() evmConfig {
	return evmConfig{
		Exec: ExecConfig{
			Fork:     forks.Latest.String(),
			GasLimit: 10_000_000,
		},
		Log: LogConfig{
			Verbosity: VerbosityFlag.Value,
			MaxSize:   LogMaxSizeFlag.Value,
		},
	}
}

func loadConfig(file string, cfg *evmConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the flags
// set on the command line on top of it.
func makeConfig(ctx *cli.Context) (evmConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(VerbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(VerbosityFlag.Name)
	}
	if ctx.IsSet(LogFileFlag.Name) {
		cfg.Log.File = ctx.String(LogFileFlag.Name)
	}
	if ctx.IsSet(LogMaxSizeFlag.Name) {
		cfg.Log.MaxSize = ctx.Int(LogMaxSizeFlag.Name)
	}
	if ctx.IsSet(ForkFlag.Name) {
		cfg.Exec.Fork = ctx.String(ForkFlag.Name)
	}
	if ctx.IsSet(GasFlag.Name) {
		cfg.Exec.GasLimit = ctx.Uint64(GasFlag.Name)
	}
	if ctx.IsSet(EipsFlag.Name) {
		cfg.Exec.ExtraEips = ctx.IntSlice(EipsFlag.Name)
	}
	if _, err := forks.Parse(cfg.Exec.Fork); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtimeConfig converts the execution settings for the runtime package.
func (c *ExecConfig) runtimeConfig() *runtime.Config {
	cfg := &runtime.Config{
		Fork:     c.Fork,
		GasLimit: c.GasLimit,
		Origin:   c.Origin,
		Address:  c.Address,
	}
	cfg.EVMConfig.ExtraEips = append([]int(nil), c.ExtraEips...)
	return cfg
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
