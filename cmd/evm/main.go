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

// evm executes EVM code snippets.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
)

const (
	executionCategory = "EXECUTION"
	loggingCategory   = "LOGGING AND DEBUGGING"
)

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
)

var (
	CodeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "EVM code as hex",
		Category: executionCategory,
	}
	CodeFileFlag = &cli.StringFlag{
		Name:     "codefile",
		Usage:    "File containing EVM code as hex. If '-' is specified, code is read from stdin",
		Category: executionCategory,
	}
	InputFlag = &cli.StringFlag{
		Name:     "input",
		Usage:    "Input for the EVM as hex",
		Category: executionCategory,
	}
	GasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit for the EVM (0 = config value, or unlimited)",
		Category: executionCategory,
	}
	ForkFlag = &cli.StringFlag{
		Name:     "fork",
		Usage:    "Fork to execute under, e.g. Byzantium or Cancun (default = latest)",
		Category: executionCategory,
	}
	EipsFlag = &cli.IntSliceFlag{
		Name:     "eips",
		Usage:    "Extra EIPs to activate on top of the fork",
		Category: executionCategory,
	}
	JSONFlag = &cli.BoolFlag{
		Name:     "json",
		Usage:    "Print the result as JSON",
		Category: executionCategory,
	}
	TraceFlag = &cli.BoolFlag{
		Name:     "trace",
		Usage:    "Write a JSON trace of every executed instruction to stderr",
		Category: loggingCategory,
	}
	ConfigFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: executionCategory,
	}
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: loggingCategory,
	}
	LogFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file, rotated by size",
		Category: loggingCategory,
	}
	LogMaxSizeFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in megabytes of the log file before it gets rotated",
		Value:    100,
		Category: loggingCategory,
	}
	MetricsFlag = &cli.BoolFlag{
		Name:     "metrics",
		Usage:    "Enable metrics collection and print the collected values on exit",
		Category: loggingCategory,
	}
)

var globalFlags = []cli.Flag{
	ConfigFileFlag,
	VerbosityFlag,
	LogFileFlag,
	LogMaxSizeFlag,
	MetricsFlag,
}

var app = newApp()

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "evm"
	app.Usage = "the evm command line interface"
	app.Version = versionWithCommit(gitCommit, gitDate)
	app.Flags = globalFlags
	app.Commands = []*cli.Command{
		runCommand,
		disasmCommand,
		batchCommand,
		debugCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			log.Debug(fmt.Sprintf(format, args...))
		})); err != nil {
			log.Warn("Failed to set GOMAXPROCS", "err", err)
		}
		return setupLogging(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		if ctx.Bool(MetricsFlag.Name) {
			dumpMetrics(ctx.App.ErrWriter)
		}
		return closeLogging()
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	return app
}

func versionWithCommit(commit, date string) string {
	vsn := "1.0.0"
	if len(commit) >= 8 {
		vsn += "-" + commit[:8]
	}
	if date != "" {
		vsn += "-" + date
	}
	return vsn
}

// dumpMetrics prints every registered counter and meter. Metrics are only
// collected when the process was started with --metrics.
func dumpMetrics(w io.Writer) {
	var lines []string
	metrics.DefaultRegistry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case metrics.Counter:
			lines = append(lines, fmt.Sprintf("%s: %d", name, m.Snapshot().Count()))
		case metrics.Meter:
			lines = append(lines, fmt.Sprintf("%s: %d", name, m.Snapshot().Count()))
		}
	})
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
