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
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logOutputFile io.WriteCloser

// setupLogging installs the root logger from the config file and the logging
// flags. Colour is only used on a terminal and never when logging to a file.
func setupLogging(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	var (
		output   io.Writer
		useColor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if useColor {
		output = colorable.NewColorableStderr()
	} else {
		output = os.Stderr
	}
	if cfg.Log.File != "" {
		logOutputFile = &lumberjack.Logger{
			Filename: cfg.Log.File,
			MaxSize:  cfg.Log.MaxSize,
		}
		output = io.MultiWriter(output, logOutputFile)
		useColor = false
	}
	handler := log.NewTerminalHandler(output, useColor)
	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(log.FromLegacyLevel(cfg.Log.Verbosity))
	log.SetDefault(log.NewLogger(glogger))
	return nil
}

func closeLogging() error {
	if logOutputFile == nil {
		return nil
	}
	err := logOutputFile.Close()
	logOutputFile = nil
	return err
}
