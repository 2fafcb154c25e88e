// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yarisc-project/yarisc/pkg/arch"
	"github.com/yarisc-project/yarisc/pkg/debugger"
)

var (
	helpvar   bool
	levelvar  string
	strictvar bool
	colorvar  string
	runvar    bool
)

const usage = "yarisc [-level min|v1] [-strict] [-color plain|dynamic|always] [-x] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&levelvar, "level", "v1",
		"Feature level to run at: 'min' or 'v1'",
	)
	flag.BoolVar(
		&strictvar, "strict", false,
		"Audits reserved bits and alignment on every step",
	)
	flag.StringVar(
		&colorvar, "color", "dynamic",
		"Diff-rendering colour mode: 'plain', 'dynamic', or 'always'",
	)
	flag.BoolVar(
		&runvar, "x", false,
		"Run straight to halt or breakpoint without entering the command loop",
	)
	flag.Parse()
}

func parseLevel(s string) (arch.FeatureLevel, error) {
	switch s {
	case "min":
		return arch.LevelMin, nil
	case "v1", "":
		return arch.LevelV1, nil
	default:
		return 0, fmt.Errorf("unknown feature level %q", s)
	}
}

// resolveFormat decides the diff-rendering output format. "dynamic" probes
// stdout the same way enterRawTerm probes stdin: a termios ioctl succeeds
// only when the far end is a terminal.
func resolveFormat(s string) (arch.OutputFormat, error) {
	switch s {
	case "plain":
		return arch.FormatPlain, nil
	case "always":
		return arch.FormatColored, nil
	case "dynamic", "":
		if isTerminal(os.Stdout) {
			return arch.FormatColored, nil
		}
		return arch.FormatPlain, nil
	default:
		return 0, fmt.Errorf("unknown colour mode %q", s)
	}
}

func yarisc() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	level, err := parseLevel(levelvar)
	if err != nil {
		log.Println(err)
		return 1
	}

	format, err := resolveFormat(colorvar)
	if err != nil {
		log.Println(err)
		return 1
	}

	args := flag.Args()
	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	imagePath := args[0]
	file, err := os.Open(imagePath)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer file.Close()

	list := debugger.NewList()
	dbg := arch.NewDebugger(list)
	m := arch.NewMachine(level, dbg)

	if err := m.LoadImage(file); err != nil {
		log.Println(err)
		return 1
	}

	mode := arch.ModeNormal
	if strictvar {
		mode = arch.ModeStrict
	}

	if runvar {
		return runNonInteractive(m, mode)
	}

	return runREPL(m, mode, format)
}

func runNonInteractive(m *arch.Machine, mode arch.ExecutionMode) int {
	halted, err := m.Execute(mode)
	if err != nil {
		log.Println(err)
		return 1
	}
	if !halted {
		fmt.Println("stopped at breakpoint")
		return 1
	}
	return 0
}

func main() {
	os.Exit(yarisc())
}
