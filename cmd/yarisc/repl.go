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
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/yarisc-project/yarisc/pkg/arch"
)

// memoryDebugSize is the size in bytes of the scrolling memory window shown
// by the REPL, and of the previous-window buffer kept for diff rendering.
const memoryDebugSize = 256

const memoryDebugRowBytes = 16 // 8 words per row
const memoryDebugRows = memoryDebugSize / memoryDebugRowBytes

const briefHelp = "h: help  hh: extended help  s: step  x: run  r: reset  l <path>: load  e: exit  (enter): redisplay"

const extendedHelp = `commands:
  h           show this brief help
  hh          show extended help (type h twice in a row)
  s           run one instruction
  x           run to halt or breakpoint
  r           reset the machine to its initial state, keeping breakpoints
  l <path>    reset and load a new image from path
  e           exit
  (enter)     redisplay current state
a fault (reserved bits, misaligned/out-of-range access, unsupported opcode)
halts the machine and keeps the fault message on screen until 'r' or 'l'.`

// replState tracks what the REPL needs to diff-render across commands: the
// previous registers snapshot and the previous memory window.
type replState struct {
	mode   arch.ExecutionMode
	format arch.OutputFormat

	regsValid bool
	prevRegs  arch.RegistersSnapshot

	memValid bool
	prevMem  arch.MemoryView
}

func runREPL(m *arch.Machine, mode arch.ExecutionMode, format arch.OutputFormat) int {
	if err := enterRawTerm(); err != nil {
		log.Println(err)
		return 1
	}
	defer exitRawTerm()

	s := &replState{mode: mode, format: format}
	s.display(m)

	keys := &keyReader{}

	for {
		fmt.Print("\r\n(yarisc) ")

		b, err := keys.next()
		if err != nil {
			fmt.Print("\r\n")
			return 0
		}

		switch b {
		case 'h':
			if next, ok := keys.tryNext(); ok && next == 'h' {
				fmt.Print("\r\n" + extendedHelp + "\r\n")
			} else {
				if ok {
					keys.pushBack(next)
				}
				fmt.Print("\r\n" + briefHelp + "\r\n")
			}

		case 's':
			s.step(m)

		case 'x':
			s.run(m)

		case 'r':
			m.Reset()
			s.reset()
			fmt.Print("\r\nmachine reset\r\n")
			s.display(m)

		case 'l':
			path, err := keys.readLine()
			if err != nil {
				fmt.Printf("\r\n%s\r\n", err)
				continue
			}

			if err := loadImage(m, path); err != nil {
				fmt.Printf("\r\n%s\r\n", err)
				continue
			}

			s.reset()
			fmt.Printf("\r\nloaded %s\r\n", path)
			s.display(m)

		case 'e':
			fmt.Print("\r\n")
			return 0

		case '\r', '\n':
			s.display(m)

		default:
			fmt.Printf("\r\nunrecognized command %q, 'h' for help\r\n", string(rune(b)))
		}
	}
}

func (s *replState) reset() {
	s.regsValid = false
	s.memValid = false
}

func (s *replState) step(m *arch.Machine) {
	if m.State.Debugger.Panic() {
		fmt.Print("\r\nmachine halted on a fault; 'r' or 'l' to continue\r\n")
		return
	}

	res, err := m.Step(s.mode)
	switch {
	case err != nil:
		fmt.Printf("\r\n%s\r\n", err)
	case res.Breakpoint:
		fmt.Print("\r\nbreakpoint\r\n")
	case !res.KeepGoing:
		fmt.Print("\r\nhalted\r\n")
	}
	s.display(m)
}

func (s *replState) run(m *arch.Machine) {
	if m.State.Debugger.Panic() {
		fmt.Print("\r\nmachine halted on a fault; 'r' or 'l' to continue\r\n")
		return
	}

	halted, err := m.Execute(s.mode)
	switch {
	case err != nil:
		fmt.Printf("\r\n%s\r\n", err)
	case halted:
		fmt.Print("\r\nhalted\r\n")
	default:
		fmt.Print("\r\nbreakpoint\r\n")
	}
	s.display(m)
}

// display renders the registers line and the memory window around the
// instruction pointer, diffed against whatever was shown last time.
func (s *replState) display(m *arch.Machine) {
	snap := m.Snapshot()

	var prevSnap arch.RegistersSnapshot
	if s.regsValid {
		prevSnap = s.prevRegs
	}

	fmt.Print("\r\n")
	fmt.Print(strings.ReplaceAll(arch.RenderRegistersLine(s.format, snap, prevSnap), "\n", "\r\n"))
	fmt.Print("\r\n")

	windowBase := int(snap.Registers.IP()) &^ (memoryDebugSize - 1)
	fmt.Print(renderMemoryRows(s.format, m, windowBase, s.prevMem, s.memValid))

	if view := m.State.Debugger.View(); view.Message != "" {
		fmt.Printf("\r\n%s\r\n", view.Message)
	}

	s.prevRegs = snap
	s.regsValid = true

	if full, err := m.Memory.Sub(windowBase, memoryDebugSize, nil); err == nil {
		s.prevMem = arch.ViewAt(arch.Address(windowBase), append([]byte(nil), full.Bytes()...))
		s.memValid = true
	}
}

func renderMemoryRows(format arch.OutputFormat, m *arch.Machine, windowBase int, prevWindow arch.MemoryView, prevValid bool) string {
	var b strings.Builder

	for r := 0; r < memoryDebugRows; r++ {
		rowBase := windowBase + r*memoryDebugRowBytes

		row, err := m.Memory.Sub(rowBase, memoryDebugRowBytes, &m.State)
		if err != nil {
			break
		}

		var rendered string
		if prevValid {
			rendered = arch.RenderMemoryWindowDiff(format, row, prevWindow)
		} else {
			rendered = arch.RenderMemoryWindowHighlighted(format, row)
		}

		fmt.Fprintf(&b, "\r\n%s: %s", arch.FormatWord(arch.Word(rowBase)), rendered)
	}

	return b.String()
}

func loadImage(m *arch.Machine, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	m.Reset()
	return m.LoadImage(file)
}

// keyReader reads single command bytes from raw stdin, with a one-byte
// pushback so a byte consumed while peeking ahead (checking for a second 'h')
// isn't lost when it turns out to belong to the next command.
type keyReader struct {
	pending    byte
	hasPending bool
}

// next blocks until a command byte is available. Raw mode sets
// VMIN=0/VTIME=0, so the underlying Read is non-blocking; this loop polls it
// at a steady interval to present a blocking read to the caller.
func (k *keyReader) next() (byte, error) {
	if k.hasPending {
		k.hasPending = false
		return k.pending, nil
	}

	var buf [1]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		// An empty raw-mode read is reported as io.EOF; it only means no
		// key has been pressed yet.
		if err != nil && err != io.EOF {
			return 0, err
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// tryNext makes one non-blocking attempt to read the next command byte, used
// to tell a lone 'h' from the first half of a fast "hh" keystroke pair.
func (k *keyReader) tryNext() (byte, bool) {
	if k.hasPending {
		k.hasPending = false
		return k.pending, true
	}

	var buf [1]byte
	n, _ := os.Stdin.Read(buf[:])
	return buf[0], n == 1
}

// pushBack returns a byte consumed by tryNext to the front of the stream.
func (k *keyReader) pushBack(b byte) {
	k.pending = b
	k.hasPending = true
}

// readLine temporarily leaves raw mode to read a full line (the 'l' command
// needs a path argument, which doesn't fit a single keystroke).
func (k *keyReader) readLine() (string, error) {
	if err := exitRawTerm(); err != nil {
		return "", err
	}
	defer enterRawTerm()

	fmt.Print("path: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}
