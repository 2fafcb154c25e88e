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

package arch

import (
	"fmt"
	"strings"
)

// FormatWord renders a register or memory word as a zero-padded hex
// literal.
func FormatWord(w Word) string {
	return fmt.Sprintf("0x%04x", w)
}

// FormatStatus renders the status register as 16 leading spaces, a
// "status: " label, then the zero flag and the carry flag character, or, if any bit outside
// the carry/zero pair is set (only reachable outside strict mode), the
// full 16-bit binary string with the Z and C characters substituted at
// their positions.
func FormatStatus(s StatusRegister) string {
	if s.S&^StatusMask == 0 {
		return strings.Repeat(" ", 16) + "status: " + zeroChar(s.Zero()) + carryChar(s.Carry())
	}

	var b strings.Builder
	for bit := 15; bit >= 0; bit-- {
		switch Word(1 << uint(bit)) {
		case ZeroFlag:
			b.WriteString(zeroChar(s.Zero()))
		case CarryFlag:
			b.WriteString(carryChar(s.Carry()))
		default:
			if s.S&(1<<uint(bit)) != 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

func zeroChar(set bool) string {
	if set {
		return "Z"
	}
	return "z"
}

func carryChar(set bool) string {
	if set {
		return "C"
	}
	return "c"
}

// renderScalarDiff highlights a whole field bright red when it changed
// (including when there was no previous value to compare against), and
// renders it plain otherwise. This is the diff rule used for numeric
// fields: registers, the instruction pointer, the decoded instruction.
func renderScalarDiff(format OutputFormat, current, previous string) string {
	if current == previous {
		return current
	}
	return colorWrap(format, ansiBrightRedForeground, current)
}

// renderCharDiff highlights only the characters that differ from
// previous in bright red, leaving matching characters in a muted red. Used
// for the status bit string, whose unchanged flag characters stay legible
// rather than disappearing.
func renderCharDiff(format OutputFormat, current, previous string) string {
	if current == previous {
		return current
	}
	if previous == "" {
		return colorWrap(format, ansiBrightRedForeground, current)
	}

	var b strings.Builder
	for i := 0; i < len(current); i++ {
		ch := current[i : i+1]
		if i < len(previous) && previous[i] == current[i] {
			b.WriteString(colorWrap(format, ansiRedForeground, ch))
		} else {
			b.WriteString(colorWrap(format, ansiBrightRedForeground, ch))
		}
	}
	return b.String()
}

// RenderRegistersLine renders r0-r5 on one line, then the decoded next
// instruction, the status bits, sp and ip on a second line, each diffed
// against previous. The instruction pointer is excluded from its own diff:
// it advances on almost every step, so highlighting it every time would
// carry no information.
func RenderRegistersLine(format OutputFormat, current, previous RegistersSnapshot) string {
	var b strings.Builder

	for i := 0; i < NumRegisters-2; i++ {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(RegNames[i])
		b.WriteString(": ")
		b.WriteString(renderScalarDiff(format, FormatWord(current.Registers.R[i]), FormatWord(previous.Registers.R[i])))
	}

	b.WriteString("\n")
	b.WriteString(renderScalarDiff(format, current.Instruction.Text, previous.Instruction.Text))
	b.WriteString(renderCharDiff(format, FormatStatus(current.Status), FormatStatus(previous.Status)))

	b.WriteString("  sp: ")
	b.WriteString(renderScalarDiff(format, FormatWord(current.Registers.SP()), FormatWord(previous.Registers.SP())))
	b.WriteString("  ip: ")
	b.WriteString(FormatWord(current.Registers.IP()))

	return b.String()
}

// adjustedOverlap reports the byte range, in offsets relative to current's
// base address, over which current and previous actually overlap.
func adjustedOverlap(current, previous MemoryView) (start, end int, ok bool) {
	curEnd := int(current.base) + current.Size()
	prevEnd := int(previous.base) + previous.Size()

	lo := int(current.base)
	if int(previous.base) > lo {
		lo = int(previous.base)
	}
	hi := curEnd
	if prevEnd < hi {
		hi = prevEnd
	}
	if lo >= hi {
		return 0, 0, false
	}

	return lo - int(current.base), hi - int(current.base), true
}

// RenderMemoryWindowPlain renders a memory window with no diff coloring:
// each byte as two hex digits, separated by spaces. No address column is
// included.
func RenderMemoryWindowPlain(view MemoryView) string {
	var b strings.Builder
	for i := 0; i < view.Size(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", view.At(i))
	}
	return b.String()
}

// RenderMemoryWindowDiff renders a memory window diffed against a previous
// view of the (possibly different) surrounding memory.
//
// Unlike the scalar register fields, an empty or non-overlapping previous
// view does not make the whole window flash bright red: memory windows
// scroll independently of any single value changing, so "no previous data
// here" is the common case, not a signal. The window falls back to plain,
// uncolored rendering whenever the two views don't overlap in address
// range at all, or whenever the bytes in their overlap are byte-identical
// — both are treated as "nothing of note changed here", the opposite of
// how an absent previous value is treated for registers.
func RenderMemoryWindowDiff(format OutputFormat, current, previous MemoryView) string {
	start, end, overlaps := adjustedOverlap(current, previous)
	if !overlaps {
		return RenderMemoryWindowPlain(current)
	}

	prevOff := int(current.base) + start - int(previous.base)
	identical := true
	for i := start; i < end; i++ {
		if current.At(i) != previous.At(prevOff+(i-start)) {
			identical = false
			break
		}
	}
	if identical {
		return RenderMemoryWindowPlain(current)
	}

	var b strings.Builder
	for i := 0; i < current.Size(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}

		byteText := fmt.Sprintf("%02x", current.At(i))

		if i >= start && i < end {
			if current.At(i) != previous.At(prevOff+(i-start)) {
				b.WriteString(colorWrap(format, ansiBrightRedForeground, byteText))
				continue
			}
		}
		b.WriteString(byteText)
	}
	return b.String()
}

// RenderMemoryWindowHighlighted renders a plain (non-diffed) memory window
// with each byte's address checked against the backing machine state's
// registers: a byte at an address equal to a register's value gets that
// register's background color, with the instruction pointer winning ties
// against any other register at the same address.
func RenderMemoryWindowHighlighted(format OutputFormat, view MemoryView) string {
	state := view.State()
	if state == nil || format == FormatPlain {
		return RenderMemoryWindowPlain(view)
	}

	var b strings.Builder
	for i := 0; i < view.Size(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}

		addr := Word(int(view.Base()) + i)
		byteText := fmt.Sprintf("%02x", view.At(i))

		if reg, ok := registerValueAt(state.Registers.Named, addr); ok {
			b.WriteString(colorWrap(format, registerBackgroundColors[reg], byteText))
		} else {
			b.WriteString(byteText)
		}
	}
	return b.String()
}
