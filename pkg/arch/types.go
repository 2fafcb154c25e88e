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

// Package arch implements the YaRISC instruction set: the bit-level
// encoding/decoding tables shared by the assembler, disassembler and
// interpreter, the policy-parameterised fetch-decode-execute core, and the
// diffable machine-state snapshot/render model.
package arch

// Word is the native 16-bit register and memory-word width.
type Word = uint16

// Address is a 16-bit byte address into main memory.
type Address = uint16

// DoubleWord captures the result of a 16-bit addition wide enough to read
// off the carry bit.
type DoubleWord = uint32

// NumRegisters is the number of named registers.
const NumRegisters = 8

// FeatureLevel is a totally ordered capability tier. Instructions are
// gated by the lowest level at which they exist.
type FeatureLevel uint16

const (
	LevelNone FeatureLevel = 0
	LevelMin  FeatureLevel = 10
	LevelV1   FeatureLevel = 100
)

// LevelLatest is the highest feature level this implementation knows.
const LevelLatest = LevelV1
