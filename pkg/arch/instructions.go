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

// Opcode names one of the instructions in the YaRISC catalogue.
type Opcode Word

const (
	OpMove            Opcode = 0x01
	OpLoad            Opcode = 0x02
	OpRelativeLoad    Opcode = 0x03 // reserved, unimplemented
	OpStore           Opcode = 0x04
	OpRelativeStore   Opcode = 0x05 // reserved, unimplemented
	OpAdd             Opcode = 0x10
	OpAddWithCarry    Opcode = 0x11
	OpJump            Opcode = 0x2a
	OpRelativeJump    Opcode = 0x2b // reserved, unimplemented
	OpCondJump        Opcode = 0x2c
	OpRelativeCondJmp Opcode = 0x2d // reserved, unimplemented
	OpNoop            Opcode = 0x3e
	OpHalt            Opcode = 0x3f
)

// OpType groups opcodes by operand shape, which determines both execution
// decode logic and the reserved-bits audit clause applied to an instruction.
type OpType int

const (
	OpTypeBasic OpType = iota
	OpTypeOp0
	OpTypeOp0Op1
	OpTypeOp0Op1Op2
	OpTypeJump
	OpTypeCondJump
)

// Bit masks and offsets for the instruction word, mirroring the original
// source's yarisc/arch/instructions.hpp exactly.
const (
	OpcodeMask Word = 0b0000000000111111

	OperandMask Word = 0b1111111111000000

	OperandOp0Mask Word = 0b0000000111000000
	OperandOp1Mask Word = 0b0000111000000000
	OperandOp2Mask Word = 0b0111000000000000

	OperandSelMask Word = 0b1000000000000000
	OperandLocMask Word = 0b0100000000000000
	OperandAsMask  Word = 0b0010000000000000
	OperandStMask  Word = 0b0001111000000000

	OperandImmMask           Word = OperandLocMask | OperandSelMask
	OperandImmUnassignedMask Word = 0b0001000000000000
	OperandImmInvalidMask    Word = OperandImmMask | OperandImmUnassignedMask

	OperandOp0Offset = 6
	OperandOp1Offset = 9
	OperandOp2Offset = 12
	OperandStOffset  = 9
	OperandAsOffset  = 13

	OperandAddrMask    Word = 0b0111111111000000
	OperandAddrLocMask Word = 0b1000000000000000

	OperandCondFlagMask       Word = 0b0000000011000000
	OperandCondFlagCarryMask  Word = 0b0000000001000000
	OperandCondFlagZeroMask   Word = 0b0000000010000000
	OperandCondUnassignedMask Word = 0b0000000100000000
	OperandCondInvalidMask    Word = OperandCondUnassignedMask
	OperandCondAddrMask       Word = 0b0011111000000000
	OperandCondNegMask        Word = 0b0100000000000000

	OperandAddrOffset     = 6
	OperandAddrWordOffset = OperandAddrOffset - 1

	OperandCondFlagOffset     = 6
	OperandCondAddrOffset     = 9
	OperandCondAddrWordOffset = OperandCondAddrOffset - 1
)
