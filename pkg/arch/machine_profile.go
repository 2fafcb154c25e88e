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

// instructionDescriptor is one row of the opcode catalogue: its mnemonic,
// the feature level it first appears at, and its operand shape.
type instructionDescriptor struct {
	mnemonic string
	level    FeatureLevel
	opType   OpType
}

// instructionTable has one entry per possible 6-bit opcode value; entries
// with an empty mnemonic are unassigned/reserved.
var instructionTable = [64]instructionDescriptor{
	0x01: {"MOV", LevelMin, OpTypeOp0Op1},
	0x02: {"LDR", LevelMin, OpTypeOp0Op1},
	0x04: {"STR", LevelMin, OpTypeOp0Op1},
	0x10: {"ADD", LevelMin, OpTypeOp0Op1Op2},
	0x11: {"ADC", LevelMin, OpTypeOp0Op1Op2},
	0x2a: {"JMP", LevelV1, OpTypeJump},
	0x2c: {"J", LevelMin, OpTypeCondJump},
	0x3e: {"NOP", LevelV1, OpTypeBasic},
	0x3f: {"HLT", LevelMin, OpTypeBasic},
}

func descriptorFor(code Opcode) instructionDescriptor {
	return instructionTable[Word(code)&OpcodeMask]
}

// InstructionType returns the operand shape of an opcode.
func InstructionType(code Opcode) OpType {
	return descriptorFor(code).opType
}

// InstructionMnemonic returns the base mnemonic of an opcode ("J" for the
// conditional-jump family, which appends condition letters separately).
func InstructionMnemonic(code Opcode) string {
	return descriptorFor(code).mnemonic
}

// InstructionSupported reports whether the opcode is assigned at all, and
// whether it is supported at the given feature level.
func InstructionSupported(code Opcode, level FeatureLevel) bool {
	d := descriptorFor(code)
	return d.mnemonic != "" && d.level <= level
}

// ValidFeatureLevel reports whether level is one of the known enumeration
// values.
func ValidFeatureLevel(level FeatureLevel) bool {
	return level == LevelMin || level == LevelV1
}
