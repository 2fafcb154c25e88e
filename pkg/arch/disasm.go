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

import "fmt"

// Disassembly is the result of disassembling one instruction.
type Disassembly struct {
	// Words is the number of instruction words consumed (0 on error, 1 for
	// an instruction with no trailing immediate, 2 for one with a
	// next-word immediate).
	Words int
	// Text is the textual representation of the instruction, or of the
	// error if Words is 0.
	Text string
}

func formatImmediate(imm Word) string {
	signed := int16(imm)
	if signed < 10 && signed >= 0 {
		return fmt.Sprintf("%d", signed)
	}

	var width int
	switch {
	case imm < 16:
		width = 1
	case imm < 256:
		width = 2
	default:
		width = 4
	}

	return fmt.Sprintf("0x%0*x", width, imm)
}

func regName(addr RegAddr) string {
	return RegNames[addr]
}

// Disassemble decodes one instruction, returning how many words it
// consumed and its textual form. level gates which opcodes are recognized,
// exactly as it gates which opcodes execute.
func Disassemble(instr, arg Word, level FeatureLevel) Disassembly {
	code := Opcode(instr & OpcodeMask)
	desc := descriptorFor(code)

	if !InstructionSupported(code, level) {
		return Disassembly{Words: 0, Text: fmt.Sprintf("<invalid opcode %#04x>", instr&OpcodeMask)}
	}

	if err := AuditReservedBits(instr, desc.opType); err != nil {
		return Disassembly{Words: 0, Text: fmt.Sprintf("<%s>", err.Error())}
	}

	switch desc.opType {
	case OpTypeBasic:
		return Disassembly{Words: 1, Text: desc.mnemonic}

	case OpTypeOp0:
		op0 := RegAddr(firstOperandIndex(instr))
		return Disassembly{Words: 1, Text: fmt.Sprintf("%s %s", desc.mnemonic, regName(op0))}

	case OpTypeOp0Op1:
		op0 := RegAddr(firstOperandIndex(instr))

		if instr&OperandSelMask == 0 {
			op1 := RegAddr(secondRegOperandIndex(instr))
			return Disassembly{Words: 1, Text: fmt.Sprintf("%s %s, %s", desc.mnemonic, regName(op0), regName(op1))}
		}
		if instr&OperandLocMask != 0 {
			return Disassembly{Words: 2, Text: fmt.Sprintf("%s %s, %s", desc.mnemonic, regName(op0), formatImmediate(arg))}
		}
		imm := signExtend(loadShortImmediate(instr), 0x8)
		return Disassembly{Words: 1, Text: fmt.Sprintf("%s %s, %s", desc.mnemonic, regName(op0), formatImmediate(imm))}

	case OpTypeOp0Op1Op2:
		op0 := RegAddr(firstOperandIndex(instr))

		if instr&OperandSelMask == 0 {
			op1 := RegAddr(secondRegOperandIndex(instr))
			op2 := RegAddr(thirdRegOperandIndex(instr))
			return Disassembly{
				Words: 1,
				Text:  fmt.Sprintf("%s %s, %s, %s", desc.mnemonic, regName(op0), regName(op1), regName(op2)),
			}
		}

		// The non-immediate operand, long or short, always comes from the
		// op1 bit field (the short-immediate case's "other" operand is op0
		// itself, the accumulator, printed explicitly rather than elided).
		// The "as" bit then picks which of the two printed positions, second
		// or third, the immediate lands in.
		words := 1
		var immText, regText string
		if instr&OperandLocMask != 0 {
			words = 2
			immText = formatImmediate(arg)
			regText = regName(RegAddr(secondRegOperandIndex(instr)))
		} else {
			immText = formatImmediate(signExtend(loadShortImmediate(instr), 0x8))
			regText = regName(op0)
		}

		if instr&OperandAsMask == 0 {
			return Disassembly{Words: words, Text: fmt.Sprintf("%s %s, %s, %s", desc.mnemonic, regName(op0), immText, regText)}
		}
		return Disassembly{Words: words, Text: fmt.Sprintf("%s %s, %s, %s", desc.mnemonic, regName(op0), regText, immText)}

	case OpTypeJump:
		if instr&OperandAddrLocMask != 0 {
			return Disassembly{Words: 2, Text: fmt.Sprintf("%s %s", desc.mnemonic, formatImmediate(arg))}
		}
		addr := signExtend(Word(loadShortAddress(instr)), 0x200)
		return Disassembly{Words: 1, Text: fmt.Sprintf("%s %s", desc.mnemonic, formatImmediate(addr))}

	case OpTypeCondJump:
		mnemonic := condJumpMnemonic(instr)

		if instr&OperandAddrLocMask != 0 {
			return Disassembly{Words: 2, Text: fmt.Sprintf("%s %s", mnemonic, formatImmediate(arg))}
		}
		addr := signExtend(Word(loadShortCondAddress(instr)), 0x20)
		return Disassembly{Words: 1, Text: fmt.Sprintf("%s %s", mnemonic, formatImmediate(addr))}
	}

	return Disassembly{Words: 0, Text: "<unreachable>"}
}

// condJumpMnemonic renders a conditional jump's mnemonic: "J", then "N" if
// the condition is negated else "M", then "C" and/or "Z" for each flag bit
// the instruction tests (both may be set at once, e.g. "JMCZ").
func condJumpMnemonic(instr Word) string {
	var b []byte
	b = append(b, 'J')
	if instr&OperandCondNegMask != 0 {
		b = append(b, 'N')
	} else {
		b = append(b, 'M')
	}
	if instr&OperandCondFlagCarryMask != 0 {
		b = append(b, 'C')
	}
	if instr&OperandCondFlagZeroMask != 0 {
		b = append(b, 'Z')
	}
	return string(b)
}
