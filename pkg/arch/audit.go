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

// AuditReservedBits checks that every reserved or unassigned bit of instr is
// zero, given the operand shape opType dictates. It is the single audit
// used both by the strict execution policy and by the disassembler, so
// encoding and decoding never disagree about what counts as a malformed
// instruction.
//
// It returns nil when instr is well-formed, or a ReservedBitsError naming
// the violated clause otherwise.
func AuditReservedBits(instr Word, opType OpType) error {
	switch opType {
	case OpTypeBasic:
		if instr&OperandMask != 0 {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroNoOperands}
		}

	case OpTypeOp0:
		if instr&(OperandOp1Mask|OperandOp2Mask) != 0 {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroOneOperand}
		}

	case OpTypeOp0Op1:
		if instr&OperandSelMask != 0 {
			if instr&OperandAsMask != 0 {
				return ReservedBitsError{Instruction: instr, Reason: ReasonAssignmentTwoOperands}
			}
			if instr&OperandLocMask != 0 && instr&OperandStMask != 0 {
				return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroStTwoOperands}
			}
		} else if instr&OperandOp2Mask != 0 {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroRegTwoOperands}
		}

	case OpTypeOp0Op1Op2:
		if instr&OperandImmInvalidMask == OperandImmInvalidMask {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroUnassignedThreeOperands}
		}

	case OpTypeJump:
		if instr&OperandAddrLocMask != 0 && instr&OperandAddrMask != 0 {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroJumpAddrOperands}
		}

	case OpTypeCondJump:
		if instr&OperandAddrLocMask != 0 && instr&OperandCondAddrMask != 0 {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroJumpAddrOperands}
		}
		if instr&OperandCondInvalidMask == OperandCondInvalidMask {
			return ReservedBitsError{Instruction: instr, Reason: ReasonNonZeroUnassignedCondOperands}
		}
	}

	return nil
}
