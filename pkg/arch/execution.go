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

// ExecuteResult reports how a single fetch-decode-execute step ended.
type ExecuteResult struct {
	// KeepGoing is false once the machine should stop stepping, either
	// because it halted or because it hit a breakpoint.
	KeepGoing bool
	// Breakpoint is true when stepping stopped for a breakpoint or a
	// recoverable fault rather than a HLT instruction.
	Breakpoint bool
}

var runResult = ExecuteResult{KeepGoing: true}
var haltResult = ExecuteResult{KeepGoing: false}
var breakpointResult = ExecuteResult{KeepGoing: false, Breakpoint: true}

// ExecutionPolicy parameterizes a single fetch-decode-execute step along
// the two orthogonal axes the machine supports: debug (breakpoints and
// recoverable-fault storage instead of immediate termination) and strict
// (reserved-bit and address auditing). The four (Debug, Strict)
// combinations are the four execution modes a machine can run in; this
// implementation selects between them with a pair of booleans checked at
// each step rather than with four separately compiled code paths, since Go
// has no equivalent to compile-time policy specialization.
type ExecutionPolicy struct {
	// Level gates which opcodes are considered assigned.
	Level FeatureLevel
	// Debug enables breakpoint hooks and panic storage in Debugger instead
	// of surfacing faults as plain errors.
	Debug bool
	// Strict enables the reserved-bits audit and alignment checking.
	Strict bool
	// Debugger receives breakpoint queries and stored fault messages.
	// Required when Debug is true.
	Debugger *Debugger
}

func addressError(address Address, access string) string {
	return fmt.Sprintf("invalid %s access to address %#04x", access, address)
}

func instructionError(instr Word, faultIP Address) string {
	return fmt.Sprintf("invalid instruction %#04x at memory location %#04x", instr, faultIP)
}

// fail reports an unrecoverable condition. In debug mode it stores the
// message on the Debugger and asks the caller to stop as if it hit a
// breakpoint; outside debug mode it returns msg as a plain error, ending
// the step immediately.
func (p *ExecutionPolicy) fail(msg string) (ExecuteResult, error) {
	if p.Debug {
		p.Debugger.storePanic(msg)
		return breakpointResult, nil
	}
	return ExecuteResult{}, PanicError{Message: msg}
}

// checkedAddress validates addr against mem's bounds unconditionally, and
// additionally against word alignment when p.Strict is set. Bounds are
// always enforced because, unlike the original implementation this was
// ported from, Go has no safe way to fall through to undefined behavior on
// an out-of-range raw pointer.
func (p *ExecutionPolicy) checkedAddress(mem *Memory, addr Address, access string) error {
	if int(addr)+2 > mem.Size() {
		return fmt.Errorf("%s", addressError(addr, access))
	}
	if p.Strict && !isAligned(int(addr)) {
		return fmt.Errorf("%s", addressError(addr, access))
	}
	return nil
}

func (p *ExecutionPolicy) load(mem *Memory, addr Address) (Word, ExecuteResult, error) {
	if err := p.checkedAddress(mem, addr, "read"); err != nil {
		res, ferr := p.fail(err.Error())
		return 0, res, ferr
	}
	return mem.loadUnchecked(addr), runResult, nil
}

func (p *ExecutionPolicy) store(mem *Memory, addr Address, value Word) (ExecuteResult, error) {
	if err := p.checkedAddress(mem, addr, "write"); err != nil {
		return p.fail(err.Error())
	}
	if p.Debug && p.Debugger.dataBreakpoint(addr, value) {
		return breakpointResult, nil
	}
	mem.storeUnchecked(addr, value)
	return runResult, nil
}

// loadInstruction fetches the word at the machine's instruction pointer,
// advancing the pointer past it first, exactly as a fetch of any
// instruction word or trailing immediate literal does.
func (p *ExecutionPolicy) loadInstruction(reg *RegisterFile, mem *Memory) (Word, ExecuteResult, error) {
	ip := reg.Named.IP()
	reg.Named.SetIP(ip + 2)

	return p.load(mem, ip)
}

func loadShortImmediate(instr Word) Word {
	return (instr & OperandStMask) >> OperandStOffset
}

func loadShortAddress(instr Word) Address {
	return (instr & OperandAddrMask) >> OperandAddrWordOffset
}

func loadShortCondAddress(instr Word) Address {
	return (instr & OperandCondAddrMask) >> OperandCondAddrWordOffset
}

func firstOperandIndex(instr Word) Word {
	return (instr & OperandOp0Mask) >> OperandOp0Offset
}

func secondRegOperandIndex(instr Word) Word {
	return (instr & OperandOp1Mask) >> OperandOp1Offset
}

func thirdRegOperandIndex(instr Word) Word {
	return (instr & OperandOp2Mask) >> OperandOp2Offset
}

// secondOperand resolves a two-operand instruction's second operand: a
// register, a sign-extended short immediate packed into the instruction, or
// an immediate carried in the next word.
func (p *ExecutionPolicy) secondOperand(instr Word, reg *RegisterFile, mem *Memory) (Word, ExecuteResult, error) {
	if instr&OperandSelMask != 0 {
		if instr&OperandLocMask != 0 {
			return p.loadInstruction(reg, mem)
		}
		return signExtend(loadShortImmediate(instr), 0x8), runResult, nil
	}
	return reg.Named.R[secondRegOperandIndex(instr)], runResult, nil
}

// secondThirdOperands resolves a three-operand instruction's second and
// third operands, handling the accumulator placeholder and the "as" bit
// that selects whether the short immediate or next-word immediate occupies
// the second or third operand slot.
func (p *ExecutionPolicy) secondThirdOperands(
	instr Word, reg *RegisterFile, mem *Memory, op0 Word,
) (Word, Word, ExecuteResult, error) {
	if instr&OperandSelMask != 0 {
		var operands [2]Word
		if instr&OperandLocMask != 0 {
			imm, res, err := p.loadInstruction(reg, mem)
			if err != nil || res.Breakpoint {
				return 0, 0, res, err
			}
			operands = [2]Word{imm, reg.Named.R[secondRegOperandIndex(instr)]}
		} else {
			operands = [2]Word{signExtend(loadShortImmediate(instr), 0x8), op0}
		}

		as := (instr & OperandAsMask) >> OperandAsOffset
		return operands[as], operands[1-as], runResult, nil
	}

	return reg.Named.R[secondRegOperandIndex(instr)], reg.Named.R[thirdRegOperandIndex(instr)], runResult, nil
}

// jumpAddressOperand resolves an unconditional jump's target: a long
// address from the next word, or a short word-address field sign-extended
// back to a full address (short jump fields are signed, reaching both ends
// of the address space from a compact encoding).
func (p *ExecutionPolicy) jumpAddressOperand(instr Word, reg *RegisterFile, mem *Memory) (Address, ExecuteResult, error) {
	if instr&OperandAddrLocMask != 0 {
		w, res, err := p.loadInstruction(reg, mem)
		return Address(w), res, err
	}
	return signExtend(loadShortAddress(instr), 0x0200), runResult, nil
}

func (p *ExecutionPolicy) condJumpAddressOperand(instr Word, reg *RegisterFile, mem *Memory) (Address, ExecuteResult, error) {
	if instr&OperandAddrLocMask != 0 {
		w, res, err := p.loadInstruction(reg, mem)
		return Address(w), res, err
	}
	return signExtend(loadShortCondAddress(instr), 0x20), runResult, nil
}

// execAlu runs a two's-complement 16-bit addition, optionally folding in
// the current carry flag, and updates the carry/zero flags from the
// 17-bit-wide result.
func execAlu(reg *RegisterFile, op0 *Word, op1, op2 Word, withCarry bool) {
	var carry DoubleWord
	if withCarry {
		carry = DoubleWord(reg.Status.S & CarryFlag)
	}

	result := DoubleWord(op1) + DoubleWord(op2) + carry
	resultWord := Word(result)

	var status Word
	if resultWord == 0 {
		status = ZeroFlag
	}
	status |= Word((result & (1 << 16)) >> 16)

	reg.Status.S = status
	*op0 = resultWord
}

// executeOpcode decodes and runs the operands for one already-fetched
// opcode, given its operand shape.
func (p *ExecutionPolicy) executeOpcode(
	code Opcode, opType OpType, instr Word, reg *RegisterFile, mem *Memory,
) (ExecuteResult, error) {
	switch opType {
	case OpTypeBasic:
		switch code {
		case OpNoop:
			return runResult, nil
		case OpHalt:
			return haltResult, nil
		}
		return runResult, nil

	case OpTypeOp0:
		// No assigned opcode currently uses this shape.
		return runResult, nil

	case OpTypeOp0Op1:
		op0 := &reg.Named.R[firstOperandIndex(instr)]
		op1, res, err := p.secondOperand(instr, reg, mem)
		if err != nil || res.Breakpoint {
			return res, err
		}

		switch code {
		case OpMove:
			*op0 = op1
			if op1 == 0 {
				reg.Status.S |= ZeroFlag
			} else {
				reg.Status.S &^= ZeroFlag
			}
			return runResult, nil
		case OpLoad:
			v, res, err := p.load(mem, Address(op1))
			if err == nil && !res.Breakpoint {
				*op0 = v
			}
			return res, err
		case OpStore:
			return p.store(mem, Address(op1), *op0)
		}
		return runResult, nil

	case OpTypeOp0Op1Op2:
		op0 := &reg.Named.R[firstOperandIndex(instr)]
		op1, op2, res, err := p.secondThirdOperands(instr, reg, mem, *op0)
		if err != nil || res.Breakpoint {
			return res, err
		}

		switch code {
		case OpAdd:
			execAlu(reg, op0, op1, op2, false)
		case OpAddWithCarry:
			execAlu(reg, op0, op1, op2, true)
		}
		return runResult, nil

	case OpTypeJump:
		addr, res, err := p.jumpAddressOperand(instr, reg, mem)
		if err != nil || res.Breakpoint {
			return res, err
		}
		reg.Named.SetIP(Word(addr))
		return runResult, nil

	case OpTypeCondJump:
		addr, res, err := p.condJumpAddressOperand(instr, reg, mem)
		if err != nil || res.Breakpoint {
			return res, err
		}

		flags := (instr & OperandCondFlagMask) >> OperandCondFlagOffset
		negate := instr&OperandCondNegMask != 0
		cond := reg.Status.S&flags != 0

		if cond != negate {
			reg.Named.SetIP(Word(addr))
		}
		return runResult, nil
	}

	return runResult, nil
}

// ExecuteInstruction runs a single fetch-decode-execute step: it checks for
// a code breakpoint at the instruction pointer, fetches and decodes one
// instruction, dispatches it, and, in strict mode, audits the instruction's
// reserved bits and the status register's unused bits once execution
// completes. It returns the outcome of the
// step and, outside debug mode, any unrecoverable fault as a plain error.
func ExecuteInstruction(p *ExecutionPolicy, reg *RegisterFile, mem *Memory) (ExecuteResult, error) {
	if p.Debug && p.Debugger.breakpoint(Address(reg.Named.IP())) {
		return breakpointResult, nil
	}

	instr, res, err := p.loadInstruction(reg, mem)
	if err != nil || res.Breakpoint {
		return res, err
	}

	code := Opcode(instr & OpcodeMask)
	desc := descriptorFor(code)

	var result ExecuteResult
	if !InstructionSupported(code, p.Level) {
		faultIP := reg.Named.IP() - 2
		result, err = p.fail(instructionError(instr, faultIP))
	} else {
		result, err = p.executeOpcode(code, desc.opType, instr, reg, mem)
	}
	if err != nil {
		return result, err
	}

	if p.Strict && !(p.Debug && p.Debugger.Panic()) {
		if auditErr := AuditReservedBits(instr, desc.opType); auditErr != nil {
			return p.fail(auditErr.Error())
		}
		if reg.Status.S&^StatusMask != 0 {
			return p.fail(fmt.Sprintf("invalid status register %#04x", reg.Status.S))
		}
	}

	return result, nil
}
