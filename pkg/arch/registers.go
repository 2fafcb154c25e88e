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

// RegNames holds the fixed display names of the eight named registers, in
// register-index order.
var RegNames = [NumRegisters]string{"r0", "r1", "r2", "r3", "r4", "r5", "sp", "ip"}

// Registers holds the eight named general/scratch/stack/instruction
// registers. r0-r2 are non-volatile general purpose; r3-r5 are volatile
// scratch (r4 conventionally the result pointer, r5 the return address);
// r6 is the stack pointer; r7 is the instruction pointer.
type Registers struct {
	R [NumRegisters]Word
}

func (r Registers) R0() Word { return r.R[0] }
func (r Registers) R1() Word { return r.R[1] }
func (r Registers) R2() Word { return r.R[2] }
func (r Registers) R3() Word { return r.R[3] }
func (r Registers) R4() Word { return r.R[4] }
func (r Registers) R5() Word { return r.R[5] }
func (r Registers) SP() Word { return r.R[6] }
func (r Registers) IP() Word { return r.R[7] }

func (r *Registers) SetR0(w Word) { r.R[0] = w }
func (r *Registers) SetR1(w Word) { r.R[1] = w }
func (r *Registers) SetR2(w Word) { r.R[2] = w }
func (r *Registers) SetR3(w Word) { r.R[3] = w }
func (r *Registers) SetR4(w Word) { r.R[4] = w }
func (r *Registers) SetR5(w Word) { r.R[5] = w }
func (r *Registers) SetSP(w Word) { r.R[6] = w }
func (r *Registers) SetIP(w Word) { r.R[7] = w }

// RegisterFile bundles the named registers with the status register, the
// unit the execution core reads and mutates on every instruction.
type RegisterFile struct {
	Named  Registers
	Status StatusRegister
}

// StatusRegister holds the carry and zero flags of the last arithmetic
// operation. Outside strict mode, only bits 0 (carry) and 1 (zero) are
// meaningful; strict mode audits that no other bit is ever set.
type StatusRegister struct {
	S Word
}

const (
	CarryPos uint = 0
	ZeroPos  uint = 1

	CarryFlag Word = 1 << CarryPos
	ZeroFlag  Word = 1 << ZeroPos

	StatusMask Word = CarryFlag | ZeroFlag
)

func (s StatusRegister) Carry() bool { return s.S&CarryFlag != 0 }
func (s StatusRegister) Zero() bool  { return s.S&ZeroFlag != 0 }

func (s *StatusRegister) SetCarry(c bool) {
	if c {
		s.S |= CarryFlag
	} else {
		s.S &^= CarryFlag
	}
}

func (s *StatusRegister) SetZero(z bool) {
	if z {
		s.S |= ZeroFlag
	} else {
		s.S &^= ZeroFlag
	}
}
