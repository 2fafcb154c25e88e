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

// RegistersSnapshot is a point-in-time copy of a machine's registers plus
// the two words at the instruction pointer, decoded into the instruction
// about to execute. Addressing the instruction window wraps modulo memory
// size, so a snapshot never fails even when the instruction pointer sits
// near the end of memory.
type RegistersSnapshot struct {
	Registers Registers
	Status    StatusRegister

	// Instruction is the disassembly of the instruction at IP, read from
	// main memory.
	Instruction Disassembly
}

// Snapshot captures the machine's current registers and decodes the next
// instruction, for rendering in a debugger view.
func (m *Machine) Snapshot() RegistersSnapshot {
	size := m.Memory.Size()
	ip := int(m.State.Registers.Named.IP())

	// Each byte wraps on its own, so an odd ip at the last byte of memory
	// still reads two in-range bytes.
	wordAt := func(addr int) Word {
		return Word(m.Memory.data[addr%size]) | Word(m.Memory.data[(addr+1)%size])<<8
	}
	first := wordAt(ip)
	second := wordAt(ip + 2)

	return RegistersSnapshot{
		Registers:   m.State.Registers.Named,
		Status:      m.State.Registers.Status,
		Instruction: Disassemble(first, second, m.Level),
	}
}

// registerValueAt reports the index (0-7) of the register currently equal
// to address, and whether one exists. When more than one register holds
// the same value, ip wins ties, matching the priority given to the
// instruction pointer when highlighting memory.
func registerValueAt(regs Registers, address Word) (RegAddr, bool) {
	if regs.IP() == address {
		return RegIP, true
	}
	for i := 0; i < NumRegisters-1; i++ {
		if regs.R[i] == address {
			return RegAddr(i), true
		}
	}
	return 0, false
}
