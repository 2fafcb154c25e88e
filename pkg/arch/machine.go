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

import "io"

// ExecutionMode selects whether a run audits reserved bits and alignment.
type ExecutionMode int

const (
	// ModeNormal runs without the reserved-bits/alignment audit.
	ModeNormal ExecutionMode = iota
	// ModeStrict adds the reserved-bits and alignment audit.
	ModeStrict
)

// MachineState is the CPU-internal state of a machine: its registers and
// an optional debugger. It excludes main memory, which is large and is
// rendered through a narrow window instead of being copied wholesale, and
// excludes devices, which this package has none of.
type MachineState struct {
	Registers RegisterFile
	Debugger  *Debugger
}

// Machine is the full description of a YaRISC machine: its CPU state and
// main memory.
type Machine struct {
	State  MachineState
	Memory *Memory
	Level  FeatureLevel
}

// NewMachine constructs a machine at the given feature level with a fresh
// default-sized memory, optionally wired to a debugger for breakpoint
// hooks and fault storage.
func NewMachine(level FeatureLevel, dbg *Debugger) *Machine {
	return &Machine{
		State:  MachineState{Debugger: dbg},
		Memory: NewDefaultMemory(),
		Level:  level,
	}
}

// Reset returns the machine to its initial state: registers zeroed, memory
// cleared, any stored fault state cleared. The debugger itself, if any, is
// kept.
func (m *Machine) Reset() {
	m.State.Registers = RegisterFile{}
	m.Memory.Clear()

	if m.State.Debugger != nil {
		m.State.Debugger.ResetPanic()
		m.State.Debugger.ResetMessage()
	}
}

// LoadImage reads a raw program image from r into the start of main
// memory. If the image is larger than memory it returns an
// ImageTooLargeError without partially loading it. It is the caller's
// responsibility to read the image from wherever it lives (file, network,
// embedded asset); this package only ever sees a byte stream.
func (m *Machine) LoadImage(r io.Reader) error {
	buf := make([]byte, m.Memory.Size())

	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}

	overflow := make([]byte, 1)
	if extra, _ := r.Read(overflow); extra > 0 {
		return ImageTooLargeError{Size: m.Memory.Size() + extra, Capacity: m.Memory.Size()}
	}

	return m.Memory.StoreBytes(0, buf[:n])
}

func (m *Machine) policy(mode ExecutionMode) *ExecutionPolicy {
	return &ExecutionPolicy{
		Level:    m.Level,
		Debug:    m.State.Debugger != nil,
		Strict:   mode == ModeStrict,
		Debugger: m.State.Debugger,
	}
}

// Step runs a single fetch-decode-execute cycle.
func (m *Machine) Step(mode ExecutionMode) (ExecuteResult, error) {
	return ExecuteInstruction(m.policy(mode), &m.State.Registers, m.Memory)
}

// Execute runs until a halt instruction executes or a breakpoint is hit,
// reporting true if the machine halted and false if it stopped for a
// breakpoint.
func (m *Machine) Execute(mode ExecutionMode) (bool, error) {
	halted, _, err := m.run(mode, 0, false)
	return halted, err
}

// ExecuteSteps runs at most the given number of steps, stopping early on
// halt or breakpoint. It reports whether the machine halted and how many
// steps actually ran.
func (m *Machine) ExecuteSteps(steps uint64, mode ExecutionMode) (bool, uint64, error) {
	return m.run(mode, steps, true)
}

func (m *Machine) run(mode ExecutionMode, steps uint64, limited bool) (bool, uint64, error) {
	policy := m.policy(mode)

	var n uint64
	for !limited || n < steps {
		res, err := ExecuteInstruction(policy, &m.State.Registers, m.Memory)
		n++

		if err != nil {
			return false, n, err
		}
		if !res.KeepGoing {
			return !res.Breakpoint, n, nil
		}
	}

	return false, n, nil
}
