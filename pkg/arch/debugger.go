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

// BreakpointHook is consulted by the debug execution policy before each
// fetch and before each memory write, so a debugger can halt execution
// without the core loop knowing anything about breakpoint storage.
type BreakpointHook interface {
	// Breakpoint reports whether execution should stop before the
	// instruction at address runs.
	Breakpoint(address Address) bool
	// DataBreakpoint reports whether execution should stop before value is
	// written to address.
	DataBreakpoint(address Address, value Word) bool
}

// Debugger accumulates the panic/halt state and the last informational or
// error message produced by a machine run, so a surrounding UI can render
// it without the execution core depending on any particular rendering.
type Debugger struct {
	panicked bool
	message  string

	hook BreakpointHook
}

// NewDebugger returns a Debugger that consults hook for breakpoints, or no
// hook at all if hook is nil.
func NewDebugger(hook BreakpointHook) *Debugger {
	return &Debugger{hook: hook}
}

// Panic reports whether the machine has halted on an unrecoverable
// condition.
func (d *Debugger) Panic() bool { return d.panicked }

// Message returns the last stored informational or error message.
func (d *Debugger) Message() string { return d.message }

// ResetPanic clears the panic flag, allowing execution to resume.
func (d *Debugger) ResetPanic() { d.panicked = false }

// ResetMessage clears the stored message.
func (d *Debugger) ResetMessage() { d.message = "" }

// storeMessage records msg without setting the panic flag.
func (d *Debugger) storeMessage(msg string) {
	d.message = msg
}

// storePanic records msg and sets the panic flag, asking the caller to stop
// stepping until ResetPanic is called.
func (d *Debugger) storePanic(msg string) {
	d.message = msg
	d.panicked = true
}

func (d *Debugger) breakpoint(address Address) bool {
	if d == nil || d.hook == nil {
		return false
	}
	return d.hook.Breakpoint(address)
}

func (d *Debugger) dataBreakpoint(address Address, value Word) bool {
	if d == nil || d.hook == nil {
		return false
	}
	return d.hook.DataBreakpoint(address, value)
}

// DebuggerView is a snapshot of a debugger's externally visible state,
// ready to render alongside a machine-state diff.
type DebuggerView struct {
	Panic   bool
	Message string
}

// View returns the current externally visible state of the debugger.
func (d *Debugger) View() DebuggerView {
	if d == nil {
		return DebuggerView{}
	}
	return DebuggerView{Panic: d.panicked, Message: d.message}
}
