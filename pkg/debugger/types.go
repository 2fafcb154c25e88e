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

package debugger

import "github.com/yarisc-project/yarisc/pkg/arch"

// Breakpoint halts execution before the instruction at Addr runs.
type Breakpoint struct {
	Addr arch.Address
}

// Watchpoint halts execution before a store to Addr completes. There is no
// read-watchpoint variant: the execution core only ever consults the
// breakpoint hook on instruction fetch and on a memory write, never on a
// load, so a read watchpoint would have nothing to hook into.
type Watchpoint struct {
	Addr arch.Address
}

// List holds the breakpoint and watchpoint sets a single debugging session
// is tracking. It implements arch.BreakpointHook, so it can be handed
// directly to arch.NewDebugger.
type List struct {
	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	// HandleBreak, if set, is called whenever a code breakpoint matches,
	// before List reports it to the execution policy.
	HandleBreak func(addr arch.Address)
	// HandleWatch, if set, is called whenever a data breakpoint matches.
	HandleWatch func(addr arch.Address, value arch.Word)
}
