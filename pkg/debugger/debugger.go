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

// Package debugger implements a breakpoint/watchpoint list that plugs into
// arch's debug execution policy via arch.BreakpointHook.
package debugger

import "github.com/yarisc-project/yarisc/pkg/arch"

// NewList returns an empty breakpoint/watchpoint list.
func NewList() *List {
	return &List{}
}

// AddBreakpoint adds a code breakpoint at addr, if one isn't already there.
func (l *List) AddBreakpoint(addr arch.Address) {
	for _, bp := range l.Breakpoints {
		if bp.Addr == addr {
			return
		}
	}
	l.Breakpoints = append(l.Breakpoints, Breakpoint{Addr: addr})
}

// RemoveBreakpoint removes the code breakpoint at addr, if any. It reports
// whether one was removed.
func (l *List) RemoveBreakpoint(addr arch.Address) bool {
	for i, bp := range l.Breakpoints {
		if bp.Addr == addr {
			l.Breakpoints = append(l.Breakpoints[:i], l.Breakpoints[i+1:]...)
			return true
		}
	}
	return false
}

// AddWatchpoint adds a data (write) watchpoint at addr, if one isn't
// already there.
func (l *List) AddWatchpoint(addr arch.Address) {
	for _, wp := range l.Watchpoints {
		if wp.Addr == addr {
			return
		}
	}
	l.Watchpoints = append(l.Watchpoints, Watchpoint{Addr: addr})
}

// RemoveWatchpoint removes the watchpoint at addr, if any. It reports
// whether one was removed.
func (l *List) RemoveWatchpoint(addr arch.Address) bool {
	for i, wp := range l.Watchpoints {
		if wp.Addr == addr {
			l.Watchpoints = append(l.Watchpoints[:i], l.Watchpoints[i+1:]...)
			return true
		}
	}
	return false
}

// Breakpoint implements arch.BreakpointHook: it reports whether execution
// should stop before the instruction at address runs.
func (l *List) Breakpoint(address arch.Address) bool {
	for _, bp := range l.Breakpoints {
		if bp.Addr == address {
			if l.HandleBreak != nil {
				l.HandleBreak(address)
			}
			return true
		}
	}
	return false
}

// DataBreakpoint implements arch.BreakpointHook: it reports whether
// execution should stop before value is written to address.
func (l *List) DataBreakpoint(address arch.Address, value arch.Word) bool {
	for _, wp := range l.Watchpoints {
		if wp.Addr == address {
			if l.HandleWatch != nil {
				l.HandleWatch(address, value)
			}
			return true
		}
	}
	return false
}
