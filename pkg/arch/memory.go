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

// DefaultMemorySize is the byte size of a machine's memory when not given
// an explicit size: the full span addressable by a 16-bit byte address.
const DefaultMemorySize = 1 << 16

// isAligned reports whether address is a multiple of the two-byte word
// size.
func isAligned(address int) bool {
	return address&0x1 == 0
}

// Memory owns the machine's main memory: a contiguous, word-aligned byte
// buffer addressed by 16-bit byte addresses.
type Memory struct {
	data []byte
}

// NewMemory allocates a memory of the given size in bytes. It panics if the
// size is not word-aligned, since that can only be a programming error, not
// a runtime condition.
func NewMemory(size int) *Memory {
	if !isAligned(size) {
		panic(UnalignedAccessError{Address: size})
	}

	return &Memory{data: make([]byte, size)}
}

// NewDefaultMemory allocates a memory of DefaultMemorySize bytes, the
// largest area a 16-bit address can reach.
func NewDefaultMemory() *Memory {
	return NewMemory(DefaultMemorySize)
}

// Size returns the size of the memory in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Clear resets every byte of memory to zero.
func (m *Memory) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Load reads the word at the given byte address. It returns an error if the
// address is misaligned or out of range.
func (m *Memory) Load(address Address) (Word, error) {
	if !isAligned(int(address)) {
		return 0, UnalignedAccessError{Address: int(address)}
	}
	if int(address)+2 > len(m.data) {
		return 0, OutOfRangeAccessError{Address: int(address), Size: len(m.data)}
	}

	return loadWord(m.data[address:]), nil
}

// Store writes a word at the given byte address. It returns an error if the
// address is misaligned or out of range.
func (m *Memory) Store(address Address, value Word) error {
	if !isAligned(int(address)) {
		return UnalignedAccessError{Address: int(address)}
	}
	if int(address)+2 > len(m.data) {
		return OutOfRangeAccessError{Address: int(address), Size: len(m.data)}
	}

	storeWord(m.data[address:], value)
	return nil
}

// loadUnchecked reads a word without bounds/alignment checks. Callers must
// have already validated the address.
func (m *Memory) loadUnchecked(address Address) Word {
	return loadWord(m.data[address:])
}

// storeUnchecked writes a word without bounds/alignment checks. Callers
// must have already validated the address.
func (m *Memory) storeUnchecked(address Address, value Word) {
	storeWord(m.data[address:], value)
}

// LoadBytes copies raw bytes from memory, starting at address, into dst.
// If the range runs past the end of memory, only the bytes up to the end
// are copied. Neither address nor len(dst) is checked for word alignment.
func (m *Memory) LoadBytes(address Address, dst []byte) {
	copy(dst, m.data[address:])
}

// StoreBytes copies src into memory starting at address. It returns an
// ImageTooLargeError if src does not fit.
func (m *Memory) StoreBytes(address Address, src []byte) error {
	if int(address)+len(src) > len(m.data) {
		return ImageTooLargeError{Size: int(address) + len(src), Capacity: len(m.data)}
	}

	copy(m.data[address:], src)
	return nil
}

// View returns a read-only view of the whole memory area, optionally
// carrying a back-reference to the owning machine state for register/address
// highlighting when rendered.
func (m *Memory) View(state *MachineState) MemoryView {
	return MemoryView{data: m.data, base: 0, state: state}
}

// Sub returns a view into a sub-area of the memory. size is trimmed to the
// end of the memory if it would otherwise overrun. It returns an error if
// off is misaligned or out of range.
func (m *Memory) Sub(off int, size int, state *MachineState) (MemoryView, error) {
	if !isAligned(off) {
		return MemoryView{}, UnalignedAccessError{Address: off}
	}
	if off > len(m.data) {
		return MemoryView{}, OutOfRangeAccessError{Address: off, Size: len(m.data)}
	}

	if max := len(m.data) - off; size > max || size < 0 {
		size = max
	}

	return MemoryView{data: m.data[off : off+size], base: Address(off), state: state}, nil
}

// ViewAt wraps an already-copied byte slice as a MemoryView positioned at
// base, with no owning Memory and no state back-reference. Used to hold a
// point-in-time copy of a window for diff rendering, since a MemoryView
// obtained from View/Sub aliases the live Memory and would never show a
// difference against itself.
func ViewAt(base Address, data []byte) MemoryView {
	return MemoryView{data: data, base: base}
}

// MemoryView is a non-owning, word-aligned window into a Memory, carrying
// the address its first byte corresponds to and an optional back-reference
// to the machine state for visualization (register-equals-address
// highlighting).
type MemoryView struct {
	data  []byte
	base  Address
	state *MachineState
}

// Bytes returns the raw bytes of the view.
func (v MemoryView) Bytes() []byte { return v.data }

// Size returns the size of the view in bytes.
func (v MemoryView) Size() int { return len(v.data) }

// Base returns the byte address in machine memory that the view starts at.
func (v MemoryView) Base() Address { return v.base }

// State returns the machine state backing this view, or nil.
func (v MemoryView) State() *MachineState { return v.state }

// Empty reports whether the view spans zero bytes.
func (v MemoryView) Empty() bool { return len(v.data) == 0 }

// At returns the byte at the given offset into the view.
func (v MemoryView) At(off int) byte { return v.data[off] }
