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

package arch_test

import (
	"testing"

	"github.com/yarisc-project/yarisc/pkg/arch"
)

func shortImm(t *testing.T, v arch.Word) arch.ShortImmediate {
	t.Helper()
	imm, err := arch.NewShortImmediate(v)
	if err != nil {
		t.Fatalf("NewShortImmediate(%#04x): %v", v, err)
	}
	return imm
}

// TestDisassembleAddFamily mirrors the original implementation's disassembly
// oracles for ADD/ADC, including the accumulator-elision case where the
// original always prints all three operands rather than eliding the
// repeated one.
func TestDisassembleAddFamily(t *testing.T) {
	tests := []struct {
		Name  string
		Instr arch.Word
		Arg   arch.Word
		Want  string
		Words int
	}{
		{
			Name:  "ADD r0, r1, r2",
			Instr: arch.EncodeOp0Op1Op2Reg(arch.OpAdd, arch.RegR0, arch.RegR1, arch.RegR2),
			Want:  "ADD r0, r1, r2",
			Words: 1,
		},
		{
			Name:  "ADD r1, r1, r1",
			Instr: arch.EncodeOp0Op1Op2Reg(arch.OpAdd, arch.RegR1, arch.RegR1, arch.RegR1),
			Want:  "ADD r1, r1, r1",
			Words: 1,
		},
		{
			Name:  "ADD r5, 6, r5 (accumulator printed explicitly)",
			Instr: arch.EncodeOp0Op1ShortImmediateAccumulator(arch.OpAdd, arch.RegR5, shortImm(t, 6)),
			Want:  "ADD r5, 6, r5",
			Words: 1,
		},
		{
			Name:  "ADD r5, 0xfff9, r5",
			Instr: arch.EncodeOp0Op1ShortImmediateAccumulator(arch.OpAdd, arch.RegR5, shortImm(t, 0xfff9)),
			Want:  "ADD r5, 0xfff9, r5",
			Words: 1,
		},
		{
			Name:  "ADD r4, r4, 5",
			Instr: arch.EncodeOp0AccumulatorShortImmediate(arch.OpAdd, arch.RegR4, shortImm(t, 5)),
			Want:  "ADD r4, r4, 5",
			Words: 1,
		},
		{
			Name:  "ADD r2, 0xf555, r4",
			Instr: arch.EncodeOp0Op1ImmediateOp2(arch.OpAdd, arch.RegR2, arch.RegR4),
			Arg:   0xf555,
			Want:  "ADD r2, 0xf555, r4",
			Words: 2,
		},
		{
			Name:  "ADD r3, r0, 0x0203",
			Instr: arch.EncodeOp0Op1Op2Immediate(arch.OpAdd, arch.RegR3, arch.RegR0),
			Arg:   0x0203,
			Want:  "ADD r3, r0, 0x0203",
			Words: 2,
		},
		{
			Name:  "ADC r0, r1, r2",
			Instr: arch.EncodeOp0Op1Op2Reg(arch.OpAddWithCarry, arch.RegR0, arch.RegR1, arch.RegR2),
			Want:  "ADC r0, r1, r2",
			Words: 1,
		},
		{
			Name:  "ADC r5, 6, r5",
			Instr: arch.EncodeOp0Op1ShortImmediateAccumulator(arch.OpAddWithCarry, arch.RegR5, shortImm(t, 6)),
			Want:  "ADC r5, 6, r5",
			Words: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got := arch.Disassemble(test.Instr, test.Arg, arch.LevelLatest)
			if got.Text != test.Want {
				t.Errorf("text mismatch\nwant: %q\nhave: %q", test.Want, got.Text)
			}
			if got.Words != test.Words {
				t.Errorf("words mismatch\nwant: %d\nhave: %d", test.Words, got.Words)
			}
		})
	}
}

func TestDisassembleCondJumpMnemonics(t *testing.T) {
	tests := []struct {
		Name string
		Cond arch.JumpCondition
		Want string
	}{
		{"carry", arch.JumpIfCarry, "JMC"},
		{"zero", arch.JumpIfZero, "JMZ"},
		{"not carry", arch.JumpIfNotCarry, "JNC"},
		{"not zero", arch.JumpIfNotZero, "JNZ"},
		{"carry and zero combined", arch.JumpCondition(arch.OperandCondFlagCarryMask | arch.OperandCondFlagZeroMask), "JMCZ"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			addr, err := arch.NewShortCondJumpAddress(0)
			if err != nil {
				t.Fatalf("NewShortCondJumpAddress: %v", err)
			}
			instr := arch.EncodeCondJumpShortAddress(arch.OpCondJump, test.Cond, addr)
			got := arch.Disassemble(instr, 0, arch.LevelLatest)
			wantPrefix := test.Want + " "
			if len(got.Text) < len(wantPrefix) || got.Text[:len(wantPrefix)] != wantPrefix {
				t.Errorf("mnemonic mismatch\nwant prefix: %q\nhave: %q", wantPrefix, got.Text)
			}
		})
	}
}

func TestDisassembleInvalidOpcode(t *testing.T) {
	got := arch.Disassemble(arch.Word(arch.OpRelativeLoad), 0, arch.LevelLatest)
	if got.Words != 0 {
		t.Errorf("want 0 words for an unassigned opcode, got %d", got.Words)
	}
}

func TestDisassembleUnsupportedAtFeatureLevel(t *testing.T) {
	got := arch.Disassemble(arch.Word(arch.OpJump), 0, arch.LevelMin)
	if got.Words != 0 {
		t.Errorf("want 0 words for JMP below its feature level, got %d", got.Words)
	}
}
