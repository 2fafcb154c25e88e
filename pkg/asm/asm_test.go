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

package asm_test

import (
	"strings"
	"testing"

	"github.com/yarisc-project/yarisc/pkg/arch"
	"github.com/yarisc-project/yarisc/pkg/asm"
)

func assembleOne(t *testing.T, src string) []arch.Word {
	t.Helper()

	result, errs := asm.Assemble(strings.NewReader(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors assembling %q: %v", src, errs)
	}
	return result.Words
}

func TestAssembleBasic(t *testing.T) {
	tests := []struct {
		Src  string
		Want []arch.Word
	}{
		{"NOP", []arch.Word{arch.EncodeBasic(arch.OpNoop)}},
		{"HLT", []arch.Word{arch.EncodeBasic(arch.OpHalt)}},
		{"nop", []arch.Word{arch.EncodeBasic(arch.OpNoop)}},
	}

	for _, test := range tests {
		t.Run(test.Src, func(t *testing.T) {
			got := assembleOne(t, test.Src)
			if !wordsEqual(got, test.Want) {
				t.Errorf("want %#04x, got %#04x", test.Want, got)
			}
		})
	}
}

func TestAssembleTwoOperand(t *testing.T) {
	tests := []struct {
		Src  string
		Want []arch.Word
	}{
		{
			"MOV r0, r1",
			[]arch.Word{arch.EncodeOp0Op1Reg(arch.OpMove, arch.RegR0, arch.RegR1)},
		},
		{
			"LDR r0, sp",
			[]arch.Word{arch.EncodeOp0Op1Reg(arch.OpLoad, arch.RegR0, arch.RegSP)},
		},
		{
			"MOV r0, 5",
			[]arch.Word{arch.EncodeOp0Op1ShortImmediate(arch.OpMove, arch.RegR0, mustShortImm(t, 5))},
		},
		{
			"MOV r0, 0x1234",
			[]arch.Word{arch.EncodeOp0Op1Immediate(arch.OpMove, arch.RegR0), 0x1234},
		},
		{
			"MOV r0, -7",
			[]arch.Word{arch.EncodeOp0Op1ShortImmediate(arch.OpMove, arch.RegR0, mustShortImm(t, 0xfff9))},
		},
	}

	for _, test := range tests {
		t.Run(test.Src, func(t *testing.T) {
			got := assembleOne(t, test.Src)
			if !wordsEqual(got, test.Want) {
				t.Errorf("want %#04x, got %#04x", test.Want, got)
			}
		})
	}
}

func TestAssembleThreeOperandShapes(t *testing.T) {
	tests := []struct {
		Src  string
		Want []arch.Word
	}{
		{
			"ADD r0, r1, r2",
			[]arch.Word{arch.EncodeOp0Op1Op2Reg(arch.OpAdd, arch.RegR0, arch.RegR1, arch.RegR2)},
		},
		{
			"ADD r0, 6, r5",
			[]arch.Word{arch.EncodeOp0Op1ImmediateOp2(arch.OpAdd, arch.RegR0, arch.RegR5), 6},
		},
		{
			"ADD r0, r5, 6",
			[]arch.Word{arch.EncodeOp0Op1Op2Immediate(arch.OpAdd, arch.RegR0, arch.RegR5), 6},
		},
		{
			"ADD r5, 6, acc",
			[]arch.Word{arch.EncodeOp0Op1ShortImmediateAccumulator(arch.OpAdd, arch.RegR5, mustShortImm(t, 6))},
		},
		{
			"ADD r5, acc, 6",
			[]arch.Word{arch.EncodeOp0AccumulatorShortImmediate(arch.OpAdd, arch.RegR5, mustShortImm(t, 6))},
		},
		{
			"ADC r0, r1, r2",
			[]arch.Word{arch.EncodeOp0Op1Op2Reg(arch.OpAddWithCarry, arch.RegR0, arch.RegR1, arch.RegR2)},
		},
	}

	for _, test := range tests {
		t.Run(test.Src, func(t *testing.T) {
			got := assembleOne(t, test.Src)
			if !wordsEqual(got, test.Want) {
				t.Errorf("want %#04x, got %#04x", test.Want, got)
			}
		})
	}
}

func TestAssembleJumpPicksShortestEncoding(t *testing.T) {
	tests := []struct {
		Src       string
		WantWords int
	}{
		{"JMP 0x01fc", 1},
		{"JMP 0x1000", 2},
		{"JMC 0x10", 1},
		{"JNZ 0x1000", 2},
		{"JMCZ 0x10", 1},
	}

	for _, test := range tests {
		t.Run(test.Src, func(t *testing.T) {
			got := assembleOne(t, test.Src)
			if len(got) != test.WantWords {
				t.Errorf("want %d words, got %d (%#04x)", test.WantWords, len(got), got)
			}
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		Name    string
		Src     string
		WantErr interface{}
	}{
		{"unknown mnemonic", "FOO r0, r1", &asm.UnknownMnemonicError{}},
		{"bad register", "MOV r0, r9", &asm.InvalidRegisterError{}},
		{"wrong arity", "MOV r0", &asm.InvalidNumArgumentsError{}},
		{"bad literal", "MOV r0, 0xzz", &asm.InvalidLiteralError{}},
		{"accumulator with no immediate partner", "ADD r0, acc, r1", &asm.InvalidAccumulatorShapeError{}},
		{"accumulator as destination is an invalid operand", "ADD acc, r0, r1", &asm.InvalidOperandError{}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, errs := asm.Assemble(strings.NewReader(test.Src))
			if len(errs) == 0 {
				t.Fatalf("want an error assembling %q, got none", test.Src)
			}

			switch test.WantErr.(type) {
			case *asm.UnknownMnemonicError:
				if _, ok := errs[0].(*asm.UnknownMnemonicError); !ok {
					t.Errorf("want UnknownMnemonicError, got %T (%v)", errs[0], errs[0])
				}
			case *asm.InvalidRegisterError:
				if _, ok := errs[0].(*asm.InvalidRegisterError); !ok {
					t.Errorf("want InvalidRegisterError, got %T (%v)", errs[0], errs[0])
				}
			case *asm.InvalidNumArgumentsError:
				if _, ok := errs[0].(*asm.InvalidNumArgumentsError); !ok {
					t.Errorf("want InvalidNumArgumentsError, got %T (%v)", errs[0], errs[0])
				}
			case *asm.InvalidLiteralError:
				if _, ok := errs[0].(*asm.InvalidLiteralError); !ok {
					t.Errorf("want InvalidLiteralError, got %T (%v)", errs[0], errs[0])
				}
			case *asm.InvalidAccumulatorShapeError:
				if _, ok := errs[0].(*asm.InvalidAccumulatorShapeError); !ok {
					t.Errorf("want InvalidAccumulatorShapeError, got %T (%v)", errs[0], errs[0])
				}
			case *asm.InvalidOperandError:
				if _, ok := errs[0].(*asm.InvalidOperandError); !ok {
					t.Errorf("want InvalidOperandError, got %T (%v)", errs[0], errs[0])
				}
			}
		})
	}
}

func TestAssembleCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "; a comment\n\nNOP ; trailing comment\n"
	got := assembleOne(t, src)
	want := []arch.Word{arch.EncodeBasic(arch.OpNoop)}
	if !wordsEqual(got, want) {
		t.Errorf("want %#04x, got %#04x", want, got)
	}
}

func TestAssembleLineOffsetsTrackWordsPerLine(t *testing.T) {
	src := "NOP\nMOV r0, 0x1234\nHLT\n"
	result, errs := asm.Assemble(strings.NewReader(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []int{0, 1, 3}
	if len(result.LineOffsets) != len(want) {
		t.Fatalf("want %d line offsets, got %d (%v)", len(want), len(result.LineOffsets), result.LineOffsets)
	}
	for i, off := range want {
		if result.LineOffsets[i] != off {
			t.Errorf("line %d: want offset %d, got %d", i, off, result.LineOffsets[i])
		}
	}
}

func mustShortImm(t *testing.T, v arch.Word) arch.ShortImmediate {
	t.Helper()
	imm, err := arch.NewShortImmediate(v)
	if err != nil {
		t.Fatalf("NewShortImmediate(%#04x): %v", v, err)
	}
	return imm
}

func wordsEqual(a, b []arch.Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
