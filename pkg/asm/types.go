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

package asm

import "fmt"

// TokenType names the lexical class of one scanned token.
type TokenType uint

const (
	TOKEN_NONE TokenType = iota
	TOKEN_IDENT
	TOKEN_LITERAL
	TOKEN_ACCUMULATOR
)

// Cursor locates a token or error within the source being assembled.
type Cursor struct {
	Line   int
	Column int
}

// Token is one lexical unit of a source line: a mnemonic, register name,
// condition suffix, the "acc" accumulator placeholder, or a numeric literal.
// There is no label or directive token: this assembler has no linker, so
// every line stands on its own.
type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

// TokenError is any error produced while assembling, located at a Cursor.
type TokenError interface {
	error
	GetPosition() Cursor
}

// UnexpectedCharacterError reports a character that cannot start or
// continue any recognized token.
type UnexpectedCharacterError struct {
	Position Cursor
	Received rune
}

func (err *UnexpectedCharacterError) GetPosition() Cursor { return err.Position }

func (err *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("%02d:%02d: unexpected character %c", err.Position.Line, err.Position.Column, err.Received)
}

// InvalidLiteralError reports a numeric literal that could not be parsed at
// all (malformed hex or decimal syntax).
type InvalidLiteralError struct {
	Position Cursor
	Value    string
}

func (err *InvalidLiteralError) GetPosition() Cursor { return err.Position }

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf("%02d:%02d: invalid numeric literal %q", err.Position.Line, err.Position.Column, err.Value)
}

// InvalidRegisterError reports an identifier that is not one of the eight
// register names.
type InvalidRegisterError struct {
	Position Cursor
	Value    string
}

func (err *InvalidRegisterError) GetPosition() Cursor { return err.Position }

func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf("%02d:%02d: invalid register identifier %q", err.Position.Line, err.Position.Column, err.Value)
}

// UnknownMnemonicError reports an identifier in instruction position that
// names no known opcode or condition combination.
type UnknownMnemonicError struct {
	Position Cursor
	Value    string
}

func (err *UnknownMnemonicError) GetPosition() Cursor { return err.Position }

func (err *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("%02d:%02d: unknown mnemonic %q", err.Position.Line, err.Position.Column, err.Value)
}

// InvalidOperandError reports a token in operand position that isn't one of
// the shapes the mnemonic accepts (a register, the accumulator placeholder,
// or a numeric literal).
type InvalidOperandError struct {
	Position Cursor
	Mnemonic string
	Received string
}

func (err *InvalidOperandError) GetPosition() Cursor { return err.Position }

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf("%02d:%02d: invalid operand %q for %s", err.Position.Line, err.Position.Column, err.Received, err.Mnemonic)
}

// InvalidNumArgumentsError reports an instruction given the wrong number of
// operands for its mnemonic.
type InvalidNumArgumentsError struct {
	Position Cursor
	Mnemonic string
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor { return err.Position }

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s takes %d operand(s), got %d",
		err.Position.Line, err.Position.Column, err.Mnemonic, err.Required, err.Received,
	)
}

// InvalidAccumulatorShapeError reports a three-operand instruction whose
// accumulator placeholder and immediate operand aren't arranged the way the
// codec requires (exactly one of the two non-destination operands must be
// the accumulator, and the other must be an immediate, when either operand
// is the accumulator at all).
type InvalidAccumulatorShapeError struct {
	Position Cursor
	Mnemonic string
}

func (err *InvalidAccumulatorShapeError) GetPosition() Cursor { return err.Position }

func (err *InvalidAccumulatorShapeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s: the accumulator placeholder must pair with an immediate operand",
		err.Position.Line, err.Position.Column, err.Mnemonic,
	)
}
