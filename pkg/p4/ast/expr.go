// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"math/big"
)

// Path is a bare reference to a named declaration (e.g. a variable, parameter
// or function).  The declaration being referred to is determined by the type
// checker.
type Path struct {
	Name string
}

// NewPath constructs a reference to a given name.
func NewPath(name string) *Path {
	return &Path{name}
}

// Member represents a field access "e.f" on a struct-like value.
type Member struct {
	Expr  Expr
	Field string
}

// NewMember constructs a field access on a given expression.
func NewMember(expr Expr, field string) *Member {
	return &Member{expr, field}
}

// Index represents an element access "e[i]" on a stack or tuple, where the
// index is a constant.
type Index struct {
	Expr  Expr
	Index uint
}

// Constant represents an integer literal, optionally with a fixed width (e.g.
// "8w3").  A width of zero indicates an unsized literal.
type Constant struct {
	Value big.Int
	// Base used when writing this constant (2, 10 or 16).
	Base uint
	// Width of this constant, or zero if unsized.
	Width uint
}

// NewConstant constructs an unsized decimal constant.
func NewConstant(val int64) *Constant {
	var v big.Int
	//
	v.SetInt64(val)
	//
	return &Constant{v, 10, 0}
}

// Boolean represents the literal "true" or "false".
type Boolean struct {
	Value bool
}

// BinOp identifies a binary operator.
type BinOp uint8

const (
	// ADD is "+"
	ADD BinOp = iota
	// SUB is "-"
	SUB
	// MUL is "*"
	MUL
	// BAND is "&"
	BAND
	// BOR is "|"
	BOR
	// BXOR is "^"
	BXOR
	// EQ is "=="
	EQ
	// NEQ is "!="
	NEQ
	// LT is "<"
	LT
	// LTEQ is "<="
	LTEQ
	// GT is ">"
	GT
	// GTEQ is ">="
	GTEQ
	// LAND is "&&"
	LAND
	// LOR is "||"
	LOR
)

var binOpStrings = [...]string{
	ADD: "+", SUB: "-", MUL: "*", BAND: "&", BOR: "|", BXOR: "^",
	EQ: "==", NEQ: "!=", LT: "<", LTEQ: "<=", GT: ">", GTEQ: ">=",
	LAND: "&&", LOR: "||",
}

func (op BinOp) String() string {
	return binOpStrings[op]
}

// IsComparison determines whether this operator compares its operands,
// producing a boolean.
func (op BinOp) IsComparison() bool {
	return op >= EQ && op <= GTEQ
}

// IsLogical determines whether this operator combines boolean operands.
func (op BinOp) IsLogical() bool {
	return op == LAND || op == LOR
}

// Binary represents a binary operation "l op r".
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// UnOp identifies a unary operator.
type UnOp uint8

const (
	// NOT is "!"
	NOT UnOp = iota
	// NEG is "-"
	NEG
	// CMPL is "~"
	CMPL
)

func (op UnOp) String() string {
	switch op {
	case NOT:
		return "!"
	case NEG:
		return "-"
	default:
		return "~"
	}
}

// Unary represents a unary operation "op e".
type Unary struct {
	Op   UnOp
	Expr Expr
}

// Call represents the invocation of a function, action or extern.
type Call struct {
	Func Expr
	Args []Expr
}

// NewCall constructs a call of a given name with some arguments.
func NewCall(name string, args ...Expr) *Call {
	return &Call{NewPath(name), args}
}

// List represents a list expression "{e1, ..., en}", which can initialise a
// struct or tuple.
type List struct {
	Elements []Expr
}

func (p *Path) node()     {}
func (p *Member) node()   {}
func (p *Index) node()    {}
func (p *Constant) node() {}
func (p *Boolean) node()  {}
func (p *Binary) node()   {}
func (p *Unary) node()    {}
func (p *Call) node()     {}
func (p *List) node()     {}

func (p *Path) exprNode()     {}
func (p *Member) exprNode()   {}
func (p *Index) exprNode()    {}
func (p *Constant) exprNode() {}
func (p *Boolean) exprNode()  {}
func (p *Binary) exprNode()   {}
func (p *Unary) exprNode()    {}
func (p *Call) exprNode()     {}
func (p *List) exprNode()     {}

// IsLValue determines whether a given expression denotes a location which can
// be written (i.e. a variable, or a field / element of one).
func IsLValue(e Expr) bool {
	switch e := e.(type) {
	case *Path:
		return true
	case *Member:
		return IsLValue(e.Expr)
	case *Index:
		return IsLValue(e.Expr)
	default:
		return false
	}
}
