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
package printer

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
)

// Fprint writes a given program to a writer as source text.  The layout is
// fixed, with one declaration or statement per line and four spaces of
// indentation per level, such that printing is stable.
func Fprint(w io.Writer, program *ast.Program) error {
	_, err := io.WriteString(w, String(program))
	return err
}

// String returns the source text of a given program.
func String(program *ast.Program) string {
	var p printer
	//
	for i, decl := range program.Declarations {
		// Separate declarations by a blank line, except for consecutive
		// variables.
		if i > 0 && !(isVariable(decl) && isVariable(program.Declarations[i-1])) {
			p.WriteString("\n")
		}
		//
		p.declaration(decl, 0)
	}
	//
	return p.String()
}

// Expr returns the source text of a given expression.
func Expr(expr ast.Expr) string {
	var p printer
	//
	p.expr(expr)
	//
	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) indent(level int) {
	p.WriteString(strings.Repeat("    ", level))
}

func (p *printer) declaration(decl ast.Declaration, level int) {
	switch d := decl.(type) {
	case *ast.TypeDecl:
		p.typeDecl(d, level)
	case *ast.Variable:
		p.indent(level)
		p.variable(d)
	case *ast.Extern:
		p.indent(level)
		fmt.Fprintf(p, "extern %s %s", d.Return.String(), d.Name())
		p.parameters(d.Params)
		p.WriteString(";\n")
	case *ast.Function:
		p.indent(level)
		fmt.Fprintf(p, "%s %s", d.Return.String(), d.Name())
		p.parameters(d.Params)
		p.WriteString(" ")
		p.block(d.Body, level)
		p.WriteString("\n")
	case *ast.Action:
		p.indent(level)
		fmt.Fprintf(p, "action %s", d.Name())
		p.parameters(d.Params)
		p.WriteString(" ")
		p.block(d.Body, level)
		p.WriteString("\n")
	case *ast.Control:
		p.indent(level)
		fmt.Fprintf(p, "control %s", d.Name())
		p.parameters(d.Params)
		p.WriteString(" {\n")
		//
		for _, local := range d.Locals {
			p.declaration(local, level+1)
		}
		//
		p.indent(level + 1)
		p.WriteString("apply ")
		p.block(d.Body, level+1)
		p.WriteString("\n")
		p.indent(level)
		p.WriteString("}\n")
	default:
		panic(fmt.Sprintf("unknown declaration encountered (%s)", reflect.TypeOf(decl).String()))
	}
}

func (p *printer) typeDecl(decl *ast.TypeDecl, level int) {
	keyword := "struct"
	//
	if _, ok := decl.Type.(*data.Header); ok {
		keyword = "header"
	}
	//
	p.indent(level)
	fmt.Fprintf(p, "%s %s {\n", keyword, decl.Name())
	//
	for _, f := range decl.Type.Fields() {
		p.indent(level + 1)
		fmt.Fprintf(p, "%s %s;\n", f.Type.String(), f.Name)
	}
	//
	p.indent(level)
	p.WriteString("}\n")
}

// Write a variable declaration (without indentation).
func (p *printer) variable(decl *ast.Variable) {
	for _, a := range decl.Annotations {
		if a.Body != "" {
			fmt.Fprintf(p, "@%s(%s) ", a.Label, a.Body)
		} else {
			fmt.Fprintf(p, "@%s ", a.Label)
		}
	}
	//
	fmt.Fprintf(p, "%s %s", decl.Type.String(), decl.Name())
	//
	if decl.Initializer.HasValue() {
		p.WriteString(" = ")
		p.expr(decl.Initializer.Unwrap())
	}
	//
	p.WriteString(";\n")
}

func (p *printer) parameters(params []*ast.Parameter) {
	p.WriteString("(")
	//
	for i, param := range params {
		if i != 0 {
			p.WriteString(", ")
		}
		//
		if param.Direction != ast.NONE {
			fmt.Fprintf(p, "%s ", param.Direction.String())
		}
		//
		fmt.Fprintf(p, "%s %s", param.Type.String(), param.Name())
	}
	//
	p.WriteString(")")
}

// ============================================================================
// Statements
// ============================================================================

// Write a block, assuming the opening brace is already positioned.  The
// closing brace is not followed by a newline.
func (p *printer) block(block *ast.Block, level int) {
	p.WriteString("{\n")
	//
	for _, stmt := range block.Stmts {
		p.statement(stmt, level+1)
	}
	//
	p.indent(level)
	p.WriteString("}")
}

func (p *printer) statement(stmt ast.Statement, level int) {
	p.indent(level)
	//
	switch s := stmt.(type) {
	case *ast.Block:
		p.block(s, level)
		p.WriteString("\n")
	case *ast.Variable:
		p.variable(s)
	case *ast.Assign:
		p.expr(s.Target)
		p.WriteString(" = ")
		p.expr(s.Source)
		p.WriteString(";\n")
	case *ast.CallStmt:
		p.expr(s.Call)
		p.WriteString(";\n")
	case *ast.If:
		p.ifElse(s, level)
		p.WriteString("\n")
	case *ast.Return:
		p.WriteString("return")
		//
		if s.Value.HasValue() {
			p.WriteString(" ")
			p.expr(s.Value.Unwrap())
		}
		//
		p.WriteString(";\n")
	default:
		panic(fmt.Sprintf("unknown statement encountered (%s)", reflect.TypeOf(stmt).String()))
	}
}

// Write a conditional, whose branches are always written as blocks.
func (p *printer) ifElse(stmt *ast.If, level int) {
	p.WriteString("if (")
	p.expr(stmt.Cond)
	p.WriteString(") ")
	p.branch(stmt.Then, level)
	//
	switch s := stmt.Else.(type) {
	case nil:
		return
	case *ast.If:
		p.WriteString(" else ")
		p.ifElse(s, level)
	default:
		p.WriteString(" else ")
		p.branch(s, level)
	}
}

func (p *printer) branch(stmt ast.Statement, level int) {
	if block, ok := stmt.(*ast.Block); ok {
		p.block(block, level)
	} else {
		p.block(ast.NewBlock(stmt), level)
	}
}

// ============================================================================
// Expressions
// ============================================================================

// Binding strength of each binary operator, where higher binds tighter.
var precedence = map[ast.BinOp]int{
	ast.LOR:  1,
	ast.LAND: 2,
	ast.EQ:   3, ast.NEQ: 3,
	ast.LT: 4, ast.LTEQ: 4, ast.GT: 4, ast.GTEQ: 4,
	ast.BOR:  5,
	ast.BXOR: 6,
	ast.BAND: 7,
	ast.ADD:  8, ast.SUB: 8,
	ast.MUL: 9,
}

func (p *printer) expr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Path:
		p.WriteString(e.Name)
	case *ast.Member:
		p.operand(e.Expr)
		fmt.Fprintf(p, ".%s", e.Field)
	case *ast.Index:
		p.operand(e.Expr)
		fmt.Fprintf(p, "[%d]", e.Index)
	case *ast.Constant:
		p.constant(e)
	case *ast.Boolean:
		fmt.Fprintf(p, "%t", e.Value)
	case *ast.Binary:
		prec := precedence[e.Op]
		p.binaryOperand(e.Left, prec, false)
		fmt.Fprintf(p, " %s ", e.Op.String())
		p.binaryOperand(e.Right, prec, true)
	case *ast.Unary:
		p.WriteString(e.Op.String())
		p.operand(e.Expr)
	case *ast.Call:
		p.operand(e.Func)
		p.exprs("(", e.Args, ")")
	case *ast.List:
		p.exprs("{", e.Elements, "}")
	default:
		panic(fmt.Sprintf("unknown expression encountered (%s)", reflect.TypeOf(expr).String()))
	}
}

// Write an operand of a postfix or unary operator, which must be bracketed if
// it is itself a binary or unary operation.
func (p *printer) operand(expr ast.Expr) {
	switch expr.(type) {
	case *ast.Binary, *ast.Unary:
		p.WriteString("(")
		p.expr(expr)
		p.WriteString(")")
	default:
		p.expr(expr)
	}
}

// Write an operand of a binary operator, which must be bracketed if it binds
// less tightly (or, on the right, equally tightly) than that operator.
func (p *printer) binaryOperand(expr ast.Expr, prec int, right bool) {
	if b, ok := expr.(*ast.Binary); ok {
		if inner := precedence[b.Op]; inner < prec || (right && inner == prec) {
			p.WriteString("(")
			p.expr(expr)
			p.WriteString(")")
			//
			return
		}
	}
	//
	p.expr(expr)
}

func (p *printer) exprs(open string, exprs []ast.Expr, close string) {
	p.WriteString(open)
	//
	for i, e := range exprs {
		if i != 0 {
			p.WriteString(", ")
		}
		//
		p.expr(e)
	}
	//
	p.WriteString(close)
}

func (p *printer) constant(c *ast.Constant) {
	if c.Width != 0 {
		fmt.Fprintf(p, "%dw", c.Width)
	}
	//
	switch c.Base {
	case 16:
		fmt.Fprintf(p, "0x%s", c.Value.Text(16))
	case 2:
		fmt.Fprintf(p, "0b%s", c.Value.Text(2))
	default:
		p.WriteString(c.Value.Text(10))
	}
}

func isVariable(decl ast.Declaration) bool {
	_, ok := decl.(*ast.Variable)
	return ok
}
