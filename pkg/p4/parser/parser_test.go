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
package parser

import (
	"testing"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*ast.Program, *source.Map[any]) {
	srcfile := source.NewSourceFile("test.p4", []byte(src))
	program, srcmap, errs := Parse(srcfile)
	require.Empty(t, errs)
	//
	return program, srcmap
}

func parseError(t *testing.T, src string, msg string) {
	srcfile := source.NewSourceFile("test.p4", []byte(src))
	_, _, errs := Parse(srcfile)
	require.Len(t, errs, 1)
	require.Equal(t, msg, errs[0].Message())
}

func TestLex_Keywords(t *testing.T) {
	srcfile := source.NewSourceFile("test.p4", []byte("struct S { bit<8> a; } // done"))
	tokens, errs := Lex(srcfile)
	require.Empty(t, errs)
	//
	kinds := make([]uint, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	//
	require.Equal(t, []uint{KEYWORD_STRUCT, IDENTIFIER, LCURLY, KEYWORD_BIT, LESS_THAN, NUMBER, GREATER_THAN,
		IDENTIFIER, SEMICOLON, RCURLY, END_OF}, kinds)
}

func TestLex_UnknownText(t *testing.T) {
	srcfile := source.NewSourceFile("test.p4", []byte("bit<8> x; $"))
	_, errs := Lex(srcfile)
	require.Len(t, errs, 1)
	require.Equal(t, "unknown text encountered", errs[0].Message())
}

func TestParse_TypeDecls(t *testing.T) {
	program, _ := parse(t, `
header H { bit<8> f; bool v; }
struct In { bit<8> p; int<4> q; }
struct S { In x; H h; tuple<bit<8>, bool> t; H[2] hs; }
`)
	require.Len(t, program.Declarations, 3)
	//
	s := program.Declarations[2].(*ast.TypeDecl).Type
	require.Equal(t, "S", s.Name())
	require.Len(t, s.Fields(), 4)
	//
	x, ok := s.Field("x")
	require.True(t, ok)
	require.Same(t, program.Declarations[1].(*ast.TypeDecl).Type, x.Type)
	//
	hs, _ := s.Field("hs")
	require.Equal(t, "H[2]", hs.Type.String())
	//
	tt, _ := s.Field("t")
	require.Equal(t, "tuple<bit<8>, bool>", tt.Type.String())
}

func TestParse_Variable(t *testing.T) {
	program, srcmap := parse(t, `
struct S { bit<8> a; }
@name("s") S s;
bit<16> y = 16w0x0a;
`)
	require.Len(t, program.Declarations, 3)
	//
	s := program.Declarations[1].(*ast.Variable)
	require.Equal(t, "s", s.Name())
	require.True(t, s.ID.IsValid())
	require.Len(t, s.Annotations, 1)
	require.Equal(t, "name", s.Annotations[0].Label)
	require.Equal(t, `"s"`, s.Annotations[0].Body)
	require.True(t, s.Initializer.IsEmpty())
	require.True(t, srcmap.Has(s))
	//
	y := program.Declarations[2].(*ast.Variable)
	require.True(t, y.Initializer.HasValue())
	//
	c := y.Initializer.Unwrap().(*ast.Constant)
	require.Equal(t, uint(16), c.Width)
	require.Equal(t, uint(16), c.Base)
	require.Equal(t, int64(10), c.Value.Int64())
	require.NotEqual(t, s.ID, y.ID)
}

func TestParse_Control(t *testing.T) {
	program, srcmap := parse(t, `
header H { bit<8> f; }
struct S { H h; bit<8> b; }
extern void emit(in bit<8> v, out S r);
control C(inout bit<8> z) {
    S s;
    action a() { s.b = 1; }
    apply {
        s.h.f = z + 1;
        if (s.b == 0) { a(); } else emit(s.b, s);
    }
}
`)
	require.Len(t, program.Declarations, 4)
	//
	ext := program.Declarations[2].(*ast.Extern)
	require.Len(t, ext.Params, 2)
	require.Equal(t, ast.IN, ext.Params[0].Direction)
	require.Equal(t, ast.OUT, ext.Params[1].Direction)
	//
	ctrl := program.Declarations[3].(*ast.Control)
	require.Len(t, ctrl.Locals, 2)
	require.Len(t, ctrl.Body.Stmts, 2)
	//
	assign := ctrl.Body.Stmts[0].(*ast.Assign)
	target := assign.Target.(*ast.Member)
	require.Equal(t, "f", target.Field)
	require.Equal(t, "h", target.Expr.(*ast.Member).Field)
	require.True(t, srcmap.Has(target))
	require.True(t, srcmap.Has(target.Expr))
	//
	cond := ctrl.Body.Stmts[1].(*ast.If)
	require.NotNil(t, cond.Else)
	require.IsType(t, &ast.CallStmt{}, cond.Else)
}

func TestParse_Function(t *testing.T) {
	program, _ := parse(t, `
bit<8> f(in bit<8> x) {
    bit<8> y = x * 2 + 1;
    return y;
}
`)
	fn := program.Declarations[0].(*ast.Function)
	require.Equal(t, "f", fn.Name())
	require.True(t, fn.Return.Equals(data.NewBits(8, false)))
	//
	y := fn.Body.Stmts[0].(*ast.Variable)
	sum := y.Initializer.Unwrap().(*ast.Binary)
	require.Equal(t, ast.ADD, sum.Op)
	require.Equal(t, ast.MUL, sum.Left.(*ast.Binary).Op)
}

func TestParse_Precedence(t *testing.T) {
	program, _ := parse(t, `bool b = 1 + 2 == 3 && !false || 1 < 2;`)
	//
	b := program.Declarations[0].(*ast.Variable)
	or := b.Initializer.Unwrap().(*ast.Binary)
	require.Equal(t, ast.LOR, or.Op)
	//
	and := or.Left.(*ast.Binary)
	require.Equal(t, ast.LAND, and.Op)
	require.Equal(t, ast.EQ, and.Left.(*ast.Binary).Op)
	require.IsType(t, &ast.Unary{}, and.Right)
	require.Equal(t, ast.LT, or.Right.(*ast.Binary).Op)
}

func TestParse_Invalid_01(t *testing.T) {
	parseError(t, "S s;", "unknown type")
}

func TestParse_Invalid_02(t *testing.T) {
	parseError(t, "struct S { bit<8> a; } header H { S s; }", "header field must be bit, int or bool")
}

func TestParse_Invalid_03(t *testing.T) {
	parseError(t, "struct S { bit<8> a; bool a; }", "duplicate field")
}

func TestParse_Invalid_04(t *testing.T) {
	parseError(t, "struct S { bit<8> a; } struct S { bool b; }", "type already declared")
}

func TestParse_Invalid_05(t *testing.T) {
	parseError(t, "bit<8> x = 4w99;", "literal does not fit in width")
}

func TestParse_Invalid_06(t *testing.T) {
	parseError(t, "action a() { 1 + 2; }", "expected assignment or call")
}
