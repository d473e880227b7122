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
	"testing"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/parser"
	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	program, _, errs := parser.Parse(source.NewSourceFile("test.p4", []byte(src)))
	require.Empty(t, errs)
	//
	return program
}

func TestString_Layout(t *testing.T) {
	program := parse(t, `
header H { bit<8> f; }
struct S { H h; bit<8>[2] s; tuple<bit<4>, bool> t; }
extern void emit(in bit<8> v, out S r);
@name("x") bit<8> x = 8w0xff;
bool y;
control C(inout bit<8> z) {
    S s;
    action a() { s.h.f = s.s[1]; }
    apply {
        if (z == 0 && !y) a(); else if (y) { z = (z + 1) * 2; } else { return; }
    }
}
`)
	expected := `header H {
    bit<8> f;
}

struct S {
    H h;
    bit<8>[2] s;
    tuple<bit<4>, bool> t;
}

extern void emit(in bit<8> v, out S r);

@name("x") bit<8> x = 8w0xff;
bool y;

control C(inout bit<8> z) {
    S s;
    action a() {
        s.h.f = s.s[1];
    }
    apply {
        if (z == 0 && !y) {
            a();
        } else if (y) {
            z = (z + 1) * 2;
        } else {
            return;
        }
    }
}
`
	require.Equal(t, expected, String(program))
}

func TestString_RoundTrip(t *testing.T) {
	src := `
struct S { bit<8> a; bool b; }
bit<8> f(in bit<8> p, in S s) {
    bit<8> q = p - (p - 1) ^ 0b101;
    S t = { 1, ~q == 0 };
    return -(q & 3) | s.a;
}
`
	first := String(parse(t, src))
	second := String(parse(t, first))
	//
	require.Equal(t, first, second)
}

func TestExpr(t *testing.T) {
	var (
		a = ast.NewPath("a")
		b = ast.NewPath("b")
		c = ast.NewConstant(3)
	)
	//
	sum := &ast.Binary{Op: ast.ADD, Left: a, Right: b}
	require.Equal(t, "a + b * 3", Expr(&ast.Binary{Op: ast.ADD, Left: a, Right: &ast.Binary{Op: ast.MUL, Left: b, Right: c}}))
	require.Equal(t, "(a + b) * 3", Expr(&ast.Binary{Op: ast.MUL, Left: sum, Right: c}))
	require.Equal(t, "a - (a + b)", Expr(&ast.Binary{Op: ast.SUB, Left: a, Right: sum}))
	require.Equal(t, "(a + b).f", Expr(ast.NewMember(sum, "f")))
	require.Equal(t, "f(a, 3)", Expr(ast.NewCall("f", a, c)))
}
