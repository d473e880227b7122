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
package nested

import (
	"testing"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
	"github.com/consensys/go-p4c/pkg/p4/parser"
	"github.com/consensys/go-p4c/pkg/p4/printer"
	"github.com/consensys/go-p4c/pkg/p4/typing"
	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Classifier
// ============================================================================

func TestIsNested(t *testing.T) {
	var (
		b8    = data.NewBits(8, false)
		hdr   = data.NewHeader("H", data.Field{Name: "f", Type: b8})
		flat  = data.NewStruct("Flat", data.Field{Name: "a", Type: b8}, data.Field{Name: "b", Type: &data.Bool{}})
		inner = data.NewStruct("Inner", data.Field{Name: "f", Type: flat})
		withH = data.NewStruct("WithH", data.Field{Name: "h", Type: hdr})
		withT = data.NewStruct("WithT", data.Field{Name: "t", Type: data.NewTuple(b8, b8)})
		withS = data.NewStruct("WithS", data.Field{Name: "s", Type: data.NewStack(hdr, 2)})
		empty = data.NewStruct("Empty")
	)
	//
	require.False(t, IsNested(b8))
	require.False(t, IsNested(&data.Bool{}))
	require.False(t, IsNested(data.NewTuple(flat)))
	require.False(t, IsNested(data.NewStack(flat, 2)))
	require.False(t, IsNested(hdr))
	require.False(t, IsNested(flat))
	require.False(t, IsNested(empty))
	require.False(t, IsNested(nil))
	require.True(t, IsNested(inner))
	require.True(t, IsNested(withH))
	require.True(t, IsNested(withT))
	require.True(t, IsNested(withS))
}

// ============================================================================
// Translator
// ============================================================================

func TestExplode_LeafOrder(t *testing.T) {
	var (
		b8  = data.NewBits(8, false)
		b16 = data.NewBits(16, false)
		tup = data.NewTuple(b8, &data.Bool{})
		s   = data.NewStruct("S",
			data.Field{Name: "a", Type: b8},
			data.Field{Name: "b", Type: b16},
			data.Field{Name: "t", Type: tup},
			data.Field{Name: "c", Type: &data.Bool{}})
		v       = ast.NewVariable("s", s)
		program = ast.NewProgram(v)
		srcfile = source.NewSourceFile("test.p4", []byte("S s;"))
		srcmap  = source.NewSourceMap[any](*srcfile)
		srcmaps = source.NewSourceMaps[any]()
	)
	//
	srcmap.Put(v, source.NewSpan(0, 4))
	srcmaps.Join(srcmap)
	//
	ctx := newContext(program, nil, srcmaps)
	decls, root := ctx.explode(v, "s", s)
	//
	require.Len(t, decls, 4)
	require.Equal(t, []string{"a", "b", "t", "c"}, root.Names())
	require.Equal(t, decls, root.Leaves())
	//
	names := map[string]bool{}
	//
	for i, f := range s.Fields() {
		require.Equal(t, "s_"+f.Name, decls[i].Name())
		require.Same(t, f.Type, decls[i].Type)
		require.True(t, decls[i].ID.IsValid())
		require.True(t, srcmaps.Has(decls[i]))
		require.False(t, names[decls[i].Name()])
		//
		names[decls[i].Name()] = true
		//
		c, ok := root.Get(f.Name)
		require.True(t, ok)
		require.Same(t, decls[i], c.(*Leaf).Decl)
	}
}

// Struct fields are always exploded, even when their own fields are scalars.
// A flat sub-struct therefore has no single declaration, and cannot be used
// as a whole value.
func TestExplode_FlatSubStruct(t *testing.T) {
	var (
		b4 = data.NewBits(4, false)
		b8 = data.NewBits(8, false)
		x  = data.NewStruct("X", data.Field{Name: "p", Type: b4}, data.Field{Name: "q", Type: b4})
		v  = data.NewStruct("V", data.Field{Name: "x", Type: x}, data.Field{Name: "y", Type: b8})
	)
	//
	require.False(t, IsNested(x))
	require.True(t, IsNested(v))
	//
	ctx := newContext(ast.NewProgram(), nil, source.NewSourceMaps[any]())
	decls, root := ctx.explode(nil, "v", v)
	//
	require.Len(t, decls, 3)
	requireVariable(t, decls[0], "v_x_p", "bit<4>")
	requireVariable(t, decls[1], "v_x_q", "bit<4>")
	requireVariable(t, decls[2], "v_y", "bit<8>")
	//
	c, ok := root.Get("x")
	require.True(t, ok)
	require.IsType(t, &Map{}, c)
	require.Equal(t, []string{"p", "q"}, c.(*Map).Names())
}

func TestFlatten_FlatSubStructWhole(t *testing.T) {
	program, _, diags := flatten(t, `
struct X { bit<4> p; bit<4> q; }
struct V { X x; bit<8> y; }
action act() {
    V v;
    X w;
    w = v.x;
    w.q = v.x.q;
}
`)
	requireKinds(t, diags, UnsupportedWholeNestedFieldAccess)
	//
	body := program.Declarations[2].(*ast.Action).Body
	require.Same(t, diags[0].Node, body.Stmts[4].(*ast.Assign).Source)
	// Projection through the flat sub-struct still succeeds
	require.Equal(t, "v_x_q", body.Stmts[5].(*ast.Assign).Source.(*ast.Path).Name)
}

// ============================================================================
// Rewriter
// ============================================================================

func TestFlatten_RoundTrip(t *testing.T) {
	program, srcmaps, diags := flatten(t, `
struct S { bit<8> a; bit<16> b; tuple<bit<8>> t; }
action act() {
    S s;
    bit<8> x;
    x = s.a;
    s.b = 1;
}
`)
	require.Empty(t, diags)
	//
	body := program.Declarations[1].(*ast.Action).Body
	require.Len(t, body.Stmts, 6)
	requireVariable(t, body.Stmts[0], "s_a", "bit<8>")
	requireVariable(t, body.Stmts[1], "s_b", "bit<16>")
	requireVariable(t, body.Stmts[2], "s_t", "tuple<bit<8>>")
	//
	read := body.Stmts[4].(*ast.Assign)
	require.Equal(t, "s_a", read.Source.(*ast.Path).Name)
	//
	write := body.Stmts[5].(*ast.Assign)
	require.Equal(t, "s_b", write.Target.(*ast.Path).Name)
	//
	requireNoReference(t, program, "s")
	requireWellTyped(t, program, srcmaps)
}

func TestFlatten_DoubleNesting(t *testing.T) {
	program, srcmaps, diags := flatten(t, `
struct X { bit<4> p; bit<4> q; }
struct V { X x; bit<8> y; }
V v;
control C(out bit<4> r) {
    apply {
        r = v.x.p;
        v.y = 8w1;
    }
}
`)
	require.Empty(t, diags)
	require.Len(t, program.Declarations, 6)
	//
	requireVariable(t, program.Declarations[2], "v_x_p", "bit<4>")
	requireVariable(t, program.Declarations[3], "v_x_q", "bit<4>")
	requireVariable(t, program.Declarations[4], "v_y", "bit<8>")
	//
	body := program.Declarations[5].(*ast.Control).Body
	require.Equal(t, "v_x_p", body.Stmts[0].(*ast.Assign).Source.(*ast.Path).Name)
	require.Equal(t, "v_y", body.Stmts[1].(*ast.Assign).Target.(*ast.Path).Name)
	//
	requireNoReference(t, program, "v")
	requireWellTyped(t, program, srcmaps)
}

func TestFlatten_ControlLocals(t *testing.T) {
	program, srcmaps, diags := flatten(t, `
header H { bit<8> f; }
struct S { H h; bit<8>[2] s; }
control C() {
    S s;
    action a() { s.h.f = s.s[1]; }
    apply { a(); }
}
`)
	require.Empty(t, diags)
	//
	ctrl := program.Declarations[2].(*ast.Control)
	require.Len(t, ctrl.Locals, 3)
	requireVariable(t, ctrl.Locals[0], "s_h", "H")
	requireVariable(t, ctrl.Locals[1], "s_s", "bit<8>[2]")
	// Header field access falls back to ordinary member access
	assign := ctrl.Locals[2].(*ast.Action).Body.Stmts[0].(*ast.Assign)
	target := assign.Target.(*ast.Member)
	require.Equal(t, "f", target.Field)
	require.Equal(t, "s_h", target.Expr.(*ast.Path).Name)
	//
	index := assign.Source.(*ast.Index)
	require.Equal(t, uint(1), index.Index)
	require.Equal(t, "s_s", index.Expr.(*ast.Path).Name)
	//
	requireWellTyped(t, program, srcmaps)
}

func TestFlatten_UnsupportedInitializer(t *testing.T) {
	program, _, diags := flatten(t, `
struct X { bit<4> p; }
struct S { X x; }
S s = { { 1 } };
`)
	requireKinds(t, diags, UnsupportedInitializer)
	// Declaration is left in place
	require.Len(t, program.Declarations, 3)
	require.Same(t, diags[0].Node, program.Declarations[2])
}

func TestFlatten_UnsupportedAnnotation(t *testing.T) {
	program, _, diags := flatten(t, `
struct X { bit<4> p; }
struct S { X x; }
@name("s") S s = { { 1 } };
`)
	requireKinds(t, diags, UnsupportedInitializer, UnsupportedAnnotation)
	require.Len(t, program.Declarations, 3)
}

func TestFlatten_UnsupportedOutArgument(t *testing.T) {
	program, _, diags := flatten(t, `
struct X { bit<4> p; }
struct S { bit<8> a; X x; }
extern void read(out S r);
extern void read8(out bit<8> r);
action act() {
    S s;
    read(s);
    read8(s.a);
}
`)
	requireKinds(t, diags, UnsupportedOutArgument)
	//
	body := program.Declarations[4].(*ast.Action).Body
	// Rejected argument left unchanged
	bad := body.Stmts[2].(*ast.CallStmt).Call
	require.Same(t, diags[0].Node, bad.Args[0])
	require.Equal(t, "s", bad.Args[0].(*ast.Path).Name)
	// Scalar field passed to scalar out argument succeeds
	good := body.Stmts[3].(*ast.CallStmt).Call
	require.Equal(t, "s_a", good.Args[0].(*ast.Path).Name)
}

func TestFlatten_UnsupportedWholeAggregateReference(t *testing.T) {
	_, _, diags := flatten(t, `
struct X { bit<4> p; }
struct S { X x; }
action use(in S v) { }
action act() {
    S s;
    use(s);
}
`)
	requireKinds(t, diags, UnsupportedWholeAggregateReference)
	require.Equal(t, "s", diags[0].Node.(*ast.Path).Name)
}

func TestFlatten_UnsupportedWholeNestedFieldAccess(t *testing.T) {
	_, _, diags := flatten(t, `
struct X { bit<4> p; }
struct S { X x; }
action act() {
    S s;
    X y;
    y = s.x;
    y.p = s.x.p;
}
`)
	requireKinds(t, diags, UnsupportedWholeNestedFieldAccess)
	require.Equal(t, "x", diags[0].Node.(*ast.Member).Field)
}

func TestFlatten_MultipleDiagnostics(t *testing.T) {
	_, _, diags := flatten(t, `
struct X { bit<4> p; }
struct S { X x; }
extern void read(inout S r);
S g = { { 1 } };
action act() {
    S s;
    S t;
    read(s);
    t = s;
}
`)
	requireKinds(t, diags, UnsupportedInitializer, UnsupportedOutArgument,
		UnsupportedWholeAggregateReference, UnsupportedWholeAggregateReference)
}

func TestFlatten_Idempotent(t *testing.T) {
	srcfile := source.NewSourceFile("test.p4", []byte(`
struct X { bit<4> p; bit<4> q; }
struct V { X x; bit<4> y; }
action act() {
    V v;
    v.x.q = v.x.p + v.y;
}
`))
	program, srcmaps, info := checkSource(t, srcfile)
	//
	require.Empty(t, Run(program, info, srcmaps))
	//
	before := printer.String(program)
	info, errs := typing.Check(program, srcmaps)
	require.Empty(t, errs)
	// Second run has nothing to do
	require.Empty(t, Run(program, info, srcmaps))
	require.Equal(t, before, printer.String(program))
	requireVariable(t, program.Declarations[2].(*ast.Action).Body.Stmts[2], "v_y", "bit<4>")
}

func TestFlatten_AlreadyFlat(t *testing.T) {
	srcfile := source.NewSourceFile("test.p4", []byte(`
header H { bit<8> f; }
struct S { bit<8> a; bool b; }
S s;
H h;
bit<8> x = 8w3;
action act(inout bit<8> r) {
    S t;
    h.f = s.a + x;
    if (t.b) { r = t.a; }
}
`))
	program, srcmaps, info := checkSource(t, srcfile)
	before := printer.String(program)
	nvars := len(program.Variables())
	//
	require.Empty(t, Run(program, info, srcmaps))
	require.Len(t, program.Variables(), nvars)
	require.Equal(t, before, printer.String(program))
	requireWellTyped(t, program, srcmaps)
}

func TestFlatten_NameCollision(t *testing.T) {
	program, srcmaps, diags := flatten(t, `
struct X { bit<4> p; }
struct S { bit<8> a; X x; }
bit<8> s_a;
S s;
action act() { s.a = s_a; }
`)
	require.Empty(t, diags)
	//
	requireVariable(t, program.Declarations[2], "s_a", "bit<8>")
	requireVariable(t, program.Declarations[3], "s_a_0", "bit<8>")
	requireVariable(t, program.Declarations[4], "s_x_p", "bit<4>")
	//
	assign := program.Declarations[5].(*ast.Action).Body.Stmts[0].(*ast.Assign)
	require.Equal(t, "s_a_0", assign.Target.(*ast.Path).Name)
	require.Equal(t, "s_a", assign.Source.(*ast.Path).Name)
	//
	requireWellTyped(t, program, srcmaps)
}

func TestFlatten_SourceMaps(t *testing.T) {
	srcfile := source.NewSourceFile("test.p4", []byte(`
struct X { bit<4> p; }
struct S { X x; }
action act() {
    S s;
    s.x.p = 1;
}
`))
	program, srcmaps, info := checkSource(t, srcfile)
	require.Empty(t, Run(program, info, srcmaps))
	//
	body := program.Declarations[2].(*ast.Action).Body
	decl := body.Stmts[0].(*ast.Variable)
	target := body.Stmts[1].(*ast.Assign).Target
	//
	require.True(t, srcmaps.Has(decl))
	require.True(t, srcmaps.Has(target))
	//
	err := srcmaps.SyntaxError(target, "here")
	span := err.Span()
	require.Equal(t, "s.x.p", string(srcfile.Contents()[span.Start():span.End()]))
}

func TestSyntaxErrors(t *testing.T) {
	srcfile := source.NewSourceFile("test.p4", []byte(`
struct X { bit<4> p; }
struct S { X x; }
S s = { { 1 } };
`))
	program, srcmaps, info := checkSource(t, srcfile)
	diags := Run(program, info, srcmaps)
	//
	errs := SyntaxErrors(diags, srcmaps)
	require.Len(t, errs, 1)
	require.Equal(t, "test.p4:4:1: cannot flatten nested struct with initializer", errs[0].Error())
}

// ============================================================================
// Helpers
// ============================================================================

func checkSource(t *testing.T, srcfile *source.File) (*ast.Program, *source.Maps[any], *typing.Info) {
	program, srcmap, errs := parser.Parse(srcfile)
	require.Empty(t, errs)
	//
	srcmaps := source.NewSourceMaps[any]()
	srcmaps.Join(srcmap)
	//
	info, errs := typing.Check(program, srcmaps)
	require.Empty(t, errs)
	//
	return program, srcmaps, info
}

func flatten(t *testing.T, src string) (*ast.Program, *source.Maps[any], []Diagnostic) {
	program, srcmaps, info := checkSource(t, source.NewSourceFile("test.p4", []byte(src)))
	//
	return program, srcmaps, Run(program, info, srcmaps)
}

func requireVariable(t *testing.T, node ast.Node, name string, datatype string) {
	v, ok := node.(*ast.Variable)
	require.True(t, ok, "expected variable, found %T", node)
	require.Equal(t, name, v.Name())
	require.Equal(t, datatype, v.Type.String())
}

func requireKinds(t *testing.T, diags []Diagnostic, kinds ...Kind) {
	actual := make([]Kind, len(diags))
	//
	for i, d := range diags {
		actual[i] = d.Kind
	}
	//
	require.Equal(t, kinds, actual)
}

// Check that no path in the program refers to the given name.
func requireNoReference(t *testing.T, program *ast.Program, name string) {
	ast.Inspect(program, func(n ast.Node) bool {
		if p, ok := n.(*ast.Path); ok {
			require.NotEqual(t, name, p.Name)
		}
		//
		return true
	})
}

// Check that the flattened program still type checks.  Generated nodes carry
// the spans of the nodes they replace, so errors are reported against those.
func requireWellTyped(t *testing.T, program *ast.Program, srcmaps *source.Maps[any]) {
	_, errs := typing.Check(program, srcmaps)
	require.Empty(t, errs)
}
