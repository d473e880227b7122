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
package typing

import (
	"fmt"
	"reflect"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
	"github.com/consensys/go-p4c/pkg/util/source"
)

// Check resolves every path in a given program against its enclosing lexical
// scopes, and determines the static type of every expression.  Names must be
// declared before they are used.  Checking continues after an error, such that
// all errors found are reported.
func Check(program *ast.Program, srcmaps *source.Maps[any]) (*Info, []source.SyntaxError) {
	checker := checker{newInfo(), srcmaps, nil, nil, nil}
	//
	checker.enter()
	//
	for _, decl := range program.Declarations {
		checker.checkDeclaration(decl)
	}
	//
	checker.leave()
	//
	return checker.info, checker.errors
}

type checker struct {
	info    *Info
	srcmaps *source.Maps[any]
	// Stack of lexical scopes, innermost last.
	scopes []map[string]ast.Declaration
	// Return type of the enclosing function (if any)
	returns data.Type
	errors  []source.SyntaxError
}

func (p *checker) enter() {
	p.scopes = append(p.scopes, make(map[string]ast.Declaration))
}

func (p *checker) leave() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// Declare a name in the innermost scope, reporting an error if the name is
// already declared in that scope.
func (p *checker) declare(decl ast.Declaration) {
	scope := p.scopes[len(p.scopes)-1]
	//
	if _, ok := scope[decl.Name()]; ok {
		p.error(decl, fmt.Sprintf("duplicate declaration of %s", decl.Name()))
	} else {
		scope[decl.Name()] = decl
	}
}

func (p *checker) lookup(name string) ast.Declaration {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if decl, ok := p.scopes[i][name]; ok {
			return decl
		}
	}
	//
	return nil
}

func (p *checker) error(node ast.Node, msg string) {
	p.errors = append(p.errors, *p.srcmaps.SyntaxError(node, msg))
}

// ============================================================================
// Declarations
// ============================================================================

func (p *checker) checkDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.TypeDecl:
		// types are resolved by the parser
	case *ast.Variable:
		p.checkVariable(d)
	case *ast.Extern:
		p.declare(d)
	case *ast.Function:
		p.declare(d)
		p.checkBody(d.Params, d.Return, d.Body)
	case *ast.Action:
		p.declare(d)
		p.checkBody(d.Params, &data.Void{}, d.Body)
	case *ast.Control:
		p.declare(d)
		p.checkControl(d)
	default:
		panic(fmt.Sprintf("unknown declaration encountered (%s)", reflect.TypeOf(decl).String()))
	}
}

func (p *checker) checkVariable(decl *ast.Variable) {
	if decl.Initializer.HasValue() {
		p.checkAssignable(decl.Type, decl.Initializer.Unwrap())
	}
	// Declared after the initialiser, so it cannot refer to itself.
	p.declare(decl)
}

func (p *checker) checkBody(params []*ast.Parameter, returns data.Type, body *ast.Block) {
	p.enter()
	//
	for _, param := range params {
		p.declare(param)
	}
	//
	p.returns = returns
	p.checkBlock(body)
	p.returns = nil
	//
	p.leave()
}

func (p *checker) checkControl(decl *ast.Control) {
	p.enter()
	//
	for _, param := range decl.Params {
		p.declare(param)
	}
	//
	for _, local := range decl.Locals {
		p.checkDeclaration(local)
	}
	//
	p.returns = &data.Void{}
	p.checkBlock(decl.Body)
	p.returns = nil
	//
	p.leave()
}

// ============================================================================
// Statements
// ============================================================================

func (p *checker) checkBlock(block *ast.Block) {
	p.enter()
	//
	for _, stmt := range block.Stmts {
		p.checkStatement(stmt)
	}
	//
	p.leave()
}

func (p *checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		p.checkBlock(s)
	case *ast.Variable:
		p.checkVariable(s)
	case *ast.Assign:
		if !ast.IsLValue(s.Target) {
			p.error(s.Target, "cannot assign to non-lvalue")
		} else if target := p.checkExpr(s.Target); target != nil {
			p.checkAssignable(target, s.Source)
		} else {
			p.checkExpr(s.Source)
		}
	case *ast.CallStmt:
		p.checkExpr(s.Call)
	case *ast.If:
		p.checkCondition(s.Cond)
		p.checkStatement(s.Then)
		//
		if s.Else != nil {
			p.checkStatement(s.Else)
		}
	case *ast.Return:
		p.checkReturn(s)
	default:
		panic(fmt.Sprintf("unknown statement encountered (%s)", reflect.TypeOf(stmt).String()))
	}
}

func (p *checker) checkReturn(stmt *ast.Return) {
	_, void := p.returns.(*data.Void)
	//
	switch {
	case stmt.Value.IsEmpty() && !void:
		p.error(stmt, "missing return value")
	case stmt.Value.HasValue() && void:
		p.error(stmt.Value.Unwrap(), "unexpected return value")
	case stmt.Value.HasValue():
		p.checkAssignable(p.returns, stmt.Value.Unwrap())
	}
}

func (p *checker) checkCondition(cond ast.Expr) {
	if t := p.checkExpr(cond); t != nil && !t.Equals(&data.Bool{}) {
		p.error(cond, fmt.Sprintf("expected bool, found %s", t.String()))
	}
}

// Check that a given expression can be assigned to a location of the given
// type.  List expressions are checked element-wise against the fields of the
// target type.
func (p *checker) checkAssignable(target data.Type, expr ast.Expr) {
	if list, ok := expr.(*ast.List); ok {
		p.checkListAssignable(target, list)
		return
	}
	//
	if source := p.checkExpr(expr); source != nil && !Assignable(target, source) {
		p.error(expr, fmt.Sprintf("type mismatch (expected %s, found %s)", target.String(), source.String()))
	}
}

func (p *checker) checkListAssignable(target data.Type, list *ast.List) {
	var elements []data.Type
	//
	switch t := target.(type) {
	case data.StructLike:
		for _, f := range t.Fields() {
			elements = append(elements, f.Type)
		}
	case *data.Tuple:
		elements = t.Elements
	default:
		p.error(list, fmt.Sprintf("cannot initialise %s from a list", target.String()))
		return
	}
	//
	if len(elements) != len(list.Elements) {
		p.error(list, fmt.Sprintf("expected %d elements, found %d", len(elements), len(list.Elements)))
		return
	}
	//
	for i, e := range list.Elements {
		p.checkAssignable(elements[i], e)
	}
	//
	p.info.types[list] = target
}

// Assignable determines whether a value of the source type can be assigned to
// a location of the target type.  Untyped integer literals can be assigned to
// any bit-string.
func Assignable(target data.Type, source data.Type) bool {
	if _, ok := source.(*data.Integer); ok {
		_, ok = target.(*data.Bits)
		return ok
	}
	//
	return target.Equals(source)
}

// ============================================================================
// Expressions
// ============================================================================

// Check an expression, returning its type or nil if an error was reported.
func (p *checker) checkExpr(expr ast.Expr) data.Type {
	var t data.Type
	//
	switch e := expr.(type) {
	case *ast.Path:
		t = p.checkPath(e)
	case *ast.Member:
		t = p.checkMember(e)
	case *ast.Index:
		t = p.checkIndex(e)
	case *ast.Constant:
		if e.Width != 0 {
			t = data.NewBits(e.Width, false)
		} else {
			t = &data.Integer{}
		}
	case *ast.Boolean:
		t = &data.Bool{}
	case *ast.Binary:
		t = p.checkBinary(e)
	case *ast.Unary:
		t = p.checkUnary(e)
	case *ast.Call:
		t = p.checkCall(e)
	case *ast.List:
		var elements []data.Type
		//
		for _, element := range e.Elements {
			if et := p.checkExpr(element); et != nil {
				elements = append(elements, et)
			}
		}
		//
		if len(elements) == len(e.Elements) {
			t = data.NewTuple(elements...)
		}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%s)", reflect.TypeOf(expr).String()))
	}
	//
	if t != nil {
		p.info.types[expr] = t
	}
	//
	return t
}

func (p *checker) checkPath(path *ast.Path) data.Type {
	decl := p.lookup(path.Name)
	//
	switch d := decl.(type) {
	case nil:
		p.error(path, fmt.Sprintf("unknown identifier %s", path.Name))
		return nil
	case *ast.Variable:
		p.info.decls[path] = d
		return d.Type
	case *ast.Parameter:
		p.info.decls[path] = d
		return d.Type
	default:
		p.error(path, fmt.Sprintf("%s is not a value", path.Name))
		return nil
	}
}

func (p *checker) checkMember(member *ast.Member) data.Type {
	base := p.checkExpr(member.Expr)
	//
	if base == nil {
		return nil
	} else if structlike, ok := base.(data.StructLike); !ok {
		p.error(member, fmt.Sprintf("%s has no fields", base.String()))
	} else if field, ok := structlike.Field(member.Field); !ok {
		p.error(member, fmt.Sprintf("unknown field %s in %s", member.Field, base.String()))
	} else {
		return field.Type
	}
	//
	return nil
}

func (p *checker) checkIndex(index *ast.Index) data.Type {
	base := p.checkExpr(index.Expr)
	//
	switch t := base.(type) {
	case nil:
		return nil
	case *data.Stack:
		if index.Index < t.Size {
			return t.Element
		}
	case *data.Tuple:
		if index.Index < uint(len(t.Elements)) {
			return t.Elements[index.Index]
		}
	default:
		p.error(index, fmt.Sprintf("%s cannot be indexed", base.String()))
		return nil
	}
	//
	p.error(index, "index out of bounds")
	//
	return nil
}

func (p *checker) checkBinary(expr *ast.Binary) data.Type {
	var (
		lhs = p.checkExpr(expr.Left)
		rhs = p.checkExpr(expr.Right)
	)
	//
	if lhs == nil || rhs == nil {
		return nil
	}
	//
	switch {
	case expr.Op.IsLogical():
		if isBool(lhs) && isBool(rhs) {
			return &data.Bool{}
		}
	case expr.Op == ast.EQ || expr.Op == ast.NEQ:
		if unify(lhs, rhs) != nil || (isBool(lhs) && isBool(rhs)) {
			return &data.Bool{}
		}
	case expr.Op.IsComparison():
		if unify(lhs, rhs) != nil {
			return &data.Bool{}
		}
	default:
		if t := unify(lhs, rhs); t != nil {
			return t
		}
	}
	//
	p.error(expr, fmt.Sprintf("type mismatch (%s %s %s)", lhs.String(), expr.Op.String(), rhs.String()))
	//
	return nil
}

func (p *checker) checkUnary(expr *ast.Unary) data.Type {
	arg := p.checkExpr(expr.Expr)
	//
	switch {
	case arg == nil:
		return nil
	case expr.Op == ast.NOT && isBool(arg):
		return arg
	case expr.Op == ast.NEG && isNumeric(arg):
		return arg
	case expr.Op == ast.CMPL && isBits(arg):
		return arg
	}
	//
	p.error(expr, fmt.Sprintf("type mismatch (%s%s)", expr.Op.String(), arg.String()))
	//
	return nil
}

func (p *checker) checkCall(call *ast.Call) data.Type {
	path, ok := call.Func.(*ast.Path)
	//
	if !ok {
		p.error(call, "expected function name")
		return nil
	}
	//
	callee, ok := p.lookup(path.Name).(ast.Callable)
	//
	if !ok {
		p.error(path, fmt.Sprintf("unknown function %s", path.Name))
		return nil
	}
	//
	p.info.decls[path] = callee
	params := callee.Parameters()
	//
	if len(params) != len(call.Args) {
		p.error(call, fmt.Sprintf("expected %d arguments, found %d", len(params), len(call.Args)))
		return nil
	}
	//
	for i, arg := range call.Args {
		if params[i].Direction.HasOut() && !ast.IsLValue(arg) {
			p.error(arg, fmt.Sprintf("%s argument must be an lvalue", params[i].Direction.String()))
		} else if params[i].Direction.HasOut() {
			// Out arguments must match exactly
			if t := p.checkExpr(arg); t != nil && !t.Equals(params[i].Type) {
				p.error(arg, fmt.Sprintf("type mismatch (expected %s, found %s)", params[i].Type.String(),
					t.String()))
			}
		} else {
			p.checkAssignable(params[i].Type, arg)
		}
	}
	//
	return callee.ReturnType()
}

// Determine the common type of two numeric operands, or nil if they are
// incompatible.
func unify(lhs data.Type, rhs data.Type) data.Type {
	switch {
	case !isNumeric(lhs) || !isNumeric(rhs):
		return nil
	case lhs.Equals(rhs):
		return lhs
	case isBits(lhs) && !isBits(rhs):
		return lhs
	case isBits(rhs) && !isBits(lhs):
		return rhs
	default:
		return nil
	}
}

func isBool(t data.Type) bool {
	_, ok := t.(*data.Bool)
	return ok
}

func isBits(t data.Type) bool {
	_, ok := t.(*data.Bits)
	return ok
}

func isNumeric(t data.Type) bool {
	switch t.(type) {
	case *data.Bits, *data.Integer:
		return true
	default:
		return false
	}
}

