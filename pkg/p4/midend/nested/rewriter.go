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
	"fmt"
	"reflect"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
	"github.com/consensys/go-p4c/pkg/util"
	log "github.com/sirupsen/logrus"
)

// ============================================================================
// Declarations
// ============================================================================

// Rewrite a sequence of declarations at program or control scope, replacing
// each flattened variable by its flat declarations.
func (p *context) rewriteDeclarations(decls []ast.Declaration) []ast.Declaration {
	var ndecls []ast.Declaration
	//
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.Variable:
			for _, v := range p.rewriteVariable(d) {
				ndecls = append(ndecls, v)
			}
			//
			continue
		case *ast.TypeDecl, *ast.Extern:
			// nothing to do
		case *ast.Function:
			p.rewriteBlock(d.Body)
		case *ast.Action:
			p.rewriteBlock(d.Body)
		case *ast.Control:
			d.Locals = p.rewriteDeclarations(d.Locals)
			p.rewriteBlock(d.Body)
		default:
			panic(fmt.Sprintf("unknown declaration encountered (%s)", reflect.TypeOf(decl).String()))
		}
		//
		ndecls = append(ndecls, decl)
	}
	//
	return ndecls
}

// Rewrite a variable declaration.  A variable whose type is a nested struct is
// exploded, and its flat declarations returned in its place.  Otherwise, the
// variable itself is returned (with its initialiser rewritten).
func (p *context) rewriteVariable(decl *ast.Variable) []*ast.Variable {
	datatype, ok := decl.Type.(*data.Struct)
	//
	if !ok || !IsNested(datatype) {
		if decl.Initializer.HasValue() {
			decl.Initializer = util.Some(p.rewriteExpr(decl.Initializer.Unwrap()))
		}
		//
		return []*ast.Variable{decl}
	}
	// Check for unsupported features
	rejected := false
	//
	if decl.Initializer.HasValue() {
		p.report(UnsupportedInitializer, decl)
		rejected = true
	}
	//
	if len(decl.Annotations) > 0 {
		p.report(UnsupportedAnnotation, decl)
		rejected = true
	}
	//
	if rejected {
		return []*ast.Variable{decl}
	}
	//
	decls, root := p.explode(decl, decl.Name(), datatype)
	p.table[decl.ID] = root
	//
	log.Debugf("exploded %s into %d declarations", decl.Name(), len(decls))
	//
	return decls
}

// ============================================================================
// Statements
// ============================================================================

func (p *context) rewriteBlock(block *ast.Block) {
	var stmts []ast.Statement
	//
	for _, stmt := range block.Stmts {
		if v, ok := stmt.(*ast.Variable); ok {
			for _, d := range p.rewriteVariable(v) {
				stmts = append(stmts, d)
			}
		} else {
			stmts = append(stmts, p.rewriteStatement(stmt))
		}
	}
	//
	block.Stmts = stmts
}

func (p *context) rewriteStatement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.Block:
		p.rewriteBlock(s)
	case *ast.Assign:
		s.Target = p.rewriteExpr(s.Target)
		s.Source = p.rewriteExpr(s.Source)
	case *ast.CallStmt:
		p.rewriteCall(s.Call)
	case *ast.If:
		s.Cond = p.rewriteExpr(s.Cond)
		s.Then = p.rewriteBranch(s.Then)
		//
		if s.Else != nil {
			s.Else = p.rewriteBranch(s.Else)
		}
	case *ast.Return:
		if s.Value.HasValue() {
			s.Value = util.Some(p.rewriteExpr(s.Value.Unwrap()))
		}
	default:
		panic(fmt.Sprintf("unknown statement encountered (%s)", reflect.TypeOf(stmt).String()))
	}
	//
	return stmt
}

// A branch of a conditional may itself be a variable declaration, in which
// case a block is needed if it is exploded into several declarations.
func (p *context) rewriteBranch(stmt ast.Statement) ast.Statement {
	if _, ok := stmt.(*ast.Variable); !ok {
		return p.rewriteStatement(stmt)
	}
	//
	block := ast.NewBlock(stmt)
	p.srcmaps.Copy(stmt, block)
	p.rewriteBlock(block)
	//
	return block
}

// ============================================================================
// Expressions
// ============================================================================

// Rewrite an expression whose immediate parent is not a member access.  Any
// component arising must therefore be materialised here.
func (p *context) rewriteExpr(expr ast.Expr) ast.Expr {
	nexpr, c := p.rewrite(expr, false)
	//
	if c != nil {
		// Should be unreachable, since components are only deferred to a
		// member access.
		panic("component deferred to non-member")
	}
	//
	return nexpr
}

// Rewrite an expression in a given context.  When projected holds, the
// immediate parent of this expression is a member access and, if this
// expression resolves to a component, that component is returned for the
// parent to consume.  Otherwise, the returned component is always nil.
func (p *context) rewrite(expr ast.Expr, projected bool) (ast.Expr, Component) {
	switch e := expr.(type) {
	case *ast.Path:
		return p.rewritePath(e, projected)
	case *ast.Member:
		return p.rewriteMember(e, projected)
	case *ast.Index:
		e.Expr = p.rewriteExpr(e.Expr)
	case *ast.Constant, *ast.Boolean:
		// nothing to do
	case *ast.Binary:
		e.Left = p.rewriteExpr(e.Left)
		e.Right = p.rewriteExpr(e.Right)
	case *ast.Unary:
		e.Expr = p.rewriteExpr(e.Expr)
	case *ast.Call:
		p.rewriteCall(e)
	case *ast.List:
		for i, element := range e.Elements {
			e.Elements[i] = p.rewriteExpr(element)
		}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%s)", reflect.TypeOf(expr).String()))
	}
	//
	return expr, nil
}

func (p *context) rewritePath(path *ast.Path, projected bool) (ast.Expr, Component) {
	decl := p.info.VariableOf(path)
	//
	if decl == nil {
		return path, nil
	}
	//
	root, ok := p.table[decl.ID]
	//
	switch {
	case !ok:
		return path, nil
	case projected:
		return path, root
	default:
		p.report(UnsupportedWholeAggregateReference, path)
		return path, nil
	}
}

func (p *context) rewriteMember(member *ast.Member, projected bool) (ast.Expr, Component) {
	base, c := p.rewrite(member.Expr, true)
	//
	switch c := c.(type) {
	case nil:
		member.Expr = base
		return member, nil
	case *Map:
		field, ok := c.Get(member.Field)
		//
		if !ok {
			panic(fmt.Sprintf("missing field %s in flattened struct", member.Field))
		} else if projected {
			return member, field
		}
		//
		return p.materialise(member, field), nil
	case *Leaf:
		// The base is a single flat declaration (e.g. of header type), so this
		// is an ordinary field access on that declaration.
		member.Expr = p.materialise(member.Expr, c)
		return member, nil
	default:
		panic(fmt.Sprintf("unknown component encountered (%s)", reflect.TypeOf(c).String()))
	}
}

// Materialise a component as an expression standing in for the given node.  A
// leaf becomes a reference to its flat declaration, whilst a map cannot be
// represented by any single expression.
func (p *context) materialise(node ast.Expr, c Component) ast.Expr {
	switch c := c.(type) {
	case *Leaf:
		path := ast.NewPath(c.Decl.Name())
		p.srcmaps.Copy(node, path)
		//
		return path
	case *Map:
		p.report(UnsupportedWholeNestedFieldAccess, node)
		return node
	default:
		panic(fmt.Sprintf("unknown component encountered (%s)", reflect.TypeOf(c).String()))
	}
}

// Rewrite the arguments of a call.  An argument of nested struct type bound to
// an out (or inout) parameter of an extern cannot be flattened, as the extern
// must write back a single value.
func (p *context) rewriteCall(call *ast.Call) {
	extern, _ := p.info.CalleeOf(call).(*ast.Extern)
	//
	for i, arg := range call.Args {
		if extern != nil && extern.Params[i].Direction.HasOut() && IsNested(p.info.TypeOf(arg)) {
			p.report(UnsupportedOutArgument, arg)
		} else {
			call.Args[i] = p.rewriteExpr(arg)
		}
	}
}
