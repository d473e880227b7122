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
	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
)

// Info records the results of type checking a program, namely the static type
// of every well-typed expression and the declaration referred to by every
// resolved path.
type Info struct {
	types map[ast.Expr]data.Type
	decls map[*ast.Path]ast.Declaration
}

func newInfo() *Info {
	return &Info{make(map[ast.Expr]data.Type), make(map[*ast.Path]ast.Declaration)}
}

// TypeOf returns the static type of a given expression, or nil if the
// expression was not typed (e.g. because it is not part of the checked program,
// or contained an error).
func (p *Info) TypeOf(expr ast.Expr) data.Type {
	return p.types[expr]
}

// DeclOf returns the declaration to which a given path resolved, or nil if it
// did not resolve.
func (p *Info) DeclOf(path *ast.Path) ast.Declaration {
	return p.decls[path]
}

// VariableOf returns the variable declaration to which a given path resolved,
// or nil if it did not resolve to a variable.
func (p *Info) VariableOf(path *ast.Path) *ast.Variable {
	if v, ok := p.decls[path].(*ast.Variable); ok {
		return v
	}
	//
	return nil
}

// CalleeOf returns the callable declaration invoked by a given call, or nil if
// this could not be resolved.
func (p *Info) CalleeOf(call *ast.Call) ast.Callable {
	if path, ok := call.Func.(*ast.Path); ok {
		if c, ok := p.decls[path].(ast.Callable); ok {
			return c
		}
	}
	//
	return nil
}
