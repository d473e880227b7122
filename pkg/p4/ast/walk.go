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
	"fmt"
	"reflect"
)

// Inspect traverses a given node in depth-first order, calling f for each node
// encountered (beginning with the node itself).  If f returns false, the
// children of that node are not visited.  Nil nodes are ignored.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || reflect.ValueOf(node).IsNil() || !f(node) {
		return
	}
	//
	switch n := node.(type) {
	case *Program:
		for _, d := range n.Declarations {
			Inspect(d, f)
		}
	case *TypeDecl, *Parameter:
		// leaf
	case *Variable:
		for _, a := range n.Annotations {
			Inspect(a, f)
		}
		//
		if n.Initializer.HasValue() {
			Inspect(n.Initializer.Unwrap(), f)
		}
	case *Annotation:
		// leaf
	case *Extern:
		inspectParams(n.Params, f)
	case *Function:
		inspectParams(n.Params, f)
		Inspect(n.Body, f)
	case *Action:
		inspectParams(n.Params, f)
		Inspect(n.Body, f)
	case *Control:
		inspectParams(n.Params, f)
		//
		for _, d := range n.Locals {
			Inspect(d, f)
		}
		//
		Inspect(n.Body, f)
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *Assign:
		Inspect(n.Target, f)
		Inspect(n.Source, f)
	case *CallStmt:
		Inspect(n.Call, f)
	case *If:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *Return:
		if n.Value.HasValue() {
			Inspect(n.Value.Unwrap(), f)
		}
	case *Path, *Constant, *Boolean:
		// leaf
	case *Member:
		Inspect(n.Expr, f)
	case *Index:
		Inspect(n.Expr, f)
	case *Binary:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *Unary:
		Inspect(n.Expr, f)
	case *Call:
		Inspect(n.Func, f)
		inspectAll(n.Args, f)
	case *List:
		inspectAll(n.Elements, f)
	default:
		panic(fmt.Sprintf("unknown node encountered (%s)", reflect.TypeOf(node).String()))
	}
}

func inspectAll(exprs []Expr, f func(Node) bool) {
	for _, e := range exprs {
		Inspect(e, f)
	}
}

func inspectParams(params []*Parameter, f func(Node) bool) {
	for _, p := range params {
		Inspect(p, f)
	}
}
