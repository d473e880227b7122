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
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
)

// Program represents a complete translation unit, made up from a sequence of
// top-level declarations.  A program also allocates the identifiers for all
// variable declarations it contains.
type Program struct {
	Declarations []Declaration
	// Last declaration identifier allocated.
	lastID DeclID
}

// NewProgram constructs a program from a given set of declarations, assigning
// an identifier to every variable declaration which does not already have one.
func NewProgram(decls ...Declaration) *Program {
	program := &Program{decls, NoDeclID}
	//
	Inspect(program, func(n Node) bool {
		if v, ok := n.(*Variable); ok && v.ID > program.lastID {
			program.lastID = v.ID
		}
		//
		return true
	})
	// Allocate any missing identifiers
	Inspect(program, func(n Node) bool {
		if v, ok := n.(*Variable); ok && !v.ID.IsValid() {
			v.ID = program.NewDeclID()
		}
		//
		return true
	})
	//
	return program
}

// NewDeclID allocates a fresh declaration identifier which has not been used
// before within this program.
func (p *Program) NewDeclID() DeclID {
	p.lastID++
	return p.lastID
}

// NewVariable constructs a new variable declaration belonging to this program,
// with a freshly allocated identifier.
func (p *Program) NewVariable(name string, datatype data.Type) *Variable {
	v := NewVariable(name, datatype)
	v.ID = p.NewDeclID()
	//
	return v
}

// Variables returns every variable declaration within this program, in
// program order.
func (p *Program) Variables() []*Variable {
	var vars []*Variable
	//
	Inspect(p, func(n Node) bool {
		if v, ok := n.(*Variable); ok {
			vars = append(vars, v)
		}
		//
		return true
	})
	//
	return vars
}

func (p *Program) node() {}
