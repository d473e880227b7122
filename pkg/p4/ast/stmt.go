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

import "github.com/consensys/go-p4c/pkg/util"

// Block represents a sequence of zero or more statements enclosed in braces.
type Block struct {
	Stmts []Statement
}

// NewBlock constructs a new block from zero or more statements.
func NewBlock(stmts ...Statement) *Block {
	return &Block{stmts}
}

// Assign represents an assignment "t = e" of an expression to an l-value.
type Assign struct {
	Target Expr
	Source Expr
}

// CallStmt represents a call whose result (if any) is discarded.
type CallStmt struct {
	Call *Call
}

// If represents a conditional statement with an optional else branch (which
// is nil when absent).
type If struct {
	Cond Expr
	Then Statement
	Else Statement
}

// Return represents a return from a function or action, with an optional
// value.
type Return struct {
	Value util.Option[Expr]
}

func (p *Block) node()    {}
func (p *Assign) node()   {}
func (p *CallStmt) node() {}
func (p *If) node()       {}
func (p *Return) node()   {}

func (p *Block) stmtNode()    {}
func (p *Assign) stmtNode()   {}
func (p *CallStmt) stmtNode() {}
func (p *If) stmtNode()       {}
func (p *Return) stmtNode()   {}

// Variables can be declared directly within a body.
func (p *Variable) stmtNode() {}
