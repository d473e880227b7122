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

// Node represents an arbitrary node in the abstract syntax tree of a program.
// Nodes are always referred to by pointer, and a node's identity is used (for
// example) when mapping it back to its span in the original source file.
type Node interface {
	node()
}

// Declaration represents a named entity declared at the top-level of a
// program, within a control block or within a function body.
type Declaration interface {
	Node
	// Name returns the name being declared.
	Name() string
	declNode()
}

// Statement represents a statement within the body of a function, action or
// control block.
type Statement interface {
	Node
	stmtNode()
}

// Expr represents an arbitrary expression.
type Expr interface {
	Node
	exprNode()
}

// DeclID is a stable opaque identifier for a variable declaration, which is
// unique within a given program.  This is used to key information about a
// declaration without relying on the declaration's (mutable) contents.  Zero
// is never a valid identifier.
type DeclID uint

// NoDeclID represents the absence of a declaration identifier.
const NoDeclID DeclID = 0

// IsValid returns true if the identifier is valid (non-zero).
func (id DeclID) IsValid() bool { return id != NoDeclID }

// Direction determines how a parameter passes values between caller and
// callee.
type Direction uint8

const (
	// NONE indicates a directionless parameter (e.g. an action parameter
	// supplied by the control plane).
	NONE Direction = iota
	// IN indicates a value copied from caller to callee.
	IN
	// OUT indicates a value written by the callee and copied back to the
	// caller.
	OUT
	// INOUT indicates a value copied in both directions.
	INOUT
)

// HasOut determines whether a parameter of this direction writes back to the
// caller.
func (d Direction) HasOut() bool {
	return d == OUT || d == INOUT
}

func (d Direction) String() string {
	switch d {
	case IN:
		return "in"
	case OUT:
		return "out"
	case INOUT:
		return "inout"
	default:
		return ""
	}
}
