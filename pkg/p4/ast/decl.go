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
	"github.com/consensys/go-p4c/pkg/util"
)

// TypeDecl declares a named struct or header type.
type TypeDecl struct {
	Type data.StructLike
}

// Name implementation for Declaration interface.
func (p *TypeDecl) Name() string {
	return p.Type.Name()
}

// Annotation represents an annotation attached to a declaration, such as
// "@name("x")".  The body of an annotation is kept as unparsed source text.
type Annotation struct {
	Label string
	Body  string
}

// Variable declares a variable of a given type, which may optionally be
// initialised.  Variables can be declared at the top-level, within a control
// block or as a statement within a body.
type Variable struct {
	// Identifier for this declaration, which is unique within the enclosing
	// program.
	ID DeclID
	// Name of the variable.
	name string
	// Declared type of the variable.
	Type data.Type
	// Optional initialiser.
	Initializer util.Option[Expr]
	// Annotations attached to the declaration.
	Annotations []*Annotation
}

// NewVariable constructs a new variable declaration without an initialiser.
// The declaration identifier is assigned when the variable is registered with a
// program.
func NewVariable(name string, datatype data.Type) *Variable {
	return &Variable{NoDeclID, name, datatype, util.None[Expr](), nil}
}

// Name implementation for Declaration interface.
func (p *Variable) Name() string {
	return p.name
}

// Parameter declares a parameter of a function, action, extern or control.
type Parameter struct {
	Direction Direction
	Type      data.Type
	name      string
}

// NewParameter constructs a new parameter.
func NewParameter(dir Direction, datatype data.Type, name string) *Parameter {
	return &Parameter{dir, datatype, name}
}

// Name implementation for Declaration interface.
func (p *Parameter) Name() string {
	return p.name
}

// Callable represents a declaration which can be invoked with a list of
// arguments.
type Callable interface {
	Declaration
	// Parameters returns the formal parameters of this callable.
	Parameters() []*Parameter
	// Returns the type returned by invoking this callable.
	ReturnType() data.Type
}

// Extern declares a function implemented by the target whose body is opaque to
// the compiler.
type Extern struct {
	name   string
	Return data.Type
	Params []*Parameter
}

// NewExtern constructs a new extern function declaration.
func NewExtern(name string, ret data.Type, params ...*Parameter) *Extern {
	return &Extern{name, ret, params}
}

// Name implementation for Declaration interface.
func (p *Extern) Name() string {
	return p.name
}

// Parameters implementation for Callable interface.
func (p *Extern) Parameters() []*Parameter {
	return p.Params
}

// ReturnType implementation for Callable interface.
func (p *Extern) ReturnType() data.Type {
	return p.Return
}

// Function declares a function with a body.
type Function struct {
	name   string
	Return data.Type
	Params []*Parameter
	Body   *Block
}

// NewFunction constructs a new function declaration.
func NewFunction(name string, ret data.Type, params []*Parameter, body *Block) *Function {
	return &Function{name, ret, params, body}
}

// Name implementation for Declaration interface.
func (p *Function) Name() string {
	return p.name
}

// Parameters implementation for Callable interface.
func (p *Function) Parameters() []*Parameter {
	return p.Params
}

// ReturnType implementation for Callable interface.
func (p *Function) ReturnType() data.Type {
	return p.Return
}

// Action declares an action, which is a function without a return value.
type Action struct {
	name   string
	Params []*Parameter
	Body   *Block
}

// NewAction constructs a new action declaration.
func NewAction(name string, params []*Parameter, body *Block) *Action {
	return &Action{name, params, body}
}

// Name implementation for Declaration interface.
func (p *Action) Name() string {
	return p.name
}

// Parameters implementation for Callable interface.
func (p *Action) Parameters() []*Parameter {
	return p.Params
}

// ReturnType implementation for Callable interface.
func (p *Action) ReturnType() data.Type {
	return &data.Void{}
}

// Control declares a control block, which has some number of local
// declarations (variables and actions) and an "apply" body.
type Control struct {
	name   string
	Params []*Parameter
	Locals []Declaration
	Body   *Block
}

// NewControl constructs a new control declaration.
func NewControl(name string, params []*Parameter, locals []Declaration, body *Block) *Control {
	return &Control{name, params, locals, body}
}

// Name implementation for Declaration interface.
func (p *Control) Name() string {
	return p.name
}

func (p *TypeDecl) node()  {}
func (p *Variable) node()  {}
func (p *Parameter) node() {}
func (p *Extern) node()    {}
func (p *Function) node()  {}
func (p *Action) node()    {}
func (p *Control) node()   {}

func (p *TypeDecl) declNode()  {}
func (p *Variable) declNode()  {}
func (p *Parameter) declNode() {}
func (p *Extern) declNode()    {}
func (p *Function) declNode()  {}
func (p *Action) declNode()    {}
func (p *Control) declNode()   {}

// Annotations are nodes so that they can be mapped back to their source.
func (p *Annotation) node() {}
