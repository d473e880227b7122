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
package data

import (
	"fmt"
	"strings"
)

// Type represents the static type of a value in a program.  Types are
// immutable once constructed, and struct-like types are compared by identity
// (i.e. two distinct struct declarations with identical fields are different
// types).
type Type interface {
	fmt.Stringer
	// Equals determines whether this type is the same as another type.
	Equals(Type) bool
}

// Field represents a single named field within a struct-like type.
type Field struct {
	Name string
	Type Type
}

// StructLike captures those types which are made up from a sequence of named
// fields, namely structs and headers.
type StructLike interface {
	Type
	// Name returns the declared name of this type.
	Name() string
	// Fields returns the fields of this type, in declaration order.
	Fields() []Field
	// Field looks up the field with the given name, returning false if there
	// is no such field.
	Field(name string) (Field, bool)
}

// Bits represents a fixed-width integer type, either unsigned "bit<n>" or
// signed "int<n>".
type Bits struct {
	Width  uint
	Signed bool
}

// NewBits constructs a bit-string type of a given width.
func NewBits(width uint, signed bool) *Bits {
	return &Bits{width, signed}
}

// Equals implementation for the Type interface.
func (p *Bits) Equals(t Type) bool {
	if t, ok := t.(*Bits); ok {
		return p.Width == t.Width && p.Signed == t.Signed
	}
	//
	return false
}

func (p *Bits) String() string {
	if p.Signed {
		return fmt.Sprintf("int<%d>", p.Width)
	}
	//
	return fmt.Sprintf("bit<%d>", p.Width)
}

// Bool represents the boolean type.
type Bool struct{}

// Equals implementation for the Type interface.
func (p *Bool) Equals(t Type) bool {
	_, ok := t.(*Bool)
	return ok
}

func (p *Bool) String() string {
	return "bool"
}

// Integer represents the type of an integer literal whose width has not been
// fixed.  Such values are assignable to any bit-string type.
type Integer struct{}

// Equals implementation for the Type interface.
func (p *Integer) Equals(t Type) bool {
	_, ok := t.(*Integer)
	return ok
}

func (p *Integer) String() string {
	return "int"
}

// Void represents the (absent) return type of a function or extern which
// returns nothing.
type Void struct{}

// Equals implementation for the Type interface.
func (p *Void) Equals(t Type) bool {
	_, ok := t.(*Void)
	return ok
}

func (p *Void) String() string {
	return "void"
}

// Tuple represents an anonymous, ordered sequence of element types.
type Tuple struct {
	Elements []Type
}

// NewTuple constructs a tuple type from one or more element types.
func NewTuple(elements ...Type) *Tuple {
	return &Tuple{elements}
}

// Equals implementation for the Type interface.
func (p *Tuple) Equals(t Type) bool {
	if t, ok := t.(*Tuple); ok && len(p.Elements) == len(t.Elements) {
		for i := range p.Elements {
			if !p.Elements[i].Equals(t.Elements[i]) {
				return false
			}
		}
		//
		return true
	}
	//
	return false
}

func (p *Tuple) String() string {
	var builder strings.Builder
	//
	builder.WriteString("tuple<")
	//
	for i, element := range p.Elements {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(element.String())
	}
	//
	builder.WriteString(">")
	//
	return builder.String()
}

// Stack represents a fixed-size array of elements (e.g. a header stack
// "H[4]").
type Stack struct {
	Element Type
	Size    uint
}

// NewStack constructs a fixed-size array type.
func NewStack(element Type, size uint) *Stack {
	return &Stack{element, size}
}

// Equals implementation for the Type interface.
func (p *Stack) Equals(t Type) bool {
	if t, ok := t.(*Stack); ok {
		return p.Size == t.Size && p.Element.Equals(t.Element)
	}
	//
	return false
}

func (p *Stack) String() string {
	return fmt.Sprintf("%s[%d]", p.Element.String(), p.Size)
}
