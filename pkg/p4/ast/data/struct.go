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

// Struct represents a named aggregate made up of an ordered sequence of
// fields, each of which may itself be an aggregate.
type Struct struct {
	name   string
	fields []Field
}

// NewStruct constructs a new struct type with the given fields.  Field names
// are expected to be unique, which is checked by the parser.
func NewStruct(name string, fields ...Field) *Struct {
	return &Struct{name, fields}
}

// Name implementation for the StructLike interface.
func (p *Struct) Name() string {
	return p.name
}

// Fields implementation for the StructLike interface.
func (p *Struct) Fields() []Field {
	return p.fields
}

// Field implementation for the StructLike interface.
func (p *Struct) Field(name string) (Field, bool) {
	return lookupField(name, p.fields)
}

// Equals implementation for the Type interface.  Structs use nominal typing.
func (p *Struct) Equals(t Type) bool {
	return Type(p) == t
}

func (p *Struct) String() string {
	return p.name
}

// Header represents a named, flat aggregate of bit-string fields, along with an
// implicit validity bit.  Headers cannot contain other aggregates.
type Header struct {
	name   string
	fields []Field
}

// NewHeader constructs a new header type with the given fields.
func NewHeader(name string, fields ...Field) *Header {
	return &Header{name, fields}
}

// Name implementation for the StructLike interface.
func (p *Header) Name() string {
	return p.name
}

// Fields implementation for the StructLike interface.
func (p *Header) Fields() []Field {
	return p.fields
}

// Field implementation for the StructLike interface.
func (p *Header) Field(name string) (Field, bool) {
	return lookupField(name, p.fields)
}

// Equals implementation for the Type interface.  Headers use nominal typing.
func (p *Header) Equals(t Type) bool {
	return Type(p) == t
}

func (p *Header) String() string {
	return p.name
}

func lookupField(name string, fields []Field) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	//
	return Field{}, false
}

// IsScalar determines whether a given type holds exactly one non-aggregate
// value (i.e. a bit-string, boolean or integer literal).
func IsScalar(t Type) bool {
	switch t.(type) {
	case *Bits, *Bool, *Integer:
		return true
	default:
		return false
	}
}

// IsAggregate determines whether a given type is made up from component values
// (i.e. a struct, header, tuple or stack).
func IsAggregate(t Type) bool {
	switch t.(type) {
	case *Struct, *Header, *Tuple, *Stack:
		return true
	default:
		return false
	}
}
