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
	"slices"

	"github.com/consensys/go-p4c/pkg/p4/ast"
)

// Component describes what a given field path of a flattened variable has
// become.  This is either a Leaf, when the path is represented by exactly one
// flat declaration, or a Map when the path selects a struct whose own fields
// were flattened in turn.
type Component interface {
	component()
}

// Leaf is a component represented by a single flat declaration, whose type is
// that of the field it replaces.
type Leaf struct {
	Decl *ast.Variable
}

// Map is a component for a struct-typed field path, which maps every field of
// that struct onto its own component.
type Map struct {
	// Field names in declaration order
	names []string
	// Component for each field
	fields map[string]Component
}

func newMap() *Map {
	return &Map{nil, make(map[string]Component)}
}

func (p *Map) put(name string, c Component) {
	if _, ok := p.fields[name]; ok {
		panic("duplicate field " + name)
	}
	//
	p.names = append(p.names, name)
	p.fields[name] = c
}

// Get returns the component for a given field of this map, or false if there
// is no such field.
func (p *Map) Get(name string) (Component, bool) {
	c, ok := p.fields[name]
	return c, ok
}

// Names returns the field names of this map, in declaration order.
func (p *Map) Names() []string {
	return slices.Clone(p.names)
}

// Leaves returns the flat declarations reachable from this map, in
// depth-first, left-to-right order.
func (p *Map) Leaves() []*ast.Variable {
	var leaves []*ast.Variable
	//
	for _, name := range p.names {
		switch c := p.fields[name].(type) {
		case *Leaf:
			leaves = append(leaves, c.Decl)
		case *Map:
			leaves = append(leaves, c.Leaves()...)
		}
	}
	//
	return leaves
}

func (p *Leaf) component() {}
func (p *Map) component()  {}
