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
	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
)

// Explode a variable of the given struct type into one flat declaration per
// leaf field, named by joining the field path onto the given prefix.  Fields
// of struct type are exploded recursively, whilst all other fields (including
// headers, tuples and stacks) become a single flat declaration of the field's
// type.  The flat declarations are returned in depth-first, left-to-right
// order, along with the map relating each field to its component.
func (p *context) explode(origin ast.Node, prefix string, datatype *data.Struct) ([]*ast.Variable, *Map) {
	var (
		decls []*ast.Variable
		root  = newMap()
	)
	//
	for _, field := range datatype.Fields() {
		candidate := prefix + "_" + field.Name
		//
		if sub, ok := field.Type.(*data.Struct); ok {
			subdecls, submap := p.explode(origin, candidate, sub)
			decls = append(decls, subdecls...)
			root.put(field.Name, submap)
		} else {
			decl := p.program.NewVariable(p.names.Fresh(candidate), field.Type)
			p.srcmaps.Copy(origin, decl)
			decls = append(decls, decl)
			root.put(field.Name, &Leaf{decl})
		}
	}
	//
	return decls, root
}
