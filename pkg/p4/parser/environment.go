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
package parser

import (
	"fmt"

	"github.com/consensys/go-p4c/pkg/p4/ast/data"
)

// Environment captures the named types declared so far whilst parsing.  Types
// must be declared before they are used, hence the environment grows as the
// parser moves through the file.
type Environment struct {
	// Types identifies the set of declared struct-like types, in declaration
	// order.
	types []data.StructLike
}

// DeclareType declares a new struct-like type.  If a type with the same name
// already exists, this panics.
func (p *Environment) DeclareType(datatype data.StructLike) {
	if p.IsType(datatype.Name()) {
		panic(fmt.Sprintf("type %s already declared", datatype.Name()))
	}
	//
	p.types = append(p.types, datatype)
}

// IsType checks whether or not a given name is already declared as a type.
func (p *Environment) IsType(name string) bool {
	for _, t := range p.types {
		if t.Name() == name {
			return true
		}
	}
	//
	return false
}

// LookupType looks up the type declared with a given name.
func (p *Environment) LookupType(name string) data.StructLike {
	for _, t := range p.types {
		if t.Name() == name {
			return t
		}
	}
	//
	panic(fmt.Sprintf("unknown type %s", name))
}
