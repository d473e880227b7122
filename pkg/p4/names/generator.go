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
package names

import (
	"fmt"
	"strings"

	"github.com/consensys/go-p4c/pkg/p4/ast"
)

// Generator allocates fresh names which are unique across a translation unit.
// A generator is seeded with every name already used within a program, and
// allocation is deterministic: the same sequence of requests against the same
// program always produces the same names.
type Generator struct {
	// Set of all names used so far (declared or generated).
	used map[string]bool
	// Next suffix to try for a given base name.
	counters map[string]uint
}

// NewGenerator constructs a generator which avoids all the given names.
func NewGenerator(names ...string) *Generator {
	g := &Generator{make(map[string]bool), make(map[string]uint)}
	//
	for _, n := range names {
		g.used[n] = true
	}
	//
	return g
}

// ForProgram constructs a generator seeded with every name declared within a
// given program (types, variables, parameters, functions, etc).
func ForProgram(program *ast.Program) *Generator {
	var names []string
	//
	ast.Inspect(program, func(n ast.Node) bool {
		if d, ok := n.(ast.Declaration); ok {
			names = append(names, d.Name())
		}
		//
		return true
	})
	//
	return NewGenerator(names...)
}

// IsUsed checks whether a given name has been used already.
func (g *Generator) IsUsed(name string) bool {
	return g.used[name]
}

// Fresh returns a name derived from the given base which has not been used
// before, and marks it as used.  If the base ends in a suffix of the form
// "_<digits>", that suffix is assumed to have been generated and is dropped
// before deriving a new name.  When the base itself is taken, a suffix "_<n>"
// is appended using the smallest counter (per base) which gives an unused
// name.
func (g *Generator) Fresh(base string) string {
	base = stripGeneratedSuffix(base)
	name := base
	//
	for g.used[name] {
		n := g.counters[base]
		g.counters[base] = n + 1
		name = fmt.Sprintf("%s_%d", base, n)
	}
	//
	g.used[name] = true
	//
	return name
}

func stripGeneratedSuffix(base string) string {
	trimmed := strings.TrimRight(base, "0123456789")
	// Only strip when digits were preceded by an underscore, and something
	// remains before it.
	if len(trimmed) < len(base) && len(trimmed) > 1 && strings.HasSuffix(trimmed, "_") {
		return trimmed[:len(trimmed)-1]
	}
	//
	return base
}
