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
	"github.com/consensys/go-p4c/pkg/p4/names"
	"github.com/consensys/go-p4c/pkg/p4/typing"
	"github.com/consensys/go-p4c/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Run flattens every variable of nested struct type within a given
// (type-checked) program.  Each such variable is replaced by one flat
// declaration per leaf field, and every access to a field of the variable is
// replaced by a reference to the corresponding flat declaration.  The program
// is updated in place.  Constructs which cannot be flattened are reported as
// diagnostics and left unchanged, with the remainder of the program still
// being flattened.
func Run(program *ast.Program, info *typing.Info, srcmaps *source.Maps[any]) []Diagnostic {
	ctx := newContext(program, info, srcmaps)
	//
	program.Declarations = ctx.rewriteDeclarations(program.Declarations)
	//
	log.Debugf("flattened %d nested struct variables (%d diagnostics)", len(ctx.table), len(ctx.diagnostics))
	//
	return ctx.diagnostics
}

// context holds the state of a single run over a program.
type context struct {
	program *ast.Program
	info    *typing.Info
	srcmaps *source.Maps[any]
	names   *names.Generator
	// Root component of every flattened variable.
	table map[ast.DeclID]*Map
	// Diagnostics reported so far.
	diagnostics []Diagnostic
}

func newContext(program *ast.Program, info *typing.Info, srcmaps *source.Maps[any]) *context {
	return &context{
		program: program,
		info:    info,
		srcmaps: srcmaps,
		names:   names.ForProgram(program),
		table:   make(map[ast.DeclID]*Map),
	}
}

func (p *context) report(kind Kind, node ast.Node) {
	p.diagnostics = append(p.diagnostics, Diagnostic{kind, node})
}
