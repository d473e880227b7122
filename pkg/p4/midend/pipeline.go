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
package midend

import (
	"fmt"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/typing"
	"github.com/consensys/go-p4c/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Unit is a type-checked program passing through the mid-end.
type Unit struct {
	Program *ast.Program
	// Type information for the program, or nil when it has been invalidated
	// by a pass which modified the program.
	Info *typing.Info
	// Source maps for every node in the program.
	SrcMaps *source.Maps[any]
}

// Pass transforms or checks a unit.
type Pass interface {
	// Name returns the name by which profiles refer to this pass.
	Name() string
	// Apply this pass to a given unit, returning any errors found.
	Apply(unit *Unit) []source.SyntaxError
}

// Known passes, indexed by name.
var passes = map[string]func() Pass{
	FLATTEN_NESTED_STRUCTS: func() Pass { return &flattenPass{} },
	VERIFY_FLAT:            func() Pass { return &verifyPass{} },
}

// Pipeline runs a sequence of passes over a unit.
type Pipeline struct {
	passes []Pass
}

// NewPipeline constructs the pipeline described by a given profile.
func NewPipeline(profile Profile) (*Pipeline, error) {
	var pipeline Pipeline
	//
	for _, name := range profile.Passes {
		constructor, ok := passes[name]
		//
		if !ok {
			return nil, fmt.Errorf("unknown pass %q", name)
		}
		//
		pipeline.passes = append(pipeline.passes, constructor())
	}
	//
	return &pipeline, nil
}

// Passes returns the names of the passes in this pipeline, in order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	//
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	//
	return names
}

// Run each pass of this pipeline in turn over a given unit, stopping after the
// first pass which reports errors.  The unit is re-checked before any pass
// when its type information was invalidated by the pass before.
func (p *Pipeline) Run(unit *Unit) []source.SyntaxError {
	for _, pass := range p.passes {
		if unit.Info == nil {
			info, errs := typing.Check(unit.Program, unit.SrcMaps)
			//
			if len(errs) > 0 {
				return errs
			}
			//
			unit.Info = info
		}
		//
		log.Debugf("running pass %s", pass.Name())
		//
		if errs := pass.Apply(unit); len(errs) > 0 {
			log.Debugf("pass %s failed with %d errors", pass.Name(), len(errs))
			return errs
		}
	}
	//
	return nil
}
