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
package compiler

import (
	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/midend"
	"github.com/consensys/go-p4c/pkg/p4/parser"
	"github.com/consensys/go-p4c/pkg/p4/typing"
	"github.com/consensys/go-p4c/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Compile takes a given source file, parses and type checks it, and then runs
// the mid-end passes of the given profile over it.  The resulting program is
// ready for a back end targeting the profile.
func Compile(srcfile *source.File, profile midend.Profile) (*ast.Program, *source.Maps[any], []source.SyntaxError) {
	var (
		srcmaps = source.NewSourceMaps[any]()
		info    *typing.Info
	)
	// Parse source file
	program, srcmap, errors := parser.Parse(srcfile)
	//
	if len(errors) != 0 {
		return nil, srcmaps, errors
	}
	//
	srcmaps.Join(srcmap)
	// Resolve names and types
	if info, errors = typing.Check(program, srcmaps); len(errors) != 0 {
		return nil, srcmaps, errors
	}
	// Construct mid-end
	pipeline, err := midend.NewPipeline(profile)
	//
	if err != nil {
		// Profiles are checked when loaded
		panic(err.Error())
	}
	//
	log.Debugf("compiling %s for %s (passes %v)", srcfile.Filename(), profile.Target, pipeline.Passes())
	//
	unit := &midend.Unit{Program: program, Info: info, SrcMaps: srcmaps}
	//
	if errors = pipeline.Run(unit); len(errors) != 0 {
		return nil, srcmaps, errors
	}
	//
	return unit.Program, srcmaps, nil
}
