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

	"github.com/consensys/go-p4c/pkg/p4/midend/nested"
	"github.com/consensys/go-p4c/pkg/util/source"
)

type flattenPass struct{}

func (p *flattenPass) Name() string {
	return FLATTEN_NESTED_STRUCTS
}

func (p *flattenPass) Apply(unit *Unit) []source.SyntaxError {
	diagnostics := nested.Run(unit.Program, unit.Info, unit.SrcMaps)
	// Program has changed
	unit.Info = nil
	//
	return nested.SyntaxErrors(diagnostics, unit.SrcMaps)
}

// verifyPass checks that a program has been flattened, such that no variable
// of nested struct type remains.  Since the unit is re-checked before this pass
// runs, this also ensures the flattened program is well-typed.
type verifyPass struct{}

func (p *verifyPass) Name() string {
	return VERIFY_FLAT
}

func (p *verifyPass) Apply(unit *Unit) []source.SyntaxError {
	var errs []source.SyntaxError
	//
	for _, v := range unit.Program.Variables() {
		if nested.IsNested(v.Type) {
			msg := fmt.Sprintf("variable %s of nested struct type %s remains", v.Name(), v.Type.String())
			errs = append(errs, *unit.SrcMaps.SyntaxError(v, msg))
		}
	}
	//
	return errs
}
