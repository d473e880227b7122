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
	"github.com/consensys/go-p4c/pkg/util/source"
)

// Kind identifies the construct which prevented a variable from being
// flattened.
type Kind uint8

const (
	// UnsupportedInitializer indicates a nested struct variable with an
	// initialiser.
	UnsupportedInitializer Kind = iota
	// UnsupportedAnnotation indicates a nested struct variable with one or
	// more annotations.
	UnsupportedAnnotation
	// UnsupportedWholeAggregateReference indicates a flattened variable used
	// without selecting one of its fields.
	UnsupportedWholeAggregateReference
	// UnsupportedOutArgument indicates a nested struct passed to an out or
	// inout parameter of an extern.
	UnsupportedOutArgument
	// UnsupportedWholeNestedFieldAccess indicates a struct-typed field of a
	// flattened variable used without selecting one of its fields.
	UnsupportedWholeNestedFieldAccess
)

var kindMessages = [...]string{
	UnsupportedInitializer:             "cannot flatten nested struct with initializer",
	UnsupportedAnnotation:              "cannot flatten nested struct with annotations",
	UnsupportedWholeAggregateReference: "flattened struct cannot be used as a whole value",
	UnsupportedOutArgument:             "nested struct cannot be passed as an out argument",
	UnsupportedWholeNestedFieldAccess:  "flattened struct field cannot be used as a whole value",
}

var kindNames = [...]string{
	UnsupportedInitializer:             "UnsupportedInitializer",
	UnsupportedAnnotation:              "UnsupportedAnnotation",
	UnsupportedWholeAggregateReference: "UnsupportedWholeAggregateReference",
	UnsupportedOutArgument:             "UnsupportedOutArgument",
	UnsupportedWholeNestedFieldAccess:  "UnsupportedWholeNestedFieldAccess",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Diagnostic records a construct which could not be flattened, along with the
// node responsible.
type Diagnostic struct {
	Kind Kind
	Node ast.Node
}

// Message returns a human-readable description of this diagnostic.
func (p Diagnostic) Message() string {
	return kindMessages[p.Kind]
}

// SyntaxErrors converts a set of diagnostics into syntax errors, using the
// given source maps to locate the offending nodes.
func SyntaxErrors(diagnostics []Diagnostic, srcmaps *source.Maps[any]) []source.SyntaxError {
	var errs []source.SyntaxError
	//
	for _, d := range diagnostics {
		errs = append(errs, *srcmaps.SyntaxError(d.Node, d.Message()))
	}
	//
	return errs
}
