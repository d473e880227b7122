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

import "github.com/consensys/go-p4c/pkg/p4/ast/data"

// IsNested determines whether a given type is a struct-like type with at least
// one field which is itself struct-like, a tuple or a fixed-size array.  All
// other types (including headers, whose fields are always scalar) are not
// nested.
func IsNested(datatype data.Type) bool {
	structlike, ok := datatype.(data.StructLike)
	//
	if !ok {
		return false
	}
	//
	for _, field := range structlike.Fields() {
		switch field.Type.(type) {
		case data.StructLike, *data.Tuple, *data.Stack:
			return true
		}
	}
	//
	return false
}
