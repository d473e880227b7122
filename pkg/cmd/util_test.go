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
package cmd

import (
	"strings"
	"testing"

	"github.com/consensys/go-p4c/pkg/util/source"
)

func Test_SyntaxError_01(t *testing.T) {
	checkSyntaxError(t, "bit<8> x;\nfoo bar;\n", 10, 13, false,
		"test.p4:2:1-4 unknown type\n\nfoo bar;\n^^^\n")
}

func Test_SyntaxError_02(t *testing.T) {
	checkSyntaxError(t, "bit<8> x;\nfoo bar;\n", 14, 17, false,
		"test.p4:2:5-8 unknown type\n\nfoo bar;\n    ^^^\n")
}

func Test_SyntaxError_03(t *testing.T) {
	// Empty spans are still highlighted
	checkSyntaxError(t, "bool b\n", 6, 6, false,
		"test.p4:1:7-8 unknown type\n\nbool b\n      ^\n")
}

func Test_SyntaxError_04(t *testing.T) {
	checkSyntaxError(t, "foo bar;\n", 0, 3, true,
		"test.p4:1:1-4 unknown type\n\nfoo bar;\n\033[1;31m^^^\033[0m\n")
}

func checkSyntaxError(t *testing.T, text string, start, end int, colour bool, expected string) {
	var (
		buf     strings.Builder
		srcfile = source.NewSourceFile("test.p4", []byte(text))
		err     = srcfile.SyntaxError(source.NewSpan(start, end), "unknown type")
	)
	//
	writeSyntaxError(&buf, err, colour)
	//
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
