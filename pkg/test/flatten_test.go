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
package test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-p4c/pkg/p4/compiler"
	"github.com/consensys/go-p4c/pkg/p4/midend"
	"github.com/consensys/go-p4c/pkg/p4/printer"
	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/pmezard/go-difflib/difflib"
)

// Determines the (relative) location of the test directory.  That is where
// the P4 test files and their expected outputs are found.
const FlattenTestDir = "../../testdata/flatten"

// ===================================================================
// Valid Tests
// ===================================================================

func Test_Flatten_Flat_01(t *testing.T) {
	Check(t, "flat_01")
}

func Test_Flatten_RoundTrip_01(t *testing.T) {
	Check(t, "roundtrip_01")
}

func Test_Flatten_Double_01(t *testing.T) {
	Check(t, "double_01")
}

func Test_Flatten_Control_01(t *testing.T) {
	Check(t, "control_01")
}

func Test_Flatten_Collision_01(t *testing.T) {
	Check(t, "collision_01")
}

func Test_Flatten_Function_01(t *testing.T) {
	Check(t, "function_01")
}

// ===================================================================
// Invalid Tests
// ===================================================================

func Test_Flatten_Invalid_Initializer_01(t *testing.T) {
	Check(t, "invalid_initializer_01")
}

func Test_Flatten_Invalid_Annotation_01(t *testing.T) {
	Check(t, "invalid_annotation_01")
}

func Test_Flatten_Invalid_Out_01(t *testing.T) {
	Check(t, "invalid_out_01")
}

func Test_Flatten_Invalid_Whole_01(t *testing.T) {
	Check(t, "invalid_whole_01")
}

func Test_Flatten_Invalid_Type_01(t *testing.T) {
	Check(t, "invalid_type_01")
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check compiles a given test file using the default profile, and compares the
// result against the expected output.  For a program which compiles, this is
// the flattened program.  Otherwise, it is the errors reported (one per line).
func Check(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/%s.p4", FlattenTestDir, test)
		outname  = fmt.Sprintf("%s/%s.out", FlattenTestDir, test)
		actual   string
	)
	// Enable testing each file in parallel
	t.Parallel()
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	expected, err := os.ReadFile(outname)
	if err != nil {
		t.Fatal(err)
	}
	// Errors are reported relative to the test directory
	srcfile := source.NewSourceFile(test+".p4", bytes)
	program, _, errs := compiler.Compile(srcfile, midend.DefaultProfile())
	//
	if len(errs) == 0 {
		actual = printer.String(program)
	} else {
		var builder strings.Builder
		//
		for _, e := range errs {
			builder.WriteString(e.Error())
			builder.WriteString("\n")
		}
		//
		actual = builder.String()
	}
	//
	if actual != string(expected) {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expected)),
			B:        difflib.SplitLines(actual),
			FromFile: outname,
			ToFile:   "actual",
			Context:  3,
		})
		//
		if err != nil {
			t.Fatal(err)
		}
		//
		t.Fatalf("Output mismatch for %s\n%s", filename, diff)
	}
}
