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
package termio

import "testing"

func Test_Escape_01(t *testing.T) {
	checkEscape(t, NewAnsiEscape().FgColour(TERM_RED), "\033[31m")
}

func Test_Escape_02(t *testing.T) {
	checkEscape(t, BoldAnsiEscape().FgColour(TERM_YELLOW), "\033[1;33m")
}

func Test_Escape_03(t *testing.T) {
	checkEscape(t, ResetAnsiEscape(), "\033[0m")
}

func Test_Highlight_01(t *testing.T) {
	actual := Highlight(BoldAnsiEscape().FgColour(TERM_RED), "^^")
	//
	if actual != "\033[1;31m^^\033[0m" {
		t.Errorf("unexpected highlight %q", actual)
	}
}

func checkEscape(t *testing.T, escape AnsiEscape, expected string) {
	if actual := escape.Build(); actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}
