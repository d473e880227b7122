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
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-p4c/pkg/p4/parser"
	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/stretchr/testify/require"
)

const nestedSource = `
struct X { bit<4> p; bit<4> q; }
struct V { X x; bit<8> y; }
control C(out bit<4> r) {
    V v;
    apply { r = v.x.p; }
}
`

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile([]byte("target: tofino\npasses:\n  - flatten-nested-structs\n"))
	require.NoError(t, err)
	require.Equal(t, "tofino", profile.Target)
	require.Equal(t, []string{FLATTEN_NESTED_STRUCTS}, profile.Passes)
}

func TestParseProfile_Defaults(t *testing.T) {
	profile, err := ParseProfile([]byte("target: tofino\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultProfile().Passes, profile.Passes)
}

func TestParseProfile_UnknownPass(t *testing.T) {
	_, err := ParseProfile([]byte("passes: [inline-everything]\n"))
	require.ErrorContains(t, err, `unknown pass "inline-everything"`)
}

func TestParseProfile_Malformed(t *testing.T) {
	_, err := ParseProfile([]byte("passes: {"))
	require.ErrorContains(t, err, "can't parse profile")
}

func TestLoadProfile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "profile.yml")
	require.NoError(t, os.WriteFile(filename, []byte("target: dpdk\npasses: [verify-flat]\n"), 0o600))
	//
	profile, err := LoadProfile(filename)
	require.NoError(t, err)
	require.Equal(t, Profile{"dpdk", []string{VERIFY_FLAT}}, profile)
	//
	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorContains(t, err, "can't read profile")
}

func TestProfile_Without(t *testing.T) {
	profile := DefaultProfile()
	stripped := profile.Without(VERIFY_FLAT)
	//
	require.Equal(t, []string{FLATTEN_NESTED_STRUCTS}, stripped.Passes)
	require.Equal(t, []string{FLATTEN_NESTED_STRUCTS, VERIFY_FLAT}, profile.Passes)
}

func TestPipeline_Default(t *testing.T) {
	pipeline, err := NewPipeline(DefaultProfile())
	require.NoError(t, err)
	require.Equal(t, []string{FLATTEN_NESTED_STRUCTS, VERIFY_FLAT}, pipeline.Passes())
	//
	unit := newUnit(t, nestedSource)
	require.Empty(t, pipeline.Run(unit))
	// Verification re-checked the flattened program
	require.NotNil(t, unit.Info)
	require.Len(t, unit.Program.Variables(), 3)
}

func TestPipeline_VerifyOnly(t *testing.T) {
	pipeline, err := NewPipeline(Profile{"bmv2", []string{VERIFY_FLAT}})
	require.NoError(t, err)
	//
	errs := pipeline.Run(newUnit(t, nestedSource))
	require.Len(t, errs, 1)
	require.Equal(t, "variable v of nested struct type V remains", errs[0].Message())
}

func TestPipeline_StopsOnError(t *testing.T) {
	pipeline, err := NewPipeline(DefaultProfile())
	require.NoError(t, err)
	//
	errs := pipeline.Run(newUnit(t, `
struct X { bit<4> p; }
struct V { X x; }
V v = { { 1 } };
`))
	// Only the flattening error is reported, not the verification error
	require.Len(t, errs, 1)
	require.Equal(t, "cannot flatten nested struct with initializer", errs[0].Message())
}

func TestNewPipeline_UnknownPass(t *testing.T) {
	_, err := NewPipeline(Profile{"bmv2", []string{"bogus"}})
	require.Error(t, err)
}

func newUnit(t *testing.T, src string) *Unit {
	program, srcmap, errs := parser.Parse(source.NewSourceFile("test.p4", []byte(src)))
	require.Empty(t, errs)
	//
	srcmaps := source.NewSourceMaps[any]()
	srcmaps.Join(srcmap)
	//
	return &Unit{program, nil, srcmaps}
}
