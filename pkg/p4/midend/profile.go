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
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// FLATTEN_NESTED_STRUCTS names the pass which flattens variables of nested
// struct type.
const FLATTEN_NESTED_STRUCTS = "flatten-nested-structs"

// VERIFY_FLAT names the pass which checks that no nested struct variable
// remains.
const VERIFY_FLAT = "verify-flat"

// Profile describes the mid-end configuration for a given target, namely which
// passes are run and in what order.
type Profile struct {
	// Target names the back end for which the program is being prepared.
	Target string `yaml:"target"`
	// Passes lists the passes to run, in order.
	Passes []string `yaml:"passes"`
}

// DefaultProfile returns the profile used when none is given.
func DefaultProfile() Profile {
	return Profile{
		Target: "bmv2",
		Passes: []string{FLATTEN_NESTED_STRUCTS, VERIFY_FLAT},
	}
}

// LoadProfile reads a profile from a given YAML file.
func LoadProfile(filename string) (Profile, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return Profile{}, fmt.Errorf("can't read profile: %w", err)
	}
	//
	return ParseProfile(bytes)
}

// ParseProfile parses a profile from YAML, checking that every pass named is
// known.  Fields which are omitted take their default values.
func ParseProfile(bytes []byte) (Profile, error) {
	profile := DefaultProfile()
	//
	if err := yaml.Unmarshal(bytes, &profile); err != nil {
		return Profile{}, fmt.Errorf("can't parse profile: %w", err)
	}
	//
	for _, name := range profile.Passes {
		if _, ok := passes[name]; !ok {
			return Profile{}, fmt.Errorf("unknown pass %q", name)
		}
	}
	//
	return profile, nil
}

// Without returns a copy of this profile with the given pass removed.
func (p Profile) Without(pass string) Profile {
	p.Passes = slices.DeleteFunc(slices.Clone(p.Passes), func(n string) bool { return n == pass })
	return p
}
