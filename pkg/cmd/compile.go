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
	"fmt"
	"os"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/compiler"
	"github.com/consensys/go-p4c/pkg/p4/midend"
	"github.com/consensys/go-p4c/pkg/p4/printer"
	"github.com/consensys/go-p4c/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.p4",
	Short: "run the mid-end over a P4 source file.",
	Long: `Parse and check a given P4 source file, and then run the mid-end passes
of the selected profile over it.  By default, nested struct variables are
flattened and the result is verified to contain none.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		ir := GetFlag(cmd, "ir")
		profile := loadProfile(GetString(cmd, "profile"))
		//
		if GetFlag(cmd, "no-verify") {
			profile = profile.Without(midend.VERIFY_FLAT)
		}
		// Compile source file, or print errors
		program := CompileSourceFile(args[0], profile)
		//
		if ir {
			writeIntermediateRepresentation(program)
		}
	},
}

// CompileSourceFile reads a given source file and runs it through the mid-end
// of a given profile.  Errors are reported and the process exits.
func CompileSourceFile(filename string, profile midend.Profile) *ast.Program {
	log.Debug(fmt.Sprintf("including source file %s", filename))
	// Read source file
	srcfiles, err := source.ReadFiles(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Compile source file
	program, _, errors := compiler.Compile(&srcfiles[0], profile)
	// Check for errors
	if len(errors) != 0 {
		// Report errors
		for _, err := range errors {
			printSyntaxError(&err)
		}
		// Fail
		os.Exit(4)
	}
	// Done
	return program
}

func loadProfile(filename string) midend.Profile {
	if filename == "" {
		return midend.DefaultProfile()
	}
	//
	profile, err := midend.LoadProfile(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	log.Debugf("loaded profile %s (target %s)", filename, profile.Target)
	//
	return profile
}

func writeIntermediateRepresentation(program *ast.Program) {
	if err := printer.Fprint(os.Stdout, program); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("ir", false, "Output intermediate representation (IR)")
	compileCmd.Flags().Bool("no-verify", false, "Skip checking that no nested struct variable remains")
}
