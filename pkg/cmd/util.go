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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
	"github.com/kinforge/kinforge/pkg/util/source"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt gets an expected int, or panic if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a robot description file using a parser based on the extension of
// the filename.
func readRobotFile(filename string) *kinematics.Robot {
	var (
		robot *kinematics.Robot
		err   error
	)
	//
	switch filepath.Ext(filename) {
	case ".urdf", ".xml":
		robot, err = kinematics.LoadURDF(filename)
	case ".toml":
		robot, err = kinematics.LoadDH(filename)
	default:
		err = fmt.Errorf("unknown robot file format: %s", filename)
	}
	//
	if err != nil {
		reportError(err)
	}
	//
	return robot
}

// Load the language profile named by the flags, either a built-in one or a
// custom TOML file.
func readProfile(cmd *cobra.Command) *lang.Profile {
	if file := GetString(cmd, "profile"); file != "" {
		profile, err := lang.LoadFile(file)
		if err != nil {
			reportError(err)
		}
		//
		return profile
	}
	//
	profile, err := lang.Load(GetString(cmd, "language"))
	if err != nil {
		reportError(err)
	}
	//
	return profile
}

// Report an error and exit, highlighting the offending expression region
// when the error carries one.
func reportError(err error) {
	var syntaxError *source.SyntaxError
	//
	if errors.As(err, &syntaxError) {
		fmt.Println(syntaxError.Error())
		fmt.Println(syntaxError.Highlight())
	} else {
		fmt.Println(err)
	}
	//
	os.Exit(2)
}

// Configure logging, colouring the output only when attached to a terminal.
func initLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	log.SetFormatter(&log.TextFormatter{
		ForceColors: term.IsTerminal(int(os.Stdout.Fd())),
	})
}
