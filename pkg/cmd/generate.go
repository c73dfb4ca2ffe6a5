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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinforge/kinforge/pkg/gen"
	"github.com/kinforge/kinforge/pkg/kinematics"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] robot_file",
	Short: "generate kinematics source code for a robot.",
	Long: `Generate transition matrix, forward kinematics, Jacobian and
	centre of mass functions for a robot described by a URDF file or a
	Denavit-Hartenberg table.  Nodes of the robot tree are addressed as
	link_<n> and joint_<n>.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initLogging(cmd)
		//
		robot := readRobotFile(args[0])
		profile := readProfile(cmd)
		//
		opts := gen.Options{
			Forward:     parseJoints(robot, GetStringArray(cmd, "forward")),
			Backward:    parseJoints(robot, GetStringArray(cmd, "backward")),
			FK:          parseRequests(GetStringArray(cmd, "fk")),
			Jacobians:   parseRequests(GetStringArray(cmd, "jacobian")),
			CoM:         GetFlag(cmd, "com"),
			CoMJacobian: GetFlag(cmd, "com-jacobian"),
			Level:       GetInt(cmd, "level"),
		}
		//
		output := GetString(cmd, "output")
		if output == "" {
			output = robot.Name
		}
		//
		if _, err := gen.WriteFile(robot, opts, profile, output); err != nil {
			reportError(err)
		}
	},
}

// Expand a joint selection into joint node selectors, understanding the
// "all" and "none" shorthands.
func parseJoints(robot *kinematics.Robot, selection []string) []string {
	if len(selection) == 1 {
		switch selection[0] {
		case "none":
			return nil
		case "all":
			selectors := make([]string, len(robot.Joints))
			for i := range robot.Joints {
				selectors[i] = "joint_" + strconv.Itoa(i)
			}
			//
			return selectors
		}
	}
	//
	return selection
}

// Parse "origin:destination[:content]" selections into generation requests.
func parseRequests(selections []string) []gen.Request {
	var requests []gen.Request
	//
	for _, selection := range selections {
		parts := strings.Split(selection, ":")
		if len(parts) < 2 || len(parts) > 3 {
			reportError(fmt.Errorf(
				"malformed selection %q, expected origin:destination[:content]",
				selection))
		}
		//
		request := gen.Request{Origin: parts[0], Destination: parts[1]}
		if len(parts) == 3 {
			request.Content = parts[2]
		}
		//
		requests = append(requests, request)
	}
	//
	return requests
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("language", "l", "python", "specify target language.")
	generateCmd.Flags().StringP("profile", "p", "", "specify custom language profile (TOML).")
	generateCmd.Flags().StringP("output", "o", "", "specify output file.")
	generateCmd.Flags().StringArray("forward", []string{"all"}, "joints to generate transition matrices for.")
	generateCmd.Flags().StringArray("backward", []string{"none"}, "joints to generate inverse transition matrices for.")
	generateCmd.Flags().StringArray("fk", nil, "forward kinematics to generate, as origin:destination.")
	generateCmd.Flags().StringArray("jacobian", nil, "Jacobians to generate, as origin:destination.")
	generateCmd.Flags().Bool("com", false, "generate the centre of mass function.")
	generateCmd.Flags().Bool("com-jacobian", false, "generate the centre of mass Jacobian function.")
	generateCmd.Flags().IntP("level", "O", 0, "set optimisation level.")
}
