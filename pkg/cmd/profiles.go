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

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/kinforge/kinforge/pkg/lang"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [language]",
	Short: "list built-in language profiles.",
	Long: `List the built-in language profiles, or dump a given one as TOML.
	A dumped profile is a valid starting point for a custom profile passed
	to generate via --profile.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, name := range []string{"python", "julia", "matlab"} {
				fmt.Println(name)
			}
			//
			return
		}
		//
		profile, err := lang.Load(args[0])
		if err != nil {
			reportError(err)
		}
		//
		bytes, err := toml.Marshal(profile)
		if err != nil {
			reportError(err)
		}
		//
		fmt.Print(string(bytes))
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
