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
package gen

import (
	"strings"

	"github.com/kinforge/kinforge/pkg/kinematics"
)

// prettyMatrix lays a matrix out for docstrings, one bracketed row per
// line with centred, column-aligned cells and a blank spacer row between
// consecutive rows.
func prettyMatrix(m kinematics.Matrix4) string {
	widths := make([]int, 4)
	//
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			widths[j] = max(widths[j], len(m[i][j]))
		}
	}
	//
	inner := 0
	for _, w := range widths {
		inner += w
	}
	// Two spaces between columns.
	inner += 2 * 3
	//
	var rows []string
	//
	for i := 0; i < 4; i++ {
		row := "["
		for j := 0; j < 4; j++ {
			if j > 0 {
				row += "  "
			}
			//
			row += centre(m[i][j], widths[j])
		}
		//
		rows = append(rows, row+"]")
		//
		if i < 3 {
			rows = append(rows, "["+strings.Repeat(" ", inner)+"]")
		}
	}
	//
	return strings.Join(rows, "\n")
}

// centre pads a cell to the column width, with the surplus split around
// it.
func centre(cell string, width int) string {
	left := (width - len(cell)) / 2
	right := width - len(cell) - left
	//
	return strings.Repeat(" ", left) + cell + strings.Repeat(" ", right)
}
