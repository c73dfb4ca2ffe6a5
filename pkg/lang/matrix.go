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
package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Matrix assembles a literal of the target language from a grid of
// canonical expressions, converting each cell.
func (p *Profile) Matrix(cells [][]string) (string, error) {
	var builder strings.Builder
	//
	builder.WriteString(p.MatrixOpen)
	//
	for i, row := range cells {
		builder.WriteString(p.RowOpen)
		//
		for j, cell := range row {
			converted, err := p.Convert(cell)
			if err != nil {
				return "", err
			}
			//
			builder.WriteString(converted)
			//
			if j < len(row)-1 {
				builder.WriteString(p.ColSeparator)
			} else {
				builder.WriteString(p.RowClose)
			}
		}
		//
		if i < len(cells)-1 {
			builder.WriteString(p.RowSeparator)
		} else {
			builder.WriteString(p.MatrixClose)
		}
	}
	//
	return builder.String(), nil
}

// MatrixFromLabel assembles a matrix literal from an embedded label of the
// form #mat#rows#cols#elem#...#, where elements are listed row by row.
func (p *Profile) MatrixFromLabel(label string) (string, error) {
	parts := strings.Split(label, "#")
	if len(parts) < 5 || parts[1] != "mat" {
		return "", fmt.Errorf("malformed matrix label %q", label)
	}
	//
	rows, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("malformed matrix label %q", label)
	}
	//
	cols, err := strconv.Atoi(parts[3])
	if err != nil {
		return "", fmt.Errorf("malformed matrix label %q", label)
	}
	//
	elements := parts[4 : len(parts)-1]
	if len(elements) != rows*cols {
		return "", fmt.Errorf("matrix label %q holds %d elements, expected %d",
			label, len(elements), rows*cols)
	}
	//
	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = elements[i*cols : (i+1)*cols]
	}
	//
	return p.Matrix(cells)
}

// Subscript indexes a single element of a vector, e.g. "q[0]" for Python
// or "q(1)" for MATLAB.
func (p *Profile) Subscript(name string, index int) string {
	brackets := "[]"
	if sub, ok := p.Operators["[]"]; ok && len(sub.Token) == 2 {
		brackets = sub.Token
	}
	//
	return fmt.Sprintf("%s%c%d%c", name, brackets[0], index+p.IndexBase, brackets[1])
}

// SliceVec subscripts a row range of a vector, e.g. "com0[0:3]" for Python
// or "com0(1:3)" for MATLAB.
func (p *Profile) SliceVec(name string, from int, to int) string {
	brackets := "[]"
	if sub, ok := p.Operators["[]"]; ok && len(sub.Token) == 2 {
		brackets = sub.Token
	}
	//
	end := to + p.IndexBase
	if p.SliceExclusive {
		end++
	}
	//
	return fmt.Sprintf("%s%c%d:%d%c", name, brackets[0], from+p.IndexBase, end, brackets[1])
}

// SliceMat subscripts a row range and a single column of a matrix, e.g.
// "T[0:3,3]" for Python or "T(1:3,4)" for MATLAB.
func (p *Profile) SliceMat(name string, rowFrom int, rowTo int, col int) string {
	brackets := "[]"
	if sub, ok := p.Operators["[]"]; ok && len(sub.Token) == 2 {
		brackets = sub.Token
	}
	//
	end := rowTo + p.IndexBase
	if p.SliceExclusive {
		end++
	}
	//
	return fmt.Sprintf("%s%c%d:%d,%d%c", name, brackets[0],
		rowFrom+p.IndexBase, end, col+p.IndexBase, brackets[1])
}
