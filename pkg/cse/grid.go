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
package cse

import (
	"errors"
	"strings"

	"github.com/kinforge/kinforge/pkg/expr"
)

// OptimizeGrid eliminates common subexpressions across a whole grid of
// expressions at once, such that a subexpression shared by several cells is
// extracted exactly once.  The returned grid has the same shape as the
// input, with each cell rewritten in terms of the extracted variables.
func OptimizeGrid(cells [][]string) ([]Variable, [][]string, error) {
	if len(cells) == 0 {
		return nil, nil, errors.New("empty grid")
	}
	// Join all cells into one expression, so that elimination sees the
	// whole grid.
	var builder strings.Builder
	//
	builder.WriteString("matrix([")
	//
	for r, row := range cells {
		if r > 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString("[")
		builder.WriteString(strings.Join(row, ","))
		builder.WriteString("]")
	}
	//
	builder.WriteString("])")
	//
	vars, optimised, err := Optimize(builder.String(), false)
	if err != nil {
		return nil, nil, err
	}
	//
	grid, err := splitGrid(optimised, len(cells))
	if err != nil {
		return nil, nil, err
	}
	//
	return vars, grid, nil
}

// splitGrid recovers the individual cells of an optimised grid expression.
// Splitting goes through the expression scanner rather than the raw text,
// as cells may hold top-level commas of their own (e.g. atan2 calls).
func splitGrid(input string, rows int) ([][]string, error) {
	forest, err := expr.Parse(input)
	if err != nil {
		return nil, err
	}
	//
	root := forest.Root()
	if root == expr.NONE || !forest.Op(root).IsFunc {
		return nil, errors.New("malformed grid expression")
	}
	//
	outer := forest.Op(root).Children[0]
	if outer == expr.NONE {
		return nil, errors.New("malformed grid expression")
	}
	//
	grid := make([][]string, 0, rows)
	//
	for _, child := range forest.Op(outer).Children {
		if child == expr.NONE {
			return nil, errors.New("malformed grid row")
		}
		//
		rowOp := forest.Op(child)
		row := make([]string, len(rowOp.Texts))
		//
		for k := range rowOp.Texts {
			if cell := rowOp.Children[k]; cell != expr.NONE {
				row[k] = forest.Render(cell)
			} else {
				row[k] = rowOp.Texts[k]
			}
		}
		//
		grid = append(grid, row)
	}
	//
	if len(grid) != rows {
		return nil, errors.New("grid shape lost during optimisation")
	}
	//
	return grid, nil
}
