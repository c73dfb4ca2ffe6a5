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
package kinematics

import (
	"math"
	"strconv"
	"strings"

	"github.com/kinforge/kinforge/pkg/expr"
)

// Numeric values closer to an integer than this are folded onto it, so that
// transition matrices keep exact zeros and ones.
const foldTolerance = 1e-10

// Matrix4 is a 4x4 homogeneous transformation whose cells are canonical
// expression strings.  Products and inverses are computed textually, with
// zero and one factors folded away.
type Matrix4 [4][4]string

// Identity returns the identity transformation.
func Identity() Matrix4 {
	var m Matrix4
	for i := range m {
		for j := range m[i] {
			if i == j {
				m[i][j] = "1"
			} else {
				m[i][j] = "0"
			}
		}
	}
	//
	return m
}

// Mul returns the product m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	//
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			cell := "0"
			for k := 0; k < 4; k++ {
				cell = addTerm(cell, mulTerm(m[i][k], n[k][j]))
			}
			//
			out[i][j] = cell
		}
	}
	//
	return out
}

// RigidInverse inverts a rigid transformation: the rotation block is
// transposed and the translation re-projected through it.  The result is
// only meaningful when the upper left block is a rotation.
func (m Matrix4) RigidInverse() Matrix4 {
	var inv Matrix4
	//
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[i][j] = m[j][i]
		}
	}
	//
	for i := 0; i < 3; i++ {
		sum := "0"
		for k := 0; k < 3; k++ {
			sum = addTerm(sum, mulTerm(m[k][i], m[k][3]))
		}
		//
		inv[i][3] = negTerm(sum)
	}
	//
	inv[3] = [4]string{"0", "0", "0", "1"}
	//
	return inv
}

// Cells returns the matrix as a grid of expression strings, row by row.
func (m Matrix4) Cells() [][]string {
	cells := make([][]string, 4)
	for i := range m {
		cells[i] = append(cells[i], m[i][:]...)
	}
	//
	return cells
}

// mulTerm forms the product of two expressions, folding zero and one
// factors and bracketing looser-binding operands.  Unary signs are hoisted
// out of the product so cells never contain "*-".
func mulTerm(a string, b string) string {
	switch {
	case a == "0" || b == "0":
		return "0"
	case a == "1":
		return b
	case b == "1":
		return a
	}
	//
	var neg bool
	//
	a, neg = splitNeg(a, neg)
	b, neg = splitNeg(b, neg)
	//
	product := wrapFor(a, "*") + "*" + wrapFor(b, "*")
	if neg {
		return "-" + product
	}
	//
	return product
}

// splitNeg strips a leading unary minus applying to the whole expression,
// flipping the sign accumulator.
func splitNeg(s string, neg bool) (string, bool) {
	rest, ok := strings.CutPrefix(s, "-")
	if !ok || !isPrimary(rest) {
		return s, neg
	}
	//
	return rest, !neg
}

// isPrimary holds for atoms, calls and bracketed expressions, which bind
// tighter than any operator.
func isPrimary(s string) bool {
	forest, err := expr.Parse(s)
	if err != nil {
		return false
	} else if forest.Len() == 0 {
		return s != ""
	}
	//
	root := forest.Op(forest.Root())
	//
	return root.IsFunc && root.Length() == len(s)
}

// addTerm forms the sum of two expressions, folding zero terms.  A negated
// right operand merges into a subtraction.
func addTerm(a string, b string) string {
	switch {
	case a == "0":
		return b
	case b == "0":
		return a
	case strings.HasPrefix(b, "-"):
		return a + b
	}
	//
	return a + "+" + b
}

// negTerm negates an expression.
func negTerm(a string) string {
	if a == "0" {
		return "0"
	}
	//
	if rest, ok := strings.CutPrefix(a, "-"); ok && isAtom(rest) {
		return rest
	}
	//
	return "-" + wrapFor(a, "-u")
}

// wrapFor brackets an expression when its dominant operation binds looser
// than the surrounding operator.
func wrapFor(s string, surrounding string) string {
	forest, err := expr.Parse(s)
	if err != nil || forest.Len() == 0 {
		return s
	}
	//
	root := forest.Op(forest.Root())
	if root.IsFunc || root.Length() != len(s) {
		return s
	}
	//
	if expr.Outranks(surrounding, root.Priority) {
		return "(" + s + ")"
	}
	//
	return s
}

func isAtom(s string) bool {
	forest, err := expr.Parse(s)
	return err == nil && forest.Len() == 0
}

// formatNum renders a numeric value as a canonical expression, folding
// values within tolerance of an integer onto it.
func formatNum(v float64) string {
	rounded := math.Round(v)
	if math.Abs(v-rounded) < foldTolerance {
		if rounded == 0 {
			return "0"
		}
		//
		return strconv.FormatFloat(rounded, 'f', -1, 64)
	}
	//
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trigLinear renders c0 + c1*sin(angle) + c2*cos(angle), dropping zero
// terms and unit coefficients.
func trigLinear(c0 float64, c1 float64, c2 float64, angle string) string {
	sum := "0"
	if math.Abs(c0) >= foldTolerance {
		sum = formatNum(c0)
	}
	//
	sum = addTerm(sum, coefTimes(c1, "sin("+angle+")"))
	sum = addTerm(sum, coefTimes(c2, "cos("+angle+")"))
	//
	return sum
}

// coefTimes multiplies a term by a numeric coefficient.
func coefTimes(c float64, term string) string {
	switch {
	case math.Abs(c) < foldTolerance:
		return "0"
	case math.Abs(c-1) < foldTolerance:
		return term
	case math.Abs(c+1) < foldTolerance:
		return negTerm(term)
	}
	//
	return formatNum(c) + "*" + wrapFor(term, "*")
}
