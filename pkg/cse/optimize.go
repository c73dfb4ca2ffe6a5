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
	"fmt"
	"slices"
	"strings"

	"github.com/kinforge/kinforge/pkg/expr"
)

// maxPasses bounds the elimination loop.  Each pass only folds innermost
// operations, hence deeply nested redundancies take several passes.
const maxPasses = 10

// Kind of an extracted variable, used by emitters to pick declarations.
const (
	// KindScalar marks a variable holding a single value.
	KindScalar = "double"
	// KindVector marks a variable holding a list literal.
	KindVector = "vect"
)

// Variable is one subexpression extracted during elimination.  Variables
// are emitted in order, such that each value only refers to symbols of the
// source expression and to previously extracted variables.
type Variable struct {
	// Name of the extracted variable, always prefixed "v_".
	Name string
	// Value is the extracted subexpression, rewritten in terms of earlier
	// variables.
	Value string
	// Kind is either KindScalar or KindVector.
	Kind string
}

// opAliases maps operator tokens onto the name stem of variables extracted
// from them, e.g. redundant products become v_prod variables.
var opAliases = map[string]string{
	"+":  "sum",
	"-":  "sub",
	"-u": "negative",
	"+u": "positive",
	"*":  "prod",
	"**": "exp",
	"@":  "matmul",
	"/":  "div",
	"[]": "vect",
}

// varName derives a fresh variable name from the operator or function of
// the extracted operation, suffixing a counter on collision with already
// extracted variables or with symbols of the source expression.
func varName(operator string, vars []Variable, symbols map[string]bool) string {
	name := "v_"
	//
	if alias, ok := opAliases[operator]; ok {
		name += alias
	} else {
		// Function or subscript: name after it, brackets stripped.
		name += strings.ReplaceAll(strings.ReplaceAll(operator, "[", ""), "]", "")
	}
	//
	if !nameTaken(name, vars, symbols) {
		return name
	}
	//
	for i := 0; ; i++ {
		if candidate := fmt.Sprintf("%s_%d", name, i); !nameTaken(candidate, vars, symbols) {
			return candidate
		}
	}
}

func nameTaken(name string, vars []Variable, symbols map[string]bool) bool {
	if symbols[name] {
		return true
	}
	//
	for _, v := range vars {
		if v.Name == name {
			return true
		}
	}

	return false
}

// symbolNames collects every symbol appearing in the expression, as an
// operand or as a callee, so generated names never capture one.
func symbolNames(forest *expr.Forest) map[string]bool {
	symbols := make(map[string]bool)
	//
	for i := 0; i < forest.Len(); i++ {
		op := forest.Op(i)
		//
		if op.IsFunc {
			symbols[strings.TrimSuffix(op.Op, expr.OpSubscript)] = true
		}
		//
		for k, text := range op.Texts {
			if op.Children[k] == expr.NONE && isSymbol(text) {
				symbols[text] = true
			}
		}
	}
	//
	return symbols
}

// isSymbol holds for operand texts naming a variable, as opposed to
// numbers and bracketed groups.
func isSymbol(text string) bool {
	if text == "" || (text[0] >= '0' && text[0] <= '9') {
		return false
	}
	//
	for i := 0; i < len(text); i++ {
		c := text[i]
		//
		switch {
		case c == '_':
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	//
	return true
}

// Optimize eliminates common subexpressions from a single expression.  It
// returns the extracted variables, in emission order, along with the
// rewritten expression.  Bare list literals are only extracted when
// inclLists is set; subscripts and calls always participate.
//
// Matching is purely textual over canonical renderings.  In particular,
// commutative rearrangements of the same operands are not recognised as
// redundant.
func Optimize(input string, inclLists bool) ([]Variable, string, error) {
	var vars []Variable
	//
	for pass := 0; pass < maxPasses; pass++ {
		forest, err := expr.Parse(input)
		if err != nil {
			return nil, "", err
		}
		//
		varNb := len(vars)
		redundancies := findRedundancies(forest, inclLists, &vars,
			symbolNames(forest))
		//
		if len(redundancies) == 0 {
			break
		}
		// Fold every occurrence of each redundancy into its variable.
		for i := 0; i < forest.Len(); i++ {
			op := forest.Op(i)
			//
			for k, text := range op.Texts {
				for r, redundancy := range redundancies {
					if text == redundancy || text == "("+redundancy+")" {
						op.Texts[k] = vars[varNb+r].Name
						op.Children[k] = expr.NONE
					}
				}
			}
		}
		//
		input = forest.RenderRoot()
	}
	//
	return vars, input, nil
}

// findRedundancies collects, in discovery order, the canonical renderings
// of innermost operations occurring more than once, extracting a variable
// for each.
func findRedundancies(forest *expr.Forest, inclLists bool, vars *[]Variable,
	symbols map[string]bool) []string {
	var (
		leaves       []int
		redundancies []string
	)
	//
	for i := 0; i < forest.Len(); i++ {
		if forest.Op(i).IsLeaf() {
			leaves = append(leaves, i)
		}
	}
	//
	for a, i := range leaves {
		for _, j := range leaves[a+1:] {
			op := forest.Op(i)
			rendering := op.Render()
			//
			if rendering != forest.Op(j).Render() {
				continue
			} else if slices.Contains(redundancies, rendering) {
				continue
			} else if op.Op == expr.OpSubscript && !inclLists {
				continue
			}
			//
			redundancies = append(redundancies, rendering)
			//
			kind := KindScalar
			if op.Op == expr.OpSubscript {
				kind = KindVector
			}
			//
			*vars = append(*vars, Variable{
				varName(op.Op, *vars, symbols), rendering, kind,
			})
		}
	}
	//
	return redundancies
}
