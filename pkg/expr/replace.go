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
package expr

import "strings"

// Rule retargets one operator or function onto another surface form, e.g.
// "**" onto "^", or the matrix product onto a dot(..) call.  The subscript
// rule "[]" rewrites the bracket pair of every subscript.
type Rule struct {
	// From is the operator or function being retargeted.
	From string
	// FromFunc distinguishes a function rule from an operator rule.
	FromFunc bool
	// To is the replacement token, function name, or bracket pair.
	To string
	// ToFunc indicates the replacement uses call syntax.
	ToFunc bool
}

// ReplaceVar substitutes an expression for every occurrence of a symbol
// appearing as an operand, re-rendering the whole tree rather than splicing
// text, so that parenthesisation is recomputed at each substitution site.
func ReplaceVar(input string, symbol string, value string) (string, error) {
	forest, err := Parse(input)
	if err != nil {
		return "", err
	}
	//
	value = Normalise(value)
	// A bare atom has no operations at all.
	if forest.Len() == 0 {
		if forest.Input() == symbol {
			return value, nil
		}
		//
		return forest.Input(), nil
	}
	// Determine the priority of the substituted value, deciding whether it
	// must be parenthesised when landing inside a tighter-binding context.
	priority, err := valuePriority(value)
	if err != nil {
		return "", err
	}
	//
	for i := 0; i < forest.Len(); i++ {
		op := forest.Op(i)
		//
		for k := range op.Texts {
			if op.Children[k] != NONE || op.Texts[k] != symbol {
				continue
			}
			//
			if priority != "" && !op.IsFunc && op.Op != OpSubscript && Outranks(op.Priority, priority) {
				op.Texts[k] = "(" + value + ")"
			} else {
				op.Texts[k] = value
			}
		}
	}
	//
	return forest.RenderRoot(), nil
}

// valuePriority returns the precedence-table key of the dominant operation
// of an expression, or "" when the expression is an atom, a call or a
// bracketed group (all of which never need wrapping).
func valuePriority(value string) (string, error) {
	forest, err := Parse(value)
	if err != nil {
		return "", err
	}
	//
	root := forest.Root()
	if root == NONE || forest.Op(root).IsFunc {
		return "", nil
	}
	// A dominant operation not spanning the whole value means the value is
	// already enclosed in brackets.
	if forest.Op(root).Length() == len(forest.Input()) {
		return forest.Op(root).Priority, nil
	}
	//
	return "", nil
}

// ReplaceOps retargets operators and functions throughout an expression,
// applying all rules against a single parsed tree.  This converts an
// expression from one output dialect to another without disturbing its
// structure.  Substitution is simultaneous: each node is rewritten at most
// once, keyed on its original operator, so one rule's output is never
// re-matched by a later rule (e.g. "@" onto "*" alongside "*" onto ".*").
func ReplaceOps(input string, rules []Rule) (string, error) {
	forest, err := Parse(input)
	if err != nil {
		return "", err
	}
	//
	if forest.Len() == 0 {
		return forest.Input(), nil
	}
	//
	for i := 0; i < forest.Len(); i++ {
		op := forest.Op(i)
		//
		for _, rule := range rules {
			// Subscript rules rewrite the bracket pair of the operator,
			// leaving bare list literals untouched.
			if rule.From == OpSubscript {
				if op.IsFunc && strings.HasSuffix(op.Op, OpSubscript) {
					op.Op = strings.TrimSuffix(op.Op, OpSubscript) + rule.To
					break
				}
				//
				continue
			}
			//
			if op.Op == rule.From && op.IsFunc == rule.FromFunc {
				op.Op = rule.To
				op.IsFunc = rule.ToFunc
				//
				break
			}
		}
	}
	//
	return forest.RenderRoot(), nil
}
