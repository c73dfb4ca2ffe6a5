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

import (
	"fmt"
	"slices"

	"github.com/kinforge/kinforge/pkg/util/source"
)

// scanOperator locates every occurrence of one operator within a normalised
// expression, resolving the exact operand boundaries of each.  Occurrences
// of a commutative operator at the same precedence level collapse into a
// single n-ary match; hence the same chain discovered from several
// positions deduplicates to one operand set.
func scanOperator(s string, op string) ([][]source.Span, error) {
	var (
		matches [][]source.Span
		seen    = make(map[string]bool)
		token   = Token(op)
	)
	//
	for i := 0; i+len(token) <= len(s); i++ {
		if s[i:i+len(token)] != token || operatorAt(s, i) != op {
			continue
		}
		//
		spans, err := resolveOperands(s, i, op)
		if err != nil {
			return nil, err
		}
		// Deduplicate chains discovered from several member positions.
		key := fmt.Sprintf("%v", spans)
		if !seen[key] {
			seen[key] = true

			matches = append(matches, spans)
		}
	}
	//
	return matches, nil
}

// resolveOperands walks outward from an operator occurrence at the given
// position to find the exact boundaries of its operands.  Extra operands of
// a commutative chain are split out, yielding an n-ary operand list.
func resolveOperands(s string, pos int, op string) ([]source.Span, error) {
	var (
		token  = Token(op)
		extras []int
	)
	//
	left, leftExtras, err := walkLeft(s, pos, op)
	if err != nil {
		return nil, err
	}
	//
	right, rightExtras, err := walkRight(s, pos+len(token), op)
	if err != nil {
		return nil, err
	}
	//
	extras = append(extras, leftExtras...)
	extras = append(extras, rightExtras...)
	slices.Sort(extras)
	// Unary operators have no left operand by construction.
	var operands [][2]int
	if IsUnary(op) {
		operands = [][2]int{{pos, pos}, {pos + len(token), right}}
	} else {
		operands = [][2]int{{left, pos}, {pos + len(token), right}}
	}
	// Split every operand at each same-operator position found inside it.
	for i := 0; i < len(operands); i++ {
		for _, extra := range extras {
			if operands[i][0] < extra && extra < operands[i][1] {
				operands = append(operands, [2]int{extra + 1, operands[i][1]})
				operands[i][1] = extra
			}
		}
	}
	//
	slices.SortFunc(operands, func(a, b [2]int) int { return a[0] - b[0] })
	//
	spans := make([]source.Span, len(operands))
	for i, operand := range operands {
		spans[i] = source.NewSpan(operand[0], operand[1])
	}
	//
	return spans, nil
}

// walkLeft scans leftward from an operator at pos for the beginning of its
// left operand.  Balanced bracket groups are skipped whole; encountered
// operators are compared against the precedence table to decide whether to
// absorb them or stop.
func walkLeft(s string, pos int, op string) (begin int, extras []int, err error) {
	i := pos - 1
	//
	for i >= 0 {
		// Skip fully over any balanced closing bracket.
		for i >= 0 && (s[i] == ')' || s[i] == ']' || s[i] == '}') {
			j, err := skipBack(s, i)
			if err != nil {
				return 0, nil, err
			}
			//
			i = j
		}
		//
		if i < 0 {
			break
		}
		//
		if !isLeftOperandChar(s[i]) {
			o := operatorEndingAt(s, i)
			//
			switch {
			case o == op && IsCommutative(op):
				extras = append(extras, i)
			case o == op && IsRightAssociative(op):
				return i + 1, extras, nil
			case o != "" && Outranks(o, op):
				// Higher priority or same class: absorb and keep walking.
				i -= len(Token(o)) - 1
			default:
				return i + 1, extras, nil
			}
		}
		//
		i--
	}
	//
	return 0, extras, nil
}

// walkRight scans rightward from just after an operator for the end of its
// right operand.  This mirrors walkLeft, except that a second occurrence of
// the same left-associative operator terminates the operand, whilst a
// right-associative one is absorbed.
func walkRight(s string, pos int, op string) (end int, extras []int, err error) {
	i := pos
	//
	for i < len(s) {
		// Skip fully over any balanced opening bracket.
		for i < len(s) && (s[i] == '(' || s[i] == '[' || s[i] == '{') {
			j, err := skipForward(s, i)
			if err != nil {
				return 0, nil, err
			}
			//
			i = j
		}
		//
		if i >= len(s) {
			break
		}
		//
		if !isRightOperandChar(s[i]) {
			o := operatorAt(s, i)
			//
			switch {
			case o == op && IsCommutative(op):
				extras = append(extras, i)
			case o == op && !IsRightAssociative(op):
				return i, extras, nil
			case o != "" && Outranks(o, op):
				i += len(Token(o)) - 1
			default:
				return i, extras, nil
			}
		}
		//
		i++
	}
	//
	return len(s), extras, nil
}

// skipBack returns the index of the character preceding the bracket group
// closing at index i.
func skipBack(s string, i int) (int, error) {
	var opener byte
	//
	closer := s[i]
	//
	switch closer {
	case ')':
		opener = '('
	case ']':
		opener = '['
	default:
		opener = '{'
	}
	//
	depth := 1
	//
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case closer:
			depth++
		case opener:
			depth--
		}
		//
		if depth == 0 {
			return j - 1, nil
		}
	}
	//
	return 0, source.NewSyntaxError(s, source.NewSpan(i, i+1), "unbalanced brackets")
}

// skipForward returns the index of the character following the bracket
// group opening at index i.
func skipForward(s string, i int) (int, error) {
	var closer byte
	//
	opener := s[i]
	//
	switch opener {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	default:
		closer = '}'
	}
	//
	depth := 1
	//
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case opener:
			depth++
		case closer:
			depth--
		}
		//
		if depth == 0 {
			return j + 1, nil
		}
	}
	//
	return 0, source.NewSyntaxError(s, source.NewSpan(i, i+1), "unbalanced brackets")
}
