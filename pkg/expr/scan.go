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
	"strings"

	"github.com/kinforge/kinforge/pkg/util/source"
)

// Normalise strips all whitespace from an expression.  Expressions are
// compared, rewritten and rendered in normalised form throughout.
func Normalise(input string) string {
	var builder strings.Builder
	//
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case ' ', '\t', '\n', '\r':
			// skip
		default:
			builder.WriteByte(input[i])
		}
	}
	//
	return builder.String()
}

// scan locates every function call, subscript, list literal and operator
// occurrence within a normalised expression.
func scan(s string) ([]Operation, error) {
	var ops []Operation
	//
	if err := checkAlphabet(s); err != nil {
		return nil, err
	}
	// Function calls and subscripts: a symbol name directly followed by an
	// opening bracket.  A bare opening square bracket is a list literal.
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '(' && i > 0 && isWordChar(s[i-1]):
			op, err := scanCall(s, i, false)
			if err != nil {
				return nil, err
			}
			//
			ops = append(ops, op)
		case s[i] == '[' && i > 0 && isWordChar(s[i-1]):
			op, err := scanCall(s, i, true)
			if err != nil {
				return nil, err
			}
			//
			ops = append(ops, op)
		case s[i] == '[':
			op, err := scanList(s, i)
			if err != nil {
				return nil, err
			}
			//
			ops = append(ops, op)
		}
	}
	// Operators, one scan per supported operator.
	for _, op := range scannedOps {
		matches, err := scanOperator(s, op)
		if err != nil {
			return nil, err
		}
		//
		for _, spans := range matches {
			ops = append(ops, newOperation(s, op, op, false, spans))
		}
	}
	//
	return ops, nil
}

// checkAlphabet rejects expressions holding characters outside the
// recognised operator and operand alphabet.  Colons only occur inside
// subscript ranges, where they are self delimiting.
func checkAlphabet(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isWordChar(c) || strings.IndexByte(".,:()[]{}+-*/@", c) >= 0 {
			continue
		}
		//
		return source.NewSyntaxError(s, source.NewSpan(i, i+1), "unrecognised operator token")
	}
	//
	return nil
}

// newOperation assembles an operation record from resolved operand spans.
func newOperation(s string, op string, priority string, isFunc bool, spans []source.Span) Operation {
	texts := make([]string, len(spans))
	children := make([]int, len(spans))
	//
	for i, span := range spans {
		texts[i] = span.Text(s)
		children[i] = NONE
	}
	//
	return Operation{op, priority, isFunc, spans, texts, children, NONE}
}

// scanCall parses one function call (subscript when sub is set) whose
// opening bracket sits at the given index, splitting its argument list at
// top level commas.
func scanCall(s string, open int, sub bool) (Operation, error) {
	// Extract the callee name, scanning backward over word characters.
	begin := open
	for begin > 0 && isWordChar(s[begin-1]) {
		begin--
	}
	//
	name := s[begin:open]
	//
	spans, err := splitArguments(s, open)
	if err != nil {
		return Operation{}, err
	}
	//
	if sub {
		return newOperation(s, name+"[]", OpSubscript, true, spans), nil
	}
	//
	return newOperation(s, name, name, true, spans), nil
}

// scanList parses one list literal whose opening bracket sits at the given
// index.
func scanList(s string, open int) (Operation, error) {
	spans, err := splitArguments(s, open)
	if err != nil {
		return Operation{}, err
	}
	//
	return newOperation(s, OpSubscript, OpSubscript, false, spans), nil
}

// splitArguments returns the spans of the comma-separated arguments of the
// bracketed region opening at the given index, skipping over any nested
// bracket pairs.
func splitArguments(s string, open int) ([]source.Span, error) {
	var (
		spans               []source.Span
		paren, brack, brace = 0, 0, 0
		begin               = open + 1
		outer               = s[open]
	)
	//
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			paren++
		case ')':
			paren--
		case '[':
			brack++
		case ']':
			brack--
		case '{':
			brace++
		case '}':
			brace--
		case ',':
			if paren+brack+brace == 1 {
				spans = append(spans, source.NewSpan(begin, i))
				begin = i + 1
			}
		}
		// Closed the outer bracket?
		if i > open && paren+brack+brace == 0 {
			if (outer == '(' && s[i] != ')') || (outer == '[' && s[i] != ']') {
				return nil, source.NewSyntaxError(s, source.NewSpan(i, i+1), "mismatched bracket")
			}
			//
			return append(spans, source.NewSpan(begin, i)), nil
		}
		// Over-closing indicates imbalance.
		if paren < 0 || brack < 0 || brace < 0 {
			return nil, source.NewSyntaxError(s, source.NewSpan(i, i+1), "unbalanced brackets")
		}
	}
	//
	return nil, source.NewSyntaxError(s, source.NewSpan(open, open+1), "unbalanced brackets")
}
