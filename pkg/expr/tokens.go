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

// isWordChar accepts the characters making up symbol names and numeric
// literals (sign and exponent aside).
func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isLeftOperandChar accepts characters which, encountered whilst walking
// leftward, still belong to the operand under construction.
func isLeftOperandChar(c byte) bool {
	return isWordChar(c) || strings.IndexByte(".]){}", c) >= 0
}

// isRightOperandChar accepts characters which, encountered whilst walking
// rightward, still belong to the operand under construction.
func isRightOperandChar(c byte) bool {
	return isWordChar(c) || strings.IndexByte(".[({}", c) >= 0
}

// isOperatorChar accepts every character the scanner may see inside an
// operator token.
func isOperatorChar(c byte) bool {
	return strings.IndexByte("+-*/@~%^|&<>=!", c) >= 0
}

// classifyUnary resolves a "+" or "-" at the given index.  A sign is unary
// iff it starts the expression or the character to its left is itself an
// operator, an opening bracket or a comma; otherwise it is binary.
func classifyUnary(s string, index int) string {
	if index == 0 {
		return s[index:index+1] + "u"
	}
	//
	left := s[index-1]
	if isWordChar(left) || strings.IndexByte(")}].", left) >= 0 {
		return s[index : index+1]
	}
	//
	return s[index:index+1] + "u"
}

// operatorAt resolves the full operator token whose first character sits at
// the given index, scanning forward.  It returns "" when the character at
// index is not an operator, or is the trailing character of a longer token
// (e.g. the second star of "**").
func operatorAt(s string, index int) string {
	switch c := s[index]; c {
	case '+', '-':
		return classifyUnary(s, index)
	case '~', '%', '^', '|', '&', '@':
		return string(c)
	case '*':
		if index > 0 && s[index-1] == '*' {
			return ""
		} else if index+1 < len(s) && s[index+1] == '*' {
			return "**"
		}
		//
		return "*"
	case '/':
		if index > 0 && s[index-1] == '/' {
			return ""
		} else if index+1 < len(s) && s[index+1] == '/' {
			return "//"
		}
		//
		return "/"
	}
	//
	return ""
}

// operatorEndingAt resolves the full operator token whose last character
// sits at the given index, scanning backward.  The leftward operand walk
// always lands on the final character of a token, hence only the preceding
// character needs checking for two-character operators.
func operatorEndingAt(s string, index int) string {
	switch c := s[index]; c {
	case '+', '-':
		return classifyUnary(s, index)
	case '~', '%', '^', '|', '&', '@':
		return string(c)
	case '*':
		if index > 0 && s[index-1] == '*' {
			return "**"
		}
		//
		return "*"
	case '/':
		if index > 0 && s[index-1] == '/' {
			return "//"
		}
		//
		return "/"
	}
	//
	return ""
}
