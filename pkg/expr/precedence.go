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

import "slices"

// Unary operators are distinguished from their binary counterparts by a "u"
// suffix, hence "-u" is unary minus whilst "-" is binary minus.
const (
	// OpSubscript is the pseudo-operator for subscripts and list literals.
	OpSubscript = "[]"
	// OpPower is exponentiation, the only right-associative operator.
	OpPower = "**"
	// OpMatMul is the matrix product.
	OpMatMul = "@"
)

// precedenceClasses gives, in descending order of priority, the operator
// classes recognised by the scanner.  Operators within a class bind equally
// tightly.
var precedenceClasses = [][]string{
	{"[]"},
	{"**"},
	{"+u", "-u", "~"},
	{"/"},
	{"//"},
	{"%"},
	{"*"},
	{"@"},
	{"-"},
	{"+"},
	{"<<", ">>"},
	{"&"},
	{"^"},
	{"|"},
	{"in", "not in", "is", "is not", "<", "<=", ">", ">=", "!=", "=="},
	{"not"},
	{"and"},
	{"or"},
}

// commutativeOps accumulate all operands found at the same precedence level
// into one n-ary operation, rather than a binary chain.
var commutativeOps = []string{"+", "*"}

// rightAssociativeOps chain from the right, e.g. a**b**c is a**(b**c).
var rightAssociativeOps = []string{"**"}

// scannedOps is the operator subset the scanner locates in expressions; the
// remaining table entries participate in priority comparisons only.
var scannedOps = []string{"+", "-", "*", "@", "/", "**", "-u", "+u"}

// classOf returns the index of the precedence class holding op, or -1 when
// the operator is unknown.
func classOf(op string) int {
	for i, class := range precedenceClasses {
		if slices.Contains(class, op) {
			return i
		}
	}

	return -1
}

// SamePrecedence returns all operators binding exactly as tightly as op,
// including op itself.  The result is empty for an unknown operator.
func SamePrecedence(op string) []string {
	if i := classOf(op); i >= 0 {
		return precedenceClasses[i]
	}

	return nil
}

// HigherPriority returns all operators binding strictly more tightly than
// op, in descending priority order.
func HigherPriority(op string) []string {
	var ops []string
	//
	i := classOf(op)
	//
	for j := 0; j < i; j++ {
		ops = append(ops, precedenceClasses[j]...)
	}
	//
	return ops
}

// Outranks reports whether operator a binds at least as tightly as operator
// b, i.e. a is in b's higher-priority set or in b's own class.
func Outranks(a string, b string) bool {
	return slices.Contains(HigherPriority(b), a) || slices.Contains(SamePrecedence(b), a)
}

// StrictlyOutranks reports whether operator a binds strictly more tightly
// than operator b.
func StrictlyOutranks(a string, b string) bool {
	return slices.Contains(HigherPriority(b), a)
}

// IsCommutative reports whether op accumulates extra operands into an n-ary
// chain.
func IsCommutative(op string) bool {
	return slices.Contains(commutativeOps, op)
}

// IsRightAssociative reports whether op chains from the right.
func IsRightAssociative(op string) bool {
	return slices.Contains(rightAssociativeOps, op)
}

// IsUnary reports whether op is a unary operator marker.
func IsUnary(op string) bool {
	return op == "+u" || op == "-u" || op == "~"
}

// Token returns the surface token of an operator, stripping the unary
// marker.
func Token(op string) string {
	if len(op) > 1 && op[len(op)-1] == 'u' {
		return op[:len(op)-1]
	}

	return op
}
