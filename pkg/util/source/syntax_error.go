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
package source

import (
	"fmt"
	"strings"
)

// SyntaxError reports a problem found whilst scanning an algebraic
// expression, such as an unbalanced bracket or an unrecognised operator.
// The span identifies the offending region of the expression.
type SyntaxError struct {
	// Expression being scanned when the error arose.
	expr string
	// Region of the expression where the error arose.
	span Span
	// Error message being reported.
	msg string
}

// NewSyntaxError constructs a syntax error over a given span of an
// expression with a given message.
func NewSyntaxError(expr string, span Span, msg string) *SyntaxError {
	return &SyntaxError{expr, span, msg}
}

// Expression returns the expression on which this error is reported.
func (p *SyntaxError) Expression() string {
	return p.expr
}

// Span returns the span of the expression on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", p.msg, p.span.start)
}

// Highlight renders the expression with a caret line underneath marking the
// span of this error.  Suitable for terminal output.
func (p *SyntaxError) Highlight() string {
	var builder strings.Builder
	//
	builder.WriteString(p.expr)
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat(" ", p.span.start))
	// Always highlight at least one character.
	builder.WriteString(strings.Repeat("^", max(1, p.span.Length())))
	//
	return builder.String()
}
