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

// Render reconstructs the flat expression of this operation from its
// operand texts alone, without recursing into children.  This is the
// canonical form used for subexpression comparison.
func (p *Operation) Render() string {
	return renderOperation(p, p.Texts, false)
}

// Render reconstructs the flat expression of the subtree rooted at the
// given node, inserting parentheses only where the precedence table
// requires them.
func (p *Forest) Render(index int) string {
	return p.render(index, p.needsParens(index))
}

// RenderRoot reconstructs the whole expression from its dominant root.  An
// empty forest renders as the original input (a bare atom).
func (p *Forest) RenderRoot() string {
	if root := p.Root(); root != NONE {
		return p.render(root, false)
	}
	//
	return p.input
}

func (p *Forest) render(index int, parens bool) string {
	op := &p.ops[index]
	operands := make([]string, len(op.Texts))
	//
	for k := range op.Texts {
		if child := op.Children[k]; child != NONE {
			operands[k] = p.render(child, p.needsParens(child))
		} else {
			operands[k] = op.Texts[k]
		}
	}
	//
	return renderOperation(op, operands, parens)
}

// needsParens decides whether the given node requires wrapping parentheses
// within its parent: only when the parent is an infix operator whose
// priority class is at least that of the node.  Operands of calls,
// subscripts and list literals are already delimited by the call syntax.
func (p *Forest) needsParens(index int) bool {
	parent := p.ops[index].parent
	//
	switch {
	case parent == NONE:
		return false
	case p.ops[index].IsFunc:
		return false
	case p.ops[parent].Priority == OpSubscript:
		return false
	default:
		return Outranks(p.ops[parent].Priority, p.ops[index].Priority)
	}
}

// renderOperation assembles one operation from rendered operand strings.
func renderOperation(op *Operation, operands []string, parens bool) string {
	var builder strings.Builder
	//
	switch {
	case op.IsFunc && op.Priority == OpSubscript:
		// Subscript: the operator ends with its bracket pair, such that
		// "q[]" renders q[...] whilst a retargeted "q()" renders q(...).
		builder.WriteString(op.Op[:len(op.Op)-1])
		//
		for i, operand := range operands {
			if i > 0 {
				builder.WriteString(",")
			}
			//
			builder.WriteString(operand)
		}
		//
		builder.WriteByte(op.Op[len(op.Op)-1])
	case op.IsFunc:
		builder.WriteString(op.Op)
		builder.WriteString("(")
		//
		for i, operand := range operands {
			if i > 0 {
				builder.WriteString(",")
			}
			//
			builder.WriteString(operand)
		}
		//
		builder.WriteString(")")
	case op.Op == OpSubscript:
		// List literals are self delimiting, never parenthesised.
		builder.WriteString("[")
		//
		for i, operand := range operands {
			if i > 0 {
				builder.WriteString(",")
			}
			//
			builder.WriteString(operand)
		}
		//
		builder.WriteString("]")
	default:
		if parens {
			builder.WriteString("(")
		}
		//
		token := Token(op.Op)
		//
		for i, operand := range operands {
			if i > 0 {
				builder.WriteString(token)
			}
			//
			builder.WriteString(operand)
		}
		//
		if parens {
			builder.WriteString(")")
		}
	}
	//
	return builder.String()
}
