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
	"github.com/kinforge/kinforge/pkg/util/source"
)

// NONE marks an operand without an associated child operation, and a node
// without a parent.
const NONE = -1

// Operation is a single operator application, function call, subscript or
// list literal located within an expression.  Operand spans are disjoint
// and strictly increasing; their union (along with the operator tokens
// between them) makes up the operation's total span.
type Operation struct {
	// Op is the operator token, the function name, "name[]" for a
	// subscript of name, or "[]" for a list literal.  Rewriting passes may
	// retarget this without touching Priority.
	Op string
	// Priority is the key used against the precedence table.  It never
	// changes after scanning: "[]" for subscripts and lists, the function
	// name for calls, and the operator itself otherwise.
	Priority string
	// IsFunc distinguishes call-syntax operations from infix operators.
	IsFunc bool
	// Spans locates each operand in the scanned expression.
	Spans []source.Span
	// Texts holds the operand texts.  Rewriting passes may replace an
	// entry (e.g. with a variable name), superseding the span.
	Texts []string
	// Children indexes, per operand, the operation producing exactly that
	// operand, or NONE for an atom.
	Children []int
	// parent indexes the operation this one is an operand of, or NONE.
	parent int
}

// Span returns the total span of this operation, from the start of its
// first operand to the end of its last.
func (p *Operation) Span() source.Span {
	return source.NewSpan(p.Spans[0].Start(), p.Spans[len(p.Spans)-1].End())
}

// Length returns the number of characters covered by this operation.
func (p *Operation) Length() int {
	sp := p.Span()
	return sp.Length()
}

// IsLeaf reports whether no operand of this operation is itself an
// operation.
func (p *Operation) IsLeaf() bool {
	for _, c := range p.Children {
		if c != NONE {
			return false
		}
	}

	return true
}

// Forest holds every operation discovered in one expression, stored in a
// single arena with parent/child links expressed as indices.  Multiple
// independent roots arise when the expression is a bare grid of values.
type Forest struct {
	// Normalised (whitespace free) expression this forest was built from.
	input string
	// Arena of all operations.
	ops []Operation
}

// Parse scans a single algebraic expression into a forest of operations.
// The input is whitespace-normalised first.  An expression without any
// operation (a bare symbol or literal) yields an empty forest.
func Parse(input string) (*Forest, error) {
	normalised := Normalise(input)
	//
	ops, err := scan(normalised)
	if err != nil {
		return nil, err
	}
	//
	forest := &Forest{normalised, ops}
	forest.link()
	//
	return forest, nil
}

// Input returns the normalised expression this forest was built from.
func (p *Forest) Input() string {
	return p.input
}

// Len returns the number of operations in this forest.
func (p *Forest) Len() int {
	return len(p.ops)
}

// Op returns the ith operation of this forest.
func (p *Forest) Op(index int) *Operation {
	return &p.ops[index]
}

// Parent returns the index of the operation the given node is an operand
// of, or NONE for a root.
func (p *Forest) Parent(index int) int {
	return p.ops[index].parent
}

// Roots returns the indices of all parentless operations.
func (p *Forest) Roots() []int {
	var roots []int
	//
	for i := range p.ops {
		if p.ops[i].parent == NONE {
			roots = append(roots, i)
		}
	}
	//
	return roots
}

// Root returns the dominant root of this forest, being the parentless
// operation with the largest total span, or NONE for an empty forest.
func (p *Forest) Root() int {
	root, length := NONE, -1
	//
	for _, i := range p.Roots() {
		if n := p.ops[i].Length(); n > length {
			root, length = i, n
		}
	}
	//
	return root
}

// Depth returns the number of ancestors above the given node.
func (p *Forest) Depth(index int) int {
	depth := 0
	//
	for i := p.ops[index].parent; i != NONE; i = p.ops[i].parent {
		depth++
	}
	//
	return depth
}

// link connects every operation to the operation whose operand span it
// fills.  When several operations fall within the same operand region, the
// one with the largest total span dominates; the rest are redundant
// detections left unlinked.
func (p *Forest) link() {
	for i := range p.ops {
		for k, span := range p.ops[i].Spans {
			child, length := NONE, -1
			//
			for j := range p.ops {
				if j == i {
					continue
				}
				//
				total := p.ops[j].Span()
				if span.Contains(total) && p.ops[j].Length() > length {
					child, length = j, p.ops[j].Length()
				}
			}
			//
			if child != NONE {
				p.ops[i].Children[k] = child
				p.ops[child].parent = i
			}
		}
	}
}
