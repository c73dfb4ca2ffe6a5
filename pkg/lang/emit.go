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
package lang

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kinforge/kinforge/pkg/cse"
	"github.com/kinforge/kinforge/pkg/expr"
)

// Pseudo-variable names opening and closing a counted loop within a
// function's variable list.  The loop value holds "from:upto".
const (
	MarkFor     = "__FOR__"
	MarkEndLoop = "__ENDLOOP__"
)

// Param is one parameter of a generated function.
type Param struct {
	// Name of the parameter.
	Name string
	// Kind is "double", "vect" or "mat".
	Kind string
	// Description documents the parameter in the docstring.
	Description string
}

// Function describes one function to emit.  Exactly one of Scalar and
// Matrix holds the return value.
type Function struct {
	// Name of the function.
	Name string
	// Params of the function, sorted by name at emission.
	Params []Param
	// Docstring body, without parameter documentation.
	Docstring string
	// Vars are the intermediate variables, in evaluation order.
	Vars []cse.Variable
	// Scalar return expression.
	Scalar string
	// Matrix return expression, row by row.
	Matrix [][]string
	// VectorInput collapses all parameters into a single vector q, with
	// each parameter becoming a subscript of it.
	VectorInput bool
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// Func emits a complete function in the target language: declaration,
// docstring, intermediate variables and return statement.
func (p *Profile) Func(fn *Function) (string, error) {
	params := slices.Clone(fn.Params)
	slices.SortFunc(params, func(a, b Param) int {
		return strings.Compare(a.Name, b.Name)
	})
	//
	code := strings.Replace(p.FuncPrefix, "_fname_", fn.Name, 1)
	docParams := params
	//
	if fn.VectorInput {
		if p.Typed {
			code += p.VectorType + " "
		}
		//
		code += "q"
		//
		description := "Vector of variables where :"
		for i, param := range params {
			description += fmt.Sprintf("\n        - q[%d] = %s :\n              %s",
				i+p.IndexBase, param.Name, param.Description)
		}
		//
		docParams = []Param{{"q", "vect", description}}
	} else {
		for i, param := range params {
			if p.Typed {
				code += p.kindType(param.Kind) + " "
			}
			//
			code += param.Name
			//
			if i < len(params)-1 {
				code += p.ParamSeparator + " "
			}
		}
	}
	//
	code += p.FuncSuffix + "\n" + indent(1)
	//
	if fn.Docstring != "" {
		code = p.attachDocstring(code, fn, docParams)
	}
	// Intermediate variables.
	loops := 0
	//
	for _, v := range fn.Vars {
		switch v.Name {
		case MarkFor:
			from, upto, err := parseLoopBounds(v.Value)
			if err != nil {
				return "", err
			}
			//
			loops++
			code += p.ForLoop(from, upto) + "\n" + indent(loops+1)
			//
			continue
		case MarkEndLoop:
			loops--
			code += "\n" + indent(1+loops) + p.EndLoop
			//
			continue
		}
		//
		if p.Typed {
			if typ := p.kindType(v.Kind); typ != "" {
				code += typ + " "
			}
		}
		//
		value, err := p.vectorise(v.Value, params, fn.VectorInput)
		if err != nil {
			return "", err
		}
		//
		converted, err := p.Convert(value)
		if err != nil {
			return "", err
		}
		//
		code += v.Name + " = " + converted + p.Terminator + "\n" + indent(1+loops)
	}
	//
	if len(fn.Vars) > 0 {
		code += "\n" + indent(1)
	}
	//
	if fn.Matrix != nil {
		return p.emitMatrixReturn(code, fn, params)
	}
	//
	return p.emitScalarReturn(code, fn, params)
}

// attachDocstring assembles the full docstring and splices it into the
// code, before or inside the declaration per the profile.
func (p *Profile) attachDocstring(code string, fn *Function, docParams []Param) string {
	var doc string
	//
	body := fn.Docstring
	if p.EscapeBackslashes {
		body = strings.ReplaceAll(body, `\`, `\\`)
	}
	//
	if !p.LineDocstring {
		doc += p.CommentBlockBegin
	}
	//
	if p.IncludeSignature {
		// Signature without the declaring keyword.
		first, _, _ := strings.Cut(code, "\n")
		if _, sig, ok := strings.Cut(first, " "); ok {
			doc += "\n    " + sig + "\n"
		}
	}
	//
	if p.IncludeName {
		doc += fn.Name + "\n"
	}
	//
	doc += "\nDescription\n-----------\n\n" + body
	doc += "\n\nParameters\n----------\n\n"
	//
	for _, param := range docParams {
		doc += param.Name + " : " + p.kindType(param.Kind) + "\n    "
		doc += param.Description + "\n\n"
	}
	//
	if !p.LineDocstring {
		doc += p.CommentBlockEnd
	}
	//
	paragraph := !p.LineDocstring
	//
	if p.DocstringBefore {
		return p.Justify(doc, paragraph) + "\n" + code + "\n    "
	}
	//
	return code + p.Justify(strings.ReplaceAll(doc, "\n", "\n    "), paragraph) + "\n\n    "
}

// vectorise rewrites every parameter of an expression into a subscript of
// the vector input q.
func (p *Profile) vectorise(value string, params []Param, enabled bool) (string, error) {
	if !enabled {
		return value, nil
	}
	//
	for i, param := range params {
		rewritten, err := expr.ReplaceVar(value, param.Name,
			fmt.Sprintf("q[%d]", i+p.IndexBase))
		if err != nil {
			return "", err
		}
		//
		value = rewritten
	}
	//
	return value, nil
}

func (p *Profile) emitMatrixReturn(code string, fn *Function, params []Param) (string, error) {
	// A fresh local binds the literal, as not every target can return one
	// directly.
	name := "mat"
	for nameInUse(name, fn.Vars, params) {
		name += "0"
	}
	//
	code += p.CommentLine + " Returned Matrix\n" + indent(1)
	code += name + " = " + p.MatrixOpen
	//
	for i, row := range fn.Matrix {
		if i > 0 {
			code += "\n" + indent(1) + strings.Repeat(" ", 3+len(name))
		}
		//
		code += p.RowOpen
		//
		for j, element := range row {
			element, err := p.vectorise(element, params, fn.VectorInput)
			if err != nil {
				return "", err
			}
			//
			converted, err := p.Convert(element)
			if err != nil {
				return "", err
			}
			//
			code += converted
			//
			if j < len(row)-1 {
				code += p.ColSeparator
			} else {
				code += p.RowClose
			}
		}
		//
		if i < len(fn.Matrix)-1 {
			code += p.RowSeparator
		} else {
			code += p.MatrixClose
		}
	}
	//
	code += p.Terminator + "\n\n    " + p.Return + " " + name + p.Terminator
	code += "\n" + p.FuncEnd
	//
	return code, nil
}

func (p *Profile) emitScalarReturn(code string, fn *Function, params []Param) (string, error) {
	value, err := p.vectorise(fn.Scalar, params, fn.VectorInput)
	if err != nil {
		return "", err
	}
	//
	converted, err := p.Convert(value)
	if err != nil {
		return "", err
	}
	//
	return code + p.Return + " " + converted + p.Terminator + "\n" + p.FuncEnd, nil
}

func nameInUse(name string, vars []cse.Variable, params []Param) bool {
	for _, v := range vars {
		if v.Name == name {
			return true
		}
	}
	//
	for _, param := range params {
		if param.Name == name {
			return true
		}
	}
	//
	return false
}

func parseLoopBounds(value string) (int, int, error) {
	lhs, rhs, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed loop bounds %q", value)
	}
	//
	from, err := strconv.Atoi(lhs)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed loop bounds %q", value)
	}
	//
	upto, err := strconv.Atoi(rhs)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed loop bounds %q", value)
	}
	//
	return from, upto, nil
}

// Title renders a section title comment.  Level 0 draws a full-width box,
// level 1 underlines with underscores and level 2 with dots.
func (p *Profile) Title(text string, level int) string {
	lead := p.CommentLine + " "
	if level == 0 && p.TitleLead != "" {
		lead = p.TitleLead
	}
	//
	code := lead
	//
	// Titles built from user-supplied link names can exceed the line
	// width, so every filler count is clamped at zero.
	switch level {
	case 0:
		code += strings.Repeat("-", max(0, p.MaxLineWidth-len(lead)))
		code += "\n" + p.CommentLine + " |"
		//
		gap := max(0, p.MaxLineWidth-3-len(p.CommentLine)-len(text))
		left := gap / 2
		right := gap - left
		//
		code += strings.Repeat(" ", left)
		code += strings.ToUpper(text)
		code += strings.Repeat(" ", right)
		code += "|\n" + p.CommentLine + " "
		code += strings.Repeat("-", max(0, p.MaxLineWidth-2))
	case 1:
		code += text + " "
		code += strings.Repeat("_", max(0, p.MaxLineWidth-len(text)-3))
	default:
		code += text + " "
		code += strings.Repeat(".", max(0, p.MaxLineWidth-len(text)-3))
	}
	//
	return code
}
