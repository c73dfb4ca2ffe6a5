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
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Operator gives the surface form of one source operator in a target
// language, either as an infix token or as a function call.
type Operator struct {
	// Token is the operator token, function name, or bracket pair for the
	// subscript operator.
	Token string `toml:"token"`
	// IsFunc indicates the operator is written as a function call.
	IsFunc bool `toml:"function"`
}

// Profile declaratively describes a target language, such that emission is
// driven entirely by its fields.  Built-in profiles exist for Python, Julia
// and MATLAB; further profiles load from TOML files.
type Profile struct {
	// Name of the target language.
	Name string `toml:"name"`
	// Extension of generated source files, without the dot.
	Extension string `toml:"extension"`
	// FuncPrefix opens a function declaration, with _fname_ standing for
	// the function name (e.g. "def _fname_(").
	FuncPrefix string `toml:"func_prefix"`
	// FuncSuffix closes a function declaration (e.g. "):").
	FuncSuffix string `toml:"func_suffix"`
	// FuncEnd terminates a function body (e.g. "end").
	FuncEnd string `toml:"func_end"`
	// ParamSeparator separates declared parameters.
	ParamSeparator string `toml:"param_separator"`
	// MaxLineWidth bounds generated comment lines.
	MaxLineWidth int `toml:"max_line_width"`
	// CommentLine opens a single-line comment.
	CommentLine string `toml:"comment_line"`
	// TitleLead opens boxed section titles when it differs from the plain
	// comment lead (e.g. "%% " for MATLAB code sections).
	TitleLead string `toml:"title_lead"`
	// CommentBlockBegin opens a comment block.
	CommentBlockBegin string `toml:"comment_block_begin"`
	// CommentBlockEnd closes a comment block.
	CommentBlockEnd string `toml:"comment_block_end"`
	// IndexBase is the index of the first element of a vector.
	IndexBase int `toml:"index_base"`
	// SliceExclusive marks range subscripts whose upper bound is one past
	// the last selected element.
	SliceExclusive bool `toml:"slice_exclusive"`
	// Terminator ends each statement (e.g. ";").
	Terminator string `toml:"terminator"`
	// Typed languages carry a type before each declaration.
	Typed bool `toml:"typed"`
	// ScalarType declares a scalar variable in a typed language, and
	// documents it otherwise.
	ScalarType string `toml:"scalar_type"`
	// VectorType declares a vector variable.
	VectorType string `toml:"vector_type"`
	// MatrixType declares a matrix variable.
	MatrixType string `toml:"matrix_type"`
	// Operators maps source operators onto their target surface forms.
	Operators map[string]Operator `toml:"operators"`
	// Functions maps the built-in matrix helpers (eye, zeros, cross) onto
	// call templates holding __param1__ and __param2__ placeholders.
	Functions map[string]string `toml:"functions"`
	// DocstringBefore places the docstring above the declaration rather
	// than inside the body.
	DocstringBefore bool `toml:"docstring_before"`
	// LineDocstring comments the docstring line by line instead of as a
	// block.
	LineDocstring bool `toml:"line_docstring"`
	// IncludeSignature repeats the function signature at the top of the
	// docstring.
	IncludeSignature bool `toml:"include_signature"`
	// IncludeName repeats the bare function name at the top of the
	// docstring.
	IncludeName bool `toml:"include_name"`
	// EscapeBackslashes doubles backslashes inside docstrings.
	EscapeBackslashes bool `toml:"escape_backslashes"`
	// MatrixOpen starts a matrix literal.
	MatrixOpen string `toml:"matrix_open"`
	// MatrixClose ends a matrix literal.
	MatrixClose string `toml:"matrix_close"`
	// RowOpen starts each matrix row.
	RowOpen string `toml:"row_open"`
	// RowClose ends each matrix row.
	RowClose string `toml:"row_close"`
	// ColSeparator separates elements within a row.
	ColSeparator string `toml:"col_separator"`
	// RowSeparator separates matrix rows.
	RowSeparator string `toml:"row_separator"`
	// Header is prepended once to each generated file, holding imports.
	Header string `toml:"header"`
	// Return opens a return statement (e.g. "return", "return_value =").
	Return string `toml:"return"`
	// LoopFormat formats a counted for loop over index i, taking the first
	// and one-past-last iteration values.
	LoopFormat string `toml:"loop_format"`
	// LoopStartOffset shifts the first iteration value, for languages with
	// inclusive one-based ranges.
	LoopStartOffset int `toml:"loop_start_offset"`
	// EndLoop terminates a loop body (e.g. "end").
	EndLoop string `toml:"end_loop"`
}

// Python returns the profile generating numpy-backed Python source.
func Python() *Profile {
	return &Profile{
		Name:           "python",
		Extension:      "py",
		FuncPrefix:     "def _fname_(",
		FuncSuffix:     "):",
		FuncEnd:        "",
		ParamSeparator: ",",
		MaxLineWidth:   79,
		CommentLine:    "#",
		//
		CommentBlockBegin: "\"\"\"",
		CommentBlockEnd:   "\"\"\"",
		IndexBase:         0,
		SliceExclusive:    true,
		Terminator:        "",
		ScalarType:        "float",
		VectorType:        "numpy.ndarray",
		MatrixType:        "numpy.ndarray",
		Operators: map[string]Operator{
			"**": {"**", false},
			"*":  {"*", false},
			"@":  {"dot", true},
			"/":  {"/", false},
			"+":  {"+", false},
			"-":  {"-", false},
			"[]": {"[]", true},
		},
		Functions: map[string]string{
			"eye":   "eye(__param1__,__param2__)",
			"zeros": "zeros((__param1__, __param2__))",
			"cross": "cross(__param1__,__param2__)",
		},
		MatrixOpen:   "array([",
		MatrixClose:  "])",
		RowOpen:      "[",
		RowClose:     "]",
		ColSeparator: ",",
		RowSeparator: ",",
		Header: "from math import cos, sin\n" +
			"from numpy import array, cross, dot, zeros, eye\n",
		Return:     "return",
		LoopFormat: "for i in range(%d, %d):",
	}
}

// Julia returns the profile generating LinearAlgebra-backed Julia source.
func Julia() *Profile {
	return &Profile{
		Name:           "julia",
		Extension:      "jl",
		FuncPrefix:     "function _fname_(",
		FuncSuffix:     ")",
		FuncEnd:        "end",
		ParamSeparator: ",",
		MaxLineWidth:   92,
		CommentLine:    "#",
		//
		CommentBlockBegin: "\"\"\"",
		CommentBlockEnd:   "\"\"\"",
		IndexBase:         1,
		Terminator:        "",
		ScalarType:        "Float64",
		VectorType:        "Vector",
		MatrixType:        "Matrix",
		Operators: map[string]Operator{
			"**": {"^", false},
			"*":  {"*", false},
			"@":  {"*", false},
			"/":  {"/", false},
			"+":  {"+", false},
			"-":  {"-", false},
			"[]": {"[]", true},
		},
		Functions: map[string]string{
			"eye":   "Matrix(I,__param1__,__param2__)",
			"zeros": "zeros(__param1__,__param2__)",
			"cross": "cross(__param1__,__param2__)",
		},
		DocstringBefore:   true,
		IncludeSignature:  true,
		EscapeBackslashes: true,
		MatrixOpen:        "vcat(",
		MatrixClose:       ")",
		RowOpen:           "[",
		RowClose:          "]",
		ColSeparator:      " ",
		RowSeparator:      ",",
		Header:            "using LinearAlgebra\n",
		Return:            "return",
		LoopFormat:        "for i=%d:%d",
		LoopStartOffset:   1,
		EndLoop:           "end",
	}
}

// Matlab returns the profile generating MATLAB source.  Element-wise
// operator forms are used throughout, hence the matrix product maps onto
// the plain product.
func Matlab() *Profile {
	return &Profile{
		Name:           "matlab",
		Extension:      "m",
		FuncPrefix:     "function return_value = _fname_(",
		FuncSuffix:     ")",
		FuncEnd:        "end",
		ParamSeparator: ",",
		MaxLineWidth:   75,
		CommentLine:    "%",
		TitleLead:      "%% ",
		//
		CommentBlockBegin: "%{\n",
		CommentBlockEnd:   "\n%}",
		IndexBase:         1,
		Terminator:        ";",
		ScalarType:        "double",
		VectorType:        "double",
		MatrixType:        "double",
		Operators: map[string]Operator{
			"**": {".^", false},
			"*":  {".*", false},
			"@":  {"*", false},
			"/":  {"./", false},
			"+":  {"+", false},
			"-":  {"-", false},
			"[]": {"()", true},
		},
		Functions: map[string]string{
			"eye":   "eye(__param1__,__param2__)",
			"zeros": "zeros(__param1__,__param2__)",
			"cross": "cross(__param1__,__param2__)",
		},
		LineDocstring:    true,
		IncludeSignature: true,
		IncludeName:      true,
		MatrixOpen:       "[",
		MatrixClose:      "]",
		RowOpen:          "",
		RowClose:         "",
		ColSeparator:     ",",
		RowSeparator:     ";",
		Header:           "",
		Return:           "return_value =",
		LoopFormat:       "for i=%d:%d",
		LoopStartOffset:  1,
		EndLoop:          "end",
	}
}

// Load returns the built-in profile of the given language, matched case
// insensitively.
func Load(name string) (*Profile, error) {
	switch strings.ToLower(name) {
	case "python":
		return Python(), nil
	case "julia":
		return Julia(), nil
	case "matlab":
		return Matlab(), nil
	}
	//
	return nil, fmt.Errorf("unknown language profile %q", name)
}

// LoadFile reads a custom profile from a TOML file.
func LoadFile(path string) (*Profile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	var profile Profile
	if err := toml.Unmarshal(bytes, &profile); err != nil {
		return nil, fmt.Errorf("malformed profile %s: %w", path, err)
	}
	//
	if err := profile.validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	//
	return &profile, nil
}

func (p *Profile) validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("missing profile name")
	case p.Extension == "":
		return fmt.Errorf("missing file extension")
	case p.MaxLineWidth <= 0:
		return fmt.Errorf("non-positive line width")
	case len(p.Operators) == 0:
		return fmt.Errorf("no operator mapping")
	}
	//
	return nil
}

// kindType maps a variable kind onto its declared (or documented) type.
func (p *Profile) kindType(kind string) string {
	switch kind {
	case "double":
		return p.ScalarType
	case "vect":
		return p.VectorType
	case "mat":
		return p.MatrixType
	}
	//
	return ""
}

// ForLoop emits a loop header iterating i from a given value up to, but
// excluding, another.
func (p *Profile) ForLoop(from int, upto int) string {
	return fmt.Sprintf(p.LoopFormat, from+p.LoopStartOffset, upto)
}
