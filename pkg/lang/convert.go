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
	"regexp"
	"strconv"
	"strings"

	"github.com/kinforge/kinforge/pkg/expr"
)

// sciNumber matches numbers written in scientific notation.  These must be
// folded into plain decimals before the expression scanner runs, as the
// exponent sign would otherwise read as an operator.
var sciNumber = regexp.MustCompile(`-?[0-9.]+e[+\-]?[0-9]+`)

// fctTemplate matches helper placeholders of the form _name_rows_cols_,
// standing for eye, zeros and cross calls of the given dimensions.
var fctTemplate = regexp.MustCompile(`(^|\W)_([a-z]+)_([0-9]+)_([0-9]+)_($|\W)`)

// matLabel matches embedded matrix labels #mat#rows#cols#elem#...#.
var matLabel = regexp.MustCompile(`#mat#(?:[^#]+#)+`)

// Convert rewrites a canonical expression into the target language:
// scientific notation is folded, operators and subscripts take their
// profile surface forms, helper placeholders expand to their call
// templates, and matrix labels become matrix literals.
func (p *Profile) Convert(expression string) (string, error) {
	expression = foldScientific(expression)
	// Matrix labels expand into literals whose delimiters the scanner does
	// not accept, so they are held aside as placeholder atoms whilst
	// operators are retargeted.
	var (
		literals []string
		convErr  error
	)
	//
	expression = matLabel.ReplaceAllStringFunc(expression, func(label string) string {
		literal, err := p.MatrixFromLabel(label)
		if err != nil {
			convErr = err
			return label
		}
		//
		literals = append(literals, literal)
		//
		return fmt.Sprintf("__matlit_%d__", len(literals)-1)
	})
	//
	if convErr != nil {
		return "", convErr
	}
	//
	var rules []expr.Rule
	for op, target := range p.Operators {
		rules = append(rules, expr.Rule{
			From: op, FromFunc: false,
			To: target.Token, ToFunc: target.IsFunc,
		})
	}
	//
	expression, err := expr.ReplaceOps(expression, rules)
	if err != nil {
		return "", err
	}
	// Templates expand last: their output is already in the target dialect
	// and must not be retargeted again.
	expression = p.expandTemplates(expression)
	//
	for i, literal := range literals {
		expression = strings.Replace(expression, fmt.Sprintf("__matlit_%d__", i), literal, 1)
	}
	//
	return expression, nil
}

// expandTemplates replaces helper placeholders with the profile's call
// templates, substituting the encoded dimensions.
func (p *Profile) expandTemplates(expression string) string {
	return fctTemplate.ReplaceAllStringFunc(expression, func(match string) string {
		groups := fctTemplate.FindStringSubmatch(match)
		template, ok := p.Functions[groups[2]]
		//
		if !ok {
			return match
		}
		//
		call := strings.ReplaceAll(template, "__param1__", groups[3])
		call = strings.ReplaceAll(call, "__param2__", groups[4])
		//
		return groups[1] + call + groups[5]
	})
}

// foldScientific rewrites every scientific-notation number into its plain
// decimal form, keeping enough digits to preserve the value.
func foldScientific(expression string) string {
	return sciNumber.ReplaceAllStringFunc(expression, sciToDecimal)
}

func sciToDecimal(number string) string {
	e := strings.Index(number, "e")
	if e < 0 {
		return number
	}
	//
	exponent, err := strconv.Atoi(number[e+1:])
	if err != nil {
		return number
	}
	// Digits after the decimal point once the exponent is applied.
	decimals := e
	if point := strings.Index(number, "."); point >= 0 {
		decimals = e - point
	}
	//
	decimals -= exponent
	//
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return number
	}
	//
	return fmt.Sprintf("%.*f", max(decimals-1, 1), value)
}
