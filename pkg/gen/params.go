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
package gen

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

// matlabPrefix marks call sites of generated transition matrix functions.
// MATLAB methods are called through their classdef, so the final assembly
// replaces the marker with "<classname>." there and drops it everywhere
// else.
const matlabPrefix = "MATLAB_PREFIX"

// jointParams converts the degrees of freedom of a joint into function
// parameters, sorted by name.
func jointParams(joint kinematics.Joint) []lang.Param {
	var params []lang.Param
	//
	for _, symbol := range joint.Symbols() {
		params = append(params, lang.Param{
			Name:        symbol.Name,
			Kind:        "double",
			Description: symbol.Description,
		})
	}
	//
	slices.SortFunc(params, func(a, b lang.Param) int {
		return strings.Compare(a.Name, b.Name)
	})
	//
	return params
}

// jointCall renders a call to the transition matrix function of a joint,
// passing its degrees of freedom in sorted order.
func jointCall(joint kinematics.Joint, inverse bool) string {
	call := matlabPrefix + "T_" + joint.Name()
	if inverse {
		call += "_inv"
	}
	//
	call += "("
	//
	for i, param := range jointParams(joint) {
		if i > 0 {
			call += ","
		}
		//
		call += param.Name
	}
	//
	return call + ")"
}

// qEntries documents the degrees of freedom packed into the q vector, one
// indented bullet per entry.
func qEntries(params []lang.Param, base int) string {
	var out string
	//
	for i, param := range params {
		out += "\n        - q[" + strconv.Itoa(i+base) + "] = " + param.Name
		if param.Description != "" {
			out += " :\n              " + param.Description
		}
	}
	//
	return out
}

// columnEntries documents the derivative variable of each Jacobian column.
func columnEntries(params []lang.Param, base int) string {
	var out string
	//
	for i, param := range params {
		out += "\n    - Column " + strconv.Itoa(i+base) + " : " + param.Name
	}
	//
	return out
}
