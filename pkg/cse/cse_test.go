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
package cse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_00(t *testing.T) {
	// No redundancy, nothing extracted.
	vars, out, err := Optimize("a+b*c", false)
	require.NoError(t, err)
	assert.Empty(t, vars)
	assert.Equal(t, "a+b*c", out)
}

func TestOptimize_01(t *testing.T) {
	vars, out, err := Optimize("cos(x-y)+sin(x-y)*cos(x-y)", false)
	require.NoError(t, err)
	//
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{"v_sub", "x-y", KindScalar}, vars[0])
	assert.Equal(t, Variable{"v_cos", "cos(v_sub)", KindScalar}, vars[1])
	assert.Equal(t, "v_cos+sin(v_sub)*v_cos", out)
}

func TestOptimize_02(t *testing.T) {
	// Innermost redundancies are extracted before enclosing ones.
	vars, out, err := Optimize("sin(a*b)+sin(a*b)", false)
	require.NoError(t, err)
	//
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{"v_prod", "a*b", KindScalar}, vars[0])
	assert.Equal(t, Variable{"v_sin", "sin(v_prod)", KindScalar}, vars[1])
	assert.Equal(t, "v_sin+v_sin", out)
}

func TestOptimize_03(t *testing.T) {
	// Commutative rearrangements are not recognised.
	vars, out, err := Optimize("a*b+b*a", false)
	require.NoError(t, err)
	assert.Empty(t, vars)
	assert.Equal(t, "a*b+b*a", out)
}

func TestOptimize_04(t *testing.T) {
	// Subscripts participate even without list extraction.
	vars, out, err := Optimize("cos(q[0])+sin(q[0])", false)
	require.NoError(t, err)
	//
	require.Len(t, vars, 1)
	assert.Equal(t, Variable{"v_q", "q[0]", KindScalar}, vars[0])
	assert.Equal(t, "cos(v_q)+sin(v_q)", out)
}

func TestOptimize_05(t *testing.T) {
	// List literals are only extracted on request.
	vars, _, err := Optimize("dot([a,b],[a,b])", false)
	require.NoError(t, err)
	assert.Empty(t, vars)
	//
	vars, out, err := Optimize("dot([a,b],[a,b])", true)
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, Variable{"v_vect", "[a,b]", KindVector}, vars[0])
	assert.Equal(t, "dot(v_vect,v_vect)", out)
}

func TestOptimize_06(t *testing.T) {
	// Name collisions pick up a counter suffix.
	vars, _, err := Optimize("cos(a-b)+cos(a-b)+sin(c-d)+sin(c-d)", false)
	require.NoError(t, err)
	//
	var names []string
	for _, v := range vars {
		names = append(names, v.Name)
	}
	//
	assert.Contains(t, names, "v_sub")
	assert.Contains(t, names, "v_sub_0")
}

func TestOptimize_07(t *testing.T) {
	// Optimisation is idempotent.
	vars, out, err := Optimize("cos(x-y)+sin(x-y)", false)
	require.NoError(t, err)
	require.Len(t, vars, 1)
	//
	again, out2, err := Optimize(out, false)
	require.NoError(t, err)
	assert.Empty(t, again)
	assert.Equal(t, out, out2)
}

func TestOptimize_08(t *testing.T) {
	// Bare atoms pass through untouched.
	vars, out, err := Optimize("a", false)
	require.NoError(t, err)
	assert.Empty(t, vars)
	assert.Equal(t, "a", out)
}

func TestOptimize_09(t *testing.T) {
	// A symbol of the input spelled like a generated name forces the
	// suffixed form, leaving the symbol untouched.
	vars, out, err := Optimize("(a-b)*v_sub+(a-b)*x", false)
	require.NoError(t, err)
	//
	require.Len(t, vars, 1)
	assert.Equal(t, Variable{"v_sub_0", "a-b", KindScalar}, vars[0])
	assert.Equal(t, "v_sub_0*v_sub+v_sub_0*x", out)
}

func TestOptimize_10(t *testing.T) {
	// Names generated in later passes dodge input symbols too.
	vars, out, err := Optimize("v_cos*cos(t-s)+cos(t-s)", false)
	require.NoError(t, err)
	//
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{"v_sub", "t-s", KindScalar}, vars[0])
	assert.Equal(t, Variable{"v_cos_0", "cos(v_sub)", KindScalar}, vars[1])
	assert.Equal(t, "v_cos*v_cos_0+v_cos_0", out)
}

func TestOptimize_11(t *testing.T) {
	// Callee names count as taken symbols.
	vars, out, err := Optimize("v_exp(q)+(a**b)*(a**b)", false)
	require.NoError(t, err)
	//
	require.Len(t, vars, 1)
	assert.Equal(t, Variable{"v_exp_0", "a**b", KindScalar}, vars[0])
	assert.Equal(t, "v_exp(q)+v_exp_0*v_exp_0", out)
}

func TestOptimizeGrid_00(t *testing.T) {
	cells := [][]string{
		{"cos(t)", "-sin(t)"},
		{"sin(t)", "cos(t)"},
	}
	//
	vars, grid, err := OptimizeGrid(cells)
	require.NoError(t, err)
	//
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{"v_cos", "cos(t)", KindScalar}, vars[0])
	assert.Equal(t, Variable{"v_sin", "sin(t)", KindScalar}, vars[1])
	//
	expected := [][]string{
		{"v_cos", "-v_sin"},
		{"v_sin", "v_cos"},
	}
	assert.Equal(t, expected, grid)
}

func TestOptimizeGrid_01(t *testing.T) {
	// Cells with top-level commas of their own survive the round trip.
	cells := [][]string{
		{"atan2(y,x)", "1"},
	}
	//
	vars, grid, err := OptimizeGrid(cells)
	require.NoError(t, err)
	assert.Empty(t, vars)
	assert.Equal(t, cells, grid)
}

func TestOptimizeGrid_02(t *testing.T) {
	_, _, err := OptimizeGrid(nil)
	assert.Error(t, err)
}
