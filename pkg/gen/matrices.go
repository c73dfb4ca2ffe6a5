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
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/kinforge/kinforge/pkg/cse"
	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

// FromGrid generates a function returning the given matrix, with common
// subexpressions hoisted into intermediate variables.
func FromGrid(profile *lang.Profile, fname string, cells [][]string,
	params []lang.Param, docstring string, vectorInput bool) (string, error) {
	//
	vars, grid, err := cse.OptimizeGrid(cells)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fname, err)
	}
	//
	fn := &lang.Function{
		Name:        fname,
		Params:      params,
		Docstring:   docstring,
		Vars:        vars,
		Matrix:      grid,
		VectorInput: vectorInput,
	}
	//
	return profile.Func(fn)
}

// joints resolves a list of "joint_<i>" selectors.
func joints(robot *kinematics.Robot, nodes []string) ([]int, error) {
	var indices []int
	//
	for _, node := range nodes {
		kind, index, err := robot.ParseNode(node)
		if err != nil {
			return nil, err
		} else if kind != "joint" {
			return nil, fmt.Errorf("%s is not a joint", node)
		}
		//
		indices = append(indices, index)
	}
	//
	return indices, nil
}

// TransitionMatrices generates one function per requested joint, forward
// ones computing the parent to child transformation and backward ones its
// inverse.
func TransitionMatrices(robot *kinematics.Robot, forward []string,
	backward []string, profile *lang.Profile) (string, error) {
	//
	var code string
	//
	fwd, err := joints(robot, forward)
	if err != nil {
		return "", err
	}
	//
	bwd, err := joints(robot, backward)
	if err != nil {
		return "", err
	}
	//
	if len(fwd) > 0 {
		code += profile.Title("FORWARD TRANSITION MATRICES", 0) + "\n\n"
	}
	//
	for k, index := range fwd {
		log.Debugf("generating forward transition matrix %d/%d", k+1, len(fwd))
		//
		joint := robot.Joints[index]
		T := joint.Transform()
		//
		code += profile.Title("Joint "+strconv.Itoa(index), 1) + "\n\n"
		//
		docstr := "Transition Matrix to go from link " +
			robot.Links[joint.Parent()].Name + " to link " +
			robot.Links[joint.Child()].Name + ".\nThis joint is " +
			joint.Type() + ". The matrix is :\n\n" + prettyMatrix(T)
		//
		fct, err := FromGrid(profile, "T_"+joint.Name(), T.Cells(),
			jointParams(joint), docstr, false)
		if err != nil {
			return "", err
		}
		//
		code += fct + "\n\n"
	}
	//
	if len(bwd) > 0 {
		code += profile.Title("BACKWARD TRANSITION MATRICES", 0) + "\n\n"
	}
	//
	for k, index := range bwd {
		log.Debugf("generating backward transition matrix %d/%d", k+1, len(bwd))
		//
		joint := robot.Joints[index]
		T := joint.InverseTransform()
		//
		code += profile.Title("Joint "+strconv.Itoa(index)+" Inverse", 1) +
			"\n\n"
		//
		docstr := "Transition Matrix to go from link " +
			robot.Links[joint.Child()].Name + " to link " +
			robot.Links[joint.Parent()].Name + ".\nThis joint is " +
			joint.Type() + ". The matrix is :\n\n" + prettyMatrix(T) + "\n"
		//
		fct, err := FromGrid(profile, "T_"+joint.Name()+"_inv", T.Cells(),
			jointParams(joint), docstr, false)
		if err != nil {
			return "", err
		}
		//
		code += fct
		if k < len(bwd)-1 {
			code += "\n\n"
		}
	}
	//
	return code, nil
}
