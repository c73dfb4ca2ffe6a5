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
	"github.com/kinforge/kinforge/pkg/expr"
	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

// Jacobian generates the function computing the 6xn Jacobian of the
// destination pose in the origin frame, where n is the number of degrees
// of freedom on the walk between them.  Each column is built numerically
// from the transition matrix functions.
func Jacobian(robot *kinematics.Robot, req Request,
	profile *lang.Profile) (string, error) {
	//
	code := profile.Title("Jacobian of the "+req.Destination+
		" position and orientation", 1) + "\n\n"
	//
	steps, err := robot.Branch(req.Origin, req.Destination)
	if err != nil {
		return "", err
	}
	//
	if len(steps) == 0 {
		return "", fmt.Errorf("no joints between %s and %s",
			req.Origin, req.Destination)
	}
	//
	var (
		calls  []string
		params []lang.Param
	)
	//
	for _, step := range steps {
		joint := robot.Joints[step.Joint]
		params = append(params, jointParams(joint)...)
		calls = append(calls, jointCall(joint, !step.Forward))
	}
	//
	nbDof := len(params)
	//
	vars := []cse.Variable{
		{Name: "Jac", Value: "_zeros_6_" + strconv.Itoa(nbDof) + "_", Kind: "mat"},
		{Name: "T", Value: calls[0], Kind: "mat"},
		{Name: "L", Value: "p0-" + profile.SliceMat("T", 0, 2, 3), Kind: "mat"},
		{Name: "Z", Value: profile.SliceMat("T", 0, 2, 2), Kind: "mat"},
		{Name: profile.SliceMat("Jac", 0, 2, 0), Value: "cross(Z,L)"},
		{Name: profile.SliceMat("Jac", 3, 5, 0), Value: "Z"},
	}
	//
	for i := 1; i < len(calls); i++ {
		vars = append(vars,
			cse.Variable{Name: "T", Value: "T@" + calls[i]},
			cse.Variable{Name: "L", Value: "p0-" + profile.SliceMat("T", 0, 2, 3)},
			cse.Variable{Name: "Z", Value: profile.SliceMat("T", 0, 2, 2)},
			cse.Variable{Name: profile.SliceMat("Jac", 0, 2, i), Value: "cross(Z,L)"},
			cse.Variable{Name: profile.SliceMat("Jac", 3, 5, i), Value: "Z"},
		)
	}
	// Degrees of freedom are packed into q up front, since the emitted
	// function takes q and p0 rather than one parameter per symbol.
	if err := substituteQ(vars, params, profile); err != nil {
		return "", err
	}
	//
	originName, _ := robot.NodeName(req.Origin)
	destName, _ := robot.NodeName(req.Destination)
	//
	descrq := fmt.Sprintf("Vector of length %d containing all the degrees "+
		"of freedom of the robot between %s and %s chain. This vector "+
		"contains :", nbDof, originName, destName)
	descrq += qEntries(params, profile.IndexBase)
	//
	parameters := []lang.Param{
		{Name: "q", Kind: "vect", Description: descrq},
		{Name: "p0", Kind: "vect", Description: "Point in the " + originName +
			" frame where you want to compute the Jacobian Matrix. p0 is a " +
			"(3 x 1) vector."},
	}
	//
	docstr := fmt.Sprintf("Computes the Jacobian Matrix of the %s "+
		"coordinates in the %s frame from the point p0. This matrix is "+
		"returned as a (6 x %d) matrix where every column is the derivative "+
		"of the position/orientation with respect to a degree of freedom. \n",
		destName, originName, nbDof)
	//
	for i, axis := range []string{"X position", "Y position", "Z position",
		"the roll orientation", "the pitch orientation",
		"the yaw orientation"} {
		docstr += fmt.Sprintf("    - The line %d is the derivative of %s "+
			"of %s in the %s frame,\n", i+1, axis, destName, originName)
	}
	//
	docstr += "Here is the list of all the derivative variables :"
	docstr += columnEntries(params, profile.IndexBase)
	//
	fname := "jacobian_" + originName + "_to_" + destName
	if req.Content != "" {
		fname += "_" + req.Content
	}
	//
	fn := &lang.Function{
		Name:      fname,
		Params:    parameters,
		Docstring: docstr,
		Vars:      vars,
		Scalar:    "Jac",
	}
	//
	fct, err := profile.Func(fn)
	if err != nil {
		return "", err
	}
	//
	return code + fct, nil
}

// AllJacobians generates the Jacobians section.
func AllJacobians(robot *kinematics.Robot, reqs []Request,
	profile *lang.Profile) (string, error) {
	//
	if len(reqs) == 0 {
		return "", nil
	}
	//
	code := profile.Title("JACOBIANS", 0) + "\n\n"
	//
	for i, req := range reqs {
		log.Debugf("generating jacobian %d/%d", i+1, len(reqs))
		//
		fct, err := Jacobian(robot, req, profile)
		if err != nil {
			return "", err
		}
		//
		code += fct
		if i < len(reqs)-1 {
			code += "\n\n"
		}
	}
	//
	return code, nil
}

// substituteQ rewrites every variable value in terms of the q vector,
// replacing the i-th degree of freedom with its subscript.  Matrix
// literal labels carry no symbols and are left as they are.
func substituteQ(vars []cse.Variable, params []lang.Param,
	profile *lang.Profile) error {
	//
	for i := range vars {
		if len(vars[i].Value) > 0 && vars[i].Value[0] == '#' {
			continue
		}
		//
		for p, param := range params {
			value, err := expr.ReplaceVar(vars[i].Value, param.Name,
				profile.Subscript("q", p))
			if err != nil {
				return err
			}
			//
			vars[i].Value = value
		}
	}
	//
	return nil
}
