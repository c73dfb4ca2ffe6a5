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
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kinforge/kinforge/pkg/cse"
	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

// Request names one forward kinematics or Jacobian function to generate:
// a walk from Origin to Destination, with Content optionally suffixing
// the function name.
type Request struct {
	Origin      string
	Destination string
	Content     string
}

// ForwardKinematics generates the function computing the pose of
// destination in the origin frame.  At level 0 the function chains calls
// to the transition matrix functions; at higher levels the product is
// expanded and emitted directly.
func ForwardKinematics(robot *kinematics.Robot, req Request, level int,
	profile *lang.Profile) (string, error) {
	//
	code := profile.Title("Forward Kinematics from "+req.Origin+" to "+
		req.Destination, 1) + "\n\n"
	//
	originKind, _, err := robot.ParseNode(req.Origin)
	if err != nil {
		return "", err
	}
	//
	destKind, _, err := robot.ParseNode(req.Destination)
	if err != nil {
		return "", err
	}
	//
	originName, _ := robot.NodeName(req.Origin)
	destName, _ := robot.NodeName(req.Destination)
	//
	docstr := fmt.Sprintf("Computes the forward kinematics from the %s %s "+
		"to the %s %s. The result is returned as a 4x4 %s in homogeneous "+
		"coordinates, giving the position and the orientation of %s in "+
		"the %s frame.", originKind, originName, destKind, destName,
		profile.MatrixType, destName, originName)
	//
	fname := "fk_" + originName + "_" + destName
	if req.Content != "" {
		fname += "_" + req.Content
	}
	//
	if level > 0 {
		T, err := robot.ForwardKinematics(req.Origin, req.Destination)
		if err != nil {
			return "", err
		}
		//
		params, err := branchParams(robot, req)
		if err != nil {
			return "", err
		}
		//
		fct, err := FromGrid(profile, fname, T.Cells(), params, docstr, true)
		if err != nil {
			return "", err
		}
		//
		return code + fct, nil
	}
	// Level 0 chains the transition matrix functions.
	steps, err := robot.Branch(req.Origin, req.Destination)
	if err != nil {
		return "", err
	}
	//
	var (
		vars   []cse.Variable
		params []lang.Param
	)
	//
	for _, step := range steps {
		joint := robot.Joints[step.Joint]
		params = append(params, jointParams(joint)...)
		//
		name := matlabPrefix + "T_" + strconv.Itoa(step.Joint)
		if !step.Forward {
			name += "_inv"
		}
		//
		vars = append(vars, cse.Variable{
			Name:  name,
			Value: jointCall(joint, !step.Forward),
			Kind:  "mat",
		})
	}
	//
	if len(vars) == 0 {
		vars = append(vars, cse.Variable{
			Name: "T", Value: "_eye_4_4_", Kind: "mat",
		})
	}
	//
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	//
	fn := &lang.Function{
		Name:        fname,
		Params:      params,
		Docstring:   docstr,
		Vars:        vars,
		Scalar:      strings.Join(names, "@"),
		VectorInput: true,
	}
	//
	fct, err := profile.Func(fn)
	if err != nil {
		return "", err
	}
	//
	return code + fct, nil
}

// AllForwardKinematics generates the forward kinematics section.
func AllForwardKinematics(robot *kinematics.Robot, reqs []Request, level int,
	profile *lang.Profile) (string, error) {
	//
	if len(reqs) == 0 {
		return "", nil
	}
	//
	code := profile.Title("FORWARD KINEMATICS", 0) + "\n\n"
	//
	for i, req := range reqs {
		log.Debugf("generating forward kinematics %d/%d", i+1, len(reqs))
		//
		fct, err := ForwardKinematics(robot, req, level, profile)
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

// branchParams collects the degrees of freedom of every joint on the walk
// from origin to destination, sorted by name.
func branchParams(robot *kinematics.Robot, req Request) ([]lang.Param, error) {
	steps, err := robot.Branch(req.Origin, req.Destination)
	if err != nil {
		return nil, err
	}
	//
	var params []lang.Param
	for _, step := range steps {
		params = append(params, jointParams(robot.Joints[step.Joint])...)
	}
	//
	slices.SortFunc(params, func(a, b lang.Param) int {
		return strings.Compare(a.Name, b.Name)
	})
	//
	return params, nil
}
