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
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kinforge/kinforge/pkg/cse"
	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

// comWalk accumulates the variables of a centre of mass computation while
// walking the robot tree in pre-order.  T tracks the transformation from
// the root to the current node, and the transformation reaching each
// branching link is saved into its own variable so sibling subtrees can
// restart from it.
type comWalk struct {
	robot  *kinematics.Robot
	vars   []cse.Variable
	params []lang.Param
	saved  []int
	// lastU is the variable count after the last link contribution.
	// Trailing joint transformations feed no link and are dropped.
	lastU int
}

func (w *comWalk) visitJoint(index int) {
	joint := w.robot.Joints[index]
	w.params = append(w.params, jointParams(joint)...)
	//
	call := jointCall(joint, false)
	//
	child := w.robot.Links[joint.Child()]
	parent := w.robot.Links[joint.Parent()]
	//
	switch {
	case len(child.Outgoing) > 1:
		// Branching point: save the transformation reaching it.
		name := matlabPrefix + "T_" + strconv.Itoa(index)
		w.vars = append(w.vars,
			cse.Variable{Name: name, Value: "T@" + call, Kind: "mat"},
			cse.Variable{Name: "T", Value: name},
		)
		w.saved = append(w.saved, index)
	case w.savedIncoming(parent):
		name := matlabPrefix + "T_" + strconv.Itoa(parent.Incoming[0])
		w.vars = append(w.vars,
			cse.Variable{Name: "T", Value: name + "@" + call})
	default:
		w.vars = append(w.vars,
			cse.Variable{Name: "T", Value: "T@" + call})
	}
}

// savedIncoming holds when the transformation reaching the link was saved
// at a branching point.
func (w *comWalk) savedIncoming(link kinematics.Link) bool {
	for _, saved := range w.saved {
		for _, in := range link.Incoming {
			if saved == in {
				return true
			}
		}
	}
	//
	return false
}

// comPosition emits the homogeneous centre of mass of a link and its
// weighted contribution, returning the name of the contribution variable.
func (w *comWalk) comPosition(index int, name string, relMass float64) {
	link := w.robot.Links[index]
	//
	label := fmt.Sprintf("#mat#4#1#%s#%s#%s#1.0#",
		formatFloat(link.CoM[0]), formatFloat(link.CoM[1]),
		formatFloat(link.CoM[2]))
	//
	xyz := fmt.Sprintf("com_%d_xyz", index)
	//
	w.vars = append(w.vars,
		cse.Variable{Name: xyz, Value: label, Kind: "vect"},
		cse.Variable{
			Name:  name,
			Value: formatFloat(relMass) + "*T@" + xyz,
			Kind:  "vect",
		})
}

// pruneT drops transformation updates that are overwritten before any
// link uses them.  When the dropped variable is the initial identity, the
// overwriting value loses its redundant "T@" factor and becomes the
// declaration.
func (w *comWalk) pruneT() {
	var (
		drop  []int
		lastT = -1
		count int
	)
	//
	for i := range w.vars {
		if w.vars[i].Name != "T" {
			continue
		}
		//
		count++
		//
		if lastT == i-1 && !strings.HasPrefix(w.vars[i].Value, "T@") {
			drop = append(drop, lastT)
		} else if lastT == i-1 && count == 2 {
			drop = append(drop, lastT)
			w.vars[i].Value = strings.TrimPrefix(w.vars[i].Value, "T@")
			w.vars[i].Kind = "mat"
		}
		//
		lastT = i
	}
	//
	w.vars = w.vars[:w.lastU]
	//
	for k := len(drop) - 1; k >= 0; k-- {
		if drop[k] < len(w.vars) {
			w.vars = append(w.vars[:drop[k]], w.vars[drop[k]+1:]...)
		}
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CenterOfMass generates the function computing the centre of mass of the
// whole robot in the root link frame, in homogeneous coordinates.
func CenterOfMass(robot *kinematics.Robot,
	profile *lang.Profile) (string, error) {
	//
	log.Debug("generating center of mass")
	//
	mass := robot.TotalMass()
	if mass == 0 {
		return profile.CommentLine + " Center of mass function can not be " +
			"generated because the robot mass is null.", nil
	}
	//
	code := profile.Title("Center of Mass of the Robot", 0) + "\n\n"
	//
	nodes, err := robot.PreOrder()
	if err != nil {
		return "", err
	}
	//
	walk := &comWalk{robot: robot}
	walk.vars = append(walk.vars,
		cse.Variable{Name: "T", Value: "_eye_4_4_", Kind: "mat"})
	//
	var expression string
	//
	for _, node := range nodes {
		kind, index, err := robot.ParseNode(node)
		if err != nil {
			return "", err
		}
		//
		if kind == "joint" {
			walk.visitJoint(index)
			continue
		}
		//
		relMass := robot.Links[index].Mass / mass
		if relMass == 0 {
			continue
		}
		//
		name := fmt.Sprintf("com_%d", index)
		walk.comPosition(index, name, relMass)
		expression += "+" + name
		walk.lastU = len(walk.vars)
	}
	//
	walk.pruneT()
	//
	if err := substituteQ(walk.vars, walk.params, profile); err != nil {
		return "", err
	}
	//
	descrq := fmt.Sprintf("Vector of length %d containing all the degrees "+
		"of freedom of the robot that have an effect on the center of mass "+
		"position. This vector contains:", len(walk.params))
	descrq += qEntries(walk.params, profile.IndexBase)
	//
	docstr := "Returns the center of mass of the robot in the root link " +
		"frame. The center of mass of the whole structure is computed. The " +
		"result is returned as a (4 x 1) " + profile.MatrixType + " in " +
		"homogeneous coordinates. The first three coordinates represent " +
		"the X, Y and Z positions of the CoM and the 4th coordinate is " +
		"always equal to 1."
	//
	fn := &lang.Function{
		Name:      "com",
		Params:    []lang.Param{{Name: "q", Kind: "vect", Description: descrq}},
		Docstring: docstr,
		Vars:      walk.vars,
		Scalar:    strings.TrimPrefix(expression, "+"),
	}
	//
	fct, err := profile.Func(fn)
	if err != nil {
		return "", err
	}
	//
	return code + fct, nil
}

// CoMJacobian generates the function computing the 3xn Jacobian of the
// centre of mass, one column per massive link.
func CoMJacobian(robot *kinematics.Robot,
	profile *lang.Profile) (string, error) {
	//
	log.Debug("generating center of mass jacobian")
	//
	var (
		mass  float64
		nbDof int
	)
	//
	for i := range robot.Links {
		if robot.Links[i].Mass != 0 {
			mass += robot.Links[i].Mass
			nbDof++
		}
	}
	//
	if mass == 0 {
		return profile.CommentLine + " Center of mass jacobian function " +
			"can not be generated because the robot mass is null.", nil
	}
	//
	code := profile.Title("Jacobian of the Center of Mass of the Robot", 0) +
		"\n\n"
	//
	nodes, err := robot.PreOrder()
	if err != nil {
		return "", err
	}
	//
	walk := &comWalk{robot: robot}
	walk.vars = append(walk.vars,
		cse.Variable{
			Name: "Jac", Value: "_zeros_3_" + strconv.Itoa(nbDof) + "_",
			Kind: "mat",
		},
		cse.Variable{Name: "T", Value: "_eye_4_4_", Kind: "mat"})
	//
	var (
		lDeclared bool
		zDeclared bool
		iJac      int
	)
	//
	for _, node := range nodes {
		kind, index, err := robot.ParseNode(node)
		if err != nil {
			return "", err
		}
		//
		if kind == "joint" {
			walk.visitJoint(index)
			continue
		}
		//
		relMass := robot.Links[index].Mass / mass
		if relMass == 0 {
			continue
		}
		//
		walk.comPosition(index, "com", relMass)
		//
		lKind, zKind := "", ""
		if !lDeclared {
			lKind = "vect"
			lDeclared = true
		}
		//
		if !zDeclared {
			zKind = "vect"
			zDeclared = true
		}
		//
		walk.vars = append(walk.vars,
			cse.Variable{
				Name: "L",
				Value: profile.SliceVec("com0", 0, 2) + "-" +
					profile.SliceVec("com", 0, 2),
				Kind: lKind,
			},
			cse.Variable{
				Name:  "Z",
				Value: profile.SliceMat("T", 0, 2, 2),
				Kind:  zKind,
			},
			cse.Variable{
				Name:  profile.SliceMat("Jac", 0, 2, iJac),
				Value: "cross(Z,L)",
			})
		//
		walk.lastU = len(walk.vars)
		iJac++
	}
	//
	walk.pruneT()
	//
	if err := substituteQ(walk.vars, walk.params, profile); err != nil {
		return "", err
	}
	//
	descrq := "Vector of all the degrees of freedom of the robot that " +
		"have an effect on the center of mass position. This vector " +
		"contains : "
	descrq += qEntries(walk.params, profile.IndexBase)
	//
	parameters := []lang.Param{
		{Name: "q", Kind: "vect", Description: descrq},
		{Name: "com0", Kind: "vect", Description: "Point from which you " +
			"want to compute the Jacobian of the center of Mass. This " +
			"point is expressed in homogeneous coordinates as a (4 x 1) " +
			profile.VectorType + ". The first three coordinates represent " +
			"the X, Y and Z positions of the CoM and the 4th coordinate " +
			"must always be equal to 1"},
	}
	//
	docstr := fmt.Sprintf("Returns the Jacobian of the center of mass of "+
		"the robot. This matrix is returned as a (3 x %d) matrix where "+
		"every column is the derivative of the position of the CoM (X, Y "+
		"and Z) with respect to a degree of freedom. The result is "+
		"expressed in the root link frame.\n", nbDof)
	docstr += "    - The line 1 is the derivative of X position of the " +
		"center of mass in the world frame,\n"
	docstr += "    - The line 2 is the derivative of Y position of the " +
		"center of mass in the world frame,\n"
	docstr += "    - The line 3 is the derivative of Z position of the " +
		"center of mass in the world frame\n"
	docstr += "Here is the list of all the derivative variables :"
	docstr += columnEntries(walk.params, profile.IndexBase)
	//
	fn := &lang.Function{
		Name:      "jacobian_com",
		Params:    parameters,
		Docstring: docstr,
		Vars:      walk.vars,
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
