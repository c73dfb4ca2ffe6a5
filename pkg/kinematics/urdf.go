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
package kinematics

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// XML layout of a URDF robot description.  Only the elements feeding the
// kinematic model are read; visual and collision elements are ignored.
type urdfRobot struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []urdfLink  `xml:"link"`
	Joints  []urdfJoint `xml:"joint"`
}

type urdfLink struct {
	Name     string        `xml:"name,attr"`
	Inertial *urdfInertial `xml:"inertial"`
}

type urdfInertial struct {
	Origin  *urdfPose    `xml:"origin"`
	Mass    *urdfMass    `xml:"mass"`
	Inertia *urdfInertia `xml:"inertia"`
}

type urdfPose struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type urdfMass struct {
	Value float64 `xml:"value,attr"`
}

type urdfInertia struct {
	Ixx float64 `xml:"ixx,attr"`
	Ixy float64 `xml:"ixy,attr"`
	Ixz float64 `xml:"ixz,attr"`
	Iyy float64 `xml:"iyy,attr"`
	Iyz float64 `xml:"iyz,attr"`
	Izz float64 `xml:"izz,attr"`
}

type urdfJoint struct {
	Name   string    `xml:"name,attr"`
	Type   string    `xml:"type,attr"`
	Origin *urdfPose `xml:"origin"`
	Parent urdfRef   `xml:"parent"`
	Child  urdfRef   `xml:"child"`
	Axis   *urdfAxis `xml:"axis"`
}

type urdfRef struct {
	Link string `xml:"link,attr"`
}

type urdfAxis struct {
	XYZ string `xml:"xyz,attr"`
}

// URDFJoint is a joint read from a URDF description.  Its origin pose is
// numeric whilst its degrees of freedom are symbolic, named after the
// joint.
type URDFJoint struct {
	name      string
	jointType string
	parent    int
	child     int
	originXYZ [3]float64
	originRPY [3]float64
	axis      [3]float64
}

// FromURDF builds a robot from the contents of a URDF file.
func FromURDF(data []byte) (*Robot, error) {
	var doc urdfRobot
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed URDF: %w", err)
	}
	//
	robot := &Robot{Name: doc.Name}
	if robot.Name == "" {
		robot.Name = "no_name"
	}
	//
	linkIndex := make(map[string]int)
	for i, link := range doc.Links {
		if link.Name == "" {
			return nil, fmt.Errorf("link %d has no name", i)
		}
		//
		linkIndex[link.Name] = i
		robot.Links = append(robot.Links, newLink(link))
	}
	//
	for i, joint := range doc.Joints {
		converted, err := newURDFJoint(joint, linkIndex)
		if err != nil {
			return nil, fmt.Errorf("joint %d (%s): %w", i, joint.Name, err)
		}
		//
		robot.Links[converted.parent].Outgoing =
			append(robot.Links[converted.parent].Outgoing, i)
		robot.Links[converted.child].Incoming =
			append(robot.Links[converted.child].Incoming, i)
		//
		robot.Joints = append(robot.Joints, converted)
	}
	//
	if _, err := robot.RootLink(); err != nil {
		return nil, err
	}
	//
	return robot, nil
}

// LoadURDF builds a robot from a URDF file on disk.
func LoadURDF(path string) (*Robot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return FromURDF(data)
}

func newLink(link urdfLink) Link {
	out := Link{Name: link.Name}
	out.Inertia = [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	//
	if link.Inertial == nil {
		return out
	}
	//
	if link.Inertial.Origin != nil {
		if com, err := parseVec3(link.Inertial.Origin.XYZ); err == nil {
			out.CoM = com
		}
	}
	//
	if link.Inertial.Mass != nil {
		out.Mass = link.Inertial.Mass.Value
	}
	//
	if inertia := link.Inertial.Inertia; inertia != nil {
		out.Inertia = [3][3]float64{
			{inertia.Ixx, inertia.Ixy, inertia.Ixz},
			{inertia.Ixy, inertia.Iyy, inertia.Iyz},
			{inertia.Ixz, inertia.Iyz, inertia.Izz},
		}
	}
	//
	return out
}

func newURDFJoint(joint urdfJoint, linkIndex map[string]int) (*URDFJoint, error) {
	switch joint.Type {
	case "revolute", "continuous", "prismatic", "fixed", "floating":
		// supported
	case "planar":
		return nil, fmt.Errorf("planar joints are not supported")
	default:
		return nil, fmt.Errorf("unknown joint type %q", joint.Type)
	}
	//
	if joint.Name == "" {
		return nil, fmt.Errorf("joint has no name")
	}
	//
	parent, ok := linkIndex[joint.Parent.Link]
	if !ok {
		return nil, fmt.Errorf("unknown parent link %q", joint.Parent.Link)
	}
	//
	child, ok := linkIndex[joint.Child.Link]
	if !ok {
		return nil, fmt.Errorf("unknown child link %q", joint.Child.Link)
	}
	//
	out := &URDFJoint{
		name:      joint.Name,
		jointType: joint.Type,
		parent:    parent,
		child:     child,
		axis:      [3]float64{1, 0, 0},
	}
	//
	if joint.Origin != nil {
		var err error
		if joint.Origin.XYZ != "" {
			if out.originXYZ, err = parseVec3(joint.Origin.XYZ); err != nil {
				return nil, err
			}
		}
		//
		if joint.Origin.RPY != "" {
			if out.originRPY, err = parseVec3(joint.Origin.RPY); err != nil {
				return nil, err
			}
		}
	}
	//
	if joint.Axis != nil {
		axis, err := parseVec3(joint.Axis.XYZ)
		if err != nil {
			return nil, err
		}
		//
		norm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
		if norm == 0 {
			return nil, fmt.Errorf("joint axis is null")
		}
		//
		for i := range axis {
			axis[i] /= norm
		}
		//
		out.axis = axis
	}
	//
	return out, nil
}

func parseVec3(text string) ([3]float64, error) {
	var vec [3]float64
	//
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return vec, fmt.Errorf("expected 3 coordinates, got %q", text)
	}
	//
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return vec, fmt.Errorf("coordinate %q is not a number", field)
		}
		//
		vec[i] = value
	}
	//
	return vec, nil
}

func (j *URDFJoint) Name() string { return j.name }

func (j *URDFJoint) Type() string { return j.jointType }

func (j *URDFJoint) Parent() int { return j.parent }

func (j *URDFJoint) Child() int { return j.child }

// Transform composes the fixed origin pose of the joint with its degrees
// of freedom: a Rodrigues rotation around the axis for revolute joints, a
// translation along it for prismatic ones, and the full six-DOF pose for
// floating joints.
func (j *URDFJoint) Transform() Matrix4 {
	T := Identity()
	for i := 0; i < 3; i++ {
		T[i][3] = formatNum(j.originXYZ[i])
	}
	//
	R := numericCells(j.originRotation())
	//
	switch j.jointType {
	case "revolute", "continuous":
		R = mul3(R, rodrigues(j.axis, "theta_"+j.name))
	case "prismatic":
		value := "d_" + j.name
		for i := 0; i < 3; i++ {
			T[i][3] = addTerm(T[i][3], coefTimes(j.axis[i], value))
		}
	case "floating":
		T[0][3] = addTerm(T[0][3], "dx_"+j.name)
		T[1][3] = addTerm(T[1][3], "dy_"+j.name)
		T[2][3] = addTerm(T[2][3], "dz_"+j.name)
		//
		pose := mul3(yawCells("yaw_"+j.name), pitchCells("pitch_"+j.name))
		pose = mul3(pose, rollCells("roll_"+j.name))
		R = mul3(R, pose)
	}
	//
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			T[i][k] = R[i][k]
		}
	}
	//
	return T
}

func (j *URDFJoint) InverseTransform() Matrix4 {
	return j.Transform().RigidInverse()
}

func (j *URDFJoint) Symbols() []Symbol {
	var names []string
	//
	switch j.jointType {
	case "revolute", "continuous":
		names = []string{"theta_" + j.name}
	case "prismatic":
		names = []string{"d_" + j.name}
	case "floating":
		names = []string{
			"dx_" + j.name, "dy_" + j.name, "dz_" + j.name,
			"pitch_" + j.name, "roll_" + j.name, "yaw_" + j.name,
		}
	}
	//
	symbols := make([]Symbol, len(names))
	for i, name := range names {
		symbols[i] = Symbol{Name: name, Description: Describe(name)}
	}
	//
	return symbols
}

// originRotation evaluates the yaw * pitch * roll rotation of the joint
// origin numerically.
func (j *URDFJoint) originRotation() [3][3]float64 {
	roll, pitch, yaw := j.originRPY[0], j.originRPY[1], j.originRPY[2]
	//
	rollM := [3][3]float64{
		{1, 0, 0},
		{0, math.Cos(roll), -math.Sin(roll)},
		{0, math.Sin(roll), math.Cos(roll)},
	}
	pitchM := [3][3]float64{
		{math.Cos(pitch), 0, math.Sin(pitch)},
		{0, 1, 0},
		{-math.Sin(pitch), 0, math.Cos(pitch)},
	}
	yawM := [3][3]float64{
		{math.Cos(yaw), -math.Sin(yaw), 0},
		{math.Sin(yaw), math.Cos(yaw), 0},
		{0, 0, 1},
	}
	//
	return mulNum3(yawM, mulNum3(pitchM, rollM))
}

func mulNum3(a [3][3]float64, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	//
	return out
}

// rodrigues expands the axis-angle rotation formula, with the numeric axis
// folded into per-cell sin and cos coefficients.
func rodrigues(axis [3]float64, angle string) [3][3]string {
	k := [3][3]float64{
		{0, -axis[2], axis[1]},
		{axis[2], 0, -axis[0]},
		{-axis[1], axis[0], 0},
	}
	//
	var k2 [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for l := 0; l < 3; l++ {
				k2[i][j] += k[i][l] * k[l][j]
			}
		}
	}
	//
	var out [3][3]string
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			identity := 0.0
			if i == j {
				identity = 1.0
			}
			// I + sin(a)*K + (1-cos(a))*K^2, grouped by trig term.
			out[i][j] = trigLinear(identity+k2[i][j], k[i][j], -k2[i][j], angle)
		}
	}
	//
	return out
}

func numericCells(m [3][3]float64) [3][3]string {
	var out [3][3]string
	for i := range m {
		for j := range m[i] {
			out[i][j] = formatNum(m[i][j])
		}
	}
	//
	return out
}

func mul3(a [3][3]string, b [3][3]string) [3][3]string {
	var out [3][3]string
	//
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cell := "0"
			for k := 0; k < 3; k++ {
				cell = addTerm(cell, mulTerm(a[i][k], b[k][j]))
			}
			//
			out[i][j] = cell
		}
	}
	//
	return out
}

func rollCells(angle string) [3][3]string {
	c, s := "cos("+angle+")", "sin("+angle+")"
	return [3][3]string{
		{"1", "0", "0"},
		{"0", c, "-" + s},
		{"0", s, c},
	}
}

func pitchCells(angle string) [3][3]string {
	c, s := "cos("+angle+")", "sin("+angle+")"
	return [3][3]string{
		{c, "0", s},
		{"0", "1", "0"},
		{"-" + s, "0", c},
	}
}

func yawCells(angle string) [3][3]string {
	c, s := "cos("+angle+")", "sin("+angle+")"
	return [3][3]string{
		{c, "-" + s, "0"},
		{s, c, "0"},
		{"0", "0", "1"},
	}
}
