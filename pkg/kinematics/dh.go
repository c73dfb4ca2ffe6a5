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
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
)

// Denavit-Hartenberg description of a serial robot.  The transformations
// list picks which of the four parameters drives each elementary motion,
// and in which order the motions compose.
type dhFile struct {
	Name            string   `toml:"name"`
	Transformations []string `toml:"transformations"`
	Rows            []dhRow  `toml:"rows"`
}

// dhRow carries the parameters of one joint.  The d, theta, r and alpha
// fields hold either a decimal constant or the identifier naming a degree
// of freedom.
type dhRow struct {
	Name  string    `toml:"name"`
	D     string    `toml:"d"`
	Theta string    `toml:"theta"`
	R     string    `toml:"r"`
	Alpha string    `toml:"alpha"`
	Com   []float64 `toml:"com"`
	Mass  float64   `toml:"mass"`
	Pmin  *float64  `toml:"pmin"`
	Pmax  *float64  `toml:"pmax"`
	Vmax  *float64  `toml:"vmax"`
	Amax  *float64  `toml:"amax"`
}

// dhTransformations lists the accepted elementary motions.  The part
// before the dots names the motion, the part after names the row
// parameter driving it.
var dhTransformations = []string{
	"TransX..d", "TransX..r", "TransZ..d", "TransZ..r",
	"RotX..theta", "RotX..alpha", "RotZ..theta", "RotZ..alpha",
}

// dhValue is one parameter of a joint, either numeric or symbolic.
type dhValue struct {
	number   float64
	symbol   string
	symbolic bool
}

// DHJoint is a joint built from one row of a Denavit-Hartenberg table.
type DHJoint struct {
	name      string
	jointType string
	parent    int
	child     int
	// Elementary motions in composition order, paired with the row
	// parameter driving each.
	motions []string
	values  map[string]dhValue
	pmin    *float64
	pmax    *float64
}

// FromDH builds a robot from the contents of a TOML Denavit-Hartenberg
// parameter file.  Row i produces joint_<name> between link_i and
// link_i+1, carrying the centre of mass and mass of the child link.
func FromDH(data []byte) (*Robot, error) {
	var file dhFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed parameter file: %w", err)
	}
	//
	if len(file.Transformations) != 4 {
		return nil, fmt.Errorf("expected 4 transformations, got %d",
			len(file.Transformations))
	}
	//
	for _, t := range file.Transformations {
		if !slices.Contains(dhTransformations, t) {
			return nil, fmt.Errorf("unknown transformation %q", t)
		}
	}
	//
	if len(file.Rows) == 0 {
		return nil, fmt.Errorf("parameter file has no rows")
	}
	//
	robot := &Robot{Name: file.Name}
	if robot.Name == "" {
		robot.Name = "no_name"
	}
	// One more link than there are joints, the root being link_0.
	robot.Links = append(robot.Links, Link{Name: "link_0"})
	//
	for i, row := range file.Rows {
		joint, err := newDHJoint(row, file.Transformations, i)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, row.Name, err)
		}
		//
		link := Link{Name: fmt.Sprintf("link_%d", i+1), Mass: row.Mass}
		if len(row.Com) == 3 {
			link.CoM = [3]float64{row.Com[0], row.Com[1], row.Com[2]}
		} else if row.Com != nil {
			return nil, fmt.Errorf("row %d (%s): com must have 3 coordinates",
				i, row.Name)
		}
		//
		robot.Links[i].Outgoing = append(robot.Links[i].Outgoing, i)
		link.Incoming = append(link.Incoming, i)
		//
		robot.Links = append(robot.Links, link)
		robot.Joints = append(robot.Joints, joint)
	}
	//
	return robot, nil
}

// LoadDH builds a robot from a TOML Denavit-Hartenberg file on disk.
func LoadDH(path string) (*Robot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return FromDH(data)
}

func newDHJoint(row dhRow, motions []string, index int) (*DHJoint, error) {
	name := row.Name
	if name == "" {
		name = strconv.Itoa(index)
	} else if !isIdentifier(name) {
		return nil, fmt.Errorf("name %q is not an identifier", name)
	}
	//
	if row.Mass < 0 {
		return nil, fmt.Errorf("mass must be positive or null")
	}
	//
	values := make(map[string]dhValue)
	//
	for param, text := range map[string]string{
		"d": row.D, "theta": row.Theta, "r": row.R, "alpha": row.Alpha,
	} {
		value, err := parseDHValue(text)
		if err != nil {
			return nil, fmt.Errorf("%s %w", param, err)
		}
		//
		values[param] = value
	}
	//
	joint := &DHJoint{
		name:    "joint_" + name,
		parent:  index,
		child:   index + 1,
		motions: motions,
		values:  values,
		pmin:    row.Pmin,
		pmax:    row.Pmax,
	}
	//
	joint.jointType = classifyDH(values, row.Pmin != nil && row.Pmax != nil)
	//
	return joint, nil
}

// classifyDH determines the joint type from which parameters are
// symbolic.  Symbolic angles make the joint revolute when position limits
// bound it and continuous otherwise; symbolic lengths make it prismatic;
// a fully numeric row is a fixed joint.
func classifyDH(values map[string]dhValue, limited bool) string {
	switch {
	case values["theta"].symbolic || values["alpha"].symbolic:
		if limited {
			return "revolute"
		}
		//
		return "continuous"
	case values["d"].symbolic || values["r"].symbolic:
		return "prismatic"
	default:
		return "fixed"
	}
}

func parseDHValue(text string) (dhValue, error) {
	if text == "" {
		return dhValue{}, fmt.Errorf("value is missing")
	}
	//
	if number, err := strconv.ParseFloat(text, 64); err == nil {
		return dhValue{number: number}, nil
	}
	//
	if !isIdentifier(text) {
		return dhValue{}, fmt.Errorf(
			"value %q must be a float or an identifier", text)
	}
	//
	return dhValue{symbol: text, symbolic: true}, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			// always fine
		case unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	//
	return s != ""
}

func (j *DHJoint) Name() string { return j.name }

func (j *DHJoint) Type() string { return j.jointType }

func (j *DHJoint) Parent() int { return j.parent }

func (j *DHJoint) Child() int { return j.child }

// Transform composes the four elementary motions in the declared order.
func (j *DHJoint) Transform() Matrix4 {
	T := Identity()
	//
	for _, motion := range j.motions {
		T = T.Mul(j.motionMatrix(motion))
	}
	//
	return T
}

func (j *DHJoint) InverseTransform() Matrix4 {
	return j.Transform().RigidInverse()
}

// Symbols lists the symbolic parameters of the row, in motion order.
func (j *DHJoint) Symbols() []Symbol {
	var symbols []Symbol
	//
	for _, motion := range j.motions {
		value := j.values[motionParam(motion)]
		if value.symbolic {
			symbols = append(symbols, Symbol{
				Name:        value.symbol,
				Description: Describe(value.symbol),
			})
		}
	}
	//
	return symbols
}

func (j *DHJoint) motionMatrix(motion string) Matrix4 {
	kind, _, _ := strings.Cut(motion, "..")
	value := j.values[motionParam(motion)]
	//
	switch kind {
	case "TransX":
		return translation(0, value)
	case "TransZ":
		return translation(2, value)
	case "RotX":
		return rotation(1, 2, value)
	default: // RotZ
		return rotation(0, 1, value)
	}
}

func motionParam(motion string) string {
	_, param, _ := strings.Cut(motion, "..")
	return param
}

// translation builds a pure translation of value along the given axis.
func translation(axis int, value dhValue) Matrix4 {
	T := Identity()
	//
	if value.symbolic {
		T[axis][3] = value.symbol
	} else {
		T[axis][3] = formatNum(value.number)
	}
	//
	return T
}

// rotation builds a pure rotation in the (a, b) plane, with numeric
// angles folded to their evaluated trigonometric values.
func rotation(a int, b int, value dhValue) Matrix4 {
	var c, s string
	//
	if value.symbolic {
		c = "cos(" + value.symbol + ")"
		s = "sin(" + value.symbol + ")"
	} else {
		c = formatNum(math.Cos(value.number))
		s = formatNum(math.Sin(value.number))
	}
	//
	T := Identity()
	T[a][a], T[a][b] = c, negTerm(s)
	T[b][a], T[b][b] = s, c
	//
	return T
}
