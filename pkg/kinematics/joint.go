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

import "strings"

// Symbol is one degree of freedom of a joint, with a docstring description
// derived from its naming convention.
type Symbol struct {
	// Name of the degree of freedom (e.g. "theta_shoulder").
	Name string
	// Description for generated documentation.
	Description string
}

// Joint connects a parent link to a child link through a parameterised
// rigid transformation.
type Joint interface {
	// Name of the joint.
	Name() string
	// Type of the joint (e.g. "revolute", "prismatic", "fixed").
	Type() string
	// Parent link index.
	Parent() int
	// Child link index.
	Child() int
	// Transform from the parent link frame to the child link frame.
	Transform() Matrix4
	// InverseTransform from the child link frame to the parent link frame.
	InverseTransform() Matrix4
	// Symbols lists the degrees of freedom of the joint, sorted by name.
	Symbols() []Symbol
}

// Describe derives the docstring description of a degree of freedom from
// its name prefix.  Unrecognised prefixes yield an empty description.
func Describe(name string) string {
	category, rest, ok := strings.Cut(name, "_")
	if !ok {
		return ""
	}
	//
	switch category {
	case "d":
		return "Translation value (in meters) along the " + rest +
			" prismatic joint axis."
	case "dx":
		return "Translation value (in meters) along the X axis of the " +
			rest + " joint."
	case "dy":
		return "Translation value (in meters) along the Y axis of the " +
			rest + " joint."
	case "dz":
		return "Translation value (in meters) along the Z axis of the " +
			rest + " joint."
	case "theta":
		return "Rotation value (in radians) around the " + rest +
			" joint axis."
	case "roll":
		return "Rotation value (in radians) around the X axis of the " +
			rest + " joint."
	case "pitch":
		return "Rotation value (in radians) around the Y axis of the " +
			rest + " joint."
	case "yaw":
		return "Rotation value (in radians) around the Z axis of the " +
			rest + " joint."
	}
	//
	return ""
}
