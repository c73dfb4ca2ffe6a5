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

// Link is a rigid body of the robot.  Outgoing holds the indices of joints
// whose parent this link is, Incoming the indices of joints whose child it
// is.
type Link struct {
	Name string
	// Centre of mass in the link frame.
	CoM [3]float64
	// Mass in kilogrammes.
	Mass float64
	// Inertia tensor about the centre of mass.
	Inertia [3][3]float64
	// Joints attached below this link.
	Outgoing []int
	// Joints attaching this link to its parents.
	Incoming []int
}

// IsRoot holds for the link no joint leads to.
func (l *Link) IsRoot() bool {
	return len(l.Incoming) == 0
}

// IsTerminal holds for links without children.
func (l *Link) IsTerminal() bool {
	return len(l.Outgoing) == 0
}
