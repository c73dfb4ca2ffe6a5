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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A four link robot with one branching: link1 carries joint1 (to link2)
// and joint2 (to link3), and joint3 goes from link3 to link4.  All joints
// rotate around the default X axis.
const testRobotURDF = `<robot name="test_robot">
  <link name="link1">
    <inertial>
      <origin xyz="0 0 0.05"/>
      <mass value="1.0"/>
      <inertia ixx="1.0" ixy="0.0" ixz="0.0" iyy="1.0" iyz="0.0" izz="1.0"/>
    </inertial>
  </link>
  <link name="link2">
    <inertial>
      <origin xyz="0 0 0.1"/>
      <mass value="2.0"/>
      <inertia ixx="1.0" ixy="0.0" ixz="0.0" iyy="1.0" iyz="0.0" izz="1.0"/>
    </inertial>
  </link>
  <link name="link3">
    <inertial>
      <mass value="1.5"/>
    </inertial>
  </link>
  <link name="link4">
    <inertial>
      <mass value="0.5"/>
    </inertial>
  </link>
  <joint name="joint1" type="continuous">
    <parent link="link1"/>
    <child link="link2"/>
  </joint>
  <joint name="joint2" type="continuous">
    <parent link="link1"/>
    <child link="link3"/>
  </joint>
  <joint name="joint3" type="continuous">
    <parent link="link3"/>
    <child link="link4"/>
  </joint>
</robot>`

func loadTestRobot(t *testing.T) *Robot {
	t.Helper()
	//
	robot, err := FromURDF([]byte(testRobotURDF))
	require.NoError(t, err)
	//
	return robot
}

// ===================================================================
// Matrix algebra
// ===================================================================

func rotX(angle string) Matrix4 {
	c, s := "cos("+angle+")", "sin("+angle+")"
	//
	return Matrix4{
		{"1", "0", "0", "0"},
		{"0", c, "-" + s, "0"},
		{"0", s, c, "0"},
		{"0", "0", "0", "1"},
	}
}

func TestIdentity_00(t *testing.T) {
	T := Identity()
	//
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				assert.Equal(t, "1", T[i][j])
			} else {
				assert.Equal(t, "0", T[i][j])
			}
		}
	}
}

func TestMul_00(t *testing.T) {
	M := rotX("a")
	//
	assert.Equal(t, M, Identity().Mul(M))
	assert.Equal(t, M, M.Mul(Identity()))
}

func TestMul_01(t *testing.T) {
	T := rotX("a").Mul(rotX("b"))
	//
	assert.Equal(t, "1", T[0][0])
	assert.Equal(t, "0", T[1][0])
	assert.Equal(t, "cos(a)*cos(b)-sin(a)*sin(b)", T[1][1])
	assert.Equal(t, "-cos(a)*sin(b)-sin(a)*cos(b)", T[1][2])
	assert.Equal(t, "sin(a)*cos(b)+cos(a)*sin(b)", T[2][1])
	assert.Equal(t, "-sin(a)*sin(b)+cos(a)*cos(b)", T[2][2])
	assert.Equal(t, "1", T[3][3])
}

func TestRigidInverse_00(t *testing.T) {
	T := Identity()
	T[0][3] = "1"
	T[1][3] = "2"
	//
	inv := T.RigidInverse()
	//
	assert.Equal(t, "-1", inv[0][3])
	assert.Equal(t, "-2", inv[1][3])
	assert.Equal(t, "0", inv[2][3])
	assert.Equal(t, "1", inv[0][0])
}

func TestRigidInverse_01(t *testing.T) {
	inv := rotX("a").RigidInverse()
	//
	assert.Equal(t, "cos(a)", inv[1][1])
	assert.Equal(t, "sin(a)", inv[1][2])
	assert.Equal(t, "-sin(a)", inv[2][1])
	assert.Equal(t, "cos(a)", inv[2][2])
	assert.Equal(t, "0", inv[0][3])
}

func TestCells_00(t *testing.T) {
	cells := Identity().Cells()
	//
	require.Len(t, cells, 4)
	require.Len(t, cells[0], 4)
	assert.Equal(t, "1", cells[0][0])
	assert.Equal(t, "0", cells[0][1])
}

// ===================================================================
// Degree of freedom descriptions
// ===================================================================

func TestDescribe_00(t *testing.T) {
	assert.Equal(t,
		"Rotation value (in radians) around the elbow joint axis.",
		Describe("theta_elbow"))
	assert.Equal(t,
		"Translation value (in meters) along the slider prismatic joint axis.",
		Describe("d_slider"))
	assert.Equal(t,
		"Translation value (in meters) along the X axis of the base joint.",
		Describe("dx_base"))
	assert.Equal(t,
		"Rotation value (in radians) around the Z axis of the base joint.",
		Describe("yaw_base"))
	assert.Equal(t, "", Describe("nounderscore"))
}

// ===================================================================
// URDF parsing
// ===================================================================

func TestFromURDF_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	assert.Equal(t, "test_robot", robot.Name)
	require.Len(t, robot.Links, 4)
	require.Len(t, robot.Joints, 3)
	//
	assert.Equal(t, "link1", robot.Links[0].Name)
	assert.Equal(t, 1.0, robot.Links[0].Mass)
	assert.Equal(t, [3]float64{0, 0, 0.05}, robot.Links[0].CoM)
	assert.Equal(t, 2.0, robot.Links[1].Mass)
	//
	assert.Equal(t, "joint1", robot.Joints[0].Name())
	assert.Equal(t, "continuous", robot.Joints[0].Type())
	assert.Equal(t, 0, robot.Joints[0].Parent())
	assert.Equal(t, 1, robot.Joints[0].Child())
	assert.Equal(t, 2, robot.Joints[2].Parent())
	assert.Equal(t, 3, robot.Joints[2].Child())
	//
	assert.Equal(t, []int{0, 1}, robot.Links[0].Outgoing)
	assert.Equal(t, []int{2}, robot.Links[3].Incoming)
	assert.True(t, robot.Links[0].IsRoot())
	assert.True(t, robot.Links[3].IsTerminal())
}

func TestFromURDF_01(t *testing.T) {
	_, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="j" type="planar">
	    <parent link="a"/><child link="b"/>
	  </joint>
	</robot>`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planar")
}

func TestFromURDF_02(t *testing.T) {
	_, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/>
	  <joint name="j" type="fixed">
	    <parent link="a"/><child link="missing"/>
	  </joint>
	</robot>`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestFromURDF_03(t *testing.T) {
	_, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="j" type="revolute">
	    <parent link="a"/><child link="b"/>
	    <axis xyz="0 0 0"/>
	  </joint>
	</robot>`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "axis")
}

func TestURDFTransform_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	T := robot.Joints[0].Transform()
	expected := rotX("theta_joint1")
	//
	assert.Equal(t, expected, T)
}

func TestURDFTransform_01(t *testing.T) {
	robot, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="slide" type="prismatic">
	    <parent link="a"/><child link="b"/>
	    <origin xyz="0 0 0.5"/>
	    <axis xyz="0 0 1"/>
	  </joint>
	</robot>`))
	require.NoError(t, err)
	//
	T := robot.Joints[0].Transform()
	//
	assert.Equal(t, "0.5+d_slide", T[2][3])
	assert.Equal(t, "0", T[0][3])
	assert.Equal(t, "1", T[0][0])
	assert.Equal(t, "1", T[1][1])
}

func TestURDFTransform_02(t *testing.T) {
	robot, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="turn" type="fixed">
	    <parent link="a"/><child link="b"/>
	    <origin rpy="0 0 1.5707963267948966"/>
	  </joint>
	</robot>`))
	require.NoError(t, err)
	//
	T := robot.Joints[0].Transform()
	//
	assert.Equal(t, "0", T[0][0])
	assert.Equal(t, "-1", T[0][1])
	assert.Equal(t, "1", T[1][0])
	assert.Equal(t, "0", T[1][1])
	assert.Equal(t, "1", T[2][2])
}

func TestURDFTransform_03(t *testing.T) {
	robot, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="free" type="floating">
	    <parent link="a"/><child link="b"/>
	  </joint>
	</robot>`))
	require.NoError(t, err)
	//
	T := robot.Joints[0].Transform()
	//
	assert.Equal(t, "dx_free", T[0][3])
	assert.Equal(t, "dy_free", T[1][3])
	assert.Equal(t, "dz_free", T[2][3])
	assert.Equal(t, "-sin(pitch_free)", T[2][0])
}

func TestSymbols_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	symbols := robot.Joints[0].Symbols()
	require.Len(t, symbols, 1)
	assert.Equal(t, "theta_joint1", symbols[0].Name)
	assert.Equal(t,
		"Rotation value (in radians) around the joint1 joint axis.",
		symbols[0].Description)
}

func TestSymbols_01(t *testing.T) {
	robot, err := FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="free" type="floating">
	    <parent link="a"/><child link="b"/>
	  </joint>
	</robot>`))
	require.NoError(t, err)
	//
	symbols := robot.Joints[0].Symbols()
	require.Len(t, symbols, 6)
	assert.Equal(t, "dx_free", symbols[0].Name)
	assert.Equal(t, "yaw_free", symbols[5].Name)
}

// ===================================================================
// Denavit-Hartenberg parsing
// ===================================================================

const testRobotDH = `name = "dh_robot"
transformations = ["RotZ..theta", "TransZ..d", "TransX..r", "RotX..alpha"]

[[rows]]
name = "j1"
d = "0.3"
theta = "theta_j1"
r = "0"
alpha = "0"
com = [0.0, 0.0, 0.1]
mass = 1.0
pmin = -3.14
pmax = 3.14

[[rows]]
name = "j2"
d = "d_j2"
theta = "0"
r = "0.2"
alpha = "0"
mass = 0.5
`

func TestFromDH_00(t *testing.T) {
	robot, err := FromDH([]byte(testRobotDH))
	require.NoError(t, err)
	//
	assert.Equal(t, "dh_robot", robot.Name)
	require.Len(t, robot.Links, 3)
	require.Len(t, robot.Joints, 2)
	//
	assert.Equal(t, "link_0", robot.Links[0].Name)
	assert.Equal(t, "link_1", robot.Links[1].Name)
	assert.Equal(t, 1.0, robot.Links[1].Mass)
	assert.Equal(t, [3]float64{0, 0, 0.1}, robot.Links[1].CoM)
	assert.Equal(t, 0.5, robot.Links[2].Mass)
	//
	assert.Equal(t, "joint_j1", robot.Joints[0].Name())
	assert.Equal(t, "revolute", robot.Joints[0].Type())
	assert.Equal(t, "joint_j2", robot.Joints[1].Name())
	assert.Equal(t, "prismatic", robot.Joints[1].Type())
	//
	assert.Equal(t, 0, robot.Joints[0].Parent())
	assert.Equal(t, 1, robot.Joints[0].Child())
	assert.True(t, robot.Links[0].IsRoot())
	assert.True(t, robot.Links[2].IsTerminal())
}

func TestFromDH_01(t *testing.T) {
	_, err := FromDH([]byte(`transformations = ["Spin..theta", "TransZ..d", "TransX..r", "RotX..alpha"]
[[rows]]
name = "j"
d = "0"
theta = "0"
r = "0"
alpha = "0"
`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Spin..theta")
}

func TestFromDH_02(t *testing.T) {
	_, err := FromDH([]byte(`transformations = ["RotZ..theta"]
[[rows]]
name = "j"
d = "0"
theta = "0"
r = "0"
alpha = "0"
`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 transformations")
}

func TestFromDH_03(t *testing.T) {
	_, err := FromDH([]byte(`transformations = ["RotZ..theta", "TransZ..d", "TransX..r", "RotX..alpha"]
[[rows]]
name = "j"
d = "not-an-identifier"
theta = "0"
r = "0"
alpha = "0"
`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifier")
}

func TestFromDH_04(t *testing.T) {
	_, err := FromDH([]byte(`transformations = ["RotZ..theta", "TransZ..d", "TransX..r", "RotX..alpha"]
[[rows]]
name = "j"
d = "0"
theta = "0"
r = "0"
alpha = "0"
mass = -1.0
`))
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mass")
}

func TestDHTransform_00(t *testing.T) {
	robot, err := FromDH([]byte(testRobotDH))
	require.NoError(t, err)
	//
	T := robot.Joints[0].Transform()
	//
	assert.Equal(t, "cos(theta_j1)", T[0][0])
	assert.Equal(t, "-sin(theta_j1)", T[0][1])
	assert.Equal(t, "sin(theta_j1)", T[1][0])
	assert.Equal(t, "cos(theta_j1)", T[1][1])
	assert.Equal(t, "1", T[2][2])
	assert.Equal(t, "0.3", T[2][3])
	assert.Equal(t, "0", T[0][3])
}

func TestDHTransform_01(t *testing.T) {
	robot, err := FromDH([]byte(testRobotDH))
	require.NoError(t, err)
	//
	T := robot.Joints[1].Transform()
	//
	assert.Equal(t, "1", T[0][0])
	assert.Equal(t, "d_j2", T[2][3])
	assert.Equal(t, "0.2", T[0][3])
}

func TestDHSymbols_00(t *testing.T) {
	robot, err := FromDH([]byte(testRobotDH))
	require.NoError(t, err)
	//
	symbols := robot.Joints[0].Symbols()
	require.Len(t, symbols, 1)
	assert.Equal(t, "theta_j1", symbols[0].Name)
	assert.Equal(t,
		"Rotation value (in radians) around the j1 joint axis.",
		symbols[0].Description)
}

// ===================================================================
// Robot tree walks
// ===================================================================

func TestRootLink_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	root, err := robot.RootLink()
	require.NoError(t, err)
	assert.Equal(t, 0, root)
}

func TestTotalMass_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	assert.Equal(t, 5.0, robot.TotalMass())
}

func TestParseNode_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	kind, index, err := robot.ParseNode("link_2")
	require.NoError(t, err)
	assert.Equal(t, "link", kind)
	assert.Equal(t, 2, index)
	//
	kind, index, err = robot.ParseNode("joint_0")
	require.NoError(t, err)
	assert.Equal(t, "joint", kind)
	assert.Equal(t, 0, index)
}

func TestParseNode_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	_, _, err := robot.ParseNode("wheel_2")
	assert.Error(t, err)
	//
	_, _, err = robot.ParseNode("link_9")
	assert.Error(t, err)
	//
	_, _, err = robot.ParseNode("joint_3")
	assert.Error(t, err)
}

func TestNodeName_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	name, err := robot.NodeName("link_3")
	require.NoError(t, err)
	assert.Equal(t, "link4", name)
	//
	name, err = robot.NodeName("joint_1")
	require.NoError(t, err)
	assert.Equal(t, "joint2", name)
}

func TestBranch_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	steps, err := robot.Branch("link_0", "link_3")
	require.NoError(t, err)
	//
	assert.Equal(t, []Step{
		{Joint: 1, Forward: true},
		{Joint: 2, Forward: true},
	}, steps)
}

func TestBranch_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	steps, err := robot.Branch("link_1", "link_3")
	require.NoError(t, err)
	//
	assert.Equal(t, []Step{
		{Joint: 0, Forward: false},
		{Joint: 1, Forward: true},
		{Joint: 2, Forward: true},
	}, steps)
}

func TestBranch_02(t *testing.T) {
	robot := loadTestRobot(t)
	//
	steps, err := robot.Branch("link_2", "link_2")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestPreOrder_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	nodes, err := robot.PreOrder()
	require.NoError(t, err)
	//
	assert.Equal(t, []string{
		"link_0", "joint_0", "link_1", "joint_1", "link_2",
		"joint_2", "link_3",
	}, nodes)
}

func TestForwardKinematics_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	T, err := robot.ForwardKinematics("link_0", "link_1")
	require.NoError(t, err)
	//
	assert.Equal(t, rotX("theta_joint1"), T)
}

func TestForwardKinematics_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	T, err := robot.ForwardKinematics("link_0", "link_3")
	require.NoError(t, err)
	//
	assert.Equal(t, "1", T[0][0])
	assert.Equal(t,
		"cos(theta_joint2)*cos(theta_joint3)-sin(theta_joint2)*sin(theta_joint3)",
		T[1][1])
	assert.Equal(t,
		"-cos(theta_joint2)*sin(theta_joint3)-sin(theta_joint2)*cos(theta_joint3)",
		T[1][2])
	assert.Equal(t, "1", T[3][3])
}

func TestForwardKinematics_02(t *testing.T) {
	robot := loadTestRobot(t)
	//
	T, err := robot.ForwardKinematics("link_1", "link_0")
	require.NoError(t, err)
	//
	assert.Equal(t, "cos(theta_joint1)", T[1][1])
	assert.Equal(t, "sin(theta_joint1)", T[1][2])
	assert.Equal(t, "-sin(theta_joint1)", T[2][1])
}
