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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

const testRobotURDF = `<robot name="test_robot">
  <link name="link1">
    <inertial>
      <origin xyz="0 0 0.05"/>
      <mass value="1.0"/>
    </inertial>
  </link>
  <link name="link2">
    <inertial>
      <origin xyz="0 0 0.1"/>
      <mass value="2.0"/>
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

func loadTestRobot(t *testing.T) *kinematics.Robot {
	t.Helper()
	//
	robot, err := kinematics.FromURDF([]byte(testRobotURDF))
	require.NoError(t, err)
	//
	return robot
}

func TestJointParams_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	params := jointParams(robot.Joints[0])
	require.Len(t, params, 1)
	assert.Equal(t, "theta_joint1", params[0].Name)
	assert.Equal(t, "double", params[0].Kind)
	assert.Equal(t,
		"Rotation value (in radians) around the joint1 joint axis.",
		params[0].Description)
}

func TestJointCall_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	assert.Equal(t, "MATLAB_PREFIXT_joint1(theta_joint1)",
		jointCall(robot.Joints[0], false))
	assert.Equal(t, "MATLAB_PREFIXT_joint1_inv(theta_joint1)",
		jointCall(robot.Joints[0], true))
}

func TestJointCall_01(t *testing.T) {
	robot, err := kinematics.FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="weld" type="fixed">
	    <parent link="a"/><child link="b"/>
	  </joint>
	</robot>`))
	require.NoError(t, err)
	//
	assert.Equal(t, "MATLAB_PREFIXT_weld()", jointCall(robot.Joints[0], false))
}

func TestPrettyMatrix_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	expected := "[1          0                  0           0]\n" +
		"[                                           ]\n" +
		"[0  cos(theta_joint1)  -sin(theta_joint1)  0]\n" +
		"[                                           ]\n" +
		"[0  sin(theta_joint1)  cos(theta_joint1)   0]\n" +
		"[                                           ]\n" +
		"[0          0                  0           1]"
	//
	assert.Equal(t, expected, prettyMatrix(robot.Joints[0].Transform()))
}

func TestFromGrid_00(t *testing.T) {
	cells := [][]string{
		{"cos(t)", "-sin(t)"},
		{"sin(t)", "cos(t)"},
	}
	//
	params := []lang.Param{{Name: "t", Kind: "double"}}
	//
	code, err := FromGrid(lang.Python(), "rot", cells, params, "", false)
	require.NoError(t, err)
	//
	assert.Contains(t, code, "def rot(t):")
	assert.Contains(t, code, "v_cos = cos(t)")
	assert.Contains(t, code, "v_sin = sin(t)")
	assert.Contains(t, code, "mat = array([[v_cos,-v_sin],")
	assert.Contains(t, code, "return mat")
}

func TestTransitionMatrices_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := TransitionMatrices(robot, []string{"joint_0"}, nil,
		lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "FORWARD TRANSITION MATRICES")
	assert.Contains(t, code, "Joint 0")
	assert.Contains(t, code, "def T_joint1(theta_joint1):")
	assert.Contains(t, code,
		"Transition Matrix to go from link link1 to link link2.")
	assert.Contains(t, code, "This joint is continuous. The matrix is :")
	assert.Contains(t, code, "v_cos = cos(theta_joint1)")
	assert.Contains(t, code, "mat = array([[1,0,0,0],")
	assert.Contains(t, code, "[0,v_cos,-v_sin,0],")
	assert.NotContains(t, code, "BACKWARD")
}

func TestTransitionMatrices_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := TransitionMatrices(robot, nil, []string{"joint_0"},
		lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "BACKWARD TRANSITION MATRICES")
	assert.Contains(t, code, "Joint 0 Inverse")
	assert.Contains(t, code, "def T_joint1_inv(theta_joint1):")
	assert.Contains(t, code,
		"Transition Matrix to go from link link2 to link link1.")
}

func TestTransitionMatrices_02(t *testing.T) {
	robot := loadTestRobot(t)
	//
	_, err := TransitionMatrices(robot, []string{"link_0"}, nil, lang.Python())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a joint")
}

func TestForwardKinematics_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := ForwardKinematics(robot,
		Request{Origin: "link_0", Destination: "link_1"}, 0, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "Forward Kinematics from link_0 to link_1")
	assert.Contains(t, code, "def fk_link1_link2(q):")
	assert.Contains(t, code,
		"Computes  the forward kinematics from the link link1 to the link link2. The")
	assert.Contains(t, code,
		"MATLAB_PREFIXT_0 = MATLAB_PREFIXT_joint1(q[0])")
	assert.Contains(t, code, "return MATLAB_PREFIXT_0")
}

func TestForwardKinematics_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := ForwardKinematics(robot,
		Request{Origin: "link_0", Destination: "link_3"}, 1, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "def fk_link1_link4(q):")
	assert.Contains(t, code, "v_cos = cos(q[0])")
	assert.Contains(t, code, "- q[0] = theta_joint2 :")
	assert.Contains(t, code, "- q[1] = theta_joint3 :")
	assert.Contains(t, code, "return mat")
	assert.NotContains(t, code, "MATLAB_PREFIXT_")
}

func TestForwardKinematics_02(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := ForwardKinematics(robot,
		Request{Origin: "link_1", Destination: "link_1"}, 0, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "def fk_link2_link2(q):")
	assert.Contains(t, code, "T = eye(4,4)")
	assert.Contains(t, code, "return T")
}

func TestForwardKinematics_03(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := ForwardKinematics(robot,
		Request{Origin: "link_0", Destination: "link_1", Content: "xyzo"},
		0, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "def fk_link1_link2_xyzo(q):")
}

func TestForwardKinematics_04(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := ForwardKinematics(robot,
		Request{Origin: "link_1", Destination: "link_3"}, 0, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code,
		"MATLAB_PREFIXT_0_inv = MATLAB_PREFIXT_joint1_inv(q[0])")
	assert.Contains(t, code, "return "+
		"dot(dot(MATLAB_PREFIXT_0_inv,MATLAB_PREFIXT_1),MATLAB_PREFIXT_2)")
}

func TestJacobian_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := Jacobian(robot,
		Request{Origin: "link_0", Destination: "link_1"}, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code,
		"Jacobian of the link_1 position and orientation")
	assert.Contains(t, code, "def jacobian_link1_to_link2(p0, q):")
	assert.Contains(t, code, "Jac = zeros((6, 1))")
	assert.Contains(t, code, "T = MATLAB_PREFIXT_joint1(q[0])")
	assert.Contains(t, code, "L = p0-T[0:3,3]")
	assert.Contains(t, code, "Z = T[0:3,2]")
	assert.Contains(t, code, "Jac[0:3,0] = cross(Z,L)")
	assert.Contains(t, code, "Jac[3:6,0] = Z")
	assert.Contains(t, code, "return Jac")
}

func TestJacobian_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := Jacobian(robot,
		Request{Origin: "link_0", Destination: "link_3"}, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "Jac = zeros((6, 2))")
	assert.Contains(t, code, "T = dot(T,MATLAB_PREFIXT_joint3(q[1]))")
	assert.Contains(t, code, "Jac[0:3,1] = cross(Z,L)")
	assert.Contains(t, code, "- Column 0 : theta_joint2")
	assert.Contains(t, code, "- Column 1 : theta_joint3")
}

func TestJacobian_02(t *testing.T) {
	robot := loadTestRobot(t)
	//
	_, err := Jacobian(robot,
		Request{Origin: "link_1", Destination: "link_1"}, lang.Python())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no joints")
}

func TestCenterOfMass_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := CenterOfMass(robot, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "Center of Mass of the Robot")
	assert.Contains(t, code, "def com(q):")
	assert.Contains(t, code, "T = eye(4,4)")
	assert.Contains(t, code, "com_0_xyz = array([[0],[0],[0.05],[1.0]])")
	assert.Contains(t, code, "com_0 = dot(0.2*T,com_0_xyz)")
	assert.Contains(t, code, "T = dot(T,MATLAB_PREFIXT_joint1(q[0]))")
	assert.Contains(t, code, "return com_0+com_1+com_2+com_3")
}

func TestCenterOfMass_01(t *testing.T) {
	robot, err := kinematics.FromURDF([]byte(`<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="j" type="fixed">
	    <parent link="a"/><child link="b"/>
	  </joint>
	</robot>`))
	require.NoError(t, err)
	//
	code, err := CenterOfMass(robot, lang.Python())
	require.NoError(t, err)
	//
	assert.Equal(t, "# Center of mass function can not be generated "+
		"because the robot mass is null.", code)
}

func TestCoMJacobian_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	code, err := CoMJacobian(robot, lang.Python())
	require.NoError(t, err)
	//
	assert.Contains(t, code, "Jacobian of the Center of Mass of the Robot")
	assert.Contains(t, code, "def jacobian_com(com0, q):")
	assert.Contains(t, code, "Jac = zeros((3, 4))")
	assert.Contains(t, code, "L = com0[0:3]-com[0:3]")
	assert.Contains(t, code, "Jac[0:3,0] = cross(Z,L)")
	assert.Contains(t, code, "Jac[0:3,3] = cross(Z,L)")
	assert.Contains(t, code, "return Jac")
}

func TestEverything_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	opts := Options{
		Forward:   []string{"joint_0", "joint_1", "joint_2"},
		Backward:  []string{"joint_0"},
		FK:        []Request{{Origin: "link_0", Destination: "link_1"}},
		Jacobians: []Request{{Origin: "link_0", Destination: "link_1"}},
		CoM:       true,
		Timestamp: time.Date(2021, 10, 1, 16, 3, 41, 0, time.UTC),
	}
	//
	code, err := Everything(robot, opts, lang.Python(), "test_robot")
	require.NoError(t, err)
	//
	assert.True(t, strings.HasPrefix(code, "\"\"\"\n"))
	assert.Contains(t, code, "generated")
	assert.Contains(t, code, "kinforge")
	assert.Contains(t, code, "16:03:41.")
	assert.Contains(t, code, "from math import cos, sin")
	assert.Contains(t, code, "from numpy import array, cross, dot, zeros, eye")
	assert.Contains(t, code, "def T_joint1(theta_joint1):")
	assert.Contains(t, code, "def T_joint1_inv(theta_joint1):")
	assert.Contains(t, code, "def fk_link1_link2(q):")
	assert.Contains(t, code, "def jacobian_link1_to_link2(p0, q):")
	assert.Contains(t, code, "def com(q):")
	assert.Contains(t, code, "T_0 = T_joint1(q[0])")
	assert.NotContains(t, code, "MATLAB_PREFIX")
	assert.NotContains(t, code, "classdef")
}

func TestEverything_01(t *testing.T) {
	robot := loadTestRobot(t)
	//
	opts := Options{
		Forward: []string{"joint_0"},
		FK:      []Request{{Origin: "link_0", Destination: "link_1"}},
	}
	//
	code, err := Everything(robot, opts, lang.Matlab(), "myrobot")
	require.NoError(t, err)
	//
	assert.Contains(t, code, "classdef myrobot")
	assert.Contains(t, code, "methods(Static)")
	assert.Contains(t, code, "function return_value = T_joint1(theta_joint1)")
	assert.Contains(t, code, "myrobot.T_0 = myrobot.T_joint1(q(1));")
	assert.True(t, strings.HasSuffix(code, "end\nend\n"))
	assert.NotContains(t, code, "MATLAB_PREFIX")
}

func TestWriteFile_00(t *testing.T) {
	robot := loadTestRobot(t)
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "test_robot")
	//
	out, err := WriteFile(robot, Options{Forward: []string{"joint_0"}},
		lang.Python(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_robot.py"), out)
	//
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "def T_joint1(theta_joint1):")
}
