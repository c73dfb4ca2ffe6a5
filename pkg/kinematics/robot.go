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
	"strconv"
	"strings"
)

// Robot is a tree of links connected by joints.  Links and joints are
// addressed by nodes of the form "link_<i>" and "joint_<i>", where i
// indexes into Links and Joints respectively.
type Robot struct {
	Name   string
	Links  []Link
	Joints []Joint
}

// Step is one joint crossed while walking between two links.  Forward
// steps go from the joint's parent link to its child, backward steps use
// the inverse transform.
type Step struct {
	Joint   int
	Forward bool
}

// RootLink returns the index of the only link no joint leads to.
func (r *Robot) RootLink() (int, error) {
	root := -1
	//
	for i := range r.Links {
		if !r.Links[i].IsRoot() {
			continue
		} else if root >= 0 {
			return 0, fmt.Errorf("links %s and %s are both roots",
				r.Links[root].Name, r.Links[i].Name)
		}
		//
		root = i
	}
	//
	if root < 0 {
		return 0, fmt.Errorf("robot has no root link")
	}
	//
	return root, nil
}

// TotalMass sums the masses of all links.
func (r *Robot) TotalMass() float64 {
	var total float64
	for i := range r.Links {
		total += r.Links[i].Mass
	}
	//
	return total
}

// ParseNode checks a "link_<i>" or "joint_<i>" selector against the
// robot, returning its kind and index.
func (r *Robot) ParseNode(node string) (string, int, error) {
	kind, digits, ok := strings.Cut(node, "_")
	if !ok || (kind != "link" && kind != "joint") {
		return "", 0, fmt.Errorf(
			"invalid node %q (expected \"link_<n>\" or \"joint_<n>\")", node)
	}
	//
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("invalid node index in %q", node)
	}
	//
	if kind == "link" && index >= len(r.Links) {
		return "", 0, fmt.Errorf("link %d does not exist (robot has %d links)",
			index, len(r.Links))
	} else if kind == "joint" && index >= len(r.Joints) {
		return "", 0, fmt.Errorf(
			"joint %d does not exist (robot has %d joints)",
			index, len(r.Joints))
	}
	//
	return kind, index, nil
}

// NodeName maps a node selector to the name of the underlying link or
// joint.
func (r *Robot) NodeName(node string) (string, error) {
	kind, index, err := r.ParseNode(node)
	if err != nil {
		return "", err
	}
	//
	if kind == "link" {
		return r.Links[index].Name, nil
	}
	//
	return r.Joints[index].Name(), nil
}

// Branch lists the joints crossed walking from origin to destination,
// going up towards their deepest common ancestor and back down.
func (r *Robot) Branch(origin string, destination string) ([]Step, error) {
	upPath, err := r.pathToRoot(origin)
	if err != nil {
		return nil, err
	}
	//
	downPath, err := r.pathToRoot(destination)
	if err != nil {
		return nil, err
	}
	// Both paths end at the root.  Trim the shared suffix, keeping the
	// deepest common ancestor out of both halves.
	common := 0
	for common < len(upPath) && common < len(downPath) {
		if upPath[len(upPath)-1-common] != downPath[len(downPath)-1-common] {
			break
		}
		//
		common++
	}
	//
	if common == 0 {
		return nil, fmt.Errorf("%s and %s are not connected",
			origin, destination)
	}
	//
	var steps []Step
	//
	for _, node := range upPath[:len(upPath)-common] {
		if index, ok := jointNode(node); ok {
			steps = append(steps, Step{Joint: index, Forward: false})
		}
	}
	//
	down := downPath[:len(downPath)-common]
	for i := len(down) - 1; i >= 0; i-- {
		if index, ok := jointNode(down[i]); ok {
			steps = append(steps, Step{Joint: index, Forward: true})
		}
	}
	//
	return steps, nil
}

// ForwardKinematics composes the transition matrices along the branch
// from origin to destination.
func (r *Robot) ForwardKinematics(origin string, destination string) (Matrix4, error) {
	steps, err := r.Branch(origin, destination)
	if err != nil {
		return Matrix4{}, err
	}
	//
	T := Identity()
	//
	for _, step := range steps {
		joint := r.Joints[step.Joint]
		//
		if step.Forward {
			T = T.Mul(joint.Transform())
		} else {
			T = T.Mul(joint.InverseTransform())
		}
	}
	//
	return T, nil
}

// PreOrder walks the tree from the root, yielding each node before its
// children.  Links are followed by their outgoing joints in index order.
func (r *Robot) PreOrder() ([]string, error) {
	root, err := r.RootLink()
	if err != nil {
		return nil, err
	}
	//
	var (
		nodes []string
		visit func(link int)
	)
	//
	visit = func(link int) {
		nodes = append(nodes, fmt.Sprintf("link_%d", link))
		//
		for _, joint := range r.Links[link].Outgoing {
			nodes = append(nodes, fmt.Sprintf("joint_%d", joint))
			visit(r.Joints[joint].Child())
		}
	}
	//
	visit(root)
	//
	return nodes, nil
}

// pathToRoot lists the nodes from the given node up to the root,
// inclusive on both ends.  Links alternate with the joints above them.
func (r *Robot) pathToRoot(node string) ([]string, error) {
	kind, index, err := r.ParseNode(node)
	if err != nil {
		return nil, err
	}
	//
	var path []string
	//
	if kind == "joint" {
		path = append(path, fmt.Sprintf("joint_%d", index))
		index = r.Joints[index].Parent()
	}
	//
	for {
		path = append(path, fmt.Sprintf("link_%d", index))
		//
		link := &r.Links[index]
		if link.IsRoot() {
			return path, nil
		}
		//
		joint := link.Incoming[0]
		path = append(path, fmt.Sprintf("joint_%d", joint))
		index = r.Joints[joint].Parent()
	}
}

func jointNode(node string) (int, bool) {
	digits, ok := strings.CutPrefix(node, "joint_")
	if !ok {
		return 0, false
	}
	//
	index, err := strconv.Atoi(digits)
	//
	return index, err == nil
}
