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
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kinforge/kinforge/pkg/kinematics"
	"github.com/kinforge/kinforge/pkg/lang"
)

// Options selects what to generate for a robot.
type Options struct {
	// Forward transition matrix functions, as "joint_<i>" selectors.
	Forward []string
	// Backward (inverse) transition matrix functions.
	Backward []string
	// FK lists the forward kinematics functions to generate.
	FK []Request
	// Jacobians lists the Jacobian functions to generate.
	Jacobians []Request
	// CoM generates the centre of mass function.
	CoM bool
	// CoMJacobian generates the centre of mass Jacobian function.
	CoMJacobian bool
	// Level is the optimization level: 0 emits functions calling the
	// transition matrix functions, higher levels expand the products into
	// standalone expressions.
	Level int
	// Timestamp stamps the file header.  The zero value means now.
	Timestamp time.Time
}

// Everything assembles a complete source file for the robot.  The base
// name (without extension) names the MATLAB class wrapping the functions
// there.
func Everything(robot *kinematics.Robot, opts Options, profile *lang.Profile,
	base string) (string, error) {
	//
	stamp := opts.Timestamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	//
	header := "The code in this file has been generated by kinforge on " +
		stamp.Format("01/02/2006, 15:04:05") + ". Consider testing this " +
		"code before using it as errors remain possible. For more details, " +
		"check out the kinforge documentation."
	//
	code := profile.CommentBlockBegin + "\n" +
		profile.Justify(header, true) + "\n" +
		profile.CommentBlockEnd + "\n\n" +
		profile.Header + "\n"
	//
	if profile.Name == "matlab" {
		code += "\nclassdef " + base + "\nmethods(Static)\n\n"
	}
	//
	matrices, err := TransitionMatrices(robot, opts.Forward, opts.Backward,
		profile)
	if err != nil {
		return "", err
	}
	//
	code += matrices
	//
	if len(opts.FK) > 0 {
		fk, err := AllForwardKinematics(robot, opts.FK, opts.Level, profile)
		if err != nil {
			return "", err
		}
		//
		code += "\n\n" + fk
	}
	//
	if len(opts.Jacobians) > 0 {
		jac, err := AllJacobians(robot, opts.Jacobians, profile)
		if err != nil {
			return "", err
		}
		//
		code += "\n\n" + jac
	}
	//
	if opts.CoM {
		com, err := CenterOfMass(robot, profile)
		if err != nil {
			return "", err
		}
		//
		code += "\n\n" + com
	}
	//
	if opts.CoMJacobian {
		jac, err := CoMJacobian(robot, profile)
		if err != nil {
			return "", err
		}
		//
		code += "\n\n" + jac
	}
	//
	code += "\n"
	//
	if profile.Name == "matlab" {
		code += "\nend\nend\n"
		code = strings.ReplaceAll(code, matlabPrefix, base+".")
	} else {
		code = strings.ReplaceAll(code, matlabPrefix, "")
	}
	//
	return code, nil
}

// WriteFile generates everything and writes it next to the given path,
// with the extension of the target language.
func WriteFile(robot *kinematics.Robot, opts Options, profile *lang.Profile,
	path string) (string, error) {
	//
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	//
	code, err := Everything(robot, opts, profile, base)
	if err != nil {
		return "", err
	}
	//
	out := strings.TrimSuffix(path, filepath.Ext(path)) + "." +
		profile.Extension
	//
	if err := os.WriteFile(out, []byte(code), 0644); err != nil {
		return "", err
	}
	//
	log.Infof("wrote %s", out)
	//
	return out, nil
}
