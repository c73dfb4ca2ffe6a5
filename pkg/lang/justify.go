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
package lang

import "strings"

// Justify wraps every over-long line of a docstring at the profile's line
// width, padding the broken lines out to the full width.  Wrapped
// continuations keep the indentation of their line, with a leading bullet
// dash counted as indentation.  When paragraph is unset each line is
// prefixed with the line-comment token instead of relying on an enclosing
// comment block.
func (p *Profile) Justify(docstring string, paragraph bool) string {
	lines := strings.Split(docstring, "\n")
	//
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if len(line) <= p.MaxLineWidth {
			continue
		}
		//
		indent := lineIndent(line)
		//
		width := p.MaxLineWidth - indent
		if !paragraph {
			width -= len(p.CommentLine) + 1
		}
		//
		words := strings.Fields(line)
		if len(strings.Join(words, " ")) <= width {
			continue
		}
		// Take words until the line overflows.
		taken := 0
		for n := 0; taken < len(words); taken++ {
			n += len(words[taken])
			if taken > 0 {
				n++
			}
			//
			if n > width {
				break
			}
		}
		// A single word longer than the width stays unbroken.
		taken = max(taken, 1)
		if taken == len(words) {
			continue
		}
		//
		padding := strings.Repeat(" ", indent)
		head := justifyLine(words[:taken], width)
		rest := strings.Join(words[taken:], " ")
		//
		lines[i] = padding + head
		lines = append(lines[:i+1], append([]string{padding + rest}, lines[i+1:]...)...)
	}
	//
	if paragraph {
		return strings.Join(lines, "\n")
	}
	// Line comments: every line takes the comment token.
	return p.CommentLine + " " + strings.Join(lines, "\n"+p.CommentLine+" ")
}

// justifyLine pads the gaps between words out to exactly the given width,
// feeding extra spaces to the leftmost gaps first.
func justifyLine(words []string, width int) string {
	if len(words) < 2 {
		return strings.Join(words, " ")
	}
	//
	chars := 0
	for _, word := range words {
		chars += len(word)
	}
	//
	gaps := len(words) - 1
	spaces := width - chars
	//
	if spaces < gaps {
		return strings.Join(words, " ")
	}
	//
	var builder strings.Builder
	//
	for i, word := range words {
		builder.WriteString(word)
		//
		if i < gaps {
			n := spaces / gaps
			if i < spaces%gaps {
				n++
			}
			//
			builder.WriteString(strings.Repeat(" ", n))
		}
	}
	//
	return builder.String()
}

// lineIndent counts the leading whitespace of a line, treating a single
// bullet dash as part of the indentation.
func lineIndent(line string) int {
	indent := 0
	dash := false
	//
	for _, c := range line {
		switch {
		case c == ' ':
			indent++
		case c == '-' && !dash:
			dash = true
			indent++
		default:
			return indent
		}
	}
	//
	return indent
}
