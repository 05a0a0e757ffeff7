// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package polymult

// bruteConvolveLine computes, for a single line offset, the full linear
// convolution out[k] = sum_{i+j=k} in1[i]*in2[j], component D of
// spec.md §4. outLen must be at least len(in1)+len(in2)-1 for every
// nonzero coefficient to be represented; shorter values silently
// truncate high-degree terms, matching how the Planner trims a
// requested OutSize below the full product length.
func bruteConvolveLine(in1, in2 []Line, outLen int) []Line {
	out := make([]Line, outLen)
	for i, a := range in1 {
		if a == (Line{}) {
			continue
		}
		for j, b := range in2 {
			k := i + j
			if k >= outLen {
				break
			}
			out[k] = out[k].MulAdd(a, b)
		}
	}
	return out
}
