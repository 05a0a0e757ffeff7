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

// karatsubaConvolveLine computes, for a single line offset, the full
// linear convolution of in1 and in2 via recursive Karatsuba splitting,
// component E of spec.md §4. Below karatBreak elements it falls back to
// bruteConvolveLine directly, the break spec.md §3's Handle stores as
// KARAT_BREAK.
//
// Both operands are zero-padded to the same even length before
// splitting so the classic three-multiply recursion (z0 = lo*lo,
// z2 = hi*hi, z1 = (lo+hi)*(lo+hi) - z0 - z2) applies uniformly; the
// true, possibly unequal, input lengths are recovered by trimming the
// padded convolution down to outLen, which the Planner already expects
// to do for adjusted_pad reasons.
func karatsubaConvolveLine(in1, in2 []Line, outLen, karatBreak int) []Line {
	n := max(len(in1), len(in2))
	if n%2 != 0 {
		n++
	}
	a := padLines(in1, n)
	b := padLines(in2, n)
	full := karatsubaRecurse(a, b, karatBreak)
	if len(full) > outLen {
		full = full[:outLen]
	} else {
		for len(full) < outLen {
			full = append(full, Line{})
		}
	}
	return full
}

func padLines(in []Line, n int) []Line {
	out := make([]Line, n)
	copy(out, in)
	return out
}

// karatsubaRecurse multiplies two equal-length (n) Line slices and
// returns their full convolution of length 2n-1. An odd n splits into a
// low part of n/2 entries and a high part of n-n/2 entries.
func karatsubaRecurse(a, b []Line, karatBreak int) []Line {
	n := len(a)
	if n < karatBreak || n == 1 {
		return bruteConvolveLine(a, b, 2*n-1)
	}

	half := n / 2
	a0, a1 := a[:half], a[half:]
	b0, b1 := b[:half], b[half:]

	z0 := karatsubaRecurse(a0, b0, karatBreak)
	z2 := karatsubaRecurse(a1, b1, karatBreak)

	sa := sumLines(a0, a1)
	sb := sumLines(b0, b1)
	z1 := karatsubaRecurse(sa, sb, karatBreak)
	z1 = subtractInto(z1, z0)
	z1 = subtractInto(z1, z2)

	out := make([]Line, 2*n-1)
	for i, l := range z0 {
		out[i] = out[i].Add(l)
	}
	for i, l := range z1 {
		out[i+half] = out[i+half].Add(l)
	}
	for i, l := range z2 {
		out[i+2*half] = out[i+2*half].Add(l)
	}
	return out
}

func sumLines(a, b []Line) []Line {
	n := max(len(a), len(b))
	out := make([]Line, n)
	for i := range out {
		var av, bv Line
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = av.Add(bv)
	}
	return out
}

func subtractInto(dst, sub []Line) []Line {
	for i := range dst {
		if i < len(sub) {
			dst[i] = dst[i].Sub(sub[i])
		}
	}
	return dst
}
