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

import "github.com/cwilder/polymult/bignum"

// ReadLine returns the 8-digit line at lineOffset from c, or a zero Line
// when c is nil — the "structural zero" convention Polynomial documents.
// Component C of spec.md §4.
func ReadLine(c *bignum.Coefficient, lineOffset int) Line {
	if c == nil {
		return Line{}
	}
	var l Line
	copy(l[:], c.Line(lineOffset))
	return l
}

// WriteLine stores l into c's line buffer at lineOffset. Writing to a
// nil destination is a no-op: a caller that wants an output coefficient
// discarded simply leaves that Polynomial slot nil, per spec.md §6's
// NULL-output convention.
func WriteLine(c *bignum.Coefficient, lineOffset int, l Line) {
	if c == nil {
		return
	}
	copy(c.Line(lineOffset), l[:])
}

// unitLine returns the Line holding the digit pattern of the integer 1
// at the given line offset: all zero except lane 0 of line offset 0,
// which is 1. This is the implied leading coefficient a VectorOptions.Monic
// input omits from storage.
func unitLine(lineOffset int) Line {
	if lineOffset != 0 {
		return Line{}
	}
	return Line{1}
}

// OperandLen reports the effective operand length ReadOperandLines
// produces for poly under opt, without reading any digits: an RLP
// operand mirrors its stored half across degree 0 (2*n-1 entries for n
// stored coefficients), and a Monic operand appends one more for its
// implied leading 1.
func OperandLen(poly Polynomial, opt VectorOptions) int {
	n := poly.Len()
	if opt.RLP {
		if n == 0 {
			n = 0
		} else {
			n = 2*n - 1
		}
	}
	if opt.Monic {
		n++
	}
	return n
}

// ReadOperandLines assembles the full effective sequence of Lines for
// one multiply operand at the given line offset, applying RLP (mirrors
// the stored half across degree 0), Monic (an implied trailing unit
// coefficient, never negated) and Negate (flips every loaded
// coefficient except that implied unit), per spec.md §4.F.
func ReadOperandLines(poly Polynomial, opt VectorOptions, lineOffset int) []Line {
	n := poly.Len()
	body := n
	if opt.RLP && n > 0 {
		body = 2*n - 1
	}
	total := body
	if opt.Monic {
		total++
	}
	out := make([]Line, total)

	readAt := func(idx int) Line {
		l := ReadLine(poly.Coeffs[idx], lineOffset)
		if opt.Negate {
			l = l.Neg()
		}
		return l
	}

	if opt.RLP && n > 0 {
		mid := n - 1
		for i := 0; i < body; i++ {
			degree := i - mid
			out[i] = readAt(abs(degree))
		}
	} else {
		for i := 0; i < n; i++ {
			out[i] = readAt(i)
		}
	}
	if opt.Monic {
		out[body] = unitLine(lineOffset)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FinalizeCoefficient applies the PostTransform action to a completed
// output coefficient, once every line offset has been written. This is
// the whole-coefficient step spec.md §6's NO_UNFFT/STARTNEXTFFT/NEXTFFT
// flags describe; it runs after, not during, the per-line write loop
// because a transform's inverse genuinely depends on every digit word,
// not just one line's worth.
func FinalizeCoefficient(e *bignum.Engine, c *bignum.Coefficient, post PostTransform) {
	if c == nil {
		return
	}
	switch post {
	case PostNone:
		// leave in the working domain
	case PostUnFFT:
		e.Inverse(c)
	case PostStartNextFFT, PostNextFFT:
		e.Inverse(c)
		e.StartNextForward(c)
	}
}
