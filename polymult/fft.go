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

// fftSize returns the smallest 5-smooth integer (of the form
// 2^a * 3^b * 5^c) that is >= n, the candidate pool the poly-FFT
// kernel picks from. A 5-smooth size keeps the mixed-radix
// recursion in fftInPlace entirely within radix-2/3/5 butterflies.
func fftSize(n int) int {
	if n <= 1 {
		return 1
	}
	best := -1
	for c := 0; ; c++ {
		p5 := pow(5, c)
		if p5 >= n {
			if best == -1 || p5 < best {
				best = p5
			}
			break
		}
		for b := 0; ; b++ {
			p35 := p5 * pow(3, b)
			if p35 >= n {
				if best == -1 || p35 < best {
					best = p35
				}
				break
			}
			for a := 0; ; a++ {
				v := p35 * pow(2, a)
				if v >= n {
					if best == -1 || v < best {
						best = v
					}
					break
				}
			}
		}
	}
	return best
}

func pow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// smallestFactor returns the smallest of {2,3,5} dividing n, or 0 if
// none does (n is then treated as a single radix-n DFT leaf).
func smallestFactor(n int) int {
	for _, p := range [...]int{2, 3, 5} {
		if n%p == 0 {
			return p
		}
	}
	return 0
}

// fftInPlace computes the length-len(a) DFT of a (or its inverse, when
// inverse is true, without the final 1/N scaling — callers that need a
// true inverse transform must scale the result by 1/len(a) themselves)
// via a generic mixed-radix decimation-in-time Cooley-Tukey recursion.
// groupStride is tbl.Size / len(a): at the top-level call groupStride is
// 1 (len(a) == tbl.Size); every recursive sub-call operates on a shorter
// subsequence but still indexes twiddle factors from the single
// top-level table, scaled by how many top-level samples each of its
// samples represents.
func fftInPlace(a []ComplexLine, groupStride int, inverse bool, tbl *TwiddleTable) {
	n := len(a)
	if n <= 1 {
		return
	}
	p := smallestFactor(n)
	if p == 0 {
		directDFT(a, groupStride, inverse, tbl)
		return
	}
	m := n / p

	subs := make([][]ComplexLine, p)
	for r := 0; r < p; r++ {
		subs[r] = make([]ComplexLine, m)
		for k := 0; k < m; k++ {
			subs[r][k] = a[k*p+r]
		}
		fftInPlace(subs[r], groupStride*p, inverse, tbl)
	}

	for k := 0; k < m; k++ {
		for j := 0; j < p; j++ {
			var sum ComplexLine
			for r := 0; r < p; r++ {
				re, im := tbl.root(groupStride*r*(k+j*m), inverse)
				sum = sum.Add(subs[r][k].MulScalar(re, im))
			}
			a[j*m+k] = sum
		}
	}
}

// directDFT computes a length-n DFT by direct summation, the recursion
// base case fftInPlace falls back to when a sub-length shares no factor
// with {2,3,5} (never reached for sizes fftSize returns, but kept so
// fftInPlace stays correct for an arbitrary caller-supplied size, as
// PreprocessedPoly's PreFFT path allows).
func directDFT(a []ComplexLine, groupStride int, inverse bool, tbl *TwiddleTable) {
	n := len(a)
	out := make([]ComplexLine, n)
	for k := 0; k < n; k++ {
		var sum ComplexLine
		for j := 0; j < n; j++ {
			re, im := tbl.root(groupStride*k*j, inverse)
			sum = sum.Add(a[j].MulScalar(re, im))
		}
		out[k] = sum
	}
	copy(a, out)
}

// polyFFTConvolveLine computes, for a single line offset, the length-size
// cyclic convolution of in1 and in2 via the poly-FFT kernel: zero-pad
// both to size, forward transform, pointwise multiply, inverse
// transform and rescale. size must be >= len(in1)+len(in2)-1 for the
// result to equal the true linear convolution, up to floating-point
// rounding error (component F, spec.md §4.F).
func polyFFTConvolveLine(in1, in2 []Line, size int, tbl *TwiddleCache) []Line {
	t := tbl.Ensure(size)

	a := make([]ComplexLine, size)
	for i, l := range in1 {
		a[i] = ComplexLine{Re: l}
	}
	b := make([]ComplexLine, size)
	for i, l := range in2 {
		b[i] = ComplexLine{Re: l}
	}

	fftInPlace(a, 1, false, t)
	fftInPlace(b, 1, false, t)

	prod := make([]ComplexLine, size)
	for i := range prod {
		prod[i] = a[i].MulLine(b[i])
	}

	fftInPlace(prod, 1, true, t)

	scale := 1.0 / float64(size)
	out := make([]Line, size)
	for i := range out {
		out[i] = prod[i].Scale(scale).Re
	}
	return out
}
