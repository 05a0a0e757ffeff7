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

// Line is a cache-line-wide bundle of 8 independent digit values: the 8
// consecutive digit words one coefficient holds at a given line offset
// (see ReadLine), so a []Line with one entry per coefficient is that
// line offset of a whole polynomial. Every line-kernel primitive below
// operates on all 8 lanes at once with a single scalar of shared state (a Karatsuba sign, an FFT
// twiddle), which is what lets the CORE dispatch whole lines to helper
// goroutines instead of individual digits: this module's equivalent of
// the teacher's width-8 Vec[float64] scalar fallback in ops_base.go,
// generalized from a SIMD register width to polymult's fixed line width.
type Line [8]float64

// Add returns the elementwise sum l + o.
func (l Line) Add(o Line) Line {
	var r Line
	for i := range r {
		r[i] = l[i] + o[i]
	}
	return r
}

// Sub returns the elementwise difference l - o.
func (l Line) Sub(o Line) Line {
	var r Line
	for i := range r {
		r[i] = l[i] - o[i]
	}
	return r
}

// Neg returns the elementwise negation of l.
func (l Line) Neg() Line {
	var r Line
	for i := range r {
		r[i] = -l[i]
	}
	return r
}

// Mul returns the elementwise product l * o.
func (l Line) Mul(o Line) Line {
	var r Line
	for i := range r {
		r[i] = l[i] * o[i]
	}
	return r
}

// Scale returns every lane of l multiplied by the scalar k.
func (l Line) Scale(k float64) Line {
	var r Line
	for i := range r {
		r[i] = l[i] * k
	}
	return r
}

// MulAdd returns l + a*o, the fused multiply-add brute force and
// Karatsuba both use for their elementwise accumulation step.
func (l Line) MulAdd(a, o Line) Line {
	var r Line
	for i := range r {
		r[i] = l[i] + a[i]*o[i]
	}
	return r
}

// ComplexLine bundles 8 independent complex lanes: the working unit of
// the poly-FFT kernel (fft.go), where a single butterfly's twiddle
// factor is shared across all 8 lanes simultaneously.
type ComplexLine struct {
	Re, Im Line
}

// Add returns the elementwise sum a + b.
func (a ComplexLine) Add(b ComplexLine) ComplexLine {
	return ComplexLine{Re: a.Re.Add(b.Re), Im: a.Im.Add(b.Im)}
}

// Sub returns the elementwise difference a - b.
func (a ComplexLine) Sub(b ComplexLine) ComplexLine {
	return ComplexLine{Re: a.Re.Sub(b.Re), Im: a.Im.Sub(b.Im)}
}

// MulScalar multiplies every lane of a by the same complex scalar w,
// the shape every FFT butterfly's twiddle multiply takes.
func (a ComplexLine) MulScalar(wRe, wIm float64) ComplexLine {
	var r ComplexLine
	for i := 0; i < 8; i++ {
		r.Re[i] = a.Re[i]*wRe - a.Im[i]*wIm
		r.Im[i] = a.Re[i]*wIm + a.Im[i]*wRe
	}
	return r
}

// MulLine performs an elementwise complex multiply between two
// ComplexLines, lane by independent lane: the poly-FFT kernel's
// pointwise-multiply stage between the two transformed operands.
func (a ComplexLine) MulLine(b ComplexLine) ComplexLine {
	var r ComplexLine
	for i := 0; i < 8; i++ {
		r.Re[i] = a.Re[i]*b.Re[i] - a.Im[i]*b.Im[i]
		r.Im[i] = a.Re[i]*b.Im[i] + a.Im[i]*b.Re[i]
	}
	return r
}

// Scale divides (or multiplies) every lane by a real scalar, used by the
// inverse FFT's final 1/N normalization.
func (a ComplexLine) Scale(k float64) ComplexLine {
	return ComplexLine{Re: a.Re.Scale(k), Im: a.Im.Scale(k)}
}
