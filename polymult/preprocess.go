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

// PreprocessedPoly is component H of spec.md §4: a polynomial operand
// that has already paid the poly-FFT kernel's forward-transform cost,
// for reuse across many multiplies against the same fixed operand (the
// common "multiply many things by a fixed modulus" shape, and the
// mechanism Polymult2 and PolymultSeveral use to share in1's transform
// across several products instead of recomputing it per call).
//
// PRE_COMPRESS (spec.md §9's exponent-bit-packing storage optimization)
// is not implemented: it would need a dedicated pack(line)->bytes /
// unpack(bytes)->line codec this module does not yet have, and shipping
// the flag without a real codec behind it would silently do nothing.
// Preprocess rejects it until that codec exists (see DESIGN.md).
type PreprocessedPoly struct {
	n       int
	vopt    VectorOptions
	fftSize int
	preFFT  bool

	transLines [][]ComplexLine
}

// Preprocess builds a PreprocessedPoly for poly under opt: opt.PreFFT
// computes the forward poly-FFT transform once, up front, at a size of
// at least fftSizeHint (rounded up to the next 5-smooth size if smaller
// than poly's own length demands).
func Preprocess(h *Handle, poly Polynomial, opt VectorOptions, fftSizeHint int, pre Options) (*PreprocessedPoly, error) {
	if pre.PreCompress {
		return nil, &Error{Kind: ErrConfiguration, Message: "PreCompress has no codec implementation yet; see DESIGN.md"}
	}
	if !pre.PreFFT {
		return nil, &Error{Kind: ErrConfiguration, Message: "Preprocess requires PreFFT"}
	}
	n := OperandLen(poly, opt)
	if n == 0 {
		return nil, &Error{Kind: ErrConfiguration, Message: "cannot preprocess an empty operand"}
	}

	size := fftSizeHint
	if size < n {
		size = fftSize(n)
	}

	p := &PreprocessedPoly{n: n, vopt: opt, fftSize: size, preFFT: true}

	numLines := coefficientLines(poly)
	tbl := h.twiddle.Ensure(size)
	p.transLines = make([][]ComplexLine, numLines)
	for lo := 0; lo < numLines; lo++ {
		raw := ReadOperandLines(poly, opt, lo)
		buf := make([]ComplexLine, size)
		for i, l := range raw {
			buf[i] = ComplexLine{Re: l}
		}
		fftInPlace(buf, 1, false, tbl)
		p.transLines[lo] = buf
	}
	return p, nil
}

// coefficientLines reports how many line offsets poly's coefficients
// span, using the first non-nil coefficient as the width witness: every
// coefficient in a single polymult call shares the same NumWords by
// contract (a Contract violation otherwise, checked in api.go).
func coefficientLines(poly Polynomial) int {
	for _, c := range poly.Coeffs {
		if c != nil {
			return c.NumWords() / 8
		}
	}
	return 0
}

// sizeFor reports the poly-FFT size p's cached transform can serve plan
// at, and whether it can serve it at all. A linear (non-circular) plan
// only needs size >= plan.ConvLen: zero-padding a transform further out
// than the true convolution length does not change a linear result, so
// one PreprocessedPoly built generously up front can serve every call
// in a PolymultSeveral/Polymult2 batch regardless of the other
// operand's exact length. A native-circular plan has no such slack: its
// wraparound is exact only at one size, so it must match p.fftSize
// precisely.
func (p *PreprocessedPoly) sizeFor(plan *Plan) (int, bool) {
	if !p.preFFT {
		return 0, false
	}
	if plan.NativeCircular {
		return p.fftSize, p.fftSize == plan.FFTSizeVal
	}
	return p.fftSize, p.fftSize >= plan.ConvLen
}
