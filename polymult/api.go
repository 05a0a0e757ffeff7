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

import (
	"math"

	"github.com/cwilder/polymult/bignum"
)

// Init returns a ready-to-use Handle over engine, the entrypoint a
// caller starts from per spec.md §6.
func Init(engine *bignum.Engine) *Handle { return NewHandle(engine) }

// FFTSize returns the smallest poly-FFT size the kernel would pick for
// a linear convolution of length n, exposed so a caller can preflight
// memory and preprocessing decisions.
func FFTSize(n int) int { return fftSize(n) }

// SafetyMargin estimates the extra bits of per-digit headroom a
// convolution of n1-by-n2 coefficients needs above wordBits so that no
// accumulated partial sum in brute force, Karatsuba or the poly-FFT
// kernel overflows float64's 53-bit mantissa before a caller's engine
// normalizes it back down. The bound is the same one gwnum-style
// polynomial multipliers use: ceil(log2(min(n1, n2))) extra bits cover
// the worst-case digit fan-in of a convolution sum, and the result adds
// one bit more on top of that.
func SafetyMargin(n1, n2 int, wordBits uint) int {
	n := n1
	if n2 < n {
		n = n2
	}
	if n < 1 {
		n = 1
	}
	extra := int(math.Ceil(math.Log2(float64(n)))) + 1
	_ = wordBits
	return extra
}

// MemRequired estimates the bytes of Line-shaped working storage a
// polymult call of these operand lengths and per-coefficient word
// counts allocates: one float64 per digit for each of the two operands
// plus the output convolution buffer.
func MemRequired(n1, n2, numWords int) int64 {
	convLen := n1 + n2 - 1
	return int64(n1+n2+convLen) * int64(numWords) * 8
}

// LaunchHelpers and WaitOnHelpers expose h's helper pool directly, for
// callers that want to interleave their own work between dispatching
// lines and collecting them (spec.md §6).
func LaunchHelpers(h *Handle, numLines int, fn func(lineOffset int)) { h.pool.LaunchHelpers(numLines, fn) }
func WaitOnHelpers(h *Handle)                                        { h.pool.WaitOnHelpers() }

// checkUniformWidth verifies every non-nil coefficient across the given
// polynomials shares one NumWords, a spec.md §7 Contract the CORE
// relies on but never a caller-facing Configuration error: a mismatch
// here is a programming bug, not a legal-but-rejected input.
func checkUniformWidth(polys ...Polynomial) int {
	width := -1
	for _, p := range polys {
		for _, c := range p.Coeffs {
			if c == nil {
				continue
			}
			if width == -1 {
				width = c.NumWords()
			} else if c.NumWords() != width {
				contractViolation("mismatched coefficient width: got %d, want %d", c.NumWords(), width)
			}
		}
	}
	return width
}

// Polymult computes out = in1 * in2 (subject to opt) per spec.md §6's
// plain entrypoint. opt.FMA must be FMANone; use PolymultFMA otherwise.
func Polymult(h *Handle, in1, in2, out Polynomial, outSize int, opt Options) error {
	if opt.FMA != FMANone {
		return &Error{Kind: ErrConfiguration, Message: "use PolymultFMA for a non-trivial FMA mode"}
	}
	return polymultCore(h, in1, in2, Polynomial{}, out, outSize, opt, false)
}

// PolymultFMA computes out = (in1*in2) combined with f per opt.FMA,
// spec.md §6's fused multiply-add entrypoint.
func PolymultFMA(h *Handle, in1, in2, f, out Polynomial, outSize int, opt Options) error {
	if opt.FMA == FMANone {
		return &Error{Kind: ErrConfiguration, Message: "PolymultFMA requires a non-trivial FMA mode"}
	}
	return polymultCore(h, in1, in2, f, out, outSize, opt, false)
}

// Polymult2 multiplies in1 against two different second operands in one
// call. When both products independently plan to use the poly-FFT
// kernel (and neither needs an exact-size native circular wrap), in1 is
// transformed exactly once via Preprocess/PolymultPreprocess and that
// single transform is reused for both products; otherwise there is no
// transform to share (brute force and Karatsuba have no persistent
// per-operand state) and Polymult2 falls back to two independent calls.
func Polymult2(h *Handle, in1, in2a, in2b, outA, outB Polynomial, outSize int, opt Options) error {
	checkUniformWidth(in1, in2a, in2b, outA, outB)

	planA, err := BuildPlan(h, in1, in2a, outSize, opt, false)
	if err != nil {
		return err
	}
	planB, err := BuildPlan(h, in1, in2b, outSize, opt, false)
	if err != nil {
		return err
	}

	if planA.Algorithm != AlgoFFT || planB.Algorithm != AlgoFFT || planA.NativeCircular || planB.NativeCircular {
		if err := Polymult(h, in1, in2a, outA, outSize, opt); err != nil {
			return err
		}
		return Polymult(h, in1, in2b, outB, outSize, opt)
	}

	size := planA.FFTSizeVal
	if planB.FFTSizeVal > size {
		size = planB.FFTSizeVal
	}
	pre, err := Preprocess(h, in1, opt.Invec1, size, Options{PreFFT: true})
	if err != nil {
		return err
	}
	if err := PolymultPreprocess(h, pre, in2a, outA, outSize, opt); err != nil {
		return err
	}
	return PolymultPreprocess(h, pre, in2b, outB, outSize, opt)
}

// PolymultSeveral multiplies in1 against every entry of ins, writing to
// the corresponding entry of outs, under the relaxed MULMID/CIRCULAR
// combination rules spec.md §6 grants this variant. When every product
// plans to use the poly-FFT kernel at a non-native-circular size, in1 is
// transformed exactly once (sized to cover the largest of the batch) and
// that single transform is shared across the whole batch via
// PolymultPreprocess; otherwise it falls back to multiplying each entry
// independently, since brute force and Karatsuba hold no per-operand
// state worth sharing.
func PolymultSeveral(h *Handle, in1 Polynomial, ins []Polynomial, outs []Polynomial, outSize int, opt Options) error {
	if len(ins) != len(outs) {
		contractViolation("PolymultSeveral: %d inputs but %d outputs", len(ins), len(outs))
	}
	if len(ins) == 0 {
		return nil
	}

	plans := make([]*Plan, len(ins))
	shareable := true
	maxSize := 0
	for i, in2 := range ins {
		p, err := BuildPlan(h, in1, in2, outSize, opt, true)
		if err != nil {
			return err
		}
		plans[i] = p
		if p.Algorithm != AlgoFFT || p.NativeCircular {
			shareable = false
		}
		if p.FFTSizeVal > maxSize {
			maxSize = p.FFTSizeVal
		}
	}

	if !shareable {
		for i := range ins {
			if err := polymultCore(h, in1, ins[i], Polynomial{}, outs[i], outSize, opt, true); err != nil {
				return err
			}
		}
		return nil
	}

	pre, err := Preprocess(h, in1, opt.Invec1, maxSize, Options{PreFFT: true})
	if err != nil {
		return err
	}
	for i := range ins {
		if err := PolymultPreprocess(h, pre, ins[i], outs[i], outSize, opt); err != nil {
			return err
		}
	}
	return nil
}

// PolymultPreprocess multiplies a PreprocessedPoly by in2, reusing pre's
// already-transformed representation instead of re-reading and
// re-transforming in1's raw coefficients. A linear (non-circular) plan
// only needs pre's transform size to be at least the true convolution
// length (zero-padding further out changes nothing), so one
// PreprocessedPoly built generously up front — as Polymult2 and
// PolymultSeveral do — can serve many calls against different in2
// lengths; a native-circular plan has no such slack and must match
// pre's size exactly. Either way, a plan pre cannot serve is a
// Configuration error; the caller should build a fresh PreprocessedPoly
// at the size it actually needs.
func PolymultPreprocess(h *Handle, pre *PreprocessedPoly, in2 Polynomial, out Polynomial, outSize int, opt Options) error {
	checkUniformWidth(in2, out)
	dummy := Polynomial{Coeffs: make([]*bignum.Coefficient, pre.n)}
	// dummy's length already equals pre's effective length (Monic/RLP
	// were applied once, at Preprocess time), so the plan is built with
	// a neutral Invec1 to avoid applying those adjustments twice.
	planOpt := opt
	planOpt.Invec1 = VectorOptions{}
	plan, err := BuildPlan(h, dummy, in2, outSize, planOpt, false)
	if err != nil {
		return err
	}
	size, ok := pre.sizeFor(plan)
	if plan.Algorithm != AlgoFFT || !ok {
		return &Error{Kind: ErrConfiguration, Message: "preprocessed operand is incompatible with the chosen plan"}
	}

	numLines := len(pre.transLines)
	tbl := h.twiddle.Ensure(size)
	h.pool.Run(numLines, func(lo int) {
		in1T := pre.transLines[lo]
		in2Lines := ReadOperandLines(in2, opt.Invec2, lo)
		buf := make([]ComplexLine, size)
		for i, l := range in2Lines {
			buf[i] = ComplexLine{Re: l}
		}
		fftInPlace(buf, 1, false, tbl)
		for i := range buf {
			buf[i] = buf[i].MulLine(in1T[i])
		}
		fftInPlace(buf, 1, true, tbl)
		scale := 1.0 / float64(size)
		conv := make([]Line, size)
		for i := range conv {
			conv[i] = buf[i].Scale(scale).Re
		}
		if plan.EmulateCircular {
			conv = emulateCircularReduce(conv, plan.CircularSize)
		}
		writeOutputWindow(out, conv, plan, lo)
		if h.Callback != nil {
			h.Callback(lo, numLines)
		}
	})

	finalizeOutputs(h.Engine, out, opt.Post)
	return nil
}

func polymultCore(h *Handle, in1, in2, fma, out Polynomial, outSize int, opt Options, several bool) error {
	checkUniformWidth(in1, in2, out, fma)
	plan, err := BuildPlan(h, in1, in2, outSize, opt, several)
	if err != nil {
		return err
	}

	numLines := coefficientLines(in1)
	if numLines == 0 {
		numLines = coefficientLines(in2)
	}
	if numLines == 0 {
		return &Error{Kind: ErrConfiguration, Message: "operands carry no coefficient width to derive line count from"}
	}

	h.pool.Run(numLines, func(lo int) {
		in1Lines := ReadOperandLines(in1, opt.Invec1, lo)
		in2Lines := ReadOperandLines(in2, opt.Invec2, lo)

		var conv []Line
		switch plan.Algorithm {
		case AlgoBrute:
			conv = bruteConvolveLine(in1Lines, in2Lines, plan.ConvLen)
		case AlgoKaratsuba:
			conv = karatsubaConvolveLine(in1Lines, in2Lines, plan.ConvLen, h.KaratBreak)
		case AlgoFFT:
			full := polyFFTConvolveLine(in1Lines, in2Lines, plan.FFTSizeVal, h.twiddle)
			conv = full[:plan.ConvLen]
		}

		if plan.EmulateCircular {
			conv = emulateCircularReduce(conv, plan.CircularSize)
		}

		for k := 0; k < plan.OutSize; k++ {
			idx := plan.Shift + k
			var val Line
			if idx >= 0 && idx < len(conv) {
				val = conv[idx]
			}
			if plan.Options.FMA != FMANone && k < fma.Len() {
				f := ReadLine(fma.Coeffs[k], lo)
				switch plan.Options.FMA {
				case FMAAdd:
					val = val.Add(f)
				case FMASub:
					val = val.Sub(f)
				case FMANegAdd:
					val = f.Sub(val)
				}
			}
			if k < out.Len() {
				WriteLine(out.Coeffs[k], lo, val)
			}
		}

		if h.Callback != nil {
			h.Callback(lo, numLines)
		}
	})

	finalizeOutputs(h.Engine, out, opt.Post)
	return nil
}

// emulateCircularReduce wraps a linear convolution of length len(conv)
// down to a ring of the given size by summing aliased indices, the
// emulate_circular post-pass spec.md §4.F describes for algorithms that
// have no native negacyclic/cyclic mode at this size.
func emulateCircularReduce(conv []Line, size int) []Line {
	if size <= 0 || size >= len(conv) {
		out := make([]Line, size)
		copy(out, conv)
		return out
	}
	out := make([]Line, size)
	for i, l := range conv {
		out[i%size] = out[i%size].Add(l)
	}
	return out
}

func writeOutputWindow(out Polynomial, conv []Line, plan *Plan, lo int) {
	for k := 0; k < plan.OutSize; k++ {
		idx := plan.Shift + k
		var val Line
		if idx >= 0 && idx < len(conv) {
			val = conv[idx]
		}
		if k < out.Len() {
			WriteLine(out.Coeffs[k], lo, val)
		}
	}
}

func finalizeOutputs(e *bignum.Engine, out Polynomial, post PostTransform) {
	for _, c := range out.Coeffs {
		FinalizeCoefficient(e, c, post)
	}
}
