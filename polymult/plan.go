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

// Algorithm identifies which kernel a Plan selected.
type Algorithm int

const (
	AlgoBrute Algorithm = iota
	AlgoKaratsuba
	AlgoFFT
)

func (a Algorithm) String() string {
	switch a {
	case AlgoBrute:
		return "brute"
	case AlgoKaratsuba:
		return "karatsuba"
	case AlgoFFT:
		return "fft"
	default:
		return "unknown"
	}
}

// Plan is the immutable per-call execution plan component G of spec.md
// §4 produces: which algorithm to run, at what sizes, and how to map
// the raw convolution back onto the caller's requested output window.
// A Plan holds no references into either operand; it is pure arithmetic
// over lengths and can be computed once and reused for repeated calls
// of the same shape. The entrypoints in api.go do not reuse one: each
// call builds its own.
type Plan struct {
	Options Options

	Algorithm  Algorithm
	N1, N2     int // effective operand lengths after Monic/RLP expansion
	ConvLen    int // N1 + N2 - 1, the natural full linear-convolution length
	FFTSizeVal int // valid only when Algorithm == AlgoFFT

	OutSize int // coefficients the caller receives
	Shift   int // index into the convolution (circularly reduced if Circular) where the output window starts

	CircularSize   int
	NativeCircular bool
	EmulateCircular bool
}

// BuildPlan runs the Planner: it resolves Options against the two
// operand polynomials and a requested output size into a concrete,
// validated Plan. several indicates the call came through
// PolymultSeveral, which relaxes the MULMID/CIRCULAR combination rules
// plain Polymult enforces.
func BuildPlan(h *Handle, in1, in2 Polynomial, outSize int, opt Options, several bool) (*Plan, error) {
	if err := opt.validate(several); err != nil {
		return nil, err
	}
	if opt.PreFFT || opt.PreCompress {
		return nil, &Error{Kind: ErrConfiguration, Message: "PreFFT/PreCompress are only valid via PolymultPreprocess"}
	}

	n1 := OperandLen(in1, opt.Invec1)
	n2 := OperandLen(in2, opt.Invec2)
	if n1 == 0 || n2 == 0 {
		return nil, &Error{Kind: ErrConfiguration, Message: "both operands must have at least one coefficient"}
	}
	convLen := n1 + n2 - 1

	circSize := opt.Circular.Size
	if opt.Circular.Enabled && circSize == 0 {
		circSize = outSize
		if circSize == 0 {
			circSize = convLen
		}
	}

	// The output window is taken from the circularly reduced product
	// when Circular is enabled, so it is measured against circSize.
	sliceLen := convLen
	if opt.Circular.Enabled {
		sliceLen = circSize
	}

	shift := 0
	effectiveOut := outSize
	switch opt.Tail {
	case TailFull:
		if effectiveOut == 0 {
			effectiveOut = sliceLen
		}
	case TailHi:
		if effectiveOut == 0 || effectiveOut > sliceLen {
			effectiveOut = sliceLen
		}
		shift = sliceLen - effectiveOut
	case TailLo:
		if effectiveOut == 0 || effectiveOut > sliceLen {
			effectiveOut = sliceLen
		}
		shift = 0
	case TailMid:
		if effectiveOut == 0 {
			return nil, &Error{Kind: ErrConfiguration, Message: "MULMID requires an explicit OutSize"}
		}
		shift = opt.FirstMulMid
		if shift < 0 || shift+effectiveOut > sliceLen {
			return nil, &Error{Kind: ErrConfiguration, Message: "MULMID window falls outside the convolution"}
		}
	}

	alg := chooseAlgorithm(h, n1, n2)
	var fftSizeVal int
	if alg == AlgoFFT {
		target := convLen
		if opt.Circular.Enabled && circSize > target {
			target = circSize
		}
		fftSizeVal = fftSize(target)
	}

	native := false
	emulate := false
	if opt.Circular.Enabled {
		if alg == AlgoFFT && fftSizeVal == circSize {
			native = true
		} else {
			emulate = true
		}
	}

	return &Plan{
		Options:         opt,
		Algorithm:       alg,
		N1:              n1,
		N2:              n2,
		ConvLen:         convLen,
		FFTSizeVal:      fftSizeVal,
		OutSize:         effectiveOut,
		Shift:           shift,
		CircularSize:    circSize,
		NativeCircular:  native,
		EmulateCircular: emulate,
	}, nil
}

// chooseAlgorithm picks brute force, Karatsuba or the poly-FFT kernel
// by operand size against the Handle's breakpoints, per spec.md §3's
// KARAT_BREAK/FFT_BREAK.
func chooseAlgorithm(h *Handle, n1, n2 int) Algorithm {
	n := max(n1, n2)
	switch {
	case n >= h.FFTBreak:
		return AlgoFFT
	case n >= h.KaratBreak:
		return AlgoKaratsuba
	default:
		return AlgoBrute
	}
}
