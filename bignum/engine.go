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

// Package bignum is a minimal stand-in for the large-integer modular
// arithmetic engine that polymult's CORE treats as an external
// collaborator. The real engine (its own forward/inverse per-coefficient
// transform, its choice of FFT/NTT, its carry normalization) is explicitly
// out of scope for the CORE; this package exists only to give the CORE
// something real to multiply and the test suite something to check
// results against.
//
// A Coefficient stores its value as a fixed-width array of float64 digits
// in base 2^WordBits — the "per-word transform" the CORE's Line type reads
// raw slices from. Digit-array convolution (what brute force, Karatsuba
// and the poly-FFT kernel all compute) is exact even when intermediate
// digits exceed the base, because summing digit*base^k with ordinary
// arithmetic never loses value; only recovering a canonical digit
// representation needs carry propagation, which real engines do inside
// Inverse and which this stand-in does not need for correctness checks.
package bignum

import (
	"fmt"
	"math"
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// Engine fixes the digit base used to decompose big integers into
// Coefficient buffers. One Engine is normally shared by every Coefficient
// passed to a single polymult call.
type Engine struct {
	// WordBits is the number of bits per digit. Digits are always held as
	// float64 so that arbitrary line-kernel arithmetic (Karatsuba's
	// subtractions, the poly-FFT's twiddle-weighted sums) stays exact for
	// the word widths this package uses; 2^53 exactly representable
	// integers bounds WordBits well below the mantissa width even after
	// the O(n) accumulation a brute-force convolution performs.
	WordBits uint
}

// DefaultWordBits is small enough that a brute-force convolution of a few
// hundred coefficients never overflows float64's 53-bit mantissa.
const DefaultWordBits = 16

// NewEngine returns an Engine using DefaultWordBits.
func NewEngine() *Engine {
	return &Engine{WordBits: DefaultWordBits}
}

// Coefficient is an opaque big-number handle. The CORE never interprets
// its digits except through Engine operations or through Line, which
// aliases a raw 8-digit slice of digits.
type Coefficient struct {
	digits []float64
}

// NumWords reports the coefficient's digit-array width.
func (c *Coefficient) NumWords() int {
	if c == nil {
		return 0
	}
	return len(c.digits)
}

// Line returns the width-8 slice of digits at the given line offset,
// aliasing the coefficient's backing array. offset is a line index, not a
// digit index: digit range [offset*8, offset*8+8).
func (c *Coefficient) Line(offset int) []float64 {
	lo := offset * 8
	return c.digits[lo : lo+8]
}

// Zero allocates a zero-valued Coefficient with numWords digits. numWords
// must be a multiple of 8 (one polymult line is 8 digits wide).
func (e *Engine) Zero(numWords int) *Coefficient {
	if numWords%8 != 0 {
		panic(fmt.Sprintf("bignum: numWords %d is not a multiple of the 8-wide line", numWords))
	}
	return &Coefficient{digits: make([]float64, numWords)}
}

// FromBigInt decomposes v into a Coefficient with numWords base-2^WordBits
// digits, least-significant digit first. v must fit in numWords digits;
// FromBigInt panics otherwise (a contract violation per spec.md §7 —
// callers size numWords from the values they intend to load).
func (e *Engine) FromBigInt(v *big.Int, numWords int) *Coefficient {
	c := e.Zero(numWords)
	if v.Sign() == 0 {
		return c
	}
	neg := v.Sign() < 0
	mag := new(big.Int).Abs(v)
	mask := new(big.Int).Lsh(big.NewInt(1), e.WordBits)
	mask.Sub(mask, big.NewInt(1))
	tmp := new(big.Int).Set(mag)
	for i := 0; i < numWords; i++ {
		word := new(big.Int).And(tmp, mask)
		d := float64(word.Uint64())
		if neg {
			d = -d
		}
		c.digits[i] = d
		tmp.Rsh(tmp, e.WordBits)
	}
	if tmp.Sign() != 0 {
		panic(fmt.Sprintf("bignum: value does not fit in %d words of %d bits", numWords, e.WordBits))
	}
	return c
}

// FromInt64 is a convenience wrapper over FromBigInt for small literal
// test coefficients.
func (e *Engine) FromInt64(v int64, numWords int) *Coefficient {
	return e.FromBigInt(big.NewInt(v), numWords)
}

// BigInt reconstructs the integer value Σ digit_k * (2^WordBits)^k. It is
// exact even when individual digits are "dirty" (outside [0, 2^WordBits))
// because convolved digit arrays are: a linear combination of partial
// products still sums to the true product under any fixed weighting.
// Each digit is rounded to the nearest integer first, so the small
// floating-point error a poly-FFT convolution leaves in its digits does
// not change the reconstructed value.
func (c *Coefficient) BigInt(wordBits uint) *big.Int {
	total := new(big.Int)
	base := new(big.Int).Lsh(big.NewInt(1), wordBits)
	weight := big.NewInt(1)
	scratch := new(big.Int)
	for _, d := range c.digits {
		scratch.SetInt64(int64(math.Round(d)))
		scratch.Mul(scratch, weight)
		total.Add(total, scratch)
		weight.Mul(weight, base)
	}
	return total
}

// Forward and Inverse are the per-coefficient transform hooks spec.md §6
// requires of the external engine (forward/inverse transform, and a
// start-next-forward-transform hook used by POLYMULT_STARTNEXTFFT). The
// real engine's transform is explicitly out of scope (spec.md §1); this
// stand-in's domain is already the one the CORE's line kernels operate in,
// so both are identity operations that exist purely so call sites can
// invoke the contract at the right time without special-casing a stub
// engine.
func (e *Engine) Forward(c *Coefficient) {}

// Inverse is the dual of Forward. See Forward's comment.
func (e *Engine) Inverse(c *Coefficient) {}

// StartNextForward begins a fresh forward transform on c, used by
// POLYMULT_STARTNEXTFFT/NEXTFFT after an inverse transform during
// write-back. See Forward's comment on why this is a no-op here.
func (e *Engine) StartNextForward(c *Coefficient) {
	e.Forward(c)
}

// Add computes dst = a + b digit-wise on whole coefficients. The polymult
// package does not call it: its monic handling and circular wrap-around
// work on Lines.
func (e *Engine) Add(dst, a, b *Coefficient) {
	n := min(len(dst.digits), min(len(a.digits), len(b.digits)))
	for i := 0; i < n; i++ {
		dst.digits[i] = a.digits[i] + b.digits[i]
	}
}

// AddInto adds src into dst in place: dst += src.
func (e *Engine) AddInto(dst, src *Coefficient) {
	n := min(len(dst.digits), len(src.digits))
	for i := 0; i < n; i++ {
		dst.digits[i] += src.digits[i]
	}
}

// SubInto subtracts src from dst in place: dst -= src.
func (e *Engine) SubInto(dst, src *Coefficient) {
	n := min(len(dst.digits), len(src.digits))
	for i := 0; i < n; i++ {
		dst.digits[i] -= src.digits[i]
	}
}

// Multiply is a reference full-precision multiply of two coefficients'
// integer values, backed by bigfft's FFT-accelerated big.Int
// multiplication. polymult's line-parallel kernels never call this during
// a call — the entire purpose of the CORE is to avoid it — but it is the
// independent oracle the test suite checks polymult's digit-convolution
// output against. SafetyMargin and MemRequired do not call it.
func (e *Engine) Multiply(a, b *Coefficient, wordBits uint, outWords int) *Coefficient {
	av := a.BigInt(wordBits)
	bv := b.BigInt(wordBits)
	product := bigfft.Mul(av, bv)
	return e.FromBigInt(product, outWords)
}
