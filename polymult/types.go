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

// Package polymult multiplies polynomials whose coefficients are opaque
// big-number handles from a companion big-number engine (package bignum),
// selecting among brute-force, Karatsuba and a poly-FFT kernel by size.
//
// Every option that spec.md's original bitmask packs into a single
// integer is represented here as a distinct, independently validated
// field on Options, per the REDESIGN FLAGS note that bitmask option sets
// with implicit combination rules should become an options struct.
package polymult

import "github.com/cwilder/polymult/bignum"

// Polynomial is an ordered sequence of Coefficient handles, lowest degree
// first. A nil entry means "this coefficient is absent" — on input, a
// structural zero; as an output slot, "discard this coefficient".
type Polynomial struct {
	Coeffs []*bignum.Coefficient
}

// Len reports the polynomial's stored length (not its mathematical
// degree, which may differ under Monic/RLP expansion).
func (p Polynomial) Len() int {
	return len(p.Coeffs)
}

// VectorOptions carries the per-input flags spec.md §6 groups as
// INVECn_MONIC / INVECn_RLP / INVECn_NEGATE.
type VectorOptions struct {
	// Monic means this input's true leading coefficient is an implied 1
	// that is omitted from Coeffs (stored length is one less than the
	// polynomial's mathematical degree span).
	Monic bool

	// RLP means this input is a reciprocal Laurent polynomial: the
	// coefficient at degree -k equals the one at degree +k. Coeffs stores
	// only the non-negative-degree half.
	RLP bool

	// Negate flips the sign of every loaded coefficient except an
	// implied Monic leading 1, which is never negated (spec.md §4.F).
	Negate bool
}

// TailMode selects which slice of the full product a call returns,
// replacing the MULHI/MULLO/MULMID bits.
type TailMode int

const (
	// TailFull returns the complete product (subject to OutSize).
	TailFull TailMode = iota
	// TailHi returns only the OutSize highest-degree coefficients.
	TailHi
	// TailLo returns only the OutSize lowest-degree coefficients.
	TailLo
	// TailMid returns a OutSize-wide slice starting FirstMulMid
	// coefficients above the lowest degree. Only valid via
	// PolymultSeveral, per spec.md §6's combination rule.
	TailMid
)

// CircularOptions configures reduction modulo (X^Size - 1).
type CircularOptions struct {
	Enabled bool
	// Size is the circular modulus. Zero means "use OutSize", the
	// plain-polymult convention; PolymultSeveral sets it explicitly.
	Size int
}

// FMAMode selects how an auxiliary polynomial combines with the product,
// replacing FMADD/FMSUB/FNMADD.
type FMAMode int

const (
	// FMANone performs a plain multiply with no combination.
	FMANone FMAMode = iota
	// FMAAdd computes result = a*b + f.
	FMAAdd
	// FMASub computes result = a*b - f.
	FMASub
	// FMANegAdd computes result = f - a*b.
	FMANegAdd
)

// PostTransform selects what happens to each output coefficient's
// internal buffer after the main multiply, replacing NO_UNFFT /
// STARTNEXTFFT / NEXTFFT.
type PostTransform int

const (
	// PostUnFFT applies the engine's inverse transform, leaving the
	// output coefficient in the engine's normal (non-transform) domain.
	// This is the default: a caller that does not pass NO_UNFFT expects
	// a usable coefficient back.
	PostUnFFT PostTransform = iota
	// PostNone leaves the output in the CORE's own working domain
	// (NO_UNFFT): useful when the result feeds directly into another
	// polymult call.
	PostNone
	// PostStartNextFFT applies the inverse transform and then begins a
	// fresh forward transform (STARTNEXTFFT).
	PostStartNextFFT
	// PostNextFFT is an alias spec.md §6 gives NEXTFFT; this module
	// treats it identically to PostStartNextFFT (both inverse the result
	// and begin a new forward transform).
	PostNextFFT
)

// Options bundles every per-call flag spec.md §6 enumerates.
type Options struct {
	Invec1 VectorOptions
	Invec2 VectorOptions

	Tail        TailMode
	FirstMulMid int // meaningful only when Tail == TailMid

	Circular CircularOptions

	FMA FMAMode

	Post PostTransform

	// PreFFT and PreCompress are preprocessing-only flags (component H);
	// they are rejected by the plain polymult entrypoints. PreCompress is
	// currently always rejected by Preprocess too: it has no pack/unpack
	// codec behind it yet (see DESIGN.md).
	PreFFT      bool
	PreCompress bool
}

// validate checks the combination rules spec.md §6 states explicitly:
// CIRCULAR combined with MULHI/MULLO is only legal through the several
// variant, and MULMID is only legal through the several variant.
func (o Options) validate(allowSeveralOnly bool) error {
	if o.Tail == TailMid && !allowSeveralOnly {
		return &Error{Kind: ErrConfiguration, Message: "MULMID is only valid via PolymultSeveral"}
	}
	if o.Circular.Enabled && (o.Tail == TailHi || o.Tail == TailLo) && !allowSeveralOnly {
		return &Error{Kind: ErrConfiguration, Message: "CIRCULAR combined with MULHI/MULLO is only valid via PolymultSeveral"}
	}
	return nil
}
