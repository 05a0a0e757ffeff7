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
	"runtime"

	"github.com/cwilder/polymult/bignum"
)

// Default breakpoints (in operand coefficient count) below which a
// smaller algorithm beats the next one up. These mirror spec.md §3's
// KARAT_BREAK/FFT_BREAK fields in spirit; a real deployment would tune
// them from measurement the way the teacher's dispatch layer tunes SIMD
// width from CPU features, but a fixed default is adequate for a
// library whose kernels are all O matched asymptotically far below
// the sizes where the constant factors start to matter for this
// module's purposes.
const (
	DefaultKaratBreak = 32
	DefaultFFTBreak   = 512
)

// Handle is the long-lived configuration object every CORE entrypoint
// takes, the analog of spec.md §3's Handle: an engine reference, a
// thread budget, algorithm breakpoints, a target cache size and an
// optional progress callback. One Handle is normally created at startup
// and reused for every polymult call, the way the teacher's
// hwy.DispatchLevel is resolved once and read by every vector op.
type Handle struct {
	Engine *bignum.Engine

	KaratBreak int
	FFTBreak   int

	// CacheSizeBytes records the target cache footprint set by
	// SetCacheSize. No planner, kernel or helper-pool code reads it: it
	// affects neither how lines are dispatched nor the poly-FFT size.
	CacheSizeBytes int

	// Callback, if non-nil, is invoked once per completed line during a
	// polymult call, letting a caller report progress on large FFT
	// convolutions the way spec.md §3 describes an optional user
	// callback hook.
	Callback func(lineOffset, numLines int)

	pool    *HelperPool
	twiddle *TwiddleCache
}

// NewHandle returns a Handle configured for runtime.NumCPU helper
// threads and the package's default breakpoints, mirroring
// hwy/dispatch_other.go's pattern of autodetecting a usable default
// from the runtime rather than requiring the caller to supply one.
func NewHandle(engine *bignum.Engine) *Handle {
	h := &Handle{
		Engine:         engine,
		KaratBreak:     DefaultKaratBreak,
		FFTBreak:       DefaultFFTBreak,
		CacheSizeBytes: 256 * 1024,
		twiddle:        NewTwiddleCache(),
	}
	h.pool = NewHelperPool(runtime.NumCPU())
	return h
}

// SetMaxNumThreads resizes the helper pool. It is safe to call between
// polymult calls but not concurrently with one in flight.
func (h *Handle) SetMaxNumThreads(n int) {
	if n < 1 {
		n = 1
	}
	if h.pool != nil {
		h.pool.Close()
	}
	h.pool = NewHelperPool(n)
}

// SetNumThreads is an alias SPEC_FULL.md carries from spec.md §6's
// naming alongside SetMaxNumThreads; both resize the same pool.
func (h *Handle) SetNumThreads(n int) { h.SetMaxNumThreads(n) }

// SetCacheSize updates the target cache footprint stored in
// CacheSizeBytes (see that field: nothing else reads it).
func (h *Handle) SetCacheSize(bytes int) { h.CacheSizeBytes = bytes }

// SetBreakpoints overrides the algorithm-selection breakpoints the
// Planner consults.
func (h *Handle) SetBreakpoints(karat, fft int) {
	h.KaratBreak = karat
	h.FFTBreak = fft
}

// Done releases the Handle's helper pool. A Handle must not be used
// after Done.
func (h *Handle) Done() {
	if h.pool != nil {
		h.pool.Close()
		h.pool = nil
	}
}

// Pool exposes the Handle's helper pool for direct LaunchHelpers/
// WaitOnHelpers use by callers that want to interleave their own work
// between dispatch and collection, per spec.md §6's public API.
func (h *Handle) Pool() *HelperPool { return h.pool }

// TwiddleCacheLen reports how many poly-FFT sizes are currently cached,
// exposed for tests and for a CLI diagnostic command.
func (h *Handle) TwiddleCacheLen() int { return h.twiddle.Len() }
