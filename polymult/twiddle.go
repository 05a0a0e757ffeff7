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
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// maxTwiddleCacheEntries bounds the twiddle cache at 40 distinct
// poly-FFT sizes per spec.md §3's Twiddle Cache description.
const maxTwiddleCacheEntries = 40

// TwiddleTable holds every sin/cos pair a poly-FFT of the given Size
// might need. roots is the full per-size root table the mixed-radix
// recursion in fft.go indexes into (exponents always reduce mod Size,
// so one table of this shape serves every recursive sub-transform);
// Radix3 and Radix45 hold the cube and fifth roots of unity. The
// recursion in fft.go takes every twiddle factor from roots and does not
// read Radix3 or Radix45.
type TwiddleTable struct {
	Size    int
	Radix3  [3]complex128
	Radix45 [5]complex128
	roots   []complex128
}

// root returns W_Size^exp, or its conjugate when inverse is true.
func (t *TwiddleTable) root(exp int, inverse bool) (re, im float64) {
	n := t.Size
	exp %= n
	if exp < 0 {
		exp += n
	}
	w := t.roots[exp]
	if inverse {
		return real(w), -imag(w)
	}
	return real(w), imag(w)
}

func buildTwiddleTable(size int) *TwiddleTable {
	t := &TwiddleTable{Size: size, roots: make([]complex128, size)}
	for k := 0; k < size; k++ {
		theta := -2 * math.Pi * float64(k) / float64(size)
		s, c := math.Sincos(theta)
		t.roots[k] = complex(c, s)
	}
	for k := 0; k < 3; k++ {
		theta := -2 * math.Pi * float64(k) / 3
		s, c := math.Sincos(theta)
		t.Radix3[k] = complex(c, s)
	}
	for k := 0; k < 5; k++ {
		theta := -2 * math.Pi * float64(k) / 5
		s, c := math.Sincos(theta)
		t.Radix45[k] = complex(c, s)
	}
	return t
}

// TwiddleCache memoizes TwiddleTable construction by poly-FFT size,
// capped at maxTwiddleCacheEntries and gated by SetAdditionsAllowed.
// No polymult entrypoint toggles the gate; only a caller of
// SetAdditionsAllowed does. Tables are immutable once built, so no
// goroutine ever observes a table mutate mid-use. Concurrent
// misses for the same size collapse into a single build via
// singleflight, per SPEC_FULL.md's DOMAIN STACK entry.
type TwiddleCache struct {
	mu       sync.RWMutex
	tables   map[int]*TwiddleTable
	allowAdd bool
	group    singleflight.Group
}

// NewTwiddleCache returns an empty cache with additions enabled.
func NewTwiddleCache() *TwiddleCache {
	return &TwiddleCache{tables: make(map[int]*TwiddleTable), allowAdd: true}
}

// SetAdditionsAllowed toggles whether Ensure may grow the cache. Misses
// are still built and returned when disabled; they are simply not
// retained.
func (tc *TwiddleCache) SetAdditionsAllowed(v bool) {
	tc.mu.Lock()
	tc.allowAdd = v
	tc.mu.Unlock()
}

// Ensure returns the TwiddleTable for size, building and (space
// permitting) caching it on first use.
func (tc *TwiddleCache) Ensure(size int) *TwiddleTable {
	tc.mu.RLock()
	if t, ok := tc.tables[size]; ok {
		tc.mu.RUnlock()
		return t
	}
	tc.mu.RUnlock()

	v, _, _ := tc.group.Do(strconv.Itoa(size), func() (interface{}, error) {
		tc.mu.RLock()
		if t, ok := tc.tables[size]; ok {
			tc.mu.RUnlock()
			return t, nil
		}
		tc.mu.RUnlock()

		t := buildTwiddleTable(size)
		tc.mu.Lock()
		if tc.allowAdd && len(tc.tables) < maxTwiddleCacheEntries {
			tc.tables[size] = t
		}
		tc.mu.Unlock()
		return t, nil
	})
	return v.(*TwiddleTable)
}

// Len reports how many tables are currently cached, for tests.
func (tc *TwiddleCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.tables)
}
