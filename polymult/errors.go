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

import "fmt"

// ErrKind classifies an Error per spec.md §7's error taxonomy: a caller
// can recover from a Configuration or Resource error, but a Contract
// violation indicates a programming mistake and is only ever surfaced
// through panic, never returned.
type ErrKind int

const (
	// ErrConfiguration marks a rejected combination of options (e.g.
	// MULMID outside PolymultSeveral).
	ErrConfiguration ErrKind = iota
	// ErrResource marks an allocation or thread-budget failure.
	ErrResource
)

// Error is the error type every polymult entrypoint returns.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrResource:
		return fmt.Sprintf("polymult: resource error: %s", e.Message)
	default:
		return fmt.Sprintf("polymult: configuration error: %s", e.Message)
	}
}

// contractViolation panics for a spec.md §7 "Contract violation": a
// caller-side bug (coefficients of mismatched width, or PolymultSeveral
// given unequal input and output counts) that no return value should
// paper over.
func contractViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("polymult: contract violation: "+format, args...))
}
