// Copyright 2026 The magicbuf Authors.
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

package magicbuf

import "sync"

var (
	minLenOnce   sync.Once
	cachedMinLen int
)

// MinLen returns the platform allocation granularity: the smallest unit at
// which the operating system will map memory. It is a positive power of
// two and never changes within a process's lifetime, so the value is
// probed once and cached.
func MinLen() int {
	minLenOnce.Do(func() {
		cachedMinLen = platformMinLen()
	})
	return cachedMinLen
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// validate checks n against the three conditions a buffer length must
// satisfy, returning a descriptive *InvalidLenError identifying which
// condition failed.
func validate(n int) error {
	if n == 0 {
		return &InvalidLenError{Len: n, Reason: "length must be non-zero"}
	}
	if !isPowerOfTwo(n) {
		return &InvalidLenError{Len: n, Reason: "length must be a power of two"}
	}
	g := MinLen()
	if n%g != 0 {
		return &InvalidLenError{Len: n, Granularity: g, Reason: "length must be a multiple of the platform allocation granularity"}
	}
	return nil
}
