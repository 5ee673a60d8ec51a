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

//go:build !linux && !darwin && !windows

package magicbuf

import (
	"fmt"
	"runtime"
	"unsafe"
)

// platformMinLen returns a conservative default so MinLen() stays callable
// (and validate's modulo check stays meaningful) on GOOS values with no
// real backend below.
func platformMinLen() int {
	return 4096
}

func platformAlloc(n int) (unsafe.Pointer, error) {
	return nil, &OOMError{Op: "platformAlloc", Err: fmt.Errorf("no magicbuf backend for GOOS=%s", runtime.GOOS)}
}

func platformFree(base unsafe.Pointer, n int) {
	panic("magicbuf: platformFree called with no backend for GOOS=" + runtime.GOOS)
}
