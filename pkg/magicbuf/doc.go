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

// Package magicbuf implements a "magic" (mirrored) ring buffer: a byte
// buffer of length N whose physical pages are mapped twice, contiguously,
// into the process's virtual address space. For any offset o in [0, N), the
// address range [base+o, base+o+N) is a fully readable/writable contiguous
// window over the ring, so wrap-around is resolved by the MMU rather than
// by the caller.
//
// The package is a passive storage primitive: it owns one double mapping
// per Buffer and exposes pure-arithmetic addressing on top of it. It does
// not implement head/tail discipline, blocking, or any I/O codec; those are
// the caller's concern.
package magicbuf
