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

import (
	"fmt"
	"unsafe"
)

// reduceIndex implements the scalar indexing convention: non-negative i
// reduces to i & mask; negative i aliases N - ((-i) & mask), which at
// i == -N evaluates to N itself, one past the logical end but still inside
// the double mapping. That aliasing is intentional and not "fixed" with an
// extra modulo here.
func reduceIndex(i, n, mask int) int {
	if i >= 0 {
		return i & mask
	}
	return n - ((-i) & mask)
}

// window returns the N-byte-or-shorter slice [base+start, base+start+length)
// as a Go []byte. Callers must have already established start+length <=
// 2*b.len; this function performs no bounds check of its own.
func (b *Buffer) window(start, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Add(b.base, start)), length)
}

// At returns the byte at logical position i. i may be negative; see
// reduceIndex.
func (b *Buffer) At(i int) byte {
	return *(*byte)(unsafe.Add(b.base, reduceIndex(i, b.len, b.mask)))
}

// SetAt writes v at logical position i. i may be negative; see
// reduceIndex. Because the buffer is doubly mapped, the write is
// immediately observable at i and i+N (or i-N), whichever lies on the
// other side of the mirror.
func (b *Buffer) SetAt(i int, v byte) {
	*(*byte)(unsafe.Add(b.base, reduceIndex(i, b.len, b.mask))) = v
}

// Window returns the half-open range [lo, hi). If lo > hi the result is
// the empty slice. If hi-lo exceeds N, Window panics: no double mapping
// can satisfy a window wider than N, so this is a programmer error rather
// than a recoverable condition.
func (b *Buffer) Window(lo, hi int) []byte {
	if lo > hi {
		return b.window(0, 0)
	}
	k := hi - lo
	if k > b.len {
		panic(fmt.Sprintf("magicbuf: window [%d, %d) of length %d exceeds buffer length %d", lo, hi, k, b.len))
	}
	return b.window(lo&b.mask, k)
}

// WindowTo returns the N-byte window ending at logical position hi, i.e.
// [hi-N, hi). Per DESIGN.md's Open Question decision, hi-N is only
// meaningful for hi >= N; callers must treat that as a precondition.
func (b *Buffer) WindowTo(hi int) []byte {
	return b.window((hi-b.len)&b.mask, b.len)
}

// WindowFrom returns the N-byte window starting at logical position lo,
// i.e. [lo, lo+N).
func (b *Buffer) WindowFrom(lo int) []byte {
	return b.window(lo&b.mask, b.len)
}

// WindowToInclusive returns the N-byte window ending at and including
// logical position hi, i.e. [hi-N+1, hi]. Same hi >= N-1 precondition as
// WindowTo.
func (b *Buffer) WindowToInclusive(hi int) []byte {
	return b.window((hi-b.len+1)&b.mask, b.len)
}

// Full returns the identity view: the N bytes starting at logical position
// 0.
func (b *Buffer) Full() []byte {
	return b.window(0, b.len)
}

// Bytes returns the whole-buffer view, equivalent to Full. It exists as a
// separate name for call sites that want to hand the buffer to an
// io.Writer or similar without the "window" framing.
func (b *Buffer) Bytes() []byte {
	return b.window(0, b.len)
}
