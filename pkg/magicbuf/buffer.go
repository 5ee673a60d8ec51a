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
	"runtime"
	"sync/atomic"
	"unsafe"
)

// Buffer is the sole owner of one double mapping: base and base+len alias
// the same N bytes of physical storage, so any address in [base, base+2N)
// is legally readable and writable. A zero Buffer is not valid; obtain one
// from New.
//
// A *Buffer may be passed between goroutines freely. Concurrent read-only
// access from multiple goroutines is safe. Concurrent mutation is not
// coordinated by Buffer itself; see the package doc.
type Buffer struct {
	base unsafe.Pointer
	len  int
	mask int

	closed atomic.Bool
}

// New allocates a magic buffer of length n. n must be a positive power of
// two that is a multiple of MinLen(); otherwise New returns an
// *InvalidLenError. If the operating system refuses to satisfy the
// underlying reservation, mapping, or section steps, New returns an
// *OOMError and leaves no partial state behind.
func New(n int) (*Buffer, error) {
	if err := validate(n); err != nil {
		return nil, err
	}

	base, err := platformAlloc(n)
	if err != nil {
		return nil, err
	}

	b := &Buffer{
		base: base,
		len:  n,
		mask: n - 1,
	}
	runtime.SetFinalizer(b, (*Buffer).finalize)
	return b, nil
}

// Len returns N, the logical ring length in bytes.
func (b *Buffer) Len() int { return b.len }

// Close unmaps the full 2N region and releases any retained OS resource.
// Close is idempotent: calling it more than once is a no-op after the
// first call. An internal teardown failure is a contract violation, not a
// reportable error: Close never returns a non-nil error on the paths that
// can actually occur at runtime. The return value exists to satisfy
// io.Closer.
func (b *Buffer) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(b, nil)
	platformFree(b.base, b.len)
	return nil
}

// finalize is armed by New and disarmed by Close. Reaching it means a
// Buffer was garbage-collected without being closed, which leaks the
// underlying mapping; that is reported (not silently ignored) because a
// leaked mapping can shadow a later allocation at the same address.
func (b *Buffer) finalize() {
	if b.closed.CompareAndSwap(false, true) {
		logWarn(map[string]interface{}{"len": b.len}, "magicbuf: Buffer garbage-collected without Close, unmapping from finalizer")
		platformFree(b.base, b.len)
	}
}

// Ptr returns a raw pointer to the buffer at offset, reduced modulo N
// before use. The pointer may be advanced by up to N bytes and remains
// within the mapping for the lifetime of the Buffer. Callers must not
// retain the pointer past a call to Close. Intended for read-oriented
// zero-copy I/O (e.g. the read half of a scatter-gather syscall); the
// returned pointer is, like the rest of this package's raw escape hatches,
// not actually protected against writes by the runtime.
func (b *Buffer) Ptr(offset int) unsafe.Pointer {
	return unsafe.Add(b.base, reduceIndex(offset, b.len, b.mask))
}

// PtrMut returns a raw, mutable pointer to the buffer at offset, reduced
// modulo N before use, for the write half of zero-copy I/O. See Ptr.
func (b *Buffer) PtrMut(offset int) unsafe.Pointer {
	return unsafe.Add(b.base, reduceIndex(offset, b.len, b.mask))
}
