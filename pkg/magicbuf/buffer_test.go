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
	"testing"
	"unsafe"
)

const testLen = 1 << 16

func newTestBuffer(t *testing.T) *Buffer {
	t.Helper()
	b, err := New(testLen)
	if err != nil {
		t.Fatalf("New(%d) error = %v", testLen, err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestAliasLaw(t *testing.T) {
	b := newTestBuffer(t)
	for _, i := range []int{0, 1, testLen/2 - 1, testLen - 1} {
		const v = byte('v')
		b.SetAt(i, v)
		if got := b.At(i); got != v {
			t.Fatalf("At(%d) = %q, want %q", i, got, v)
		}
		if got := b.At(i + testLen); got != v {
			t.Fatalf("At(%d) = %q, want %q (wrap alias)", i+testLen, got, v)
		}

		const v2 = byte('w')
		b.SetAt(i+testLen, v2)
		if got := b.At(i); got != v2 {
			t.Fatalf("At(%d) = %q after writing at %d, want %q", i, got, i+testLen, v2)
		}
	}
}

func TestScenarioOffsetZeroAliasesOffsetN(t *testing.T) {
	b := newTestBuffer(t)
	b.SetAt(0, 'a')
	if got := b.At(testLen); got != 'a' {
		t.Fatalf("At(N) = %q, want 'a'", got)
	}
}

func TestNegativeIndexLaw(t *testing.T) {
	b := newTestBuffer(t)
	for i := 1; i <= testLen; i++ {
		want := testLen - (i % testLen)
		got := reduceIndex(-i, testLen, b.mask)
		if got != want {
			t.Fatalf("reduceIndex(-%d) = %d, want %d", i, got, want)
		}
	}
}

func TestScenarioNegativeOneAliasesLastByte(t *testing.T) {
	b := newTestBuffer(t)
	b.SetAt(-1, '2')
	if got := b.At(testLen - 1); got != '2' {
		t.Fatalf("At(N-1) = %q, want '2'", got)
	}
}

func TestNegativeIndexExactMultipleOfN(t *testing.T) {
	// At i == -N, the formula yields N, aliasing base+N rather than base+0.
	b := newTestBuffer(t)
	b.SetAt(0, 'z')
	if got := b.At(-testLen); got != 'z' {
		t.Fatalf("At(-N) = %q, want 'z' (aliases base+N == base+0's mirror)", got)
	}
}

func TestRawPointerFill(t *testing.T) {
	b := newTestBuffer(t)
	p := b.PtrMut(0)
	for i := 0; i < testLen; i++ {
		*(*byte)(unsafe.Add(p, i)) = byte(i % 256)
	}
	for i := 0; i < testLen; i++ {
		want := byte(i % 256)
		if got := b.At(i); got != want {
			t.Fatalf("At(%d) = %d, want %d", i, got, want)
		}
		if got := b.At(i + testLen); got != want {
			t.Fatalf("At(%d) = %d, want %d", i+testLen, got, want)
		}
	}
}

func TestWholeBufferViewsHaveLengthN(t *testing.T) {
	b := newTestBuffer(t)
	views := map[string][]byte{
		"Full":              b.Full(),
		"Window(0,N)":       b.Window(0, testLen),
		"WindowFrom(1)":     b.WindowFrom(1),
		"WindowToInclusive": b.WindowToInclusive(testLen),
		"Bytes":             b.Bytes(),
	}
	for name, v := range views {
		if len(v) != testLen {
			t.Errorf("%s length = %d, want %d", name, len(v), testLen)
		}
	}
}

func TestWrapAroundSlice(t *testing.T) {
	b := newTestBuffer(t)
	for i := 0; i < testLen; i++ {
		b.SetAt(i, byte(i%256))
	}
	half := testLen / 2
	s := b.WindowFrom(half)
	if len(s) != testLen {
		t.Fatalf("len(WindowFrom(N/2)) = %d, want %d", len(s), testLen)
	}
	for i := 0; i < half; i++ {
		if s[i] != byte((half+i)%256) {
			t.Fatalf("s[%d] = %d, want %d (second half of ring)", i, s[i], byte((half+i)%256))
		}
	}
	for i := 0; i < half; i++ {
		if s[half+i] != byte(i%256) {
			t.Fatalf("s[%d] = %d, want %d (first half of ring)", half+i, s[half+i], byte(i%256))
		}
	}
}

func TestOutOfBoundsHalfOpenRangePanics(t *testing.T) {
	b := newTestBuffer(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("Window(0, N+1) did not panic")
		}
	}()
	b.Window(0, testLen+1)
}

func TestReverseRangeIsEmpty(t *testing.T) {
	b := newTestBuffer(t)
	s := b.Window(100, 50)
	if len(s) != 0 {
		t.Fatalf("Window(100, 50) length = %d, want 0", len(s))
	}
}

func TestLifecycleNewDropNewAgain(t *testing.T) {
	b1, err := New(testLen)
	if err != nil {
		t.Fatalf("first New error = %v", err)
	}
	base1 := b1.base
	if err := b1.Close(); err != nil {
		t.Fatalf("first Close error = %v", err)
	}

	b2, err := New(testLen)
	if err != nil {
		t.Fatalf("second New error = %v", err)
	}
	defer b2.Close()
	_ = base1 // base addresses may or may not coincide; not asserted.
}

func TestCloseIsIdempotent(t *testing.T) {
	b, err := New(testLen)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("first Close error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close error = %v", err)
	}
}
