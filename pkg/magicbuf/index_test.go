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

import "testing"

func TestReduceIndexNonNegative(t *testing.T) {
	const n = 1024
	mask := n - 1
	cases := []struct{ i, want int }{
		{0, 0},
		{1, 1},
		{n - 1, n - 1},
		{n, 0},
		{n + 5, 5},
	}
	for _, c := range cases {
		if got := reduceIndex(c.i, n, mask); got != c.want {
			t.Errorf("reduceIndex(%d, %d, mask) = %d, want %d", c.i, n, got, c.want)
		}
	}
}

func TestWindowToAndInclusiveFormula(t *testing.T) {
	b := newTestBuffer(t)
	for i := 0; i < testLen; i++ {
		b.SetAt(i, byte(i%256))
	}

	// [..N+1] -> start = (N+1-N)&mask = 1, length N.
	s := b.WindowTo(testLen + 1)
	if len(s) != testLen {
		t.Fatalf("len(WindowTo(N+1)) = %d, want %d", len(s), testLen)
	}
	if s[0] != byte(1%256) {
		t.Fatalf("WindowTo(N+1)[0] = %d, want byte at logical offset 1", s[0])
	}

	// [..=N] -> start = (N-N+1)&mask = 1, length N.
	si := b.WindowToInclusive(testLen)
	if len(si) != testLen {
		t.Fatalf("len(WindowToInclusive(N)) = %d, want %d", len(si), testLen)
	}
	if si[0] != byte(1%256) {
		t.Fatalf("WindowToInclusive(N)[0] = %d, want byte at logical offset 1", si[0])
	}
}

func TestWindowFromFullRange(t *testing.T) {
	b := newTestBuffer(t)
	for i := 0; i < testLen; i++ {
		b.SetAt(i, byte(i%256))
	}
	s := b.WindowFrom(1)
	if len(s) != testLen {
		t.Fatalf("len(WindowFrom(1)) = %d, want %d", len(s), testLen)
	}
	if s[0] != byte(1%256) {
		t.Fatalf("WindowFrom(1)[0] = %d, want byte at logical offset 1", s[0])
	}
}
