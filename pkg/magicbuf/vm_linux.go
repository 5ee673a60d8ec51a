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

//go:build linux

package magicbuf

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func platformMinLen() int {
	return unix.Getpagesize()
}

// anonMemFD returns a file descriptor backing n bytes of anonymous,
// shareable memory. It prefers memfd_create and falls back to a temp file
// that is unlinked immediately, for kernels that predate memfd_create
// (ENOSYS).
func anonMemFD(n int) (int, error) {
	fd, err := unix.MemfdCreate("magicbuf", 0)
	if err == nil {
		return fd, nil
	}
	if err != unix.ENOSYS {
		return -1, err
	}

	f, terr := os.CreateTemp("", "magicbuf-*")
	if terr != nil {
		return -1, terr
	}
	name := f.Name()
	dupfd, derr := unix.Dup(int(f.Fd()))
	f.Close()
	os.Remove(name)
	if derr != nil {
		return -1, derr
	}
	return dupfd, nil
}

// mmapFixed maps length bytes of fd at the caller-chosen address addr,
// overwriting whatever was already reserved there (MAP_FIXED). This goes
// through the raw syscall because unix.Mmap never accepts a caller-supplied
// address.
func mmapFixed(addr uintptr, length int, fd int) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		uintptr(length),
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_SHARED|unix.MAP_FIXED),
		uintptr(fd),
		0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}

func platformAlloc(n int) (unsafe.Pointer, error) {
	fd, err := anonMemFD(n)
	if err != nil {
		return nil, &OOMError{Op: "memfd_create", Err: err}
	}

	if err := unix.Ftruncate(fd, int64(n)); err != nil {
		unix.Close(fd)
		return nil, &OOMError{Op: "ftruncate", Err: err}
	}

	full, err := unix.Mmap(fd, 0, 2*n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, &OOMError{Op: "mmap", Err: err}
	}
	base := unsafe.Pointer(&full[0])

	if err := mmapFixed(uintptr(base)+uintptr(n), n, fd); err != nil {
		unix.Munmap(full)
		unix.Close(fd)
		return nil, &OOMError{Op: "mmap(MAP_FIXED)", Err: err}
	}

	unix.Close(fd)
	return base, nil
}

func platformFree(base unsafe.Pointer, n int) {
	full := unsafe.Slice((*byte)(base), 2*n)
	if err := unix.Munmap(full); err != nil {
		panic("magicbuf: munmap failed, address space corrupted: " + err.Error())
	}
}
