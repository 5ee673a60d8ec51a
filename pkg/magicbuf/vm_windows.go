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

//go:build windows

package magicbuf

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// VirtualAlloc2 and MapViewOfFile3 (the placeholder-splitting APIs
// introduced in Windows 10 1803) are not wrapped by golang.org/x/sys/windows
// as of this module's dependency version. Reaching them through a LazyDLL
// is the standard ecosystem fallback for Win32 entry points the package
// hasn't caught up to yet.
var (
	modkernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAlloc2  = modkernel32.NewProc("VirtualAlloc2")
	procMapViewOfFile3 = modkernel32.NewProc("MapViewOfFile3")
)

const (
	memReserve             = 0x00002000
	memReservePlaceholder  = 0x00040000
	memReplacePlaceholder  = 0x00004000
	memPreservePlaceholder = 0x00000002
	memRelease             = 0x00008000
	pageNoAccess           = 0x01
	pageReadWrite          = 0x04
)

func platformMinLen() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	gran := int(info.AllocationGranularity)
	if page := int(info.PageSize); page > gran {
		gran = page
	}
	return gran
}

func virtualAlloc2(addr uintptr, size uintptr, allocType, protect uint32) (uintptr, error) {
	r1, _, err := procVirtualAlloc2.Call(
		0, // current process
		addr,
		size,
		uintptr(allocType),
		uintptr(protect),
		0, 0,
	)
	if r1 == 0 {
		return 0, err
	}
	return r1, nil
}

func mapViewOfFile3(h windows.Handle, addr uintptr, size uintptr, allocType uint32, protect uint32) (uintptr, error) {
	r1, _, err := procMapViewOfFile3.Call(
		uintptr(h),
		0, // current process
		addr,
		0, // file offset
		size,
		uintptr(allocType),
		uintptr(protect),
		0, 0,
	)
	if r1 == 0 {
		return 0, err
	}
	return r1, nil
}

// platformAlloc reserves a splittable 2N placeholder, cuts it in half at N,
// backs the lower half with a pageable section, and replaces both halves'
// placeholders with views of it.
func platformAlloc(n int) (unsafe.Pointer, error) {
	placeholder, err := virtualAlloc2(0, uintptr(2*n), memReserve|memReservePlaceholder, pageNoAccess)
	if err != nil {
		return nil, &OOMError{Op: "VirtualAlloc2", Err: err}
	}

	if err := windows.VirtualFree(placeholder, uintptr(n), memRelease|memPreservePlaceholder); err != nil {
		windows.VirtualFree(placeholder, 0, memRelease)
		return nil, &OOMError{Op: "VirtualFree(split)", Err: err}
	}

	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, pageReadWrite, 0, uint32(n), nil)
	if err != nil {
		windows.VirtualFree(placeholder, 0, memRelease)
		windows.VirtualFree(placeholder+uintptr(n), 0, memRelease)
		return nil, &OOMError{Op: "CreateFileMapping", Err: err}
	}
	defer windows.CloseHandle(h)

	view1, err := mapViewOfFile3(h, placeholder, uintptr(n), memReplacePlaceholder, pageReadWrite)
	if err != nil {
		windows.VirtualFree(placeholder, 0, memRelease)
		windows.VirtualFree(placeholder+uintptr(n), 0, memRelease)
		return nil, &OOMError{Op: "MapViewOfFile3(lower)", Err: err}
	}

	placeholder2 := placeholder + uintptr(n)
	view2, err := mapViewOfFile3(h, placeholder2, uintptr(n), memReplacePlaceholder, pageReadWrite)
	if err != nil {
		windows.UnmapViewOfFile(view1)
		windows.VirtualFree(placeholder2, 0, memRelease)
		return nil, &OOMError{Op: "MapViewOfFile3(upper)", Err: err}
	}
	_ = view2

	return unsafe.Pointer(view1), nil
}

func platformFree(base unsafe.Pointer, n int) {
	lower := uintptr(base)
	upper := lower + uintptr(n)
	if err := windows.UnmapViewOfFile(upper); err != nil {
		panic(fmt.Sprintf("magicbuf: UnmapViewOfFile(upper) failed, address space corrupted: %v", err))
	}
	if err := windows.UnmapViewOfFile(lower); err != nil {
		panic(fmt.Sprintf("magicbuf: UnmapViewOfFile(lower) failed, address space corrupted: %v", err))
	}
}
