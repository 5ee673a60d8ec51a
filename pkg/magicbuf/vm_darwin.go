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

//go:build darwin

package magicbuf

/*
#include <mach/mach.h>
#include <mach/mach_vm.h>
#include <mach/vm_map.h>
#include <mach/vm_page_size.h>

// go_vm_allocate wraps mach_vm_allocate so cgo doesn't need to deal with
// the *mach_vm_address_t in/out parameter directly from Go.
static kern_return_t go_vm_allocate(mach_vm_address_t *addr, mach_vm_size_t size, int flags) {
	return mach_vm_allocate(mach_task_self(), addr, size, flags);
}

static kern_return_t go_make_memory_entry(mach_vm_address_t addr, mach_vm_size_t size, mem_entry_name_port_t *handle) {
	memory_object_size_t entry_size = (memory_object_size_t)size;
	return mach_make_memory_entry_64(mach_task_self(), &entry_size, (memory_object_offset_t)addr,
		VM_PROT_READ | VM_PROT_WRITE, handle, MACH_PORT_NULL);
}

static kern_return_t go_vm_remap(mach_vm_address_t src, mach_vm_size_t size, mach_vm_address_t *dst) {
	vm_prot_t cur_prot, max_prot;
	return mach_vm_remap(mach_task_self(), dst, size, 0,
		VM_FLAGS_FIXED | VM_FLAGS_OVERWRITE, mach_task_self(), src, 0,
		&cur_prot, &max_prot, VM_INHERIT_NONE);
}

static kern_return_t go_vm_deallocate(mach_vm_address_t addr, mach_vm_size_t size) {
	return mach_vm_deallocate(mach_task_self(), addr, size);
}

static kern_return_t go_port_deallocate(mem_entry_name_port_t handle) {
	return mach_port_deallocate(mach_task_self(), handle);
}

static vm_size_t go_vm_page_size(void) {
	return vm_page_size;
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

func platformMinLen() int {
	return int(C.go_vm_page_size())
}

// platformAlloc reserves 2N anywhere, re-allocates the first N in place to
// get a nameable entry, creates a memory entry for those N bytes, then
// remaps the lower half's address range, shared rather than copied, onto
// the upper half. The remap takes the lower address range as its source;
// the memory entry is not passed to it and is released afterwards.
func platformAlloc(n int) (unsafe.Pointer, error) {
	var addr C.mach_vm_address_t
	size := C.mach_vm_size_t(n)

	if kr := C.go_vm_allocate(&addr, 2*size, C.VM_FLAGS_ANYWHERE); kr != C.KERN_SUCCESS {
		return nil, &OOMError{Op: "mach_vm_allocate", Err: krError(kr)}
	}

	if kr := C.go_vm_allocate(&addr, size, C.VM_FLAGS_FIXED|C.VM_FLAGS_OVERWRITE); kr != C.KERN_SUCCESS {
		C.go_vm_deallocate(addr, 2*size)
		return nil, &OOMError{Op: "mach_vm_allocate(fixed)", Err: krError(kr)}
	}

	var entry C.mem_entry_name_port_t
	if kr := C.go_make_memory_entry(addr, size, &entry); kr != C.KERN_SUCCESS {
		C.go_vm_deallocate(addr, 2*size)
		return nil, &OOMError{Op: "mach_make_memory_entry_64", Err: krError(kr)}
	}

	upper := addr + C.mach_vm_address_t(n)
	if kr := C.go_vm_remap(addr, size, &upper); kr != C.KERN_SUCCESS {
		C.go_port_deallocate(entry)
		C.go_vm_deallocate(addr, 2*size)
		return nil, &OOMError{Op: "mach_vm_remap", Err: krError(kr)}
	}

	C.go_port_deallocate(entry)
	return unsafe.Pointer(uintptr(addr)), nil
}

func platformFree(base unsafe.Pointer, n int) {
	addr := C.mach_vm_address_t(uintptr(base))
	if kr := C.go_vm_deallocate(addr, C.mach_vm_size_t(2*n)); kr != C.KERN_SUCCESS {
		panic(fmt.Sprintf("magicbuf: mach_vm_deallocate failed, address space corrupted: kern_return_t=%d", int(kr)))
	}
}

func krError(kr C.kern_return_t) error {
	return fmt.Errorf("kern_return_t=%d", int(kr))
}
