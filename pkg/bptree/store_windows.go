//go:build windows

package bptree

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapPage reserves and commits one page via VirtualAlloc, the Windows
// counterpart to store_unix.go's anonymous mmap, mirroring the split the
// teacher keeps between pkg/pager's unix and windows backends.
func mmapPage() ([]byte, bool) {
	addr, err := windows.VirtualAlloc(0, pageSize, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, false
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), pageSize), true
}

func munmapPage(mem []byte) {
	if len(mem) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(&mem[0]))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
