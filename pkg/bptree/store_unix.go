//go:build unix

package bptree

import "golang.org/x/sys/unix"

// mmapPage reserves one anonymous, process-private page. Grounded on
// pkg/pager/mmap_unix.go's use of golang.org/x/sys for the mapping and
// unix.Msync for durability; this store drops the file backing and the
// sync step entirely since nothing here is ever written to disk.
func mmapPage() ([]byte, bool) {
	mem, err := unix.Mmap(-1, 0, pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, false
	}
	return mem, true
}

func munmapPage(mem []byte) {
	_ = unix.Munmap(mem)
}
