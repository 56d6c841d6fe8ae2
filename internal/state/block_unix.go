//go:build unix

package state

import (
	"golang.org/x/sys/unix"
)

func allocate(size int) ([]byte, bool, error) {
	pageSize := unix.Getpagesize()
	allocSize := ((size + pageSize - 1) / pageSize) * pageSize

	mem, err := unix.Mmap(-1, 0, allocSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, false, err
	}
	return mem[:size], true, nil
}

func release(mem []byte) error {
	return unix.Munmap(mem[:cap(mem)])
}
