//go:build linux

package prealloc

import (
	"os"

	"golang.org/x/sys/unix"
)

// reserve calls fallocate(2) starting at offset zero. FALLOC_FL_KEEP_SIZE
// is intentionally not set: tacozip wants the file's apparent size to grow
// with the reservation.
func reserve(f *os.File, size int64) {
	_ = unix.Fallocate(int(f.Fd()), 0, 0, size)
}
