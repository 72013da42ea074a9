//go:build !linux

package prealloc

import "os"

// reserve is a no-op outside Linux: tacozip has no grounded, dependency-
// backed preallocation syscall wrapper for other platforms in its
// retrieval pack, and per its own contract this step is a hint only.
func reserve(f *os.File, size int64) {}
