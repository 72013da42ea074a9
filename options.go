// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

// Option configures a Writer at construction time.
type Option func(*config)

type config struct {
	utf8Names      bool
	outputBufSize  int
	copyBufSize    int
	onEntryWritten func(name string, err error)
}

// Default sizes for the buffered sink and the per-session copy buffer, per
// the documented configuration flags.
const (
	defaultOutputBufSize = 4 << 20 // 4 MiB
	defaultCopyBufSize   = 1 << 20 // 1 MiB
)

func defaultConfig() config {
	return config{
		outputBufSize: defaultOutputBufSize,
		copyBufSize:   defaultCopyBufSize,
	}
}

// WithUTF8Names sets general-purpose bit 11 on every non-ghost entry,
// signaling that archive names are UTF-8. The caller warrants the
// encoding; tacozip never validates it. The ghost's own entry is never
// flagged this way, regardless of this option.
func WithUTF8Names() Option {
	return func(c *config) { c.utf8Names = true }
}

// WithOutputBufferSize sets the size of the buffered sink attached to the
// output file. Non-positive values are ignored and the default is kept.
func WithOutputBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.outputBufSize = n
		}
	}
}

// WithCopyBufferSize sets the size of the per-session scratch buffer
// reused across entries by the entry writer. Non-positive values are
// ignored and the default is kept.
func WithCopyBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.copyBufSize = n
		}
	}
}

// WithOnEntryWritten registers a callback invoked once per non-ghost
// entry, after that entry's data descriptor has been written. err is nil
// on success. The callback is never invoked for the ghost entry.
func WithOnEntryWritten(fn func(name string, err error)) Option {
	return func(c *config) { c.onEntryWritten = fn }
}
