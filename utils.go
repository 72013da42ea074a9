// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import (
	"fmt"
	"io"
)

// countingWriter counts bytes written to a writer. The entry writer and
// the central directory emitter use its running count as "the current
// absolute offset in the output stream" — tacozip writes strictly
// sequentially, so a running counter stands in for a seek/tell pair.
type countingWriter struct {
	dest  io.Writer
	count uint64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.dest.Write(p)
	w.count += uint64(n)
	if err != nil {
		return n, fmt.Errorf("%w: write: %v", ErrIO, err)
	}
	return n, nil
}
