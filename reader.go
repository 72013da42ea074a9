// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import (
	"fmt"
	"io"
	"os"

	"github.com/tacofoundation/tacozip/internal/wire"
)

// ReadGhostMulti opens the archive at path and decodes its ghost payload.
// It is a pure decode of the first wire.GhostRegionSize bytes and never
// touches anything past them.
func ReadGhostMulti(path string) (MetaTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return MetaTable{}, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	buf := make([]byte, wire.GhostRegionSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return MetaTable{}, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}
	return decodeGhostRegion(buf)
}

// ReadGhost is the single-pair shorthand for ReadGhostMulti: it returns
// entry[0] of the decoded table.
func ReadGhost(path string) (MetaEntry, error) {
	table, err := ReadGhostMulti(path)
	if err != nil {
		return MetaEntry{}, err
	}
	return table.Entries[0], nil
}
