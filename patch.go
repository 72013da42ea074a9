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

// UpdateGhostMulti patches the ghost's seven-pair payload in place: it
// reads and validates the existing ghost region, recomputes the count
// from table's entries, then rewrites the count byte at offset
// wire.GhostPayloadOffset and all seven pairs starting at
// wire.GhostPairsOffset. It never touches any byte at offset
// wire.GhostRegionSize or beyond. The patch is not atomic: a failure
// partway through the pair write leaves the ghost in an undefined state.
func UpdateGhostMulti(path string, table MetaTable) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}

	head := make([]byte, wire.GhostRegionSize)
	if _, err := io.ReadFull(f, head); err != nil {
		f.Close()
		return fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}
	if !wire.ValidateGhostRegion(head) {
		f.Close()
		return ErrInvalidGhost
	}

	offsets, lengths := table.offsetsAndLengths()
	count := wire.DeriveCount(offsets, lengths)

	if _, err := f.WriteAt([]byte{count}, wire.GhostPayloadOffset); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}
	if _, err := f.WriteAt(wire.EncodeGhostPatch(offsets, lengths), wire.GhostPairsOffset); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, path, err)
	}
	return nil
}

// UpdateGhost is the single-pair shorthand for UpdateGhostMulti: it patches
// entry[0], preserves entries[1..7] by reading the current table first,
// then recomputes count over the merged result.
func UpdateGhost(path string, offset, length uint64) error {
	table, err := ReadGhostMulti(path)
	if err != nil {
		return err
	}
	table.Entries[0] = MetaEntry{Offset: offset, Length: length}
	return UpdateGhostMulti(path, table)
}
