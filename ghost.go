// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import "github.com/tacofoundation/tacozip/internal/wire"

// encodeGhostRegion renders the full on-disk ghost: LFH, name, extra
// sub-header, and payload, derived from t's entries.
func encodeGhostRegion(t MetaTable) []byte {
	offsets, lengths := t.offsetsAndLengths()
	return wire.EncodeGhostRegion(offsets, lengths)
}

// decodeGhostRegion validates and decodes a GhostRegionSize-byte buffer
// read from the start of an archive.
func decodeGhostRegion(buf []byte) (MetaTable, error) {
	if !wire.ValidateGhostRegion(buf) {
		return MetaTable{}, ErrInvalidGhost
	}
	count, offsets, lengths := wire.DecodeGhostPayload(buf)
	var entries [MaxMetaEntries]MetaEntry
	for i := range entries {
		entries[i] = MetaEntry{Offset: offsets[i], Length: lengths[i]}
	}
	return MetaTable{Entries: entries, Count: count}, nil
}
