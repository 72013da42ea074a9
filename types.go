// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import "github.com/tacofoundation/tacozip/internal/wire"

// MaxMetaEntries is the fixed cardinality of the ghost's metadata table.
const MaxMetaEntries = wire.GhostMaxEntries

// MetaEntry is a pointer to an external byte range: an absolute offset and
// a length. The pair (0, 0) is the sentinel for "unused slot".
type MetaEntry struct {
	Offset uint64
	Length uint64
}

// MetaTable is the fixed seven-slot ghost metadata table. Count is derived,
// never supplied directly: it is the index of the first (0, 0) slot
// scanning from zero, or MaxMetaEntries if every slot is populated. A
// (0, 0) sentinel followed by a non-zero pair is legal at the byte layout
// level but ends the valid prefix as far as Count is concerned; the
// trailing pair still round-trips verbatim.
type MetaTable struct {
	Entries [MaxMetaEntries]MetaEntry
	Count   uint8
}

// NewMetaTable derives Count from entries and returns the resulting table.
// The seven entries are stored and later written to disk exactly as given.
func NewMetaTable(entries [MaxMetaEntries]MetaEntry) MetaTable {
	offsets, lengths := splitEntries(entries)
	return MetaTable{Entries: entries, Count: wire.DeriveCount(offsets, lengths)}
}

func splitEntries(entries [MaxMetaEntries]MetaEntry) (offsets, lengths [MaxMetaEntries]uint64) {
	for i, e := range entries {
		offsets[i] = e.Offset
		lengths[i] = e.Length
	}
	return offsets, lengths
}

func (t MetaTable) offsetsAndLengths() (offsets, lengths [MaxMetaEntries]uint64) {
	return splitEntries(t.Entries)
}

// entryDescriptor is the in-memory record produced by the entry writer for
// later central directory emission. name is an owned copy; its lifetime
// runs through the central directory emitter.
type entryDescriptor struct {
	name             []byte
	gpFlags          uint16
	crc32            uint32
	compressedSize   uint64
	uncompressedSize uint64
	lfhOffset        uint64
}
