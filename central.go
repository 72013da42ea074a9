// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import "github.com/tacofoundation/tacozip/internal/wire"

// writeCentralDirectory emits one CDFH + ZIP64 extra field per descriptor,
// then the ZIP64 EOCD, the ZIP64 locator, and the classic EOCD with its
// unconditional truncation sentinels.
func writeCentralDirectory(cbw *countingWriter, descriptors []entryDescriptor) error {
	cdStart := cbw.count

	for _, d := range descriptors {
		hdr := wire.CentralDirHeader{
			GPFlags:    d.gpFlags,
			CRC32:      d.crc32,
			NameLength: uint16(len(d.name)),
		}
		if _, err := cbw.Write(hdr.Encode()); err != nil {
			return err
		}
		if _, err := cbw.Write(d.name); err != nil {
			return err
		}
		extra := wire.Zip64ExtraField{
			UncompressedSize:  d.uncompressedSize,
			CompressedSize:    d.compressedSize,
			LocalHeaderOffset: d.lfhOffset,
		}
		if _, err := cbw.Write(extra.Encode()); err != nil {
			return err
		}
	}

	cdSize := cbw.count - cdStart
	eocd64Offset := cbw.count

	eocd64 := wire.Zip64EndOfCentralDir{
		TotalEntries:     uint64(len(descriptors)),
		CentralDirSize:   cdSize,
		CentralDirOffset: cdStart,
	}
	if _, err := cbw.Write(eocd64.Encode()); err != nil {
		return err
	}

	locator := wire.Zip64Locator{Zip64EOCDOffset: eocd64Offset}
	if _, err := cbw.Write(locator.Encode()); err != nil {
		return err
	}

	if _, err := cbw.Write(wire.EndOfCentralDirectory()); err != nil {
		return err
	}
	return nil
}
