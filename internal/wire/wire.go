// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire encodes and decodes the fixed binary records that make up a
// tacozip archive: local file headers, ZIP64 data descriptors, central
// directory file headers with their ZIP64 extra fields, the ZIP64 end of
// central directory record and locator, the classic end of central
// directory record, and the TACO_GHOST payload. Every function here is a
// leaf: it reads or writes a fixed-size []byte and holds no archive-level
// state.
package wire

import "encoding/binary"

// Record signatures. Every ZIP structural record starts with the two-byte
// marker 0x4b50 ("PK").
const (
	SigLocalFileHeader  uint32 = 0x04034b50
	SigDataDescriptor   uint32 = 0x08074b50
	SigCentralDirectory uint32 = 0x02014b50
	SigZip64EOCD        uint32 = 0x06064b50
	SigZip64Locator     uint32 = 0x07064b50
	SigEOCD             uint32 = 0x06054b50
)

const (
	// VersionNeededZip64 is written into every local and central header;
	// tacozip always emits ZIP64 structures regardless of file size.
	VersionNeededZip64 uint16 = 45

	// VersionMadeBy is informational: host = 3 (Unix), spec version 3.0.
	VersionMadeBy uint16 = 0x031e

	// MethodStore is the only compression method tacozip ever writes.
	MethodStore uint16 = 0

	// GPFlagDataDescriptor marks that sizes and CRC-32 are unknown in the
	// local file header and follow in a trailing data descriptor.
	GPFlagDataDescriptor uint16 = 0x0008

	// GPFlagUTF8 marks that the archive name is UTF-8 encoded.
	GPFlagUTF8 uint16 = 0x0800
)

// Fixed record sizes, excluding variable-length names.
const (
	LocalFileHeaderSize  = 30
	DataDescriptorSize   = 24
	CentralDirHeaderSize = 46
	Zip64ExtraFieldSize  = 28
	Zip64EOCDSize        = 56
	Zip64LocatorSize     = 20
	EOCDSize             = 22
)

// LocalFileHeader is the 30-byte fixed prefix of a local file header. The
// archive name follows immediately in the output stream; tacozip never
// writes local extra fields for regular entries (sizes travel in the
// trailing data descriptor instead).
type LocalFileHeader struct {
	GPFlags        uint16
	NameLength     uint16
	CompressedSize uint32 // 0xFFFFFFFF sentinel when sizes are unknown (ZIP64 + data descriptor)
}

// Encode renders the fixed 30-byte local file header.
func (h LocalFileHeader) Encode() []byte {
	buf := make([]byte, LocalFileHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], SigLocalFileHeader)
	binary.LittleEndian.PutUint16(buf[4:6], VersionNeededZip64)
	binary.LittleEndian.PutUint16(buf[6:8], h.GPFlags)
	binary.LittleEndian.PutUint16(buf[8:10], MethodStore)
	binary.LittleEndian.PutUint16(buf[10:12], 0) // DOS time, zeroed for determinism
	binary.LittleEndian.PutUint16(buf[12:14], 0) // DOS date
	binary.LittleEndian.PutUint32(buf[14:18], 0) // CRC-32, unknown at header time
	binary.LittleEndian.PutUint32(buf[18:22], h.CompressedSize)
	binary.LittleEndian.PutUint32(buf[22:26], h.CompressedSize) // uncompressed == compressed sentinel
	binary.LittleEndian.PutUint16(buf[26:28], h.NameLength)
	binary.LittleEndian.PutUint16(buf[28:30], 0) // no local extra field
	return buf
}

// DataDescriptor is the 24-byte ZIP64 data descriptor written after an
// entry's raw bytes when sizes were unknown at header-write time.
type DataDescriptor struct {
	CRC32            uint32
	CompressedSize   uint64
	UncompressedSize uint64
}

// Encode renders the 24-byte ZIP64 data descriptor.
func (d DataDescriptor) Encode() []byte {
	buf := make([]byte, DataDescriptorSize)
	binary.LittleEndian.PutUint32(buf[0:4], SigDataDescriptor)
	binary.LittleEndian.PutUint32(buf[4:8], d.CRC32)
	binary.LittleEndian.PutUint64(buf[8:16], d.CompressedSize)
	binary.LittleEndian.PutUint64(buf[16:24], d.UncompressedSize)
	return buf
}

// CentralDirHeader is the 46-byte fixed prefix of a central directory file
// header. Sizes and the LFH offset always carry the ZIP64 0xFFFFFFFF
// sentinel; their real values live in the trailing ZIP64 extra field.
type CentralDirHeader struct {
	GPFlags    uint16
	CRC32      uint32
	NameLength uint16
}

// Encode renders the fixed 46-byte central directory file header.
func (h CentralDirHeader) Encode() []byte {
	buf := make([]byte, CentralDirHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], SigCentralDirectory)
	binary.LittleEndian.PutUint16(buf[4:6], VersionMadeBy)
	binary.LittleEndian.PutUint16(buf[6:8], VersionNeededZip64)
	binary.LittleEndian.PutUint16(buf[8:10], h.GPFlags)
	binary.LittleEndian.PutUint16(buf[10:12], MethodStore)
	binary.LittleEndian.PutUint16(buf[12:14], 0) // DOS time
	binary.LittleEndian.PutUint16(buf[14:16], 0) // DOS date
	binary.LittleEndian.PutUint32(buf[16:20], h.CRC32)
	binary.LittleEndian.PutUint32(buf[20:24], 0xFFFFFFFF) // compressed size (ZIP64 marker)
	binary.LittleEndian.PutUint32(buf[24:28], 0xFFFFFFFF) // uncompressed size (ZIP64 marker)
	binary.LittleEndian.PutUint16(buf[28:30], h.NameLength)
	binary.LittleEndian.PutUint16(buf[30:32], Zip64ExtraFieldSize)
	binary.LittleEndian.PutUint16(buf[32:34], 0) // comment length
	binary.LittleEndian.PutUint16(buf[34:36], 0) // disk number start
	binary.LittleEndian.PutUint16(buf[36:38], 0) // internal attributes
	binary.LittleEndian.PutUint32(buf[38:42], 0) // external attributes
	binary.LittleEndian.PutUint32(buf[42:46], 0xFFFFFFFF) // LFH offset (ZIP64 marker)
	return buf
}

// Zip64ExtraField is the 28-byte ZIP64 extra field trailing a central
// directory file header: tag 0x0001, size 24, then the true 64-bit sizes
// and local header offset.
type Zip64ExtraField struct {
	UncompressedSize  uint64
	CompressedSize    uint64
	LocalHeaderOffset uint64
}

// Encode renders the 28-byte ZIP64 extra field.
func (e Zip64ExtraField) Encode() []byte {
	buf := make([]byte, Zip64ExtraFieldSize)
	binary.LittleEndian.PutUint16(buf[0:2], 0x0001)
	binary.LittleEndian.PutUint16(buf[2:4], 24)
	binary.LittleEndian.PutUint64(buf[4:12], e.UncompressedSize)
	binary.LittleEndian.PutUint64(buf[12:20], e.CompressedSize)
	binary.LittleEndian.PutUint64(buf[20:28], e.LocalHeaderOffset)
	return buf
}

// Zip64EndOfCentralDir is the 56-byte ZIP64 end of central directory
// record: fixed 44-byte body plus the 12-byte signature/size prefix.
type Zip64EndOfCentralDir struct {
	TotalEntries     uint64
	CentralDirSize   uint64
	CentralDirOffset uint64
}

// Encode renders the 56-byte ZIP64 end of central directory record.
func (e Zip64EndOfCentralDir) Encode() []byte {
	buf := make([]byte, Zip64EOCDSize)
	binary.LittleEndian.PutUint32(buf[0:4], SigZip64EOCD)
	binary.LittleEndian.PutUint64(buf[4:12], 44) // size of the record that follows this field
	binary.LittleEndian.PutUint16(buf[12:14], VersionMadeBy)
	binary.LittleEndian.PutUint16(buf[14:16], VersionNeededZip64)
	binary.LittleEndian.PutUint32(buf[16:20], 0) // disk number
	binary.LittleEndian.PutUint32(buf[20:24], 0) // disk with central directory start
	binary.LittleEndian.PutUint64(buf[24:32], e.TotalEntries)
	binary.LittleEndian.PutUint64(buf[32:40], e.TotalEntries)
	binary.LittleEndian.PutUint64(buf[40:48], e.CentralDirSize)
	binary.LittleEndian.PutUint64(buf[48:56], e.CentralDirOffset)
	return buf
}

// Zip64Locator is the fixed 20-byte record pointing at the ZIP64 end of
// central directory record.
type Zip64Locator struct {
	Zip64EOCDOffset uint64
}

// Encode renders the 20-byte ZIP64 locator.
func (l Zip64Locator) Encode() []byte {
	buf := make([]byte, Zip64LocatorSize)
	binary.LittleEndian.PutUint32(buf[0:4], SigZip64Locator)
	binary.LittleEndian.PutUint32(buf[4:8], 0) // disk with the ZIP64 EOCD
	binary.LittleEndian.PutUint64(buf[8:16], l.Zip64EOCDOffset)
	binary.LittleEndian.PutUint32(buf[16:20], 1) // total number of disks
	return buf
}

// EndOfCentralDirectory renders the classic 22-byte EOCD record. Per the
// ZIP64 policy, its entry count and size/offset fields always carry the
// truncated sentinel maxima (0xFFFF / 0xFFFFFFFF), even when the true
// values would fit — the content is therefore constant.
func EndOfCentralDirectory() []byte {
	buf := make([]byte, EOCDSize)
	binary.LittleEndian.PutUint32(buf[0:4], SigEOCD)
	binary.LittleEndian.PutUint16(buf[4:6], 0)      // disk number
	binary.LittleEndian.PutUint16(buf[6:8], 0)      // disk with central directory start
	binary.LittleEndian.PutUint16(buf[8:10], 0xFFFF)
	binary.LittleEndian.PutUint16(buf[10:12], 0xFFFF)
	binary.LittleEndian.PutUint32(buf[12:16], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(buf[16:20], 0xFFFFFFFF)
	binary.LittleEndian.PutUint16(buf[20:22], 0) // comment length
	return buf
}

// Ghost record layout. The ghost is a regular ZIP entry pinned to absolute
// offset zero, named GhostName, whose local extra field carries the
// metadata table instead of file data.
const (
	GhostName       = "TACO_GHOST"
	GhostNameLen    = len(GhostName)
	GhostExtraID    uint16 = 0x7454
	GhostMaxEntries        = 7

	// ghostExtraDeclaredLen is the value written into both the LFH's own
	// extra-length field (bytes 28..30) and the extra sub-record's data-size
	// field (bytes 42..44). It equals the payload size (count + padding +
	// seven pairs), not the full 120-byte on-disk extra region including the
	// 4-byte id/size sub-header — a deliberately short declaration that the
	// ghost's fixed-layout contract requires literally.
	ghostExtraDeclaredLen = 116

	// GhostPayloadSize is the count/padding/pairs region: 1 + 3 + 7*16.
	GhostPayloadSize = 116

	// GhostRegionSize is the full on-disk footprint of the ghost: the
	// 30-byte LFH, the 10-byte name, the 4-byte extra id/size sub-header,
	// and the 116-byte payload.
	GhostRegionSize = LocalFileHeaderSize + GhostNameLen + 4 + GhostPayloadSize

	// ghostPayloadOffset is the absolute offset of the count byte, and
	// ghostPairsOffset the absolute offset of the first pair, within the
	// ghost region.
	ghostPayloadOffset = 44
	ghostPairsOffset   = 48
)

// DeriveCount returns the ghost's derived slot count: the index of the
// first (0, 0) pair, or GhostMaxEntries if every slot is populated.
func DeriveCount(offsets, lengths [GhostMaxEntries]uint64) uint8 {
	for i := 0; i < GhostMaxEntries; i++ {
		if offsets[i] == 0 && lengths[i] == 0 {
			return uint8(i)
		}
	}
	return GhostMaxEntries
}

// EncodeGhostRegion renders the full GhostRegionSize-byte ghost: LFH, name,
// extra id/size sub-header, and payload (derived count, zero padding, the
// seven pairs verbatim). The caller's offsets/lengths are written exactly
// as given, including any pair past the derived count.
func EncodeGhostRegion(offsets, lengths [GhostMaxEntries]uint64) []byte {
	buf := make([]byte, GhostRegionSize)

	binary.LittleEndian.PutUint32(buf[0:4], SigLocalFileHeader)
	binary.LittleEndian.PutUint16(buf[4:6], VersionNeededZip64)
	binary.LittleEndian.PutUint16(buf[6:8], 0) // gp flags: the ghost is never UTF-8-flagged
	binary.LittleEndian.PutUint16(buf[8:10], MethodStore)
	binary.LittleEndian.PutUint16(buf[10:12], 0) // DOS time
	binary.LittleEndian.PutUint16(buf[12:14], 0) // DOS date
	binary.LittleEndian.PutUint32(buf[14:18], 0) // CRC-32, not validated on read
	binary.LittleEndian.PutUint32(buf[18:22], 0) // compressed size
	binary.LittleEndian.PutUint32(buf[22:26], 0) // uncompressed size
	binary.LittleEndian.PutUint16(buf[26:28], uint16(GhostNameLen))
	binary.LittleEndian.PutUint16(buf[28:30], ghostExtraDeclaredLen)
	copy(buf[30:40], GhostName)
	binary.LittleEndian.PutUint16(buf[40:42], GhostExtraID)
	binary.LittleEndian.PutUint16(buf[42:44], ghostExtraDeclaredLen)

	buf[ghostPayloadOffset] = DeriveCount(offsets, lengths)
	// buf[45:48] padding is already zero.

	for i := 0; i < GhostMaxEntries; i++ {
		o := ghostPairsOffset + i*16
		binary.LittleEndian.PutUint64(buf[o:o+8], offsets[i])
		binary.LittleEndian.PutUint64(buf[o+8:o+16], lengths[i])
	}
	return buf
}

// ValidateGhostRegion checks buf (which must be at least GhostRegionSize
// bytes) against every rule in the ghost's read-side validation contract:
// LFH signature, name length and bytes, extra id and declared size, and a
// count byte within range.
func ValidateGhostRegion(buf []byte) bool {
	if len(buf) < GhostRegionSize {
		return false
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != SigLocalFileHeader {
		return false
	}
	if binary.LittleEndian.Uint16(buf[26:28]) != uint16(GhostNameLen) {
		return false
	}
	if binary.LittleEndian.Uint16(buf[28:30]) != ghostExtraDeclaredLen {
		return false
	}
	if string(buf[30:40]) != GhostName {
		return false
	}
	if binary.LittleEndian.Uint16(buf[40:42]) != GhostExtraID {
		return false
	}
	if binary.LittleEndian.Uint16(buf[42:44]) != ghostExtraDeclaredLen {
		return false
	}
	if buf[ghostPayloadOffset] > GhostMaxEntries {
		return false
	}
	return true
}

// DecodeGhostPayload reads the count byte and the seven pairs out of a
// GhostRegionSize-byte buffer already known to be valid. Slots past the
// count are returned verbatim; callers may inspect them.
func DecodeGhostPayload(buf []byte) (count uint8, offsets, lengths [GhostMaxEntries]uint64) {
	count = buf[ghostPayloadOffset]
	for i := 0; i < GhostMaxEntries; i++ {
		o := ghostPairsOffset + i*16
		offsets[i] = binary.LittleEndian.Uint64(buf[o : o+8])
		lengths[i] = binary.LittleEndian.Uint64(buf[o+8 : o+16])
	}
	return count, offsets, lengths
}

// EncodeGhostPatch renders the GhostPayloadSize-4 byte pair block (the
// padding is not part of a patch write; only the count byte at offset 44
// and the pairs starting at offset 48 are ever rewritten in place).
func EncodeGhostPatch(offsets, lengths [GhostMaxEntries]uint64) []byte {
	buf := make([]byte, GhostPayloadSize-4)
	for i := 0; i < GhostMaxEntries; i++ {
		o := i * 16
		binary.LittleEndian.PutUint64(buf[o:o+8], offsets[i])
		binary.LittleEndian.PutUint64(buf[o+8:o+16], lengths[i])
	}
	return buf
}

// GhostPayloadOffset and GhostPairsOffset are the absolute in-file offsets
// a patcher writes to: the count byte and the first pair, respectively.
const (
	GhostPayloadOffset = ghostPayloadOffset
	GhostPairsOffset   = ghostPairsOffset
)
