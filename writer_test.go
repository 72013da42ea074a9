// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// TestCreateSingleFileGhostLayout is scenario S1: a one-file archive with an
// all-zero ghost table.
func TestCreateSingleFileGhostLayout(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "greet.txt", []byte("hello"))
	out := filepath.Join(dir, "out.zip")

	err := Create(out, []string{src}, []string{"greet.txt"}, MetaEntry{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	require.Equal(t, []byte{0x50, 0x4B, 0x03, 0x04}, data[0:4])
	require.Equal(t, "TACO_GHOST", string(data[30:40]))
	require.Equal(t, byte(0x00), data[44])
	for _, b := range data[48:160] {
		require.Zero(t, b)
	}

	// The entry's LFH starts immediately after the 160-byte ghost region.
	entryLFH := data[160:190]
	require.Equal(t, []byte{0x50, 0x4B, 0x03, 0x04}, entryLFH[0:4])
	nameLen := binary.LittleEndian.Uint16(entryLFH[26:28])
	require.Equal(t, uint16(len("greet.txt")), nameLen)

	// data descriptor CRC-32 of "hello".
	wantCRC := crc32.ChecksumIEEE([]byte("hello"))
	require.Equal(t, uint32(0x3610A686), wantCRC)

	ddSig := []byte{0x50, 0x4B, 0x07, 0x08}
	ddIdx := indexOf(data, ddSig, 160)
	require.NotEqual(t, -1, ddIdx)
	gotCRC := binary.LittleEndian.Uint32(data[ddIdx+4 : ddIdx+8])
	require.Equal(t, wantCRC, gotCRC)

	require.Equal(t, []byte{0x50, 0x4B, 0x05, 0x06}, data[len(data)-22:len(data)-18])
}

// TestCreateMultiGhostPairs is scenario S2.
func TestCreateMultiGhostPairs(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "a", nil)
	out := filepath.Join(dir, "m.zip")

	var entries [MaxMetaEntries]MetaEntry
	entries[0] = MetaEntry{Offset: 100, Length: 10}
	entries[1] = MetaEntry{Offset: 200, Length: 20}

	err := CreateMulti(out, []string{src}, []string{"a"}, NewMetaTable(entries))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	require.Equal(t, byte(0x02), data[44])
	require.Equal(t, uint64(100), binary.LittleEndian.Uint64(data[48:56]))
	require.Equal(t, uint64(10), binary.LittleEndian.Uint64(data[56:64]))
	require.Equal(t, uint64(200), binary.LittleEndian.Uint64(data[64:72]))
	require.Equal(t, uint64(20), binary.LittleEndian.Uint64(data[72:80]))
	for _, b := range data[80:160] {
		require.Zero(t, b)
	}
}

// TestCreateRejectsEmptyFileList covers the boundary case where num_files == 0.
func TestCreateRejectsEmptyFileList(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "empty.zip")

	err := CreateMulti(out, nil, nil, NewMetaTable([MaxMetaEntries]MetaEntry{}))
	require.ErrorIs(t, err, ErrInvalidParam)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

// TestCreateRejectsOverlongName covers the 65536-byte boundary.
func TestCreateRejectsOverlongName(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "a", []byte("x"))
	out := filepath.Join(dir, "long.zip")

	longName := make([]byte, 65536)
	for i := range longName {
		longName[i] = 'a'
	}

	err := CreateMulti(out, []string{src}, []string{string(longName)}, NewMetaTable([MaxMetaEntries]MetaEntry{}))
	require.ErrorIs(t, err, ErrInvalidParam)
}

// TestCreateMissingSourceFile covers the missing-file boundary case.
func TestCreateMissingSourceFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "missing.zip")

	err := CreateMulti(out, []string{filepath.Join(dir, "nope")}, []string{"nope"}, NewMetaTable([MaxMetaEntries]MetaEntry{}))
	require.ErrorIs(t, err, ErrIO)
}

// TestCreateTwoFilesReportsEntriesAndTotalCount is scenario S6, scaled down:
// it checks the per-entry callback order and the ZIP64 EOCD entry count.
func TestCreateTwoFilesReportsEntriesAndTotalCount(t *testing.T) {
	dir := t.TempDir()
	contentA := make([]byte, 4096)
	contentB := make([]byte, 8192)
	for i := range contentA {
		contentA[i] = byte(i)
	}
	for i := range contentB {
		contentB[i] = byte(i * 3)
	}
	srcA := writeTempFile(t, dir, "a.bin", contentA)
	srcB := writeTempFile(t, dir, "b.bin", contentB)
	out := filepath.Join(dir, "two.zip")

	var onEntryCalls []string
	err := CreateMulti(out, []string{srcA, srcB}, []string{"a.bin", "b.bin"}, NewMetaTable([MaxMetaEntries]MetaEntry{}),
		WithOnEntryWritten(func(name string, err error) {
			require.NoError(t, err)
			onEntryCalls = append(onEntryCalls, name)
		}))
	require.NoError(t, err)
	require.Equal(t, []string{"a.bin", "b.bin"}, onEntryCalls)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	// Total entries in ZIP64 EOCD must be 3 (ghost + 2).
	zip64EOCDSig := []byte{0x50, 0x4B, 0x06, 0x06}
	idx := indexOf(data, zip64EOCDSig, 0)
	require.NotEqual(t, -1, idx)
	require.Equal(t, uint64(3), binary.LittleEndian.Uint64(data[idx+32:idx+40]))
}

func indexOf(haystack, needle []byte, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
