// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tacofoundation/tacozip/internal/prealloc"
	"github.com/tacofoundation/tacozip/internal/wire"
)

// Writer holds the configuration that shapes how CreateMulti and Create lay
// out and buffer an archive: UTF-8 name flagging, buffer sizes, and an
// optional per-entry callback. The zero value is not usable; construct one
// with NewWriter.
type Writer struct {
	cfg config
}

// NewWriter builds a Writer from the given options. Defaults: UTF-8 names
// off, a 4 MiB output buffer, a 1 MiB copy buffer, no callback.
func NewWriter(opts ...Option) *Writer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Writer{cfg: cfg}
}

// CreateMulti writes a new archive at path: the ghost entry derived from
// table, then one entry per (srcPaths[i], arcNames[i]) in order, then the
// central directory. Any existing file at path is truncated. Argument
// validation happens before the file is opened; on any I/O failure during
// writing the file handle is closed and the caller owns cleanup of the
// partially written path.
func (w *Writer) CreateMulti(path string, srcPaths, arcNames []string, table MetaTable) error {
	if err := validateCreateArgs(path, srcPaths, arcNames); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}

	prealloc.Reserve(f, estimateSize(srcPaths, arcNames))

	bw := bufio.NewWriterSize(f, w.cfg.outputBufSize)
	cbw := &countingWriter{dest: bw}

	if _, err := cbw.Write(encodeGhostRegion(table)); err != nil {
		f.Close()
		return err
	}

	descriptors := make([]entryDescriptor, 0, len(srcPaths)+1)
	descriptors = append(descriptors, entryDescriptor{name: []byte(wire.GhostName)})

	var gpFlags uint16
	if w.cfg.utf8Names {
		gpFlags = wire.GPFlagUTF8
	}
	copyBuf := make([]byte, w.cfg.copyBufSize)

	for i, srcPath := range srcPaths {
		name := arcNames[i]
		d, werr := writeEntry(cbw, copyBuf, name, srcPath, gpFlags)
		if w.cfg.onEntryWritten != nil {
			w.cfg.onEntryWritten(name, werr)
		}
		if werr != nil {
			f.Close()
			return werr
		}
		descriptors = append(descriptors, d)
	}

	if err := writeCentralDirectory(cbw, descriptors); err != nil {
		f.Close()
		return err
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flush %s: %v", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, path, err)
	}
	return nil
}

// Create is the single-pair shorthand for CreateMulti: it places entry in
// slot zero of an otherwise-empty MetaTable.
func (w *Writer) Create(path string, srcPaths, arcNames []string, entry MetaEntry) error {
	var entries [MaxMetaEntries]MetaEntry
	entries[0] = entry
	return w.CreateMulti(path, srcPaths, arcNames, NewMetaTable(entries))
}

func validateCreateArgs(path string, srcPaths, arcNames []string) error {
	if path == "" {
		return fmt.Errorf("%w: empty archive path", ErrInvalidParam)
	}
	if srcPaths == nil || arcNames == nil {
		return fmt.Errorf("%w: nil source or archive name list", ErrInvalidParam)
	}
	if len(srcPaths) != len(arcNames) {
		return fmt.Errorf("%w: source and archive name lists differ in length", ErrInvalidParam)
	}
	if len(srcPaths) < 1 {
		return fmt.Errorf("%w: at least one file is required", ErrInvalidParam)
	}
	for _, name := range arcNames {
		if len(name) > 0xFFFF {
			return fmt.Errorf("%w: archive name %q exceeds 65535 bytes", ErrInvalidParam, name)
		}
	}
	return nil
}

// estimateSize computes the preallocation hint: the ghost region, plus per
// entry LFH + name + data + data descriptor + CDFH + name + ZIP64 extra,
// plus the ZIP64 EOCD, locator, and classic EOCD. Stat failures on a
// source file degrade its contribution to zero; the estimate is a hint,
// never load-bearing.
func estimateSize(srcPaths, arcNames []string) int64 {
	const tail = wire.Zip64EOCDSize + wire.Zip64LocatorSize + wire.EOCDSize
	sum := int64(wire.GhostRegionSize + tail)
	for i, name := range arcNames {
		var fileSize int64
		if info, err := os.Stat(srcPaths[i]); err == nil {
			fileSize = info.Size()
		}
		sum += int64(wire.LocalFileHeaderSize+len(name)) + fileSize + wire.DataDescriptorSize
		sum += int64(wire.CentralDirHeaderSize+len(name)) + wire.Zip64ExtraFieldSize
	}
	return sum
}

// CreateMulti is the package-level convenience form of Writer.CreateMulti,
// applying opts against default settings.
func CreateMulti(path string, srcPaths, arcNames []string, table MetaTable, opts ...Option) error {
	return NewWriter(opts...).CreateMulti(path, srcPaths, arcNames, table)
}

// Create is the package-level convenience form of Writer.Create.
func Create(path string, srcPaths, arcNames []string, entry MetaEntry, opts ...Option) error {
	return NewWriter(opts...).Create(path, srcPaths, arcNames, entry)
}
