// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacozip

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/tacofoundation/tacozip/internal/wire"
)

// writeEntry appends one source file to cbw: a local file header with the
// ZIP64-unknown-size sentinel, the name bytes, the file's data (streamed
// through buf while accumulating CRC-32 and a byte count), and a trailing
// ZIP64 data descriptor. It returns the descriptor to be recorded for
// later central directory emission.
func writeEntry(cbw *countingWriter, buf []byte, name, srcPath string, gpFlags uint16) (entryDescriptor, error) {
	if len(name) > 0xFFFF {
		return entryDescriptor{}, fmt.Errorf("%w: archive name %q exceeds 65535 bytes", ErrInvalidParam, name)
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return entryDescriptor{}, fmt.Errorf("%w: open %s: %v", ErrIO, srcPath, err)
	}
	defer f.Close()

	lfhOffset := cbw.count
	flags := gpFlags | wire.GPFlagDataDescriptor
	lfh := wire.LocalFileHeader{
		GPFlags:        flags,
		NameLength:     uint16(len(name)),
		CompressedSize: 0xFFFFFFFF,
	}
	if _, err := cbw.Write(lfh.Encode()); err != nil {
		return entryDescriptor{}, err
	}
	if _, err := cbw.Write([]byte(name)); err != nil {
		return entryDescriptor{}, err
	}

	crc := crc32.NewIEEE()
	var size uint64
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			crc.Write(buf[:n])
			if _, werr := cbw.Write(buf[:n]); werr != nil {
				return entryDescriptor{}, werr
			}
			size += uint64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return entryDescriptor{}, fmt.Errorf("%w: read %s: %v", ErrIO, srcPath, rerr)
		}
	}
	sum := crc.Sum32()

	dd := wire.DataDescriptor{CRC32: sum, CompressedSize: size, UncompressedSize: size}
	if _, err := cbw.Write(dd.Encode()); err != nil {
		return entryDescriptor{}, err
	}

	return entryDescriptor{
		name:             []byte(name),
		gpFlags:          flags,
		crc32:            sum,
		compressedSize:   size,
		uncompressedSize: size,
		lfhOffset:        lfhOffset,
	}, nil
}
