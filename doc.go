// Copyright 2025 The Tacozip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tacozip writes ZIP64 archives that reserve byte offset zero for a
// fixed "ghost" entry: a regular, standards-conformant ZIP entry named
// TACO_GHOST whose extra field carries up to seven (offset, length) pointer
// pairs to metadata regions stored outside the archive (for example, an
// index footer appended after the archive, or a sidecar file).
//
// The rest of the archive is an ordinary ZIP64 stream: STORE only, no
// compression, no encryption, single-pass writes, no concurrent writers
// against the same path. The ghost's payload can be read or patched in
// place without touching any other byte of the archive, which is the
// feature that makes tacozip useful: a consumer can update the pointer
// table after the archive's body (and any externally appended metadata)
// have already been written.
package tacozip
