// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package csrand is the single point every other package draws randomness
// through: a package-level io.Reader defaulting to crypto/rand.Reader, and
// swappable (csifish's deterministic-seed mode swaps it for a fixed stream
// derived from a caller-supplied seed). Everything that draws secret or
// ephemeral randomness (classgroup.Random, the blinded action's blinding
// samples, lattice's pool-restart indices, the Merkle tree's per-build key)
// reads through here rather than calling crypto/rand directly, so swapping
// the source in one place reaches every consumer.
package csrand

import (
	"crypto/rand"
	"io"
)

// Reader is the active randomness source. Reassigning it affects every
// subsequent Read call across the whole module.
//
//nolint:gochecknoglobals
var Reader io.Reader = rand.Reader

// Read fills buf completely from Reader, or returns the first error
// encountered (io.ErrUnexpectedEOF if a deterministic Reader runs out
// part-way through buf, io.EOF if it had no bytes left at all).
func Read(buf []byte) error {
	_, err := io.ReadFull(Reader, buf)
	return err
}

// Reset restores Reader to crypto/rand.Reader, undoing any prior swap.
func Reset() {
	Reader = rand.Reader
}
