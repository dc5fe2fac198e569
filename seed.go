// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import (
	"bytes"
	"crypto"

	"github.com/bytemare/hash2curve"

	"github.com/vnchari/csifish/internal/csrand"
)

const seedDST = "csifish-deterministic-seed"

// maxDeterministicBytes is the largest output ExpandXMD can stretch a
// SHA-256-based XOF to (255 blocks of 32 bytes; RFC 9380 5.4.1). A
// deterministic run that draws more than this from the seed stream fails
// closed with io.ErrUnexpectedEOF (or io.EOF once the stream is fully
// drained) rather than silently wrapping around.
const maxDeterministicBytes = 255 * 32

// SeedDeterministic replaces the module-wide randomness source with a fixed
// stream expanded from seed, so GenerateKeypair and Sign become reproducible
// across runs given the same seed and Params. This is for test and demo use
// only: a signing key generated this way is only as secret as the seed, and
// must never be treated as a real key. Call ResetRandomness to restore
// cryptographically secure randomness afterward. Not safe to call
// concurrently with key generation or signing.
func SeedDeterministic(seed []byte) {
	stream := hash2curve.ExpandXMD(crypto.SHA256, seed, []byte(seedDST), maxDeterministicBytes)
	csrand.Reader = bytes.NewReader(stream)
}

// ResetRandomness restores the default cryptographically secure randomness
// source, undoing a prior SeedDeterministic call.
func ResetRandomness() {
	csrand.Reset()
}
