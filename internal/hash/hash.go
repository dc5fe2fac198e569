// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package hash wraps TurboSHAKE128 into the fixed-size and extendable-output
// hashing the signature scheme needs for Merkle leaves, internal nodes, and
// the Fiat-Shamir challenge stream.
package hash

import (
	"golang.org/x/crypto/sha3"
)

// Size is the fixed digest size used throughout the signature scheme
// (Merkle leaf and internal-node hashes).
const Size = 16

// domainSeparator is TurboSHAKE128's single-byte domain separation input
// (D). 0x01 matches the domain the original implementation fixes for every
// call site; this module has no need for more than one domain.
const domainSeparator = 0x01

// XOF is the minimal extendable-output interface HashExtendable returns:
// write the message, then read as many output bytes as needed.
type XOF interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

func fresh() XOF {
	return sha3.NewTurboShake128(domainSeparator)
}

// Hasher repeatedly folds a TurboSHAKE128 XOF's own output back through
// itself numRounds times, a fixed-cost "hash chain" that widens the gap
// between a single call and a preimage search, as the signature scheme's
// keyed labels require.
type Hasher struct {
	numRounds int
}

// New returns a Hasher that performs numRounds extra folding rounds after
// the initial digest.
func New(numRounds int) *Hasher {
	return &Hasher{numRounds: numRounds}
}

// Hash returns the fixed Size-byte digest of input.
func (h *Hasher) Hash(input []byte) [Size]byte {
	var result [Size]byte

	x := fresh()
	_, _ = x.Write(input)
	_, _ = x.Read(result[:])

	for i := 0; i < h.numRounds; i++ {
		x = fresh()
		_, _ = x.Write(result[:])
		_, _ = x.Read(result[:])
	}

	return result
}

// HashExtendable performs the same folding as Hash, but returns the final
// round's XOF reader directly instead of truncating it to Size bytes, for
// callers that need more than Size bytes of pseudorandom output (e.g.
// the signature scheme's Fiat-Shamir challenge stream).
func (h *Hasher) HashExtendable(input []byte) XOF {
	var result [Size]byte

	x := fresh()
	_, _ = x.Write(input)
	_, _ = x.Read(result[:])

	for i := 0; i < h.numRounds-1; i++ {
		x = fresh()
		_, _ = x.Write(result[:])
		_, _ = x.Read(result[:])
	}

	final := fresh()
	_, _ = final.Write(result[:])

	return final
}
