// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package field

import (
	"encoding/binary"
	"math/bits"
)

// ToMontgomery sets out = nm * R mod P, carrying a standard-form representative
// into the Montgomery domain.
func ToMontgomery(out *MontgomeryDomainFieldElement, nm *NonMontgomeryDomainFieldElement) {
	var tmp MontgomeryDomainFieldElement

	copy(tmp[:], nm[:])
	Mul(out, &tmp, &R2)
}

// FromMontgomery sets out = m * R^-1 mod P, the standard-form representative
// of the Montgomery element m.
func FromMontgomery(out *NonMontgomeryDomainFieldElement, m *MontgomeryDomainFieldElement) {
	one := MontgomeryDomainFieldElement{1}

	var tmp MontgomeryDomainFieldElement

	Mul(&tmp, m, &one)
	copy(out[:], tmp[:])
}

// bytesToNonMontgomery interprets input as a 64-byte big-endian integer.
func bytesToNonMontgomery(input [ElementSize]byte) NonMontgomeryDomainFieldElement {
	var out NonMontgomeryDomainFieldElement
	for i := 0; i < Limbs; i++ {
		out[Limbs-1-i] = binary.BigEndian.Uint64(input[i*8 : i*8+8])
	}

	return out
}

// nonMontgomeryToBytes returns the 64-byte big-endian encoding of nm.
func nonMontgomeryToBytes(nm *NonMontgomeryDomainFieldElement) []byte {
	out := make([]byte, ElementSize)
	for i := 0; i < Limbs; i++ {
		binary.BigEndian.PutUint64(out[i*8:i*8+8], nm[Limbs-1-i])
	}

	return out
}

// reduceLimbs reduces x modulo P in place if x >= P, and returns 1 if x was
// already < P (i.e. the input was canonical), 0 otherwise.
func reduceLimbs(x *NonMontgomeryDomainFieldElement) uint64 {
	var diff NonMontgomeryDomainFieldElement

	var borrow uint64
	for i := 0; i < Limbs; i++ {
		diff[i], borrow = bits.Sub64(x[i], P[i], borrow)
	}

	// borrow == 1 means x < P already: canonical, keep x, report canonical.
	mask := -borrow

	for i := 0; i < Limbs; i++ {
		x[i] = (diff[i] & ^mask) | (x[i] & mask)
	}

	return borrow
}

// Bytes returns the 64-byte big-endian standard-form encoding of e.
func (e *Element) Bytes() []byte {
	var nm NonMontgomeryDomainFieldElement
	FromMontgomery(&nm, &e.E)

	return nonMontgomeryToBytes(&nm)
}

// FromBytesWithReduce sets e from a 64-byte big-endian encoding, reducing if
// necessary, and returns 1 if the input was already canonical (< P), 0
// otherwise.
func (e *Element) FromBytesWithReduce(input [ElementSize]byte) (*Element, uint64) {
	nm := bytesToNonMontgomery(input)
	canonical := reduceLimbs(&nm)
	ToMontgomery(&e.E, &nm)

	return e, canonical
}

// FromBytesNoReduce sets e from a 64-byte big-endian encoding without
// reducing; callers must guarantee the input is already canonical.
func (e *Element) FromBytesNoReduce(input [ElementSize]byte) *Element {
	nm := bytesToNonMontgomery(input)
	ToMontgomery(&e.E, &nm)

	return e
}
