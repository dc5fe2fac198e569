// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package field implements constant-time arithmetic over the 511-bit CSI-FiSh
// prime field, in Montgomery form, with eight 64-bit limbs per representative.
package field

const (
	// Limbs is the number of 64-bit words used to store a field element.
	Limbs = 8

	// ElementSize is the size of a standard-form field element encoding, in bytes.
	ElementSize = 64
)

// MontgomeryDomainFieldElement holds a field element as x*R mod P, R = 2^512.
type MontgomeryDomainFieldElement [Limbs]uint64

// NonMontgomeryDomainFieldElement holds a field element in its standard representation.
type NonMontgomeryDomainFieldElement [Limbs]uint64

// Element wraps a Montgomery-domain representative. The zero value is not a valid
// element; use New.
type Element struct {
	E MontgomeryDomainFieldElement
}

// P is the CSI-FiSh prime, p = 4*l_1*...*l_74 - 1, where l_1..l_73 are the 73
// smallest odd primes and l_74 = 587 (chosen, in place of the 74th smallest odd
// prime 379, because it makes p prime). p is 511 bits and p ≡ 3 (mod 8), which
// guarantees the base curve y^2 = x^3 + x is supersingular over F_p.
//
//nolint:gochecknoglobals // fixed field modulus, analogous to the teacher's fieldOrder.
var P = NonMontgomeryDomainFieldElement{
	0x1b81b90533c6c87b, 0xc2721bf457aca835, 0x516730cc1f0b4f25, 0xa7aac6c567f35507,
	0x5afbfcc69322c9cd, 0xb42d083aedc88c42, 0xfc8ab0d15e3e4c4a, 0x65b48e8f740f89bf,
}

// R2 is 2^1024 mod P, used to carry a standard-form integer into Montgomery form.
//
//nolint:gochecknoglobals
var R2 = MontgomeryDomainFieldElement{
	0x36905b572ffc1724, 0x67086f4525f1f27d, 0x4faf3fbfd22370ca, 0x192ea214bcc584b1,
	0x5dae03ee2f5de3d0, 0x1e9248731776b371, 0xad5f166e20e4f52d, 0x4ed759aea6f3917e,
}

// pMinusOneHalf is (P-1)/2, the rejection bound used by RandomUnderHalf.
//
//nolint:gochecknoglobals
var pMinusOneHalf = NonMontgomeryDomainFieldElement{
	0x8dc0dc8299e3643d, 0xe1390dfa2bd6541a, 0xa8b398660f85a792, 0xd3d56362b3f9aa83,
	0x2d7dfe63499164e6, 0x5a16841d76e44621, 0xfe455868af1f2625, 0x32da4747ba07c4df,
}

// negPInv64 is -P^-1 mod 2^64, the CIOS Montgomery reduction constant.
const negPInv64 uint64 = 0x66c1301f632e294d

// New returns a new, zero-valued field element (additive identity).
func New() *Element {
	return &Element{}
}

// Zero sets e to 0 and returns it.
func (e *Element) Zero() *Element {
	e.E = MontgomeryDomainFieldElement{}
	return e
}

// One sets e to the multiplicative identity and returns it.
func (e *Element) One() *Element {
	ToMontgomery(&e.E, &NonMontgomeryDomainFieldElement{1})
	return e
}

// Set sets e to u and returns e.
func (e *Element) Set(u *Element) *Element {
	e.E = u.E
	return e
}
