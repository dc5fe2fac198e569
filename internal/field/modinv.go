// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package field

// ModInv implements, in pure Go, the external constant-time modular-inverse
// contract: given k limbs, write into out the inverse of a modulo the odd
// modulus m, running in time depending only on k (not on the value of a).
// buf is scratch space of at least 3*k limbs, kept in the signature for
// interchangeability with a native implementation (e.g. an assembly
// safegcd routine) wired in through the same contract; this fallback does
// not need it.
//
// This fallback only supports m == P, the one modulus field arithmetic ever
// inverts under in this module; it computes a^(P-2) mod P via a fixed
// square-and-multiply ladder over the public exponent P-2. Because P-2 is a
// compile-time constant, every call performs the identical sequence of
// squarings and multiplications regardless of a, so timing leaks nothing
// about the secret being inverted — the same property the teacher's
// generated addition-chain Invert (see the removed fe_invert.go) relies on,
// just with a plain binary ladder instead of a hand-optimised chain, since no
// addition chain for this 511-bit prime was available to ground one on.
//
// Inversion of zero is undefined by the contract; callers must not rely on a
// particular sentinel value when a == 0 (here it returns zero).
func ModInv(k int, out, a, m *NonMontgomeryDomainFieldElement, buf []uint64) {
	_ = k
	_ = buf

	if !sameModulus(m) {
		panic("field: ModInv fallback only supports the CSI-FiSh prime P")
	}

	var base MontgomeryDomainFieldElement
	ToMontgomery(&base, a)

	var accM MontgomeryDomainFieldElement
	ToMontgomery(&accM, &NonMontgomeryDomainFieldElement{1})

	for i := Limbs*64 - 1; i >= 0; i-- {
		Square(&accM, &accM)

		limb := pMinus2[i/64]
		if (limb>>(uint(i)%64))&1 == 1 {
			Mul(&accM, &accM, &base)
		}
	}

	FromMontgomery(out, &accM)
}

func sameModulus(m *NonMontgomeryDomainFieldElement) bool {
	for i := 0; i < Limbs; i++ {
		if m[i] != P[i] {
			return false
		}
	}

	return true
}

// pMinus2 is P-2, the fixed public exponent used by ModInv's Fermat ladder.
//
//nolint:gochecknoglobals
var pMinus2 = NonMontgomeryDomainFieldElement{
	0x1b81b90533c6c879, 0xc2721bf457aca835, 0x516730cc1f0b4f25, 0xa7aac6c567f35507,
	0x5afbfcc69322c9cd, 0xb42d083aedc88c42, 0xfc8ab0d15e3e4c4a, 0x65b48e8f740f89bf,
}
