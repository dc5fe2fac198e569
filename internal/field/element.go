// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package field

import (
	"github.com/vnchari/csifish/internal/csrand"
)

// Add sets e = u + v and returns e.
func (e *Element) Add(u, v *Element) *Element {
	Add(&e.E, &u.E, &v.E)
	return e
}

// Subtract sets e = u - v and returns e.
func (e *Element) Subtract(u, v *Element) *Element {
	Sub(&e.E, &u.E, &v.E)
	return e
}

// Multiply sets e = u * v and returns e.
func (e *Element) Multiply(u, v *Element) *Element {
	Mul(&e.E, &u.E, &v.E)
	return e
}

// Square sets e = u * u and returns e.
func (e *Element) Square(u *Element) *Element {
	Square(&e.E, &u.E)
	return e
}

// Negate sets e = -u and returns e.
func (e *Element) Negate(u *Element) *Element {
	Neg(&e.E, &u.E)
	return e
}

// CMove sets e to u if c == 0, and to v if c == 1.
func (e *Element) CMove(c uint64, u, v *Element) *Element {
	SelectZnz(&e.E, c, &u.E, &v.E)
	return e
}

// CSwap conditionally swaps the contents of a and b if c == 1, leaving them
// unchanged if c == 0.
func CSwap(c uint64, a, b *Element) {
	mask := -c
	for i := 0; i < Limbs; i++ {
		t := mask & (a.E[i] ^ b.E[i])
		a.E[i] ^= t
		b.E[i] ^= t
	}
}

// IsZero returns 1 if e == 0, and 0 otherwise.
func (e *Element) IsZero() uint64 {
	return IsZeroLimbs(&e.E)
}

// Equals returns 1 if e == u, and 0 otherwise.
func (e *Element) Equals(u *Element) uint64 {
	return EqualLimbs(&e.E, &u.E)
}

// Sgn0 returns the low bit of the standard-form representative of e, used to
// pick a canonical sign for encoding.
func (e *Element) Sgn0() uint64 {
	var nm NonMontgomeryDomainFieldElement
	FromMontgomery(&nm, &e.E)

	return nm[0] & 1
}

// Invert sets e = 1/u, via the external constant-time modinv contract
// (ModInv) lifted back into Montgomery form.
func (e *Element) Invert(u *Element) *Element {
	var nm NonMontgomeryDomainFieldElement
	FromMontgomery(&nm, &u.E)

	var invStd NonMontgomeryDomainFieldElement
	ModInv(Limbs, &invStd, &nm, &P, nil)

	ToMontgomery(&e.E, &invStd)

	return e
}

// RandomUnderHalf draws a uniformly random field element in [0, (P-1)/2),
// rejection-sampling a CSPRNG.
func RandomUnderHalf() (*Element, error) {
	for {
		var buf [ElementSize]byte
		if err := csrand.Read(buf[:]); err != nil {
			return nil, err
		}

		// Pre-clear the top bit to accelerate acceptance, as the high limb
		// of (P-1)/2 never has its MSB set for this prime.
		buf[0] &= 0x7f

		nm := bytesToNonMontgomery(buf)
		if vartimeIsLess(&nm, &pMinusOneHalf) {
			e := New()
			ToMontgomery(&e.E, &nm)

			return e, nil
		}
	}
}

// vartimeIsLess reports whether a < b, in variable time; used only on public
// or freshly-sampled ephemeral data, never on secrets.
func vartimeIsLess(a, b *NonMontgomeryDomainFieldElement) bool {
	for i := Limbs - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
