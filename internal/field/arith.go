// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package field

import "math/bits"

// madd computes a*b + c + carryIn and returns the result as (hi, lo), the
// standard multiply-accumulate building block for CIOS Montgomery arithmetic.
func madd(a, b, c, carryIn uint64) (hi, lo uint64) {
	hi, lo = bits.Mul64(a, b)

	var carry uint64

	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, carryIn, 0)
	hi, _ = bits.Add64(hi, 0, carry)

	return hi, lo
}

// IsNonZero returns 1 if u != 0, and 0 otherwise.
func IsNonZero(u uint64) uint64 {
	return ((^uint64(0) & u) | (^(0 ^ u) & -u)) >> 63
}

// IsZero returns 1 if u == 0, and 0 otherwise.
func IsZero(u uint64) uint64 {
	return (^IsNonZero(u)) & 1
}

// condSubP subtracts P from res if res >= P, or if overflow != 0 (meaning res
// is already >= 2^512 worth of accumulation above P). Constant time: the
// subtraction is always performed, and the result is selected with a mask.
func condSubP(res *MontgomeryDomainFieldElement, overflow uint64) {
	var diff MontgomeryDomainFieldElement

	var borrow uint64
	for i := 0; i < Limbs; i++ {
		diff[i], borrow = bits.Sub64(res[i], P[i], borrow)
	}

	// useDiff = 1 if overflow != 0 (res is certainly >= P), or if subtracting
	// P did not borrow (res was already >= P without needing the overflow limb).
	useDiff := IsNonZero(overflow) | (1 - borrow)
	mask := -useDiff

	for i := 0; i < Limbs; i++ {
		res[i] = (diff[i] & mask) | (res[i] & ^mask)
	}
}

// Mul sets out = x*y in the Montgomery domain, using Coarsely Integrated
// Operand Scanning.
func Mul(out, x, y *MontgomeryDomainFieldElement) {
	var t [Limbs + 2]uint64

	for i := 0; i < Limbs; i++ {
		var carry uint64
		for j := 0; j < Limbs; j++ {
			hi, lo := madd(x[j], y[i], t[j], carry)
			t[j] = lo
			carry = hi
		}

		sum, c := bits.Add64(t[Limbs], carry, 0)
		t[Limbs] = sum
		t[Limbs+1] += c

		m := t[0] * negPInv64

		hi0, _ := madd(m, P[0], t[0], 0)
		carry = hi0

		for j := 1; j < Limbs; j++ {
			hi, lo := madd(m, P[j], t[j], carry)
			t[j-1] = lo
			carry = hi
		}

		sum2, c2 := bits.Add64(t[Limbs], carry, 0)
		t[Limbs-1] = sum2
		t[Limbs] = t[Limbs+1] + c2
		t[Limbs+1] = 0
	}

	var res MontgomeryDomainFieldElement

	copy(res[:], t[:Limbs])
	condSubP(&res, t[Limbs])

	*out = res
}

// Square sets out = x*x. We route through Mul: the CIOS reduction dominates
// the cost either way, and sharing the one code path keeps the one place
// that can go wrong in a hand-written 8-limb multiply to a single routine.
func Square(out, x *MontgomeryDomainFieldElement) {
	Mul(out, x, x)
}

// Add sets out = x + y mod P.
func Add(out, x, y *MontgomeryDomainFieldElement) {
	var sum MontgomeryDomainFieldElement

	var carry uint64
	for i := 0; i < Limbs; i++ {
		sum[i], carry = bits.Add64(x[i], y[i], carry)
	}

	condSubP(&sum, carry)

	*out = sum
}

// Sub sets out = x - y mod P.
func Sub(out, x, y *MontgomeryDomainFieldElement) {
	var diff MontgomeryDomainFieldElement

	var borrow uint64
	for i := 0; i < Limbs; i++ {
		diff[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}

	// borrow == 1 means x < y: add P back in, constant time.
	mask := -borrow

	var sum MontgomeryDomainFieldElement

	var carry uint64
	for i := 0; i < Limbs; i++ {
		sum[i], carry = bits.Add64(diff[i], P[i]&mask, carry)
	}

	*out = sum
}

// Neg sets out = -x mod P (i.e. P - x, or 0 if x == 0).
func Neg(out, x *MontgomeryDomainFieldElement) {
	var zero MontgomeryDomainFieldElement
	Sub(out, &zero, x)
}

// SelectZnz sets out = u if c == 0, and out = v if c == 1.
func SelectZnz(out *MontgomeryDomainFieldElement, c uint64, u, v *MontgomeryDomainFieldElement) {
	mask := -c
	for i := 0; i < Limbs; i++ {
		out[i] = (u[i] & ^mask) | (v[i] & mask)
	}
}

// EqualLimbs returns 1 if u == v limb-for-limb, and 0 otherwise.
func EqualLimbs(u, v *MontgomeryDomainFieldElement) uint64 {
	var acc uint64
	for i := 0; i < Limbs; i++ {
		acc |= u[i] ^ v[i]
	}

	return IsZero(acc)
}

// IsZeroLimbs returns 1 if u is the all-zero representative.
func IsZeroLimbs(u *MontgomeryDomainFieldElement) uint64 {
	var acc uint64
	for i := 0; i < Limbs; i++ {
		acc |= u[i]
	}

	return IsZero(acc)
}

// ConstantTimeBoundedExp computes out = x^e, assuming e < 2^10, by always
// performing exactly 11 conditional-move-controlled squarings and
// multiplications regardless of the true value of e.
func ConstantTimeBoundedExp(out, x *MontgomeryDomainFieldElement, e uint64) {
	acc := MontgomeryDomainFieldElement{}
	ToMontgomery(&acc, &NonMontgomeryDomainFieldElement{1})

	base := *x

	for i := 0; i < 11; i++ {
		bit := (e >> uint(i)) & 1

		var squared MontgomeryDomainFieldElement
		Square(&squared, &base)

		var multiplied MontgomeryDomainFieldElement
		Mul(&multiplied, &acc, &base)

		SelectZnz(&acc, bit, &acc, &multiplied)
		base = squared
	}

	*out = acc
}

// Legendre returns 0 if x is zero or a quadratic residue mod P, and 1 if x is
// a non-residue, computed via x^((P-1)/2) in variable time. Used only on
// freshly sampled candidate data (Elligator), never on long-term secrets.
func Legendre(x *Element) uint64 {
	var exp MontgomeryDomainFieldElement
	VartimeExp(&exp, &x.E, &pMinusOneHalf)

	result := &Element{E: exp}
	one := New().One()

	return 1 - result.Equals(one)
}

// VartimeExp computes out = x^e for a public exponent e, via a plain
// square-and-multiply ladder. Used only on public data (test harnesses,
// variable-time action helpers).
func VartimeExp(out, x *MontgomeryDomainFieldElement, e *NonMontgomeryDomainFieldElement) {
	acc := MontgomeryDomainFieldElement{}
	ToMontgomery(&acc, &NonMontgomeryDomainFieldElement{1})

	for i := Limbs*64 - 1; i >= 0; i-- {
		Square(&acc, &acc)

		limb := e[i/64]
		if (limb>>(uint(i)%64))&1 == 1 {
			Mul(&acc, &acc, x)
		}
	}

	*out = acc
}
