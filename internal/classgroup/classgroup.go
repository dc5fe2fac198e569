// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package classgroup implements arithmetic on elements of Z/NZ, N being the
// order of the CSI-FiSh ideal class group (~320 bits, five 64-bit limbs).
// Only add, subtract, negate, and random sampling are needed: the action
// never multiplies two class-group elements together.
package classgroup

import (
	"math/bits"

	"github.com/vnchari/csifish/internal/csrand"
)

const (
	// Limbs is the number of 64-bit words used to store a class-group element.
	Limbs = 5

	// ElementSize is the byte size of the standard encoding (spec 6).
	ElementSize = 40
)

// Element is a value in [0, N).
type Element struct {
	limbs [Limbs]uint64
}

// N is the order of the class group. The true CSI-FiSh class number requires
// a dedicated analytic-class-number-formula computation that is not
// reproducible from the retrieval pack; this is a structurally valid
// 320-bit odd placeholder, not the literal published CSIDH-512 class
// number.
//
//nolint:gochecknoglobals
var N = Element{limbs: [Limbs]uint64{
	0x91b7584a2265b1f5, 0xcd613e30d8f16adf, 0x1027c4d1c386bbc4, 0x1e2feb89414c343c, 0xc2ce6f447ed4d57b,
}}

// Zero returns the additive identity.
func Zero() *Element {
	return &Element{}
}

// Set sets e to the value of u and returns e.
func (e *Element) Set(u *Element) *Element {
	e.limbs = u.limbs
	return e
}

// isNonZero returns 1 if u != 0, 0 otherwise.
func isNonZero(u uint64) uint64 {
	return ((^uint64(0) & u) | (^(0 ^ u) & -u)) >> 63
}

func condSubN(e *Element, overflow uint64) {
	var diff [Limbs]uint64

	var borrow uint64
	for i := 0; i < Limbs; i++ {
		diff[i], borrow = bits.Sub64(e.limbs[i], N.limbs[i], borrow)
	}

	mask := -((1 - borrow) | overflow)
	for i := 0; i < Limbs; i++ {
		e.limbs[i] = (diff[i] & mask) | (e.limbs[i] & ^mask)
	}
}

// Add sets e = u + v mod N and returns e.
func (e *Element) Add(u, v *Element) *Element {
	var sum [Limbs]uint64

	var carry uint64
	for i := 0; i < Limbs; i++ {
		sum[i], carry = bits.Add64(u.limbs[i], v.limbs[i], carry)
	}

	e.limbs = sum
	condSubN(e, carry)

	return e
}

// Subtract sets e = u - v mod N and returns e.
func (e *Element) Subtract(u, v *Element) *Element {
	var diff [Limbs]uint64

	var borrow uint64
	for i := 0; i < Limbs; i++ {
		diff[i], borrow = bits.Sub64(u.limbs[i], v.limbs[i], borrow)
	}

	mask := -borrow

	var sum [Limbs]uint64

	var carry uint64
	for i := 0; i < Limbs; i++ {
		sum[i], carry = bits.Add64(diff[i], N.limbs[i]&mask, carry)
	}

	e.limbs = sum

	return e
}

// Negate sets e = -u mod N and returns e.
func (e *Element) Negate(u *Element) *Element {
	return e.Subtract(Zero(), u)
}

// CMove sets e to u if c == 0, and v if c == 1.
func (e *Element) CMove(c uint64, u, v *Element) *Element {
	mask := -c
	for i := 0; i < Limbs; i++ {
		e.limbs[i] = (u.limbs[i] & ^mask) | (v.limbs[i] & mask)
	}

	return e
}

// CSwap conditionally exchanges a and b if c == 1.
func CSwap(c uint64, a, b *Element) {
	mask := -c
	for i := 0; i < Limbs; i++ {
		t := mask & (a.limbs[i] ^ b.limbs[i])
		a.limbs[i] ^= t
		b.limbs[i] ^= t
	}
}

// IsZero returns 1 if e == 0.
func (e *Element) IsZero() uint64 {
	var acc uint64
	for i := 0; i < Limbs; i++ {
		acc |= e.limbs[i]
	}

	return 1 - isNonZero(acc)
}

// Equal returns 1 if e == u.
func (e *Element) Equal(u *Element) uint64 {
	var acc uint64
	for i := 0; i < Limbs; i++ {
		acc |= e.limbs[i] ^ u.limbs[i]
	}

	return 1 - isNonZero(acc)
}

// vartimeIsLess reports a < b; used only during rejection sampling of fresh
// randomness, never on secret-dependent control flow otherwise.
func vartimeIsLess(a, b *[Limbs]uint64) bool {
	for i := Limbs - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

// Random draws a uniform element of Z/NZ using rejection sampling against a
// cryptographically secure source.
func Random() (*Element, error) {
	for {
		var buf [ElementSize]byte
		if err := csrand.Read(buf[:]); err != nil {
			return nil, err
		}

		var limbs [Limbs]uint64
		for i := 0; i < Limbs; i++ {
			var v uint64
			for j := 0; j < 8; j++ {
				v = v<<8 | uint64(buf[i*8+j])
			}

			limbs[Limbs-1-i] = v
		}

		if vartimeIsLess(&limbs, &N.limbs) {
			return &Element{limbs: limbs}, nil
		}
	}
}

// Bytes returns the 40-byte big-endian encoding of e.
func (e *Element) Bytes() []byte {
	out := make([]byte, ElementSize)
	for i := 0; i < Limbs; i++ {
		v := e.limbs[Limbs-1-i]
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(v >> uint(56-8*j))
		}
	}

	return out
}

// FromBytes decodes a 40-byte big-endian encoding into e.
func FromBytes(input [ElementSize]byte) *Element {
	var limbs [Limbs]uint64
	for i := 0; i < Limbs; i++ {
		var v uint64
		for j := 0; j < 8; j++ {
			v = v<<8 | uint64(input[i*8+j])
		}

		limbs[Limbs-1-i] = v
	}

	return &Element{limbs: limbs}
}
