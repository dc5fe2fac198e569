// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package curve implements x-only projective arithmetic on supersingular
// Montgomery curves E_A: y^2 = x^3 + A x^2 + x over the CSI-FiSh field,
// parameterised by a projective coefficient A = (a.x : a.z).
package curve

import (
	"github.com/vnchari/csifish/internal/field"
)

// Point is a projective x-only point (x : z). z == 0 denotes the identity.
type Point struct {
	X, Z field.Element
}

// Curve is a Montgomery curve given by its projective coefficient A.
type Curve struct {
	A Point
}

// Base returns the base curve E_0, with A = 0.
func Base() Curve {
	var c Curve
	c.A.X.Zero()
	c.A.Z.One()

	return c
}

// Identity returns the identity point (1 : 0).
func Identity() Point {
	var p Point
	p.X.One()
	p.Z.Zero()

	return p
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() uint64 {
	return p.Z.IsZero()
}

// Normalize sets z = 1, dividing x through by z. If z == 0 (the identity),
// x is set to 1, the canonical identity representative.
func (p *Point) Normalize() {
	isZero := p.Z.IsZero()

	var inv field.Element
	inv.Invert(&p.Z)

	var x field.Element
	x.Multiply(&p.X, &inv)

	one := field.New().One()
	p.X.CMove(isZero, &x, one)
	p.Z.One()
}

// ConditionalMove sets p to u if c == 0, v if c == 1.
func (p *Point) ConditionalMove(c uint64, u, v *Point) {
	p.X.CMove(c, &u.X, &v.X)
	p.Z.CMove(c, &u.Z, &v.Z)
}

// ConditionalSwap exchanges a and b if c == 1.
func ConditionalSwap(c uint64, a, b *Point) {
	field.CSwap(c, &a.X, &b.X)
	field.CSwap(c, &a.Z, &b.Z)
}

// Equal reports whether p and q represent the same affine point, comparing
// cross products to avoid normalising either input.
func (p *Point) Equal(q *Point) uint64 {
	var l, r field.Element
	l.Multiply(&p.X, &q.Z)
	r.Multiply(&q.X, &p.Z)

	return l.Equals(&r)
}

// Normalized returns the normalised coefficient of c (A.z == 1).
func (c *Curve) Normalized() Curve {
	out := *c
	out.A.Normalize()

	return out
}

// Equal reports whether two curves are the same element of the isogeny
// graph.
func (c *Curve) Equal(o *Curve) uint64 {
	return c.A.Equal(&o.A)
}

// Twist returns the curve obtained by negating A. This is a distinct
// curve from c, but is not what the class-group action uses to reach
// twist points: in x-only arithmetic E_A and its quadratic twist share the
// very same coefficient A, since x-only formulas never consult y, and
// Elligator already returns one point on each using that one shared A.
// Twist exists as a general utility, not a step of Variable/Blinded.
func (c *Curve) Twist() Curve {
	var t Curve
	t.A.X.Negate(&c.A.X)
	t.A.Z.Set(&c.A.Z)

	return t
}

// Bytes returns the 64-byte encoding of the curve's normalised A coordinate.
func (c *Curve) Bytes() []byte {
	n := c.Normalized()
	return n.A.X.Bytes()
}

// PointBytes returns the 64-byte x-only encoding of a normalised point.
func PointBytes(p *Point) []byte {
	n := *p
	n.Normalize()

	return n.X.Bytes()
}

// FromBytes decodes a 64-byte big-endian A coordinate into a normalised
// curve (a.z = 1), reducing non-canonical encodings as field.Element does.
func FromBytes(input [field.ElementSize]byte) Curve {
	var c Curve

	c.A.X.FromBytesWithReduce(input)
	c.A.Z.One()

	return c
}

// DifferentialAdd computes P+Q given P, Q and P-Q (Costello & Smith Algorithm 1).
func DifferentialAdd(pMinusQ, p, q *Point) Point {
	var t0, t1, t2, t3 field.Element

	t0.Add(&p.X, &p.Z)
	t1.Subtract(&p.X, &p.Z)
	t2.Add(&q.X, &q.Z)
	t3.Subtract(&q.X, &q.Z)

	var da, cb field.Element
	da.Multiply(&t0, &t3)
	cb.Multiply(&t1, &t2)

	var sum, diff field.Element
	sum.Add(&da, &cb)
	diff.Subtract(&da, &cb)

	var sum2, diff2 field.Element
	sum2.Square(&sum)
	diff2.Square(&diff)

	var out Point
	out.X.Multiply(&sum2, &pMinusQ.Z)
	out.Z.Multiply(&diff2, &pMinusQ.X)

	return out
}

// Double computes [2]P on the curve with coefficient A, without requiring A
// to be normalised.
func Double(a *Point, p *Point) Point {
	var t0, t1 field.Element

	t0.Add(&p.X, &p.Z)
	t1.Subtract(&p.X, &p.Z)

	var t0sq, t1sq field.Element
	t0sq.Square(&t0)
	t1sq.Square(&t1)

	var fourXZ field.Element
	fourXZ.Subtract(&t0sq, &t1sq)

	// a24 = (A.x + 2*A.z) / (4*A.z), folded in projectively:
	// x2 = t0sq * t1sq * (4*A.z); z2 = fourXZ * (t1sq*4*A.z + fourXZ*(A.x+2*A.z))
	var twoAz, axPlus2az field.Element
	twoAz.Add(&a.Z, &a.Z)
	axPlus2az.Add(&a.X, &twoAz)

	var fourAz field.Element
	fourAz.Add(&twoAz, &twoAz)

	var rhs field.Element
	rhs.Multiply(&fourXZ, &axPlus2az)

	var lhs field.Element
	lhs.Multiply(&t1sq, &fourAz)

	var inner field.Element
	inner.Add(&lhs, &rhs)

	var out Point
	out.X.Multiply(&t0sq, &lhs)
	out.Z.Multiply(&fourXZ, &inner)

	return out
}

// Ladder performs a constant-time Montgomery ladder, computing [m]P for a
// secret scalar m given as little-endian 64-bit words and its bit length
// nbits, processed from bit nbits-1 down to bit 0.
func Ladder(a *Point, p *Point, bits []uint64, nbits int) Point {
	r0 := Identity()
	r1 := *p

	for i := nbits - 1; i >= 0; i-- {
		bit := (bits[i/64] >> uint(i%64)) & 1

		ConditionalSwap(bit, &r0, &r1)
		sum := DifferentialAdd(p, &r0, &r1)
		dbl := Double(a, &r0)
		r0 = dbl
		r1 = sum
		ConditionalSwap(bit, &r0, &r1)
	}

	return r0
}

// VartimeLadder performs the same ladder without constant-time swap masking,
// for use on public scalars only (spec 4.M
// variable_time_differential_addition_chain).
func VartimeLadder(a *Point, p *Point, bits []uint64, nbits int) Point {
	r0 := Identity()
	r1 := *p

	for i := nbits - 1; i >= 0; i-- {
		bit := (bits[i/64] >> uint(i%64)) & 1
		if bit == 0 {
			r1 = DifferentialAdd(p, &r0, &r1)
			r0 = Double(a, &r0)
		} else {
			r0 = DifferentialAdd(p, &r0, &r1)
			r1 = Double(a, &r1)
		}
	}

	return r0
}
