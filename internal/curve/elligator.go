// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package curve

import (
	"github.com/vnchari/csifish/internal/field"
)

// Elligator draws a uniformly random field element u in [0, (P-1)/2), and
// deterministically splits it into a point on e and a point on the
// quadratic twist of e, each of order dividing p+1 with the cofactor 4 not
// yet cleared, following the branch-free
// construction: x = -A*u^2/(u^2-1), and its negation, with a Legendre-symbol
// evaluation of the curve equation at x assigning the correct member of the
// pair to e versus twist(e) without revealing which via a data-dependent
// branch.
//
// When e.A.x == 0 (the base curve), a and d below collapse in a way that
// would divide by zero; the base-curve branch substitutes fixed nonzero
// placeholders so the same straight-line computation stays valid, matching
// the substitution constant_time.rs performs for the same reason.
func Elligator(e *Curve) (Point, Point, error) {
	for {
		u, err := field.RandomUnderHalf()
		if err != nil {
			return Point{}, Point{}, err
		}

		var u2 field.Element
		u2.Square(u)

		one := field.New().One()

		var d field.Element
		d.Subtract(&u2, one)

		if u.IsZero() == 1 || d.IsZero() == 1 {
			continue
		}

		isBase := e.A.X.IsZero()

		// On the base curve A.x == 0 and A.z == 1; substitute A.x = 1 so the
		// straight-line arithmetic below never divides by a true zero.
		placeholderX := field.New().One()
		placeholderZ := field.New().One()

		ax := field.New().CMove(isBase, &e.A.X, placeholderX)
		az := field.New().CMove(isBase, &e.A.Z, placeholderZ)

		var m field.Element
		m.Multiply(ax, &u2)

		var t field.Element
		t.Multiply(ax, &m)
		// With the true A = 0, x^2 + A*x*z reduces to x^2, which is 1 here.
		t.CMove(isBase, &t, placeholderX)

		p := field.New().Set(ax)

		d.Multiply(&d, az)

		var dSq field.Element
		dSq.Square(&d)
		t.Add(&t, &dSq)
		t.Multiply(&t, &d)
		t.Multiply(&t, p)

		var mNeg field.Element
		mNeg.Negate(&m)
		// With the true A = 0, the second candidate -x-A is simply -x.
		mNeg.CMove(isBase, &mNeg, field.New().Negate(p))

		pPlus := Point{X: *p, Z: d}
		pMinus := Point{X: mNeg, Z: d}

		// t's Legendre symbol decides which candidate lies on e and which on
		// its twist (t is, up to a shared square factor, the curve equation's
		// right-hand side evaluated at p_plus.x).
		legendre := field.Legendre(&t)

		plusX := field.New().CMove(legendre, &pPlus.X, &pMinus.X)
		minusX := field.New().CMove(legendre, &pMinus.X, &pPlus.X)
		pPlus.X, pMinus.X = *plusX, *minusX

		return pPlus, pMinus, nil
	}
}
