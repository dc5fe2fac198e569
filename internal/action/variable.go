// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package action implements the CSI-FiSh ideal class group action on
// Montgomery curves: Variable (leaky, for public data) and Blinded
// (constant time, hides both which signs and which positions carried
// isogenies).
package action

import (
	"math/big"

	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/curve"
)

// cofactorBits caches, per prime index i, the scalar (p+1)/l_i = 4 *
// prod(l_j, j != i), expressed as little-endian 64-bit ladder words. This
// is the scalar that kills every factor of the full (p+1)-torsion except
// the l_i component, turning an Elligator sample (order dividing p+1) into
// a point of order dividing l_i.
//
//nolint:gochecknoglobals
var cofactorBits [classgroup.NumPrimes][]uint64

//nolint:gochecknoglobals
var cofactorBitLen [classgroup.NumPrimes]int

func init() {
	full := big.NewInt(4)
	for _, l := range classgroup.Primes {
		full.Mul(full, big.NewInt(int64(l)))
	}

	for i, l := range classgroup.Primes {
		cofactor := new(big.Int).Div(full, big.NewInt(int64(l)))
		cofactorBits[i], cofactorBitLen[i] = bigToLadderBits(cofactor)
	}
}

func bigToLadderBits(n *big.Int) ([]uint64, int) {
	words := n.Bits()

	bits := make([]uint64, len(words))
	for i, w := range words {
		bits[i] = uint64(w)
	}

	if len(bits) == 0 {
		bits = []uint64{0}
	}

	return bits, n.BitLen()
}

// Variable applies e to start via the variable-time action: for each prime
// index with e_i != 0, apply |e_i| successive l_i-isogenies, selecting
// between a point on the curve (e_i > 0) or its Elligator-sampled twist
// counterpart (e_i < 0) to pick the isogeny's direction. Leaks the sign and
// position of every nonzero e_i through its control flow and timing; safe
// only on public exponents (verification) or as Blinded's masked subroutine.
func Variable(e *classgroup.ShortExp, start *curve.Curve) (*curve.Curve, error) {
	cur := *start

	for i := 0; i < classgroup.NumPrimes; i++ {
		exp := int(e[i])
		if exp == 0 {
			continue
		}

		positive := exp > 0

		count := exp
		if !positive {
			count = -exp
		}

		for r := 0; r < count; r++ {
			next, err := applyOneIsogeny(&cur, i, positive)
			if err != nil {
				return nil, err
			}

			cur = *next
		}
	}

	return &cur, nil
}

// applyOneIsogeny samples a point of order dividing l_i via Elligator and
// cofactor scaling, retrying on a degenerate (identity) kernel, then pushes
// the curve through the resulting l_i-isogeny.
func applyOneIsogeny(e *curve.Curve, primeIndex int, positiveSign bool) (*curve.Curve, error) {
	bits := cofactorBits[primeIndex]
	nbits := cofactorBitLen[primeIndex]

	for {
		pPlus, pMinus, err := curve.Elligator(e)
		if err != nil {
			return nil, err
		}

		base := pPlus
		if !positiveSign {
			base = pMinus
		}

		k := curve.VartimeLadder(&e.A, &base, bits, nbits)
		if k.IsIdentity() == 1 {
			continue
		}

		ell := int(classgroup.Primes[primeIndex])

		codomain, _, _ := curve.TwoPointIsogeny(e, &k, ell, &k, &k)

		return &codomain, nil
	}
}
