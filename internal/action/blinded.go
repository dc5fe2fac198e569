// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package action

import (
	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/csrand"
	"github.com/vnchari/csifish/internal/curve"
)

const (
	// numBatches partitions the NumPrimes indices by i mod numBatches.
	numBatches = 4

	// mergeAfter batches of iterations elapse before all remaining active
	// indices are folded into a single final batch.
	mergeAfter = 2

	// blindMaxExp bounds the uniform blinding draw to [-blindMaxExp, blindMaxExp].
	blindMaxExp = 2

	// isogenyAttemptBudget is the fixed number of mop-up attempts per index.
	isogenyAttemptBudget = 2
)

// primeSet is a membership set over the NumPrimes indices, used only for
// public scheduling bookkeeping (which indices a batch still must visit),
// never for the cryptographically sensitive state itself.
type primeSet [classgroup.NumPrimes]bool

func (s primeSet) isEmpty() bool {
	for _, v := range s {
		if v {
			return false
		}
	}

	return true
}

// scaleByPrimeSet multiplies p by the product of l_j for every index j
// marked in set, via one Montgomery ladder per factor. This plays the role
// of constant_time.rs's single combined variable_time_differential_addition_chain;
// the two reach the identical resulting point (scalar multiplication is
// associative), at the cost of one ladder per factor instead of one combined
// ladder over the product.
func scaleByPrimeSet(curveA *curve.Point, p *curve.Point, set primeSet) curve.Point {
	cur := *p

	for j, active := range set {
		if !active {
			continue
		}

		bits, nbits := smallScalarBits(uint64(classgroup.Primes[j]))
		cur = curve.VartimeLadder(curveA, &cur, bits, nbits)
	}

	return cur
}

func smallScalarBits(n uint64) ([]uint64, int) {
	if n == 0 {
		return []uint64{0}, 1
	}

	nbits := 0
	for m := n; m != 0; m >>= 1 {
		nbits++
	}

	return []uint64{n}, nbits
}

func sampleBlind() (int8, error) {
	for {
		var buf [1]byte
		if err := csrand.Read(buf[:]); err != nil {
			return 0, err
		}

		val := buf[0] >> 5
		if val <= 2*blindMaxExp {
			return int8(val) - blindMaxExp, nil
		}
	}
}

// nonZeroMask8 returns 1 if v != 0, else 0, without a data-dependent branch.
func nonZeroMask8(v uint8) uint64 {
	return uint64((v | (^v + 1)) >> 7)
}

// Blinded applies e to start via the one-time blinded action: a variable-
// time application of e perturbed by uniform per-index blinding, followed
// by a batched mop-up loop that repeatedly performs dummy-or-real isogeny
// attempts so that whether an isogeny actually fired at a given position is
// masked by conditional moves rather than visible in control flow.
func Blinded(e *classgroup.ShortExp, start *curve.Curve) (*curve.Curve, error) {
	blindedExp := *e

	var blinding [classgroup.NumPrimes]int8
	for i := range blinding {
		b, err := sampleBlind()
		if err != nil {
			return nil, err
		}

		blindedExp[i] += b
		blinding[i] = -b
	}

	cur, err := Variable(&blindedExp, start)
	if err != nil {
		return nil, err
	}

	var isogenyCount [classgroup.NumPrimes]uint8
	for i := range isogenyCount {
		isogenyCount[i] = isogenyAttemptBudget
	}

	var done [numBatches]bool

	var batches [numBatches]primeSet
	for j := 0; j < classgroup.NumPrimes; j++ {
		batches[j%numBatches][j] = true
	}

	curBatch := 0
	iter := 0

	for {
		if iter > mergeAfter*numBatches {
			curBatch = 0
			batches[0] = primeSet{}

			for idx := 0; idx < classgroup.NumPrimes; idx++ {
				if isogenyCount[idx] != 0 {
					batches[0][idx] = true
					done[0] = false
				}
			}

			if done[0] {
				return cur, nil
			}
		} else {
			earlyFinish := 0
			for done[curBatch] {
				if earlyFinish == numBatches {
					return cur, nil
				}

				earlyFinish++
				curBatch = (curBatch + 1) % numBatches
			}
		}

		pPlus, pMinus, err := curve.Elligator(cur)
		if err != nil {
			return nil, err
		}

		complement := complementOf(batches[curBatch])

		p0 := curve.Double(&cur.A, &pPlus)
		p0 = scaleByPrimeSet(&cur.A, &p0, complement)
		p0 = curve.Double(&cur.A, &p0)

		p1 := curve.Double(&cur.A, &pMinus)
		p1 = scaleByPrimeSet(&cur.A, &p1, complement)
		p1 = curve.Double(&cur.A, &p1)

		remaining := batches[curBatch]

		for idx := classgroup.NumPrimes - 1; idx >= 0; idx-- {
			if !batches[curBatch][idx] {
				continue
			}

			curExp := blinding[idx]
			signBit := uint64((uint8(curExp) >> 7) & 1)

			pS := curve.Point{}
			p1s := curve.Point{}
			pS.ConditionalMove(signBit, &p0, &p1)
			p1s.ConditionalMove(signBit, &p1, &p0)

			remaining[idx] = false

			k := scaleByPrimeSet(&cur.A, &pS, remaining)
			p1s = scaleByPrimeSet(&cur.A, &p1s, singleton(idx))

			if k.IsIdentity() != 1 {
				ell := int(classgroup.Primes[idx])

				eIso, pSIso, p1sIso := curve.TwoPointIsogeny(cur, &k, ell, &pS, &p1s)
				pSScaled := scaleByPrimeSet(&cur.A, &pS, singleton(idx))

				uexp := uint8(curExp)
				isNonZero := nonZeroMask8(uexp)

				pS.ConditionalMove(isNonZero, &pSScaled, &pSIso)
				p1s.ConditionalMove(isNonZero, &p1s, &p1sIso)
				cur.A.ConditionalMove(isNonZero, &cur.A, &eIso.A)

				// update = +1 if this index's sign was positive, -1 if negative.
				var update int8 = 1
				if signBit == 1 {
					update = -1
				}

				maskedUpdate := int8(isNonZero) * update
				blinding[idx] -= maskedUpdate

				isogenyCount[idx]--
			}

			p0.ConditionalMove(signBit, &pS, &p1s)
			p1.ConditionalMove(signBit, &p1s, &pS)
		}

		batches[curBatch] = primeSet{}

		for idx := 0; idx < classgroup.NumPrimes; idx++ {
			if idx%numBatches == curBatch && isogenyCount[idx] != 0 {
				batches[curBatch][idx] = true
			}
		}

		done[curBatch] = batches[curBatch].isEmpty()
		curBatch = (curBatch + 1) % numBatches
		iter++
	}
}

func complementOf(s primeSet) primeSet {
	var out primeSet
	for i, v := range s {
		out[i] = !v
	}

	return out
}

func singleton(idx int) primeSet {
	var out primeSet
	out[idx] = true

	return out
}
