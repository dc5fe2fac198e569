// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package lattice reduces a class-group element to a short representative
// vector of per-prime exponents (classgroup.ShortExp), via a nearest-plane
// descent against a precomputed basis followed by a pool-based local search
// (Doerner-Lockwood-Wagner style descent).
package lattice

import (
	"math/big"

	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/csrand"
)

// dot computes the real-valued dot product of b against the basisIdx-th row
// of the Gram-Schmidt orthogonalised basis, at sufficient precision for the
// subsequent rounding division to be exact to the nearest integer.
func dot(b []*big.Int, basisIdx int) *big.Float {
	acc := new(big.Float).SetPrec(512)

	row := orthoBasis[NumPrimes*basisIdx : NumPrimes*(basisIdx+1)]
	for i, coeff := range row {
		term := new(big.Float).SetPrec(512).SetFloat64(coeff)
		term.Mul(term, new(big.Float).SetPrec(512).SetInt(b[i]))
		acc.Add(acc, term)
	}

	return acc
}

// roundNearest rounds a big.Float to the nearest big.Int, ties away from zero.
func roundNearest(f *big.Float) *big.Int {
	half := big.NewFloat(0.5)

	neg := f.Sign() < 0

	abs := new(big.Float).Abs(f)
	abs.Add(abs, half)

	i, _ := abs.Int(nil)
	if neg {
		i.Neg(i)
	}

	return i
}

// nearestPlane reduces the coordinate vector b (length NumPrimes, b[0] the
// class-group element, the rest zero) against the precomputed basis via
// Babai's nearest-plane algorithm, returning the resulting short integer
// combination as per-prime exponents truncated to int8 (placeholder basis
// and Gram-Schmidt data guarantee this fits; see constants.go).
func nearestPlane(b []*big.Int) [NumPrimes]int8 {
	for basisIdx := NumPrimes - 1; basisIdx >= 0; basisIdx-- {
		numerator := dot(b, basisIdx)

		denom := new(big.Float).SetPrec(512).SetFloat64(orthoNorms[basisIdx])

		quotient := new(big.Float).SetPrec(512).Quo(numerator, denom)
		c := roundNearest(quotient)

		if c.Sign() == 0 {
			continue
		}

		row := basis[NumPrimes*basisIdx : NumPrimes*(basisIdx+1)]
		for dim := 0; dim < NumPrimes; dim++ {
			term := new(big.Int).Mul(c, big.NewInt(row[dim]))
			b[dim].Sub(b[dim], term)
		}
	}

	var out [NumPrimes]int8
	for i, v := range b {
		out[i] = int8(v.Int64())
	}

	return out
}

func l1(a [NumPrimes]int8) uint16 {
	var sum uint16
	for _, v := range a {
		if v < 0 {
			sum += uint16(-v)
		} else {
			sum += uint16(v)
		}
	}

	return sum
}

func subPool(a [NumPrimes]int8, poolIdx int) [NumPrimes]int8 {
	var out [NumPrimes]int8

	row := pool[NumPrimes*poolIdx : NumPrimes*(poolIdx+1)]
	for i := range out {
		out[i] = a[i] - row[i]
	}

	return out
}

func addPool(a [NumPrimes]int8, poolIdx int) [NumPrimes]int8 {
	var out [NumPrimes]int8

	row := pool[NumPrimes*poolIdx : NumPrimes*(poolIdx+1)]
	for i := range out {
		out[i] = a[i] + row[i]
	}

	return out
}

// dlwReduce repeatedly perturbs e by pool vectors, keeping any perturbation
// that strictly shortens the L1 norm, until a full pass over the pool yields
// no further improvement.
func dlwReduce(e [NumPrimes]int8) [NumPrimes]int8 {
	cur := e
	bestNorm := l1(cur)

	for {
		improved := false

		for idx := 0; idx < PoolSize; idx++ {
			if sum := addPool(cur, idx); l1(sum) < bestNorm {
				bestNorm = l1(sum)
				cur = sum
				improved = true
			}

			if diff := subPool(cur, idx); l1(diff) < bestNorm {
				bestNorm = l1(diff)
				cur = diff
				improved = true
			}
		}

		if !improved {
			return cur
		}
	}
}

func randomPoolIndex() (int, error) {
	var buf [4]byte
	if err := csrand.Read(buf[:]); err != nil {
		return 0, err
	}

	v := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])

	return int(v % PoolSize), nil
}

// Reduce finds a short exponent vector representing the same class-group
// element as e: a nearest-plane descent against the precomputed basis,
// followed by DLW descent, followed by two random pool-shifted restarts
// (each kept only if it strictly improves on the best result so far).
func Reduce(e *classgroup.Element) (*classgroup.ShortExp, error) {
	reduced, err := ReduceOneRound(e)
	if err != nil {
		return nil, err
	}

	best := dlwReduce(*reduced)
	bestNorm := l1(best)

	for i := 0; i < 2; i++ {
		r1, err := randomPoolIndex()
		if err != nil {
			return nil, err
		}

		r2, err := randomPoolIndex()
		if err != nil {
			return nil, err
		}

		shifted := addPool(addPool(best, r1), r2)

		candidate := dlwReduce(shifted)
		if norm := l1(candidate); norm < bestNorm {
			bestNorm = norm
			best = candidate
		}
	}

	out := classgroup.ShortExp(best)

	return &out, nil
}

// ReduceOneRound runs only the nearest-plane descent, skipping the DLW
// local-search passes. Used where a fast, public short vector is enough.
func ReduceOneRound(e *classgroup.Element) (*[NumPrimes]int8, error) {
	b := make([]*big.Int, NumPrimes)
	b[0] = new(big.Int).SetBytes(e.Bytes())

	for i := 1; i < NumPrimes; i++ {
		b[i] = new(big.Int)
	}

	out := nearestPlane(b)

	return &out, nil
}
