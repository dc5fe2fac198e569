// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package classgroup

// NumPrimes is the number of small odd primes the ideal class group action
// is defined over (spec.md 2/6).
const NumPrimes = 74

// Primes lists the NumPrimes small odd primes l_i, the same 73-smallest-odd-
// primes-plus-587 construction that determines P in internal/field: p+1 =
// 4 * prod(Primes) (see internal/field.P's doc comment).
//
//nolint:gochecknoglobals
var Primes = [NumPrimes]uint16{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73,
	79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157,
	163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233, 239,
	241, 251, 257, 263, 269, 271, 277, 281, 283, 293, 307, 311, 313, 317, 331,
	337, 347, 349, 353, 359, 367, 373, 587,
}

// ShortExp is a reduced class-group element: an array of NumPrimes signed
// exponents, one per prime l_i, with prod(g_i^e_i) congruent to the
// original class-group element mod N. Produced by lattice reduction,
// consumed by the class-group action.
type ShortExp [NumPrimes]int8
