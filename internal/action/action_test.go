// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package action

import (
	"encoding/hex"
	"testing"

	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/curve"
	"github.com/vnchari/csifish/internal/field"
)

func mustElement(t *testing.T, s string) *field.Element {
	t.Helper()

	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad fixture hex: %v", err)
	}

	var buf [field.ElementSize]byte
	copy(buf[:], raw)

	e, _ := field.New().FromBytesWithReduce(buf)

	return e
}

func curveFromHex(t *testing.T, s string) curve.Curve {
	t.Helper()

	var c curve.Curve
	c.A.X = *mustElement(t, s)
	c.A.Z = *field.New().One()

	return c
}

// exponents1, exponents2, and exponents3 and their expected results below are
// taken verbatim from the constant_time_action test in
// original_source/src/csifish/constant_time.rs. one_time_blinded_action draws
// fresh randomness internally, yet asserts a single fixed expected output per
// input: the blinding is corrected by the mop-up loop before it returns, so
// the deterministic, directly-comparable counterpart is variable_time_action
// (here, Variable) applied to the same exponents.
var exponents1 = classgroup.ShortExp{
	-5, 2, 0, -3, 4, -4, -5, 3, 5, -1, -2, -4, 0, -2, -3, 3, 1, -2, 5, 3, 4, 3, -4, 2, 2,
	3, -1, 0, 1, -3, 0, 1, -5, -2, 0, 2, 0, 0, -5, 5, 4, 5, 0, -5, 0, -1, 0, 1, 5, 1, 1,
	-3, 0, 5, 1, 2, -1, 1, -5, 0, 1, 5, 3, 2, -1, -5, 4, 2, 1, 2, -2, 0, 1, 5,
}

var exponents2 = classgroup.ShortExp{
	1, -2, 5, 1, 2, 4, -1, 0, -2, -1, 2, 5, -3, 3, 3, -1, -2, -1, 0, -5, -1, -1, -5, 4, 2,
	-1, -1, -5, -4, -3, 4, 1, 4, -2, 4, -5, 3, -1, 1, 2, 0, 4, 1, -5, 4, 1, 4, -1, 0, -5,
	3, -2, -3, 0, -1, 4, 3, -2, -5, -5, 4, 3, 2, 1, -2, 3, 3, -2, -3, -5, 5, 3, -5, 2,
}

const (
	expectedResult1 = "2D3F42F31F984ACE1F45E62D35F7C9936BA51863A204A7AF9562DF7822E01323EAECAB2D86BBA42CB9B1DAA7DAA565800BD5BF35A0297218E8CBDB0399618180"
	expectedResult2 = "09EB001955B4E84ECFFE86806E0C8313800D0475CFF3519FAF30DC5F3A060E97AE258051DABED0245406DF3BD41B4A03F3C7756C2DE8DE4AD28AC8CD8D506695"
	expectedResult3 = "2BA3EBCD76B29349F525D3B73BA841065926870C3A1F23902EF53652D880BCF6E8D2705B2F94E23551BBFE9F4FD9A4DA1EADF24EA62DC2A7F425A8EB901E31A6"
)

func TestVariableActionRegression(t *testing.T) {
	base := curve.Base()

	result1, err := Variable(&exponents1, &base)
	if err != nil {
		t.Fatalf("Variable(exponents1): %v", err)
	}

	want1 := mustElement(t, expectedResult1)
	got1 := result1.Normalized()

	if got1.A.X.Equals(want1) != 1 {
		t.Fatalf("result1 mismatch: got %s, want %s", hex.EncodeToString(got1.A.X.Bytes()), expectedResult1)
	}

	result2, err := Variable(&exponents2, &base)
	if err != nil {
		t.Fatalf("Variable(exponents2): %v", err)
	}

	want2 := mustElement(t, expectedResult2)
	got2 := result2.Normalized()

	if got2.A.X.Equals(want2) != 1 {
		t.Fatalf("result2 mismatch: got %s, want %s", hex.EncodeToString(got2.A.X.Bytes()), expectedResult2)
	}

	// e applied on top of g's result, and g applied on top of e's result,
	// must agree: the class group action is commutative.
	want3 := mustElement(t, expectedResult3)

	crossAB, err := Variable(&exponents2, result1)
	if err != nil {
		t.Fatalf("Variable(exponents2, result1): %v", err)
	}

	gotAB := crossAB.Normalized()
	if gotAB.A.X.Equals(want3) != 1 {
		t.Fatalf("cross g1-then-g2 mismatch: got %s, want %s", hex.EncodeToString(gotAB.A.X.Bytes()), expectedResult3)
	}

	crossBA, err := Variable(&exponents1, result2)
	if err != nil {
		t.Fatalf("Variable(exponents1, result2): %v", err)
	}

	gotBA := crossBA.Normalized()
	if gotBA.A.X.Equals(want3) != 1 {
		t.Fatalf("cross g2-then-g1 mismatch: got %s, want %s", hex.EncodeToString(gotBA.A.X.Bytes()), expectedResult3)
	}
}

// TestBlindedMatchesVariable checks the one property of the blinded action
// that one_time_blinded_action's own test relies on: whatever randomness the
// blinding draws, the final curve equals the plain variable-time action on
// the same exponents. Run several times since the blinding is fresh per call.
func TestBlindedMatchesVariable(t *testing.T) {
	base := curve.Base()

	want, err := Variable(&exponents1, &base)
	if err != nil {
		t.Fatalf("Variable: %v", err)
	}

	wantNorm := want.Normalized()

	for i := 0; i < 3; i++ {
		got, err := Blinded(&exponents1, &base)
		if err != nil {
			t.Fatalf("Blinded (run %d): %v", i, err)
		}

		gotNorm := got.Normalized()
		if gotNorm.A.X.Equals(&wantNorm.A.X) != 1 {
			t.Fatalf("Blinded run %d mismatch: got %s, want %s",
				i, hex.EncodeToString(gotNorm.A.X.Bytes()), hex.EncodeToString(wantNorm.A.X.Bytes()))
		}
	}
}

func TestBlindedOnNonBaseCurve(t *testing.T) {
	start := curveFromHex(t, expectedResult1)

	want, err := Variable(&exponents2, &start)
	if err != nil {
		t.Fatalf("Variable: %v", err)
	}

	got, err := Blinded(&exponents2, &start)
	if err != nil {
		t.Fatalf("Blinded: %v", err)
	}

	wantNorm := want.Normalized()
	gotNorm := got.Normalized()

	if gotNorm.A.X.Equals(&wantNorm.A.X) != 1 {
		t.Fatalf("mismatch on non-base curve: got %s, want %s",
			hex.EncodeToString(gotNorm.A.X.Bytes()), hex.EncodeToString(wantNorm.A.X.Bytes()))
	}
}
