// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package field

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}

	return out
}

// TestAddThenSub mirrors the spec's scenario 1: add_then_sub(a, b) == a.
func TestAddThenSub(t *testing.T) {
	a, reduced := New().FromBytesWithReduce([ElementSize]byte(repeatByte(0x01, ElementSize)))
	if reduced == 0 {
		t.Fatal("expected a canonical")
	}

	b, reduced := New().FromBytesWithReduce([ElementSize]byte(repeatByte(0x02, ElementSize)))
	if reduced == 0 {
		t.Fatal("expected b canonical")
	}

	sum := New().Add(a, b)
	got := New().Subtract(sum, b)

	if got.Equals(a) != 1 {
		t.Fatalf("add_then_sub mismatch: got %s, want %s", hex.EncodeToString(got.Bytes()), hex.EncodeToString(a.Bytes()))
	}

	if !bytes.Equal(got.Bytes(), a.Bytes()) {
		t.Fatal("byte encodings differ")
	}
}

func TestInverse(t *testing.T) {
	one := New().One()

	a, _ := New().FromBytesWithReduce([ElementSize]byte(repeatByte(0x05, ElementSize)))

	inv := New().Invert(a)
	prod := New().Multiply(a, inv)

	if prod.Equals(one) != 1 {
		t.Fatalf("a * inv(a) != 1: got %s", hex.EncodeToString(prod.Bytes()))
	}
}

func TestConstantTimeBoundedExp(t *testing.T) {
	a, _ := New().FromBytesWithReduce([ElementSize]byte(repeatByte(0x03, ElementSize)))

	const e = 17

	var got MontgomeryDomainFieldElement
	ConstantTimeBoundedExp(&got, &a.E, e)

	want := New().Set(a)
	for i := 1; i < e; i++ {
		want.Multiply(want, a)
	}

	gotE := &Element{E: got}
	if gotE.Equals(want) != 1 {
		t.Fatalf("bounded exp mismatch: got %s, want %s", hex.EncodeToString(gotE.Bytes()), hex.EncodeToString(want.Bytes()))
	}
}

func TestCMove(t *testing.T) {
	a, _ := New().FromBytesWithReduce([ElementSize]byte(repeatByte(0x11, ElementSize)))
	b, _ := New().FromBytesWithReduce([ElementSize]byte(repeatByte(0x22, ElementSize)))

	out := New().CMove(0, a, b)
	if out.Equals(a) != 1 {
		t.Fatal("CMove(0, a, b) should equal a")
	}

	out = New().CMove(1, a, b)
	if out.Equals(b) != 1 {
		t.Fatal("CMove(1, a, b) should equal b")
	}
}

func TestZeroIsZero(t *testing.T) {
	z := New()
	if z.IsZero() != 1 {
		t.Fatal("New() should be zero")
	}

	one := New().One()
	if one.IsZero() != 0 {
		t.Fatal("One() should not be zero")
	}
}
