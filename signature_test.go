// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import (
	"crypto/rand"
	"testing"

	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/curve"
)

// testParams keeps the round trip fast: the protocol logic does not depend
// on the size of C or R, only spec.md's literal scenario 4 fixes C=256,
// R=7, H=11.
var testParams = Params{Curves: 8, Rounds: 4, HashDepth: 2}

func TestSignVerifyRoundTrip(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := make([]byte, 1024)
	if _, err := rand.Read(msg); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	for i := 0; i < 10; i++ {
		sig, err := Sign(sk, msg)
		if err != nil {
			t.Fatalf("Sign (iteration %d): %v", i, err)
		}

		if err := Verify(vk, msg, sig); err != nil {
			t.Fatalf("Verify (iteration %d): %v", i, err)
		}
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("the original message")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := Verify(vk, []byte("a different message"), sig); err == nil {
		t.Fatal("expected verification failure on a different message")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	sk, _, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	_, otherVk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (second): %v", err)
	}

	msg := []byte("hello")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := Verify(otherVk, msg, sig); err == nil {
		t.Fatal("expected verification failure against a foreign verifying key")
	}
}

func TestVerifyRejectsFlippedChallengeByte(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("hello")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	sig.Challenges[0] ^= 0xFF

	if err := Verify(vk, msg, sig); err == nil {
		t.Fatal("expected verification failure on a flipped challenge byte")
	}
}

func TestVerifyRejectsFlippedResponseScalar(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("hello")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	buf := sig.EphemeralScalars[0].Bytes()
	buf[0] ^= 0xFF

	var arr [40]byte

	copy(arr[:], buf)
	sig.EphemeralScalars[0] = *classgroup.FromBytes(arr)

	if err := Verify(vk, msg, sig); err == nil {
		t.Fatal("expected verification failure on a flipped response scalar")
	}
}

func TestVerifyRejectsFlippedOpenedCurve(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("hello")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	b := sig.OpenedCurves[0].Bytes()
	b[0] ^= 0xFF

	var arr [64]byte

	copy(arr[:], b)
	sig.OpenedCurves[0] = curve.FromBytes(arr)

	if err := Verify(vk, msg, sig); err == nil {
		t.Fatal("expected verification failure on a flipped opened curve")
	}
}

func TestVerifyRejectsFlippedProofEntry(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("hello")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	entries := sig.Proof.Entries()
	if len(entries) == 0 {
		t.Skip("no proof entries to flip for this round/curve count")
	}

	entries[0].Hash[0] ^= 0xFF

	if err := Verify(vk, msg, sig); err == nil {
		t.Fatal("expected verification failure on a flipped proof entry")
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("marshal me")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	encoded := sig.Marshal()

	decoded, err := UnmarshalSignature(encoded, testParams.HashDepth)
	if err != nil {
		t.Fatalf("UnmarshalSignature: %v", err)
	}

	if err := Verify(vk, msg, decoded); err != nil {
		t.Fatalf("Verify(decoded): %v", err)
	}
}
