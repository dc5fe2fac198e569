// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import "testing"

func TestSeedDeterministicReproducesKeypair(t *testing.T) {
	defer ResetRandomness()

	SeedDeterministic([]byte("same passphrase"))
	_, vk1, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (first): %v", err)
	}

	SeedDeterministic([]byte("same passphrase"))
	_, vk2, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (second): %v", err)
	}

	if vk1.root != vk2.root || vk1.key != vk2.key {
		t.Fatal("re-seeding with the same passphrase produced different verifying keys")
	}
}

func TestSeedDeterministicDiffersByPassphrase(t *testing.T) {
	defer ResetRandomness()

	SeedDeterministic([]byte("passphrase one"))
	_, vk1, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (first): %v", err)
	}

	SeedDeterministic([]byte("passphrase two"))
	_, vk2, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (second): %v", err)
	}

	if vk1.root == vk2.root {
		t.Fatal("two different passphrases produced the same Merkle root")
	}
}

func TestSeedDeterministicSignRoundTrip(t *testing.T) {
	defer ResetRandomness()

	SeedDeterministic([]byte("sign-roundtrip-seed"))
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("deterministic message")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := Verify(vk, msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestResetRandomnessRestoresNonDeterminism(t *testing.T) {
	SeedDeterministic([]byte("transient"))
	ResetRandomness()

	_, vk1, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (first): %v", err)
	}

	_, vk2, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (second): %v", err)
	}

	if vk1.root == vk2.root {
		t.Fatal("ResetRandomness did not restore a fresh randomness source")
	}
}
