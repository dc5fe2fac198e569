// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import "testing"

func TestGenerateKeypairProducesUsableKeys(t *testing.T) {
	sk, vk, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	if len(sk.publicCurves) != int(testParams.Curves) {
		t.Fatalf("got %d public curves, want %d", len(sk.publicCurves), testParams.Curves)
	}

	if len(sk.secretActions) != int(testParams.Curves) {
		t.Fatalf("got %d secret actions, want %d", len(sk.secretActions), testParams.Curves)
	}

	derived := sk.VerifyingKey()
	if derived.root != vk.root || derived.key != vk.key {
		t.Fatal("SigningKey.VerifyingKey() does not match the key returned by GenerateKeypair")
	}
}

func TestGenerateKeypairRejectsBadParams(t *testing.T) {
	cases := []Params{
		{Curves: 0, Rounds: 1, HashDepth: 1},
		{Curves: 3, Rounds: 1, HashDepth: 1}, // not a power of two
		{Curves: 4, Rounds: 0, HashDepth: 1},
		{Curves: 4, Rounds: 1, HashDepth: 0},
	}

	for _, p := range cases {
		if _, _, err := GenerateKeypair(p); err == nil {
			t.Fatalf("expected GenerateKeypair(%+v) to fail validation", p)
		}
	}
}

func TestGenerateKeypairIsNotDeterministic(t *testing.T) {
	_, vk1, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	_, vk2, err := GenerateKeypair(testParams)
	if err != nil {
		t.Fatalf("GenerateKeypair (second): %v", err)
	}

	if vk1.root == vk2.root {
		t.Fatal("two independent keypairs produced the same Merkle root")
	}
}
