// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package hash

import (
	"bytes"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	h := New(11)

	a := h.Hash([]byte("input"))
	b := h.Hash([]byte("input"))

	if a != b {
		t.Fatalf("Hash not deterministic: %x != %x", a, b)
	}
}

func TestHashDiffersOnInput(t *testing.T) {
	h := New(11)

	a := h.Hash([]byte("input-a"))
	b := h.Hash([]byte("input-b"))

	if a == b {
		t.Fatalf("distinct inputs collided: %x", a)
	}
}

func TestHashDiffersOnRoundCount(t *testing.T) {
	a := New(1).Hash([]byte("input"))
	b := New(2).Hash([]byte("input"))

	if a == b {
		t.Fatalf("distinct round counts collided: %x", a)
	}
}

// TestHashExtendablePrefixMatchesHash checks the identity that falls out of
// the folding construction: reading Size bytes from HashExtendable's
// returned XOF reproduces Hash's fixed-size digest for the same input and
// round count.
func TestHashExtendablePrefixMatchesHash(t *testing.T) {
	h := New(4)

	want := h.Hash([]byte("message"))

	xof := h.HashExtendable([]byte("message"))

	var got [Size]byte
	if _, err := xof.Read(got[:]); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if want != got {
		t.Fatalf("prefix mismatch: want %x, got %x", want, got)
	}
}

func TestHashExtendableProducesMoreThanSizeBytes(t *testing.T) {
	h := New(3)

	xof := h.HashExtendable([]byte("message"))

	buf := make([]byte, Size*4)
	if _, err := xof.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if bytes.Equal(buf[:Size], make([]byte, Size)) {
		t.Fatalf("unexpected all-zero output")
	}
}
