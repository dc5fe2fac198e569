// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice

import (
	"testing"

	"github.com/vnchari/csifish/internal/classgroup"
)

func TestReduceOneRoundZero(t *testing.T) {
	out, err := ReduceOneRound(classgroup.Zero())
	if err != nil {
		t.Fatalf("ReduceOneRound: %v", err)
	}

	for i, v := range out {
		if v != 0 {
			t.Fatalf("index %d: got %d, want 0", i, v)
		}
	}
}

func TestReduceOneRoundSmallValue(t *testing.T) {
	e, err := classgroup.Random()
	if err != nil {
		t.Fatalf("Random: %v", err)
	}

	out, err := ReduceOneRound(e)
	if err != nil {
		t.Fatalf("ReduceOneRound: %v", err)
	}

	for i, v := range out {
		if v < -127 || v > 127 {
			t.Fatalf("index %d out of int8 range: %d", i, v)
		}
	}
}

func TestReduceProducesBoundedExponents(t *testing.T) {
	e, err := classgroup.Random()
	if err != nil {
		t.Fatalf("Random: %v", err)
	}

	out, err := Reduce(e)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	for i, v := range out {
		if v < -127 || v > 127 {
			t.Fatalf("index %d out of int8 range: %d", i, v)
		}
	}
}
