// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package csifish implements the CSI-FiSh post-quantum signature scheme: a
// Fiat-Shamir proof of knowledge of a class-group action, built on top of
// internal/field, internal/curve, internal/classgroup, internal/action,
// internal/lattice, internal/hash, and internal/merkle.
package csifish

import "fmt"

// Params fixes the (C, R, H) triple the Rust implementation carries as
// const generics <CURVES, ROUNDS, HASHES>: the number of commitment curves
// per public key, the number of Fiat-Shamir challenge rounds, and the hash
// iteration depth. Go has no const generics, so this is a runtime-
// constructed, validated struct instead of a type parameter.
type Params struct {
	// Curves is the number of commitment curves C. Must be a power of two
	// (the Merkle tree over them requires it).
	Curves uint32

	// Rounds is the number of challenge rounds R.
	Rounds uint32

	// HashDepth is the hash iteration depth H passed to internal/hash.
	HashDepth int
}

// Standard exposes the (C=256, R=7, H=11) parameter set used throughout
// spec.md's testable-properties scenarios.
//
//nolint:gochecknoglobals
var Standard = Params{Curves: 256, Rounds: 7, HashDepth: 11}

func (p Params) validate() error {
	if p.Curves == 0 || p.Curves&(p.Curves-1) != 0 {
		return fmt.Errorf("csifish: Curves must be a positive power of two, got %d", p.Curves)
	}

	if p.Rounds == 0 {
		return fmt.Errorf("csifish: Rounds must be positive")
	}

	if p.HashDepth < 1 {
		return fmt.Errorf("csifish: HashDepth must be at least 1")
	}

	return nil
}
