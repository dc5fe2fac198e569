// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import "errors"

var (
	// ErrDeserialize indicates a malformed encoding: signature data too
	// short for the counts its header declares, an opened curve coefficient
	// that is not a canonical field element, or a verifying key of the
	// wrong length.
	ErrDeserialize = errors.New("csifish: malformed signature encoding")

	// ErrVerificationFailed is the sole failure a caller sees from Verify:
	// the Merkle proof did not reconstruct the claimed root, the
	// recomputed challenges did not match pointwise, or the signature's
	// shape was inconsistent with the verifying key's parameters.
	ErrVerificationFailed = errors.New("csifish: signature does not verify")

	// ErrSigning covers I/O failure reading from the challenge XOF or the
	// system RNG while signing; it should not occur in practice.
	ErrSigning = errors.New("csifish: signing failed")
)
