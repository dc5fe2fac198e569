// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import (
	"encoding/binary"

	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/curve"
	"github.com/vnchari/csifish/internal/field"
	"github.com/vnchari/csifish/internal/hash"
	"github.com/vnchari/csifish/internal/merkle"
)

// Marshal encodes sig using the raw big-endian encodings from spec.md 6:
// a 4-byte curve count, a 4-byte round count, the challenge stream, one
// 40-byte class-group element and one 64-byte curve per round, and the
// Merkle proof as a 4-byte entry count followed by 4-byte label / 16-byte
// hash pairs.
func (sig *Signature) Marshal() []byte {
	rounds := len(sig.EphemeralScalars)
	entries := sig.Proof.Entries()

	out := make([]byte, 0, 8+len(sig.Challenges)+rounds*(classgroup.ElementSize+field.ElementSize)+4+len(entries)*(4+hash.Size))

	var header [8]byte

	binary.BigEndian.PutUint32(header[0:4], sig.NumCurves)
	binary.BigEndian.PutUint32(header[4:8], uint32(rounds))
	out = append(out, header[:]...)
	out = append(out, sig.Challenges...)

	for i := 0; i < rounds; i++ {
		out = append(out, sig.EphemeralScalars[i].Bytes()...)
	}

	for i := 0; i < rounds; i++ {
		out = append(out, sig.OpenedCurves[i].Bytes()...)
	}

	var countBuf [4]byte

	binary.BigEndian.PutUint32(countBuf[:], uint32(len(entries)))
	out = append(out, countBuf[:]...)

	for _, e := range entries {
		var labelBuf [4]byte

		binary.BigEndian.PutUint32(labelBuf[:], e.Label)
		out = append(out, labelBuf[:]...)
		out = append(out, e.Hash[:]...)
	}

	return out
}

// UnmarshalSignature decodes the wire format Marshal produces. hashDepth
// must match the verifying key's HashDepth: it is folded into the
// reconstructed Merkle proof, which needs it to recompute internal node
// hashes during verification.
func UnmarshalSignature(data []byte, hashDepth int) (*Signature, error) {
	if len(data) < 8 {
		return nil, ErrDeserialize
	}

	numCurves := binary.BigEndian.Uint32(data[0:4])
	rounds := int(binary.BigEndian.Uint32(data[4:8]))
	offset := 8

	challengesLen := 4 * rounds
	if len(data) < offset+challengesLen {
		return nil, ErrDeserialize
	}

	challenges := append([]byte{}, data[offset:offset+challengesLen]...)
	offset += challengesLen

	scalars := make([]classgroup.Element, rounds)

	for i := 0; i < rounds; i++ {
		if len(data) < offset+classgroup.ElementSize {
			return nil, ErrDeserialize
		}

		var buf [classgroup.ElementSize]byte

		copy(buf[:], data[offset:offset+classgroup.ElementSize])
		scalars[i] = *classgroup.FromBytes(buf)
		offset += classgroup.ElementSize
	}

	curves := make([]curve.Curve, rounds)

	for i := 0; i < rounds; i++ {
		if len(data) < offset+field.ElementSize {
			return nil, ErrDeserialize
		}

		var buf [field.ElementSize]byte

		copy(buf[:], data[offset:offset+field.ElementSize])

		var c curve.Curve
		if _, canonical := c.A.X.FromBytesWithReduce(buf); canonical != 1 {
			return nil, ErrDeserialize
		}

		c.A.Z.One()
		curves[i] = c
		offset += field.ElementSize
	}

	if len(data) < offset+4 {
		return nil, ErrDeserialize
	}

	numEntries := int(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	entries := make([]merkle.Entry, numEntries)

	for i := 0; i < numEntries; i++ {
		if len(data) < offset+4+hash.Size {
			return nil, ErrDeserialize
		}

		label := binary.BigEndian.Uint32(data[offset : offset+4])
		offset += 4

		var h [hash.Size]byte

		copy(h[:], data[offset:offset+hash.Size])
		offset += hash.Size

		entries[i] = merkle.Entry{Label: label, Hash: h}
	}

	return &Signature{
		NumCurves:        numCurves,
		Challenges:       challenges,
		EphemeralScalars: scalars,
		OpenedCurves:     curves,
		Proof:            merkle.NewProof(hashDepth, entries),
	}, nil
}
