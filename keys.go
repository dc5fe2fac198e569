// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import (
	"github.com/vnchari/csifish/internal/action"
	"github.com/vnchari/csifish/internal/classgroup"
	"github.com/vnchari/csifish/internal/curve"
	"github.com/vnchari/csifish/internal/hash"
	"github.com/vnchari/csifish/internal/lattice"
	"github.com/vnchari/csifish/internal/merkle"
)

// SigningKey holds everything needed to produce signatures: the Merkle
// tree over the public commitment curves, the curves themselves, and the
// secret class-group elements that produced each curve by acting on the
// base curve (spec.md 3/4.S).
type SigningKey struct {
	params        Params
	tree          *merkle.Tree
	publicCurves  []curve.Curve
	secretActions []classgroup.Element
}

// VerifyingKey is the Merkle root and key published alongside a signing
// key; it carries no secret material.
type VerifyingKey struct {
	params Params
	root   [hash.Size]byte
	key    [hash.Size]byte
}

// GenerateKeypair draws C independent secret class-group elements, reduces
// each to a short exponent, and applies the constant-time blinded action
// to the base curve to obtain the public commitment curves, which are then
// committed into a Merkle tree (spec.md 4.S). The C curves are produced
// in parallel (spec.md 5); each draw and blinded action is independent.
func GenerateKeypair(p Params) (*SigningKey, *VerifyingKey, error) {
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	type commitment struct {
		secret classgroup.Element
		public curve.Curve
	}

	base := curve.Base()

	commitments, err := parallelMap(int(p.Curves), func(int) (commitment, error) {
		secret, err := classgroup.Random()
		if err != nil {
			return commitment{}, err
		}

		short, err := lattice.Reduce(secret)
		if err != nil {
			return commitment{}, err
		}

		c, err := action.Blinded(short, &base)
		if err != nil {
			return commitment{}, err
		}

		return commitment{secret: *secret, public: c.Normalized()}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	secrets := make([]classgroup.Element, p.Curves)
	publics := make([]curve.Curve, p.Curves)

	for i, c := range commitments {
		secrets[i] = c.secret
		publics[i] = c.public
	}

	tree, err := merkle.FromLeaves(publics, p.HashDepth)
	if err != nil {
		return nil, nil, err
	}

	sk := &SigningKey{
		params:        p,
		tree:          tree,
		publicCurves:  publics,
		secretActions: secrets,
	}

	vk := &VerifyingKey{
		params: p,
		root:   tree.Root(),
		key:    tree.MerkleKey(),
	}

	return sk, vk, nil
}

// VerifyingKey returns the public counterpart of sk.
func (sk *SigningKey) VerifyingKey() *VerifyingKey {
	return &VerifyingKey{
		params: sk.params,
		root:   sk.tree.Root(),
		key:    sk.tree.MerkleKey(),
	}
}

// Bytes returns the 2*hash.Size-byte encoding of vk's root and key.
func (vk *VerifyingKey) Bytes() []byte {
	out := make([]byte, 0, 2*hash.Size)
	out = append(out, vk.root[:]...)
	out = append(out, vk.key[:]...)

	return out
}

// VerifyingKeyFromBytes reconstructs a VerifyingKey from the encoding
// Bytes produces, under the given parameters.
func VerifyingKeyFromBytes(p Params, data []byte) (*VerifyingKey, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	if len(data) != 2*hash.Size {
		return nil, ErrDeserialize
	}

	vk := &VerifyingKey{params: p}
	copy(vk.root[:], data[:hash.Size])
	copy(vk.key[:], data[hash.Size:])

	return vk, nil
}
