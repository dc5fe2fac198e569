// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package merkle implements a keyed, labelled Merkle tree over Montgomery
// curve coefficients: every node hash is bound to a random per-tree key and
// to a position label, so a proof cannot be replayed against a different
// tree or position.
package merkle

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"sort"

	"github.com/vnchari/csifish/internal/csrand"
	"github.com/vnchari/csifish/internal/curve"
	"github.com/vnchari/csifish/internal/hash"
)

// ErrVerificationFailed indicates a proof does not reconstruct the claimed
// root, or is missing a sibling hash it needs to.
var ErrVerificationFailed = errors.New("merkle: verification failed")

// Tree is a binary Merkle tree over a power-of-two number of leaves, built
// from Montgomery curve coefficients. Nodes are labelled by position in a
// standard binary-heap layout: the root is label 1, and a node's children
// are 2*label and 2*label+1.
type Tree struct {
	root      [hash.Size]byte
	merkleKey [hash.Size]byte
	layers    [][][hash.Size]byte // layers[0] is the leaf layer.
	numLeaves uint32
	numHashes int
}

func label4Bytes(label uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], label)

	return b[:]
}

// FromLeaves builds a tree over leaves, keyed with a freshly sampled random
// merkle key. numHashes is forwarded to hash.New for every node label.
func FromLeaves(leaves []curve.Curve, numHashes int) (*Tree, error) {
	n := uint32(len(leaves))
	if n == 0 || n&(n-1) != 0 {
		return nil, errors.New("merkle: leaf count must be a positive power of two")
	}

	var merkleKey [hash.Size]byte
	if err := csrand.Read(merkleKey[:]); err != nil {
		return nil, err
	}

	hasher := hash.New(numHashes)

	leafLayer := make([][hash.Size]byte, n)
	for i, c := range leaves {
		label := n + uint32(i)

		v := append([]byte{}, c.Bytes()...)
		v = append(v, label4Bytes(label)...)
		v = append(v, merkleKey[:]...)

		leafLayer[i] = hasher.Hash(v)
	}

	layers := [][][hash.Size]byte{leafLayer}

	depth := bits.Len32(n) - 1
	for d := 0; d < depth; d++ {
		prev := layers[len(layers)-1]
		next := make([][hash.Size]byte, len(prev)/2)

		for i := 0; i < len(next); i++ {
			label := (n >> uint(len(layers))) + uint32(i)

			v := append([]byte{}, prev[2*i][:]...)
			v = append(v, prev[2*i+1][:]...)
			v = append(v, label4Bytes(label)...)
			v = append(v, merkleKey[:]...)

			next[i] = hasher.Hash(v)
		}

		layers = append(layers, next)
	}

	return &Tree{
		root:      layers[len(layers)-1][0],
		merkleKey: merkleKey,
		layers:    layers,
		numLeaves: n,
		numHashes: numHashes,
	}, nil
}

// LeafHash computes a single leaf's hash the same way FromLeaves does,
// for callers (the signature protocol's Verify) that recompute one opened
// leaf from a curve and claimed label rather than rebuilding a whole tree.
func LeafHash(numHashes int, c curve.Curve, label uint32, merkleKey [hash.Size]byte) [hash.Size]byte {
	v := append([]byte{}, c.Bytes()...)
	v = append(v, label4Bytes(label)...)
	v = append(v, merkleKey[:]...)

	return hash.New(numHashes).Hash(v)
}

// Depth returns the number of layers above the leaves.
func (t *Tree) Depth() int { return len(t.layers) - 1 }

// Root returns the tree's root hash.
func (t *Tree) Root() [hash.Size]byte { return t.root }

// MerkleKey returns the tree's random keying value.
func (t *Tree) MerkleKey() [hash.Size]byte { return t.merkleKey }

// Leaves returns the leaf-layer hashes.
func (t *Tree) Leaves() [][hash.Size]byte { return t.layers[0] }

// Entry is a (label, hash) pair: a proof element or an opened leaf.
type Entry struct {
	Label uint32
	Hash  [hash.Size]byte
}

// Proof is the set of sibling hashes needed to recompute the root from a
// chosen set of opened leaves.
type Proof struct {
	numHashes int
	entries   []Entry
}

// NewProof reconstructs a Proof from its wire components, for callers that
// deserialise a proof rather than compute one via ProofFromLeafIndices.
func NewProof(numHashes int, entries []Entry) *Proof {
	return &Proof{numHashes: numHashes, entries: entries}
}

// Entries returns the proof's (label, hash) sibling pairs.
func (p *Proof) Entries() []Entry {
	return p.entries
}

// ProofFromLeafIndices returns the minimal set of sibling hashes an opener
// of leafIndices needs to recompute the root.
func (t *Tree) ProofFromLeafIndices(leafIndices []uint32) *Proof {
	level := make([]uint32, len(leafIndices))
	for i, idx := range leafIndices {
		level[i] = idx + t.numLeaves
	}

	known := map[uint32]bool{}
	unknown := map[uint32]bool{}

	for d := 0; d < t.Depth(); d++ {
		for _, l := range level {
			known[l] = true
		}

		next := make([]uint32, 0, len(level))

		for _, idx := range level {
			isOdd := idx % 2
			sibling := idx + 1 - 2*isOdd
			parent := idx / 2

			if !known[sibling] {
				unknown[sibling] = true
			}

			next = append(next, parent)
		}

		level = next
	}

	proofIndices := make([]uint32, 0, len(unknown))
	for idx := range unknown {
		proofIndices = append(proofIndices, idx)
	}

	sort.Slice(proofIndices, func(i, j int) bool { return proofIndices[i] < proofIndices[j] })

	entries := make([]Entry, 0, len(proofIndices))

	for _, idx := range proofIndices {
		nodeLevel := bits.Len32(idx) - 1
		posInLevel := idx - (1 << uint(nodeLevel))

		entries = append(entries, Entry{
			Label: idx,
			Hash:  t.layers[t.Depth()-nodeLevel][posInLevel],
		})
	}

	return &Proof{numHashes: t.numHashes, entries: entries}
}
