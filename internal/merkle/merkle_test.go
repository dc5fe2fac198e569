// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package merkle

import (
	"testing"

	"github.com/vnchari/csifish/internal/curve"
	"github.com/vnchari/csifish/internal/field"
)

func leafCurve(t *testing.T, x uint64) curve.Curve {
	t.Helper()

	var c curve.Curve
	c.A.X = *field.New().One()

	for i := uint64(0); i < x; i++ {
		c.A.X.Add(&c.A.X, field.New().One())
	}

	c.A.Z = *field.New().One()

	return c
}

func buildTestTree(t *testing.T, n int) (*Tree, []curve.Curve) {
	t.Helper()

	leaves := make([]curve.Curve, n)
	for i := range leaves {
		leaves[i] = leafCurve(t, uint64(i)+1)
	}

	tree, err := FromLeaves(leaves, 3)
	if err != nil {
		t.Fatalf("FromLeaves: %v", err)
	}

	return tree, leaves
}

func TestMerkleRoundTrip(t *testing.T) {
	tree, _ := buildTestTree(t, 16)

	openedIdx := []uint32{0, 3, 14}
	proof := tree.ProofFromLeafIndices(openedIdx)

	leaves := tree.Leaves()

	opened := make([]Entry, len(openedIdx))
	for i, idx := range openedIdx {
		opened[i] = Entry{Label: tree.numLeaves + idx, Hash: leaves[idx]}
	}

	if err := proof.Verify(tree.Root(), opened, tree.MerkleKey()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestMerkleRejectsWrongRoot(t *testing.T) {
	tree, _ := buildTestTree(t, 8)

	openedIdx := []uint32{2}
	proof := tree.ProofFromLeafIndices(openedIdx)

	leaves := tree.Leaves()
	opened := []Entry{{Label: tree.numLeaves + 2, Hash: leaves[2]}}

	var badRoot [16]byte
	if err := proof.Verify(badRoot, opened, tree.MerkleKey()); err == nil {
		t.Fatal("expected verification failure on wrong root")
	}
}

func TestMerkleRejectsFlippedLeaf(t *testing.T) {
	tree, _ := buildTestTree(t, 8)

	openedIdx := []uint32{5}
	proof := tree.ProofFromLeafIndices(openedIdx)

	leaves := tree.Leaves()
	flipped := leaves[5]
	flipped[0] ^= 0xFF

	opened := []Entry{{Label: tree.numLeaves + 5, Hash: flipped}}

	if err := proof.Verify(tree.Root(), opened, tree.MerkleKey()); err == nil {
		t.Fatal("expected verification failure on flipped leaf")
	}
}

func TestMerkleAllLeavesOpened(t *testing.T) {
	tree, _ := buildTestTree(t, 4)

	idxs := []uint32{0, 1, 2, 3}
	proof := tree.ProofFromLeafIndices(idxs)

	leaves := tree.Leaves()

	opened := make([]Entry, len(idxs))
	for i, idx := range idxs {
		opened[i] = Entry{Label: tree.numLeaves + idx, Hash: leaves[idx]}
	}

	if err := proof.Verify(tree.Root(), opened, tree.MerkleKey()); err != nil {
		t.Fatalf("Verify (all leaves opened): %v", err)
	}
}
