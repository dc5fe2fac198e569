// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package merkle

import (
	"sort"

	"github.com/vnchari/csifish/internal/hash"
)

// Verify reconstructs the root from the opened leaf hashes and the proof's
// sibling hashes, returning ErrVerificationFailed if a needed sibling is
// missing or the reconstructed root does not match root.
func (p *Proof) Verify(root [hash.Size]byte, leafHashes []Entry, merkleKey [hash.Size]byte) error {
	opened := append([]Entry{}, leafHashes...)
	sort.Slice(opened, func(i, j int) bool { return opened[i].Label < opened[j].Label })
	opened = dedupEntries(opened)

	level := opened

	tree := make(map[uint32][hash.Size]byte, len(p.entries))
	for _, e := range p.entries {
		tree[e.Label] = e.Hash
	}

	hasher := hash.New(p.numHashes)

	for {
		if len(level) == 0 {
			return ErrVerificationFailed
		}

		cur := level[0]
		level = level[1:]

		if _, ok := tree[cur.Label/2]; ok {
			continue
		}

		var result [hash.Size]byte

		isEven := cur.Label%2 == 0

		if isEven && len(level) > 0 && level[0].Label == cur.Label+1 {
			result = combine(hasher, cur.Hash, level[0].Hash, cur.Label/2, merkleKey)
		} else {
			siblingLabel := cur.Label + 1 - 2*(cur.Label%2)

			siblingHash, ok := tree[siblingLabel]
			if !ok {
				return ErrVerificationFailed
			}

			if isEven {
				result = combine(hasher, cur.Hash, siblingHash, cur.Label/2, merkleKey)
			} else {
				result = combine(hasher, siblingHash, cur.Hash, cur.Label/2, merkleKey)
			}
		}

		parent := cur.Label / 2

		level = append(level, Entry{Label: parent, Hash: result})
		tree[parent] = result

		if parent == 1 {
			break
		}
	}

	if tree[1] != root {
		return ErrVerificationFailed
	}

	return nil
}

func combine(hasher *hash.Hasher, left, right [hash.Size]byte, label uint32, merkleKey [hash.Size]byte) [hash.Size]byte {
	v := append([]byte{}, left[:]...)
	v = append(v, right[:]...)
	v = append(v, label4Bytes(label)...)
	v = append(v, merkleKey[:]...)

	return hasher.Hash(v)
}

func dedupEntries(sorted []Entry) []Entry {
	out := sorted[:0]

	for i, e := range sorted {
		if i > 0 && out[len(out)-1] == e {
			continue
		}

		out = append(out, e)
	}

	return out
}
