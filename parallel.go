// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package csifish

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// parallelMap evaluates f(0), f(1), ..., f(n-1) across a bounded pool of
// worker goroutines and returns their results in order. Every f(i) runs to
// completion; if any of them failed, the error of the lowest failing index
// is returned. This is the Go equivalent of the Rust implementation's
// rayon::into_par_iter() data-parallel maps over the C commitment curves
// and R challenge rounds (spec.md 5): both are pure, order-independent
// work items, so a work-stealing pool of goroutines produces identical
// results to a sequential loop.
func parallelMap[T any](n int, f func(i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	errs := make([]error, n)

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup

	var nextIdx atomic.Int64

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				i := int(nextIdx.Add(1)) - 1
				if i >= n {
					return
				}

				out[i], errs[i] = f(i)
			}
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
