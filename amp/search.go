// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package amp

import (
	"context"
	"runtime"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Permutations returns every ordering of the given phase settings, starting
// with phases itself. The argument is not modified.
func Permutations(phases []vm.Cell) [][]vm.Cell {
	a := append([]vm.Cell(nil), phases...)
	res := [][]vm.Cell{append([]vm.Cell(nil), a...)}
	// Heap's algorithm, non-recursive.
	c := make([]int, len(a))
	for i := 1; i < len(a); {
		if c[i] < i {
			if i&1 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			res = append(res, append([]vm.Cell(nil), a...))
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return res
}

// Result is the outcome of a MaxSignal search.
type Result struct {
	Signal vm.Cell   // highest signal
	Phases []vm.Cell // phase settings that produced it
	Tried  int       // number of permutations evaluated
}

type search struct {
	workers int
	seed    vm.Cell
	done    func(phases []vm.Cell, signal vm.Cell)
}

// Option configures MaxSignal.
type Option func(*search)

// Workers sets the maximum number of rings evaluated in parallel. Values lower
// than 1 are ignored. The default is runtime.GOMAXPROCS(0).
func Workers(n int) Option {
	return func(s *search) {
		if n > 0 {
			s.workers = n
		}
	}
}

// Seed sets the signal sent to the first amplifier. The default is 0.
func Seed(v vm.Cell) Option {
	return func(s *search) { s.seed = v }
}

// Progress sets a function called after each successful ring evaluation. It
// may be called concurrently from multiple goroutines.
func Progress(fn func(phases []vm.Cell, signal vm.Cell)) Option {
	return func(s *search) { s.done = fn }
}

// MaxSignal runs a Ring for every permutation of phases and returns the highest
// signal. Rings are independent and evaluated in parallel, each on its own copy
// of prog. If several permutations yield the same signal, the one that comes
// first in Permutations order wins.
//
// The first ring error aborts the search. Cancelling ctx stops scheduling new
// rings; rings already running are not interrupted.
func MaxSignal(ctx context.Context, prog vm.Image, phases []vm.Cell, opts ...Option) (Result, error) {
	if len(phases) == 0 {
		return Result{}, ErrNoPhases
	}
	s := search{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&s)
	}

	perms := Permutations(phases)
	signals := make([]vm.Cell, len(perms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for n, p := range perms {
		if gctx.Err() != nil {
			break
		}
		n, p := n, p
		g.Go(func() error {
			v, err := Ring(prog, p, s.seed)
			if err != nil {
				return errors.Wrapf(err, "phases %v", p)
			}
			signals[n] = v
			if s.done != nil {
				s.done(p, v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	best := 0
	for n := range signals {
		if signals[n] > signals[best] {
			best = n
		}
	}
	return Result{Signal: signals[best], Phases: perms[best], Tried: len(perms)}, nil
}
