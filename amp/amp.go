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

// Package amp chains Intcode VM instances into an amplifier network.
//
// Each amplifier runs its own copy of the same program. It first reads its
// phase setting, then the signals produced by the previous amplifier in the
// ring. The last amplifier feeds the first one, so a program that halts after a
// single output behaves as a simple chain while a program that loops runs in
// feedback mode until the last amplifier halts.
package amp

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Errors returned by Ring.
var (
	ErrStalled  = errors.New("amplifier ring stalled")
	ErrNoPhases = errors.New("no amplifiers")
	ErrNoOutput = errors.New("last amplifier halted without output")
)

// Ring runs one amplifier per phase setting, each on a fresh clone of prog, and
// returns the last signal emitted by the last amplifier once it halts. The
// first amplifier receives seed right after its phase setting.
//
// Amplifiers are run in turn, in ring order, by the calling goroutine. Every
// signal produced by an amplifier during its turn is queued as input to the
// next one. If a whole round goes by without any amplifier producing a signal
// while the last amplifier is still running, the ring can make no further
// progress and ErrStalled is returned.
//
// VM errors are returned with the index of the failing amplifier.
func Ring(prog vm.Image, phases []vm.Cell, seed vm.Cell) (vm.Cell, error) {
	n := len(phases)
	if n == 0 {
		return 0, ErrNoPhases
	}
	amps := make([]*vm.Instance, n)
	for k, p := range phases {
		i, err := vm.New(prog.Clone(), vm.Input(p))
		if err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", k)
		}
		amps[k] = i
	}
	amps[0].AddInput(seed)

	// number of outputs already forwarded, per amplifier
	sent := make([]int, n)
	last := amps[n-1]
	for {
		moved := false
		for k, a := range amps {
			if err := a.Run(); err != nil {
				return 0, errors.Wrapf(err, "amplifier %d", k)
			}
			if out := a.Outputs(); len(out) > sent[k] {
				amps[(k+1)%n].AddInput(out[sent[k]:]...)
				sent[k] = len(out)
				moved = true
			}
		}
		if last.Finished() {
			v, ok := last.LastOutput()
			if !ok {
				return 0, ErrNoOutput
			}
			return v, nil
		}
		if !moved {
			return 0, ErrStalled
		}
	}
}
