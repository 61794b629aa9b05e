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

package vm

import (
	"io"

	"github.com/pkg/errors"
)

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int // Program Counter (aka. Instruction Pointer)
	mem      Image
	input    []Cell
	inPos    int
	output   []Cell
	blocked  bool
	finished bool
	err      error
	insCount int64
	trace    io.Writer
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(v ...Cell) Option {
	return func(i *Instance) error {
		i.AddInput(v...)
		return nil
	}
}

// Patch replaces the value at address addr before the program starts. Patching
// an address outside of the memory image makes New fail.
func Patch(addr int, v Cell) Option {
	return func(i *Instance) error {
		return i.Replace(addr, v)
	}
}

// Trace enables instruction tracing: each executed instruction is logged to w
// before being executed. Write errors are ignored.
func Trace(w io.Writer) Option {
	return func(i *Instance) error {
		i.trace = w
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The image parameter is the Cell array used as memory by the VM. The instance
// takes ownership of it: the caller should pass a clone if the same image is
// used elsewhere. Memory never grows; any access past the end of the image is
// an error.
//
// An instance created with an empty image is finished right away.
//
// Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:      image,
		finished: len(image) == 0,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Memory returns the memory image. Changes made to the returned slice are
// reflected in the instance's memory.
func (i *Instance) Memory() Image {
	return i.mem
}

// Read returns the value at address addr.
func (i *Instance) Read(addr int) (Cell, error) {
	if addr < 0 || addr >= len(i.mem) {
		return 0, errors.Wrapf(ErrAddress, "read @%d, memory size %d", addr, len(i.mem))
	}
	return i.mem[addr], nil
}

// Replace sets the value at address addr. It is meant to patch the program
// before it is run.
func (i *Instance) Replace(addr int, v Cell) error {
	if addr < 0 || addr >= len(i.mem) {
		return errors.Wrapf(ErrAddress, "write %d @%d, memory size %d", v, addr, len(i.mem))
	}
	i.mem[addr] = v
	return nil
}

// AddInput appends values to the input queue and unblocks the instance. It
// does not resume execution.
func (i *Instance) AddInput(v ...Cell) {
	i.input = append(i.input, v...)
	if len(v) > 0 {
		i.blocked = false
	}
}

// Inputs returns all the values ever added to the input queue, including those
// already consumed.
func (i *Instance) Inputs() []Cell {
	return i.input
}

// Pending returns the number of input values not yet consumed.
func (i *Instance) Pending() int {
	return len(i.input) - i.inPos
}

// Outputs returns the output log.
func (i *Instance) Outputs() []Cell {
	return i.output
}

// LastOutput returns the most recently written output value, if any.
func (i *Instance) LastOutput() (Cell, bool) {
	if len(i.output) == 0 {
		return 0, false
	}
	return i.output[len(i.output)-1], true
}

// Finished returns true once the program has executed a halt instruction.
func (i *Instance) Finished() bool {
	return i.finished
}

// Blocked returns true if the program is waiting for input.
func (i *Instance) Blocked() bool {
	return i.blocked
}

// Err returns the fatal error that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
