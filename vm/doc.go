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

// Package vm implements the Intcode VM.
//
// An Intcode program is a flat array of signed integers (an Image) holding
// both code and data. Programs are free to modify themselves. Each instruction
// is a single word encoding an opcode in its two least significant decimal
// digits and one addressing mode per argument in the remaining digits: the
// hundreds digit gives the mode of the first argument, the thousands digit the
// mode of the second, and so on. Mode 0 (Position) treats the argument as an
// address, mode 1 (Immediate) uses it as is. Arguments that an instruction
// writes to are always addresses, whatever their mode digit says.
//
// I/O is done through an input queue and an output log. When the program
// tries to read while the input queue is empty, the Instance becomes blocked:
// the PC is left on the input instruction and execution resumes from there as
// soon as more input is added and Run (or Step) is called again. This makes it
// possible to drive several instances from a single goroutine, feeding each
// one's output into the next (see package github.com/db47h/intcode/amp).
//
// Decoding and addressing errors are fatal: the instance keeps the error and
// will return it from any subsequent call to Step or Run. The underlying cause
// can be retrieved with errors.Cause from github.com/pkg/errors and compared
// against ErrBadOpcode, ErrBadMode and ErrAddress.
package vm
