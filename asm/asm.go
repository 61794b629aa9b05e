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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// aliases for the mnemonics known to the vm package.
var aliases = map[string]vm.Opcode{
	"jt":   vm.OpJnz,
	"jf":   vm.OpJz,
	"halt": vm.OpHalt,
}

func lookup(name string) (vm.Opcode, bool) {
	if op, ok := vm.Lookup(name); ok {
		return op, true
	}
	op, ok := aliases[name]
	return op, ok
}

// ErrEntry is a single assembly error.
type ErrEntry struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrEntry) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 errors.
type ErrAsm []ErrEntry

func (e ErrAsm) Error() string {
	var sb strings.Builder
	for i := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e[i].Error())
	}
	return sb.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img vm.Image, err error) {
	p := newParser()
	img, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that do not decode to a valid instruction, or instructions truncated
// by the end of the slice, are written as a single .dat cell.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)
	word := mem[pc]
	op, modes, err := vm.Decode(word)
	if err != nil || pc+1+op.Arity() > len(mem) {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(word), 10))
		return pc + 1, ew.Err
	}
	next = pc + 1 + op.Arity()
	io.WriteString(ew, op.Format(modes, mem[pc+1:next]))
	return next, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (i[0]). It will return any write error.
func DisassembleAll(i []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(i); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(i, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
