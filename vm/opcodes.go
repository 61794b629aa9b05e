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

// Opcode identifies an instruction. It is the value of the two least
// significant decimal digits of an instruction word.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJnz  Opcode = 5
	OpJz   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpHalt Opcode = 99
)

// MaxArgs is the largest number of arguments taken by any instruction.
const MaxArgs = 3

type opInfo struct {
	name  string
	arity int
	write bool // the last argument is a destination address
}

var opcodes = map[Opcode]opInfo{
	OpAdd:  {"add", 3, true},
	OpMul:  {"mul", 3, true},
	OpIn:   {"in", 1, true},
	OpOut:  {"out", 1, false},
	OpJnz:  {"jnz", 2, false},
	OpJz:   {"jz", 2, false},
	OpLt:   {"lt", 3, true},
	OpEq:   {"eq", 3, true},
	OpHalt: {"hlt", 0, false},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of arguments of op, or -1 for unknown opcodes.
func (op Opcode) Arity() int {
	if info, ok := opcodes[op]; ok {
		return info.arity
	}
	return -1
}

// Writes returns true if the last argument of op is the address of the cell it
// writes to. Such arguments are never resolved through their addressing mode.
func (op Opcode) Writes() bool {
	return opcodes[op].write
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "???"
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for op, info := range opcodes {
		opcodeIndex[info.name] = op
	}
}

// Lookup returns the opcode for the given mnemonic.
func Lookup(name string) (op Opcode, ok bool) {
	op, ok = opcodeIndex[name]
	return
}
