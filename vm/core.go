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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by Step and Run. Use errors.Cause to get them back from a
// wrapped error.
var (
	ErrBadOpcode = errors.New("unexpected opcode")
	ErrBadMode   = errors.New("unexpected mode")
	ErrAddress   = errors.New("address out of range")
)

// Mode is a parameter addressing mode.
type Mode uint8

// Addressing modes.
const (
	Position  Mode = iota // the argument is the address of the value
	Immediate             // the argument is the value
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Modes holds the addressing modes of an instruction's arguments, first
// argument first.
type Modes [MaxArgs]Mode

// Decode splits an instruction word into its opcode and argument modes. The
// mode of the first argument is the hundreds digit of the word, the mode of the
// second argument the thousands digit, and so on. Missing digits stand for
// Position mode. Every mode digit is checked, including those beyond the
// opcode's arity.
func Decode(word Cell) (op Opcode, modes Modes, err error) {
	if word < 0 {
		return 0, modes, errors.Wrapf(ErrBadOpcode, "word %d", word)
	}
	for n, m := 0, word/100; m > 0; n, m = n+1, m/10 {
		d := m % 10
		if d > Cell(Immediate) {
			return 0, modes, errors.Wrapf(ErrBadMode, "digit %d in word %d", d, word)
		}
		if n < MaxArgs {
			modes[n] = Mode(d)
		}
	}
	op = Opcode(word % 100)
	if !op.Valid() {
		return op, modes, errors.Wrapf(ErrBadOpcode, "opcode %d in word %d", op, word)
	}
	return op, modes, nil
}

// Format returns the assembly form of an instruction: its mnemonic followed by
// its arguments, immediate arguments being prefixed with '#'.
func (op Opcode) Format(modes Modes, args []Cell) string {
	var sb strings.Builder
	sb.WriteString(op.String())
	for n, a := range args {
		sb.WriteByte(' ')
		if n < MaxArgs && modes[n] == Immediate {
			sb.WriteByte('#')
		}
		sb.WriteString(strconv.FormatInt(int64(a), 10))
	}
	return sb.String()
}

func (i *Instance) fetch(addr int) (Cell, error) {
	if addr < 0 || addr >= len(i.mem) {
		return 0, errors.Wrapf(ErrAddress, "fetch @%d, memory size %d", addr, len(i.mem))
	}
	return i.mem[addr], nil
}

// arg resolves a source argument.
func (i *Instance) arg(m Mode, v Cell) (Cell, error) {
	if m == Immediate {
		return v, nil
	}
	if v < 0 || v >= Cell(len(i.mem)) {
		return 0, errors.Wrapf(ErrAddress, "read @%d, memory size %d", v, len(i.mem))
	}
	return i.mem[v], nil
}

// store writes v at the address given by a destination argument. Destination
// arguments are always addresses, whatever their mode.
func (i *Instance) store(addr, v Cell) error {
	if addr < 0 || addr >= Cell(len(i.mem)) {
		return errors.Wrapf(ErrAddress, "write @%d, memory size %d", addr, len(i.mem))
	}
	i.mem[addr] = v
	return nil
}

func (i *Instance) args2(modes Modes, args []Cell) (a, b Cell, err error) {
	if a, err = i.arg(modes[0], args[0]); err != nil {
		return
	}
	b, err = i.arg(modes[1], args[1])
	return
}

func (i *Instance) step() error {
	pc := i.PC
	word, err := i.fetch(pc)
	if err != nil {
		return err
	}
	op, modes, err := Decode(word)
	if err != nil {
		return err
	}
	next := pc + 1 + op.Arity()
	if next > len(i.mem) {
		return errors.Wrapf(ErrAddress, "truncated %s instruction, memory size %d", op, len(i.mem))
	}
	args := i.mem[pc+1 : next]
	if i.trace != nil {
		fmt.Fprintf(i.trace, "% 8d\t%d\t%s\n", pc, word, op.Format(modes, args))
	}

	switch op {
	case OpAdd, OpMul, OpLt, OpEq:
		a, b, err := i.args2(modes, args)
		if err != nil {
			return err
		}
		var v Cell
		switch op {
		case OpAdd:
			v = a + b
		case OpMul:
			v = a * b
		case OpLt:
			if a < b {
				v = 1
			}
		case OpEq:
			if a == b {
				v = 1
			}
		}
		if err = i.store(args[2], v); err != nil {
			return err
		}
	case OpIn:
		if i.inPos >= len(i.input) {
			// leave the PC on this instruction so that it is retried from
			// scratch once input is available.
			i.blocked = true
			return nil
		}
		if err = i.store(args[0], i.input[i.inPos]); err != nil {
			return err
		}
		i.inPos++
	case OpOut:
		v, err := i.arg(modes[0], args[0])
		if err != nil {
			return err
		}
		i.output = append(i.output, v)
	case OpJnz, OpJz:
		v, target, err := i.args2(modes, args)
		if err != nil {
			return err
		}
		if (v != 0) == (op == OpJnz) {
			if target < 0 || target >= Cell(len(i.mem)) {
				return errors.Wrapf(ErrAddress, "jump to %d, memory size %d", target, len(i.mem))
			}
			next = int(target)
		}
	case OpHalt:
		i.finished = true
	}
	i.PC = next
	i.insCount++
	return nil
}

// Step executes a single instruction and returns true if execution may
// continue.
//
// Step returns false without doing anything if the instance is finished or
// blocked. If the instruction is an input instruction and the input queue is
// exhausted, the instance becomes blocked, the PC is left on that instruction
// and Step returns false. The halt instruction itself returns true; the next
// call will return false.
//
// Errors are fatal: the PC will point to the instruction that triggered the
// error and any subsequent call to Step will return the same error.
func (i *Instance) Step() (bool, error) {
	if i.err != nil {
		return false, i.err
	}
	if i.finished || i.blocked {
		return false, nil
	}
	if err := i.step(); err != nil {
		i.err = errors.Wrapf(err, "pc=%d", i.PC)
		return false, i.err
	}
	return !i.blocked, nil
}

// Run starts or resumes execution of the VM until it halts, blocks on input or
// fails.
//
// Calling Run on a blocked instance without adding input first is a no-op.
func (i *Instance) Run() error {
	for {
		ok, err := i.Step()
		if !ok {
			return err
		}
	}
}
