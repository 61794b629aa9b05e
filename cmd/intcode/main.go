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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/db47h/intcode/amp"
	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// cellList collects comma separated values. Can be specified multiple times.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.Image(*l).String() }
func (l *cellList) Set(s string) error {
	v, err := vm.Parse(s)
	if err != nil {
		return err
	}
	*l = append(*l, v...)
	return nil
}
func (l *cellList) Get() interface{} { return *l }

type patch struct {
	addr int
	v    vm.Cell
}

// patchList collects addr=value pairs.
type patchList []patch

func (l *patchList) String() string {
	var sb strings.Builder
	for n, p := range *l {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d=%d", p.addr, p.v)
	}
	return sb.String()
}
func (l *patchList) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return errors.Errorf("invalid patch %q, expected addr=value", s)
	}
	addr, err := strconv.Atoi(strings.TrimSpace(s[:i]))
	if err != nil {
		return errors.Wrap(err, "invalid patch address")
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64)
	if err != nil {
		return errors.Wrap(err, "invalid patch value")
	}
	*l = append(*l, patch{addr, vm.Cell(v)})
	return nil
}
func (l *patchList) Get() interface{} { return *l }

var (
	errInputEOF    = errors.New("program waiting for input, but reached end of input")
	errPhasesFlags = errors.New("-input and -patch cannot be used with -phases")
)

var (
	debug   bool
	logger  = log.New(io.Discard, "intcode: ", log.Ltime)
	inputs  cellList
	patches patchList
	phases  cellList
)

func loadProgram(name string, source bool) (vm.Image, error) {
	if !source {
		return vm.Load(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(name, bufio.NewReader(f))
}

// run runs the VM until it halts. Whenever it blocks on input, run reads a line
// of comma separated values from in.
func run(i *vm.Instance, in io.Reader, out *bufio.Writer, interactive bool) error {
	s := bufio.NewScanner(in)
	sent := 0
	for {
		if err := i.Run(); err != nil {
			return err
		}
		o := i.Outputs()
		for _, v := range o[sent:] {
			fmt.Fprintln(out, v)
		}
		sent = len(o)
		if i.Finished() {
			return nil
		}
		if interactive {
			if err := out.Flush(); err != nil {
				return errors.Wrap(err, "write failed")
			}
			fmt.Fprint(os.Stderr, "? ")
		}
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return errors.Wrap(err, "read failed")
			}
			return errInputEOF
		}
		v, err := vm.Parse(s.Text())
		if err != nil {
			if interactive {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			return err
		}
		i.AddInput(v...)
	}
}

// checkFlags rejects flag combinations that would be silently ignored.
func checkFlags() error {
	if len(phases) > 0 && (len(inputs) > 0 || len(patches) > 0) {
		return errPhasesFlags
	}
	return nil
}

func searchPhases(ctx context.Context, img vm.Image, phases []vm.Cell, seed vm.Cell, workers int, out io.Writer) error {
	r, err := amp.MaxSignal(ctx, img, phases,
		amp.Seed(seed),
		amp.Workers(workers),
		amp.Progress(func(p []vm.Cell, v vm.Cell) { logger.Printf("phases %v: %d", p, v) }))
	if err != nil {
		return err
	}
	logger.Printf("%d permutations, best phases %v", r.Tried, r.Phases)
	_, err = fmt.Fprintln(out, r.Signal)
	return err
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		mem := i.Memory()
		if i.PC >= 0 && i.PC < len(mem) {
			fmt.Fprintf(os.Stderr, "PC: %v (%v), ", i.PC, mem[i.PC])
			asm.Disassemble(mem, i.PC, os.Stderr)
			fmt.Fprintf(os.Stderr, "\nInput: %v, Output: %v\n", i.Inputs(), i.Outputs())
		} else {
			fmt.Fprintf(os.Stderr, "PC: %v, Input: %v, Output: %v\n", i.PC, i.Inputs(), i.Outputs())
		}
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if ferr := stdout.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		atExit(i, err)
	}()

	fileName := flag.String("program", "", "load program from file `filename`")
	source := flag.Bool("asm", false, "the program file is assembly source")
	flag.Var(&inputs, "input", "comma separated input `values` (can be specified multiple times)")
	flag.Var(&patches, "patch", "set memory cell `addr=value` before running (can be specified multiple times)")
	flag.Var(&phases, "phases", "run an amplifier search over the comma separated phase `values` (excludes -input and -patch)")
	seed := flag.Int64("seed", 0, "amplifier seed signal")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "number of rings evaluated in parallel")
	disasm := flag.Bool("disasm", false, "print program disassembly and exit")
	outFileName := flag.String("o", "", "save the loaded program to `filename` and exit")
	dump := flag.Bool("dump", false, "print memory upon exit")
	trace := flag.Bool("trace", false, "trace executed instructions to stderr")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	verbose := flag.Bool("v", false, "log progress to stderr")

	flag.Parse()

	if *verbose {
		logger.SetOutput(os.Stderr)
	}
	if err = checkFlags(); err != nil {
		return
	}
	if *fileName == "" {
		*fileName = flag.Arg(0)
	}
	if *fileName == "" {
		err = errors.New("no program file specified")
		return
	}

	var img vm.Image
	if img, err = loadProgram(*fileName, *source); err != nil {
		return
	}
	logger.Printf("loaded %d cells from %s", len(img), *fileName)

	switch {
	case *outFileName != "":
		err = img.Save(*outFileName)
		return
	case *disasm:
		err = asm.DisassembleAll(img, 0, stdout)
		return
	case len(phases) > 0:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = searchPhases(ctx, img, phases, vm.Cell(*seed), *workers, stdout)
		return
	}

	opts := []vm.Option{vm.Input(inputs...)}
	for _, p := range patches {
		opts = append(opts, vm.Patch(p.addr, p.v))
	}
	if *trace {
		opts = append(opts, vm.Trace(os.Stderr))
	}
	if i, err = vm.New(img, opts...); err != nil {
		return
	}

	if err = run(i, os.Stdin, stdout, isTerminal(os.Stdin)); err != nil {
		return
	}
	logger.Printf("halted after %d instructions", i.InstructionCount())

	// programs without output report their result in cell 0
	if len(patches) > 0 && len(i.Outputs()) == 0 {
		v, _ := i.Read(0)
		fmt.Fprintln(stdout, v)
	}
	if *dump {
		err = dumpVM(i, stdout)
	}
}
