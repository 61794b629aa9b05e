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
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestRun(t *testing.T) {
	// outputs the sum of two numbers
	img, err := vm.Parse("3,11,3,12,1,11,12,13,4,13,99,0,0,0")
	if err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name  string
		input string
		out   string
		err   error
	}{
		{"lines", "1\n2\n", "3\n", nil},
		{"list", "40,2\n", "42\n", nil},
		{"blank lines", "\n7\n\n8\n", "15\n", nil},
		{"eof", "1\n", "", errInputEOF},
	}
	for _, d := range data {
		i, err := vm.New(img.Clone())
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		w := bufio.NewWriter(&b)
		err = run(i, strings.NewReader(d.input), w, false)
		w.Flush()
		if errors.Cause(err) != d.err {
			t.Errorf("%s: expected error %v, got %v", d.name, d.err, err)
		}
		if b.String() != d.out {
			t.Errorf("%s: expected output %q, got %q", d.name, d.out, b.String())
		}
	}
}

func TestRun_parseError(t *testing.T) {
	i, _ := vm.New(vm.Image{3, 0, 99})
	var b bytes.Buffer
	err := run(i, strings.NewReader("x\n"), bufio.NewWriter(&b), false)
	if _, ok := err.(*vm.ParseError); !ok {
		t.Errorf("expected *vm.ParseError, got %v", err)
	}
}

func TestFlags(t *testing.T) {
	var (
		c cellList
		p patchList
	)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&c, "input", "")
	fs.Var(&p, "patch", "")
	err := fs.Parse([]string{"-input", "1,2", "-patch", "1=12", "-input", "-3", "-patch", "2 = 2"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cellList{1, 2, -3}, c); diff != "" {
		t.Errorf("input mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(patchList{{1, 12}, {2, 2}}, p, cmp.AllowUnexported(patch{})); diff != "" {
		t.Errorf("patch mismatch (-want +got):\n%s", diff)
	}
	if s := p.String(); s != "1=12 2=2" {
		t.Errorf("unexpected patch string %q", s)
	}
	for _, s := range []string{"12", "a=1", "1=b"} {
		if err := p.Set(s); err == nil {
			t.Errorf("expected error for patch %q", s)
		}
	}
	if err := c.Set("1,x"); err == nil {
		t.Error("expected error for input 1,x")
	}
}

func TestSearchPhases(t *testing.T) {
	chain, _ := vm.Parse("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	feedback, _ := vm.Parse("3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	data := []struct {
		name   string
		img    vm.Image
		phases cellList
		seed   vm.Cell
		out    string
		err    error
	}{
		{"chain", chain, cellList{0, 1, 2, 3, 4}, 0, "43210\n", nil},
		{"feedback", feedback, cellList{5, 6, 7, 8, 9}, 0, "139629729\n", nil},
		{"seed", chain, cellList{1}, 4, "41\n", nil},
		{"bad opcode", vm.Image{3, 0, 3, 0, 42}, cellList{0, 1}, 0, "", vm.ErrBadOpcode},
	}
	for _, d := range data {
		var b bytes.Buffer
		err := searchPhases(context.Background(), d.img, d.phases, d.seed, 2, &b)
		if errors.Cause(err) != d.err {
			t.Errorf("%s: expected error %v, got %v", d.name, d.err, err)
		}
		if b.String() != d.out {
			t.Errorf("%s: expected output %q, got %q", d.name, d.out, b.String())
		}
	}
}

func TestCheckFlags(t *testing.T) {
	defer func() { inputs, patches, phases = nil, nil, nil }()
	data := []struct {
		name    string
		inputs  cellList
		patches patchList
		phases  cellList
		err     error
	}{
		{"run", cellList{1}, patchList{{1, 12}}, nil, nil},
		{"phases", nil, nil, cellList{0, 1}, nil},
		{"phases and input", cellList{1}, nil, cellList{0, 1}, errPhasesFlags},
		{"phases and patch", nil, patchList{{1, 12}}, cellList{0, 1}, errPhasesFlags},
	}
	for _, d := range data {
		inputs, patches, phases = d.inputs, d.patches, d.phases
		if err := checkFlags(); err != d.err {
			t.Errorf("%s: expected error %v, got %v", d.name, d.err, err)
		}
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	want := vm.Image{1101, 40, 2, 5, 99, 0}
	src := filepath.Join(dir, "prog.asm")
	if err := os.WriteFile(src, []byte("add #40 #2 x hlt :x .dat 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "prog.txt.zst")
	if err := want.Save(txt); err != nil {
		t.Fatal(err)
	}
	for _, d := range []struct {
		name   string
		source bool
	}{{src, true}, {txt, false}} {
		img, err := loadProgram(d.name, d.source)
		if err != nil {
			t.Errorf("%s: %v", d.name, err)
			continue
		}
		if diff := cmp.Diff(want, img); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", d.name, diff)
		}
	}
	if _, err := loadProgram(filepath.Join(dir, "missing.asm"), true); err == nil {
		t.Error("expected error loading a missing file")
	}
}

func TestDumpVM(t *testing.T) {
	i, err := vm.New(vm.Image{1, 0, 0, 0, 99})
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = dumpVM(i, &b); err != nil {
		t.Fatal(err)
	}
	exp := "PC: 5, instructions: 2, finished: true\n2,0,0,0,99\n"
	if b.String() != exp {
		t.Errorf("expected %q, got %q", exp, b.String())
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "input"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Error("regular file reported as a terminal")
	}
}
