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
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// maxCells is the largest image the assembler will produce.
const maxCells = 1 << 20

// mode digit weight of each operand
var modeWeight = [vm.MaxArgs]vm.Cell{100, 1000, 10000}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	errs   ErrAsm

	// instruction being assembled
	op   vm.Opcode
	opPC int
	argN int
	need int
	data bool // in a .dat block
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrEntry{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	if p.pc < 0 || p.pc >= maxCells {
		p.error(p.s.Position, "address out of range "+strconv.Itoa(p.pc))
		return
	}
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

// number converts s to a value if it is an integer, a char literal or a
// constant.
func (p *parser) number(s string) (v vm.Cell, ok bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(p.s.Position, "invalid char literal "+s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value writes a cell value: number, char, constant or label address.
func (p *parser) value(s string) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	if !validName(s) {
		p.error(p.s.Position, "invalid operand "+s)
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case ':', '.', '#', '\'', '(', ')', '-', '+':
		return false
	}
	if _, ok := lookup(s); ok {
		return false
	}
	return !unicode.IsDigit(rune(s[0]))
}

// scanNumber reads a directive argument.
func (p *parser) scanNumber(directive string) (vm.Cell, bool) {
	if tok := p.s.Scan(); tok == scanner.EOF {
		p.error(p.s.Position, directive+": missing argument")
		return 0, false
	}
	s := p.s.TokenText()
	v, ok := p.number(s)
	if !ok {
		p.error(p.s.Position, directive+": expected integer or constant, got "+s)
	}
	return v, ok
}

func (p *parser) checkOperands() {
	if p.need > 0 {
		p.error(p.s.Position, "missing operand for "+p.op.String()+" at address "+strconv.Itoa(p.opPC))
		p.need = 0
	}
}

func (p *parser) operand(s string) {
	if s[0] == '#' {
		s = s[1:]
		if p.need == 1 && p.op.Writes() {
			p.error(p.s.Position, "immediate destination operand for "+p.op.String()+": #"+s)
		} else if p.opPC >= 0 && p.opPC < len(p.i) {
			p.i[p.opPC] += modeWeight[p.argN]
		}
		if s == "" {
			p.error(p.s.Position, "empty operand")
		}
	}
	p.value(s)
	p.argN++
	p.need--
}

func (p *parser) directive(s string) {
	p.checkOperands()
	p.data = false
	switch s {
	case ".dat":
		p.data = true
	case ".org":
		v, ok := p.scanNumber(s)
		switch {
		case !ok:
		case v < 0:
			p.error(p.s.Position, ".org: negative address "+p.s.TokenText())
		case v >= maxCells:
			p.error(p.s.Position, ".org: address out of range "+p.s.TokenText())
		default:
			p.pc = int(v)
		}
	case ".equ":
		pos := p.s.Position
		if tok := p.s.Scan(); tok != scanner.Ident || !validName(p.s.TokenText()) {
			p.error(p.s.Position, ".equ: expected identifier, got "+p.s.TokenText())
			return
		}
		name := p.s.TokenText()
		if l, ok := p.labels[name]; ok {
			p.error(p.s.Position, ".equ: redefinition of "+name+", previously defined/used as a label here: "+l.pos.String())
			return
		}
		if v, ok := p.scanNumber(s); ok {
			p.consts[name] = labelSite{pos, int(v)}
		}
	default:
		p.error(p.s.Position, "unknown directive: "+s)
	}
}

func (p *parser) defineLabel(s string) {
	p.checkOperands()
	p.data = false
	n := s[1:]
	if !validName(n) {
		p.error(p.s.Position, "invalid label name: "+s)
		return
	}
	if cst, ok := p.consts[n]; ok {
		p.error(p.s.Position, "label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error(p.s.Position, "label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.error(p.s.Position, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		switch {
		case s == "(":
			// skip comments
			for tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")") {
				tok = p.s.Scan()
			}
		case s[0] == ':':
			if p.need > 0 {
				p.error(p.s.Position, "unexpected label definition as operand: "+s)
			}
			p.defineLabel(s)
		case s[0] == '.' && len(s) > 1 && !unicode.IsDigit(rune(s[1])):
			p.directive(s)
		default:
			if op, ok := lookup(s); ok {
				p.checkOperands()
				p.data = false
				p.op, p.opPC, p.argN, p.need = op, p.pc, 0, op.Arity()
				p.write(vm.Cell(op))
				continue
			}
			switch {
			case p.need > 0:
				p.operand(s)
			case p.data:
				p.value(s)
			default:
				p.error(p.s.Position, "unexpected value outside of a .dat block: "+s)
			}
		}
	}
	p.checkOperands()

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			if u.address >= 0 && u.address < len(p.i) {
				p.i[u.address] = vm.Cell(l.address)
			}
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return vm.Image(p.i[:p.size]), nil
}
