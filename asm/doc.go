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

// Package asm provides utility functions to assemble and disassemble Intcode
// VM code.
//
// Supported assembler mnemonics:
//
//	Operands are written a b c in the order the instruction reads them. An
//	operand prefixed with # is an immediate value, otherwise it is the address
//	of the value. Destination operands (marked with *) are always addresses and
//	cannot be immediate.
//
//	opcode	asm	aliases	operands	description
//	------	---	-------	--------	----------------------------------------------
//	1	add		a b c*		store a + b at address c
//	2	mul		a b c*		store a * b at address c
//	3	in		a*		store the next input value at address a
//	4	out		a		write a to the output
//	5	jnz	jt	a b		jump to b if a is not zero
//	6	jz	jf	a b		jump to b if a is zero
//	7	lt		a b c*		store 1 at address c if a < b, 0 otherwise
//	8	eq		a b c*		store 1 at address c if a == b, 0 otherwise
//	99	hlt	halt			halt the VM
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The parentheses
// must be surrounded by white space.
//
// Values:
//
// Integers can be written in decimal, hexadecimal (0x prefix) or octal (leading
// 0). Character literals such as 'a' or '\n' compile to their code point. A
// label name compiles to the address of that label. Labels can be used before
// they are defined.
//
// Labels and directives:
//
//	:name			defines a label named "name" at the current address
//	.dat v ...		compiles the following values as raw cells, up to the
//				next mnemonic, label or directive
//	.org n			sets the compilation address to n, 0 <= n < 1048576
//	.equ NAME n		defines a constant
//
// Mnemonics cannot be used as label or constant names.
//
// The following program reads two numbers and outputs the largest:
//
//		in a
//		in b
//		lt a b tmp
//		jz tmp #out_a
//		out b
//		hlt
//	:out_a	out a
//		hlt
//	:a	.dat 0
//	:b	.dat 0
//	:tmp	.dat 0
package asm
