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

// The intcode command line tool loads, assembles, disassembles and runs Intcode
// programs.
//
// Usage:
//
//	intcode [flags] [program]
//
//	-asm
//		  the program file is assembly source
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  print program disassembly and exit
//	-dump
//		  print memory upon exit
//	-input values
//		  comma separated input values (can be specified multiple times)
//	-o filename
//		  save the loaded program to filename and exit
//	-patch addr=value
//		  set memory cell addr=value before running (can be specified multiple times)
//	-phases values
//		  run an amplifier search over the comma separated phase values (excludes -input and -patch)
//	-program filename
//		  load program from file filename
//	-seed int
//		  amplifier seed signal
//	-trace
//		  trace executed instructions to stderr
//	-v
//		  log progress to stderr
//	-workers int
//		  number of rings evaluated in parallel (default GOMAXPROCS)
//
// The program is read from the file given by -program, or the first argument.
// Files with a .zst extension are decompressed on the fly. With -asm, the file
// is assembled first, see package github.com/db47h/intcode/asm for the syntax.
//
// Values given with -input are queued before the program starts. When the
// program runs out of input, intcode reads a line of comma separated values
// from stdin and resumes. A "? " prompt is written to stderr when stdin is a
// terminal. Reaching the end of stdin while the program waits for input is an
// error. Output values are written to stdout, one per line.
//
// -patch: memory cells are patched before the program starts. If the program
// halts without producing any output, the value of cell 0 is printed instead.
//
// -phases: runs the program as an amplifier ring, once for every permutation of
// the phase settings, and prints the highest signal from the last amplifier.
// Amplifiers only receive their phase and the signals of the ring, so -input
// and -patch are rejected in this mode.
// See package github.com/db47h/intcode/amp.
//
// -o: together with -asm, this compiles assembly source into a program file:
//
//	intcode -asm -o prog.txt.zst prog.asm
//
// -debug: will print a full stacktrace and the faulting instruction should the
// VM crash.
package main
