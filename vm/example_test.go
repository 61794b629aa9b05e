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

package vm_test

import (
	"fmt"

	"github.com/db47h/intcode/vm"
)

// Shows how to parse a program, patch it and read back the result.
func ExampleInstance_Run() {
	img, err := vm.Parse("1,9,10,3,2,3,11,0,99,30,40,50")
	if err != nil {
		panic(err)
	}
	i, err := vm.New(img)
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		panic(err)
	}
	v, _ := i.Read(0)
	fmt.Println(v, i.Finished())

	// Output:
	// 3500 true
}

// Input is fed to the VM on demand: when the program needs more input than
// available, Run returns and the instance is blocked until more input is added.
func ExampleInstance_AddInput() {
	// read two values, output their sum.
	img, _ := vm.Parse("3,11,3,12,1,11,12,13,4,13,99,0,0,0")
	i, _ := vm.New(img)

	for _, v := range []vm.Cell{40, 2} {
		i.Run()
		fmt.Println("blocked:", i.Blocked())
		i.AddInput(v)
	}
	if err := i.Run(); err != nil {
		panic(err)
	}
	fmt.Println(i.Outputs(), i.Finished())

	// Output:
	// blocked: true
	// blocked: true
	// [42] true
}
