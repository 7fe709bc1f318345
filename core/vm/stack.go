// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"strings"
	"sync"

	"github.com/bnb-chain/bsc-evm/params"
	"github.com/holiman/uint256"
)

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is an object for basic stack operations. Items popped to the stack are
// expected to be changed and modified. stack does not take care of adding newly
// initialised objects.
//
// The lower-case methods are unchecked: the interpreter validates the arity of
// every operation against its minStack/maxStack before calling them. The
// exported methods perform their own bounds checks.
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Data returns the underlying uint256.Int array.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Push appends a copy of d, failing once the stack holds StackLimit items.
func (st *Stack) Push(d *uint256.Int) error {
	if uint64(len(st.data)) >= params.StackLimit {
		return &ErrStackOverflow{stackLen: len(st.data), limit: int(params.StackLimit)}
	}
	st.push(d)
	return nil
}

// Pop removes and returns the top item. The stack is left untouched on failure.
func (st *Stack) Pop() (uint256.Int, error) {
	if len(st.data) == 0 {
		return uint256.Int{}, &ErrStackUnderflow{stackLen: 0, required: 1}
	}
	return st.pop(), nil
}

// Dup pushes a copy of the n'th item from the top (DUP1 is n=1).
func (st *Stack) Dup(n int) error {
	if len(st.data) < n {
		return &ErrStackUnderflow{stackLen: len(st.data), required: n}
	}
	if uint64(len(st.data)) >= params.StackLimit {
		return &ErrStackOverflow{stackLen: len(st.data), limit: int(params.StackLimit)}
	}
	st.dup(n)
	return nil
}

// Swap exchanges the top item with the (n+1)'th from the top (SWAP1 is n=1).
func (st *Stack) Swap(n int) error {
	if len(st.data) < n+1 {
		return &ErrStackUnderflow{stackLen: len(st.data), required: n + 1}
	}
	st.swap(n)
	return nil
}

func (st *Stack) push(d *uint256.Int) {
	// NOTE push limit (1024) is checked in the interpreter loop
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) pop2() (uint256.Int, uint256.Int) {
	n := len(st.data)
	a, b := st.data[n-1], st.data[n-2]
	st.data = st.data[:n-2]
	return a, b
}

func (st *Stack) len() int {
	return len(st.data)
}

func (st *Stack) swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

func (st *Stack) dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}

func (st *Stack) peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns the n'th item in stack
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-n-1]
}

// String renders the stack top-first, one word per line.
func (st *Stack) String() string {
	var b strings.Builder
	for i := len(st.data) - 1; i >= 0; i-- {
		b.WriteString(st.data[i].Hex())
		if i > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
