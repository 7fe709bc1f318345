// Copyright 2015 The go-ethereum Authors
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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Contract represents an ethereum contract in the state database. It contains
// the contract code and calling arguments. A Contract is the immutable context
// of exactly one frame.
type Contract struct {
	caller  common.Address
	address common.Address
	value   *uint256.Int

	Code  *Bytecode
	Input []byte
}

// NewContract returns a new contract environment for the execution of EVM.
func NewContract(caller, address common.Address, value *uint256.Int, code *Bytecode, input []byte) *Contract {
	if value == nil {
		value = new(uint256.Int)
	}
	return &Contract{
		caller:  caller,
		address: address,
		value:   value,
		Code:    code,
		Input:   input,
	}
}

// GetOp returns the n'th element in the contract's byte array
func (c *Contract) GetOp(n uint64) OpCode {
	return c.Code.OpAt(n)
}

// Caller returns the caller of the contract.
func (c *Contract) Caller() common.Address {
	return c.caller
}

// Address returns the contracts address
func (c *Contract) Address() common.Address {
	return c.address
}

// Value returns the contract's value (sent to it from it's caller)
func (c *Contract) Value() *uint256.Int {
	return c.value
}
