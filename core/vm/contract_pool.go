package vm

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var contractPool = sync.Pool{
	New: func() any {
		return &Contract{}
	},
}

// GetContract returns a contract from the pool, set up like NewContract.
func GetContract(caller common.Address, address common.Address, value *uint256.Int, code *Bytecode, input []byte) *Contract {
	contract := contractPool.Get().(*Contract)

	// Reset the contract with new values
	if value == nil {
		value = new(uint256.Int)
	}
	contract.caller = caller
	contract.address = address
	contract.value = value
	contract.Code = code
	contract.Input = input

	return contract
}

// ReturnContract returns a contract to the pool. Neither the contract nor an
// interpreter running it may be used afterwards.
func ReturnContract(contract *Contract) {
	if contract == nil {
		return
	}
	*contract = Contract{}
	contractPool.Put(contract)
}
