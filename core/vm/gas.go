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

import "fmt"

// Gas costs
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20
)

// Gas is the gas meter of a single frame. The remaining gas never underflows:
// a charge larger than what is left fails and leaves the meter untouched.
type Gas struct {
	limit     uint64
	remaining uint64
	refunded  int64
}

// NewGas returns a meter holding the full limit.
func NewGas(limit uint64) Gas {
	return Gas{limit: limit, remaining: limit}
}

// Limit returns the gas the frame started with.
func (g *Gas) Limit() uint64 { return g.limit }

// Remaining returns the gas left to spend.
func (g *Gas) Remaining() uint64 { return g.remaining }

// Spent returns limit minus remaining.
func (g *Gas) Spent() uint64 { return g.limit - g.remaining }

// Refunded returns the accumulated refund counter.
func (g *Gas) Refunded() int64 { return g.refunded }

// RecordCost deducts cost, returning false if there is not enough gas left.
func (g *Gas) RecordCost(cost uint64) bool {
	if g.remaining < cost {
		return false
	}
	g.remaining -= cost
	return true
}

// EraseCost gives back gas that was charged but not consumed.
func (g *Gas) EraseCost(returned uint64) {
	g.remaining += returned
}

// RecordRefund adjusts the refund counter.
func (g *Gas) RecordRefund(refund int64) {
	g.refunded += refund
}

// SpendAll burns every remaining unit.
func (g *Gas) SpendAll() {
	g.remaining = 0
}

func (g Gas) String() string {
	return fmt.Sprintf("limit=%d used=%d remaining=%d refunded=%d", g.limit, g.Spent(), g.remaining, g.refunded)
}
