package vm

import "github.com/ethereum/go-ethereum/metrics"

var (
	opcodeCount            = metrics.NewRegisteredCounter("evm/opcodeCount", nil)
	haltSuccessCount       = metrics.NewRegisteredCounter("evm/halt/success", nil)
	haltRevertCount        = metrics.NewRegisteredCounter("evm/halt/revert", nil)
	haltErrorCount         = metrics.NewRegisteredCounter("evm/halt/error", nil)
	analysisCacheHitMeter  = metrics.NewRegisteredMeter("evm/analysis/hit", nil)
	analysisCacheMissMeter = metrics.NewRegisteredMeter("evm/analysis/miss", nil)
)

// markHalt records the terminal outcome of a frame.
func markHalt(r InstructionResult) {
	switch {
	case r.IsSuccess():
		haltSuccessCount.Inc(1)
	case r.IsRevert():
		haltRevertCount.Inc(1)
	default:
		haltErrorCount.Inc(1)
	}
}
