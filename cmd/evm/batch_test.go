package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bnb-chain/bsc-evm/core/vm"
	"github.com/bnb-chain/bsc-evm/core/vm/runtime"
	"github.com/stretchr/testify/require"
)

const testBatch = `
[[Vector]]
Name = "return"
Code = "0x60006000f3"
Expect = "Return"
ExpectGas = 6
ExpectOutput = "0x"

[[Vector]]
Name = "push0-london"
Code = "0x5f"
Fork = "London"
Expect = "NotActivated"
ExpectGas = 100

[[Vector]]
Name = "stop-is-not-return"
Code = "0x00"
Expect = "Return"

[[Vector]]
Name = "unchecked"
Code = "0x6001"
Input = "0xdeadbeef"
Gas = 2
`

func TestLoadBatch(t *testing.T) {
	vectors, err := loadBatch(strings.NewReader(testBatch), "toml")
	require.NoError(t, err)
	require.Len(t, vectors, 4)
	require.Equal(t, "return", vectors[0].Name)
	require.Equal(t, []byte{0x60, 0x00, 0x60, 0x00, 0xf3}, []byte(vectors[0].Code))
	require.NotNil(t, vectors[0].ExpectGas)
	require.Equal(t, uint64(6), *vectors[0].ExpectGas)
	require.NotNil(t, vectors[0].ExpectOutput)
	require.Nil(t, vectors[2].ExpectGas)
	require.Equal(t, uint64(2), vectors[3].Gas)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, []byte(vectors[3].Input))
}

const testBatchYAML = `
vectors:
  - name: return
    code: "0x60006000f3"
    expect: Return
    expectGas: 6
  - name: revert
    code: "0x600060005360016000fd"
    fork: Byzantium
    expectOutput: "0x00"
`

func TestLoadBatchYAML(t *testing.T) {
	require.Equal(t, "yaml", batchFormat("vectors.YML"))
	require.Equal(t, "toml", batchFormat("vectors.toml"))

	vectors, err := loadBatch(strings.NewReader(testBatchYAML), "yaml")
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	require.Equal(t, "Return", vectors[0].Expect)
	require.Equal(t, uint64(6), *vectors[0].ExpectGas)
	require.Equal(t, "Byzantium", vectors[1].Fork)
	require.Equal(t, []byte{0}, []byte(*vectors[1].ExpectOutput))

	var out bytes.Buffer
	require.Zero(t, runBatch(context.Background(), &out, vectors, &ExecConfig{Fork: "Cancun", GasLimit: 100}))

	_, err = loadBatch(strings.NewReader("vectors:\n  - nmae: typo\n"), "yaml")
	require.Error(t, err)
}

func TestLoadBatchErrors(t *testing.T) {
	_, err := loadBatch(strings.NewReader("[[Vector]]\nNmae = \"typo\"\n"), "toml")
	require.ErrorContains(t, err, "field 'Nmae' is not defined")

	_, err = loadBatch(strings.NewReader("[[Vector]]\nExpect = \"Success\"\n"), "toml")
	require.ErrorContains(t, err, `unknown result "Success"`)
}

func TestRunBatch(t *testing.T) {
	vectors, err := loadBatch(strings.NewReader(testBatch), "toml")
	require.NoError(t, err)

	var out bytes.Buffer
	failed := runBatch(context.Background(), &out, vectors, &ExecConfig{Fork: "Cancun", GasLimit: 100})
	require.Equal(t, 1, failed)
	require.Contains(t, out.String(), "stop-is-not-return")
	require.Contains(t, out.String(), "NotActivated")
	require.Contains(t, out.String(), "OutOfGas")
}

func TestVectorCheck(t *testing.T) {
	gas := uint64(3)
	v := Vector{Expect: "Stop", ExpectGas: &gas}
	res := runtime.BatchResult{Result: &vm.ExecutionResult{Result: vm.Stop, Gas: vm.NewGas(10)}}
	require.Equal(t, []string{"gas used 0, want 3"}, v.check(res))

	v.ExpectGas = nil
	require.Empty(t, v.check(res))

	require.Equal(t, []string{"boom"}, v.check(runtime.BatchResult{Err: errString("boom")}))
}

type errString string

func (e errString) Error() string { return string(e) }
