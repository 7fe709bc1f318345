package vm

import (
	"errors"
	"testing"

	"github.com/bnb-chain/bsc-evm/params"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestStackPushLimit(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	for i := 0; i < int(params.StackLimit); i++ {
		require.NoError(t, st.Push(uint256.NewInt(uint64(i))))
		require.Equal(t, i+1, st.Len())
	}
	err := st.Push(uint256.NewInt(1))
	var overflow *ErrStackOverflow
	require.True(t, errors.As(err, &overflow), "have %v", err)
	require.Equal(t, int(params.StackLimit), st.Len())
	require.Equal(t, StackOverflow, resultFromErr(err))
}

func TestStackPopEmpty(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	_, err := st.Pop()
	var underflow *ErrStackUnderflow
	require.True(t, errors.As(err, &underflow), "have %v", err)
	require.Equal(t, 0, st.Len())
	require.Equal(t, StackUnderflow, resultFromErr(err))
}

func TestStackDupSwap(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, st.Push(uint256.NewInt(i)))
	}
	// [1 2 3] top is 3
	require.NoError(t, st.Dup(3))
	require.Equal(t, uint64(1), st.peek().Uint64())
	require.Equal(t, 4, st.Len())

	// [1 2 3 1] -> swap top with the 3rd below it
	require.NoError(t, st.Swap(3))
	require.Equal(t, uint64(1), st.Back(0).Uint64())
	require.Equal(t, uint64(1), st.Back(3).Uint64())

	require.NoError(t, st.Swap(1))
	require.Equal(t, uint64(3), st.Back(0).Uint64())
	require.Equal(t, uint64(1), st.Back(1).Uint64())

	var underflow *ErrStackUnderflow
	require.ErrorAs(t, st.Dup(5), &underflow)
	require.ErrorAs(t, st.Swap(4), &underflow)
	require.Equal(t, 4, st.Len())
}

func TestStackDupOverflow(t *testing.T) {
	st := newstack()
	defer returnStack(st)
	for i := 0; i < int(params.StackLimit); i++ {
		st.push(new(uint256.Int))
	}
	var overflow *ErrStackOverflow
	require.ErrorAs(t, st.Dup(1), &overflow)
}

func TestStackString(t *testing.T) {
	st := newstack()
	defer returnStack(st)
	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(0x20))
	if have, want := st.String(), "0x20\n0x1"; have != want {
		t.Fatalf("have %q want %q", have, want)
	}
}

func BenchmarkStackPushPop(b *testing.B) {
	st := newstack()
	defer returnStack(st)
	v := uint256.NewInt(0xff)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		st.push(v)
		st.pop()
	}
}
