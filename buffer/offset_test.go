package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/geocolumn/common"
)

func Test_NewOffsetBuffer(t *testing.T) {
	testCases := map[string]struct {
		values []int32
		rows   int
		errMsg string
	}{
		"single-zero": {[]int32{0}, 0, ""},
		"monotonic":   {[]int32{0, 2, 2, 5}, 3, ""},
		"non-zero":    {[]int32{3, 4}, 1, ""},
		"empty":       {nil, 0, "offset buffer is empty"},
		"negative":    {[]int32{-1, 2}, 0, "starts at -1"},
		"decreasing":  {[]int32{0, 3, 2}, 0, "offset 2 (2) is less than offset 1 (3)"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			o, err := NewOffsetBuffer(tc.values)
			if tc.errMsg != "" {
				require.ErrorIs(t, err, common.ErrMalformedBuffer)
				require.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.rows, o.RowCount())
			require.Equal(t, len(tc.values), o.Len())
		})
	}
}

func Test_OffsetBuffer_StartEnd(t *testing.T) {
	o, err := NewOffsetBuffer([]int64{0, 2, 2, 5})
	require.NoError(t, err)

	start, end, err := o.StartEnd(0)
	require.NoError(t, err)
	require.Equal(t, 0, start)
	require.Equal(t, 2, end)

	start, end, err = o.StartEnd(1)
	require.NoError(t, err)
	require.Equal(t, start, end)

	_, _, err = o.StartEnd(3)
	require.ErrorIs(t, err, common.ErrOutOfRange)
	_, _, err = o.StartEnd(-1)
	require.ErrorIs(t, err, common.ErrOutOfRange)
	require.Equal(t, 5, o.Last())
}

func Test_OffsetBufferBuilder(t *testing.T) {
	b := NewOffsetBufferBuilder[int32](4)
	b.PushLength(2)
	b.PushEmpty()
	b.PushLength(0)
	b.PushLength(3)
	require.Equal(t, 4, b.RowCount())
	require.Equal(t, 5, b.Last())

	o := b.Build()
	require.Equal(t, []int32{0, 2, 2, 2, 5}, o.Values())
	for i := range o.RowCount() {
		require.LessOrEqual(t, o.At(i), o.At(i+1))
	}
	// the builder output always satisfies the constructor
	_, err := NewOffsetBuffer(o.Values())
	require.NoError(t, err)
}

func Test_OffsetBufferBuilder_Overflow(t *testing.T) {
	b := NewOffsetBufferBuilder[int32](1)
	require.Panics(t, func() { b.PushLength(1 << 31) })

	wide := NewOffsetBufferBuilder[int64](1)
	require.NotPanics(t, func() { wide.PushLength(1 << 31) })
	require.Equal(t, 1<<31, wide.Last())
}
