package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/geocolumn/common"
)

func Test_NullBuffer_Nil(t *testing.T) {
	var n *NullBuffer
	require.True(t, n.IsValid(10))
	require.False(t, n.IsNull(0))
	require.Equal(t, 0, n.NullCount())
	require.Equal(t, 0, n.Len())
	require.Nil(t, n.Bitmap())
}

func Test_NullBufferBuilder(t *testing.T) {
	b := NewNullBufferBuilder(3)
	for range 3 {
		b.AppendValid()
	}
	require.Nil(t, b.Finish())

	valid := []bool{true, false, true, true, false, true, true, true, true, false}
	n := NewNullBufferFromBools(valid)
	require.NotNil(t, n)
	require.Equal(t, len(valid), n.Len())
	require.Equal(t, 3, n.NullCount())
	for i, v := range valid {
		require.Equal(t, v, n.IsValid(i), "row %d", i)
	}
	require.Equal(t, []byte{0b11101101, 0b00000001}, n.Bitmap())
}

func Test_NewNullBuffer(t *testing.T) {
	testCases := map[string]struct {
		bitmap    []byte
		offset    int
		length    int
		nullCount int
		errMsg    string
	}{
		"full-byte":   {[]byte{0b11110000}, 0, 8, 4, ""},
		"offset":      {[]byte{0b11110000}, 4, 4, 0, ""},
		"cross-byte":  {[]byte{0b10000000, 0b00000001}, 7, 2, 0, ""},
		"short":       {[]byte{0xff}, 4, 8, 0, "need 2"},
		"negative":    {[]byte{0xff}, -1, 1, 0, "validity window"},
		"zero-length": {nil, 0, 0, 0, ""},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			n, err := NewNullBuffer(tc.bitmap, tc.offset, tc.length)
			if tc.errMsg != "" {
				require.ErrorIs(t, err, common.ErrMalformedBuffer)
				require.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.nullCount, n.NullCount())
			require.Equal(t, tc.length, n.Len())
		})
	}
}

func Test_NullBuffer_SliceAndBitmap(t *testing.T) {
	n := NewNullBufferFromBools([]bool{false, true, true, false, true, false, false, true, true, false})

	s, err := n.Slice(1, 4)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	require.Equal(t, 1, s.NullCount())
	require.True(t, s.IsValid(0))
	require.True(t, s.IsValid(1))
	require.False(t, s.IsValid(2))
	require.True(t, s.IsValid(3))
	// realigned to bit 0
	require.Equal(t, []byte{0b00001011}, s.Bitmap())

	s, err = n.Slice(8, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0b00000001}, s.Bitmap())

	_, err = n.Slice(5, 6)
	require.ErrorIs(t, err, common.ErrOutOfRange)
}

func Test_CheckNulls(t *testing.T) {
	require.NoError(t, CheckNulls(nil, 5))
	n := NewNullBufferFromBools([]bool{true, false})
	require.NoError(t, CheckNulls(n, 2))
	err := CheckNulls(n, 3)
	require.ErrorIs(t, err, common.ErrMalformedBuffer)
	require.Contains(t, err.Error(), "covers 2 rows, array has 3")
}

func Test_CheckTerminalOffset(t *testing.T) {
	o, err := NewOffsetBuffer([]int32{0, 2, 4})
	require.NoError(t, err)
	require.NoError(t, CheckTerminalOffset("ring", o, 4))

	err = CheckTerminalOffset("ring", o, 5)
	require.ErrorIs(t, err, common.ErrMalformedBuffer)
	require.Contains(t, err.Error(), "last ring offset 4 does not match child length 5")

	err = CheckTerminalOffset("geom", OffsetBuffer[int32]{}, 0)
	require.ErrorIs(t, err, common.ErrMalformedBuffer)
}
