package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_Map_KeepsRowOrder(t *testing.T) {
	testCases := map[string]struct {
		rows        int
		concurrency int
	}{
		"empty":       {0, 2},
		"one-chunk":   {10, 4},
		"many-chunks": {3*chunkSize + 7, 3},
		"default":     {chunkSize + 1, 0},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			out, err := Map(context.Background(), tc.rows, Options{Concurrency: tc.concurrency}, func(i int) (int, error) {
				return i * 2, nil
			})
			require.NoError(t, err)
			require.Len(t, out, tc.rows)
			for i, v := range out {
				require.Equal(t, i*2, v)
			}
		})
	}
}

func Test_Map_FirstErrorFails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	boom := errors.New("boom")

	out, err := Map(context.Background(), 2*chunkSize, Options{Concurrency: 1, Logger: zap.New(core)}, func(i int) (int, error) {
		if i == 1500 {
			return 0, boom
		}
		return i, nil
	})
	require.Nil(t, out)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "row 1500")

	require.Equal(t, 1, logs.FilterMessage("map rows").Len())
	failed := logs.FilterMessage("row failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, int64(1500), failed[0].ContextMap()["row"])
}

func Test_Map_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Map(ctx, 10, Options{}, func(i int) (int, error) { return i, nil })
	require.ErrorIs(t, err, context.Canceled)
}
