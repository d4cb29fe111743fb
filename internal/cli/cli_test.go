package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignalContextCancels(t *testing.T) {
	ctx, stop := SignalContext()
	require.NoError(t, ctx.Err())

	select {
	case <-ctx.Done():
		t.Fatal("context done before stop")
	default:
	}

	stop()
	<-ctx.Done()
	require.Error(t, ctx.Err())
}

func TestLoggerCarriesTimestamps(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger().Output(&buf)
	logger.Info().Msg("probe")

	require.Contains(t, buf.String(), `"message":"probe"`)
	require.Contains(t, buf.String(), `"time"`)
}
