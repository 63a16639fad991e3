package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerAcquireRelease(t *testing.T) {
	limits := NewLimits(1, 1)
	controller := NewController(limits)

	require.Equal(t, limits, controller.LimitsSnapshot())

	require.NoError(t, controller.AcquireReport(context.Background()))
	controller.ReleaseReport()

	require.NoError(t, controller.AcquireSource(context.Background()))
	controller.ReleaseSource()
}

func TestNewLimitsDefaults(t *testing.T) {
	limits := NewLimits(0, 0)
	require.Positive(t, limits.MaxConcurrentReports)
	require.Positive(t, limits.MaxOpenSources)
	require.Positive(t, limits.MaxRecords)
	require.Positive(t, limits.MaxSourceBytes)
}
