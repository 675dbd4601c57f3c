package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEventCountsAndWraps(t *testing.T) {
	svc := NewService(Config{HistoryLen: 3})

	svc.RecordEvent("nav_changed", map[string]string{"view": "DETAIL"})
	svc.RecordEvent("nav_changed", map[string]string{"view": "UNIT1_OVERVIEW"})
	svc.RecordEvent("view_degraded", nil)
	svc.RecordEvent("nav_changed", map[string]string{"view": "DETAIL"})

	snap := svc.Snapshot()
	assert.Equal(t, int64(3), snap.Counters["nav_changed"])
	assert.Equal(t, int64(1), snap.Counters["view_degraded"])
	require.Len(t, snap.Recent, 3)
	assert.Equal(t, "UNIT1_OVERVIEW", snap.Recent[0].Labels["view"], "oldest retained first")
	assert.Equal(t, "DETAIL", snap.Recent[2].Labels["view"])
}

func TestGetEventMetricsWindow(t *testing.T) {
	svc := NewService(Config{})
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now.Add(-2 * time.Hour) }
	svc.RecordEvent("view_degraded", map[string]string{"source": "sensor"})

	svc.now = func() time.Time { return now }
	svc.RecordEvent("view_degraded", map[string]string{"source": "sensor", "machine_id": "Mill 2"})
	svc.RecordEvent("view_degraded", map[string]string{"machine_id": "Mill 2", "source": "sensor"})
	svc.RecordEvent("report_generated", nil)

	metrics, err := svc.GetEventMetrics("view_degraded", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"machine_id=Mill 2,source=sensor": 2}, metrics)

	metrics, err = svc.GetEventMetrics("report_generated", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"": 1}, metrics)
}
