package profiler

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFrameFeedsRegistry(t *testing.T) {
	p := NewProfiler()
	p.ObserveFrame(10 * time.Millisecond)
	p.ObserveFrame(20 * time.Millisecond)

	var m dto.Metric
	require.NoError(t, p.frames.Write(&m))
	assert.Equal(t, 2.0, m.GetCounter().GetValue())

	ms, _ := p.summarize()
	assert.InDelta(t, 15.0, ms, 1e-6)

	// Only frames since the last summary count.
	p.ObserveFrame(40 * time.Millisecond)
	ms, _ = p.summarize()
	assert.InDelta(t, 40.0, ms, 1e-6)
}

func TestObservePickCountsHits(t *testing.T) {
	p := NewProfiler()
	p.ObservePick(true)
	p.ObservePick(false)
	p.ObservePick(true)

	_, hits := p.summarize()
	assert.Equal(t, uint64(2), hits)
}

func TestTickLogsAfterInterval(t *testing.T) {
	p := NewProfiler()
	assert.False(t, p.Tick())

	p.lastTime = time.Now().Add(-2 * time.Second)
	assert.True(t, p.Tick())
	assert.Equal(t, 0, p.frameCount)
}

func TestRegistryGathers(t *testing.T) {
	p := NewProfiler()
	p.ObserveLabels(7)
	families, err := p.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "ontography_labels_drawn")
	assert.Contains(t, names, "ontography_frame_seconds")
}
