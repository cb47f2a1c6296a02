package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travel-map/internal/kafka"
)

type sessionStats struct {
	open  int
	stale uint64
}

func (s sessionStats) Len() int             { return s.open }
func (s sessionStats) StaleDropped() uint64 { return s.stale }

func TestKafkaMetricsServiceAddsSessionStats(t *testing.T) {
	m := kafka.NewKafkaMetrics()
	m.RecordEvent("map.locations", 4, false)
	m.SetLag(5)

	stats := NewKafkaMetricsService(m, sessionStats{open: 2, stale: 9}).GetStatistics()
	assert.Equal(t, int64(5), stats.TotalLag)
	assert.Len(t, stats.Statistics, 1)
	assert.Equal(t, 2, stats.MapSessions)
	assert.Equal(t, uint64(9), stats.StaleResponsesDropped)

	bare := NewKafkaMetricsService(m, nil).GetStatistics()
	assert.Zero(t, bare.MapSessions)
}
