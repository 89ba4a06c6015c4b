package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one move search.
type SearchMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Expansions int64 // expansion steps performed this search
	Solved     bool  // tree was fully solved before the budget ran out
}

type MetricsCollector interface {
	Start()
	AddExpansion()
	SetSolved()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime  time.Time
	expansions atomic.Int64
	solved     atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.expansions.Store(0)
	m.solved.Store(false)
}

func (m *metricsCollector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *metricsCollector) SetSolved() {
	m.solved.Store(true)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Expansions: m.expansions.Load(),
		Solved:     m.solved.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (noMetricsCollector) Start()                  {}
func (noMetricsCollector) AddExpansion()           {}
func (noMetricsCollector) SetSolved()              {}
func (noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
