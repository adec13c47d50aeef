package searcher

import "time"

type SearchMetric struct {
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	MaxDepth  int           `json:"max_depth"` // Configured bound
	Deepest   int           `json:"deepest"`   // Deepest node actually built
	Nodes     int           `json:"nodes"`
	Leaves    int           `json:"leaves"`
}

type MetricsCollector interface {
	Start(maxDepth int)
	AddNode(depth int)
	AddLeaf()
	Complete() SearchMetric
}

// Searches are single-threaded, so the collector needs no atomics.
type metricsCollector struct {
	metric SearchMetric
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(maxDepth int) {
	m.metric = SearchMetric{StartTime: time.Now(), MaxDepth: maxDepth}
}

func (m *metricsCollector) AddNode(depth int) {
	m.metric.Nodes++
	if depth > m.metric.Deepest {
		m.metric.Deepest = depth
	}
}

func (m *metricsCollector) AddLeaf() {
	m.metric.Leaves++
}

func (m *metricsCollector) Complete() SearchMetric {
	m.metric.Duration = time.Since(m.metric.StartTime)
	return m.metric
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int)              {}
func (m *noMetricsCollector) AddNode(int)            {}
func (m *noMetricsCollector) AddLeaf()               {}
func (m *noMetricsCollector) Complete() SearchMetric { return SearchMetric{} }
