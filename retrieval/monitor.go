package retrieval

import (
	"log/slog"

	"github.com/poiesic/asha/core"
)

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results.
type Monitor interface {
	Start(query string)
	DirectAnswer(answer string)
	AfterEmbedding(vector []float32)
	AfterSearch(hits []core.Hit)
	UnitHit(hit core.Hit, ref core.UnitRef)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                     {}
func (n *noopMonitor) DirectAnswer(_ string)              {}
func (n *noopMonitor) AfterEmbedding(_ []float32)         {}
func (n *noopMonitor) AfterSearch(_ []core.Hit)           {}
func (n *noopMonitor) UnitHit(_ core.Hit, _ core.UnitRef) {}
func (n *noopMonitor) Finish(_ *Result)                   {}

// LogMonitor reports each retrieval step to a logger at debug level.
type LogMonitor struct {
	Logger *slog.Logger
}

var _ Monitor = (*LogMonitor)(nil)

func (m *LogMonitor) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *LogMonitor) Start(query string) {
	m.logger().Debug("retrieval started", "query", query)
}

func (m *LogMonitor) DirectAnswer(answer string) {
	m.logger().Debug("direct answer matched", "length", len(answer))
}

func (m *LogMonitor) AfterEmbedding(vector []float32) {
	m.logger().Debug("query embedded", "dimension", len(vector))
}

func (m *LogMonitor) AfterSearch(hits []core.Hit) {
	m.logger().Debug("index searched", "hits", len(hits))
}

func (m *LogMonitor) UnitHit(hit core.Hit, ref core.UnitRef) {
	m.logger().Debug("unit hit", "unit", hit.UnitIndex, "ref", ref.String(), "distance", hit.Distance)
}

func (m *LogMonitor) Finish(result *Result) {
	m.logger().Debug("retrieval finished", "direct", result.IsDirect(), "records", result.Grouping.Len())
}
