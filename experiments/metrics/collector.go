package metrics

import (
	"time"
)

type SearchMetric struct {
	Budget      time.Duration
	Duration    time.Duration
	Iterations  int
	Nodes       int
	MaxDepth    int
	BestValue   float64 // Average value of the chosen move, from the mover's perspective
	Exploration float64
}

type MoveMetric struct {
	Ply    int
	Player string // "white" or "black"
	Move   string // UCI
	SearchMetric
}

type GameMetric struct {
	Winner     string // "white", "black" or "" for a draw
	Method     string // How the game ended
	StartFEN   string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	PGN        string
}

type Collector interface {
	Start(budget time.Duration, exploration float64)
	AddIteration(depth int)
	SetNodes(nodes int)
	Complete(bestValue float64) SearchMetric
}

type collector struct {
	budget      time.Duration
	exploration float64
	startTime   time.Time
	iterations  int
	nodes       int
	maxDepth    int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget time.Duration, exploration float64) {
	*m = collector{
		budget:      budget,
		exploration: exploration,
		startTime:   time.Now(),
	}
}

func (m *collector) AddIteration(depth int) {
	m.iterations++
	if depth > m.maxDepth {
		m.maxDepth = depth
	}
}

func (m *collector) SetNodes(nodes int) {
	m.nodes = nodes
}

func (m *collector) Complete(bestValue float64) SearchMetric {
	return SearchMetric{
		Budget:      m.budget,
		Duration:    time.Since(m.startTime),
		Iterations:  m.iterations,
		Nodes:       m.nodes,
		MaxDepth:    m.maxDepth,
		BestValue:   bestValue,
		Exploration: m.exploration,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget time.Duration, exploration float64) {}
func (m *dummyCollector) AddIteration(depth int)                           {}
func (m *dummyCollector) SetNodes(nodes int)                               {}
func (m *dummyCollector) Complete(bestValue float64) SearchMetric          { return SearchMetric{} }
