package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration   time.Duration
	MaxDepth   int // configured iterative deepening limit
	Depth      int // deepest fully completed iteration
	Nodes      int
	Cutoffs    int
	Candidates int
	TimedOut   bool
}

type MoveMetric struct {
	Turn    int
	Faction string
	Action  string // empty when the side passed
	Score   int
	SearchMetric
}

type GameMetric struct {
	RunID           string
	Matchup         string
	StartingFaction string
	Winner          string // faction name, "neutral" for a draw
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	Turns           int
	TotalMoves      int
}

type Collector interface {
	Start(maxDepth, candidates int)
	AddNode()
	AddCutoff()
	CompleteDepth(depth int)
	Interrupt()
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	maxDepth   int
	candidates int
	nodes      atomic.Int64
	cutoffs    atomic.Int64
	depth      atomic.Int32
	timedOut   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth, candidates int) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.candidates = candidates
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Interrupt() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		MaxDepth:   m.maxDepth,
		Depth:      int(m.depth.Load()),
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Candidates: m.candidates,
		TimedOut:   m.timedOut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth, candidates int) {}
func (m *dummyCollector) AddNode()                       {}
func (m *dummyCollector) AddCutoff()                     {}
func (m *dummyCollector) CompleteDepth(depth int)        {}
func (m *dummyCollector) Interrupt()                     {}
func (m *dummyCollector) Complete() SearchMetric         { return SearchMetric{} }
