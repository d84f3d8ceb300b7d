package metrics

import (
	"time"

	"tictactoe/game"
)

type SearchMetric struct {
	Iterations   int
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player game.Cell
	Move   game.Coord
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Cell
	Result         game.Result
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(iterations int)
	AddEpisode()
	AddFullPlayout()
	SetTreeSize(size int)
	Complete() SearchMetric
}

// collector is used from a single search goroutine, so plain counters suffice.
type collector struct {
	iterations   int
	startTime    time.Time
	episodes     int
	fullPlayouts int
	treeSize     int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.episodes = 0
	m.fullPlayouts = 0
	m.treeSize = 0
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize = size
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		TreeSize:     m.treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int)   {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) SetTreeSize(size int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
