package searcher

import (
	"math"
	"time"

	"chessbot/experiments/metrics"
	"chessbot/game"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

type MCTS struct {
	iterations  int
	duration    time.Duration
	unlimited   bool
	exploration float64
	evaluate    game.Evaluate
	metrics     metrics.Collector
}

// WithIterations caps the number of simulations per move.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration fixes the search time per move instead of deriving it from the
// clock.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithUnlimitedTime stops the search on the iteration cap only.
func WithUnlimitedTime() Option {
	return func(m *MCTS) {
		m.unlimited = true
	}
}

func WithExplorationConstant(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:  MaxIterations,
		exploration: ExplorationConstant,
		evaluate:    game.EvaluatePosition,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// SelectMove searches pos within this turn's budget and returns one of its
// legal moves. pos is restored before returning.
func (m *MCTS) SelectMove(pos game.Position, clock game.Clock) game.Move {
	move, _ := m.Search(pos, clock)
	return move
}

// Search is SelectMove with the search metrics (zero unless WithMetrics).
// clock may be nil when the budget does not depend on it.
func (m *MCTS) Search(pos game.Position, clock game.Clock) (game.Move, metrics.SearchMetric) {
	moves := pos.LegalMoves(false)
	if len(moves) == 0 {
		panic("cannot select a move: no legal moves")
	}

	limit := m.budget(clock)
	elapsed := m.stopwatch(clock)
	m.metrics.Start(limit, m.exploration)

	s := &search{
		tree:        newTree(),
		evaluate:    m.evaluate,
		exploration: m.exploration,
	}
	// Seed the root evaluation so the first full iteration already expands it
	s.run(pos)
	m.metrics.AddIteration(s.depth)
	for {
		s.run(pos)
		m.metrics.AddIteration(s.depth)
		if elapsed() >= limit || s.tree.root().visits >= m.iterations {
			break
		}
	}

	move := moves[0]
	value := math.NaN()
	root := s.tree.root()
	if i, v := s.tree.bestChild(); i >= 0 {
		move, value = root.moves[i], v
	} else {
		log.Warn().Msg("no root child visited, falling back to the first legal move")
	}

	m.metrics.SetNodes(len(s.tree.nodes))
	metric := m.metrics.Complete(value)

	log.Debug().
		Str("move", move.String()).
		Float64("value", value).
		Int("visits", root.visits).
		Int("nodes", len(s.tree.nodes)).
		Dur("budget", limit).
		Msg("search complete")

	return move, metric
}

func (m *MCTS) budget(clock game.Clock) time.Duration {
	switch {
	case m.unlimited:
		return time.Duration(math.MaxInt64)
	case m.duration > 0:
		return m.duration
	case clock == nil:
		panic("search needs a clock unless its duration is fixed")
	}
	return budget(clock.Remaining())
}

func (m *MCTS) stopwatch(clock game.Clock) func() time.Duration {
	if clock == nil {
		start := time.Now()
		return func() time.Duration { return time.Since(start) }
	}
	return clock.ElapsedThisTurn
}

// search is the state of one turn's search. The tree is discarded with it.
type search struct {
	tree        *tree
	evaluate    game.Evaluate
	exploration float64
	depth       int // Depth reached by the last iteration
}

func (s *search) run(pos game.Position) float64 {
	s.depth = 0
	return s.iterate(pos, 0, 0)
}

// iterate runs one simulation from the node at index, with pos at that node,
// and returns its outcome from the perspective of the player to move there.
func (s *search) iterate(pos game.Position, index int32, depth int) float64 {
	n := &s.tree.nodes[index]
	if depth > s.depth {
		s.depth = depth
	}

	switch n.state {
	case unvisited:
		n.value = s.evaluate(pos)
		n.visits = 1
		n.state = evaluated
		return n.value
	case evaluated:
		// Moves are generated on the second visit only
		n.moves = pos.LegalMoves(false)
		if len(n.moves) == 0 {
			n.state = terminal
		} else {
			n.children = make([]int32, len(n.moves))
			n.state = expanded
		}
	}

	if n.state == terminal {
		return n.value / float64(n.visits)
	}

	i := s.tree.selectChild(index, s.exploration)
	move := n.moves[i]
	child := s.tree.child(index, i)

	// Negamax: the child's outcome is the opponent's
	outcome := -s.descend(pos, move, child, depth+1)

	n = &s.tree.nodes[index] // The arena may have grown
	n.value += outcome
	n.visits++
	return outcome
}

// descend plays move, iterates the child and undoes the move on every exit
// path, panics included.
func (s *search) descend(pos game.Position, move game.Move, child int32, depth int) float64 {
	undo := pos.Apply(move)
	defer undo()
	return s.iterate(pos, child, depth)
}
