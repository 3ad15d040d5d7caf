package engine

import (
	"fmt"
	"time"

	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"
	"chessbot/searcher/agent"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local plays one game between two in-process agents, each on its own clock.
type Local struct {
	agents    [2]agent.Agent // Indexed by game.Color
	startFEN  string
	clock     time.Duration
	increment time.Duration
	maxPlies  int
}

func WithStartFEN(fen string) Option {
	return func(e *Local) {
		e.startFEN = fen
	}
}

// WithClock sets the starting time and per-move increment of both sides.
func WithClock(total, increment time.Duration) Option {
	return func(e *Local) {
		e.clock = total
		e.increment = increment
	}
}

func WithMaxPlies(plies int) Option {
	return func(e *Local) {
		if plies > 0 {
			e.maxPlies = plies
		}
	}
}

// LocalEngine returns an engine where agents[0] plays white and agents[1]
// black.
func LocalEngine(agents [2]agent.Agent, options ...Option) (*Local, error) {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}

	e := &Local{
		agents:   agents,
		startFEN: game.StartFEN,
		clock:    meta.START_CLOCK,
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}

	if _, err := chess.FEN(e.startFEN); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidFEN, err)
	}
	return e, nil
}

// Run executes the entire game loop until the game ends.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	start, err := chess.FEN(e.startFEN)
	if err != nil {
		panic(fmt.Sprintf("start position became invalid: %v", err))
	}
	g := chess.NewGame(start)
	clocks := [2]*game.TurnClock{
		game.NewTurnClock(e.clock, e.increment),
		game.NewTurnClock(e.clock, e.increment),
	}

	gameMetric := metrics.GameMetric{
		StartFEN:  e.startFEN,
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Str("fen", e.startFEN).Msg("starting game")

	ply := 1
	for g.Outcome() == chess.NoOutcome {
		if ply > e.maxPlies {
			gameMetric.Method = MethodMaxPlies
			break
		}

		board := game.BoardFromGame(g)
		side := board.SideToMove()
		clock := clocks[side]

		clock.StartTurn()
		move, searchMetric := e.agents[side].FindMove(board, clock)
		if clock.EndTurn() {
			log.Info().Stringer("side", side).Int("ply", ply).Msg("flag fell")
			g.Resign(toChessColor(side))
			gameMetric.Method = MethodTimeForfeit
			break
		}

		if err := play(g, move); err != nil {
			panic(fmt.Sprintf("%s agent played %s: %v", side, move, err))
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Ply:          ply,
			Player:       side.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("ply", ply).Stringer("side", side).Str("move", move.String()).Msg("move played")

		claimDraw(g)
		ply++
	}

	winner := ""
	switch g.Outcome() {
	case chess.WhiteWon:
		winner = game.White.String()
	case chess.BlackWon:
		winner = game.Black.String()
	}
	if gameMetric.Method == "" {
		gameMetric.Method = g.Method().String()
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.PGN = g.String()

	log.Info().
		Str("winner", winner).
		Str("method", gameMetric.Method).
		Int("plies", gameMetric.TotalMoves).
		Msg("game over")

	return winner, gameMetric, moveMetrics
}

// play applies move, which must be one of g's valid moves in UCI notation.
func play(g *chess.Game, move game.Move) error {
	for _, m := range g.ValidMoves() {
		if m.String() == move.String() {
			return g.Move(m)
		}
	}
	return fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
}

// claimDraw ends the game on a threefold repetition or the fifty-move rule
// as soon as either can be claimed.
func claimDraw(g *chess.Game) {
	if g.Outcome() != chess.NoOutcome {
		return
	}
	for _, method := range g.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			if err := g.Draw(method); err != nil {
				log.Warn().Err(err).Msg("failed to claim draw")
			}
			return
		}
	}
}

func toChessColor(c game.Color) chess.Color {
	if c == game.White {
		return chess.White
	}
	return chess.Black
}
