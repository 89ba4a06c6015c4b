// Package engine runs complete games between two agents.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amaarquadri/PerfectInformationGame/agent"
	"github.com/amaarquadri/PerfectInformationGame/game"
)

// MoveRecord describes one played move.
type MoveRecord struct {
	Step      int
	Maximizer bool // whether the maximizing side played this move
	Duration  time.Duration
}

// MatchRecord summarizes a finished game.
type MatchRecord struct {
	Outcome   float64 // {-1, 0, +1} from the maximizing player's perspective
	Moves     []MoveRecord
	StartTime time.Time
	Duration  time.Duration
}

// Match drives a game between the maximizing and minimizing agents from
// the given starting position.
type Match struct {
	State     game.State
	Maximizer agent.Agent
	Minimizer agent.Agent
	MaxMoves  int // safety bound; 0 means no bound
}

func NewMatch(start game.State, maximizer, minimizer agent.Agent) *Match {
	return &Match{State: start, Maximizer: maximizer, Minimizer: minimizer}
}

// Run plays the game to termination and returns its record.
func (m *Match) Run() (MatchRecord, error) {
	record := MatchRecord{StartTime: time.Now()}

	step := 1
	for !m.State.Terminal() {
		if m.MaxMoves > 0 && step > m.MaxMoves {
			return record, fmt.Errorf("game exceeded %d moves", m.MaxMoves)
		}

		mover := m.Minimizer
		maximizing := m.State.MaximizerToMove()
		if maximizing {
			mover = m.Maximizer
		}

		moveStart := time.Now()
		next, err := mover.ChooseMove(m.State)
		if err != nil {
			return record, fmt.Errorf("move %d failed: %w", step, err)
		}

		record.Moves = append(record.Moves, MoveRecord{
			Step:      step,
			Maximizer: maximizing,
			Duration:  time.Since(moveStart),
		})
		log.Debug().Int("step", step).Bool("maximizer", maximizing).Msg("played move")

		m.State = next
		step++
	}

	record.Outcome = m.State.Outcome()
	record.Duration = time.Since(record.StartTime)
	log.Info().
		Float64("outcome", record.Outcome).
		Int("moves", len(record.Moves)).
		Dur("duration", record.Duration).
		Msg("match finished")
	return record, nil
}
