package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amaarquadri/PerfectInformationGame/agent"
	"github.com/amaarquadri/PerfectInformationGame/config"
	"github.com/amaarquadri/PerfectInformationGame/engine"
	"github.com/amaarquadri/PerfectInformationGame/evaluator"
	"github.com/amaarquadri/PerfectInformationGame/experiments"
	"github.com/amaarquadri/PerfectInformationGame/game/connect4"
	"github.com/amaarquadri/PerfectInformationGame/game/tictactoe"
	"github.com/amaarquadri/PerfectInformationGame/searcher"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	records := []engine.MatchRecord{
		runSolverMatch(cfg),
		runPonderMatch(cfg),
		runSelfPlay(cfg),
	}

	writer, err := experiments.NewWriter(cfg.ResultsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create results writer")
	}
	if err := writer.WriteMatches(records); err != nil {
		log.Fatal().Err(err).Msg("failed to write match results")
	}
	if err := writer.WriteMoves(records); err != nil {
		log.Fatal().Err(err).Msg("failed to write move results")
	}
}

// runSolverMatch plays the exact solver against a time-boxed MCTS on
// tic-tac-toe. Optimal play on both sides draws.
func runSolverMatch(cfg config.Config) engine.MatchRecord {
	log.Info().Msg("tic-tac-toe: solver vs MCTS")

	solver := agent.NewMinimaxAgent(searcher.NewSolver())
	mcts := agent.NewSearchAgent(newMCTS(cfg))

	match := engine.NewMatch(tictactoe.New(), solver, mcts)
	record, err := match.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("solver match failed")
	}
	return record
}

// runPonderMatch plays a parallel pondering engine against a plain MCTS
// agent on connect four.
func runPonderMatch(cfg config.Config) engine.MatchRecord {
	log.Info().Msg("connect four: parallel ponderer vs MCTS")

	start := connect4.New()
	session, err := searcher.NewParallelPonderer(newMCTS(cfg), start, cfg.Sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build pondering session")
	}
	session.Start(context.Background())
	defer session.Stop()

	ponderer := agent.NewPonderAgent(session, start)
	mcts := agent.NewSearchAgent(newMCTS(cfg))

	match := engine.NewMatch(start, ponderer, mcts)
	record, err := match.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("ponder match failed")
	}
	return record
}

// runSelfPlay has one training agent play both sides of a tic-tac-toe
// game and backfills the final outcome into its recorded samples.
func runSelfPlay(cfg config.Config) engine.MatchRecord {
	log.Info().Msg("tic-tac-toe: self-play sampling")

	trainer := agent.NewTrainingAgent(newMCTS(cfg), 1.0, uint64(time.Now().UnixNano()))

	match := engine.NewMatch(tictactoe.New(), trainer, trainer)
	record, err := match.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("self-play match failed")
	}
	trainer.FinishGame(record.Outcome)

	log.Info().
		Int("samples", len(trainer.Samples())).
		Float64("outcome", record.Outcome).
		Msg("recorded self-play samples")
	return record
}

func newMCTS(cfg config.Config) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithDuration(cfg.MoveTime),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithRolloutBatch(cfg.RolloutBatch),
		searcher.WithWorkers(cfg.Workers),
		searcher.WithMetrics(),
	}
	if cfg.EvaluatorURL != "" {
		options = append(options,
			searcher.WithEvaluator(evaluator.NewClient(cfg.EvaluatorURL)),
			searcher.WithPriorWeight(cfg.PriorWeight),
		)
	}
	return searcher.NewMCTS(options...)
}
