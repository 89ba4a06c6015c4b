package searcher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

// Ponderer runs a search continuously in a background goroutine, using the
// opponent's thinking time to keep growing the tree. When the opponent's
// realized move arrives the tree is re-rooted to the matching child and
// searched for one more time budget before the engine's move is reported.
//
// Protocol, per move: ChooseMove sends the opponent's position (nil when
// the engine opens) and blocks until the engine replies with its chosen
// position. A reported position with no matching child in the tree means
// the two sides disagree on legal moves; that panics, by design.
type Ponderer struct {
	mcts     *MCTS
	root     Node
	requests chan game.State
	replies  chan game.State
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewPonderer builds a pondering session starting from the given position.
// The root is built eagerly so evaluator misconfiguration fails here, not
// in the background loop.
func NewPonderer(mcts *MCTS, start game.State) (*Ponderer, error) {
	root, err := mcts.NewRoot(start)
	if err != nil {
		return nil, err
	}
	return &Ponderer{
		mcts:     mcts,
		root:     root,
		requests: make(chan game.State),
		replies:  make(chan game.State),
	}, nil
}

// Start launches the background search loop.
func (p *Ponderer) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(ctx)
	}()
}

// Stop tears the session down; in-flight expansion work is abandoned.
func (p *Ponderer) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// ChooseMove reports the opponent's realized position (nil when the engine
// moves first) and returns the engine's chosen position. Must not be
// called once the game has reached a terminal position.
func (p *Ponderer) ChooseMove(opponent game.State) game.State {
	p.requests <- opponent
	return <-p.replies
}

func (p *Ponderer) loop(ctx context.Context) {
	root := p.root
	for {
		var opponent game.State
		select {
		case <-ctx.Done():
			return
		case opponent = <-p.requests:
		default:
			if node := NextExpansion(root); node != nil {
				node.Expand()
				continue
			}
			// Fully solved; nothing to do but wait for the next message.
			select {
			case <-ctx.Done():
				return
			case opponent = <-p.requests:
			}
		}

		if opponent != nil {
			root = Reroot(root, opponent)
			if root.Position().Terminal() {
				log.Info().Float64("outcome", root.Position().Outcome()).Msg("game over while pondering")
				p.replies <- root.Position()
				return
			}
		}

		ponderUntil(root, time.Now().Add(p.mcts.duration))

		best := BestNode(root)
		best.Detach()
		root = best
		log.Debug().Float64("evaluation", root.Evaluation()).Msg("ponderer chose move")

		select {
		case <-ctx.Done():
			return
		case p.replies <- root.Position():
		}

		if root.Position().Terminal() {
			log.Info().Float64("outcome", root.Position().Outcome()).Msg("game over after engine move")
			return
		}
	}
}

// ponderUntil keeps expanding root until the deadline or full solution.
func ponderUntil(root Node, deadline time.Time) {
	for time.Now().Before(deadline) {
		node := NextExpansion(root)
		if node == nil {
			return
		}
		node.Expand()
	}
}
