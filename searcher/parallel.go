package searcher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

// ParallelPonderer runs N independent pondering sessions, each growing its
// own full copy of the tree, and merges the clones into one tree whenever
// a move must be reported. The sessions share no mutable tree state while
// growing; clones cross goroutine boundaries only through the broadcast
// and collect channels, and the coordinator is the only merger.
type ParallelPonderer struct {
	mcts     *MCTS
	root     Node // coordinator baseline; never searched, only merged into
	workers  []*ponderWorker
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	started  bool
	terminal bool
}

type ponderWorker struct {
	roots   chan Node       // coordinator -> worker: fresh clone to grow
	moves   chan game.State // coordinator -> worker: opponent position (nil = engine opens)
	collect chan struct{}   // coordinator -> worker: report request
	results chan Node       // worker -> coordinator: grown clone
}

// NewParallelPonderer builds a session with the given number of
// independently searching goroutines.
func NewParallelPonderer(mcts *MCTS, start game.State, sessions int) (*ParallelPonderer, error) {
	if sessions < 1 {
		sessions = 1
	}
	root, err := mcts.NewRoot(start)
	if err != nil {
		return nil, err
	}

	workers := make([]*ponderWorker, sessions)
	for i := range workers {
		workers[i] = &ponderWorker{
			roots:   make(chan Node, 1),
			moves:   make(chan game.State, 1),
			collect: make(chan struct{}, 1),
			results: make(chan Node, 1),
		}
	}
	return &ParallelPonderer{mcts: mcts, root: root, workers: workers}, nil
}

func (p *ParallelPonderer) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, worker := range p.workers {
		worker := worker
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			worker.run(ctx)
		}()
	}
	p.broadcastRoots()
	p.started = true
}

func (p *ParallelPonderer) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *ParallelPonderer) broadcastRoots() {
	for _, worker := range p.workers {
		worker.roots <- CloneTree(p.root)
	}
}

// ChooseMove reports the opponent's realized position (nil when the engine
// moves first), lets the sessions think for one time budget, merges their
// trees and returns the engine's chosen position.
func (p *ParallelPonderer) ChooseMove(opponent game.State) game.State {
	if !p.started {
		panic("parallel ponderer not started")
	}
	if p.terminal {
		panic("game is already over")
	}

	// Workers re-root and keep thinking; the baseline re-roots in step.
	for _, worker := range p.workers {
		worker.moves <- opponent
	}
	if opponent != nil {
		p.root = Reroot(p.root, opponent)
		if p.root.Position().Terminal() {
			p.terminal = true
			p.drainWorkers()
			return p.root.Position()
		}
	}

	time.Sleep(p.mcts.duration)

	clones := make([]Node, len(p.workers))
	g := errgroup.Group{}
	for i, worker := range p.workers {
		i, worker := i, worker
		g.Go(func() error {
			worker.collect <- struct{}{}
			clones[i] = <-worker.results
			return nil
		})
	}
	_ = g.Wait()

	p.root.Merge(clones)
	log.Debug().
		Int("sessions", len(clones)).
		Float64("expansions", p.root.Expansions()).
		Msg("merged session trees")

	best := BestNode(p.root)
	best.Detach()
	p.root = best

	if p.root.Position().Terminal() {
		p.terminal = true
	} else {
		p.broadcastRoots()
	}
	return p.root.Position()
}

// drainWorkers unblocks workers that were told about a game-ending
// opponent move and will never get a collect request.
func (p *ParallelPonderer) drainWorkers() {
	for _, worker := range p.workers {
		worker.collect <- struct{}{}
		<-worker.results
	}
}

func (w *ponderWorker) run(ctx context.Context) {
	for {
		var root Node
		select {
		case <-ctx.Done():
			return
		case root = <-w.roots:
		}

		// Grow until the opponent's move arrives.
		var opponent game.State
		pondering := true
		for pondering {
			select {
			case <-ctx.Done():
				return
			case opponent = <-w.moves:
				pondering = false
			default:
				if node := NextExpansion(root); node != nil {
					node.Expand()
				} else {
					select {
					case <-ctx.Done():
						return
					case opponent = <-w.moves:
						pondering = false
					}
				}
			}
		}

		if opponent != nil {
			root = Reroot(root, opponent)
		}

		// Keep growing the new root until the coordinator asks for it.
		growing := true
		for growing {
			select {
			case <-ctx.Done():
				return
			case <-w.collect:
				growing = false
			default:
				if node := NextExpansion(root); node != nil {
					node.Expand()
				} else {
					select {
					case <-ctx.Done():
						return
					case <-w.collect:
						growing = false
					}
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case w.results <- root:
		}
	}
}
