package automod

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Processor runs the full decision pipeline for one message: snapshot
// load, rule escalation and spam detection in parallel, then directive
// dispatch. Messages are processed independently of each other; only
// the directives for a single message are sequenced.
type Processor struct {
	snapshots  *SnapshotLoader
	engine     *Engine
	spam       *SpamDetector
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewProcessor wires the decision pipeline together.
func NewProcessor(
	snapshots *SnapshotLoader,
	engine *Engine,
	spam *SpamDetector,
	dispatcher *Dispatcher,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		snapshots:  snapshots,
		engine:     engine,
		spam:       spam,
		dispatcher: dispatcher,
		logger:     logger.Named("automod"),
	}
}

// HandleMessage evaluates one message and enforces whatever it decides.
// Store failures are logged and drop the event; they never panic the
// gateway or block unrelated messages.
func (p *Processor) HandleMessage(ctx context.Context, event MessageEvent) {
	snapshot, err := p.snapshots.Get(ctx, event.GuildID)
	if err != nil {
		p.logger.Error("Failed to load guild snapshot",
			zap.Uint64("guildID", uint64(event.GuildID)),
			zap.Error(err))

		return
	}

	if !snapshot.Enabled {
		return
	}

	var decision Decision

	// The two checks share no mutable state and read disjoint stores,
	// so they can run concurrently.
	w := pool.New().WithContext(ctx)

	w.Go(func(_ context.Context) error {
		decision.Match = p.engine.Evaluate(snapshot.Rules, event.Text)
		return nil
	})

	w.Go(func(ctx context.Context) error {
		triggered, window, err := p.spam.Check(ctx, event, snapshot.SpamThreshold)
		if err != nil {
			p.logger.Error("Spam check failed",
				zap.Uint64("userID", uint64(event.AuthorID)),
				zap.Uint64("guildID", uint64(event.GuildID)),
				zap.Error(err))

			return nil
		}

		decision.SpamTriggered = triggered
		decision.SpamWindow = window

		return nil
	})

	_ = w.Wait()

	if decision.Match == nil && !decision.SpamTriggered {
		return
	}

	p.dispatcher.Dispatch(ctx, event, decision)
}
