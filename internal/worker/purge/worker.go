package purge

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/database"
	"github.com/sentinelmod/sentinel/internal/setup"
)

// DefaultRetention is used when no history retention is configured.
const DefaultRetention = 24 * time.Hour

// PruneInterval is how often expired message records are removed.
const PruneInterval = time.Hour

// Worker removes message history records that have aged past the
// retention window. Spam detection only ever looks seconds into the
// past, so anything older exists purely for moderator review and can
// be dropped on a schedule.
type Worker struct {
	db        database.Client
	retention time.Duration
	logger    *zap.Logger
}

// New creates a new purge worker.
func New(app *setup.App, logger *zap.Logger) *Worker {
	retention := time.Duration(app.Config.Bot.Automod.HistoryRetention) * time.Hour
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &Worker{
		db:        app.DB,
		retention: retention,
		logger:    logger.Named("purge"),
	}
}

// Start begins the purge worker's main loop. It returns when the
// context is canceled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Purge worker started", zap.Duration("retention", w.retention))

	ticker := time.NewTicker(PruneInterval)
	defer ticker.Stop()

	for {
		w.prune(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("Purge worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) prune(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)

	pruned, err := w.db.Model().History().Prune(ctx, cutoff)
	if err != nil {
		w.logger.Error("Failed to prune message history", zap.Error(err))
		return
	}

	if pruned > 0 {
		w.logger.Info("Pruned message history",
			zap.Int64("records", pruned),
			zap.Time("cutoff", cutoff))
	}
}
