package scheduler

import (
	"context"
	"log/slog"

	"nostrcal/src-server/utils"

	"github.com/robfig/cron/v3"
)

// Periodically delete replaceable events that a later version has
// superseded. Reads always pick the latest version, so pruning only
// reclaims space; the schedule comes from PRUNE_CRON.
func PruneSuperseded(as *utils.AppState) {
	c := cron.New()
	if _, err := c.AddFunc(as.Config.GetPruneCron(), func() {
		pruned, err := as.Store.PruneSuperseded(context.Background())
		if err != nil {
			slog.Error("can't prune superseded events", "error", err)
			return
		}
		if pruned > 0 {
			slog.Info("pruned superseded events", "count", pruned)
		}
	}); err != nil {
		slog.Error("invalid prune cron expression", "cron", as.Config.GetPruneCron(), "error", err)
		return
	}
	c.Start()

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		<-*gracefulShutdownCh
		c.Stop()
		slog.Debug("prune scheduler stopped")
	}()
}
