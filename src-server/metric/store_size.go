package metric

import (
	"context"
	"log/slog"
	"time"

	"nostrcal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func storeSize(as *utils.AppState, tickerInterval *time.Duration) {
	storeSize := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nostrcal_store_events",
		Help: "How many event envelopes the local store holds",
	})
	good := true
	if err := prometheus.Register(storeSize); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register nostrcal_store_events metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("nostrcal_store_events metric registered")
		storeSize.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(storeSize) {
				case true:
					slog.Debug("nostrcal_store_events metric unregistered")
				case false:
					slog.Warn("nostrcal_store_events metric not registered")
				}
				return
			case <-ticker.C:
				count, err := as.Store.Count(context.Background())
				if err != nil {
					slog.Error("can't count stored events", "error", err)
					continue
				}
				storeSize.Set(float64(count))
			}
		}
	}()
}
