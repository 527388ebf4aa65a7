package utils

import (
	"database/sql"
	"log/slog"
	"os"
	"sync"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
	"nostrcal/src-server/store"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config   *Config
	RawDb    *sql.DB
	BunDb    *bun.DB
	Registry *model.Registry
	Store    *store.Store
	When     *when.Parser

	// fills id/sig on drafts before they are saved or published;
	// NopSigner by default, replaced when a real signer is wired in
	Signer nostr.Signer

	AppCloseSignalChan chan os.Signal

	gracefulShutdownChans []*chan struct{}
	gracefulShutdownMu    sync.Mutex
}

func NewAppState() *AppState {
	as := &AppState{}

	as.AppCloseSignalChan = make(chan os.Signal, 1)

	// date parser for the quick-add endpoints
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// database
	var err error
	as.RawDb, err = sql.Open(sqliteshim.ShimName, as.Config.GetDBPath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDb.SetMaxIdleConns(8)

	as.BunDb = bun.NewDB(as.RawDb, sqlitedialect.New())
	as.BunDb.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	// every calendar kind the store should recognize, registered once
	// here before any query can return them
	as.Registry = model.DefaultRegistry()
	as.Store = store.New(as.BunDb, as.Registry)

	as.Signer = nostr.NopSigner{}

	return as
}

// Get a channel that closes when the app is shutting down. Long-lived
// goroutines select on one of these to clean up.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownMu.Lock()
	defer as.gracefulShutdownMu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

// Close every graceful-shutdown channel handed out so far
func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownMu.Lock()
	defer as.gracefulShutdownMu.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
}
