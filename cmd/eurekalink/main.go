package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/eurekalink/internal/coffer"
	"github.com/udisondev/eurekalink/internal/config"
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/db"
	"github.com/udisondev/eurekalink/internal/engine"
	"github.com/udisondev/eurekalink/internal/journal"
	"github.com/udisondev/eurekalink/internal/notify"
	"github.com/udisondev/eurekalink/internal/replay"
	"github.com/udisondev/eurekalink/internal/state"
	"github.com/udisondev/eurekalink/internal/stats"
	"github.com/udisondev/eurekalink/internal/tracker"
)

const ConfigPath = "config/eurekalink.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("EUREKALINK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("eurekalink starting", "log_level", cfg.LogLevel, "state", cfg.State.Backend)

	store, closeStore, err := openStore(ctx, cfg.State)
	if err != nil {
		return err
	}
	defer closeStore()

	agg, err := stats.LoadAggregator(ctx, store)
	if err != nil {
		// с пустой статистикой работать можно, файл перезапишется при первой находке
		slog.Warn("stats not loaded, starting empty", "error", err)
	}

	registry := coffer.NewSeededRegistry(cfg.Matcher.Epsilon)
	if n := registry.Restore(agg.Snapshot().Locations); n > 0 {
		slog.Info("discovered coffer locations restored", "count", n)
	}

	dispatcher := notify.NewDispatcher(notifySettings(cfg.Notify))
	registerSinks(dispatcher)

	var jrn *journal.Journal
	if cfg.JournalDir != "" {
		jrn = journal.New(journal.NewWriter(cfg.JournalDir, "events"), 256)
		dispatcher.Register(notify.SinkObserver, jrn)
	}

	var runner *tracker.Runner
	if cfg.Tracker.SocketURL != "" {
		client := tracker.NewClient(tracker.ClientConfig{
			SocketURL: cfg.Tracker.SocketURL,
			PublicURL: cfg.Tracker.PublicURL,
		})
		runner = tracker.NewRunner(client, cfg.Tracker.Timeout, 16)
		defer runner.Close()
	}

	persister := stats.NewPersister(store)
	eng := engine.New(engineConfig(cfg), engine.Deps{
		Dispatcher: dispatcher,
		Stats:      agg,
		Registry:   registry,
		Runner:     runner,
		Persister:  persister,
		Markers:    logMarkers{},
		Panel:      logPanel{},
	})

	src, err := openFeed(cfg.Feed)
	if err != nil {
		return err
	}
	defer src.Close()

	if cfg.Feed != "-" {
		go readCommands(os.Stdin, eng)
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		// конец записи останавливает остальные горутины
		defer stop()
		return eng.Run(gctx, src, cfg.TickInterval)
	})
	g.Go(func() error {
		return persister.Run(gctx)
	})
	if jrn != nil {
		g.Go(func() error {
			return jrn.Run(gctx)
		})
	}

	slog.Info("engine running", "feed", cfg.Feed, "tick", cfg.TickInterval)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("eurekalink stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.StateConfig) (stats.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		dsn := cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := db.RunMigrations(ctx, dsn); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")
		return &statsStoreAdapter{repo: db.NewStatsRepository(database.Pool())}, database.Close, nil
	default:
		slog.Info("using file state", "path", cfg.Path)
		return state.NewFileStore(cfg.Path), func() {}, nil
	}
}

func openFeed(path string) (*replay.Source, error) {
	if path == "-" {
		return replay.NewSource(os.Stdin), nil
	}
	src, err := replay.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed: %w", err)
	}
	return src, nil
}

// readCommands forwards console lines to the engine goroutine.
func readCommands(r io.Reader, eng *engine.Engine) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		ok := eng.Submit(func(e *engine.Engine) {
			out, err := e.Execute(line)
			if err != nil {
				fmt.Fprintln(os.Stdout, "error:", err)
				return
			}
			if out != "" {
				fmt.Fprintln(os.Stdout, out)
			}
		})
		if !ok {
			slog.Warn("command dropped, engine busy", "command", line)
		}
	}
}

func notifySettings(c config.NotifyConfig) notify.Settings {
	return notify.Settings{
		EchoPop:       c.EchoPop,
		PopToast:      c.PopToast,
		PlaySound:     c.PlaySound,
		SoundID:       c.SoundID,
		Broadcast:     c.Broadcast,
		ChatFormat:    c.ChatFormat,
		UseShortNames: c.UseShortNames,
		ShowPullTimer: c.ShowPullTimer,
		UseEorzeaTime: c.UseEorzeaTime,
		TwelveHour:    c.TwelveHour,
		PullMinutes:   notify.ClampPull(c.PullMinutes),
		EchoFairies:   c.EchoFairies,
		FairyToast:    c.FairyToast,
		EchoFound:     c.EchoFound,
		Cooldown:      c.Cooldown,
	}
}

func engineConfig(cfg config.Config) engine.Config {
	ec := engine.DefaultConfig()
	ec.Matcher = coffer.Config{
		BuffStatusID: data.LuckyCarrotStatusID,
		Debounce:     cfg.Matcher.Debounce,
		NearRadius:   cfg.Matcher.NearRadius,
	}
	ec.RespawnMin = cfg.Bunny.RespawnMin
	ec.RespawnMax = cfg.Bunny.RespawnMax
	ec.ShowBunnyPanel = cfg.Bunny.ShowPanel
	ec.OnlyEasyBunny = cfg.Bunny.OnlyEasy
	ec.Tracker = tracker.Session{Instance: cfg.Tracker.Instance, Password: cfg.Tracker.Password}
	if cfg.MarkerOffsets != nil {
		ec.MarkerOffsets = notify.MarkerOffsets(cfg.MarkerOffsets)
	}
	return ec
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
