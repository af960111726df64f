package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/udisondev/eurekalink/internal/model"
)

// Source yields one snapshot per call. io.EOF ends the run.
type Source interface {
	Next(ctx context.Context) (model.Snapshot, error)
}

// Command runs on the tick goroutine between ticks.
type Command func(e *Engine)

// Submit queues cmd for the tick goroutine. It returns false when the queue
// is full.
func (e *Engine) Submit(cmd Command) bool {
	select {
	case e.commands <- cmd:
		return true
	default:
		slog.Warn("engine command queue full")
		return false
	}
}

// Run pulls a snapshot from src every interval and ticks the engine.
// Blocks until ctx is cancelled or src is exhausted.
func (e *Engine) Run(ctx context.Context, src Source, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("engine loop started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			slog.Info("engine loop stopping")
			return ctx.Err()

		case cmd := <-e.commands:
			e.runCommand(cmd)

		case <-ticker.C:
			snap, err := src.Next(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					e.shutdown()
					slog.Info("snapshot source exhausted")
					return nil
				}
				if ctx.Err() != nil {
					continue
				}
				// пропуск тика, источник может восстановиться
				slog.Debug("snapshot unavailable", "error", err)
				continue
			}
			e.Tick(snap)
		}
	}
}

// runCommand executes cmd with the same isolation as a tick.
func (e *Engine) runCommand(cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("engine command panic recovered", "panic", fmt.Sprint(r))
		}
	}()
	cmd(e)
}

// shutdown leaves the active zone and drains queued commands.
func (e *Engine) shutdown() {
	for drained := false; !drained; {
		select {
		case cmd := <-e.commands:
			e.runCommand(cmd)
		default:
			drained = true
		}
	}
	if e.active {
		e.leaveZone()
	}
	e.flushStats()
}
