package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store loads and saves the statistics document.
// Implemented by state.FileStore and the Postgres adapter in cmd.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// LoadAggregator loads the document from store and builds an aggregator.
// A failed load starts from an empty document and returns the error for logging.
func LoadAggregator(ctx context.Context, store Store) (*Aggregator, error) {
	doc, err := store.Load(ctx)
	if err != nil {
		return NewAggregator(NewDocument()), fmt.Errorf("loading stats: %w", err)
	}
	return NewAggregator(doc), nil
}

const defaultSaveTimeout = 5 * time.Second

// Persister writes documents off the tick goroutine.
//
// Submit never blocks: only the most recent unsaved document is kept.
type Persister struct {
	store       Store
	pending     chan Document
	saveTimeout time.Duration
}

// NewPersister creates a persister for store.
func NewPersister(store Store) *Persister {
	return &Persister{
		store:       store,
		pending:     make(chan Document, 1),
		saveTimeout: defaultSaveTimeout,
	}
}

// Submit queues doc for saving, replacing any document not yet written.
func (p *Persister) Submit(doc Document) {
	for {
		select {
		case p.pending <- doc:
			return
		default:
		}
		// выкидываем устаревший документ
		select {
		case <-p.pending:
		default:
		}
	}
}

// Run saves submitted documents until ctx is cancelled, then flushes the
// last pending one.
func (p *Persister) Run(ctx context.Context) error {
	for {
		select {
		case doc := <-p.pending:
			p.save(ctx, doc)
		case <-ctx.Done():
			select {
			case doc := <-p.pending:
				flushCtx, cancel := context.WithTimeout(context.Background(), p.saveTimeout)
				p.save(flushCtx, doc)
				cancel()
			default:
			}
			return nil
		}
	}
}

func (p *Persister) save(ctx context.Context, doc Document) {
	ctx, cancel := context.WithTimeout(ctx, p.saveTimeout)
	defer cancel()

	if err := p.store.Save(ctx, doc); err != nil {
		slog.Error("saving stats", "error", err)
		return
	}
	slog.Debug("stats saved", "pendingKills", doc.PendingKills)
}
