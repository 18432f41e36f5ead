package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/logger"
)

// Pruner periodically removes attempts older than the retention period and compacts
// the ledger afterwards.
type Pruner struct {
	store     *Store
	retention time.Duration
	interval  time.Duration
	log       *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPruner creates a pruner for store. A non-positive retention or interval disables it.
func NewPruner(store *Store, retention, interval time.Duration) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		interval:  interval,
		log:       store.log,
	}
}

// Start runs one pruning pass and then continues in the background until ctx is done
// or Stop is called.
func (p *Pruner) Start(ctx context.Context) {
	if p.retention <= 0 || p.interval <= 0 {
		p.log.Info("ledger pruning is disabled")
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run(ctx)

	p.log.Infof("ledger pruning started: retention=%v interval=%v", p.retention, p.interval)
}

// Stop stops the background worker and waits for it to exit.
func (p *Pruner) Stop() {
	if p.cancel == nil {
		return
	}

	p.cancel()
	p.wg.Wait()
}

func (p *Pruner) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.PruneOnce(ctx); err != nil && ctx.Err() == nil {
			p.log.Warnf("ledger pruning failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// PruneOnce deletes expired attempts and compacts the ledger when anything was removed.
func (p *Pruner) PruneOnce(ctx context.Context) error {
	deleted, err := p.store.Prune(ctx, p.store.now().Add(-p.retention))
	if err != nil {
		return err
	}

	if deleted == 0 {
		return nil
	}

	p.log.Infof("pruned %d expired ledger entries", deleted)

	return p.store.Compact(ctx)
}
