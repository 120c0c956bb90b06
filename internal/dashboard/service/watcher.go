package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Watcher refreshes a Board on a fixed interval and hands every
// successful result to its listeners.
type Watcher struct {
	board     Board
	interval  time.Duration
	log       *logger.Logger
	listeners []func(ctx context.Context, cards []dto.Card)
}

// NewWatcher creates a Watcher for board.
func NewWatcher(board Board, interval time.Duration, log *logger.Logger) *Watcher {
	return &Watcher{board: board, interval: interval, log: log}
}

// OnRefresh registers fn to receive the cards after each successful refresh.
func (w *Watcher) OnRefresh(fn func(ctx context.Context, cards []dto.Card)) {
	w.listeners = append(w.listeners, fn)
}

// Run refreshes once immediately and then every interval until ctx is
// done. It returns after running jobs have finished.
func (w *Watcher) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", w.interval)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), func() { _ = w.tick(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	if err := w.tick(ctx); errors.Is(err, ErrNoSession) {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (w *Watcher) tick(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := w.board.Refresh(ctx); err != nil {
		w.log.DebugContext(ctx, "Scheduled refresh failed", logger.ErrorField(err))
		return err
	}
	cards := w.board.Cards()
	for _, fn := range w.listeners {
		fn(ctx, cards)
	}
	return nil
}
