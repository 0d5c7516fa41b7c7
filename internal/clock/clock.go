package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ubloom/engine/internal/config"
	util "github.com/ubloom/engine/internal/utils"
)

// Roller rolls date-scoped counters over the day boundary.
type Roller interface {
	Rollover(ctx context.Context, today util.Date) bool
}

// Saver serializes the progress aggregate to the opaque store.
type Saver interface {
	Persist(ctx context.Context) error
}

// Clock owns the two periodic triggers of the engine: the minute-grained
// day-boundary poll and the autosave tick. Both are best-effort; autosave
// failures are retried on the next tick. The injectable now func keeps day
// boundaries deterministic under test.
type Clock struct {
	cron   *cron.Cron
	now    func() time.Time
	roller Roller
	saver  Saver

	dayPollInterval  time.Duration
	autosaveInterval time.Duration
}

func New(roller Roller, saver Saver, dayPollInterval, autosaveInterval time.Duration) *Clock {
	return &Clock{
		cron:             cron.New(),
		now:              time.Now,
		roller:           roller,
		saver:            saver,
		dayPollInterval:  dayPollInterval,
		autosaveInterval: autosaveInterval,
	}
}

func (c *Clock) Start() error {
	if _, err := c.cron.AddFunc(fmt.Sprintf("@every %s", c.dayPollInterval), c.TickDay); err != nil {
		return fmt.Errorf("schedule day poll: %w", err)
	}
	if _, err := c.cron.AddFunc(fmt.Sprintf("@every %s", c.autosaveInterval), c.TickAutosave); err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}
	c.cron.Start()
	return nil
}

// Stop halts both tickers and waits for any running tick to finish.
func (c *Clock) Stop() {
	<-c.cron.Stop().Done()
}

func (c *Clock) TickDay() {
	ctx := context.Background()
	if c.roller.Rollover(ctx, util.DateOf(c.now())) {
		config.Logger().Info("Day boundary crossed, per-day counters reset")
	}
}

func (c *Clock) TickAutosave() {
	ctx := context.Background()
	if err := c.saver.Persist(ctx); err != nil {
		config.Logger().WithError(err).Warn("Autosave failed, will retry on next tick")
	}
}
