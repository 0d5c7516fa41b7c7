package container

import (
	"context"
	"fmt"

	"github.com/ubloom/engine/internal/clock"
	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/goal"
	"github.com/ubloom/engine/internal/journal"
	"github.com/ubloom/engine/internal/progress"
	"github.com/ubloom/engine/internal/reflection"
	"github.com/ubloom/engine/internal/session"
	"github.com/ubloom/engine/internal/shop"
)

type Container struct {
	ProgressContainer   *progress.Container
	GoalContainer       *goal.Container
	JournalContainer    *journal.Container
	ReflectionContainer *reflection.Container
	ShopContainer       *shop.Container
	SessionHandler      *session.Handler
	Clock               *clock.Clock
}

func New(cfg *config.Config) (*Container, error) {
	if err := config.Connect(context.Background(), cfg.DatabaseDSN); err != nil {
		return nil, err
	}
	if err := config.DB.AutoMigrate(&progress.Progress{}, &goal.Goal{}, &journal.Entry{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	progressContainer, err := progress.NewContainer(config.DB)
	if err != nil {
		return nil, fmt.Errorf("progress container: %w", err)
	}

	goalContainer, err := goal.NewContainer(config.DB, progressContainer.Service)
	if err != nil {
		return nil, fmt.Errorf("goal container: %w", err)
	}

	journalContainer, err := journal.NewContainer(config.DB, progressContainer.Service)
	if err != nil {
		return nil, fmt.Errorf("journal container: %w", err)
	}

	reflectionContainer := reflection.NewContainer(cfg.ReflectionURL, cfg.ReflectionTimeout, goalContainer.Service)
	shopContainer := shop.NewContainer(progressContainer.Service)
	sessionHandler := session.NewHandler(progressContainer.Service)

	engineClock := clock.New(
		progressContainer.Service,
		progressContainer.Service,
		cfg.DayPollInterval,
		cfg.AutosaveInterval,
	)

	return &Container{
		ProgressContainer:   progressContainer,
		GoalContainer:       goalContainer,
		JournalContainer:    journalContainer,
		ReflectionContainer: reflectionContainer,
		ShopContainer:       shopContainer,
		SessionHandler:      sessionHandler,
		Clock:               engineClock,
	}, nil
}
