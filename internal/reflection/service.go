package reflection

import (
	"context"
	"errors"
	"strings"

	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/goal"
	util "github.com/ubloom/engine/internal/utils"
)

// miniGoalPrefix is the fixed phrase the reflection service puts in front of
// every suggested growth path. Stripped case-insensitively by the bridge.
const miniGoalPrefix = "try setting a mini-goal:"

var ErrEmptyJournal = errors.New("no journal text to analyze")

// GoalCreator is the slice of the goal store the bridge needs.
type GoalCreator interface {
	Create(ctx context.Context, text string, today util.Date) (*goal.Goal, error)
}

type Service interface {
	Analyze(ctx context.Context, journalText string) (*Reflection, error)
	SetAsGoal(ctx context.Context, growthPath string, today util.Date) (*goal.Goal, error)
}

type service struct {
	provider Provider
	goals    GoalCreator
}

func NewService(provider Provider, goals GoalCreator) Service {
	return &service{provider: provider, goals: goals}
}

// Analyze fetches a reflection for the given journal text. Nothing is
// mutated here; the reward pipeline only runs when the entry is saved.
func (s *service) Analyze(ctx context.Context, journalText string) (*Reflection, error) {
	if strings.TrimSpace(journalText) == "" {
		return nil, ErrEmptyJournal
	}
	return s.provider.Reflect(ctx, journalText)
}

// SetAsGoal turns a reflection's growth path into a goal, under the same cap
// and validation rules as a hand-written one.
func (s *service) SetAsGoal(ctx context.Context, growthPath string, today util.Date) (*goal.Goal, error) {
	text := StripMiniGoalPrefix(growthPath)

	g, err := s.goals.Create(ctx, text, today)
	if err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithField("goal_id", g.ID).Info("Mini-goal created from reflection")
	return g, nil
}

// StripMiniGoalPrefix removes the leading suggestion phrase when present,
// case-insensitively, and trims the remainder.
func StripMiniGoalPrefix(growthPath string) string {
	text := strings.TrimSpace(growthPath)
	if len(text) >= len(miniGoalPrefix) && strings.EqualFold(text[:len(miniGoalPrefix)], miniGoalPrefix) {
		text = strings.TrimSpace(text[len(miniGoalPrefix):])
	}
	return text
}
