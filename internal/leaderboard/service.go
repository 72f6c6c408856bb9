// Package leaderboard keeps the cross-session cumulative score ledger.
//
// Entries are keyed by display name, not profile id: this matches the stored
// history, which survives even when no profile carries the name anymore. The
// one cascade is profile removal, which drops the removed profile's entry.
package leaderboard

import (
	"context"
	"log/slog"
	"sort"

	"github.com/victornm/partyquiz/internal/domain"
	"github.com/victornm/partyquiz/internal/errors"
	"github.com/victornm/partyquiz/internal/event"
	"github.com/victornm/partyquiz/internal/store"
)

const keyPoints = "leaderboard_points_v1"

type Config struct {
	Store    store.Store
	EventBus *event.Bus
}

type Service struct {
	st store.Store
	eb *event.Bus

	points map[string]int
	order  []string // first-award order, used to keep ties stable
}

// NewService loads the persisted ledger (defaulting to empty on a missing or
// corrupt snapshot) and subscribes to profile removals.
func NewService(ctx context.Context, c Config) *Service {
	s := &Service{
		st:     c.Store,
		eb:     c.EventBus,
		points: make(map[string]int),
	}
	s.load(ctx)

	s.eb.Subscribe(domain.EventNameProfileRemoved, func(ctx context.Context, e event.Event) error {
		return s.removeEntry(ctx, e.(domain.EventProfileRemoved).Profile.Name)
	})

	return s
}

func (s *Service) load(ctx context.Context) {
	if _, err := store.LoadJSON(ctx, s.st, keyPoints, &s.points); err != nil {
		slog.WarnContext(ctx, "leaderboard: load failed, starting empty", "error", err)
		s.points = make(map[string]int)
	}

	// The snapshot is an unordered mapping; rebuild a deterministic tie order.
	for name := range s.points {
		s.order = append(s.order, name)
	}
	sort.Strings(s.order)
}

// AwardPoint adds one point to the name's cumulative score, creating the entry
// at zero first, and persists the whole mapping.
func (s *Service) AwardPoint(ctx context.Context, name string) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("player name must not be empty"))
	}

	if _, ok := s.points[name]; !ok {
		s.order = append(s.order, name)
	}
	s.points[name]++

	return s.save(ctx)
}

// Reset clears every entry.
func (s *Service) Reset(ctx context.Context) error {
	s.points = make(map[string]int)
	s.order = nil
	return s.save(ctx)
}

// Score returns the cumulative score for a name; false if no entry exists.
func (s *Service) Score(name string) (int, bool) {
	sc, ok := s.points[name]
	return sc, ok
}

// Entries returns the ledger sorted by descending score, ties in first-award
// order.
func (s *Service) Entries() []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, domain.LeaderboardEntry{Name: name, Score: s.points[name]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return entries
}

func (s *Service) removeEntry(ctx context.Context, name string) error {
	if _, ok := s.points[name]; !ok {
		return nil
	}

	delete(s.points, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	if err := store.SaveJSON(ctx, s.st, keyPoints, s.points); err != nil {
		return err
	}

	s.eb.Publish(ctx, domain.EventLeaderboardUpdated{Entries: s.Entries()})
	return nil
}
