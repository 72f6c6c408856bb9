// Package roster is the player profile registry and the active-player set:
// who exists, and who plays the next game.
package roster

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/victornm/partyquiz/internal/domain"
	"github.com/victornm/partyquiz/internal/errors"
	"github.com/victornm/partyquiz/internal/event"
	"github.com/victornm/partyquiz/internal/store"
)

const (
	keyProfiles  = "player_profiles_v1"
	keyActiveIDs = "active_player_ids_v1"

	// keySavedNames predates profiles: a bare list of quick-add player names.
	keySavedNames = "saved_players_v1"
)

type Config struct {
	Store    store.Store
	EventBus *event.Bus
}

type Service struct {
	st store.Store
	eb *event.Bus

	profiles []domain.PlayerProfile
	active   []uuid.UUID
	names    []string
}

// NewService loads the persisted roster. A missing or undecodable snapshot is
// logged and replaced with an empty default, never surfaced.
func NewService(ctx context.Context, c Config) *Service {
	s := &Service{
		st: c.Store,
		eb: c.EventBus,
	}
	s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) {
	if _, err := store.LoadJSON(ctx, s.st, keyProfiles, &s.profiles); err != nil {
		slog.WarnContext(ctx, "roster: load profiles failed, starting empty", "error", err)
		s.profiles = nil
	}

	var ids []uuid.UUID
	if _, err := store.LoadJSON(ctx, s.st, keyActiveIDs, &ids); err != nil {
		slog.WarnContext(ctx, "roster: load active set failed, starting empty", "error", err)
		ids = nil
	}

	// Reconstitute the active set against the registry; an active id with no
	// matching profile is silently dropped.
	for _, id := range ids {
		if s.findProfile(id) >= 0 {
			s.active = append(s.active, id)
		}
	}

	if _, err := store.LoadJSON(ctx, s.st, keySavedNames, &s.names); err != nil {
		slog.WarnContext(ctx, "roster: load saved names failed, starting empty", "error", err)
		s.names = nil
	}
}

// Profiles returns every registered profile in registry order.
func (s *Service) Profiles() []domain.PlayerProfile {
	out := make([]domain.PlayerProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// ActivePlayers returns the profiles selected for the next game, in
// activation order.
func (s *Service) ActivePlayers() []domain.PlayerProfile {
	out := make([]domain.PlayerProfile, 0, len(s.active))
	for _, id := range s.active {
		if i := s.findProfile(id); i >= 0 {
			out = append(out, s.profiles[i])
		}
	}
	return out
}

// AddProfile registers a new profile. Names need not be unique; identity is
// the generated id.
func (s *Service) AddProfile(ctx context.Context, name string, avatar []byte) (domain.PlayerProfile, error) {
	if name == "" {
		return domain.PlayerProfile{}, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("profile name must not be empty"))
	}

	p := domain.NewPlayerProfile(name, avatar)
	s.profiles = append(s.profiles, p)

	if err := store.SaveJSON(ctx, s.st, keyProfiles, s.profiles); err != nil {
		return domain.PlayerProfile{}, err
	}

	s.publishRosterUpdated(ctx)
	return p, nil
}

// RenameProfile changes a profile's display name. The leaderboard keys by
// name, so history earned under the old name stays under the old name.
func (s *Service) RenameProfile(ctx context.Context, id uuid.UUID, name string) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("profile name must not be empty"))
	}

	i := s.findProfile(id)
	if i < 0 {
		return errors.New(errors.CodeNotFound,
			errors.WithMessagef("profile not found: %s", id))
	}

	s.profiles[i].Name = name
	if err := store.SaveJSON(ctx, s.st, keyProfiles, s.profiles); err != nil {
		return err
	}

	s.publishRosterUpdated(ctx)
	return nil
}

// RemoveProfile deletes a profile and cascades: the profile leaves the active
// set in the same operation, and a profile.removed event lets the leaderboard
// drop the name's entry.
func (s *Service) RemoveProfile(ctx context.Context, id uuid.UUID) error {
	i := s.findProfile(id)
	if i < 0 {
		return errors.New(errors.CodeNotFound,
			errors.WithMessagef("profile not found: %s", id))
	}

	removed := s.profiles[i]
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	s.removeActive(id)

	if err := store.SaveJSON(ctx, s.st, keyProfiles, s.profiles); err != nil {
		return err
	}
	if err := s.saveActive(ctx); err != nil {
		return err
	}

	s.eb.Publish(ctx, domain.EventProfileRemoved{Profile: removed})
	s.publishRosterUpdated(ctx)
	return nil
}

// ActivatePlayer marks a registered profile to play the next game. Activating
// an already-active profile is a no-op.
func (s *Service) ActivatePlayer(ctx context.Context, id uuid.UUID) error {
	if s.findProfile(id) < 0 {
		return errors.New(errors.CodeNotFound,
			errors.WithMessagef("profile not found: %s", id))
	}

	for _, a := range s.active {
		if a == id {
			return nil
		}
	}

	s.active = append(s.active, id)
	if err := s.saveActive(ctx); err != nil {
		return err
	}

	s.publishRosterUpdated(ctx)
	return nil
}

// DeactivatePlayer removes a profile from the active set; no-op if absent.
func (s *Service) DeactivatePlayer(ctx context.Context, id uuid.UUID) error {
	if !s.removeActive(id) {
		return nil
	}

	if err := s.saveActive(ctx); err != nil {
		return err
	}

	s.publishRosterUpdated(ctx)
	return nil
}

// ClearActivePlayers empties the active set.
func (s *Service) ClearActivePlayers(ctx context.Context) error {
	s.active = nil
	if err := s.saveActive(ctx); err != nil {
		return err
	}

	s.publishRosterUpdated(ctx)
	return nil
}

// Names returns the legacy quick-add name list.
func (s *Service) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// AddName records a quick-add player name; duplicates are dropped.
func (s *Service) AddName(ctx context.Context, name string) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("player name must not be empty"))
	}

	for _, n := range s.names {
		if n == name {
			return nil
		}
	}

	s.names = append(s.names, name)
	return store.SaveJSON(ctx, s.st, keySavedNames, s.names)
}

func (s *Service) findProfile(id uuid.UUID) int {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) removeActive(id uuid.UUID) bool {
	for i, a := range s.active {
		if a == id {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Service) saveActive(ctx context.Context) error {
	return store.SaveJSON(ctx, s.st, keyActiveIDs, s.active)
}

func (s *Service) publishRosterUpdated(ctx context.Context) {
	s.eb.Publish(ctx, domain.EventRosterUpdated{
		Profiles: s.Profiles(),
		Active:   s.ActivePlayers(),
	})
}
