package roster_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/victornm/partyquiz/internal/domain"
	"github.com/victornm/partyquiz/internal/errors"
	"github.com/victornm/partyquiz/internal/event"
	"github.com/victornm/partyquiz/internal/roster"
	"github.com/victornm/partyquiz/internal/store"
)

func TestService_AddProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := makeService(t, store.NewMemory())

	p1, err := s.AddProfile(ctx, "Amy", nil)
	require.NoError(t, err)

	// Names need not be unique, ids must be.
	p2, err := s.AddProfile(ctx, "Amy", []byte("avatar-bytes"))
	require.NoError(t, err)
	require.NotEqual(t, p1.ID, p2.ID)

	require.Len(t, s.Profiles(), 2)

	_, err = s.AddProfile(ctx, "", nil)
	require.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}

func TestService_RemoveProfileCascades(t *testing.T) {
	t.Parallel()

	// Three active players; removing one shrinks the registry by one, the
	// active set by one, and the persisted active-id list no longer contains
	// the removed id.
	ctx := context.Background()
	st := store.NewMemory()
	eb := event.NewBus()

	var removedEvents []domain.EventProfileRemoved
	eb.Subscribe(domain.EventNameProfileRemoved, func(ctx context.Context, e event.Event) error {
		removedEvents = append(removedEvents, e.(domain.EventProfileRemoved))
		return nil
	})

	s := roster.NewService(ctx, roster.Config{Store: st, EventBus: eb})

	var ids []uuid.UUID
	for _, name := range []string{"Amy", "Bo", "Cleo"} {
		p, err := s.AddProfile(ctx, name, nil)
		require.NoError(t, err)
		require.NoError(t, s.ActivatePlayer(ctx, p.ID))
		ids = append(ids, p.ID)
	}

	require.NoError(t, s.RemoveProfile(ctx, ids[1]))

	require.Len(t, s.Profiles(), 2)
	require.Len(t, s.ActivePlayers(), 2)

	var persisted []uuid.UUID
	found, err := store.LoadJSON(ctx, st, "active_player_ids_v1", &persisted)
	require.NoError(t, err)
	require.True(t, found)
	require.NotContains(t, persisted, ids[1])

	require.Len(t, removedEvents, 1)
	require.Equal(t, "Bo", removedEvents[0].Profile.Name)

	err = s.RemoveProfile(ctx, ids[1])
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestService_ActivateDeactivate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := makeService(t, store.NewMemory())

	amy, err := s.AddProfile(ctx, "Amy", nil)
	require.NoError(t, err)
	bo, err := s.AddProfile(ctx, "Bo", nil)
	require.NoError(t, err)

	require.NoError(t, s.ActivatePlayer(ctx, amy.ID))
	require.NoError(t, s.ActivatePlayer(ctx, bo.ID))

	// Idempotent: activating again changes nothing, order stays by first
	// activation.
	require.NoError(t, s.ActivatePlayer(ctx, amy.ID))
	require.Equal(t, []string{"Amy", "Bo"}, names(s.ActivePlayers()))

	// Unknown profiles cannot be activated.
	err = s.ActivatePlayer(ctx, uuid.New())
	require.True(t, errors.IsCode(err, errors.CodeNotFound))

	require.NoError(t, s.DeactivatePlayer(ctx, amy.ID))
	require.Equal(t, []string{"Bo"}, names(s.ActivePlayers()))

	// Deactivating an inactive profile is a no-op.
	require.NoError(t, s.DeactivatePlayer(ctx, amy.ID))

	require.NoError(t, s.ClearActivePlayers(ctx))
	require.Empty(t, s.ActivePlayers())
}

func TestService_RenameProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	s := makeService(t, st)

	p, err := s.AddProfile(ctx, "Amy", nil)
	require.NoError(t, err)

	require.NoError(t, s.RenameProfile(ctx, p.ID, "Amelia"))
	require.Equal(t, []string{"Amelia"}, names(s.Profiles()))

	err = s.RenameProfile(ctx, p.ID, "")
	require.True(t, errors.IsCode(err, errors.CodeInvalidArgument))

	err = s.RenameProfile(ctx, uuid.New(), "Ghost")
	require.True(t, errors.IsCode(err, errors.CodeNotFound))

	// The rename is durable.
	reloaded := makeService(t, st)
	require.Equal(t, []string{"Amelia"}, names(reloaded.Profiles()))
}

func TestService_PersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()

	s := makeService(t, st)
	amy, err := s.AddProfile(ctx, "Amy", []byte("img"))
	require.NoError(t, err)
	_, err = s.AddProfile(ctx, "Bo", nil)
	require.NoError(t, err)
	require.NoError(t, s.ActivatePlayer(ctx, amy.ID))
	require.NoError(t, s.AddName(ctx, "Walk-in"))

	reloaded := makeService(t, st)
	require.Equal(t, s.Profiles(), reloaded.Profiles())
	require.Equal(t, []string{"Amy"}, names(reloaded.ActivePlayers()))
	require.Equal(t, []string{"Walk-in"}, reloaded.Names())
}

func TestService_LoadDropsUnknownActiveIDs(t *testing.T) {
	t.Parallel()

	// The registry and active set are two independent writes; a stale active
	// id with no matching profile is reconciled away on load.
	ctx := context.Background()
	st := store.NewMemory()

	s := makeService(t, st)
	amy, err := s.AddProfile(ctx, "Amy", nil)
	require.NoError(t, err)

	require.NoError(t, store.SaveJSON(ctx, st, "active_player_ids_v1", []uuid.UUID{uuid.New(), amy.ID, uuid.New()}))

	reloaded := makeService(t, st)
	require.Equal(t, []string{"Amy"}, names(reloaded.ActivePlayers()))
}

func TestService_LoadCorruptSnapshotsStartsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, "player_profiles_v1", []byte("{{corrupt")))
	require.NoError(t, st.Set(ctx, "active_player_ids_v1", []byte("also corrupt")))
	require.NoError(t, st.Set(ctx, "saved_players_v1", []byte("nope")))

	s := makeService(t, st)
	require.Empty(t, s.Profiles())
	require.Empty(t, s.ActivePlayers())
	require.Empty(t, s.Names())

	// And the service still works afterwards.
	_, err := s.AddProfile(ctx, "Amy", nil)
	require.NoError(t, err)
	require.Len(t, s.Profiles(), 1)
}

func TestService_AddNameDeduplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := makeService(t, store.NewMemory())

	require.NoError(t, s.AddName(ctx, "Amy"))
	require.NoError(t, s.AddName(ctx, "Amy"))
	require.NoError(t, s.AddName(ctx, "Bo"))
	require.Equal(t, []string{"Amy", "Bo"}, s.Names())

	err := s.AddName(ctx, "")
	require.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}

func makeService(t *testing.T, st store.Store) *roster.Service {
	t.Helper()

	return roster.NewService(context.Background(), roster.Config{
		Store:    st,
		EventBus: event.NewBus(),
	})
}

func names(ps []domain.PlayerProfile) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
