// Package app wires the core together: one App is constructed at process
// start and passed to whoever needs catalog, roster or leaderboard access.
// There is no ambient global; the presentation layer holds the App and calls
// it synchronously.
package app

import (
	"context"
	"fmt"

	"github.com/victornm/partyquiz/internal/catalog"
	"github.com/victornm/partyquiz/internal/domain"
	"github.com/victornm/partyquiz/internal/errors"
	"github.com/victornm/partyquiz/internal/event"
	"github.com/victornm/partyquiz/internal/game"
	"github.com/victornm/partyquiz/internal/leaderboard"
	"github.com/victornm/partyquiz/internal/roster"
	"github.com/victornm/partyquiz/internal/store"
)

type Config struct {
	Store store.Config

	Decks struct {
		// File points at a JSON deck seed; empty uses the built-in samples.
		File string
	}

	Game struct {
		MinPlayers    int
		MaxRounds     int
		DefaultRounds int
	}
}

// DefaultConfig returns the config used when nothing is overridden: a local
// sqlite file, built-in decks, two-player minimum, one to ten rounds.
func DefaultConfig() Config {
	var c Config
	c.Store.Driver = "sqlite"
	c.Store.SQLite.Path = "partyquiz.db"
	c.Game.MinPlayers = 2
	c.Game.MaxRounds = 10
	c.Game.DefaultRounds = 3
	return c
}

type App struct {
	c  Config
	eb *event.Bus
	st store.Store

	Catalog     *catalog.Catalog
	Roster      *roster.Service
	Leaderboard *leaderboard.Service
}

func Init(ctx context.Context, c Config) (*App, error) {
	a := &App{c: c}

	a.eb = event.NewBus()

	st, err := store.Open(ctx, c.Store)
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}
	a.st = st

	decks, err := loadDecks(c.Decks.File)
	if err != nil {
		return nil, fmt.Errorf("app: load decks: %w", err)
	}
	a.Catalog = catalog.New(catalog.Config{Decks: decks})

	a.Roster = roster.NewService(ctx, roster.Config{
		Store:    a.st,
		EventBus: a.eb,
	})

	a.Leaderboard = leaderboard.NewService(ctx, leaderboard.Config{
		Store:    a.st,
		EventBus: a.eb,
	})

	return a, nil
}

func loadDecks(file string) ([]domain.Deck, error) {
	if file == "" {
		return nil, nil // catalog falls back to samples
	}
	return catalog.LoadFile(file)
}

// EventBus exposes the bus so the presentation layer can subscribe to
// roster and leaderboard changes instead of polling.
func (a *App) EventBus() *event.Bus {
	return a.eb
}

// StartNewGame validates the game configuration against the configured limits
// and returns a fresh session over a shuffled pool of every enabled deck's
// questions. Player names must be distinct: scores are tracked per name.
func (a *App) StartNewGame(ctx context.Context, players []string, roundsPerPlayer int) (*game.Session, error) {
	if len(players) < a.c.Game.MinPlayers {
		return nil, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("need at least %d players, got %d", a.c.Game.MinPlayers, len(players)))
	}
	if roundsPerPlayer < 1 || roundsPerPlayer > a.c.Game.MaxRounds {
		return nil, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("rounds per player must be between 1 and %d, got %d", a.c.Game.MaxRounds, roundsPerPlayer))
	}

	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p]; dup {
			return nil, errors.New(errors.CodeInvalidArgument,
				errors.WithMessagef("duplicate player name %q", p))
		}
		seen[p] = struct{}{}
	}

	return game.New(players, roundsPerPlayer, a.Catalog.BuildPool())
}

// StartNewGameWithActivePlayers starts a session for the roster's active set.
func (a *App) StartNewGameWithActivePlayers(ctx context.Context, roundsPerPlayer int) (*game.Session, error) {
	active := a.Roster.ActivePlayers()
	names := make([]string, 0, len(active))
	for _, p := range active {
		names = append(names, p.Name)
	}

	return a.StartNewGame(ctx, names, roundsPerPlayer)
}

// DefaultRounds is the configured rounds-per-player default.
func (a *App) DefaultRounds() int {
	return a.c.Game.DefaultRounds
}

// AwardWin feeds a finished game's winner into the leaderboard.
func (a *App) AwardWin(ctx context.Context, name string) error {
	return a.Leaderboard.AwardPoint(ctx, name)
}

func (a *App) Close() error {
	return a.st.Close()
}
