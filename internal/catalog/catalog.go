// Package catalog manages the deck/question seed data and builds the shuffled
// question pool for a new game.
package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/victornm/partyquiz/internal/domain"
	"github.com/victornm/partyquiz/internal/errors"
)

type Config struct {
	// Decks seeds the catalog; nil falls back to SampleDecks.
	Decks []domain.Deck

	// Rand drives the pool shuffle; nil uses the shared source. Tests inject
	// a fixed-seed source for deterministic pools.
	Rand *rand.Rand
}

// Catalog holds the decks. Question text and identity never change at
// runtime; only the per-deck Enabled flag toggles, and that is not persisted.
type Catalog struct {
	decks []domain.Deck
	rng   *rand.Rand
}

func New(c Config) *Catalog {
	decks := c.Decks
	if decks == nil {
		decks = SampleDecks()
	}

	return &Catalog{
		decks: decks,
		rng:   c.Rand,
	}
}

// Decks returns the decks in catalog order.
func (c *Catalog) Decks() []domain.Deck {
	out := make([]domain.Deck, len(c.decks))
	copy(out, c.decks)
	return out
}

// SetDeckEnabled toggles whether a deck contributes questions to the next
// game. Disabling keeps the deck and its questions in the catalog.
func (c *Catalog) SetDeckEnabled(id uuid.UUID, enabled bool) error {
	for i := range c.decks {
		if c.decks[i].ID == id {
			c.decks[i].Enabled = enabled
			return nil
		}
	}

	return errors.New(errors.CodeNotFound,
		errors.WithMessagef("deck not found: %s", id))
}

// BuildPool concatenates the questions of every enabled deck in deck order and
// applies a uniform shuffle. Zero enabled decks yield an empty pool.
func (c *Catalog) BuildPool() []domain.Question {
	var pool []domain.Question
	for _, d := range c.decks {
		if d.Enabled {
			pool = append(pool, d.Questions...)
		}
	}

	c.shuffle(pool)
	return pool
}

func (c *Catalog) shuffle(qs []domain.Question) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if c.rng != nil {
		c.rng.Shuffle(len(qs), swap)
		return
	}
	rand.Shuffle(len(qs), swap)
}

// deckFile is the on-disk seed format: prompts as plain strings, ids
// generated on load.
type deckFile struct {
	Title     string   `json:"title"`
	Emoji     string   `json:"emoji"`
	Enabled   *bool    `json:"enabled,omitempty"`
	Questions []string `json:"questions"`
}

// LoadFile reads deck seed data from a JSON file. Decks default to enabled.
func LoadFile(path string) ([]domain.Deck, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read decks file: %w", err)
	}

	var dfs []deckFile
	if err := json.Unmarshal(b, &dfs); err != nil {
		return nil, errors.New(errors.CodeDataLoss,
			errors.WithMessagef("decode decks file %s", path),
			errors.WithCause(err))
	}

	decks := make([]domain.Deck, 0, len(dfs))
	for _, df := range dfs {
		d := domain.Deck{
			ID:      uuid.New(),
			Title:   df.Title,
			Emoji:   df.Emoji,
			Enabled: df.Enabled == nil || *df.Enabled,
		}
		for _, p := range df.Questions {
			d.Questions = append(d.Questions, domain.NewQuestion(p))
		}
		decks = append(decks, d)
	}

	return decks, nil
}
