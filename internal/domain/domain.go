package domain

import "github.com/google/uuid"

// Question is a single prompt shown to the current player.
// Two questions are the same question iff they share an ID.
type Question struct {
	ID     uuid.UUID `json:"id"`
	Prompt string    `json:"prompt"`
}

func NewQuestion(prompt string) Question {
	return Question{ID: uuid.New(), Prompt: prompt}
}

// Deck is a named, toggleable group of questions. Everything but Enabled
// is fixed after creation; a deck with no questions is legal and simply
// contributes nothing to a game.
type Deck struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Emoji     string     `json:"emoji"`
	Enabled   bool       `json:"enabled"`
	Questions []Question `json:"questions"`
}

// PlayerProfile is a stored player identity. Identity is the ID, never the
// name: two profiles may share a display name.
type PlayerProfile struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar []byte    `json:"avatar,omitempty"`
}

func NewPlayerProfile(name string, avatar []byte) PlayerProfile {
	return PlayerProfile{ID: uuid.New(), Name: name, Avatar: avatar}
}

// LeaderboardEntry is one row of the cross-session score ledger.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
