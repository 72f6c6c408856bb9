// Package game holds the turn/round state machine for a single game.
//
// A Session moves through exactly two logical states, in progress and game
// over, distinguished by IsGameOver. The sole transition is AdvanceTurn, which
// fires once per turn after the scoring decision; once the session is over it
// stays over and mutating calls fail with CodeFailedPrecondition.
package game

import (
	"sort"

	"github.com/victornm/partyquiz/internal/domain"
	"github.com/victornm/partyquiz/internal/errors"
)

// Session is the state of one game. One session exists at a time; it is owned
// by whoever started the game and is only mutated through its methods.
type Session struct {
	// Players is the fixed turn order. Names must be pre-deduplicated:
	// scores are kept per name.
	Players []string

	// Questions is the pool built and shuffled once at session start.
	Questions []domain.Question

	RoundsPerPlayer int

	TurnsPlayed          int
	CurrentPlayerIndex   int
	CurrentQuestionIndex int

	Scores map[string]int
}

// New validates the configuration and returns a fresh session with every
// player's score at zero. An empty question pool is legal: the session then
// starts out pool-exhausted but still plays its turns.
func New(players []string, roundsPerPlayer int, questions []domain.Question) (*Session, error) {
	if len(players) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("at least one player required"))
	}
	if roundsPerPlayer < 1 {
		return nil, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("rounds per player must be positive, got %d", roundsPerPlayer))
	}

	scores := make(map[string]int, len(players))
	for _, p := range players {
		scores[p] = 0
	}

	return &Session{
		Players:         players,
		Questions:       questions,
		RoundsPerPlayer: roundsPerPlayer,
		Scores:          scores,
	}, nil
}

// CurrentPlayer returns the name whose turn it is.
func (s *Session) CurrentPlayer() string {
	return s.Players[s.CurrentPlayerIndex]
}

// CurrentQuestion returns the question for this turn. The second return is
// false once the pool is exhausted; the session may still have turns left,
// which the presentation layer shows as "out of prompts".
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	if s.CurrentQuestionIndex >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.CurrentQuestionIndex], true
}

// TotalTurns is the number of turns the session plays before ending.
func (s *Session) TotalTurns() int {
	return len(s.Players) * s.RoundsPerPlayer
}

func (s *Session) IsGameOver() bool {
	return s.TurnsPlayed >= s.TotalTurns()
}

// Round is the 1-based round currently being played, capped at RoundsPerPlayer.
func (s *Session) Round() int {
	r := s.TurnsPlayed/len(s.Players) + 1
	if r > s.RoundsPerPlayer {
		return s.RoundsPerPlayer
	}
	return r
}

// AddPointToCurrentPlayer awards one point for a correct answer. It fails if
// the session is over or there is no question to answer.
func (s *Session) AddPointToCurrentPlayer() error {
	if s.IsGameOver() {
		return errors.New(errors.CodeFailedPrecondition,
			errors.WithMessagef("game is over"))
	}
	if _, ok := s.CurrentQuestion(); !ok {
		return errors.New(errors.CodeFailedPrecondition,
			errors.WithMessagef("question pool exhausted"))
	}

	s.Scores[s.CurrentPlayer()]++
	return nil
}

// AdvanceTurn concludes the current turn: next question, next player, one more
// turn played. It is the only state transition and fails once the session is
// over.
func (s *Session) AdvanceTurn() error {
	if s.IsGameOver() {
		return errors.New(errors.CodeFailedPrecondition,
			errors.WithMessagef("game is over"))
	}

	s.CurrentQuestionIndex++
	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
	s.TurnsPlayed++
	return nil
}

// Standing is one row of the end-of-game ranking.
type Standing struct {
	Name  string
	Score int
}

// Standings ranks players by descending score, ties broken by ascending name
// so the ordering is deterministic.
func (s *Session) Standings() []Standing {
	st := make([]Standing, 0, len(s.Players))
	for _, p := range s.Players {
		st = append(st, Standing{Name: p, Score: s.Scores[p]})
	}

	sort.Slice(st, func(i, j int) bool {
		if st[i].Score != st[j].Score {
			return st[i].Score > st[j].Score
		}
		return st[i].Name < st[j].Name
	})

	return st
}

// Winner returns the top standing.
func (s *Session) Winner() Standing {
	return s.Standings()[0]
}
