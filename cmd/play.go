package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/victornm/partyquiz/internal/app"
	"github.com/victornm/partyquiz/internal/game"
)

// play runs one full game on the terminal. The countdown of the original game
// is a presentation concern; here the answering player simply gets judged by
// the table with a keypress.
func play(cmd *cobra.Command, a *app.App, f *flags) error {
	ctx := cmd.Context()

	players := f.players
	if len(players) == 0 {
		for _, p := range a.Roster.ActivePlayers() {
			players = append(players, p.Name)
		}
	}

	rounds := f.rounds
	if rounds == 0 {
		rounds = a.DefaultRounds()
	}

	s, err := a.StartNewGame(ctx, players, rounds)
	if err != nil {
		return err
	}

	cmd.Printf("Starting game: %d players, %d rounds each, %d questions in the pool.\n",
		len(s.Players), s.RoundsPerPlayer, len(s.Questions))

	in := bufio.NewScanner(cmd.InOrStdin())

	for !s.IsGameOver() {
		cmd.Printf("\nRound %d — %s's turn\n", s.Round(), s.CurrentPlayer())

		q, ok := s.CurrentQuestion()
		if !ok {
			cmd.Println("Out of prompts! Turn passes automatically.")
			if err := s.AdvanceTurn(); err != nil {
				return err
			}
			continue
		}

		cmd.Printf("  %s\n", q.Prompt)
		answer, err := ask(cmd, in, "Correct? [y/n/q] ")
		if err != nil {
			return err
		}

		switch answer {
		case "y":
			if err := s.AddPointToCurrentPlayer(); err != nil {
				return err
			}
		case "q":
			cmd.Println("Game abandoned.")
			return nil
		}

		if err := s.AdvanceTurn(); err != nil {
			return err
		}
	}

	return finish(cmd, a, s, in)
}

func finish(cmd *cobra.Command, a *app.App, s *game.Session, in *bufio.Scanner) error {
	cmd.Println("\nGame over! Final standings:")
	for i, st := range s.Standings() {
		cmd.Printf("  %d. %s — %d\n", i+1, st.Name, st.Score)
	}

	winner := s.Winner()
	answer, err := ask(cmd, in, fmt.Sprintf("Record the win for %s on the leaderboard? [y/n] ", winner.Name))
	if err != nil {
		return err
	}
	if answer == "y" {
		if err := a.AwardWin(cmd.Context(), winner.Name); err != nil {
			return err
		}
	}

	printLeaderboard(cmd, a)
	return nil
}

func ask(cmd *cobra.Command, in *bufio.Scanner, prompt string) (string, error) {
	cmd.Print(prompt)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "q", nil // EOF ends the game
	}

	return strings.ToLower(strings.TrimSpace(in.Text())), nil
}
