// Command partyquiz is a terminal front-end for the party quiz core: it reads
// player decisions from stdin and drives the turn loop synchronously. All game
// rules live in the internal packages; this binary only renders state and
// collects intents.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/victornm/partyquiz/internal/app"
	"github.com/victornm/partyquiz/internal/config"
)

func main() {
	cobra.CheckErr(newCmd().Execute())
}

type flags struct {
	configFile string
	players    []string
	rounds     int
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PARTYQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	f := &flags{}

	cmd := &cobra.Command{
		Use:           "partyquiz",
		Short:         "A local, turn-based party quiz with a cross-session leaderboard.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer a.Close()

			return play(cmd, a, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", v.GetString("CONFIG"), "path to config file (env: PARTYQUIZ_CONFIG)")
	fs.StringSliceVarP(&f.players, "player", "p", nil, "player name, repeatable; defaults to the saved active players")
	fs.IntVarP(&f.rounds, "rounds", "r", 0, "rounds per player; defaults to the configured value")

	cmd.AddCommand(newLeaderboardCmd(f), newDecksCmd(f))

	return cmd
}

func newLeaderboardCmd(f *flags) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show (or reset) the cross-session leaderboard.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer a.Close()

			if reset {
				if err := a.Leaderboard.Reset(cmd.Context()); err != nil {
					return err
				}
				cmd.Println("Leaderboard cleared.")
				return nil
			}

			printLeaderboard(cmd, a)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "clear every leaderboard entry")

	return cmd
}

func newDecksCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List the question decks.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, d := range a.Catalog.Decks() {
				state := "enabled"
				if !d.Enabled {
					state = "disabled"
				}
				cmd.Printf("%s %s — %d questions (%s)\n", d.Emoji, d.Title, len(d.Questions), state)
			}
			return nil
		},
	}
}

func initApp(ctx context.Context, f *flags) (*app.App, error) {
	c := app.DefaultConfig()
	if err := config.Load(f.configFile, &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return app.Init(ctx, c)
}

func printLeaderboard(cmd *cobra.Command, a *app.App) {
	entries := a.Leaderboard.Entries()
	if len(entries) == 0 {
		cmd.Println("Leaderboard is empty.")
		return
	}

	cmd.Println("Leaderboard:")
	for i, e := range entries {
		cmd.Printf("  %d. %s — %d\n", i+1, e.Name, e.Score)
	}
}
