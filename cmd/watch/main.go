// Command watch is the OnlyScores headless scores client.
//
// Usage:
//
//	onlyscores-watch leagues
//	onlyscores-watch teams --league 4387
//	onlyscores-watch scores --leagues 4391,4387 --teams 134880
//	onlyscores-watch watch --leagues 4387 --interval 90 --latest-only
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onlyscores/onlyscores-data/internal/client"
	"github.com/onlyscores/onlyscores-data/internal/config"
	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "onlyscores-watch",
		Short: "OnlyScores headless scores client",
	}

	root.AddCommand(leaguesCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(scoresCmd())
	root.AddCommand(watchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runClient loads config, validates the backend URL, and hands a connected
// client to fn under a signal-aware context.
func runClient(fn func(ctx context.Context, cfg *config.Config, c *client.Client) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.ValidateWatcher(); err != nil {
		return err
	}
	c, err := client.NewClient(cfg.BackendBaseURL, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return fn(ctx, cfg, c)
}

// --------------------------------------------------------------------------
// leagues command
// --------------------------------------------------------------------------

func leaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List supported leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient(func(ctx context.Context, cfg *config.Config, c *client.Client) error {
				leagues, err := c.Leagues(ctx)
				if err != nil {
					return err
				}
				for _, league := range leagues {
					fmt.Printf("%-8s %-22s %s\n", league.ID, league.Name, league.Sport)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// teams command
// --------------------------------------------------------------------------

func teamsCmd() *cobra.Command {
	var leagueID string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams for a league",
		RunE: func(cmd *cobra.Command, args []string) error {
			if leagueID == "" {
				return fmt.Errorf("--league is required")
			}
			return runClient(func(ctx context.Context, cfg *config.Config, c *client.Client) error {
				teams, err := c.Teams(ctx, leagueID)
				if err != nil {
					return err
				}
				for _, team := range teams {
					fmt.Printf("%-10s %-28s %s\n", team.ID, team.Name, team.ShortName)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&leagueID, "league", "", "League ID")
	return cmd
}

// --------------------------------------------------------------------------
// scores command (one-shot)
// --------------------------------------------------------------------------

func scoresCmd() *cobra.Command {
	var (
		leagues    string
		teams      string
		latestOnly bool
	)
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Fetch score cards once and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := scoreboard.Selection{
				LeagueIDs: scoreboard.NormalizeIDs(splitCSV(leagues)),
				TeamIDs:   scoreboard.NormalizeIDs(splitCSV(teams)),
			}
			if len(selection.LeagueIDs) == 0 && len(selection.TeamIDs) == 0 {
				return fmt.Errorf("--leagues or --teams is required")
			}
			return runClient(func(ctx context.Context, cfg *config.Config, c *client.Client) error {
				w := client.NewWatcher(c, client.NewMemoryStore(), client.NewLogNotifier(logger), logger,
					client.WithLatestOnly(latestOnly))
				w.SetSelection(selection)
				if err := w.FetchOnce(ctx, "cli"); err != nil {
					return err
				}
				printCards(w.Cards(), w.FetchedAt())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&leagues, "leagues", "", "Comma-separated league IDs")
	cmd.Flags().StringVar(&teams, "teams", "", "Comma-separated team IDs")
	cmd.Flags().BoolVar(&latestOnly, "latest-only", false, "Show only the most relevant game per card")
	return cmd
}

// --------------------------------------------------------------------------
// watch command (poll loop)
// --------------------------------------------------------------------------

func watchCmd() *cobra.Command {
	var (
		leagues    string
		teams      string
		interval   int
		latestOnly bool
		pushToken  string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll scores on an interval and log notification events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient(func(ctx context.Context, cfg *config.Config, c *client.Client) error {
				store, err := client.NewFileStore(cfg.DataDir)
				if err != nil {
					return fmt.Errorf("open data dir: %w", err)
				}

				opts := []client.Option{client.WithLatestOnly(latestOnly)}
				if interval > 0 {
					opts = append(opts, client.WithInterval(interval))
				} else {
					opts = append(opts, client.WithInterval(cfg.RefreshSeconds))
				}
				if pushToken != "" {
					opts = append(opts, client.WithPushToken(pushToken))
				}

				w := client.NewWatcher(c, store, client.NewLogNotifier(logger), logger, opts...)

				// Flags override the persisted selection; without them the
				// watcher resumes whatever was stored.
				selection := scoreboard.Selection{
					LeagueIDs: scoreboard.NormalizeIDs(splitCSV(leagues)),
					TeamIDs:   scoreboard.NormalizeIDs(splitCSV(teams)),
				}
				if len(selection.LeagueIDs) > 0 || len(selection.TeamIDs) > 0 {
					w.SetSelection(selection)
				}

				return w.Run(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&leagues, "leagues", "", "Comma-separated league IDs")
	cmd.Flags().StringVar(&teams, "teams", "", "Comma-separated team IDs")
	cmd.Flags().IntVar(&interval, "interval", 0, "Refresh interval in seconds (60-120, step 10)")
	cmd.Flags().BoolVar(&latestOnly, "latest-only", false, "Show only the most relevant game per card")
	cmd.Flags().StringVar(&pushToken, "push-token", "", "Device push token to sync with the backend")
	return cmd
}

// --------------------------------------------------------------------------
// output helpers
// --------------------------------------------------------------------------

func printCards(cards []scoreboard.Card, fetchedAt string) {
	if len(cards) == 0 {
		fmt.Println("No games for the current selection.")
		return
	}
	for _, card := range cards {
		fmt.Printf("== %s\n", card.Title)
		for _, game := range card.Games {
			fmt.Printf("  %-8s %s\n", game.Time, scoreboard.FormatScoreLine(game))
		}
	}
	if fetchedAt != "" {
		fmt.Printf("fetched at %s\n", fetchedAt)
	}
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
