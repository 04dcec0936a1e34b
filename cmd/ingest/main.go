// Command ingest is the save-file inspection and ingestion CLI.
//
// Usage:
//
//	fof-ingest leagues
//	fof-ingest weeks "My League"
//	fof-ingest inspect league "My League"
//	fof-ingest inspect players "My League" --position QB
//	fof-ingest inspect week "My League" --year 2031 --week 4 --plays
//	fof-ingest schema
//	fof-ingest seed league "My League"
//	fof-ingest seed week "My League" --year 2031 --workers 4
//	fof-ingest seeded
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/fofdata/internal/config"
	"github.com/albapepper/fofdata/internal/db"
	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/players"
	"github.com/albapepper/fofdata/internal/savegame"
	"github.com/albapepper/fofdata/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// overrides are the persistent flags; empty values leave the environment
// setting in place.
type overrides struct {
	dir      string
	revision string
	schema   string
	debug    bool
}

var flags overrides

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags = overrides{}
	root := &cobra.Command{
		Use:          "fof-ingest",
		Short:        "Front Office Football save file CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.dir, "dir", "", "Saved games directory (default $FOF_SAVED_GAMES_DIR)")
	root.PersistentFlags().StringVar(&flags.revision, "revision", "", "Format revision: "+strings.Join(league.RevisionNames(), ", "))
	root.PersistentFlags().StringVar(&flags.schema, "players-schema", "", "Players layout: counted, legacy or sequential")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Debug logging")

	root.AddCommand(leaguesCmd())
	root.AddCommand(weeksCmd())
	root.AddCommand(inspectCmd())
	root.AddCommand(schemaCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(seededCmd())
	return root
}

// --------------------------------------------------------------------------
// listing commands
// --------------------------------------------------------------------------

func leaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List leagues in the saved games directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			leagues, err := savegame.Find(cfg.SavedGamesDir, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range leagues {
				idx, err := l.Index()
				if err != nil {
					logger.Warn("Index league", "league", l.Name, "error", err)
					fmt.Fprintf(out, "%s\t?\n", l.Name)
					continue
				}
				fmt.Fprintf(out, "%s\t%d weeks\t%v\n", l.Name, idx.Len(), idx.Years())
			}
			return nil
		},
	}
}

func weeksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks <league>",
		Short: "List the week files of a league, newest year first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			l, err := savegame.Open(cfg.SavedGamesDir, args[0])
			if err != nil {
				return err
			}
			idx, err := l.Index()
			if err != nil {
				return err
			}
			for _, y := range idx.Years() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%v\n", y, idx.Weeks(y))
			}
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// inspect command
// --------------------------------------------------------------------------

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode a save file and print it",
	}
	cmd.AddCommand(inspectLeagueCmd())
	cmd.AddCommand(inspectPlayersCmd())
	cmd.AddCommand(inspectWeekCmd())
	return cmd
}

func inspectLeagueCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "league <league>",
		Short: "Decode league.dat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, l, err := openLeague(args[0])
			if err != nil {
				return err
			}
			info, err := loader.LoadInfo(l)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, info)
			}
			fmt.Fprintf(out, "%s (%d), %d teams, %d divisions, %d calendar entries\n",
				info.LeagueName, info.Year, len(info.Teams), info.NumberDivisions, len(info.Calendar))
			for i := range info.Teams {
				t := &info.Teams[i]
				fmt.Fprintf(out, "%3d  %s %s (%s)", t.Number, t.City, t.Name, t.Short)
				if m := t.Mismatches(); len(m) > 0 {
					fmt.Fprintf(out, "  copies disagree: %s", strings.Join(m, ", "))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decoded file as JSON")
	return cmd
}

func inspectPlayersCmd() *cobra.Command {
	var (
		asJSON   bool
		position string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "players <league>",
		Short: "Decode players.dat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, l, err := openLeague(args[0])
			if err != nil {
				return err
			}
			roster, err := loader.LoadPlayers(l)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, roster)
			}
			fmt.Fprintf(out, "%s layout, version %d, %d players, %d staff\n",
				roster.Schema, roster.DataVersion, len(roster.Players), len(roster.Staff))
			shown := 0
			for i := range roster.Players {
				p := &roster.Players[i]
				if position != "" && !strings.EqualFold(p.Position.String(), position) {
					continue
				}
				if limit > 0 && shown == limit {
					break
				}
				fmt.Fprintln(out, p)
				shown++
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decoded file as JSON")
	cmd.Flags().StringVar(&position, "position", "", "Only players at this position, e.g. QB")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many players; 0 = all")
	return cmd
}

func inspectWeekCmd() *cobra.Command {
	var (
		year, wk int
		asJSON   bool
		plays    bool
	)
	cmd := &cobra.Command{
		Use:   "week <league>",
		Short: "Decode one year_YYYY_week_W.dat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				return fmt.Errorf("--year is required")
			}
			_, loader, l, err := openLeague(args[0])
			if err != nil {
				return err
			}
			data, err := loader.LoadWeek(l, year, wk)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, data)
			}
			for i := range data.Games {
				g := &data.Games[i]
				fmt.Fprintf(out, "game %d: %s\n", i, g)
				if !plays {
					continue
				}
				for _, s := range g.Sections {
					fmt.Fprintf(out, "  %s\n", s)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Season year")
	cmd.Flags().IntVar(&wk, "week", 1, "Week number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decoded file as JSON")
	cmd.Flags().BoolVar(&plays, "plays", false, "Print every section of every game")
	return cmd
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the fof_* tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool, loader *savegame.Loader) error {
				if err := pool.EnsureSchema(ctx); err != nil {
					return err
				}
				logger.Info("Schema applied")
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Decode save files and write them to Postgres",
	}
	cmd.AddCommand(seedLeagueCmd())
	cmd.AddCommand(seedPlayersCmd())
	cmd.AddCommand(seedWeekCmd())
	return cmd
}

func seedLeagueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "league <league>",
		Short: "Seed league.dat: the league row and its teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool, loader *savegame.Loader) error {
				l, err := savegame.Open(cfg.SavedGamesDir, args[0])
				if err != nil {
					return err
				}
				info, err := loader.LoadInfo(l)
				if err != nil {
					return err
				}
				start := time.Now()
				id, result := seed.SeedLeague(ctx, pool.Pool, l.Name, cfg.Revision.Name, info, logger)
				logger.Info("League seed finished", "league_id", id,
					"duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				return reportErrors(result)
			})
		},
	}
}

func seedPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <league>",
		Short: "Seed players.dat into an already seeded league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool, loader *savegame.Loader) error {
				l, err := savegame.Open(cfg.SavedGamesDir, args[0])
				if err != nil {
					return err
				}
				leagueID, err := seed.LeagueID(ctx, pool.Pool, l.Name)
				if err != nil {
					return err
				}
				roster, err := loader.LoadPlayers(l)
				if err != nil {
					return err
				}
				start := time.Now()
				result := seed.SeedPlayers(ctx, pool.Pool, leagueID, roster, logger)
				logger.Info("Players seed finished",
					"duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				return reportErrors(result)
			})
		},
	}
}

func seedWeekCmd() *cobra.Command {
	var year, wk, workers int
	cmd := &cobra.Command{
		Use:   "week <league>",
		Short: "Seed one week, or every week of a year when --week is 0",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				return fmt.Errorf("--year is required")
			}
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool, loader *savegame.Loader) error {
				l, err := savegame.Open(cfg.SavedGamesDir, args[0])
				if err != nil {
					return err
				}
				leagueID, err := seed.LeagueID(ctx, pool.Pool, l.Name)
				if err != nil {
					return err
				}
				start := time.Now()

				if wk != 0 {
					data, err := loader.LoadWeek(l, year, wk)
					if err != nil {
						return err
					}
					result := seed.SeedWeek(ctx, pool.Pool, leagueID, year, wk, data, logger)
					logger.Info("Week seed finished", "year", year, "week", wk,
						"duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
					return reportErrors(result)
				}

				if workers == 0 {
					workers = cfg.DecodeWorkers
				}
				decoded, err := loader.DecodeWeeks(ctx, l, year, workers)
				if err != nil {
					return err
				}
				var total seed.SeedResult
				for _, res := range decoded.Weeks {
					if res.Err != nil {
						total.AddErrorf("decode week %d: %v", res.Week, res.Err)
						continue
					}
					total.Add(seed.SeedWeek(ctx, pool.Pool, leagueID, year, res.Week, res.Data, logger))
				}
				logger.Info("Year seed finished", "year", year, "decode", decoded.Summary(),
					"duration", time.Since(start).Round(time.Millisecond), "summary", total.Summary())
				return reportErrors(total)
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Season year")
	cmd.Flags().IntVar(&wk, "week", 0, "Week number; 0 = every week of the year")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent decoders (default $FOF_DECODE_WORKERS)")
	return cmd
}

func seededCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seeded",
		Short: "List the leagues already in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool, loader *savegame.Loader) error {
				summaries, err := pool.Summaries(ctx)
				if err != nil {
					return err
				}
				for _, s := range summaries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (%d)\t%s\t%d players\t%d games\n",
						s.Name, s.LeagueName, s.Year, s.Revision, s.Players, s.Games)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// loadConfig loads the environment and applies the persistent flags.
func loadConfig() (*config.Config, error) {
	if flags.debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.dir != "" {
		cfg.SavedGamesDir = flags.dir
	}
	if flags.revision != "" {
		if cfg.Revision, err = league.RevisionByName(flags.revision); err != nil {
			return nil, err
		}
	}
	if flags.schema != "" {
		if cfg.PlayersSchema, err = players.ParseSchema(flags.schema); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLoader(cfg *config.Config) *savegame.Loader {
	return &savegame.Loader{
		Revision: cfg.Revision,
		Schema:   cfg.PlayersSchema,
		Options:  cfg.DecodeOptions(nil),
		Logger:   logger,
	}
}

func openLeague(name string) (*config.Config, *savegame.Loader, *savegame.League, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := savegame.Open(cfg.SavedGamesDir, name)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, newLoader(cfg), l, nil
}

// runSeed handles config loading, DB connection, and context cancellation.
func runSeed(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool, loader *savegame.Loader) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool, newLoader(cfg))
}

func reportErrors(result seed.SeedResult) error {
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d seed errors", len(result.Errors))
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
