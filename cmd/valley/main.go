// Command valley runs the river valley settlement game in a terminal, or
// plays scripted sessions headless with -headless N.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/ForkArcade/river-valley-settlement/internal/config"
	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/engine"
	"github.com/ForkArcade/river-valley-settlement/internal/persistence"
	"github.com/ForkArcade/river-valley-settlement/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = live randomness)")
	flag.StringVar(&cfg.DB, "db", cfg.DB, "chronicle database path (empty disables)")
	flag.StringVar(&cfg.Terrain, "terrain", cfg.Terrain, "terrain strategy: noise or rules")
	flag.StringVar(&cfg.Content, "content", cfg.Content, "content YAML overriding the built-in tables")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	headless := flag.Int("headless", 0, "play N turns with the autoplayer instead of the terminal UI")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	interactive := *headless == 0
	if interactive && !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use -headless N")
		os.Exit(2)
	}
	slog.SetDefault(newLogger(cfg, interactive, os.Stderr))

	if err := run(cfg, *headless, interactive); err != nil {
		slog.Error("valley failed", "error", err)
		os.Exit(1)
	}
}

// newLogger writes to out: text when out is a terminal, JSON otherwise. The
// interactive UI owns the screen, so it only logs errors unless debugging.
func newLogger(cfg config.Config, interactive bool, out *os.File) *slog.Logger {
	level, _ := cfg.Level()
	if interactive && level > slog.LevelDebug {
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(out.Fd()) {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

func run(cfg config.Config, headless int, interactive bool) error {
	c, err := loadContent(cfg.Content)
	if err != nil {
		return err
	}
	strategy, _ := cfg.Strategy()

	sim := engine.New(c, cfg.Seed, strategy)
	slog.Info("valley ready",
		"seed", sim.Seed(),
		"terrain", strategy,
		"buildings", len(c.Buildings),
		"events", len(c.Events),
		"nodes", len(c.Narrative.Nodes),
	)

	var db *persistence.DB
	if cfg.DB != "" {
		db, err = persistence.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("chronicle opened", "path", cfg.DB)
		sim.Subscribe(db.Recorder())
		if err := db.SaveMeta("last_seed", strconv.FormatInt(sim.Seed(), 10)); err != nil {
			slog.Warn("save meta failed", "error", err)
		}
	}

	if !interactive {
		st := Autoplay(sim, headless)
		fmt.Printf("%s after %d turns: score %s, population %d, %d buildings\n",
			st.Screen, st.Turn, humanize.Comma(int64(sim.CalculateScore(st))),
			st.Resources.Get(economy.Population), st.BuildingCount)
		return printScores(db)
	}

	return tui.Run(sim)
}

func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	c, err := content.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("content loaded", "path", path)
	return c, nil
}

func printScores(db *persistence.DB) error {
	if db == nil {
		return nil
	}
	scores, err := db.TopScores(5)
	if err != nil {
		return fmt.Errorf("top scores: %w", err)
	}
	for i, s := range scores {
		fmt.Printf("%s  %8s  %-7s turn %d  %s\n",
			humanize.Ordinal(i+1), humanize.Comma(int64(s.Score)), s.Outcome, s.Turn, humanize.Time(s.CreatedAt))
	}
	return nil
}
