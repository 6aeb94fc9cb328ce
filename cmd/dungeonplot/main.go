// Package main is the entry point for dungeonplot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeonplot/internal/config"
	"github.com/samdwyer/dungeonplot/internal/export"
	"github.com/samdwyer/dungeonplot/internal/gamedata"
	"github.com/samdwyer/dungeonplot/internal/logger"
	"github.com/samdwyer/dungeonplot/internal/populate"
	"github.com/samdwyer/dungeonplot/internal/telemetry"
	"github.com/samdwyer/dungeonplot/internal/ui"
	"github.com/samdwyer/dungeonplot/internal/world"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Printf("dungeonplot: %v", err)
		}
		os.Exit(1)
	}
}

// options are the command-line flags. Zero values mean "not given".
type options struct {
	configPath string
	outPath    string
	view       bool
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	fs := flag.NewFlagSet("dungeonplot", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "dungeonplot.yaml", "path to YAML config file")
	seed := fs.Int64("seed", 0, "generation seed (0 derives one from the clock)")
	width := fs.Int("width", world.DefaultWidth, "grid width")
	height := fs.Int("height", world.DefaultHeight, "grid height")
	theme := fs.String("theme", "classic", "theme id")
	format := fs.String("format", config.FormatText, "output format: text or yaml")
	fs.StringVar(&opts.outPath, "out", "", "output file (default stdout)")
	fs.BoolVar(&opts.view, "view", false, "show the dungeon in a terminal preview")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	loaded, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	*cfg = *loaded
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Flags given explicitly override file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "theme":
			cfg.Theme = *theme
		case "format":
			cfg.Format = *format
		}
	})
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg := config.DefaultConfig()
	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if opts.view {
		// The preview owns the terminal.
		cfg.Logging.ConsoleEnabled = false
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Close()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warning("telemetry setup failed, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	if err := generate(ctx, cfg, opts, stdout); err != nil {
		logger.Error("generation failed", "seed", cfg.Seed, "error", err)
		return err
	}
	return nil
}

func generate(ctx context.Context, cfg *config.Config, opts *options, stdout io.Writer) error {
	registry, err := gamedata.LoadThemeRegistry()
	if err != nil {
		return fmt.Errorf("load themes: %w", err)
	}
	theme, err := registry.Get(cfg.Theme)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := world.NewDungeon(cfg.Width, cfg.Height, theme, world.NewSource(seed))
	if err := d.Generate(ctx); err != nil {
		return err
	}
	layout, err := populate.Populate(ctx, d, theme)
	if err != nil {
		return err
	}
	logger.Info("dungeon ready",
		"seed", seed,
		"width", cfg.Width,
		"height", cfg.Height,
		"theme", theme.ID,
		"rooms", len(d.Rooms),
		"collectibles", len(layout.Collectibles),
	)

	if opts.view {
		if err := preview(ctx, d, theme, layout); err != nil {
			return err
		}
		if opts.outPath == "" {
			return nil
		}
	}
	return write(cfg.Format, opts.outPath, stdout, export.NewDocument(d, theme.ID, layout), d.Grid)
}

func write(format, path string, stdout io.Writer, doc *export.Document, grid *world.Grid) error {
	if path == "" {
		return encode(format, stdout, doc, grid)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := encode(format, f, doc, grid); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func encode(format string, w io.Writer, doc *export.Document, grid *world.Grid) error {
	if format == config.FormatYAML {
		return export.WriteYAML(w, doc)
	}
	return export.WriteText(w, grid)
}

func preview(ctx context.Context, d *world.Dungeon, theme *gamedata.ThemeDef, layout *populate.Layout) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen, theme,
		theme.Wall(), theme.Floor(), theme.Background(), theme.Collectible(), theme.Occupant())
	status := fmt.Sprintf("seed %d  rooms %d  collectibles %d  [q] quit",
		d.Stats.Seed, len(d.Rooms), layout.Remaining())
	return ui.Preview(ctx, screen, renderer, d.Grid, status)
}
