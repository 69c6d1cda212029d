package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bodul/xwgrid/internal/autofill"
	"github.com/bodul/xwgrid/internal/cluetable"
	"github.com/bodul/xwgrid/internal/config"
	"github.com/bodul/xwgrid/internal/session"
	"github.com/bodul/xwgrid/internal/view/gui"
	"github.com/bodul/xwgrid/internal/view/textview"
)

const usage = `usage: xwgrid <command> [flags] [clue-table]

commands:
  show   print the grid, clue lists and progress
  view   open the graphical viewer

clue tables: .csv, .csv.zst, .db, .sqlite, .sqlite3
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "[xwgrid] ", log.LstdFlags)
	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return flag.ErrHelp
	}

	switch args[0] {
	case "show":
		return runShow(ctx, args[1:], stdout, logger)
	case "view":
		return runView(ctx, args[1:], logger)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type common struct {
	configPath string
	table      string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to config.yaml (or set "+config.EnvPath+")")
	fs.StringVar(&c.table, "table", "", "table name inside a SQLite source")
}

// load resolves the config and opens the clue table named by the first
// positional argument, or by source.path in the config.
func (c *common) load(ctx context.Context, fs *flag.FlagSet, logger *log.Logger) (config.Config, *session.Session, error) {
	path := strings.TrimSpace(c.configPath)
	if path == "" {
		path = os.Getenv(config.EnvPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if fs.NArg() > 0 {
		cfg.Source.Path = fs.Arg(0)
	}
	if c.table != "" {
		cfg.Source.Table = c.table
	}
	if cfg.Source.Path == "" {
		return cfg, nil, errors.New("no clue table given")
	}

	g, err := cluetable.Load(ctx, cluetable.Source{Path: cfg.Source.Path, Table: cfg.Source.Table})
	if err != nil {
		return cfg, nil, err
	}
	s := session.New(g)
	logger.Printf("loaded %s: %dx%d, %d clues (session %s)", cfg.Source.Path, g.Rows(), g.Cols(), len(g.Clues()), s.ID)
	return cfg, s, nil
}

func runShow(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var c common
	c.register(fs)
	fill := fs.Bool("fill", false, "place every stored answer before printing")
	asJSON := fs.Bool("json", false, "print a JSON snapshot instead of text")
	width := fs.Int("width", 0, "wrap clue text at this many columns")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, s, err := c.load(ctx, fs, logger)
	if err != nil {
		return err
	}

	if *fill {
		if err := fillAll(ctx, s, logger); err != nil {
			return err
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Snapshot())
	}

	out := textview.Render(s.Grid(), textview.Options{
		Title:     cfg.Viewer.Title,
		ClueWidth: *width,
	})
	_, err = io.WriteString(stdout, out)
	return err
}

// fillAll replays every stored answer and logs solved clues as the session
// reports them.
func fillAll(ctx context.Context, s *session.Session, logger *log.Logger) error {
	wctx, stop := context.WithCancel(ctx)
	watched := s.Watch(wctx, func(e session.Event) {
		switch e.Type {
		case session.EventClueSolved:
			for _, id := range e.Clues {
				logger.Printf("solved %s", id)
			}
		case session.EventCompleted:
			logger.Printf("puzzle complete, %d / %d clues solved", e.Progress.SolvedClues, e.Progress.TotalClues)
		}
	})
	res, err := autofill.New(s, 0, logger).Run(ctx)
	stop()
	<-watched
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	logger.Printf("filled %d clues, skipped %d", len(res.Filled), len(res.Skipped))
	return nil
}

func runView(ctx context.Context, args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	var c common
	c.register(fs)
	autoStart := fs.Bool("autostart", false, "start filling as soon as the window opens")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, s, err := c.load(ctx, fs, logger)
	if err != nil {
		return err
	}
	if *autoStart {
		cfg.Fill.AutoStart = true
	}
	return gui.Run(ctx, s, cfg, logger)
}
