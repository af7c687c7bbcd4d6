// Package cli implements the opsboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/opsboard/internal/config"
	"github.com/matzehuels/opsboard/pkg/board"
	"github.com/matzehuels/opsboard/pkg/buildinfo"
	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/drag"
	"github.com/matzehuels/opsboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "opsboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	backend    string
	noPersist  bool
	verbose    bool

	// openKV opens the configured backend; tests replace it.
	openKV func(ctx context.Context, cfg store.Config) (store.KV, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		openKV: store.Open,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Opsboard arranges dashboard cards and remembers their order",
		Long:         `Opsboard manages the per-view card order of the operations dashboard and the funnel overview panel: inspect effective orders, rearrange cards from the terminal, and serve the order API.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/opsboard/config.toml)")
	flags.StringVar(&c.backend, "backend", "", "override the store backend ("+strings.Join(store.Backends, "|")+")")
	flags.BoolVar(&c.noPersist, "no-persist", false, "do not read or write stored orders")

	// Register all subcommands
	root.AddCommand(c.cardsCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store & Board Factory
// =============================================================================

// loadConfig reads the config file and applies command-line overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = config.Normalize(cfg)
	}
	if c.noPersist {
		cfg.Store.Backend = store.BackendNull
	}
	return cfg, nil
}

// openStore opens the configured order store.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (*store.OrderStore, error) {
	sc, err := cfg.StoreConfig()
	if err != nil {
		return nil, err
	}
	kv, err := c.openKV(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", sc.Backend, err)
	}
	logger := loggerFromContext(ctx)
	logger.Debug("store opened", "backend", sc.Backend, "dir", sc.Dir)
	return store.NewOrderStore(kv,
		store.WithKeyer(store.NewDefaultKeyer(cfg.Store.Prefix)),
		store.WithLogger(logger),
	), nil
}

// mountBoard resolves the view and scope, then mounts a board.
func (c *CLI) mountBoard(ctx context.Context, view string, cf *contextFlags) (*board.Board, *store.OrderStore, error) {
	reg, err := card.Resolve(view)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	orders, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := loggerFromContext(ctx)
	cardCtx := cf.context()
	b, err := board.ForView(reg, orders, cardCtx, board.Options{
		PruneOnLoad: cfg.Board.PruneOnLoad,
		Logger:      logger,
		Drags:       drag.NewManager(cfg.DragOptions(logger)),
	})
	if err != nil {
		_ = orders.Close()
		return nil, nil, err
	}
	b.Mount(ctx, cardCtx)
	return b, orders, nil
}

// =============================================================================
// Context Flags
// =============================================================================

// contextFlags collects the ambient card context from the command line.
type contextFlags struct {
	roles      []string
	categories []string
	funnel     string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.roles, "role", nil, "role flags (repeatable, e.g. --role admin)")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "category flags (repeatable, e.g. --category forecast)")
	cmd.Flags().StringVar(&f.funnel, "funnel", "", "funnel instance id (UUID) for the funnel view")
}

func (f *contextFlags) context() card.Context {
	ctx := card.NewContext(f.roles, f.categories)
	if f.funnel != "" {
		ctx = ctx.WithEntity(card.EntityFunnel, f.funnel)
	}
	return ctx
}

// parseOrder parses a comma-separated id list.
func parseOrder(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
