package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/opsboard/internal/server"
)

// serveCommand creates the serve command for the HTTP order API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card order HTTP API",
		Long: `Serve card orders over HTTP until interrupted.

Routes:
  GET  /healthz
  GET  /views/{view}/cards?role=&category=&funnel=
  POST /views/{view}/move
  GET  /scopes/{scope}/order
  PUT  /scopes/{scope}/order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			orders, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer orders.Close()

			logger := loggerFromContext(ctx)
			srv := server.New(orders, server.Options{
				PruneOnLoad: cfg.Board.PruneOnLoad,
				Drag:        cfg.DragOptions(logger),
				Logger:      logger,
			})

			w := cmd.OutOrStdout()
			printInfo(w, "Serving on %s", StyleHighlight.Render("http://"+addr))
			printDetail(w, "store: %s", cfg.Store.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
