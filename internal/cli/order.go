package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opsboard/pkg/errors"
	"github.com/matzehuels/opsboard/pkg/store"
)

// orderCommand creates the order command with show and set subcommands.
func (c *CLI) orderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect or overwrite stored order records",
		Long: `Inspect or overwrite the raw order record of a scope.

Scopes are "dashboard" for the operations dashboard and "funnel:<id>" for a
funnel overview panel. Stored records may reference cards that are hidden or
no longer defined; they are reconciled when a view is mounted.`,
	}

	cmd.AddCommand(c.orderShowCommand())
	cmd.AddCommand(c.orderSetCommand())
	return cmd
}

func (c *CLI) orderShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <scope>",
		Short: "Print the stored order of a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scope := args[0]
			if err := errors.ValidateScope(scope); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			orders, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer orders.Close()

			w := cmd.OutOrStdout()
			ids := orders.Load(ctx, scope)
			printKeyValue(w, "Scope", scope)
			printKeyValue(w, "Key", orders.Key(scope))
			printKeyValue(w, "Cards", strconv.Itoa(len(ids)))
			fmt.Fprintln(w)
			printOrder(w, ids)
			return nil
		},
	}
}

func (c *CLI) orderSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set <scope> <id,id,...>",
		Short:   "Overwrite the stored order of a scope",
		Example: `  opsboard order set dashboard team,tasks,funnel`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scope, ids := args[0], parseOrder(args[1])
			if err := errors.ValidateScope(scope); err != nil {
				return err
			}
			if err := errors.ValidateOrder(ids); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			orders, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer orders.Close()

			w := cmd.OutOrStdout()
			if cfg.Store.Backend == store.BackendNull {
				printWarning(w, "Persistence is disabled; nothing was saved for %s", scope)
				return nil
			}

			orders.Save(ctx, scope, ids)
			if !slices.Equal(orders.Load(ctx, scope), ids) {
				printWarning(w, "Could not save the order for %s (run with -v for details)", scope)
				return nil
			}
			printSuccess(w, "Saved %d cards for %s", len(ids), StyleHighlight.Render(scope))
			return nil
		},
	}
}
