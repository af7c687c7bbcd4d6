package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/errors"
	"github.com/matzehuels/opsboard/pkg/reconcile"
)

// moveCommand creates the move command, a non-interactive keyboard drag.
func (c *CLI) moveCommand() *cobra.Command {
	var cf contextFlags

	cmd := &cobra.Command{
		Use:   "move <view> <card> <index>",
		Short: "Move a card to a new position",
		Long: `Move a card to a zero-based index in the effective order of a view and
persist the result. Indexes refer to the visible cards for the given roles
and categories.`,
		Example: `  opsboard move dashboard team 0 --role admin`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			view, id := args[0], args[1]
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidIndex, "index %q is not a number", args[2])
			}

			b, orders, err := c.mountBoard(ctx, view, &cf)
			if err != nil {
				return err
			}
			defer orders.Close()

			from := reconcile.Index(b.Order(), id)
			if err := b.MoveCard(ctx, id, to); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if from == to {
				printInfo(w, "%s is already at %d", StyleHighlight.Render(id), to)
			} else {
				printSuccess(w, "Moved %s from %d to %d", StyleHighlight.Render(id), from, to)
			}
			printOrder(w, card.IDs(b.Cards()))
			return nil
		},
	}

	cf.register(cmd)
	return cmd
}
